package bootstrap

import (
	"context"
	"fmt"
	"log"

	"ai-querychat-be/internal/config"
	"ai-querychat-be/internal/controller"
	"ai-querychat-be/internal/pkg/logger"
	"ai-querychat-be/internal/pkg/serverutils"
	"ai-querychat-be/internal/repository/store"
	"ai-querychat-be/internal/service"
	"ai-querychat-be/pkg/llm"
	"ai-querychat-be/pkg/llm/factory"
	pktNats "ai-querychat-be/pkg/nats"
	"ai-querychat-be/pkg/revocation"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const activityTopic = "activity"

// Dependencies are the outside-world pieces. Build fills them from config;
// tests pass in-memory ones to NewContainer.
type Dependencies struct {
	Store      store.Store
	LLM        llm.LLMProvider
	Revocation revocation.List
	Relay      service.EventRelay // optional
	Logger     logger.ILogger
}

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	MessageController controller.IMessageController
	QueryController   controller.IQueryController
	HealthController  controller.IHealthController

	// AuthMiddleware guards every protected route.
	AuthMiddleware fiber.Handler

	// Background Services (Exposed for main.go to run)
	ActivityConsumer service.IActivityConsumer

	Logger logger.ILogger

	pubSub  *gochannel.GoChannel
	closers []func(context.Context) error
}

func NewContainer(cfg *config.Config, deps Dependencies) *Container {
	sysLogger := deps.Logger
	if sysLogger == nil {
		sysLogger = logger.NewNopLogger()
	}

	// Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewStdLogger(false, false),
	)
	activityPublisher := service.NewActivityPublisher(pubSub, activityTopic, sysLogger)
	activityConsumer := service.NewActivityConsumer(pubSub, activityTopic, deps.Relay, sysLogger)

	// Services
	authService := service.NewAuthService(deps.Store, deps.Revocation, activityPublisher, sysLogger, service.AuthOptions{
		Secret:    []byte(cfg.Auth.JWTSecret),
		ExpiresIn: cfg.Auth.ExpiresIn,
	})
	messageService := service.NewMessageService(deps.Store, activityPublisher)
	queryService := service.NewQueryService(deps.LLM, activityPublisher, sysLogger)

	return &Container{
		AuthController:    controller.NewAuthController(authService),
		MessageController: controller.NewMessageController(messageService),
		QueryController:   controller.NewQueryController(queryService),
		HealthController:  controller.NewHealthController(),
		AuthMiddleware:    serverutils.JwtMiddleware(authService),
		ActivityConsumer:  activityConsumer,
		Logger:            sysLogger,
		pubSub:            pubSub,
		closers:           []func(context.Context) error{deps.Store.Close},
	}
}

// Build connects to everything cfg points at. Redis and NATS are optional:
// a failed connection falls back to the in-process implementation.
func Build(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	st, err := store.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	log.Printf("[INFO] Using store driver: %s", cfg.Database.Driver)

	llmProvider, err := factory.NewLLMProvider(factory.Config{
		Provider:      cfg.Ai.LLMProvider,
		Model:         cfg.Ai.LLMModel,
		BaseURL:       cfg.Ai.LLMBaseURL,
		APIKey:        cfg.Ai.LLMAPIKey,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
		Timeout:       cfg.Ai.LLMTimeout,
	})
	if err != nil {
		_ = st.Close(ctx)
		return nil, err
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	deps := Dependencies{
		Store:      st,
		LLM:        llmProvider,
		Revocation: revocation.NewMemoryList(),
		Logger:     sysLogger,
	}
	var closers []func(context.Context) error

	// Redis
	var rdb *redis.Client
	if cfg.Redis.URL != "" {
		rdb, err = revocation.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v. Using in-memory revocation list", err)
		} else {
			deps.Revocation = revocation.NewRedisList(rdb)
			closers = append(closers, func(context.Context) error { return rdb.Close() })
		}
	}

	// NATS
	if cfg.Nats.URL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.Nats.URL, cfg.Nats.EventsTopic)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			deps.Relay = natsPub
			closers = append(closers, func(context.Context) error { natsPub.Close(); return nil })
		}
	}

	c := NewContainer(cfg, deps)
	c.closers = append(c.closers, closers...)
	return c, nil
}

func (c *Container) Close(ctx context.Context) error {
	var firstErr error
	if err := c.pubSub.Close(); err != nil {
		firstErr = err
	}
	for _, closeFn := range c.closers {
		if err := closeFn(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	_ = c.Logger.Sync()
	return firstErr
}
