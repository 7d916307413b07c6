// Package store hands out the repositories of the configured storage driver.
package store

import (
	"context"
	"fmt"

	"ai-querychat-be/internal/config"
	"ai-querychat-be/internal/model"
	"ai-querychat-be/internal/repository/contract"
	"ai-querychat-be/internal/repository/implementation"
	"ai-querychat-be/internal/repository/memory"
	"ai-querychat-be/internal/repository/mongostore"
	"ai-querychat-be/pkg/database"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"gorm.io/gorm"
)

type Store interface {
	Users() contract.UserRepository
	Messages() contract.MessageRepository
	Close(ctx context.Context) error
}

type repoStore struct {
	users    contract.UserRepository
	messages contract.MessageRepository
	closeFn  func(ctx context.Context) error
}

func (s *repoStore) Users() contract.UserRepository       { return s.users }
func (s *repoStore) Messages() contract.MessageRepository { return s.messages }

func (s *repoStore) Close(ctx context.Context) error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn(ctx)
}

// Open connects to the driver named in cfg.Driver.
func Open(ctx context.Context, cfg config.DatabaseConfig) (Store, error) {
	switch cfg.Driver {
	case config.StoreMongo:
		client, db, err := mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return NewMongo(client, db), nil
	case config.StorePostgres, config.StoreMySQL:
		db, err := database.NewGormDBFromDSN(cfg.Driver, cfg.Connection)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
		}
		return NewGorm(db), nil
	case config.StoreMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.Driver)
	}
}

func NewMongo(client *mongo.Client, db *mongo.Database) Store {
	return &repoStore{
		users:    mongostore.NewUserRepository(db),
		messages: mongostore.NewMessageRepository(db),
		closeFn:  client.Disconnect,
	}
}

func NewGorm(db *gorm.DB) Store {
	return &repoStore{
		users:    implementation.NewUserRepository(db),
		messages: implementation.NewMessageRepository(db),
		closeFn: func(context.Context) error {
			return database.Close(db)
		},
	}
}

func NewMemory() Store {
	return &repoStore{
		users:    memory.NewUserRepository(),
		messages: memory.NewMessageRepository(),
	}
}

// Migrate creates or updates the SQL tables. Mongo and memory need nothing.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.User{}, &model.Message{})
}
