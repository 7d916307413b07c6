package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-querychat-be/internal/dto"
	"ai-querychat-be/internal/entity"
	"ai-querychat-be/internal/pkg/apperror"
	"ai-querychat-be/internal/pkg/logger"
	"ai-querychat-be/pkg/events"
	"ai-querychat-be/pkg/llm"
	"ai-querychat-be/pkg/prompt"

	"github.com/google/uuid"
)

var errEmptyCompletion = errors.New("model returned an empty completion")

type IQueryService interface {
	Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateQueryRequest) (*dto.GenerateQueryResponse, error)
}

type queryService struct {
	llmProvider llm.LLMProvider
	activity    IActivityPublisher
	logger      logger.ILogger
}

func NewQueryService(llmProvider llm.LLMProvider, activity IActivityPublisher, log logger.ILogger) IQueryService {
	return &queryService{
		llmProvider: llmProvider,
		activity:    activity,
		logger:      log,
	}
}

// Generate returns the model output verbatim; a blank output is a generation
// failure. The dialect is checked before
// any upstream call is made.
func (s *queryService) Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateQueryRequest) (*dto.GenerateQueryResponse, error) {
	const op = "QueryService.Generate"

	if strings.TrimSpace(req.Schema) == "" || strings.TrimSpace(req.Prompt) == "" || req.Database == "" {
		return nil, apperror.Validation(op, "Schema, prompt, and database are required.")
	}

	dialect := entity.Dialect(req.Database)
	if !dialect.Supported() {
		return nil, apperror.UnsupportedDatabase(op,
			fmt.Sprintf("Unsupported database: %s. Supported databases are: %s.", req.Database, entity.SupportedDialectNames()))
	}

	history := make([]prompt.Turn, len(req.PreviousMessages))
	for i, m := range req.PreviousMessages {
		history[i] = prompt.Turn{Sender: m.Sender, Text: m.Text}
	}

	instruction := prompt.Build(prompt.Input{
		Dialect: string(dialect),
		Schema:  req.Schema,
		Prompt:  req.Prompt,
		History: history,
	})

	start := time.Now()
	response, err := s.llmProvider.Generate(ctx, instruction)
	if err != nil {
		return nil, apperror.Generation(op, err)
	}
	if strings.TrimSpace(response) == "" {
		return nil, apperror.Generation(op, errEmptyCompletion)
	}
	elapsed := time.Since(start)

	s.logger.Debug(op, "Query generated", map[string]interface{}{
		"database":   string(dialect),
		"elapsed_ms": elapsed.Milliseconds(),
	})
	s.activity.Publish(ctx, events.New(events.QueryGenerated, map[string]interface{}{
		"user_id":    userId.String(),
		"database":   string(dialect),
		"elapsed_ms": elapsed.Milliseconds(),
	}))

	return &dto.GenerateQueryResponse{Response: response}, nil
}
