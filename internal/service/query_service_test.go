package service

import (
	"context"
	"errors"
	"testing"

	"ai-querychat-be/internal/dto"
	"ai-querychat-be/internal/pkg/apperror"
	"ai-querychat-be/internal/pkg/logger"
	"ai-querychat-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryService_Generate(t *testing.T) {
	llmStub := &stubLLM{response: "db.users.find({})"}
	activity := &recordingActivity{}
	svc := NewQueryService(llmStub, activity, logger.NewNopLogger())

	res, err := svc.Generate(context.Background(), uuid.New(), &dto.GenerateQueryRequest{
		Database: "MongoDB",
		Schema:   "users{name}",
		Prompt:   "all users",
		PreviousMessages: []dto.PreviousMessage{
			{Sender: "user", Text: "count users"},
			{Sender: "bot", Text: "db.users.countDocuments()"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "db.users.find({})", res.Response)
	require.Equal(t, 1, llmStub.calls())
	assert.Contains(t, llmStub.prompts[0], "users{name}")
	assert.Contains(t, llmStub.prompts[0], "all users")
	assert.Contains(t, llmStub.prompts[0], "bot: db.users.countDocuments()")
	assert.Equal(t, []string{events.QueryGenerated}, activity.types())
}

func TestQueryService_RejectsBeforeCallingUpstream(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.GenerateQueryRequest
		kind    apperror.Kind
		message string
	}{
		{
			name:    "unsupported database",
			req:     dto.GenerateQueryRequest{Database: "Oracle", Schema: "s", Prompt: "p"},
			kind:    apperror.KindUnsupportedDatabase,
			message: "Unsupported database: Oracle. Supported databases are: MongoDB, PostgreSQL, MySQL.",
		},
		{
			name:    "case matters",
			req:     dto.GenerateQueryRequest{Database: "mysql", Schema: "s", Prompt: "p"},
			kind:    apperror.KindUnsupportedDatabase,
			message: "Unsupported database: mysql. Supported databases are: MongoDB, PostgreSQL, MySQL.",
		},
		{
			name:    "missing schema",
			req:     dto.GenerateQueryRequest{Database: "MySQL", Prompt: "p"},
			kind:    apperror.KindValidation,
			message: "Schema, prompt, and database are required.",
		},
		{
			name:    "blank prompt",
			req:     dto.GenerateQueryRequest{Database: "MySQL", Schema: "s", Prompt: "  "},
			kind:    apperror.KindValidation,
			message: "Schema, prompt, and database are required.",
		},
		{
			name:    "missing database",
			req:     dto.GenerateQueryRequest{Schema: "s", Prompt: "p"},
			kind:    apperror.KindValidation,
			message: "Schema, prompt, and database are required.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llmStub := &stubLLM{response: "unused"}
			svc := NewQueryService(llmStub, &recordingActivity{}, logger.NewNopLogger())

			_, err := svc.Generate(context.Background(), uuid.New(), &tt.req)

			var appErr *apperror.Error
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.kind, appErr.Kind)
			assert.Equal(t, tt.message, appErr.Message)
			assert.Equal(t, 0, llmStub.calls())
		})
	}
}

func TestQueryService_UpstreamFailure(t *testing.T) {
	llmStub := &stubLLM{err: errors.New("connection refused")}
	activity := &recordingActivity{}
	svc := NewQueryService(llmStub, activity, logger.NewNopLogger())

	_, err := svc.Generate(context.Background(), uuid.New(), &dto.GenerateQueryRequest{Database: "PostgreSQL", Schema: "s", Prompt: "p"})

	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.KindGeneration, appErr.Kind)
	assert.Equal(t, "Failed to generate query.", appErr.Message)
	assert.NotContains(t, appErr.Message, "connection refused")
	assert.Empty(t, activity.types())
}

func TestQueryService_BlankCompletionIsGenerationError(t *testing.T) {
	for _, response := range []string{"", "  \n\t"} {
		llmStub := &stubLLM{response: response}
		activity := &recordingActivity{}
		svc := NewQueryService(llmStub, activity, logger.NewNopLogger())

		res, err := svc.Generate(context.Background(), uuid.New(), &dto.GenerateQueryRequest{Database: "MongoDB", Schema: "s", Prompt: "p"})

		assert.Nil(t, res)
		assert.True(t, apperror.Is(err, apperror.KindGeneration))
		assert.Equal(t, 1, llmStub.calls())
		assert.Empty(t, activity.types())
	}
}
