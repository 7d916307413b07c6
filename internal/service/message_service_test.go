package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"ai-querychat-be/internal/dto"
	"ai-querychat-be/internal/pkg/apperror"
	"ai-querychat-be/internal/repository/store"
	"ai-querychat-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestMessageService_SaveAndList(t *testing.T) {
	activity := &recordingActivity{}
	svc := NewMessageService(store.NewMemory(), activity)
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	for i := 0; i < 5; i++ {
		_, err := svc.Save(ctx, alice, &dto.SaveMessageRequest{Sender: "user", Text: fmt.Sprintf("a%d", i), Timestamp: "10:00"})
		require.NoError(t, err)
	}
	saved, err := svc.Save(ctx, bob, &dto.SaveMessageRequest{
		Sender:    "system",
		Text:      "MySQL schema has been set. You can now enter your query requests.",
		Database:  strPtr("MySQL"),
		Schema:    strPtr("users(id, name)"),
		Timestamp: "10:01",
	})
	require.NoError(t, err)
	assert.Equal(t, bob, saved.UserId)
	require.NotNil(t, saved.Database)
	assert.Equal(t, "MySQL", *saved.Database)

	list, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, list, 5)
	for i, m := range list {
		assert.Equal(t, fmt.Sprintf("a%d", i), m.Text)
		assert.Equal(t, alice, m.UserId)
		assert.Nil(t, m.Database)
		assert.Nil(t, m.Schema)
	}
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].CreatedAt.Before(list[i-1].CreatedAt))
	}

	list, err = svc.List(ctx, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestMessageService_SaveValidation(t *testing.T) {
	svc := NewMessageService(store.NewMemory(), &recordingActivity{})
	ctx := context.Background()

	tests := []struct {
		name string
		req  dto.SaveMessageRequest
	}{
		{"missing sender", dto.SaveMessageRequest{Text: "t", Timestamp: "ts"}},
		{"missing text", dto.SaveMessageRequest{Sender: "user", Timestamp: "ts"}},
		{"missing timestamp", dto.SaveMessageRequest{Sender: "user", Text: "t"}},
		{"unknown sender", dto.SaveMessageRequest{Sender: "admin", Text: "t", Timestamp: "ts"}},
		{"unknown database", dto.SaveMessageRequest{Sender: "user", Text: "t", Timestamp: "ts", Database: strPtr("Oracle")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Save(ctx, uuid.New(), &tt.req)
			assert.True(t, apperror.Is(err, apperror.KindValidation), "got %v", err)
		})
	}

	res, err := svc.Save(ctx, uuid.New(), &dto.SaveMessageRequest{Sender: "bot", Text: "t", Timestamp: "ts", Database: strPtr(""), Schema: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, res.Database)
	assert.Nil(t, res.Schema)
}

func TestMessageService_SameInstantKeepsInsertionOrder(t *testing.T) {
	svc := NewMessageService(store.NewMemory(), &recordingActivity{}).(*messageService)
	frozen := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return frozen }
	ctx := context.Background()
	userId := uuid.New()

	for _, text := range []string{"first", "second", "third"} {
		_, err := svc.Save(ctx, userId, &dto.SaveMessageRequest{Sender: "user", Text: text, Timestamp: "ts"})
		require.NoError(t, err)
	}

	list, err := svc.List(ctx, userId)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "first", list[0].Text)
	assert.Equal(t, "third", list[2].Text)
}

func TestMessageService_Clear(t *testing.T) {
	activity := &recordingActivity{}
	svc := NewMessageService(store.NewMemory(), activity)
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	for _, id := range []uuid.UUID{alice, alice, bob} {
		_, err := svc.Save(ctx, id, &dto.SaveMessageRequest{Sender: "user", Text: "x", Timestamp: "ts"})
		require.NoError(t, err)
	}

	res, err := svc.Clear(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Deleted)

	list, _ := svc.List(ctx, alice)
	assert.Empty(t, list)
	list, _ = svc.List(ctx, bob)
	assert.Len(t, list, 1)
	assert.Equal(t, []string{events.HistoryCleared}, activity.types())
}
