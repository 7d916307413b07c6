package memory

import (
	"context"
	"testing"

	"ai-querychat-be/internal/entity"
	"ai-querychat-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	first := &entity.User{Id: uuid.New(), Username: "ana", Email: "ana@example.com", PasswordHash: "h"}
	require.NoError(t, repo.Create(ctx, first))

	second := &entity.User{Id: uuid.New(), Username: "ana2", Email: "ana@example.com", PasswordHash: "h"}
	assert.ErrorIs(t, repo.Create(ctx, second), contract.ErrDuplicateEmail)

	found, err := repo.FindByID(ctx, first.Id)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "ana", found.Username)

	missing, err := repo.FindByEmail(ctx, "nobody@example.com")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMessageRepository_OrderAndIsolation(t *testing.T) {
	repo := NewMessageRepository()
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	for _, text := range []string{"one", "two", "three"} {
		require.NoError(t, repo.Create(ctx, &entity.Message{Id: uuid.New(), UserId: alice, Sender: entity.SenderUser, Text: text, Timestamp: "10:00"}))
	}
	require.NoError(t, repo.Create(ctx, &entity.Message{Id: uuid.New(), UserId: bob, Sender: entity.SenderUser, Text: "bob", Timestamp: "10:00"}))

	msgs, err := repo.ListByUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "one", msgs[0].Text)
	assert.Equal(t, "three", msgs[2].Text)

	deleted, err := repo.DeleteByUser(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	msgs, _ = repo.ListByUser(ctx, alice)
	assert.Empty(t, msgs)
	msgs, _ = repo.ListByUser(ctx, bob)
	assert.Len(t, msgs, 1)
}
