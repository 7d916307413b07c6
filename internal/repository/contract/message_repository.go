package contract

import (
	"context"

	"ai-querychat-be/internal/entity"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	// ListByUser returns the user's messages oldest first, insertion order on ties.
	ListByUser(ctx context.Context, userId uuid.UUID) ([]*entity.Message, error)
	DeleteByUser(ctx context.Context, userId uuid.UUID) (int64, error)
}
