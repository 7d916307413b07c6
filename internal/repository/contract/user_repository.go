package contract

import (
	"context"
	"errors"

	"ai-querychat-be/internal/entity"

	"github.com/google/uuid"
)

var ErrDuplicateEmail = errors.New("email already registered")

type UserRepository interface {
	// Create returns ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, user *entity.User) error
	// FindByEmail returns nil, nil when no user matches.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}
