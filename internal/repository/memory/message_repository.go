package memory

import (
	"context"
	"sync"
	"time"

	"ai-querychat-be/internal/entity"

	"github.com/google/uuid"
)

// MessageRepository is an append-only slice; its order is insertion order.
type MessageRepository struct {
	mu       sync.RWMutex
	messages []entity.Message
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{}
}

func (r *MessageRepository) Create(ctx context.Context, message *entity.Message) error {
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	r.mu.Lock()
	r.messages = append(r.messages, *message)
	r.mu.Unlock()
	return nil
}

func (r *MessageRepository) ListByUser(ctx context.Context, userId uuid.UUID) ([]*entity.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entity.Message, 0)
	for i := range r.messages {
		if r.messages[i].UserId == userId {
			m := r.messages[i]
			out = append(out, &m)
		}
	}
	return out, nil
}

func (r *MessageRepository) DeleteByUser(ctx context.Context, userId uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.messages[:0]
	var deleted int64
	for _, m := range r.messages {
		if m.UserId == userId {
			deleted++
			continue
		}
		kept = append(kept, m)
	}
	r.messages = kept
	return deleted, nil
}
