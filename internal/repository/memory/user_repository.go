package memory

import (
	"context"
	"time"

	"ai-querychat-be/internal/entity"
	"ai-querychat-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// UserRepository keeps users in a go-cache keyed by email, with a second key
// per id. Entries never expire.
type UserRepository struct {
	cache *cache.Cache
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func emailKey(email string) string { return "email:" + email }
func idKey(id uuid.UUID) string    { return "id:" + id.String() }

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	stored := *user
	// Add fails when the key exists, which makes the email check atomic.
	if err := r.cache.Add(emailKey(user.Email), &stored, cache.NoExpiration); err != nil {
		return contract.ErrDuplicateEmail
	}
	r.cache.Set(idKey(user.Id), user.Email, cache.NoExpiration)
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if x, found := r.cache.Get(emailKey(email)); found {
		u := *x.(*entity.User)
		return &u, nil
	}
	return nil, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	x, found := r.cache.Get(idKey(id))
	if !found {
		return nil, nil
	}
	return r.FindByEmail(ctx, x.(string))
}
