package implementation

import (
	"context"

	"ai-querychat-be/internal/entity"
	"ai-querychat-be/internal/mapper"
	"ai-querychat-be/internal/model"
	"ai-querychat-be/internal/repository/contract"
	"ai-querychat-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MessageMapper
}

func NewMessageRepository(db *gorm.DB) contract.MessageRepository {
	return &MessageRepositoryImpl{
		db:     db,
		mapper: mapper.NewMessageMapper(),
	}
}

func (r *MessageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MessageRepositoryImpl) Create(ctx context.Context, message *entity.Message) error {
	modelMessage := r.mapper.ToModel(message)
	if err := r.db.WithContext(ctx).Create(modelMessage).Error; err != nil {
		return err
	}
	*message = *r.mapper.ToEntity(modelMessage)
	return nil
}

func (r *MessageRepositoryImpl) ListByUser(ctx context.Context, userId uuid.UUID) ([]*entity.Message, error) {
	var modelMessages []*model.Message
	query := r.applySpecifications(r.db.WithContext(ctx),
		specification.UserOwnedBy{UserID: userId},
		specification.Chronological{},
	)
	if err := query.Find(&modelMessages).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(modelMessages), nil
}

func (r *MessageRepositoryImpl) DeleteByUser(ctx context.Context, userId uuid.UUID) (int64, error) {
	query := r.applySpecifications(r.db.WithContext(ctx), specification.UserOwnedBy{UserID: userId})
	result := query.Delete(&model.Message{})
	return result.RowsAffected, result.Error
}
