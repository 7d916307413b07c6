package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-querychat-be/internal/dto"
	"ai-querychat-be/internal/entity"
	"ai-querychat-be/internal/mapper"
	"ai-querychat-be/internal/pkg/apperror"
	"ai-querychat-be/internal/repository/store"
	"ai-querychat-be/pkg/events"

	"github.com/google/uuid"
)

type IMessageService interface {
	Save(ctx context.Context, userId uuid.UUID, req *dto.SaveMessageRequest) (*dto.MessageResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]dto.MessageResponse, error)
	Clear(ctx context.Context, userId uuid.UUID) (*dto.ClearMessagesResponse, error)
}

type messageService struct {
	store    store.Store
	activity IActivityPublisher
	mapper   *mapper.MessageMapper
	now      func() time.Time
}

func NewMessageService(st store.Store, activity IActivityPublisher) IMessageService {
	return &messageService{
		store:    st,
		activity: activity,
		mapper:   mapper.NewMessageMapper(),
		now:      time.Now,
	}
}

func (s *messageService) Save(ctx context.Context, userId uuid.UUID, req *dto.SaveMessageRequest) (*dto.MessageResponse, error) {
	const op = "MessageService.Save"

	if req.Sender == "" || req.Text == "" || req.Timestamp == "" {
		return nil, apperror.Validation(op, "Sender, text, and timestamp are required")
	}

	sender := entity.Sender(req.Sender)
	if !sender.Valid() {
		return nil, apperror.Validation(op, fmt.Sprintf("Invalid sender: %s. Expected one of user, bot, system.", req.Sender))
	}

	var database *entity.Dialect
	if req.Database != nil && strings.TrimSpace(*req.Database) != "" {
		d := entity.Dialect(strings.TrimSpace(*req.Database))
		if !d.Supported() {
			return nil, apperror.Validation(op, fmt.Sprintf("Unsupported database: %s. Supported databases are: %s.", d, entity.SupportedDialectNames()))
		}
		database = &d
	}

	var schema *string
	if req.Schema != nil && *req.Schema != "" {
		schema = req.Schema
	}

	message := &entity.Message{
		Id:        uuid.New(),
		UserId:    userId,
		Sender:    sender,
		Text:      req.Text,
		Database:  database,
		Schema:    schema,
		Timestamp: req.Timestamp,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.Messages().Create(ctx, message); err != nil {
		return nil, apperror.Server(op, err)
	}

	res := s.mapper.ToResponse(message)
	return &res, nil
}

func (s *messageService) List(ctx context.Context, userId uuid.UUID) ([]dto.MessageResponse, error) {
	messages, err := s.store.Messages().ListByUser(ctx, userId)
	if err != nil {
		return nil, apperror.Server("MessageService.List", err)
	}
	return s.mapper.ToResponses(messages), nil
}

func (s *messageService) Clear(ctx context.Context, userId uuid.UUID) (*dto.ClearMessagesResponse, error) {
	deleted, err := s.store.Messages().DeleteByUser(ctx, userId)
	if err != nil {
		return nil, apperror.Server("MessageService.Clear", err)
	}

	s.activity.Publish(ctx, events.New(events.HistoryCleared, map[string]interface{}{
		"user_id": userId.String(),
		"deleted": deleted,
	}))

	return &dto.ClearMessagesResponse{Deleted: deleted}, nil
}
