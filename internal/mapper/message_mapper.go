package mapper

import (
	"ai-querychat-be/internal/dto"
	"ai-querychat-be/internal/entity"
	"ai-querychat-be/internal/model"
)

type MessageMapper struct{}

func NewMessageMapper() *MessageMapper {
	return &MessageMapper{}
}

func (m *MessageMapper) ToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}
	var database *entity.Dialect
	if msg.Database != nil {
		d := entity.Dialect(*msg.Database)
		database = &d
	}
	return &entity.Message{
		Id:        msg.Id,
		UserId:    msg.UserId,
		Sender:    entity.Sender(msg.Sender),
		Text:      msg.Text,
		Database:  database,
		Schema:    msg.Schema,
		Timestamp: msg.Timestamp,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *MessageMapper) ToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}
	var database *string
	if msg.Database != nil {
		d := string(*msg.Database)
		database = &d
	}
	return &model.Message{
		Id:        msg.Id,
		UserId:    msg.UserId,
		Sender:    string(msg.Sender),
		Text:      msg.Text,
		Database:  database,
		Schema:    msg.Schema,
		Timestamp: msg.Timestamp,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *MessageMapper) ToEntities(msgs []*model.Message) []*entity.Message {
	entities := make([]*entity.Message, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.ToEntity(msg)
	}
	return entities
}

func (m *MessageMapper) ToResponse(msg *entity.Message) dto.MessageResponse {
	var database *string
	if msg.Database != nil {
		d := string(*msg.Database)
		database = &d
	}
	return dto.MessageResponse{
		Id:        msg.Id,
		UserId:    msg.UserId,
		Sender:    string(msg.Sender),
		Text:      msg.Text,
		Database:  database,
		Schema:    msg.Schema,
		Timestamp: msg.Timestamp,
		CreatedAt: msg.CreatedAt,
	}
}

func (m *MessageMapper) ToResponses(msgs []*entity.Message) []dto.MessageResponse {
	res := make([]dto.MessageResponse, len(msgs))
	for i, msg := range msgs {
		res[i] = m.ToResponse(msg)
	}
	return res
}
