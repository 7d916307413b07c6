package mongostore

import (
	"time"

	"ai-querychat-be/internal/entity"

	"github.com/google/uuid"
)

const (
	usersCollection    = "users"
	messagesCollection = "messages"
)

type userDocument struct {
	Id        string    `bson:"_id"`
	Username  string    `bson:"username"`
	Email     string    `bson:"email"`
	Password  string    `bson:"password"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// messageDocument.Order holds the insertion time in nanoseconds; createdAt is
// stored with millisecond precision only.
type messageDocument struct {
	Id        string    `bson:"_id"`
	UserId    string    `bson:"userId"`
	Sender    string    `bson:"sender"`
	Text      string    `bson:"text"`
	Database  *string   `bson:"database"`
	Schema    *string   `bson:"schema"`
	Timestamp string    `bson:"timestamp"`
	CreatedAt time.Time `bson:"createdAt"`
	Order     int64     `bson:"order"`
}

func toUserDocument(u *entity.User) userDocument {
	return userDocument{
		Id:        u.Id.String(),
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.PasswordHash,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (d userDocument) toEntity() (*entity.User, error) {
	id, err := uuid.Parse(d.Id)
	if err != nil {
		return nil, err
	}
	return &entity.User{
		Id:           id,
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}, nil
}

func toMessageDocument(m *entity.Message) messageDocument {
	var database *string
	if m.Database != nil {
		d := string(*m.Database)
		database = &d
	}
	return messageDocument{
		Id:        m.Id.String(),
		UserId:    m.UserId.String(),
		Sender:    string(m.Sender),
		Text:      m.Text,
		Database:  database,
		Schema:    m.Schema,
		Timestamp: m.Timestamp,
		CreatedAt: m.CreatedAt,
		Order:     m.CreatedAt.UnixNano(),
	}
}

func (d messageDocument) toEntity() (*entity.Message, error) {
	id, err := uuid.Parse(d.Id)
	if err != nil {
		return nil, err
	}
	userId, err := uuid.Parse(d.UserId)
	if err != nil {
		return nil, err
	}
	var database *entity.Dialect
	if d.Database != nil {
		dialect := entity.Dialect(*d.Database)
		database = &dialect
	}
	return &entity.Message{
		Id:        id,
		UserId:    userId,
		Sender:    entity.Sender(d.Sender),
		Text:      d.Text,
		Database:  database,
		Schema:    d.Schema,
		Timestamp: d.Timestamp,
		CreatedAt: d.CreatedAt,
	}, nil
}
