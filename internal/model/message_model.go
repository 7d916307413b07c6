package model

import (
	"time"

	"github.com/google/uuid"
)

// Message rows are ordered by CreatedAt then Seq, so turns saved within the
// same clock tick keep their insertion order.
type Message struct {
	Id        uuid.UUID `gorm:"type:char(36);primaryKey"`
	Seq       int64     `gorm:"autoIncrement;uniqueIndex;not null"`
	UserId    uuid.UUID `gorm:"type:char(36);not null;index:idx_messages_user_created,priority:1"`
	Sender    string    `gorm:"type:varchar(16);not null"`
	Text      string    `gorm:"type:text;not null"`
	Database  *string   `gorm:"column:database_name;type:varchar(32)"`
	Schema    *string   `gorm:"column:schema_text;type:text"`
	Timestamp string    `gorm:"type:varchar(64);not null"`
	CreatedAt time.Time `gorm:"not null;index:idx_messages_user_created,priority:2"`
}

func (Message) TableName() string {
	return "messages"
}
