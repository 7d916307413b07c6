// FILE: internal/dto/message_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

// SaveMessageRequest is checked by the message service so the messages
// match the ones clients already rely on.
type SaveMessageRequest struct {
	Sender    string  `json:"sender"`
	Text      string  `json:"text"`
	Database  *string `json:"database"`
	Schema    *string `json:"schema"`
	Timestamp string  `json:"timestamp"`
}

type MessageResponse struct {
	Id        uuid.UUID `json:"id"`
	UserId    uuid.UUID `json:"userId"`
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Database  *string   `json:"database"`
	Schema    *string   `json:"schema"`
	Timestamp string    `json:"timestamp"`
	CreatedAt time.Time `json:"createdAt"`
}

type ClearMessagesResponse struct {
	Deleted int64 `json:"deleted"`
}
