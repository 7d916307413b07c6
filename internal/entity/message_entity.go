package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Sender string

const (
	SenderUser   Sender = "user"
	SenderBot    Sender = "bot"
	SenderSystem Sender = "system"
)

func (s Sender) Valid() bool {
	switch s {
	case SenderUser, SenderBot, SenderSystem:
		return true
	}
	return false
}

// Dialect is one of the database systems a schema and generated query are written against.
type Dialect string

const (
	DialectMongoDB    Dialect = "MongoDB"
	DialectPostgreSQL Dialect = "PostgreSQL"
	DialectMySQL      Dialect = "MySQL"
)

// SupportedDialects keeps the order used in user-facing messages.
var SupportedDialects = []Dialect{DialectMongoDB, DialectPostgreSQL, DialectMySQL}

func (d Dialect) Supported() bool {
	for _, s := range SupportedDialects {
		if d == s {
			return true
		}
	}
	return false
}

func SupportedDialectNames() string {
	names := make([]string, len(SupportedDialects))
	for i, d := range SupportedDialects {
		names[i] = string(d)
	}
	return strings.Join(names, ", ")
}

type Message struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Sender    Sender
	Text      string
	Database  *Dialect
	Schema    *string
	Timestamp string
	CreatedAt time.Time
}
