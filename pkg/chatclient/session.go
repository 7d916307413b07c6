package chatclient

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

type State int

const (
	StateUnauthenticated State = iota
	StateNoSchema
	StateSchemaSet
)

func (s State) String() string {
	switch s {
	case StateNoSchema:
		return "no-schema"
	case StateSchemaSet:
		return "schema-set"
	default:
		return "unauthenticated"
	}
}

const (
	SenderUser   = "user"
	SenderBot    = "bot"
	SenderSystem = "system"

	DefaultDialect = "MongoDB"

	// GenerationFailedText is shown as the bot reply when generation fails.
	GenerationFailedText = "❌ Failed to generate query. Please try again or check your connection."

	// EmptyResponseText stands in for a blank generated query so the bot
	// message can still be saved.
	EmptyResponseText = "No response from AI."
)

var Dialects = []string{"MongoDB", "PostgreSQL", "MySQL"}

var (
	ErrNotAuthenticated = errors.New("not logged in")
	ErrEmptyInput       = errors.New("empty input")
	ErrPending          = errors.New("a query is already being generated")
	ErrWrongState       = errors.New("action not available in the current state")
	ErrUnknownDialect   = errors.New("unknown database")
)

// Session is owned by a single goroutine. Only RunTurn may run elsewhere and
// it touches nothing but the Turn it is given.
type Session struct {
	api      API
	state    State
	token    string
	dialect  string
	schema   string
	messages []Message
	pending  bool
	now      func() time.Time
}

func NewSession(api API) *Session {
	return &Session{
		api:     api,
		dialect: DefaultDialect,
		now:     time.Now,
	}
}

func (s *Session) State() State     { return s.state }
func (s *Session) Token() string    { return s.token }
func (s *Session) Dialect() string  { return s.dialect }
func (s *Session) Schema() string   { return s.schema }
func (s *Session) Pending() bool    { return s.pending }
func (s *Session) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Session) timestamp() string {
	return s.now().Format("3:04:05 PM")
}

func (s *Session) Signup(ctx context.Context, username, email, password string) error {
	if s.state != StateUnauthenticated {
		return ErrWrongState
	}
	return s.api.Signup(ctx, username, email, password)
}

// Login authenticates and loads the stored history. A failed history fetch
// still leaves the session logged in; the error is returned for display.
func (s *Session) Login(ctx context.Context, email, password string) error {
	if s.state != StateUnauthenticated {
		return ErrWrongState
	}
	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.enter(ctx, token)
}

// Resume restores a saved token. It reports false when the token is no
// longer accepted.
func (s *Session) Resume(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	valid, err := s.api.Verify(ctx, token)
	if err != nil || !valid {
		return false, err
	}
	return true, s.enter(ctx, token)
}

func (s *Session) enter(ctx context.Context, token string) error {
	s.token = token
	s.state = StateNoSchema
	s.schema = ""
	s.pending = false
	s.messages = nil

	history, err := s.api.ListMessages(ctx, token)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	s.messages = history
	return nil
}

func (s *Session) SelectDialect(dialect string) error {
	if s.state != StateNoSchema {
		return ErrWrongState
	}
	for _, d := range Dialects {
		if d == dialect {
			s.dialect = d
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownDialect, dialect)
}

// SetSchema stores the schema and appends the confirmation message. The
// returned message still has to be persisted with Persist.
func (s *Session) SetSchema(input string) (Message, error) {
	if s.state != StateNoSchema {
		return Message{}, ErrWrongState
	}
	if strings.TrimSpace(input) == "" {
		return Message{}, ErrEmptyInput
	}

	s.schema = input
	s.state = StateSchemaSet

	dialect, schema := s.dialect, s.schema
	msg := Message{
		Sender:    SenderSystem,
		Text:      fmt.Sprintf("%s schema has been set. You can now enter your query requests.", dialect),
		Database:  &dialect,
		Schema:    &schema,
		Timestamp: s.timestamp(),
	}
	s.messages = append(s.messages, msg)
	return msg, nil
}

func (s *Session) Persist(ctx context.Context, msg Message) error {
	if s.token == "" {
		return ErrNotAuthenticated
	}
	return s.api.SaveMessage(ctx, s.token, msg)
}

// ChangeSchema goes back to NoSchema and returns the previous schema so the
// input can be pre-filled. History is kept.
func (s *Session) ChangeSchema() (string, error) {
	if s.state != StateSchemaSet {
		return "", ErrWrongState
	}
	if s.pending {
		return "", ErrPending
	}
	prev := s.schema
	s.state = StateNoSchema
	return prev, nil
}

// Turn is one prompt going through the three stages: save the user message,
// generate, save the bot reply. Each stage records its own error.
type Turn struct {
	token   string
	History []PreviousMessage
	User    Message
	Bot     Message

	SaveUserErr error
	GenerateErr error
	SaveBotErr  error
}

// BeginTurn appends the user message and marks the session pending.
func (s *Session) BeginTurn(input string) (*Turn, error) {
	switch {
	case s.state == StateUnauthenticated:
		return nil, ErrNotAuthenticated
	case s.state != StateSchemaSet:
		return nil, ErrWrongState
	case s.pending:
		return nil, ErrPending
	case strings.TrimSpace(input) == "":
		return nil, ErrEmptyInput
	}

	history := make([]PreviousMessage, 0, len(s.messages))
	for _, m := range s.messages {
		if m.Sender == SenderUser || m.Sender == SenderBot {
			history = append(history, PreviousMessage{Sender: m.Sender, Text: m.Text})
		}
	}

	dialect, schema := s.dialect, s.schema
	turn := &Turn{
		token:   s.token,
		History: history,
		User: Message{
			Sender:    SenderUser,
			Text:      input,
			Database:  &dialect,
			Schema:    &schema,
			Timestamp: s.timestamp(),
		},
	}

	s.messages = append(s.messages, turn.User)
	s.pending = true
	return turn, nil
}

// RunTurn performs the network stages. It does not touch the session.
func (s *Session) RunTurn(ctx context.Context, turn *Turn) {
	turn.SaveUserErr = s.api.SaveMessage(ctx, turn.token, turn.User)

	response, err := s.api.GenerateQuery(ctx, turn.token, GenerateRequest{
		Database:         *turn.User.Database,
		Schema:           *turn.User.Schema,
		Prompt:           turn.User.Text,
		PreviousMessages: turn.History,
	})
	turn.GenerateErr = err

	text := response
	switch {
	case err != nil:
		text = GenerationFailedText
	case strings.TrimSpace(text) == "":
		text = EmptyResponseText
	}
	turn.Bot = Message{
		Sender:    SenderBot,
		Text:      text,
		Database:  turn.User.Database,
		Schema:    turn.User.Schema,
		Timestamp: s.timestamp(),
	}
	turn.SaveBotErr = s.api.SaveMessage(ctx, turn.token, turn.Bot)
}

// FinishTurn appends the bot reply and clears the pending flag. A turn that
// outlived a logout or reset is dropped.
func (s *Session) FinishTurn(turn *Turn) {
	if turn.token != s.token || !s.pending {
		return
	}
	s.messages = append(s.messages, turn.Bot)
	s.pending = false
}

// Submit routes input by state: in NoSchema it sets the schema, in
// SchemaSet it runs a full turn synchronously.
func (s *Session) Submit(ctx context.Context, input string) (*Turn, error) {
	switch s.state {
	case StateUnauthenticated:
		return nil, ErrNotAuthenticated
	case StateNoSchema:
		msg, err := s.SetSchema(input)
		if err != nil {
			return nil, err
		}
		return nil, s.Persist(ctx, msg)
	}

	turn, err := s.BeginTurn(input)
	if err != nil {
		return nil, err
	}
	s.RunTurn(ctx, turn)
	s.FinishTurn(turn)
	return turn, nil
}

// Reset deletes the stored history and starts over in NoSchema with the
// default dialect. It is refused while a turn is in flight.
func (s *Session) Reset(ctx context.Context) error {
	if s.state == StateUnauthenticated {
		return ErrNotAuthenticated
	}
	if s.pending {
		return ErrPending
	}
	s.messages = nil
	s.dialect = DefaultDialect
	s.schema = ""
	s.state = StateNoSchema
	return s.api.ClearMessages(ctx, s.token)
}

// Logout discards local state. Server side revocation is best effort; its
// error is returned but the session is logged out regardless.
func (s *Session) Logout(ctx context.Context) error {
	token := s.token
	s.token = ""
	s.state = StateUnauthenticated
	s.schema = ""
	s.messages = nil
	s.pending = false
	s.dialect = DefaultDialect
	if token == "" {
		return nil
	}
	return s.api.Logout(ctx, token)
}
