package chatui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-querychat-be/pkg/chatclient"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAPI struct {
	saved       []chatclient.Message
	response    string
	generateErr error
	cleared     int
	loggedOut   []string
}

func (s *stubAPI) Signup(ctx context.Context, username, email, password string) error { return nil }
func (s *stubAPI) Login(ctx context.Context, email, password string) (string, error) {
	return "tok", nil
}
func (s *stubAPI) Verify(ctx context.Context, token string) (bool, error) { return true, nil }
func (s *stubAPI) Logout(ctx context.Context, token string) error {
	s.loggedOut = append(s.loggedOut, token)
	return nil
}
func (s *stubAPI) ListMessages(ctx context.Context, token string) ([]chatclient.Message, error) {
	return nil, nil
}
func (s *stubAPI) SaveMessage(ctx context.Context, token string, msg chatclient.Message) error {
	s.saved = append(s.saved, msg)
	return nil
}
func (s *stubAPI) ClearMessages(ctx context.Context, token string) error {
	s.cleared++
	return nil
}
func (s *stubAPI) GenerateQuery(ctx context.Context, token string, req chatclient.GenerateRequest) (string, error) {
	return s.response, s.generateErr
}

func newLoggedIn(t *testing.T, api *stubAPI) (*Model, *chatclient.Session) {
	t.Helper()
	session := chatclient.NewSession(api)
	require.NoError(t, session.Login(context.Background(), "a@b.com", "p1"))
	return New(context.Background(), session), session
}

func typeText(m *Model, text string) {
	for _, r := range text {
		if r == ' ' {
			m.Update(tea.KeyMsg{Type: tea.KeySpace})
			continue
		}
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// press sends a key and runs the returned command, feeding its message back.
func press(m *Model, key tea.KeyMsg) {
	_, cmd := m.Update(key)
	if cmd == nil {
		return
	}
	if msg := cmd(); msg != nil {
		m.Update(msg)
	}
}

func TestModel_SchemaThenQuery(t *testing.T) {
	api := &stubAPI{response: "db.users.find({})"}
	m, session := newLoggedIn(t, api)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "PostgreSQL", session.Dialect())
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "MongoDB", session.Dialect())

	typeText(m, "users(name)")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, chatclient.StateSchemaSet, session.State())
	assert.Equal(t, "Schema set", m.status)
	require.Len(t, api.saved, 1)

	typeText(m, "find all users")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, session.Pending())
	msgs := session.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "find all users", msgs[1].Text)
	assert.Equal(t, "db.users.find({})", msgs[2].Text)
	assert.Empty(t, m.input)
	assert.Contains(t, m.View(), "db.users.find({})")
}

func TestModel_GenerationFailureShowsNotice(t *testing.T) {
	api := &stubAPI{generateErr: errors.New("boom")}
	m, session := newLoggedIn(t, api)

	typeText(m, "t(a)")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	typeText(m, "q")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	msgs := session.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, chatclient.GenerationFailedText, msgs[2].Text)
}

func TestModel_ChangeSchemaPrefillsInput(t *testing.T) {
	api := &stubAPI{}
	m, session := newLoggedIn(t, api)

	typeText(m, "orders(id)")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlE})

	assert.Equal(t, chatclient.StateNoSchema, session.State())
	assert.Equal(t, "orders(id)", m.input)
	assert.True(t, strings.Contains(m.View(), "MongoDB schema>"))
}

func TestModel_ResetClearsEverything(t *testing.T) {
	api := &stubAPI{}
	m, session := newLoggedIn(t, api)

	typeText(m, "orders(id)")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	press(m, tea.KeyMsg{Type: tea.KeyCtrlR})

	assert.Equal(t, 1, api.cleared)
	assert.Empty(t, session.Messages())
	assert.Equal(t, chatclient.StateNoSchema, session.State())
}

func TestModel_EmptySubmitIsIgnored(t *testing.T) {
	api := &stubAPI{}
	m, session := newLoggedIn(t, api)

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, chatclient.StateNoSchema, session.State())
	assert.Empty(t, m.status)
	assert.Empty(t, api.saved)
}

func TestModel_Backspace(t *testing.T) {
	m, _ := newLoggedIn(t, &stubAPI{})
	typeText(m, "ab")
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "a", m.input)
}

func TestModel_LogoutEndsSessionAndQuits(t *testing.T) {
	api := &stubAPI{}
	m, session := newLoggedIn(t, api)

	typeText(m, "orders(id)")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	assert.Equal(t, chatclient.StateUnauthenticated, session.State())
	assert.Empty(t, session.Messages())
	assert.Equal(t, []string{"tok"}, api.loggedOut)
}

func TestModel_ResetRestoresDefaultDialect(t *testing.T) {
	api := &stubAPI{}
	m, session := newLoggedIn(t, api)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "PostgreSQL", session.Dialect())
	press(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, chatclient.DefaultDialect, session.Dialect())
}
