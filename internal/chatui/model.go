// Package chatui is the terminal front end of the chat session.
//
// The model owns the session. Network calls run as tea.Cmds and report back
// through messages, so the session is only mutated inside Update.
package chatui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ai-querychat-be/pkg/chatclient"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type Model struct {
	session *chatclient.Session
	ctx     context.Context

	input  string
	status string
	isErr  bool
	width  int
	height int
}

func New(ctx context.Context, session *chatclient.Session) *Model {
	return &Model{session: session, ctx: ctx}
}

func Run(ctx context.Context, session *chatclient.Session) error {
	p := tea.NewProgram(New(ctx, session), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case turnDoneMsg:
		m.session.FinishTurn(msg.turn)
		switch {
		case msg.turn.SaveUserErr != nil:
			m.toastErr(fmt.Errorf("failed to save your message: %w", msg.turn.SaveUserErr))
		case msg.turn.SaveBotErr != nil:
			m.toastErr(fmt.Errorf("failed to save the reply: %w", msg.turn.SaveBotErr))
		default:
			m.status = ""
		}
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.toastErr(msg.err)
		} else {
			m.toast(msg.ok)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) toast(s string) {
	m.status, m.isErr = s, false
}

func (m *Model) toastErr(err error) {
	m.status, m.isErr = err.Error(), true
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "enter":
		return m, m.submit()
	case "tab":
		m.cycleDialect()
	case "ctrl+e":
		prev, err := m.session.ChangeSchema()
		if err != nil {
			m.toastErr(err)
			return m, nil
		}
		m.input = prev
		m.toast("Edit the schema and press Enter")
	case "ctrl+r":
		return m, m.reset()
	case "ctrl+l":
		return m, m.logout()
	case "backspace":
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case "ctrl+j":
		m.input += "\n"
	default:
		if msg.Type == tea.KeyRunes {
			m.input += string(msg.Runes)
		} else if msg.Type == tea.KeySpace {
			m.input += " "
		}
	}
	return m, nil
}

func (m *Model) cycleDialect() {
	current := m.session.Dialect()
	next := chatclient.Dialects[0]
	for i, d := range chatclient.Dialects {
		if d == current {
			next = chatclient.Dialects[(i+1)%len(chatclient.Dialects)]
			break
		}
	}
	if err := m.session.SelectDialect(next); err != nil {
		m.toastErr(err)
	}
}

func (m *Model) submit() tea.Cmd {
	input := m.input

	switch m.session.State() {
	case chatclient.StateNoSchema:
		saved, err := m.session.SetSchema(input)
		if err != nil {
			if !errors.Is(err, chatclient.ErrEmptyInput) {
				m.toastErr(err)
			}
			return nil
		}
		m.input = ""
		return func() tea.Msg {
			err := m.session.Persist(m.ctx, saved)
			return actionDoneMsg{ok: "Schema set", err: err}
		}

	case chatclient.StateSchemaSet:
		turn, err := m.session.BeginTurn(input)
		if err != nil {
			if !errors.Is(err, chatclient.ErrEmptyInput) {
				m.toastErr(err)
			}
			return nil
		}
		m.input = ""
		m.toast("Generating query...")
		return func() tea.Msg {
			m.session.RunTurn(m.ctx, turn)
			return turnDoneMsg{turn: turn}
		}
	}
	return nil
}

func (m *Model) reset() tea.Cmd {
	err := m.session.Reset(m.ctx)
	if errors.Is(err, chatclient.ErrPending) {
		m.toastErr(err)
		return nil
	}
	m.input = ""
	if err != nil {
		m.toastErr(fmt.Errorf("reset: %w", err))
		return nil
	}
	m.toast("Reset successful")
	return nil
}

// logout ends the session and quits; the caller sees StateUnauthenticated.
func (m *Model) logout() tea.Cmd {
	if err := m.session.Logout(m.ctx); err != nil && !chatclient.IsUnauthorized(err) {
		m.toastErr(fmt.Errorf("logout: %w", err))
	}
	return tea.Quit
}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("AI Query Chat"))
	b.WriteString("  ")
	b.WriteString(m.renderDialects())
	b.WriteString("\n\n")

	for _, line := range m.renderMessages() {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.session.Pending() {
		b.WriteString(StyleDimmed.Render("  Generating..."))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	label := "Query> "
	if m.session.State() == chatclient.StateNoSchema {
		label = m.session.Dialect() + " schema> "
	}
	b.WriteString(StylePrompt.Render(label))
	b.WriteString(m.input)
	b.WriteString("█\n")

	if m.status != "" {
		style := StyleDimmed
		if m.isErr {
			style = StyleError
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(StyleDimmed.Render(m.helpLine()))
	return b.String()
}

func (m *Model) renderDialects() string {
	parts := make([]string, len(chatclient.Dialects))
	for i, d := range chatclient.Dialects {
		if d == m.session.Dialect() {
			parts[i] = StyleDialect.Render("[" + d + "]")
		} else {
			parts[i] = StyleOption.Render(d)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderMessages() []string {
	msgs := m.session.Messages()
	// keep the tail that fits; header, prompt, status and help take ~8 lines
	if m.height > 0 {
		budget := m.height - 8
		lines := 0
		start := len(msgs)
		for start > 0 && lines+messageHeight(msgs[start-1]) <= budget {
			lines += messageHeight(msgs[start-1])
			start--
		}
		msgs = msgs[start:]
	}

	var lines []string
	for _, msg := range msgs {
		stamp := StyleDimmed.Render(msg.Timestamp)
		switch msg.Sender {
		case chatclient.SenderUser:
			lines = append(lines, StyleUser.Render("You: ")+msg.Text+" "+stamp)
		case chatclient.SenderBot:
			lines = append(lines, StyleBot.Render("Bot: ")+stamp)
			for _, l := range strings.Split(msg.Text, "\n") {
				lines = append(lines, "  "+l)
			}
		default:
			lines = append(lines, StyleSystem.Render(msg.Text)+" "+stamp)
		}
	}
	return lines
}

func messageHeight(msg chatclient.Message) int {
	if msg.Sender == chatclient.SenderBot {
		return strings.Count(msg.Text, "\n") + 2
	}
	return strings.Count(msg.Text, "\n") + 1
}

func (m *Model) helpLine() string {
	switch m.session.State() {
	case chatclient.StateNoSchema:
		return "enter: set schema • tab: switch database • ctrl+j: newline • ctrl+r: reset • ctrl+l: logout • esc: quit"
	default:
		return "enter: send • ctrl+e: change schema • ctrl+j: newline • ctrl+r: reset • ctrl+l: logout • esc: quit"
	}
}
