package cmd

import (
	"context"
	"errors"
	"fmt"

	"ai-querychat-be/internal/chatui"
	"ai-querychat-be/pkg/chatclient"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var errNotLoggedIn = errors.New("not logged in, run 'querychat login' first")

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the chat TUI",
	RunE:  runChat,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the stored conversation",
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := resumeSession(cmd.Context())
		if err != nil {
			return err
		}
		msgs := session.Messages()
		if len(msgs) == 0 {
			color.Yellow("No messages yet")
			return nil
		}
		for _, m := range msgs {
			printMessage(m)
		}
		return nil
	},
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	session, err := resumeSession(ctx)
	if err != nil {
		return err
	}
	if err := chatui.Run(ctx, session); err != nil {
		return err
	}
	if session.State() == chatclient.StateUnauthenticated {
		if err := removeToken(); err != nil {
			return err
		}
		color.Green("Logged out")
	}
	return nil
}

// resumeSession verifies the saved token and loads the history. A stale
// token is removed.
func resumeSession(ctx context.Context) (*chatclient.Session, error) {
	token, err := loadToken()
	if err != nil {
		return nil, err
	}
	session := chatclient.NewSession(newClient())
	ok, err := session.Resume(ctx, token)
	if !ok {
		if err == nil {
			_ = removeToken()
			err = errNotLoggedIn
		}
		color.Red("%v", err)
		return nil, err
	}
	if err != nil {
		color.Yellow("Logged in, but %v", err)
	}
	return session, nil
}

func printMessage(m chatclient.Message) {
	stamp := color.New(color.Faint).Sprint(m.Timestamp)
	switch m.Sender {
	case chatclient.SenderUser:
		fmt.Printf("%s %s %s\n", color.CyanString("You:"), m.Text, stamp)
	case chatclient.SenderBot:
		fmt.Printf("%s %s\n%s\n", color.GreenString("Bot:"), stamp, m.Text)
	default:
		fmt.Printf("%s %s\n", color.YellowString(m.Text), stamp)
	}
}
