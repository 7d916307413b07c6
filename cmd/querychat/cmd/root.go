// Package cmd contains the querychat commands. Running querychat with no
// subcommand opens the chat TUI with the saved login.
package cmd

import (
	"time"

	"ai-querychat-be/pkg/chatclient"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	timeout   time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "querychat",
	Short: "Chat client that turns prompts into database queries",
	Long: `querychat talks to the query chat server.

  querychat signup --username ada --email ada@example.com --password secret
  querychat login --email ada@example.com --password secret
  querychat            # open the chat
  querychat history    # print stored messages
  querychat logout`,
	SilenceUsage: true,
	RunE:         runChat,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("QUERYCHAT_SERVER", "http://localhost:5005"), "server base URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 90*time.Second, "request timeout")

	rootCmd.AddCommand(signupCmd, loginCmd, chatCmd, historyCmd, logoutCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

func newClient() *chatclient.Client {
	return chatclient.NewClient(serverURL, timeout)
}
