package cmd

import (
	"ai-querychat-be/pkg/chatclient"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	username string
	email    string
	password string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		session := chatclient.NewSession(newClient())
		if err := session.Signup(cmd.Context(), username, email, password); err != nil {
			color.Red("Signup failed: %v", err)
			return err
		}
		color.Green("Account created for %s. Run 'querychat login' next.", email)
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and remember the token",
	RunE: func(cmd *cobra.Command, args []string) error {
		session := chatclient.NewSession(newClient())
		if err := session.Login(cmd.Context(), email, password); err != nil && session.Token() == "" {
			color.Red("Login failed: %v", err)
			return err
		}
		if err := saveToken(session.Token()); err != nil {
			color.Red("Could not save token: %v", err)
			return err
		}
		color.Green("Logged in as %s", email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the saved token and forget it",
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := loadToken()
		if err != nil {
			return err
		}
		session := chatclient.NewSession(newClient())
		// a token the server no longer accepts has nothing left to revoke
		if ok, _ := session.Resume(cmd.Context(), token); ok {
			if err := session.Logout(cmd.Context()); err != nil && !chatclient.IsUnauthorized(err) {
				color.Yellow("Server logout failed: %v", err)
			}
		}
		if err := removeToken(); err != nil {
			return err
		}
		color.Green("Logged out")
		return nil
	},
}

func init() {
	signupCmd.Flags().StringVar(&username, "username", "", "display name")
	signupCmd.Flags().StringVar(&email, "email", "", "account email")
	signupCmd.Flags().StringVar(&password, "password", "", "account password")
	_ = signupCmd.MarkFlagRequired("username")
	_ = signupCmd.MarkFlagRequired("email")
	_ = signupCmd.MarkFlagRequired("password")

	loginCmd.Flags().StringVar(&email, "email", "", "account email")
	loginCmd.Flags().StringVar(&password, "password", "", "account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
}
