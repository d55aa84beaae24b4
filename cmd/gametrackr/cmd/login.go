package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/five82/gametrackr/internal/session"
)

var (
	loginUsername string
	loginEmail    string
	loginToken    string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a signed-in user for the navbar",
	Long: `Record a username and token in the session file. Missing values are
prompted for when running in a terminal.

Examples:
  gametrackr login
  gametrackr login --username link --token s3cret`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		username := strings.TrimSpace(loginUsername)
		email := strings.TrimSpace(loginEmail)
		token := strings.TrimSpace(loginToken)

		if username == "" || token == "" {
			if !isTerminal(os.Stdin) {
				return errors.New("login: --username and --token are required when not running in a terminal")
			}
			form := loginForm(&username, &email, &token)
			if err := form.RunWithContext(cmd.Context()); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					return errors.New("login cancelled")
				}
				return fmt.Errorf("login form: %w", err)
			}
		}

		env, err := setup()
		if err != nil {
			return err
		}
		defer env.Close()

		if err := signIn(env.Session, username, email, token); err != nil {
			return err
		}
		env.Logger.Info("signed in", zap.String("username", strings.TrimSpace(username)))
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s\n", strings.TrimSpace(username))
		return nil
	},
}

func loginForm(username, email, token *string) *huh.Form {
	required := func(field string) func(string) error {
		return func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s is required", field)
			}
			return nil
		}
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(username).
				Validate(required("username")),
			huh.NewInput().
				Title("Email").
				Placeholder("optional").
				Value(email),
			huh.NewInput().
				Title("Token").
				EchoMode(huh.EchoModePassword).
				Value(token).
				Validate(required("token")),
		),
	)
}

func signIn(sess *session.Session, username, email, token string) error {
	if err := sess.SignIn(token, session.User{Username: username, Email: email}); err != nil {
		return fmt.Errorf("sign in: %w", err)
	}
	return nil
}

func init() {
	loginCmd.Flags().StringVar(&loginUsername, "username", "", "username to display")
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "email address (optional)")
	loginCmd.Flags().StringVar(&loginToken, "token", "", "session token")
	rootCmd.AddCommand(loginCmd)
}
