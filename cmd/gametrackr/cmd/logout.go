package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the signed-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		defer env.Close()

		wasSignedIn := env.Session.SignedIn()
		if err := env.Session.SignOut(); err != nil {
			return fmt.Errorf("sign out: %w", err)
		}
		if !wasSignedIn {
			fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
			return nil
		}
		env.Logger.Info("signed out")
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
