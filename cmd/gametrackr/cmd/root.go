// Package cmd implements the gametrackr command line.
package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/five82/gametrackr/internal/app"
	"github.com/five82/gametrackr/internal/config"
)

var (
	cfgFile   string
	prefsFile string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "gametrackr",
	Short: "Browse the RAWG game catalog from the terminal",
	Long: `gametrackr is a terminal browser for the RAWG video game catalog.

Run without arguments to start the interactive interface: type to search,
pick a title from the grid and read its details.

A RAWG API key is required for catalog requests. Set RAWG_API_KEY or add
api_key to ~/.config/gametrackr/config.toml.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cmd.Context(), options())
	},
}

// ExecuteContext runs the root command with the given context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func options() app.Options {
	return app.Options{
		ConfigPath: cfgFile,
		PrefsPath:  prefsFile,
		Verbose:    verbose,
	}
}

// setup opens the shared environment for one-shot commands.
func setup() (*app.Environment, error) {
	return app.Setup(options())
}

// errNoAPIKey is returned by commands that need the catalog.
var errNoAPIKey = errors.New("RAWG API key not configured (set " + config.APIKeyEnv + " or api_key in " + config.DefaultPath() + ")")

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/gametrackr/config.toml)")
	rootCmd.PersistentFlags().StringVar(&prefsFile, "prefs", "", "preferences file (default: ~/.config/gametrackr/prefs.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}
