package app

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/gametrackr/internal/config"
	"github.com/five82/gametrackr/internal/prefs"
	"github.com/five82/gametrackr/internal/rawg"
	"github.com/five82/gametrackr/internal/session"
	"github.com/five82/gametrackr/internal/ui"
)

// Options configure the GameTrackr application.
type Options struct {
	ConfigPath string // empty uses ~/.config/gametrackr/config.toml
	PrefsPath  string // empty uses ~/.config/gametrackr/prefs.toml
	Verbose    bool   // force debug logging
}

// Environment holds the dependencies shared by the TUI and the CLI commands.
type Environment struct {
	Config  config.Config
	Logger  *zap.Logger
	Session *session.Session
	Client  *rawg.Client
}

// Setup loads configuration and opens the logger, session and catalog client.
// Callers must Close the returned Environment.
func Setup(opts Options) (*Environment, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := NewLogger(cfg.LogFile, cfg.LogLevel, opts.Verbose)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	sess, err := session.Open(cfg.SessionFile)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open session: %w", err)
	}

	client, err := rawg.NewClient(cfg.BaseURL, cfg.APIKey, rawg.WithLogger(logger))
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("init rawg client: %w", err)
	}

	if !cfg.HasAPIKey() {
		logger.Warn("no API key configured, catalog requests are disabled",
			zap.String("env", config.APIKeyEnv))
	}

	return &Environment{
		Config:  cfg,
		Logger:  logger,
		Session: sess,
		Client:  client,
	}, nil
}

// Close flushes the logger.
func (e *Environment) Close() {
	if e == nil || e.Logger == nil {
		return
	}
	_ = e.Logger.Sync()
}

// Run boots the GameTrackr TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Setup(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = config.DefaultPath()
	}

	env.Logger.Info("starting tui",
		zap.String("base_url", env.Config.BaseURL),
		zap.Bool("signed_in", env.Session.SignedIn()),
		zap.String("theme", userPrefs.Theme))

	err = ui.Run(ui.Options{
		Context:    ctx,
		Catalog:    env.Client,
		Session:    env.Session,
		Logger:     env.Logger,
		ThemeName:  userPrefs.Theme,
		Columns:    userPrefs.Columns,
		PrefsPath:  opts.PrefsPath,
		ConfigPath: configPath,
	})
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		env.Logger.Info("tui stopped by signal")
		return nil
	}
	if err != nil {
		env.Logger.Error("tui exited with error", zap.Error(err))
		return err
	}
	env.Logger.Info("tui exited")
	return nil
}
