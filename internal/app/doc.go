// Package app provides the orchestration layer for GameTrackr.
//
// # Overview
//
// This package wires together configuration, logging, the session file, the
// RAWG client and the UI. It is the composition root shared by the TUI and
// the one-shot CLI commands.
//
// # Architecture
//
//  1. Load settings from ~/.config/gametrackr/config.toml (RAWG_API_KEY wins)
//  2. Open a JSON file logger (the terminal belongs to the TUI)
//  3. Open the session file
//  4. Build the rate-limited RAWG client
//  5. Start the TUI and block until the user exits or the context cancels
//
// # Data Flow
//
//	┌──────────────┐
//	│   Setup()    │
//	└──────┬───────┘
//	       ├─────> config.Load()     Read config.toml
//	       ├─────> NewLogger()       zap JSON logger on the log file
//	       ├─────> session.Open()    Signed-in user, if any
//	       └─────> rawg.NewClient()  Catalog client
//
//	┌──────────────┐
//	│    Run()     │ Setup, then ui.Run() (blocks)
//	└──────────────┘
//
// # Error Handling
//
// Fatal errors (returned from Setup and Run):
//   - Unreadable or invalid config file
//   - Invalid log level or unwritable log directory
//   - Unreadable session file
//
// A missing API key is not fatal: the TUI starts in an offline state and
// explains how to configure one. Cancelling the context (SIGINT/SIGTERM)
// ends Run without an error.
//
// # Usage Example
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	if err := app.Run(ctx, app.Options{}); err != nil {
//		log.Fatalf("gametrackr failed: %v", err)
//	}
package app
