// Package ui provides the Bubble Tea terminal interface for GameTrackr.
//
// # Architecture Overview
//
// Model is the only mutable state in the program and is only changed inside
// Update. It composes three pieces from sibling packages:
//
//   - search.Controller: raw and debounced search text
//   - fetch.Slot: the list request ({status, value, error} with supersession)
//   - browse.Machine: the selected id and the detail request
//
// Network work happens in tea.Cmd functions; their results come back as
// messages and are committed only if they still belong to the current
// request.
//
// # Package Structure
//
//   - app.go: Model, Options, Init/Update/View and Run
//   - grid.go: search box, section title, tile grid and loading skeleton
//   - detail.go: detail panel, clamped description, titled box
//   - header.go: navbar, command bar and footer
//   - help.go: help overlay
//   - keys.go: key bindings
//   - theme.go: color palettes and lipgloss styles
//   - layout.go: responsive sizing
//
// # Views
//
//   - List: search box plus a grid of up to 12 titles (2 columns below 100
//     cells, 4 otherwise). While loading, 8 placeholder tiles are shown.
//   - Detail: name, rating, release date, platforms, artwork URL and the
//     description, clamped to 6 lines until expanded.
//
// # Key Bindings
//
//   - typing: edit the search (list view)
//   - ↑/↓, tab/shift+tab: move through the grid
//   - enter: open details for the highlighted title
//   - esc: clear search (list) or go back (detail)
//   - space: toggle the full summary (detail)
//   - j/k, pgup/pgdown: scroll the detail panel
//   - ctrl+l: home (back to list, clear search)
//   - ctrl+o: sign out
//   - ctrl+t: cycle theme
//   - f1: help
//   - ctrl+c: quit
//
// # Usage Example
//
//	err := ui.Run(ui.Options{
//		Context:   ctx,
//		Catalog:   client,
//		Session:   sess,
//		Logger:    logger,
//		ThemeName: userPrefs.Theme,
//	})
package ui
