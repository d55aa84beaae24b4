// Package config loads GameTrackr's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/gametrackr/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. RAWG_API_KEY, when set, replaces api_key
//
// # Default Values
//
//   - Config file: ~/.config/gametrackr/config.toml
//   - API root: https://api.rawg.io/api
//   - Log file: ~/.local/state/gametrackr/gametrackr.log
//   - Session file: ~/.config/gametrackr/session.toml
//   - Log level: info
//
// # TOML Format
//
//	api_key = "0123456789abcdef"
//	base_url = "https://api.rawg.io/api"
//	log_file = "~/.local/state/gametrackr/gametrackr.log"
//	session_file = "~/.config/gametrackr/session.toml"
//	log_level = "info"
//
// Every field is optional. Tilde expansion is performed for the file paths.
//
// # Missing API key
//
// A missing key is not an error. The catalog client reports itself as
// unconfigured and the UI shows a hint instead of issuing requests.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors
package config
