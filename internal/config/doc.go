// Package config loads zonekit's TOML configuration.
//
// # Configuration Discovery
//
// Load resolves the file in this order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/zonekit/config.toml
//  3. If the file doesn't exist, use defaults
//  4. Blank or zero fields fall back to their defaults
//
// # TOML Format
//
//	api_bind = "127.0.0.1:8080"
//	poll_seconds = 2
//	log_file = "~/.local/state/zonekit/zonekit.log"
//
// Every field is optional. Tilde expansion is applied to log_file.
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files and
// TOML syntax errors. A missing file is not an error.
package config
