// Package registry provides user configuration management for botdash.
//
// This package manages a YAML-based configuration file that stores
// client-side metadata for bot backends and bots: nicknames, last-used
// account names, config file paths and application preferences. The
// configuration follows OS-specific conventions for storage location.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/botdash/config.yaml or $HOME/.config/botdash/config.yaml
//   - macOS: $HOME/.config/botdash/config.yaml
//   - Windows: %LOCALAPPDATA%\botdash\config.yaml
//
// # Security
//
// IMPORTANT: This package NEVER stores account passwords. Only account
// names are remembered, and only to pre-fill the start form.
//
// # Usage Example
//
//	// Load the global registry
//	reg, err := registry.LoadRegistry()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Remember a bot nickname and the backend it lives on
//	reg.SetBotNickname("woodcutter", "Willow Chopper")
//	reg.UpdateBackendLastSeen("osrsbots-desktop", "http://192.168.1.20:5000")
//
//	// Save changes atomically
//	if err := reg.Save(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Thread Safety
//
// The global registry uses sync.Once for safe initialization across goroutines.
// File operations are protected by a mutex to ensure atomic writes.
package registry
