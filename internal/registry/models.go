package registry

import "time"

// Registry represents the entire user configuration file.
// This stores user-defined metadata for backends and bots plus
// application preferences. None of it lives on the backend: losing the
// file only loses nicknames and saved preferences.
type Registry struct {
	Version     int                 `yaml:"version"`
	Backends    map[string]*Backend `yaml:"backends,omitempty"` // Keyed by backend instance name
	Bots        map[string]*BotMeta `yaml:"bots,omitempty"`     // Keyed by bot ID
	Preferences *Preferences        `yaml:"preferences,omitempty"`
}

// Backend represents user-defined metadata for a bot-management backend.
// This is keyed by the backend's mDNS instance name in the Registry.
type Backend struct {
	Nickname string    `yaml:"nickname,omitempty"`  // User-friendly name
	LastURL  string    `yaml:"last_url,omitempty"`  // Last known base URL
	LastSeen time.Time `yaml:"last_seen,omitempty"` // Last discovery/connection time
}

// BotMeta represents client-side metadata for a single bot.
// The backend itself only knows bot IDs and default configs; nicknames
// and the last-used account name are purely local.
type BotMeta struct {
	Nickname     string    `yaml:"nickname,omitempty"`      // User-friendly name
	Username     string    `yaml:"username,omitempty"`      // Last account name used to start the bot
	ConfigPath   string    `yaml:"config_path,omitempty"`   // Last imported/exported config file
	LastStarted  time.Time `yaml:"last_started,omitempty"`  // Last time the bot was started from here
	FavoriteSlot int       `yaml:"favorite_slot,omitempty"` // Position in the dashboard favorites row (0 = none)
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	AutoDiscover    bool   `yaml:"auto_discover"`              // Enable automatic mDNS discovery on startup
	DiscoverTimeout int    `yaml:"discover_timeout"`           // mDNS discovery timeout in seconds
	DefaultBackend  string `yaml:"default_backend,omitempty"`  // mDNS instance name looked up before a broadcast scan
	DefaultUsername string `yaml:"default_username,omitempty"` // Account name pre-filled in the start form
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:  1,
		Backends: make(map[string]*Backend),
		Bots:     make(map[string]*BotMeta),
		Preferences: &Preferences{
			AutoDiscover:    true,
			DiscoverTimeout: 10,
		},
	}
}

// GetBackend retrieves backend metadata by instance name.
// Returns nil if the backend doesn't exist in the registry.
func (r *Registry) GetBackend(name string) *Backend {
	return r.Backends[name]
}

// EnsureBackend ensures a backend entry exists in the registry.
// If the entry doesn't exist, creates a new one.
// Returns the entry (existing or newly created).
func (r *Registry) EnsureBackend(name string) *Backend {
	if r.Backends == nil {
		r.Backends = make(map[string]*Backend)
	}

	if backend, exists := r.Backends[name]; exists {
		return backend
	}

	backend := &Backend{}
	r.Backends[name] = backend
	return backend
}

// UpdateBackendLastSeen updates the last seen timestamp and URL for a backend.
func (r *Registry) UpdateBackendLastSeen(name, url string) {
	backend := r.EnsureBackend(name)
	backend.LastSeen = time.Now()
	backend.LastURL = url
}

// SetBackendNickname sets a user-friendly nickname for a backend.
func (r *Registry) SetBackendNickname(name, nickname string) {
	r.EnsureBackend(name).Nickname = nickname
}

// GetBot retrieves bot metadata by bot ID.
// Returns nil if the bot doesn't exist in the registry.
func (r *Registry) GetBot(botID string) *BotMeta {
	return r.Bots[botID]
}

// EnsureBot ensures a bot entry exists in the registry.
func (r *Registry) EnsureBot(botID string) *BotMeta {
	if r.Bots == nil {
		r.Bots = make(map[string]*BotMeta)
	}

	if bot, exists := r.Bots[botID]; exists {
		return bot
	}

	bot := &BotMeta{}
	r.Bots[botID] = bot
	return bot
}

// RecordBotStart remembers when and as whom a bot was last started.
func (r *Registry) RecordBotStart(botID, username string) {
	bot := r.EnsureBot(botID)
	bot.Username = username
	bot.LastStarted = time.Now()
}

// SetBotNickname sets a user-friendly nickname for a bot.
func (r *Registry) SetBotNickname(botID, nickname string) {
	r.EnsureBot(botID).Nickname = nickname
}

// SetBotConfigPath remembers where a bot's configuration was last
// imported from or exported to.
func (r *Registry) SetBotConfigPath(botID, path string) {
	r.EnsureBot(botID).ConfigPath = path
}
