package botapi

import "encoding/json"

// BotInfo describes a bot registered with the backend, as returned by
// the bot listing endpoint. ConfigParams maps parameter names to their
// typed descriptors; DefaultConfig holds the plain default values.
type BotInfo struct {
	ID            string                     `json:"id"`
	Name          string                     `json:"name"`
	Description   string                     `json:"description"`
	FilePath      string                     `json:"file_path"`
	ModuleName    string                     `json:"module_name"`
	ConfigParams  map[string]ParamDescriptor `json:"config_params"`
	DefaultConfig map[string]json.RawMessage `json:"default_config"`
}

// ParamDescriptor is a typed configuration parameter advertised by a
// bot. Value is left raw because its shape depends on Type ("RGB",
// "Range", plain scalars and so on); internal/params decodes the typed
// envelopes.
type ParamDescriptor struct {
	Type        string          `json:"type"`
	Value       json.RawMessage `json:"value"`
	Description string          `json:"description"`
	Min         *float64        `json:"min,omitempty"`
	Max         *float64        `json:"max,omitempty"`
}

// BotStatus reports the runtime state of a bot. Status is one of
// "running", "paused", "terminated" or "not_running"; the remaining
// fields are only populated while the bot is alive.
type BotStatus struct {
	Status    string  `json:"status"`
	Paused    bool    `json:"paused"`
	Runtime   float64 `json:"runtime"`
	StartTime float64 `json:"start_time"`
}

// Running reports whether the bot is executing (running or paused).
func (s BotStatus) Running() bool {
	return s.Status == StatusRunning || s.Status == StatusPaused
}

// Bot status values used by the backend.
const (
	StatusRunning    = "running"
	StatusPaused     = "paused"
	StatusTerminated = "terminated"
	StatusNotRunning = "not_running"
)

// Control actions accepted by the bot control endpoint.
const (
	ActionPause     = "pause"
	ActionResume    = "resume"
	ActionTerminate = "terminate"
)

// startRequest is the body of a bot start call.
type startRequest struct {
	Config   map[string]json.RawMessage `json:"config"`
	Username string                     `json:"username"`
}

// controlRequest is the body of a bot control call.
type controlRequest struct {
	Action string `json:"action"`
	Value  any    `json:"value,omitempty"`
}

// successResponse is the uniform acknowledgement body for mutating
// calls.
type successResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// loggingPortResponse carries the websocket log-stream port.
type loggingPortResponse struct {
	Port int `json:"port"`
}
