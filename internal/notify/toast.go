package notify

import "time"

// Level is the severity of a toast notification.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelDanger
)

// String returns the wire name of the level.
func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelDanger:
		return "danger"
	default:
		return "info"
	}
}

// ParseLevel maps a wire name to a Level. Unknown names fall back to
// info, the default severity.
func ParseLevel(s string) Level {
	switch s {
	case "success":
		return LevelSuccess
	case "warning":
		return LevelWarning
	case "danger", "error":
		return LevelDanger
	default:
		return LevelInfo
	}
}

// Toast is an ephemeral, auto-dismissing message.
type Toast struct {
	Message   string
	Level     Level
	CreatedAt time.Time
}
