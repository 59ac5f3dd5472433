package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/osrsbots/botdash/internal/monitor"
)

// Connection indicator markers
const (
	ConnectedMarker    = "●"
	DisconnectedMarker = "○"
)

// RenderConnectionStatus renders the backend connectivity indicator:
// a colored marker followed by the state label.
func RenderConnectionStatus(state monitor.State) string {
	switch state {
	case monitor.Connected:
		return RunningStyle.Render(ConnectedMarker + " " + state.String())
	default:
		return DisconnectedStyle.Render(DisconnectedMarker + " " + state.String())
	}
}

// RenderBotStatus renders a bot's runtime status word in the color the
// dashboard uses for that state.
func RenderBotStatus(status string) string {
	switch status {
	case "running":
		return RunningStyle.Render(status)
	case "paused":
		return PausedStyle.Render(status)
	case "terminated":
		return DisconnectedStyle.Render(status)
	default:
		return LabelStyle.Render(status)
	}
}

// Swatch renders a small block of the given hex color, used next to the
// live color preview in the config form.
func Swatch(hex string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(hex)).
		Render("██")
}
