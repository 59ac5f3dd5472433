package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/osrsbots/botdash/internal/notify"
)

// toastColor maps a toast severity to its accent color.
func toastColor(level notify.Level) lipgloss.Color {
	switch level {
	case notify.LevelSuccess:
		return SuccessColor
	case notify.LevelWarning:
		return WarningColor
	case notify.LevelDanger:
		return DangerColor
	default:
		return InfoColor
	}
}

// RenderToast renders a single toast as a bordered box in the color of
// its severity.
func RenderToast(t notify.Toast, width int) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(toastColor(t.Level)).
		Padding(0, 1)
	if width > 0 {
		style = style.MaxWidth(width)
	}
	return style.Render(t.Message)
}

// RenderToasts stacks the given toasts vertically, newest last.
func RenderToasts(toasts []notify.Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}
	rendered := make([]string, len(toasts))
	for i, t := range toasts {
		rendered[i] = RenderToast(t, width)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}
