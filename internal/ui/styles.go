package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Color palette for the dashboard UI
var (
	// Primary colors
	PrimaryColor = lipgloss.Color("#7D56F4") // Purple - headers, borders
	SuccessColor = lipgloss.Color("#43BF6D") // Green - success, running bots
	DangerColor  = lipgloss.Color("#FF5555") // Red - errors, disconnected state
	WarningColor = lipgloss.Color("#FFA500") // Orange - warnings, paused bots
	InfoColor    = lipgloss.Color("#5FAFFF") // Blue - informational toasts
	MutedColor   = lipgloss.Color("#626262") // Gray - secondary info
	TextColor    = lipgloss.Color("#FFFFFF") // White - main content
)

// Layout constants
const (
	MinTerminalWidth = 60  // Minimum supported terminal width
	MaxContentWidth  = 100 // Maximum content width before capping
	DefaultPadding   = 2   // Default padding inside boxes
)

// Shared styles for the dashboard UI
var (
	// TitleStyle is for screen titles (e.g., "OSRS BOT DASHBOARD")
	TitleStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true).
			PaddingLeft(2)

	// SubtitleStyle is for the backend address line under the title
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			PaddingLeft(2)

	// LabelStyle is for form field labels and detail keys
	LabelStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	// ValueStyle is for detail values
	ValueStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	// RunningStyle is for running bot rows and the connected indicator
	RunningStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// PausedStyle is for paused bot rows
	PausedStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// DisconnectedStyle is for the disconnected indicator and errors
	DisconnectedStyle = lipgloss.NewStyle().
				Foreground(DangerColor).
				Bold(true)

)

// GetTerminalWidth returns the current terminal width, with fallback
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}

// GetTerminalSize returns the current terminal width and height
func GetTerminalSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return MinTerminalWidth, 24 // Default fallback
	}
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if width > MaxContentWidth {
		width = MaxContentWidth
	}
	return width, height
}

// HeaderBorderStyle returns the border style for the dashboard header
func HeaderBorderStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Width(width - 2) // Account for border characters
}

// PanelBorderStyle returns the border style for content panels
func PanelBorderStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(MutedColor).
		Width(width - 2).
		Padding(0, 1)
}
