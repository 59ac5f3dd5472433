// Package ui holds the shared visual vocabulary of the dashboard:
// the color palette, lipgloss styles, and small render helpers used by
// both the interactive TUI and the one-shot CLI commands.
//
// Keeping these in one place means the connectivity indicator, bot
// status words and toast boxes look the same whether they are drawn
// inside the Bubble Tea program or printed by a plain command.
package ui
