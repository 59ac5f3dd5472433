package ui

import "github.com/charmbracelet/lipgloss"

// RenderBanner renders the header block the one-shot commands print
// before their output: a title line and an optional subtitle (usually
// the backend address) inside the header border.
func RenderBanner(title, subtitle string) string {
	content := TitleStyle.Render(title)
	if subtitle != "" {
		content = lipgloss.JoinVertical(
			lipgloss.Left,
			content,
			SubtitleStyle.Render(subtitle),
		)
	}
	return HeaderBorderStyle(GetTerminalWidth()).Render(content)
}

// DetailRow is one label/value line inside a detail panel.
type DetailRow struct {
	Label string
	Value string
}

// RenderDetailPanel renders a titled key/value panel, used by the CLI
// to print one bot or backend per box. Rows with an empty value are
// skipped so callers can pass optional fields unconditionally.
func RenderDetailPanel(title string, rows []DetailRow) string {
	labelWidth := 0
	for _, row := range rows {
		if row.Value != "" && len(row.Label) > labelWidth {
			labelWidth = len(row.Label)
		}
	}

	lines := []string{ValueStyle.Bold(true).Render(title)}
	for _, row := range rows {
		if row.Value == "" {
			continue
		}
		label := row.Label
		for len(label) < labelWidth {
			label += " "
		}
		lines = append(lines, LabelStyle.Render(label+"  ")+ValueStyle.Render(row.Value))
	}

	return PanelBorderStyle(GetTerminalWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, lines...))
}
