package ui

import (
	"strings"
	"testing"
)

func TestGetTerminalWidthBounds(t *testing.T) {
	width := GetTerminalWidth()
	if width < MinTerminalWidth || width > MaxContentWidth {
		t.Errorf("GetTerminalWidth() = %d, want within [%d, %d]",
			width, MinTerminalWidth, MaxContentWidth)
	}
}

func TestGetTerminalSizeBounds(t *testing.T) {
	width, height := GetTerminalSize()
	if width < MinTerminalWidth || width > MaxContentWidth {
		t.Errorf("width = %d, want within [%d, %d]", width, MinTerminalWidth, MaxContentWidth)
	}
	if height <= 0 {
		t.Errorf("height = %d, want positive", height)
	}
}

func TestRenderBanner(t *testing.T) {
	banner := RenderBanner("Bots", "http://127.0.0.1:5000")
	if !strings.Contains(banner, "Bots") {
		t.Error("banner should contain the title")
	}
	if !strings.Contains(banner, "http://127.0.0.1:5000") {
		t.Error("banner should contain the subtitle")
	}
}

func TestRenderBannerWithoutSubtitle(t *testing.T) {
	banner := RenderBanner("Bots", "")
	if !strings.Contains(banner, "Bots") {
		t.Error("banner should contain the title")
	}
}

func TestRenderDetailPanel(t *testing.T) {
	panel := RenderDetailPanel("Fisher", []DetailRow{
		{Label: "ID", Value: "fisher"},
		{Label: "Description", Value: "Fishes at the dock"},
		{Label: "Parameters", Value: "3"},
	})

	for _, want := range []string{"Fisher", "fisher", "Fishes at the dock", "Parameters", "3"} {
		if !strings.Contains(panel, want) {
			t.Errorf("panel should contain %q", want)
		}
	}
}

func TestRenderDetailPanelSkipsEmptyValues(t *testing.T) {
	panel := RenderDetailPanel("Miner", []DetailRow{
		{Label: "ID", Value: "miner"},
		{Label: "Description", Value: ""},
	})

	if strings.Contains(panel, "Description") {
		t.Error("rows with empty values should be skipped")
	}
}
