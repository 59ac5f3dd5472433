package tui

import (
	"strings"
	"testing"

	"github.com/osrsbots/botdash/internal/botapi"
	"github.com/osrsbots/botdash/internal/registry"
	"github.com/osrsbots/botdash/internal/ui"
)

func TestSortBotsOrdersByName(t *testing.T) {
	bots := map[string]botapi.BotInfo{
		"c": {ID: "c", Name: "Woodcutter"},
		"a": {ID: "a", Name: "Fisher"},
		"b": {ID: "b", Name: "Miner"},
	}

	sorted := sortBots(bots)

	want := []string{"Fisher", "Miner", "Woodcutter"}
	for i, name := range want {
		if sorted[i].Name != name {
			t.Errorf("sorted[%d].Name = %q, want %q", i, sorted[i].Name, name)
		}
	}
}

func TestSortBotsFillsMissingID(t *testing.T) {
	bots := map[string]botapi.BotInfo{
		"fisher": {Name: "Fisher"},
	}
	sorted := sortBots(bots)
	if sorted[0].ID != "fisher" {
		t.Errorf("ID = %q, want map key fallback", sorted[0].ID)
	}
}

func TestUsernameForPrefersBotRecord(t *testing.T) {
	reg := registry.NewRegistry()
	reg.Preferences.DefaultUsername = "default_account"
	reg.EnsureBot("fisher").Username = "fisher_account"

	m := NewDashboardModel(nil, reg)

	if got := m.usernameFor("fisher"); got != "fisher_account" {
		t.Errorf("usernameFor(fisher) = %q, want the bot's own record", got)
	}
	if got := m.usernameFor("miner"); got != "default_account" {
		t.Errorf("usernameFor(miner) = %q, want the registry default", got)
	}
}

func TestUsernameForNilRegistry(t *testing.T) {
	m := NewDashboardModel(nil, nil)
	if got := m.usernameFor("fisher"); got != "" {
		t.Errorf("usernameFor with nil registry = %q, want empty", got)
	}
}

func TestDashboardViewListsBots(t *testing.T) {
	m := NewDashboardModel(nil, nil)
	m.loading = false
	m.bots = []botapi.BotInfo{
		{ID: "fisher", Name: "Fisher", Description: "Fishes at the dock"},
		{ID: "miner", Name: "Miner"},
	}
	m.statuses["fisher"] = botapi.BotStatus{Status: botapi.StatusRunning, Runtime: 65}

	view := m.View()
	for _, want := range []string{"Fisher", "Miner", "running", "Fishes at the dock"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}

func TestDashboardViewShowsBusyModal(t *testing.T) {
	m := NewDashboardModel(nil, nil)
	m.loading = false
	m.bots = []botapi.BotInfo{{ID: "fisher", Name: "Fisher"}}
	m.action.StartLoading("Starting Fisher...")

	view := m.View()
	if !strings.Contains(view, "Starting Fisher...") {
		t.Error("busy view should contain the action label")
	}
	if !strings.Contains(view, "░") {
		t.Error("busy view should dim the backdrop")
	}
}

func TestNewDashboardModelSizesFromTerminal(t *testing.T) {
	m := NewDashboardModel(nil, nil)
	if m.width < ui.MinTerminalWidth || m.width > ui.MaxContentWidth {
		t.Errorf("width = %d, want within [%d, %d]", m.width, ui.MinTerminalWidth, ui.MaxContentWidth)
	}
	if m.height <= 0 {
		t.Errorf("height = %d, want positive", m.height)
	}
}

func TestFormatRuntime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{5, "5s"},
		{65, "1m05s"},
		{3600, "1h00m00s"},
		{3725, "1h02m05s"},
	}
	for _, tt := range tests {
		if got := FormatRuntime(tt.seconds); got != tt.want {
			t.Errorf("FormatRuntime(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestTrimHeight(t *testing.T) {
	view := "one\ntwo\nthree"

	if got := trimHeight(view, 2); got != "one\ntwo" {
		t.Errorf("trimHeight(2) = %q", got)
	}
	if got := trimHeight(view, 0); got != "" {
		t.Errorf("trimHeight(0) = %q", got)
	}
	if got := trimHeight(view, 10); got != view {
		t.Errorf("trimHeight beyond height should return the input, got %q", got)
	}
}
