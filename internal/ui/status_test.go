package ui

import (
	"strings"
	"testing"

	"github.com/osrsbots/botdash/internal/monitor"
	"github.com/osrsbots/botdash/internal/notify"
)

func TestRenderConnectionStatusLabels(t *testing.T) {
	connected := RenderConnectionStatus(monitor.Connected)
	if !strings.Contains(connected, "running") {
		t.Errorf("connected indicator = %q, should contain 'running'", connected)
	}

	disconnected := RenderConnectionStatus(monitor.Disconnected)
	if !strings.Contains(disconnected, "disconnected") {
		t.Errorf("disconnected indicator = %q, should contain 'disconnected'", disconnected)
	}
}

func TestRenderBotStatusPassesTextThrough(t *testing.T) {
	for _, status := range []string{"running", "paused", "terminated", "not_running"} {
		if got := RenderBotStatus(status); !strings.Contains(got, status) {
			t.Errorf("RenderBotStatus(%q) = %q, should contain the status word", status, got)
		}
	}
}

func TestRenderToastsEmpty(t *testing.T) {
	if got := RenderToasts(nil, 80); got != "" {
		t.Errorf("RenderToasts(nil) = %q, want empty", got)
	}
}

func TestRenderToastContainsMessage(t *testing.T) {
	toast := notify.Toast{Message: "Backend refused connection", Level: notify.LevelDanger}
	if got := RenderToast(toast, 80); !strings.Contains(got, "Backend refused connection") {
		t.Errorf("RenderToast() = %q, should contain the message", got)
	}
}
