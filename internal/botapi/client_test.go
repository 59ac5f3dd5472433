package botapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/osrsbots/botdash/internal/notify"
)

// toastRecorder captures toasts raised by failed calls.
type toastRecorder struct {
	mu     sync.Mutex
	toasts []notify.Toast
}

func (r *toastRecorder) Notify(message string, level notify.Level) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, notify.Toast{Message: message, Level: level})
}

func (r *toastRecorder) all() []notify.Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notify.Toast, len(r.toasts))
	copy(out, r.toasts)
	return out
}

func TestPingUsesHeadAndReadsNoBody(t *testing.T) {
	var method, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClientWithURL(server.URL)
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	if method != http.MethodHead {
		t.Errorf("method = %q, want HEAD", method)
	}
	if path != "/api/bots" {
		t.Errorf("path = %q, want /api/bots", path)
	}
}

func TestPingClassifiesUnreachableBackend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // immediately, so the port refuses connections

	client := NewClientWithURL(server.URL)
	err := client.Ping(context.Background())
	if err == nil {
		t.Fatal("Ping() against closed server should fail")
	}
	if !IsNetworkError(err) {
		t.Errorf("error should classify as network-level: %v", err)
	}
}

func TestPingRejectsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	err := NewClientWithURL(server.URL).Ping(context.Background())
	if !IsHTTPError(err) {
		t.Errorf("Ping() = %v, want HTTP error", err)
	}
}

func TestPingFailureRaisesNoToast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	recorder := &toastRecorder{}
	client := NewClientWithURL(server.URL)
	client.Notifier = recorder

	_ = client.Ping(context.Background())
	if n := len(recorder.all()); n != 0 {
		t.Errorf("Ping raised %d toasts, want 0 (monitor owns probe reporting)", n)
	}
}

func TestListBots(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/bots" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"woodcutter": {
				"id": "woodcutter",
				"name": "Woodcutter",
				"description": "Chops trees",
				"config_params": {
					"marker_color": {"type": "RGB", "value": {"rgb": [255, 0, 100], "hex": "#ff0064"}, "description": "Marker Color"},
					"delay": {"type": "Range", "value": [1.5, 3.0], "description": "Delay"}
				},
				"default_config": {"delay": [1.5, 3.0]}
			}
		}`)
	}))
	defer server.Close()

	bots, err := NewClientWithURL(server.URL).ListBots(context.Background())
	if err != nil {
		t.Fatalf("ListBots() error = %v", err)
	}

	bot, ok := bots["woodcutter"]
	if !ok {
		t.Fatalf("bot missing from listing: %v", bots)
	}
	if bot.Name != "Woodcutter" {
		t.Errorf("Name = %q", bot.Name)
	}
	if got := bot.ConfigParams["marker_color"].Type; got != "RGB" {
		t.Errorf("marker_color type = %q, want RGB", got)
	}
	if got := bot.ConfigParams["delay"].Type; got != "Range" {
		t.Errorf("delay type = %q, want Range", got)
	}
}

func TestStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/bot/woodcutter/status" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"status": "paused", "paused": true, "runtime": 12.5, "start_time": 1000}`)
	}))
	defer server.Close()

	status, err := NewClientWithURL(server.URL).Status(context.Background(), "woodcutter")
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if status.Status != StatusPaused || !status.Paused {
		t.Errorf("status = %+v", status)
	}
	if !status.Running() {
		t.Error("a paused bot still counts as running")
	}
}

func TestStartSendsConfigAndUsername(t *testing.T) {
	var received startRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_, _ = io.WriteString(w, `{"success": true}`)
	}))
	defer server.Close()

	config := map[string]json.RawMessage{"delay": json.RawMessage(`[1.5, 3.0]`)}
	err := NewClientWithURL(server.URL).Start(context.Background(), "woodcutter", config, "zezima")
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if received.Username != "zezima" {
		t.Errorf("username = %q", received.Username)
	}
	if string(received.Config["delay"]) != `[1.5,3.0]` && string(received.Config["delay"]) != `[1.5, 3.0]` {
		t.Errorf("config delay = %s", received.Config["delay"])
	}
}

func TestStartRefusalBecomesErrorAndToast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success": false}`)
	}))
	defer server.Close()

	recorder := &toastRecorder{}
	client := NewClientWithURL(server.URL)
	client.Notifier = recorder

	err := client.Start(context.Background(), "woodcutter", nil, "")
	if err == nil {
		t.Fatal("refused start should return an error")
	}

	toasts := recorder.all()
	if len(toasts) != 1 {
		t.Fatalf("got %d toasts, want 1", len(toasts))
	}
	if toasts[0].Level != notify.LevelDanger {
		t.Errorf("toast level = %v, want danger", toasts[0].Level)
	}
}

func TestControlSendsAction(t *testing.T) {
	var received controlRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/bot/woodcutter/control" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_, _ = io.WriteString(w, `{"success": true}`)
	}))
	defer server.Close()

	err := NewClientWithURL(server.URL).Control(context.Background(), "woodcutter", ActionPause, nil)
	if err != nil {
		t.Fatalf("Control() error = %v", err)
	}
	if received.Action != ActionPause {
		t.Errorf("action = %q, want pause", received.Action)
	}
}

func TestGetConfigNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error": "Bot not found"}`)
	}))
	defer server.Close()

	recorder := &toastRecorder{}
	client := NewClientWithURL(server.URL)
	client.Notifier = recorder

	_, err := client.GetConfig(context.Background(), "ghost")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
		t.Fatalf("GetConfig() error = %v, want 404 APIError", err)
	}
	if len(recorder.all()) != 1 {
		t.Errorf("got %d toasts, want 1", len(recorder.all()))
	}
}

func TestSaveConfig(t *testing.T) {
	var received map[string]json.RawMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode body: %v", err)
		}
		_, _ = io.WriteString(w, `{"success": true}`)
	}))
	defer server.Close()

	config := map[string]json.RawMessage{
		"marker_color": json.RawMessage(`{"type":"RGB","value":{"rgb":[255,0,100],"hex":"#ff0064"}}`),
	}
	err := NewClientWithURL(server.URL).SaveConfig(context.Background(), "woodcutter", config)
	if err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}
	if _, ok := received["marker_color"]; !ok {
		t.Errorf("body missing marker_color: %v", received)
	}
}

func TestLoggingPort(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/logging/port" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"port": 8765}`)
	}))
	defer server.Close()

	port, err := NewClientWithURL(server.URL).LoggingPort(context.Background())
	if err != nil {
		t.Fatalf("LoggingPort() error = %v", err)
	}
	if port != 8765 {
		t.Errorf("port = %d, want 8765", port)
	}
}

func TestMalformedResponseIsParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `not json`)
	}))
	defer server.Close()

	_, err := NewClientWithURL(server.URL).ListBots(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Type != ErrTypeParse {
		t.Fatalf("ListBots() error = %v, want parse error", err)
	}
}

func TestRequestHonoursContextCancellation(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewClientWithURL(server.URL).ListBots(ctx)
	if err == nil {
		t.Fatal("cancelled request should fail")
	}
}

func TestShortMessageForStatuses(t *testing.T) {
	err := newHTTPError(503, "unexpected status code: 503")
	if got := ShortMessage(err); got != "Backend error (HTTP 503)" {
		t.Errorf("ShortMessage() = %q", got)
	}
}
