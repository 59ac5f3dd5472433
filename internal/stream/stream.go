// Package stream subscribes to the backend's websocket channel and
// turns its notification frames into toasts.
//
// The backend pushes JSON text frames of the form:
//
//	{"type": "notification", "message": "...", "level": "warning", "timestamp": "..."}
//
// Frames with any other type field belong to the log viewer and are
// ignored here.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/osrsbots/botdash/internal/logging"
	"github.com/osrsbots/botdash/internal/notify"
	"go.uber.org/zap"
)

// DefaultReconnectDelay is how long the listener waits before redialing
// a dropped connection.
const DefaultReconnectDelay = 5 * time.Second

// frame is the wire shape of a backend push message.
type frame struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Level     string `json:"level"`
	Timestamp string `json:"timestamp"`
}

// Listener maintains a websocket subscription to the backend and
// forwards notification frames to a Notifier. Configure the exported
// fields before calling Start.
type Listener struct {
	// URL is the websocket endpoint (e.g. "ws://127.0.0.1:8765").
	URL string

	// Notifier receives one toast per notification frame.
	Notifier notify.Notifier

	// ReconnectDelay is the pause between redial attempts. Zero means
	// DefaultReconnectDelay.
	ReconnectDelay time.Duration

	// Dialer is the websocket dialer. Nil means websocket.DefaultDialer.
	Dialer *websocket.Dialer

	cancel  context.CancelFunc
	done    chan struct{}
	mu      sync.Mutex
	started bool
}

// NewListener creates a listener for a backend notification port.
func NewListener(host string, port int, notifier notify.Notifier) *Listener {
	return &Listener{
		URL:      fmt.Sprintf("ws://%s:%d", host, port),
		Notifier: notifier,
	}
}

// Start launches the listen loop. The loop redials forever until Stop
// is called; a listener with no notifier has nothing to do and Start
// is a no-op.
func (l *Listener) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.started || l.Notifier == nil {
		return
	}
	l.started = true

	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.done = make(chan struct{})

	go l.run(ctx)
}

// Stop tears down the subscription and waits for the loop to exit.
// Safe to call multiple times.
func (l *Listener) Stop() {
	l.mu.Lock()
	if !l.started {
		l.mu.Unlock()
		return
	}
	l.started = false
	cancel, done := l.cancel, l.done
	l.mu.Unlock()

	cancel()
	<-done
}

func (l *Listener) run(ctx context.Context) {
	defer close(l.done)

	delay := l.ReconnectDelay
	if delay <= 0 {
		delay = DefaultReconnectDelay
	}

	for {
		if err := l.listenOnce(ctx); err != nil {
			logging.Warn("notification stream dropped",
				zap.String("url", l.URL),
				zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

// listenOnce dials the backend and consumes frames until the
// connection drops or ctx is cancelled.
func (l *Listener) listenOnce(ctx context.Context) error {
	dialer := l.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}

	conn, resp, err := dialer.DialContext(ctx, l.URL, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", l.URL, err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	defer func() { _ = conn.Close() }()

	logging.Info("notification stream connected", zap.String("url", l.URL))

	// Unblock ReadMessage when the context is cancelled.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-stop:
		}
	}()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if msgType != websocket.TextMessage {
			continue
		}
		l.handleFrame(data)
	}
}

func (l *Listener) handleFrame(data []byte) {
	var f frame
	if err := json.Unmarshal(data, &f); err != nil {
		logging.Debug("unparseable stream frame",
			zap.Int("length", len(data)),
			zap.Error(err))
		return
	}

	if f.Type != "notification" {
		return
	}

	logging.LogNotification(f.Level, f.Message)
	l.Notifier.Notify(f.Message, notify.ParseLevel(f.Level))
}
