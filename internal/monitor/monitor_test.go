package monitor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name        string
		prev        State
		ok          bool
		wantNext    State
		wantChanged bool
	}{
		{"connected stays connected", Connected, true, Connected, false},
		{"connected drops", Connected, false, Disconnected, true},
		{"disconnected recovers", Disconnected, true, Connected, true},
		{"disconnected stays down", Disconnected, false, Disconnected, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, changed := Transition(tt.prev, tt.ok)
			if next != tt.wantNext || changed != tt.wantChanged {
				t.Errorf("Transition(%v, %v) = (%v, %v), want (%v, %v)",
					tt.prev, tt.ok, next, changed, tt.wantNext, tt.wantChanged)
			}
		})
	}
}

func TestStateString(t *testing.T) {
	if Connected.String() != "running" {
		t.Errorf("Connected.String() = %q, want running", Connected.String())
	}
	if Disconnected.String() != "disconnected" {
		t.Errorf("Disconnected.String() = %q, want disconnected", Disconnected.String())
	}
}

func TestTransitionSequenceUpdatesOnlyOnChange(t *testing.T) {
	// Probe outcomes [fail, fail, success, success, fail] must repaint
	// the indicator exactly three times: at indices 0, 2 and 4.
	var updates []State
	m := New(nil, func(s State) { updates = append(updates, s) })
	m.prober = ProberFunc(func(context.Context) error { return nil })

	outcomes := []bool{false, false, true, true, false}
	for _, ok := range outcomes {
		m.apply(ok)
	}

	want := []State{Disconnected, Connected, Disconnected}
	if len(updates) != len(want) {
		t.Fatalf("got %d indicator updates (%v), want %d", len(updates), updates, len(want))
	}
	for i := range want {
		if updates[i] != want[i] {
			t.Errorf("update[%d] = %v, want %v", i, updates[i], want[i])
		}
	}
}

func TestMonitorSurvivesProbeErrors(t *testing.T) {
	var mu sync.Mutex
	probes := 0

	prober := ProberFunc(func(context.Context) error {
		mu.Lock()
		defer mu.Unlock()
		probes++
		if probes%2 == 0 {
			return errors.New("connection refused")
		}
		return nil
	})

	m := New(prober, func(State) {})
	m.InitialDelay = time.Millisecond
	m.Interval = 5 * time.Millisecond
	m.Start()
	defer m.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		n := probes
		mu.Unlock()
		if n >= 4 {
			return // loop kept running across failures
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("probe loop stalled after failures")
}

func TestMonitorStop(t *testing.T) {
	var mu sync.Mutex
	probes := 0

	m := New(ProberFunc(func(context.Context) error {
		mu.Lock()
		probes++
		mu.Unlock()
		return nil
	}), func(State) {})
	m.InitialDelay = time.Millisecond
	m.Interval = 2 * time.Millisecond
	m.Start()

	time.Sleep(20 * time.Millisecond)
	m.Stop()
	m.Stop() // idempotent

	mu.Lock()
	after := probes
	mu.Unlock()
	time.Sleep(20 * time.Millisecond)

	mu.Lock()
	final := probes
	mu.Unlock()
	// Allow one in-flight probe to drain, but the loop must be dead.
	if final > after+1 {
		t.Errorf("probes continued after Stop(): %d -> %d", after, final)
	}
}

func TestMonitorInertWithoutIndicator(t *testing.T) {
	m := New(ProberFunc(func(context.Context) error { return nil }), nil)
	m.Start() // must not spawn anything
	m.Stop()

	if m.State() != Connected {
		t.Errorf("inert monitor state = %v, want Connected default", m.State())
	}
}

func TestMonitorSurvivesProberPanic(t *testing.T) {
	m := New(ProberFunc(func(context.Context) error { panic("boom") }), func(State) {})
	// Direct call: the panic must be absorbed.
	m.probeOnce()
}
