// Package monitor implements the backend connectivity monitor: a
// recurring liveness probe driving a two-state machine whose transitions
// update the dashboard's status indicator.
package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/osrsbots/botdash/internal/logging"
)

const (
	// DefaultInterval is the period between probes.
	DefaultInterval = 30 * time.Second

	// DefaultInitialDelay schedules one probe shortly after startup so
	// the indicator does not wait a full interval for its first update.
	DefaultInitialDelay = 1 * time.Second

	// DefaultProbeTimeout bounds a single probe. It is far smaller than
	// the interval, so a probe always finishes before the next one is
	// scheduled.
	DefaultProbeTimeout = 10 * time.Second
)

// Prober performs a single liveness check against the backend.
// A nil error means connected; any error means disconnected.
type Prober interface {
	Probe(ctx context.Context) error
}

// ProberFunc adapts a plain function to the Prober interface.
type ProberFunc func(ctx context.Context) error

// Probe implements Prober.
func (f ProberFunc) Probe(ctx context.Context) error { return f(ctx) }

// Monitor periodically probes the backend and reports state transitions.
// Probe failures are absorbed: the timer loop runs until Stop is called
// regardless of individual probe outcomes.
type Monitor struct {
	// Interval is the probe period. Set before Start.
	Interval time.Duration

	// InitialDelay is the delay before the first probe. Set before Start.
	InitialDelay time.Duration

	// ProbeTimeout bounds each individual probe. Set before Start.
	ProbeTimeout time.Duration

	prober   Prober
	onChange func(State)

	mu    sync.Mutex
	state State

	stopCh   chan struct{}
	stopOnce sync.Once
	started  bool
}

// New creates a monitor that probes with p and calls onChange on every
// state transition. onChange runs on the monitor's goroutine.
//
// When onChange is nil the monitor is inert: Start is a no-op and no
// timers are created. This mirrors a dashboard page without a status
// indicator, where monitoring would be pure overhead.
func New(p Prober, onChange func(State)) *Monitor {
	return &Monitor{
		Interval:     DefaultInterval,
		InitialDelay: DefaultInitialDelay,
		ProbeTimeout: DefaultProbeTimeout,
		prober:       p,
		onChange:     onChange,
		state:        Connected,
		stopCh:       make(chan struct{}),
	}
}

// State returns the current connectivity state.
func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Start launches the probe loop. Calling Start more than once has no
// effect, as does starting an inert monitor.
func (m *Monitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started || m.onChange == nil || m.prober == nil {
		return
	}
	m.started = true
	go m.run()
}

// Stop terminates the probe loop. It is safe to call multiple times and
// safe to call on a monitor that never started.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

func (m *Monitor) run() {
	timer := time.NewTimer(m.InitialDelay)
	defer timer.Stop()

	for {
		select {
		case <-m.stopCh:
			return
		case <-timer.C:
			m.probeOnce()
			timer.Reset(m.Interval)
		}
	}
}

// probeOnce performs a single probe and applies the transition. Errors
// from the prober never propagate beyond this function.
func (m *Monitor) probeOnce() {
	defer func() {
		if r := recover(); r != nil {
			logging.Warn("Probe panicked", zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), m.ProbeTimeout)
	err := m.prober.Probe(ctx)
	cancel()

	m.apply(err == nil)
	if err != nil {
		logging.Debug("Probe failed", zap.Error(err))
	}
}

// apply feeds one probe outcome through the state machine and notifies
// the change callback on transitions.
func (m *Monitor) apply(ok bool) {
	m.mu.Lock()
	next, changed := Transition(m.state, ok)
	m.state = next
	m.mu.Unlock()

	if changed {
		logging.Info("Connectivity changed", zap.String("state", next.String()))
		m.onChange(next)
	}
}
