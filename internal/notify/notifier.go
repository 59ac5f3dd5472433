// Package notify provides the dashboard's reusable UI primitives:
// toast notifications, busy-state handling for controls, and a debounce
// wrapper for chatty event sources.
//
// Toast display has two variants behind a common interface. TimedNotifier
// is the minimal implementation: it keeps its own list of live toasts and
// expires each one after a fixed delay. ProgramNotifier delegates to a
// running Bubble Tea program, which owns dismissal timing the way a
// richer UI toolkit would. Select picks the appropriate variant at
// startup based on what is available.
package notify

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultDismissAfter is how long a toast stays visible in the minimal
// timeout-based notifier.
const DefaultDismissAfter = 3 * time.Second

// Notifier displays a transient message to the user.
type Notifier interface {
	Notify(message string, level Level)
}

// NotifierFunc adapts a plain function to the Notifier interface.
type NotifierFunc func(message string, level Level)

// Notify implements Notifier.
func (f NotifierFunc) Notify(message string, level Level) { f(message, level) }

// Nop is a Notifier that discards everything. Useful for headless
// commands and tests.
var Nop Notifier = NotifierFunc(func(string, Level) {})

// TimedNotifier is the minimal toast implementation: each toast
// self-dismisses after a fixed timeout. The internal list is created
// lazily on first use.
type TimedNotifier struct {
	// DismissAfter is the toast lifetime. Zero means DefaultDismissAfter.
	DismissAfter time.Duration

	mu     sync.Mutex
	toasts []Toast
	timers []*time.Timer
}

// NewTimed creates a timeout-based notifier.
func NewTimed(dismissAfter time.Duration) *TimedNotifier {
	return &TimedNotifier{DismissAfter: dismissAfter}
}

// Notify implements Notifier. The toast is appended to the live list and
// removed automatically once its lifetime elapses.
func (n *TimedNotifier) Notify(message string, level Level) {
	lifetime := n.DismissAfter
	if lifetime <= 0 {
		lifetime = DefaultDismissAfter
	}

	t := Toast{Message: message, Level: level, CreatedAt: time.Now()}

	n.mu.Lock()
	n.toasts = append(n.toasts, t)
	timer := time.AfterFunc(lifetime, func() { n.dismiss(t) })
	n.timers = append(n.timers, timer)
	n.mu.Unlock()
}

// Active returns a snapshot of the toasts currently visible.
func (n *TimedNotifier) Active() []Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Toast, len(n.toasts))
	copy(out, n.toasts)
	return out
}

// Close cancels all pending dismissal timers and clears the list.
func (n *TimedNotifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, t := range n.timers {
		t.Stop()
	}
	n.timers = nil
	n.toasts = nil
}

func (n *TimedNotifier) dismiss(t Toast) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i := range n.toasts {
		if n.toasts[i] == t {
			n.toasts = append(n.toasts[:i], n.toasts[i+1:]...)
			return
		}
	}
}

// ToastMsg is published to a Bubble Tea program when a toast is raised.
// The program schedules its own expiry and removes the toast from its
// view once the hide completes.
type ToastMsg struct {
	Toast Toast
}

// MsgTarget is the part of *tea.Program the richer notifier needs.
type MsgTarget interface {
	Send(msg tea.Msg)
}

// ProgramNotifier delegates toast display to a running Bubble Tea
// program. Safe to call from any goroutine.
type ProgramNotifier struct {
	target MsgTarget
}

// NewProgram creates a notifier that forwards toasts to p.
func NewProgram(p MsgTarget) *ProgramNotifier {
	return &ProgramNotifier{target: p}
}

// Notify implements Notifier.
func (n *ProgramNotifier) Notify(message string, level Level) {
	n.target.Send(ToastMsg{Toast: Toast{Message: message, Level: level, CreatedAt: time.Now()}})
}

// Select returns the richer program-backed notifier when a program is
// available, otherwise the minimal timeout-based one.
func Select(p MsgTarget, dismissAfter time.Duration) Notifier {
	if p != nil {
		return NewProgram(p)
	}
	return NewTimed(dismissAfter)
}
