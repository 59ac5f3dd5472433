package monitor

// State is the connectivity state of the backend as seen by the monitor.
type State int

const (
	// Disconnected means the last probe failed.
	Disconnected State = iota
	// Connected means the last probe succeeded.
	Connected
)

// String returns the status text the dashboard displays for the state.
func (s State) String() string {
	if s == Connected {
		return "running"
	}
	return "disconnected"
}

// Transition is the pure state function: given the previous state and a
// probe outcome it returns the next state and whether the state changed.
// The caller repaints the indicator only when changed is true, so
// repeated identical probe results cause no display churn.
func Transition(prev State, ok bool) (next State, changed bool) {
	if ok {
		return Connected, prev != Connected
	}
	return Disconnected, prev != Disconnected
}
