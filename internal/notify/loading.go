package notify

// SpinnerGlyph prefixes the busy label of a loading control.
const SpinnerGlyph = "⏳"

// Control is a UI control that can be marked busy around an asynchronous
// action. While busy it is disabled and its label is replaced with a
// spinner glyph plus the supplied text; StopLoading restores the
// original label.
type Control struct {
	Label    string
	Disabled bool

	original string
	busy     bool
}

// StartLoading marks the control busy. Calling it on an already-busy
// control only updates the busy text, keeping the first stored label.
func (c *Control) StartLoading(text string) {
	if !c.busy {
		c.original = c.Label
		c.busy = true
	}
	c.Label = SpinnerGlyph + " " + text
	c.Disabled = true
}

// StopLoading restores the control. A control with no stored label is
// left untouched, so restore is always safe to call.
func (c *Control) StopLoading() {
	if !c.busy {
		return
	}
	c.Label = c.original
	c.Disabled = false
	c.original = ""
	c.busy = false
}

// Busy reports whether the control is currently marked busy.
func (c *Control) Busy() bool { return c.busy }
