package params

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// RGB represents a three-channel color parameter.
// Channels are integers in [0, 255]; out-of-range values are clamped at
// the encoding boundary rather than rejected, matching the dashboard's
// forgiving input handling.
type RGB struct {
	R int
	G int
	B int
}

// ClampChannel forces a channel value into the valid [0, 255] range.
func ClampChannel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// ChannelFromString parses a channel input string.
// Non-numeric text is treated as 0; the result is clamped to [0, 255].
func ChannelFromString(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return ClampChannel(v)
}

// Hex returns the 6-digit lowercase hex encoding of the color, prefixed
// with "#". The 24-bit value is computed as (1<<24)+(r<<16)+(g<<8)+b and
// truncated to its last six hex digits, which guarantees zero-padding for
// small channel values without a separate padding step.
func (c RGB) Hex() string {
	v := (1 << 24) + (ClampChannel(c.R) << 16) + (ClampChannel(c.G) << 8) + ClampChannel(c.B)
	s := strconv.FormatInt(int64(v), 16)
	return "#" + s[len(s)-6:]
}

// CSS returns the literal rgb(r,g,b) triple used for preview surfaces.
func (c RGB) CSS() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", ClampChannel(c.R), ClampChannel(c.G), ClampChannel(c.B))
}

// ParseHex parses a 6-hex-digit color string, optionally prefixed with
// "#", case-insensitively. The second return value is false for any
// string that does not match exactly 6 hex digits.
func ParseHex(s string) (RGB, bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return RGB{}, false
	}
	for _, r := range s {
		if !isHexDigit(r) {
			return RGB{}, false
		}
	}
	r, _ := strconv.ParseInt(s[0:2], 16, 32)
	g, _ := strconv.ParseInt(s[2:4], 16, 32)
	b, _ := strconv.ParseInt(s[4:6], 16, 32)
	return RGB{R: int(r), G: int(g), B: int(b)}, true
}

func isHexDigit(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
		return true
	case r >= 'a' && r <= 'f':
		return true
	case r >= 'A' && r <= 'F':
		return true
	}
	return false
}

// rgbEnvelope is the typed JSON encoding shared with the backend:
//
//	{"type":"RGB","value":{"rgb":[r,g,b],"hex":"#ff0064"}}
type rgbEnvelope struct {
	Type  string   `json:"type"`
	Value rgbValue `json:"value"`
}

type rgbValue struct {
	RGB [3]int `json:"rgb"`
	Hex string `json:"hex"`
}

// TypeName is the wire identifier for RGB parameters.
func (RGB) TypeName() string { return "RGB" }

// MarshalJSON encodes the color in the backend's typed envelope.
func (c RGB) MarshalJSON() ([]byte, error) {
	return json.Marshal(rgbEnvelope{
		Type: c.TypeName(),
		Value: rgbValue{
			RGB: [3]int{ClampChannel(c.R), ClampChannel(c.G), ClampChannel(c.B)},
			Hex: c.Hex(),
		},
	})
}

// UnmarshalJSON decodes an RGB parameter from its typed envelope.
// The hex form wins when both encodings are present, mirroring the
// backend's import order.
func (c *RGB) UnmarshalJSON(data []byte) error {
	var env struct {
		Type  string `json:"type"`
		Value struct {
			RGB *[3]int `json:"rgb"`
			Hex string  `json:"hex"`
		} `json:"value"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	if env.Type != c.TypeName() {
		return fmt.Errorf("expected type %q, got %q", c.TypeName(), env.Type)
	}
	if env.Value.Hex != "" {
		parsed, ok := ParseHex(env.Value.Hex)
		if !ok {
			return fmt.Errorf("invalid hex color %q", env.Value.Hex)
		}
		*c = parsed
		return nil
	}
	if env.Value.RGB != nil {
		*c = RGB{R: env.Value.RGB[0], G: env.Value.RGB[1], B: env.Value.RGB[2]}
		return nil
	}
	return fmt.Errorf("RGB parameter has neither rgb nor hex value")
}
