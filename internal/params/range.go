package params

import (
	"encoding/json"
	"fmt"
)

// Range represents a bounded parameter with inclusive minimum and maximum.
// Bounds must satisfy Min < Max strictly; equal bounds are invalid.
type Range struct {
	Min float64
	Max float64
}

// TypeName is the wire identifier for range parameters.
func (Range) TypeName() string { return "Range" }

// Validate reports whether the bounds satisfy the strict ordering rule.
func (r Range) Validate() error {
	if r.Min >= r.Max {
		return fmt.Errorf("range minimum %v must be strictly less than maximum %v", r.Min, r.Max)
	}
	return nil
}

// rangeEnvelope is the typed JSON encoding shared with the backend:
//
//	{"type":"Range","value":[min,max]}
type rangeEnvelope struct {
	Type  string     `json:"type"`
	Value [2]float64 `json:"value"`
}

// MarshalJSON encodes the range in the backend's typed envelope.
func (r Range) MarshalJSON() ([]byte, error) {
	return json.Marshal(rangeEnvelope{Type: r.TypeName(), Value: [2]float64{r.Min, r.Max}})
}

// UnmarshalJSON decodes a range parameter from its typed envelope.
func (r *Range) UnmarshalJSON(data []byte) error {
	var env struct {
		Type  string    `json:"type"`
		Value []float64 `json:"value"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	if env.Type != r.TypeName() {
		return fmt.Errorf("expected type %q, got %q", r.TypeName(), env.Type)
	}
	if len(env.Value) != 2 {
		return fmt.Errorf("range value must be a list of two numbers, got %d", len(env.Value))
	}
	r.Min, r.Max = env.Value[0], env.Value[1]
	return nil
}
