// Package validate implements the synchronous validation pass the
// dashboard runs over a parameter form before submitting it to the
// backend. Each pass is self-contained: it returns a complete, fresh set
// of per-field annotations, so callers can run it repeatedly and simply
// replace whatever they displayed last time.
package validate

import (
	"strconv"
	"strings"
)

// Field is a single numeric input with optional declared bounds.
// A nil bound means the check does not apply.
type Field struct {
	Name  string
	Value string
	Min   *float64
	Max   *float64
}

// RangePair is a logical parameter represented by two bound inputs,
// conventionally named <name>_min and <name>_max.
type RangePair struct {
	Name     string
	MinValue string
	MaxValue string
}

// FieldError annotates one offending input with a human-readable message.
type FieldError struct {
	Field   string
	Message string
}

// Result is the outcome of one validation pass. OK is the logical AND
// across all checked fields; when it is false the caller must cancel the
// pending submit.
type Result struct {
	OK     bool
	Errors []FieldError
}

// ErrorFor returns the message attached to the named field, or "" when
// the field passed.
func (r Result) ErrorFor(field string) string {
	for _, e := range r.Errors {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

// Form runs one validation pass over all scalar fields and range pairs.
func Form(fields []Field, pairs []RangePair) Result {
	var errs []FieldError
	for _, f := range fields {
		errs = append(errs, CheckBounds(f)...)
	}
	for _, p := range pairs {
		errs = append(errs, CheckRangePair(p)...)
	}
	return Result{OK: len(errs) == 0, Errors: errs}
}

// CheckBounds validates a scalar input against its declared bounds.
// A value that fails to parse as a number is skipped for that check;
// only explicit bound violations fail the form.
func CheckBounds(f Field) []FieldError {
	v, err := parseNumber(f.Value)
	if err != nil {
		return nil
	}

	var errs []FieldError
	if f.Min != nil && v < *f.Min {
		errs = append(errs, FieldError{
			Field:   f.Name,
			Message: "Value must be at least " + formatBound(*f.Min),
		})
	}
	if f.Max != nil && v > *f.Max {
		errs = append(errs, FieldError{
			Field:   f.Name,
			Message: "Value must be at most " + formatBound(*f.Max),
		})
	}
	return errs
}

// CheckRangePair validates that a pair's minimum is strictly less than
// its maximum. Equal bounds are invalid. The max input is the one
// flagged, matching where the user is most likely to fix the problem.
// Pairs with unparseable members are skipped.
func CheckRangePair(p RangePair) []FieldError {
	min, errMin := parseNumber(p.MinValue)
	max, errMax := parseNumber(p.MaxValue)
	if errMin != nil || errMax != nil {
		return nil
	}
	if min >= max {
		return []FieldError{{
			Field:   p.Name + "_max",
			Message: "Maximum value must be greater than minimum value",
		}}
	}
	return nil
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// formatBound renders a bound the way it was declared, without trailing
// zeros ("0", "0.5", "100").
func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
