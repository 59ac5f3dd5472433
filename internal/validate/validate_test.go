package validate

import "testing"

func f64(v float64) *float64 { return &v }

func TestCheckBoundsMinimum(t *testing.T) {
	tests := []struct {
		name    string
		field   Field
		wantMsg string
	}{
		{
			name:    "below minimum fails",
			field:   Field{Name: "speed", Value: "-1", Min: f64(0)},
			wantMsg: "Value must be at least 0",
		},
		{
			name:  "at minimum passes",
			field: Field{Name: "speed", Value: "0", Min: f64(0)},
		},
		{
			name:  "above minimum passes",
			field: Field{Name: "speed", Value: "3", Min: f64(0)},
		},
		{
			name:    "fractional bound in message",
			field:   Field{Name: "chance", Value: "0.1", Min: f64(0.5)},
			wantMsg: "Value must be at least 0.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := CheckBounds(tt.field)
			if tt.wantMsg == "" {
				if len(errs) != 0 {
					t.Fatalf("CheckBounds() = %v, want no errors", errs)
				}
				return
			}
			if len(errs) != 1 {
				t.Fatalf("CheckBounds() returned %d errors, want 1", len(errs))
			}
			if errs[0].Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", errs[0].Message, tt.wantMsg)
			}
			if errs[0].Field != tt.field.Name {
				t.Errorf("flagged field = %q, want %q", errs[0].Field, tt.field.Name)
			}
		})
	}
}

func TestCheckBoundsMaximum(t *testing.T) {
	errs := CheckBounds(Field{Name: "count", Value: "28", Max: f64(27)})
	if len(errs) != 1 {
		t.Fatalf("CheckBounds() returned %d errors, want 1", len(errs))
	}
	if errs[0].Message != "Value must be at most 27" {
		t.Errorf("message = %q, want 'Value must be at most 27'", errs[0].Message)
	}

	if errs := CheckBounds(Field{Name: "count", Value: "27", Max: f64(27)}); len(errs) != 0 {
		t.Errorf("value equal to maximum should pass, got %v", errs)
	}
}

func TestCheckBoundsUnparseableSkipped(t *testing.T) {
	// Non-numeric text does not block the form by itself; only explicit
	// bound violations do.
	fields := []Field{
		{Name: "speed", Value: "fast", Min: f64(0), Max: f64(10)},
		{Name: "speed", Value: "", Min: f64(0)},
	}
	for _, f := range fields {
		if errs := CheckBounds(f); len(errs) != 0 {
			t.Errorf("CheckBounds(%q) = %v, want skip", f.Value, errs)
		}
	}
}

func TestCheckRangePair(t *testing.T) {
	tests := []struct {
		name     string
		pair     RangePair
		wantFail bool
	}{
		{"min below max passes", RangePair{Name: "delay", MinValue: "5", MaxValue: "10"}, false},
		{"min above max fails", RangePair{Name: "delay", MinValue: "10", MaxValue: "5"}, true},
		{"equal bounds fail", RangePair{Name: "delay", MinValue: "5", MaxValue: "5"}, true},
		{"unparseable min skipped", RangePair{Name: "delay", MinValue: "x", MaxValue: "5"}, false},
		{"unparseable max skipped", RangePair{Name: "delay", MinValue: "5", MaxValue: ""}, false},
		{"fractional pair passes", RangePair{Name: "delay", MinValue: "0.2", MaxValue: "0.5"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := CheckRangePair(tt.pair)
			if tt.wantFail {
				if len(errs) != 1 {
					t.Fatalf("CheckRangePair() returned %d errors, want 1", len(errs))
				}
				if errs[0].Field != "delay_max" {
					t.Errorf("flagged field = %q, want delay_max", errs[0].Field)
				}
				if errs[0].Message != "Maximum value must be greater than minimum value" {
					t.Errorf("message = %q", errs[0].Message)
				}
				return
			}
			if len(errs) != 0 {
				t.Errorf("CheckRangePair() = %v, want no errors", errs)
			}
		})
	}
}

func TestFormVerdict(t *testing.T) {
	fields := []Field{
		{Name: "speed", Value: "3", Min: f64(0), Max: f64(10)},
		{Name: "count", Value: "-1", Min: f64(0)},
	}
	pairs := []RangePair{
		{Name: "delay", MinValue: "0.2", MaxValue: "0.5"},
	}

	res := Form(fields, pairs)
	if res.OK {
		t.Error("Form() OK = true, want false with a failing field")
	}
	if len(res.Errors) != 1 {
		t.Fatalf("Form() returned %d errors, want 1", len(res.Errors))
	}
	if got := res.ErrorFor("count"); got != "Value must be at least 0" {
		t.Errorf("ErrorFor(count) = %q", got)
	}
	if got := res.ErrorFor("speed"); got != "" {
		t.Errorf("ErrorFor(speed) = %q, want empty", got)
	}
}

func TestFormIdempotent(t *testing.T) {
	fields := []Field{{Name: "count", Value: "-1", Min: f64(0)}}

	first := Form(fields, nil)
	second := Form(fields, nil)

	if len(first.Errors) != len(second.Errors) {
		t.Fatalf("repeated passes differ: %d vs %d errors", len(first.Errors), len(second.Errors))
	}

	// Correcting the field clears the annotation on the next pass.
	fields[0].Value = "2"
	third := Form(fields, nil)
	if !third.OK || len(third.Errors) != 0 {
		t.Errorf("Form() after correction = %+v, want clean pass", third)
	}
}
