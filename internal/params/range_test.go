package params

import (
	"encoding/json"
	"testing"
)

func TestRangeValidate(t *testing.T) {
	tests := []struct {
		name    string
		r       Range
		wantErr bool
	}{
		{"valid", Range{Min: 5, Max: 10}, false},
		{"inverted", Range{Min: 10, Max: 5}, true},
		{"equal bounds", Range{Min: 5, Max: 5}, true},
		{"negative span", Range{Min: -10, Max: -5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRangeJSONRoundTrip(t *testing.T) {
	original := Range{Min: 0.2, Max: 0.5}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var restored Range
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if restored != original {
		t.Errorf("round trip = %v, want %v", restored, original)
	}
}

func TestRangeUnmarshalRejectsBadValue(t *testing.T) {
	var r Range
	if err := json.Unmarshal([]byte(`{"type":"Range","value":[1,2,3]}`), &r); err == nil {
		t.Error("Unmarshal() should reject a three-element value")
	}
	if err := json.Unmarshal([]byte(`{"type":"RGB","value":[1,2]}`), &r); err == nil {
		t.Error("Unmarshal() should reject wrong type tag")
	}
}
