package botconfig

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/osrsbots/botdash/internal/notify"
)

type toastRecorder struct {
	toasts []notify.Toast
}

func (r *toastRecorder) Notify(message string, level notify.Level) {
	r.toasts = append(r.toasts, notify.Toast{Message: message, Level: level})
}

func TestExportIndentedJSON(t *testing.T) {
	config := map[string]json.RawMessage{
		"delay":        json.RawMessage(`[1.5,3]`),
		"marker_color": json.RawMessage(`{"type":"RGB","value":{"rgb":[255,0,100],"hex":"#ff0064"}}`),
	}

	var buf bytes.Buffer
	if err := Export(&buf, config); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "\n  \"delay\"") {
		t.Errorf("export not indented with two spaces:\n%s", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("export should end with a newline")
	}

	var back map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(back) != 2 {
		t.Errorf("round trip lost keys: %v", back)
	}
}

func TestExportFileDefaultsName(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = os.Chdir(cwd) }()

	path, err := ExportFile("", map[string]json.RawMessage{"delay": json.RawMessage(`[1,2]`)})
	if err != nil {
		t.Fatalf("ExportFile() error = %v", err)
	}
	if filepath.Base(path) != DefaultExportName {
		t.Errorf("path = %q, want base %q", path, DefaultExportName)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("exported file missing: %v", err)
	}
}

func TestExportFileLeavesNoTempOnSuccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	if _, err := ExportFile(path, map[string]json.RawMessage{}); err != nil {
		t.Fatalf("ExportFile() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.json" {
		t.Errorf("directory contents = %v, want only out.json", entries)
	}
}

func TestImportAppliesParsedConfig(t *testing.T) {
	recorder := &toastRecorder{}
	var applied map[string]json.RawMessage

	err := Import(strings.NewReader(`{"delay": [1.5, 3.0]}`), recorder, func(c map[string]json.RawMessage) {
		applied = c
	})
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if applied == nil {
		t.Fatal("apply callback never invoked")
	}
	if _, ok := applied["delay"]; !ok {
		t.Errorf("applied config = %v", applied)
	}
	if len(recorder.toasts) != 0 {
		t.Errorf("successful import raised %d toasts", len(recorder.toasts))
	}
}

func TestImportInvalidJSONRaisesOneDangerToast(t *testing.T) {
	recorder := &toastRecorder{}
	invoked := false

	err := Import(strings.NewReader("not json"), recorder, func(map[string]json.RawMessage) {
		invoked = true
	})
	if err == nil {
		t.Fatal("Import() of invalid JSON should fail")
	}
	if invoked {
		t.Error("apply callback must not run on parse failure")
	}
	if len(recorder.toasts) != 1 {
		t.Fatalf("got %d toasts, want exactly 1", len(recorder.toasts))
	}
	if recorder.toasts[0].Level != notify.LevelDanger {
		t.Errorf("toast level = %v, want danger", recorder.toasts[0].Level)
	}
}

func TestImportFileMissingFile(t *testing.T) {
	recorder := &toastRecorder{}
	err := ImportFile(filepath.Join(t.TempDir(), "nope.json"), recorder, nil)
	if err == nil {
		t.Fatal("ImportFile() of missing file should fail")
	}
	if len(recorder.toasts) != 1 || recorder.toasts[0].Level != notify.LevelDanger {
		t.Errorf("toasts = %v, want one danger toast", recorder.toasts)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultExportName)

	original := map[string]json.RawMessage{
		"marker_color": json.RawMessage(`{"type":"RGB","value":{"rgb":[1,2,3],"hex":"#010203"}}`),
		"delay":        json.RawMessage(`{"type":"Range","value":[0.5,2]}`),
	}
	if _, err := ExportFile(path, original); err != nil {
		t.Fatalf("ExportFile() error = %v", err)
	}

	var restored map[string]json.RawMessage
	err := ImportFile(path, notify.Nop, func(c map[string]json.RawMessage) { restored = c })
	if err != nil {
		t.Fatalf("ImportFile() error = %v", err)
	}
	if len(restored) != len(original) {
		t.Fatalf("restored %d keys, want %d", len(restored), len(original))
	}
	for key := range original {
		if _, ok := restored[key]; !ok {
			t.Errorf("key %q lost in round trip", key)
		}
	}
}
