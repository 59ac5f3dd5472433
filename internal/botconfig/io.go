// Package botconfig handles saving bot configurations to disk and
// loading them back, using the same JSON shapes the backend speaks.
package botconfig

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/osrsbots/botdash/internal/logging"
	"github.com/osrsbots/botdash/internal/notify"
	"go.uber.org/zap"
)

// DefaultExportName is the filename offered when exporting a bot
// configuration.
const DefaultExportName = "bot_config.json"

// Export writes the configuration to w as indented JSON. Keys are
// emitted in sorted order, so exports of the same configuration are
// byte-identical.
func Export(w io.Writer, config map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	data = append(data, '\n')

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}
	return nil
}

// ExportFile writes the configuration to path, creating parent
// directories as needed. An empty path defaults to DefaultExportName in
// the current directory. The write goes through a temp file and rename
// so a crash cannot leave a half-written export behind.
func ExportFile(path string, config map[string]json.RawMessage) (string, error) {
	if path == "" {
		path = DefaultExportName
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".bot_config_*.json")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := Export(tmp, config); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return "", fmt.Errorf("failed to finalize export: %w", err)
	}

	logging.Info("configuration exported", zap.String("path", path))
	return path, nil
}

// Import reads a configuration from r and hands it to apply. A body
// that is not valid JSON raises exactly one danger toast on the
// notifier and apply is never invoked.
func Import(r io.Reader, notifier notify.Notifier, apply func(map[string]json.RawMessage)) error {
	if notifier == nil {
		notifier = notify.Nop
	}

	data, err := io.ReadAll(r)
	if err != nil {
		notifier.Notify("Error reading config file", notify.LevelDanger)
		return fmt.Errorf("failed to read configuration: %w", err)
	}

	var config map[string]json.RawMessage
	if err := json.Unmarshal(data, &config); err != nil {
		notifier.Notify("Error importing config: invalid JSON", notify.LevelDanger)
		return fmt.Errorf("failed to parse configuration: %w", err)
	}

	if apply != nil {
		apply(config)
	}
	return nil
}

// ImportFile reads a configuration from path via Import.
func ImportFile(path string, notifier notify.Notifier, apply func(map[string]json.RawMessage)) error {
	if notifier == nil {
		notifier = notify.Nop
	}

	f, err := os.Open(path)
	if err != nil {
		notifier.Notify("Error reading config file", notify.LevelDanger)
		return fmt.Errorf("failed to open configuration file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Import(f, notifier, apply)
}
