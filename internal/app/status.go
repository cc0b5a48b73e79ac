package app

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/sensorwire/framegate/internal/selection"
)

const statusFileName = "status.json"

// Status is the persisted record of the last completed run: aggregate counts
// only, never frames.
type Status struct {
	LastRunAt time.Time         `json:"last_run_at"`
	Summary   selection.Summary `json:"summary"`
}

// StatusPath returns the full path of the status file in dir.
func StatusPath(dir string) string {
	return filepath.Join(dir, statusFileName)
}

// LoadStatus reads the last saved status.
// Returns a zero status and nil error if no status file exists.
func LoadStatus(dir string) (Status, error) {
	b, err := os.ReadFile(StatusPath(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return Status{}, nil
		}
		return Status{}, err
	}
	var st Status
	if err := json.Unmarshal(b, &st); err != nil {
		return Status{}, err
	}
	return st, nil
}

// SaveStatus persists the status atomically via a temp file and rename.
func SaveStatus(dir string, st Status) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	tmp := StatusPath(dir) + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, StatusPath(dir))
}
