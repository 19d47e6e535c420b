// Package jsonstore reads and writes the task data file.
//
// JSON-backed storage. Single file, human-readable, portable.
// No locking; fine for a local single-user app.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Makepad-fr/taskpad/internal/model"
)

// ErrCorrupt is returned by Load when the data file exists but cannot
// be parsed. Callers recover by starting from an empty list.
var ErrCorrupt = errors.New("data file is not valid JSON")

// Load reads the task list from path. A missing file is not an error:
// it yields an empty list so the app is usable on first run.
func Load(path string) ([]model.Task, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Task{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var tasks []model.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return tasks, nil
}

// Save writes the full task list to path, creating parent directories
// as needed.
func Save(path string, tasks []model.Task) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	b, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
