// Package export writes a single task to a file, either as a readable
// text rendering or as the raw JSON record. The format follows the
// destination filename's extension.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Makepad-fr/taskpad/internal/model"
)

// WriteFile exports the task to path. ".json" gets the serialized
// record; anything else gets the text rendering.
func WriteFile(path string, t *model.Task) error {
	var b []byte
	if strings.EqualFold(filepath.Ext(path), ".json") {
		var err error
		b, err = json.MarshalIndent(t, "", "  ")
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
	} else {
		b = []byte(Text(t))
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// Text renders the task's fields one per line.
func Text(t *model.Task) string {
	due := t.Due.String()
	if due == "" {
		due = "No due date"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Task ID: %d\n", t.ID)
	fmt.Fprintf(&sb, "Task: %s\n", t.Text)
	fmt.Fprintf(&sb, "Priority: %s\n", t.Priority)
	fmt.Fprintf(&sb, "Due Date: %s\n", due)
	fmt.Fprintf(&sb, "Status: %s\n", t.StatusLabel())
	fmt.Fprintf(&sb, "Created: %s\n", t.Created.Format(model.DateLayout))
	return sb.String()
}
