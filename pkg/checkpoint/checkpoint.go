// Package checkpoint persists batch progress so an interrupted run can resume
// without reprocessing completed sites.
package checkpoint

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// fileFormat is the on-disk shape: a plain list of completed identifiers.
type fileFormat struct {
	Completed []string `json:"completed"`
}

// Checkpoint tracks the set of completed site identifiers for one batch run.
// It is owned by a single orchestrator and is not safe for concurrent use.
type Checkpoint struct {
	path      string
	completed map[string]bool
	order     []string
	removed   bool
}

// Load reads the checkpoint at path. A missing or corrupt file is treated as
// no prior progress, never as an error.
func Load(path string) *Checkpoint {
	cp := &Checkpoint{
		path:      path,
		completed: make(map[string]bool),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cp
	}
	var parsed fileFormat
	if err := json.Unmarshal(data, &parsed); err != nil {
		return cp
	}
	for _, id := range parsed.Completed {
		cp.Mark(id)
	}
	return cp
}

// Mark records id as completed. Duplicate marks are no-ops.
func (cp *Checkpoint) Mark(id string) {
	if cp.completed[id] {
		return
	}
	cp.completed[id] = true
	cp.order = append(cp.order, id)
}

// Done reports whether id has completed.
func (cp *Checkpoint) Done(id string) bool {
	return cp.completed[id]
}

// Completed returns the completed identifiers in the order they were marked.
func (cp *Checkpoint) Completed() []string {
	out := make([]string, len(cp.order))
	copy(out, cp.order)
	return out
}

// Len returns the number of completed identifiers.
func (cp *Checkpoint) Len() int {
	return len(cp.order)
}

// Flush writes the checkpoint durably. The write goes to a temp file in the
// same directory followed by a rename, so a crash mid-write leaves either the
// old or the new checkpoint, not a torn one. After Remove, Flush is a no-op:
// a removed checkpoint must stay removed.
func (cp *Checkpoint) Flush() error {
	if cp.removed {
		return nil
	}
	data, err := json.MarshalIndent(fileFormat{Completed: cp.Completed()}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode checkpoint: %w", err)
	}

	dir := filepath.Dir(cp.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create checkpoint directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".checkpoint-*")
	if err != nil {
		return fmt.Errorf("failed to create checkpoint temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close checkpoint temp file: %w", err)
	}
	if err := os.Rename(tmpPath, cp.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace checkpoint: %w", err)
	}
	return nil
}

// Remove deletes the checkpoint file and disables further flushes. A missing
// file is not an error; removal signals that no resumption is needed.
func (cp *Checkpoint) Remove() error {
	if err := os.Remove(cp.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove checkpoint: %w", err)
	}
	cp.removed = true
	return nil
}

// Path returns the checkpoint file location.
func (cp *Checkpoint) Path() string {
	return cp.path
}
