// Package paths resolves the fixed directory layout invoices move through:
// a base directory holding data/facturas_pendientes and
// data/facturas_procesadas.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DataDirName is the data subdirectory under the base
	DataDirName = "data"
	// PendingDirName holds invoices waiting for extraction
	PendingDirName = "facturas_pendientes"
	// ProcessedDirName holds invoices already extracted
	ProcessedDirName = "facturas_procesadas"
)

// Registry derives the well-known invoice directories from an explicit base
// path. It holds no other state and never touches the filesystem except in
// InitDirectories.
type Registry struct {
	base string
}

// NewRegistry creates a registry rooted at base
func NewRegistry(base string) *Registry {
	return &Registry{base: base}
}

// DefaultBase resolves the conventional base directory: two levels up from
// the installed binary.
func DefaultBase() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("cannot resolve executable path: %w", err)
	}
	return filepath.Dir(filepath.Dir(exe)), nil
}

// Base returns the base directory
func (r *Registry) Base() string {
	return r.base
}

// Data returns the data directory
func (r *Registry) Data() string {
	return filepath.Join(r.base, DataDirName)
}

// Pending returns the pending-invoices directory
func (r *Registry) Pending() string {
	return filepath.Join(r.base, DataDirName, PendingDirName)
}

// Processed returns the processed-invoices directory
func (r *Registry) Processed() string {
	return filepath.Join(r.base, DataDirName, ProcessedDirName)
}

// InitDirectories creates the pending and processed directories together
// with any missing parents. Existing directories are left untouched.
func (r *Registry) InitDirectories() error {
	for _, dir := range []string{r.Pending(), r.Processed()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create directory %s: %w", dir, err)
		}
	}
	return nil
}
