// Package processor drives batch extraction over the pending-invoices
// directory.
package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rezonia/cfdi-processor/internal/model"
	xmlparser "github.com/rezonia/cfdi-processor/internal/parser/xml"
	"github.com/rezonia/cfdi-processor/internal/paths"
)

// Pipeline processes CFDI files sequentially. File failures are reported on
// the diagnostics stream and skipped; a batch never aborts because of one
// bad document.
type Pipeline struct {
	registry *xmlparser.Registry
	paths    *paths.Registry
	diag     io.Writer
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithDiagnostics redirects skip/warning messages away from stderr
func WithDiagnostics(w io.Writer) Option {
	return func(p *Pipeline) {
		p.diag = w
	}
}

// NewPipeline creates a pipeline over the given directory layout
func NewPipeline(dirs *paths.Registry, opts ...Option) *Pipeline {
	p := &Pipeline{
		paths: dirs,
		diag:  os.Stderr,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.registry = xmlparser.NewRegistry(xmlparser.WithDiagnostics(p.diag))
	return p
}

// ProcessFile extracts a single CFDI file
func (p *Pipeline) ProcessFile(ctx context.Context, path string) (*model.CFDI, error) {
	return p.registry.ParseFile(ctx, path)
}

// ProcessBytes extracts a CFDI from raw XML content
func (p *Pipeline) ProcessBytes(ctx context.Context, content []byte, sourceFile string) (*model.CFDI, error) {
	return p.registry.Parse(ctx, content, sourceFile)
}

// Detect reports the schema version of raw XML content without extracting it
func (p *Pipeline) Detect(content []byte) (version string, supported bool, err error) {
	return p.registry.DetectBytes(content)
}

// ProcessPending extracts every *.xml file directly inside the pending
// directory, in listing order, skipping files that fail. A missing pending
// directory yields an empty result, not an error.
func (p *Pipeline) ProcessPending(ctx context.Context) []*model.CFDI {
	matches, err := filepath.Glob(filepath.Join(p.paths.Pending(), "*.xml"))
	if err != nil {
		// Only a malformed pattern reaches here, and ours is fixed.
		fmt.Fprintf(p.diag, "error listing pending invoices: %v\n", err)
		return nil
	}

	var records []*model.CFDI
	for _, file := range matches {
		cfdi, err := p.ProcessFile(ctx, file)
		if err != nil {
			fmt.Fprintf(p.diag, "error parsing CFDI %s: %v\n", file, err)
			continue
		}
		records = append(records, cfdi)
	}
	return records
}

// Archive moves an extracted invoice from the pending directory into the
// processed directory, creating it if needed. Only bare file names are
// accepted.
func (p *Pipeline) Archive(fileName string) (string, error) {
	name := filepath.Base(fileName)
	if name != fileName {
		return "", fmt.Errorf("archive expects a bare file name, got %q", fileName)
	}

	if err := os.MkdirAll(p.paths.Processed(), 0o755); err != nil {
		return "", fmt.Errorf("cannot create processed directory: %w", err)
	}

	src := filepath.Join(p.paths.Pending(), name)
	dst := filepath.Join(p.paths.Processed(), name)
	if err := os.Rename(src, dst); err != nil {
		return "", fmt.Errorf("cannot archive %s: %w", name, err)
	}
	return dst, nil
}

// Paths exposes the directory layout the pipeline operates on
func (p *Pipeline) Paths() *paths.Registry {
	return p.paths
}
