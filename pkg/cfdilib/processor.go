package cfdilib

import (
	"context"
	"io"

	"github.com/rezonia/cfdi-processor/internal/model"
	"github.com/rezonia/cfdi-processor/internal/paths"
	"github.com/rezonia/cfdi-processor/internal/processor"
	"github.com/rezonia/cfdi-processor/internal/summary"
)

// Processor wraps the extraction pipeline behind a stable API.
type Processor struct {
	pipeline *processor.Pipeline
	dirs     *paths.Registry
}

// Option configures a Processor.
type Option func(*options)

type options struct {
	diagnostics io.Writer
}

// WithDiagnostics redirects non-fatal extraction warnings to w.
func WithDiagnostics(w io.Writer) Option {
	return func(o *options) { o.diagnostics = w }
}

// NewProcessor creates a processor rooted at the given base directory.
// The pending and processed directories live under baseDir/data.
func NewProcessor(baseDir string, opts ...Option) *Processor {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	dirs := paths.NewRegistry(baseDir)
	var pipelineOpts []processor.Option
	if o.diagnostics != nil {
		pipelineOpts = append(pipelineOpts, processor.WithDiagnostics(o.diagnostics))
	}

	return &Processor{
		pipeline: processor.NewPipeline(dirs, pipelineOpts...),
		dirs:     dirs,
	}
}

// ParseFile extracts a single CFDI XML file from an arbitrary path.
func (p *Processor) ParseFile(ctx context.Context, path string) (*model.CFDI, error) {
	return p.pipeline.ProcessFile(ctx, path)
}

// ParseBytes extracts a CFDI from raw XML content.
func (p *Processor) ParseBytes(ctx context.Context, content []byte, sourceFile string) (*model.CFDI, error) {
	return p.pipeline.ProcessBytes(ctx, content, sourceFile)
}

// Parse extracts a CFDI from a reader.
func (p *Processor) Parse(ctx context.Context, r io.Reader, sourceFile string) (*model.CFDI, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, model.NewParseError(sourceFile, model.ErrMalformedXML, "failed to read input", err)
	}
	return p.pipeline.ProcessBytes(ctx, content, sourceFile)
}

// ProcessPending extracts every XML file in the pending directory,
// skipping files that fail. A missing pending directory yields an
// empty slice.
func (p *Processor) ProcessPending(ctx context.Context) []*model.CFDI {
	return p.pipeline.ProcessPending(ctx)
}

// Archive moves a file from the pending directory to the processed
// directory and returns the destination path.
func (p *Processor) Archive(fileName string) (string, error) {
	return p.pipeline.Archive(fileName)
}

// DetectVersion reports the schema version of raw XML content and
// whether this processor supports it.
func (p *Processor) DetectVersion(content []byte) (version string, supported bool, err error) {
	return p.pipeline.Detect(content)
}

// Summarize renders an extracted invoice into display strings.
func (p *Processor) Summarize(invoice *model.CFDI) summary.Summary {
	return summary.Summarize(invoice)
}

// InitDirectories creates the data, pending and processed directories.
func (p *Processor) InitDirectories() error {
	return p.dirs.InitDirectories()
}

// PendingDir returns the absolute path of the pending directory.
func (p *Processor) PendingDir() string {
	return p.dirs.Pending()
}

// ProcessedDir returns the absolute path of the processed directory.
func (p *Processor) ProcessedDir() string {
	return p.dirs.Processed()
}
