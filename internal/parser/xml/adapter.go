package xml

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/beevik/etree"

	"github.com/rezonia/cfdi-processor/internal/model"
)

// Namespaces published by SAT for CFDI documents
const (
	NamespaceCFDI4 = "http://www.sat.gob.mx/cfd/4"
	NamespaceCFDI3 = "http://www.sat.gob.mx/cfd/3"
	NamespaceTFD   = "http://www.sat.gob.mx/TimbreFiscalDigital"
)

// Adapter extracts one CFDI schema version into a record
type Adapter interface {
	// Parse maps the parsed document root into a CFDI record
	Parse(ctx context.Context, root *etree.Element, sourceFile string) (*model.CFDI, error)

	// Version returns the schema version this adapter handles
	Version() model.Version
}

// Registry dispatches documents to the adapter matching their schema version
type Registry struct {
	adapters map[model.Version]Adapter
	diag     io.Writer
}

// Option configures a Registry
type Option func(*Registry)

// WithDiagnostics redirects field-level diagnostics away from stderr
func WithDiagnostics(w io.Writer) Option {
	return func(r *Registry) {
		r.diag = w
	}
}

// NewRegistry creates a registry with adapters for both supported versions
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{diag: os.Stderr}
	for _, opt := range opts {
		opt(r)
	}
	r.adapters = map[model.Version]Adapter{
		model.Version40: NewV4Adapter(r.diag),
		model.Version33: NewV3Adapter(r.diag),
	}
	return r
}

// GetAdapter returns the adapter for a specific schema version
func (r *Registry) GetAdapter(version model.Version) Adapter {
	return r.adapters[version]
}

// DetectVersion resolves the schema version of a parsed document root.
// The root namespace wins; only namespace-less documents fall back to the
// Version attribute. Pre-4.0 emitters were inconsistent about declaring the
// attribute at all, so a document with neither is treated as 3.3.
func DetectVersion(root *etree.Element) string {
	switch root.NamespaceURI() {
	case NamespaceCFDI4:
		return string(model.Version40)
	case NamespaceCFDI3:
		return string(model.Version33)
	}
	return root.SelectAttrValue("Version", string(model.Version33))
}

// DetectBytes reports the schema version of raw XML content without running
// field extraction. The version string may be unsupported; Supported tells
// callers whether an adapter exists for it.
func (r *Registry) DetectBytes(content []byte) (version string, supported bool, err error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(content); err != nil {
		return "", false, model.NewParseError("", model.ErrMalformedXML, "failed to parse XML", err)
	}
	root := doc.Root()
	if root == nil {
		return "", false, model.NewParseError("", model.ErrMalformedXML, "empty XML document", nil)
	}
	version = DetectVersion(root)
	_, supported = r.adapters[model.Version(version)]
	return version, supported, nil
}

// Parse extracts a CFDI record from raw XML content
func (r *Registry) Parse(ctx context.Context, content []byte, sourceFile string) (*model.CFDI, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(content); err != nil {
		return nil, model.NewParseError(sourceFile, model.ErrMalformedXML, "failed to parse XML", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, model.NewParseError(sourceFile, model.ErrMalformedXML, "empty XML document", nil)
	}

	version := DetectVersion(root)
	adapter, ok := r.adapters[model.Version(version)]
	if !ok {
		return nil, model.NewParseError(sourceFile, model.ErrUnsupportedVersion,
			fmt.Sprintf("version %q is not supported", version), nil)
	}

	return adapter.Parse(ctx, root, sourceFile)
}

// ParseFile reads and extracts a CFDI record from an XML file on disk
func (r *Registry) ParseFile(ctx context.Context, path string) (*model.CFDI, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, model.NewParseError(filepath.Base(path), model.ErrNotFound, "no such file", err)
		}
		return nil, model.NewParseError(filepath.Base(path), model.ErrNotFound, "cannot read file", err)
	}
	return r.Parse(ctx, content, filepath.Base(path))
}
