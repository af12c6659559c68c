// Package cfdilib provides a public API for extracting fields from
// Mexican CFDI invoices.
//
// It exposes the core types for parsing CFDI 3.3 and 4.0 XML documents
// and pulling out the folio, dates, amounts, issuer/recipient data and
// the TFD stamp.
//
// Example usage:
//
//	proc := cfdilib.NewProcessor("/srv/cfdi")
//	invoice, err := proc.ParseFile(ctx, "factura.xml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(invoice.Label(), invoice.Total)
package cfdilib

import "github.com/rezonia/cfdi-processor/internal/model"

// Re-export core types for public API
type (
	CFDI    = model.CFDI
	Version = model.Version
)

// Re-export schema versions
const (
	Version33 = model.Version33
	Version40 = model.Version40
)

// DefaultCurrency is assumed when a document carries no Moneda attribute.
const DefaultCurrency = model.DefaultCurrency

// Re-export error types
type ParseError = model.ParseError

// Re-export error sentinels
var (
	ErrNotFound           = model.ErrNotFound
	ErrMalformedXML       = model.ErrMalformedXML
	ErrUnsupportedVersion = model.ErrUnsupportedVersion
)
