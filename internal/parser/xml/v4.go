package xml

import (
	"context"
	"io"

	"github.com/beevik/etree"

	"github.com/rezonia/cfdi-processor/internal/model"
)

// V4Adapter extracts CFDI 4.0 documents. The 4.0 schema is strict about
// attribute casing, so every lookup is PascalCase only.
type V4Adapter struct {
	fields fieldReader
}

// NewV4Adapter creates a new CFDI 4.0 adapter
func NewV4Adapter(diag io.Writer) *V4Adapter {
	return &V4Adapter{fields: newFieldReader(diag)}
}

// Version returns the schema version
func (a *V4Adapter) Version() model.Version {
	return model.Version40
}

// Parse maps a CFDI 4.0 document root into a record
func (a *V4Adapter) Parse(ctx context.Context, root *etree.Element, sourceFile string) (*model.CFDI, error) {
	c := &model.CFDI{
		Version:    model.Version40,
		SourceFile: sourceFile,
		Currency:   model.DefaultCurrency,
	}

	c.Folio = root.SelectAttrValue("Folio", "")
	c.Series = root.SelectAttrValue("Serie", "")
	c.Total = a.fields.amount(root.SelectAttrValue("Total", ""))
	c.Subtotal = a.fields.amount(root.SelectAttrValue("SubTotal", ""))
	if m := root.SelectAttrValue("Moneda", ""); m != "" {
		c.Currency = m
	}
	c.IssuedAt = a.fields.date(root.SelectAttrValue("Fecha", ""))

	if issuer := findChild(root, NamespaceCFDI4, "Emisor"); issuer != nil {
		c.IssuerTaxID = issuer.SelectAttrValue("Rfc", "")
		c.IssuerName = issuer.SelectAttrValue("Nombre", "")
		c.IssuerRegime = issuer.SelectAttrValue("RegimenFiscal", "")
	}

	if recipient := findChild(root, NamespaceCFDI4, "Receptor"); recipient != nil {
		c.RecipientTaxID = recipient.SelectAttrValue("Rfc", "")
		c.RecipientName = recipient.SelectAttrValue("Nombre", "")
	}

	a.fields.applyStamp(root, c)

	return c, nil
}
