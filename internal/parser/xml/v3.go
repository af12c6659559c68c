package xml

import (
	"context"
	"io"

	"github.com/beevik/etree"

	"github.com/rezonia/cfdi-processor/internal/model"
)

// 3.3-era emitters are inconsistent about attribute casing, so each logical
// field is an ordered candidate list: lowercase-initial first, PascalCase
// second. Moneda appeared late enough that it is always cased correctly.
var (
	v3Folio    = []string{"folio", "Folio"}
	v3Series   = []string{"serie", "Serie"}
	v3Total    = []string{"total", "Total"}
	v3Subtotal = []string{"subTotal", "SubTotal"}
	v3Date     = []string{"fecha", "Fecha"}
	v3TaxID    = []string{"rfc", "Rfc"}
	v3Name     = []string{"nombre", "Nombre"}
)

// V3Adapter extracts CFDI 3.3 documents
type V3Adapter struct {
	fields fieldReader
}

// NewV3Adapter creates a new CFDI 3.3 adapter
func NewV3Adapter(diag io.Writer) *V3Adapter {
	return &V3Adapter{fields: newFieldReader(diag)}
}

// Version returns the schema version
func (a *V3Adapter) Version() model.Version {
	return model.Version33
}

// Parse maps a CFDI 3.3 document root into a record
func (a *V3Adapter) Parse(ctx context.Context, root *etree.Element, sourceFile string) (*model.CFDI, error) {
	c := &model.CFDI{
		Version:    model.Version33,
		SourceFile: sourceFile,
		Currency:   model.DefaultCurrency,
	}

	c.Folio = attr(root, v3Folio)
	c.Series = attr(root, v3Series)
	c.Total = a.fields.amount(attr(root, v3Total))
	c.Subtotal = a.fields.amount(attr(root, v3Subtotal))
	if m := root.SelectAttrValue("Moneda", ""); m != "" {
		c.Currency = m
	}
	c.IssuedAt = a.fields.date(attr(root, v3Date))

	if issuer := findChild(root, NamespaceCFDI3, "Emisor"); issuer != nil {
		c.IssuerTaxID = attr(issuer, v3TaxID)
		c.IssuerName = attr(issuer, v3Name)
	}

	if recipient := findChild(root, NamespaceCFDI3, "Receptor"); recipient != nil {
		c.RecipientTaxID = attr(recipient, v3TaxID)
		c.RecipientName = attr(recipient, v3Name)
	}

	a.fields.applyStamp(root, c)

	return c, nil
}
