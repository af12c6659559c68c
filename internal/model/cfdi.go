package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Version identifies a supported CFDI schema version
type Version string

const (
	Version33 Version = "3.3"
	Version40 Version = "4.0"
)

// DefaultCurrency is assumed when the Moneda attribute is absent
const DefaultCurrency = "MXN"

// CFDI holds the fields extracted from one CFDI document.
// Every field is independently optional: a partial record is a valid
// extraction result. Amounts and dates are pointers so that "absent or
// unparsable" stays distinguishable from zero values.
type CFDI struct {
	Folio    string           `json:"folio,omitempty"`
	Series   string           `json:"serie,omitempty"`
	IssuedAt *time.Time       `json:"fecha_emision,omitempty"`
	Total    *decimal.Decimal `json:"total,omitempty"`
	Subtotal *decimal.Decimal `json:"subtotal,omitempty"`
	Currency string           `json:"moneda,omitempty"`

	IssuerTaxID  string `json:"emisor_rfc,omitempty"`
	IssuerName   string `json:"emisor_nombre,omitempty"`
	IssuerRegime string `json:"emisor_regimen,omitempty"`

	RecipientTaxID string `json:"receptor_rfc,omitempty"`
	RecipientName  string `json:"receptor_nombre,omitempty"`

	StampUUID string     `json:"uuid,omitempty"`
	StampedAt *time.Time `json:"fecha_timbrado,omitempty"`

	Version    Version `json:"version"`
	SourceFile string  `json:"archivo_origen,omitempty"`
}

// Label returns the combined series-folio identifier, or the folio alone
// when the document carries no series.
func (c *CFDI) Label() string {
	if c.Series == "" {
		return c.Folio
	}
	return c.Series + "-" + c.Folio
}

// IsStamped reports whether the document carried a TimbreFiscalDigital
// complement.
func (c *CFDI) IsStamped() bool {
	return c.StampUUID != ""
}

func (c *CFDI) String() string {
	total := "?"
	if c.Total != nil {
		total = c.Total.String()
	}
	return fmt.Sprintf("CFDI %s | %s -> %s | $%s", c.Label(), c.IssuerName, c.RecipientName, total)
}
