// Package summary renders CFDI records into display strings.
package summary

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/rezonia/cfdi-processor/internal/model"
)

var printer = message.NewPrinter(language.MustParse("es-MX"))

// Summary holds the human-presentable view of one record. Fields for absent
// source data stay empty.
type Summary struct {
	Folio      string `json:"folio_completo"`
	IssuedAt   string `json:"fecha_emision"`
	Issuer     string `json:"emisor"`
	Recipient  string `json:"receptor"`
	Total      string `json:"total"`
	UUID       string `json:"uuid"`
	SourceFile string `json:"archivo"`
}

// Summarize derives the display view of a record. It is total: every record,
// however partial, produces a summary.
func Summarize(c *model.CFDI) Summary {
	s := Summary{
		Folio:      c.Label(),
		Issuer:     displayName(c.IssuerName, c.IssuerTaxID),
		Recipient:  displayName(c.RecipientName, c.RecipientTaxID),
		Total:      FormatTotal(c.Total, c.Currency),
		UUID:       c.StampUUID,
		SourceFile: c.SourceFile,
	}
	if c.IssuedAt != nil {
		s.IssuedAt = c.IssuedAt.Format("02/01/2006")
	}
	return s
}

// Map returns the summary as a mapping of display fields
func (s Summary) Map() map[string]string {
	return map[string]string{
		"folio_completo": s.Folio,
		"fecha_emision":  s.IssuedAt,
		"emisor":         s.Issuer,
		"receptor":       s.Recipient,
		"total":          s.Total,
		"uuid":           s.UUID,
		"archivo":        s.SourceFile,
	}
}

// FormatTotal renders an amount as "$1,234.50 MXN". A nil amount renders
// empty, so callers can tell "no total" from a zero total.
func FormatTotal(total *decimal.Decimal, currency string) string {
	if total == nil {
		return ""
	}
	amount := number.Decimal(total.InexactFloat64(),
		number.MinFractionDigits(2), number.MaxFractionDigits(2))
	return printer.Sprintf("$%v %s", amount, currency)
}

// displayName falls back to the tax ID when the legal name is absent
func displayName(name, taxID string) string {
	if name != "" {
		return name
	}
	return taxID
}
