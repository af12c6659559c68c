package xml

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/beevik/etree"
	deci "github.com/shopspring/decimal"

	"github.com/rezonia/cfdi-processor/internal/decimal"
	"github.com/rezonia/cfdi-processor/internal/model"
)

// dateFormats are the textual forms Fecha/FechaTimbrado appear in, tried in
// order: ISO with seconds, ISO with fractional seconds, space-separated,
// date-only.
var dateFormats = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// fieldReader coerces raw attribute text into typed optional fields.
// Coercion failures localize to the field: the record stays valid.
type fieldReader struct {
	diag io.Writer
}

func newFieldReader(diag io.Writer) fieldReader {
	if diag == nil {
		diag = os.Stderr
	}
	return fieldReader{diag: diag}
}

func (f fieldReader) warnf(format string, args ...interface{}) {
	fmt.Fprintf(f.diag, format+"\n", args...)
}

// date parses an optional date attribute; nil on absence or failure
func (f fieldReader) date(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return &t
		}
	}
	f.warnf("cannot parse date: %s", s)
	return nil
}

// amount parses an optional amount attribute; nil on absence or failure
func (f fieldReader) amount(s string) *deci.Decimal {
	return decimal.ParseOptional(s)
}

// applyStamp searches the whole tree for the TimbreFiscalDigital complement
// and copies its stamp fields onto the record. Unstamped documents are
// valid: the fields stay nil.
func (f fieldReader) applyStamp(root *etree.Element, c *model.CFDI) {
	stamp := findStamp(root)
	if stamp == nil {
		return
	}
	c.StampUUID = stamp.SelectAttrValue("UUID", "")
	c.StampedAt = f.date(stamp.SelectAttrValue("FechaTimbrado", ""))
}

// attr returns the first non-empty value among the candidate attribute names
func attr(el *etree.Element, names []string) string {
	for _, name := range names {
		if v := el.SelectAttrValue(name, ""); v != "" {
			return v
		}
	}
	return ""
}

// findChild returns the first direct child with the given namespace URI and
// local name
func findChild(parent *etree.Element, nsURI, local string) *etree.Element {
	for _, child := range parent.ChildElements() {
		if child.Tag == local && child.NamespaceURI() == nsURI {
			return child
		}
	}
	return nil
}

// findStamp searches the element tree for a TFD-qualified
// TimbreFiscalDigital element, which may sit at any depth under Complemento
func findStamp(el *etree.Element) *etree.Element {
	if el.Tag == "TimbreFiscalDigital" && el.NamespaceURI() == NamespaceTFD {
		return el
	}
	for _, child := range el.ChildElements() {
		if found := findStamp(child); found != nil {
			return found
		}
	}
	return nil
}
