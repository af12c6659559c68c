package cfdilib_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/cfdi-processor/pkg/cfdilib"
)

const sampleCFDI40 = `<?xml version="1.0" encoding="UTF-8"?>
<cfdi:Comprobante xmlns:cfdi="http://www.sat.gob.mx/cfd/4"
    Version="4.0" Serie="A" Folio="1001"
    Fecha="2024-03-10T12:00:00" SubTotal="1000.00" Total="1160.00" Moneda="MXN">
  <cfdi:Emisor Rfc="AAA010101AAA" Nombre="Empresa Emisora SA de CV" RegimenFiscal="601"/>
  <cfdi:Receptor Rfc="XAXX010101000" Nombre="Publico en General"/>
</cfdi:Comprobante>`

func TestNewProcessor(t *testing.T) {
	proc := cfdilib.NewProcessor(t.TempDir())
	require.NotNil(t, proc)
}

func TestProcessorParseBytes(t *testing.T) {
	proc := cfdilib.NewProcessor(t.TempDir())

	invoice, err := proc.ParseBytes(context.Background(), []byte(sampleCFDI40), "factura.xml")
	require.NoError(t, err)

	assert.Equal(t, "A-1001", invoice.Label())
	assert.Equal(t, cfdilib.Version40, invoice.Version)
	assert.Equal(t, "AAA010101AAA", invoice.IssuerTaxID)
	require.NotNil(t, invoice.Total)
	assert.Equal(t, "1160", invoice.Total.String())
}

func TestProcessorParseReader(t *testing.T) {
	proc := cfdilib.NewProcessor(t.TempDir())

	invoice, err := proc.Parse(context.Background(), strings.NewReader(sampleCFDI40), "factura.xml")
	require.NoError(t, err)
	assert.Equal(t, "factura.xml", invoice.SourceFile)
}

func TestProcessorParseFileNotFound(t *testing.T) {
	proc := cfdilib.NewProcessor(t.TempDir())

	_, err := proc.ParseFile(context.Background(), "/no/such/factura.xml")
	require.Error(t, err)
	assert.ErrorIs(t, err, cfdilib.ErrNotFound)
}

func TestProcessorDetectVersion(t *testing.T) {
	proc := cfdilib.NewProcessor(t.TempDir())

	version, supported, err := proc.DetectVersion([]byte(sampleCFDI40))
	require.NoError(t, err)
	assert.Equal(t, "4.0", version)
	assert.True(t, supported)

	_, _, err = proc.DetectVersion([]byte("<unclosed"))
	assert.ErrorIs(t, err, cfdilib.ErrMalformedXML)
}

func TestProcessorPendingAndArchive(t *testing.T) {
	base := t.TempDir()
	proc := cfdilib.NewProcessor(base, cfdilib.WithDiagnostics(&bytes.Buffer{}))
	require.NoError(t, proc.InitDirectories())

	path := filepath.Join(proc.PendingDir(), "f1.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCFDI40), 0o644))

	invoices := proc.ProcessPending(context.Background())
	require.Len(t, invoices, 1)
	assert.Equal(t, "f1.xml", invoices[0].SourceFile)

	dest, err := proc.Archive("f1.xml")
	require.NoError(t, err)
	assert.FileExists(t, dest)
	assert.NoFileExists(t, path)
	assert.Equal(t, proc.ProcessedDir(), filepath.Dir(dest))
}

func TestProcessorSummarize(t *testing.T) {
	proc := cfdilib.NewProcessor(t.TempDir())

	invoice, err := proc.ParseBytes(context.Background(), []byte(sampleCFDI40), "factura.xml")
	require.NoError(t, err)

	s := proc.Summarize(invoice)
	assert.Equal(t, "A-1001", s.Folio)
	assert.Equal(t, "10/03/2024", s.IssuedAt)
	assert.Equal(t, "$1,160.00 MXN", s.Total)
}
