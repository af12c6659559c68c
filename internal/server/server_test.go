package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/cfdi-processor/internal/paths"
	"github.com/rezonia/cfdi-processor/internal/server"
	"github.com/rezonia/cfdi-processor/internal/summary"
)

const testCFDI = `<?xml version="1.0" encoding="UTF-8"?>
<cfdi:Comprobante xmlns:cfdi="http://www.sat.gob.mx/cfd/4"
    Serie="A" Folio="1234" Fecha="2024-01-15T10:30:00" SubTotal="1000.00" Total="1160.00">
  <cfdi:Emisor Rfc="AAA010101AAA" Nombre="Empresa Emisora SA de CV"/>
  <cfdi:Receptor Rfc="XAXX010101000" Nombre="Publico en General"/>
</cfdi:Comprobante>`

func newTestServer(t *testing.T) (*server.Server, *paths.Registry) {
	t.Helper()
	dirs := paths.NewRegistry(t.TempDir())
	require.NoError(t, dirs.InitDirectories())

	srv := server.NewServer(&server.Config{
		Address: ":8080",
		BaseDir: dirs.Base(),
		Debug:   true,
	})
	return srv, dirs
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, "ok", response["status"])
	assert.NotEmpty(t, response["time"])
}

func TestProcessXMLEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/process/xml", bytes.NewReader([]byte(testCFDI)))
	req.Header.Set("Content-Type", "application/xml")
	req.Header.Set("X-Source-File", "factura.xml")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response server.ProcessResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	require.NotNil(t, response.CFDI)
	assert.Equal(t, "1234", response.CFDI.Folio)
	assert.Equal(t, "factura.xml", response.CFDI.SourceFile)
	assert.Equal(t, "A-1234", response.Summary.Folio)
	assert.Equal(t, "$1,160.00 MXN", response.Summary.Total)
}

func TestProcessXMLEndpoint_EmptyBody(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/process/xml", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProcessXMLEndpoint_MalformedXML(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/process/xml", bytes.NewReader([]byte("<Comprobante><Unclosed>")))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestProcessXMLEndpoint_UnsupportedVersion(t *testing.T) {
	srv, _ := newTestServer(t)

	body := []byte(`<Comprobante Version="2.2" Folio="1"/>`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/process/xml", bytes.NewReader(body))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPendingEndpoint(t *testing.T) {
	srv, dirs := newTestServer(t)

	require.NoError(t, os.WriteFile(filepath.Join(dirs.Pending(), "a.xml"), []byte(testCFDI), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dirs.Pending(), "bad.xml"), []byte("<Unclosed>"), 0o644))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pending", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response server.PendingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)

	assert.Equal(t, 1, response.Count)
	require.Len(t, response.Invoices, 1)
	assert.Equal(t, "a.xml", response.Invoices[0].CFDI.SourceFile)
}

func TestPendingEndpoint_Empty(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pending", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response server.PendingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 0, response.Count)
}

func TestArchiveEndpoint(t *testing.T) {
	srv, dirs := newTestServer(t)
	require.NoError(t, os.WriteFile(filepath.Join(dirs.Pending(), "done.xml"), []byte(testCFDI), 0o644))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/archive/done.xml", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	_, err := os.Stat(filepath.Join(dirs.Processed(), "done.xml"))
	require.NoError(t, err)
}

func TestArchiveEndpoint_MissingFile(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/archive/ghost.xml", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSummaryEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	body := []byte(`{"folio":"1234","serie":"A","emisor_rfc":"AAA010101AAA","uuid":"0FA64C48-71A0-4B3A-8E9D-9C1B7E9F0D2A"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/summary", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response summary.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, "A-1234", response.Folio)
	assert.Equal(t, "AAA010101AAA", response.Issuer)
	assert.Equal(t, "0FA64C48-71A0-4B3A-8E9D-9C1B7E9F0D2A", response.UUID)
	assert.Empty(t, response.Total)
}

func TestSummaryEndpoint_InvalidBody(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/summary", bytes.NewReader([]byte("{not json")))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInfoEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/info", bytes.NewReader([]byte(testCFDI)))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response server.InfoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, "4.0", response.Version)
	assert.True(t, response.Supported)
	assert.Equal(t, len(testCFDI), response.Size)
}

func TestInfoEndpoint_UnsupportedVersion(t *testing.T) {
	srv, _ := newTestServer(t)

	body := []byte(`<Comprobante Version="2.2"/>`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/info", bytes.NewReader(body))
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response server.InfoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "2.2", response.Version)
	assert.False(t, response.Supported)
}
