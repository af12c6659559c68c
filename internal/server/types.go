package server

import (
	"github.com/rezonia/cfdi-processor/internal/model"
	"github.com/rezonia/cfdi-processor/internal/summary"
)

// ProcessResponse is the response for extraction endpoints
type ProcessResponse struct {
	CFDI    *model.CFDI     `json:"cfdi"`
	Summary summary.Summary `json:"resumen"`
}

// PendingResponse is the response for the pending-directory listing
type PendingResponse struct {
	Count    int               `json:"count"`
	Invoices []ProcessResponse `json:"invoices"`
}

// ArchiveResponse is the response for the archive endpoint
type ArchiveResponse struct {
	File       string `json:"file"`
	ArchivedTo string `json:"archived_to"`
}

// InfoResponse is the response for the info endpoint
type InfoResponse struct {
	Version   string `json:"version"`
	Supported bool   `json:"supported"`
	Size      int    `json:"size"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
