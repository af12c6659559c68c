package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rezonia/cfdi-processor/internal/model"
	"github.com/rezonia/cfdi-processor/internal/paths"
	"github.com/rezonia/cfdi-processor/internal/processor"
	"github.com/rezonia/cfdi-processor/internal/summary"
)

// Config holds server configuration
type Config struct {
	Address      string
	BaseDir      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server represents the HTTP API server
type Server struct {
	config   *Config
	router   *gin.Engine
	pipeline *processor.Pipeline
}

// NewServer creates a new API server
func NewServer(config *Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	dirs := paths.NewRegistry(config.BaseDir)
	pipeline := processor.NewPipeline(dirs)

	s := &Server{
		config:   config,
		router:   router,
		pipeline: pipeline,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/process/xml", s.handleProcessXML)
		v1.GET("/pending", s.handlePending)
		v1.POST("/archive/:file", s.handleArchive)
		v1.POST("/summary", s.handleSummary)
		v1.POST("/info", s.handleInfo)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleProcessXML(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return
	}

	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return
	}

	sourceFile := c.GetHeader("X-Source-File")
	if sourceFile == "" {
		sourceFile = "upload.xml"
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	cfdi, err := s.pipeline.ProcessBytes(ctx, body, sourceFile)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, ProcessResponse{
		CFDI:    cfdi,
		Summary: summary.Summarize(cfdi),
	})
}

func (s *Server) handlePending(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Minute)
	defer cancel()

	records := s.pipeline.ProcessPending(ctx)

	invoices := make([]ProcessResponse, 0, len(records))
	for _, cfdi := range records {
		invoices = append(invoices, ProcessResponse{
			CFDI:    cfdi,
			Summary: summary.Summarize(cfdi),
		})
	}

	c.JSON(http.StatusOK, PendingResponse{
		Count:    len(invoices),
		Invoices: invoices,
	})
}

func (s *Server) handleArchive(c *gin.Context) {
	file := c.Param("file")

	dst, err := s.pipeline.Archive(file)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Error:   "cannot archive file",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, ArchiveResponse{
		File:       file,
		ArchivedTo: dst,
	})
}

func (s *Server) handleSummary(c *gin.Context) {
	var record model.CFDI
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid record",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, summary.Summarize(&record))
}

func (s *Server) handleInfo(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return
	}

	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return
	}

	version, supported, err := s.pipeline.Detect(body)
	if err != nil {
		if errors.Is(err, model.ErrMalformedXML) {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, InfoResponse{
		Version:   version,
		Supported: supported,
		Size:      len(body),
	})
}
