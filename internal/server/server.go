package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rezonia/atcud-qr/internal/model"
	"github.com/rezonia/atcud-qr/internal/processor"
)

// Config holds server configuration
type Config struct {
	Address          string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	ShutdownTimeout  time.Duration
	Debug            bool
	Logger           *slog.Logger
	BatchConcurrency int
	MaxBatchSize     int
}

// Server represents the HTTP API server
type Server struct {
	config   *Config
	router   *gin.Engine
	pipeline *processor.Pipeline
	metrics  *Metrics
	registry *prometheus.Registry
	log      *slog.Logger
}

// NewServer creates a new API server
func NewServer(config *Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	registry := prometheus.NewRegistry()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(requestLogger(logger))

	s := &Server{
		config: config,
		router: router,
		pipeline: processor.NewPipeline(
			processor.WithLogger(logger),
			processor.WithConcurrency(config.BatchConcurrency),
		),
		metrics:  NewMetrics(registry),
		registry: registry,
		log:      logger,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/validate", s.handleValidate)
		v1.POST("/parse", s.handleParse)
		v1.POST("/decode", s.handleDecode)
		v1.POST("/decode/batch", s.handleDecodeBatch)
		v1.POST("/encode", s.handleEncode)
	}
}

// Run starts the HTTP server and blocks until ctx is cancelled or the
// listener fails. On cancellation in-flight requests get ShutdownTimeout to
// finish.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", "address", s.config.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.log.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
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

// readPayload returns the request body as a payload. Trailing line breaks
// are dropped so that `curl --data-binary @file` works.
func readPayload(c *gin.Context) (string, bool) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: ErrCodeBadRequest, Details: "failed to read request body"})
		return "", false
	}

	payload := strings.TrimRight(string(body), "\r\n")
	if payload == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: ErrCodeBadRequest, Details: "empty request body"})
		return "", false
	}
	return payload, true
}

func (s *Server) handleValidate(c *gin.Context) {
	payload, ok := readPayload(c)
	if !ok {
		return
	}

	valid := s.pipeline.IsValid(payload)
	s.metrics.ObserveValidation(valid)

	c.JSON(http.StatusOK, ValidationResponse{Valid: valid})
}

func (s *Server) handleParse(c *gin.Context) {
	payload, ok := readPayload(c)
	if !ok {
		return
	}

	fields, err := s.pipeline.Parse(payload)
	if err != nil {
		s.writeError(c, err)
		return
	}

	values, err := fields.Values()
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ParseResponse{Fields: values})
}

func (s *Server) handleDecode(c *gin.Context) {
	payload, ok := readPayload(c)
	if !ok {
		return
	}

	start := time.Now()
	doc, err := s.pipeline.Decode(payload)
	s.metrics.ObserveDecode(outcome(err), time.Since(start))
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, DecodeResponse{
		Document: doc,
		Warnings: doc.Warnings(),
	})
}

func (s *Server) handleDecodeBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: ErrCodeBadRequest, Details: err.Error()})
		return
	}
	if s.config.MaxBatchSize > 0 && len(req.Payloads) > s.config.MaxBatchSize {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Error:   ErrCodeBatchTooLarge,
			Details: fmt.Sprintf("batch has %d payloads, limit is %d", len(req.Payloads), s.config.MaxBatchSize),
		})
		return
	}

	results := s.pipeline.DecodeBatch(c.Request.Context(), req.Payloads)

	resp := BatchResponse{Results: make([]BatchItem, len(results))}
	for i, r := range results {
		s.metrics.ObserveDecode(outcome(r.Err), r.Duration)
		item := BatchItem{Index: r.Index, Document: r.Document}
		if r.Err != nil {
			item.Error = r.Err.Error()
			resp.Invalid++
		} else {
			resp.Valid++
		}
		resp.Results[i] = item
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleEncode(c *gin.Context) {
	var doc model.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: ErrCodeBadRequest, Details: err.Error()})
		return
	}

	payload, err := s.pipeline.Encode(&doc)
	if err != nil {
		var parseErr *model.ParseError
		if errors.As(err, &parseErr) {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: ErrCodeEncodeFailed, Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, EncodeResponse{Payload: payload})
}

// writeError maps the error taxonomy onto HTTP responses
func (s *Server) writeError(c *gin.Context, err error) {
	var parseErr *model.ParseError
	var decodeErr *model.DecodeError

	switch {
	case errors.Is(err, model.ErrInvalidData):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   ErrCodeInvalidData,
			Details: "the provided data is not valid, use /api/v1/parse for field details",
		})
	case errors.As(err, &parseErr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:         ErrCodeParseFailed,
			Details:       "failed to parse document data",
			InvalidFields: parseErr.InvalidFields,
		})
	case errors.As(err, &decodeErr):
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   ErrCodeDecodeFailed,
			Details: decodeErr.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   ErrCodeDecodeFailed,
			Details: err.Error(),
		})
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeDecoded
	case errors.Is(err, model.ErrInvalidData):
		return OutcomeInvalid
	default:
		return OutcomeFailed
	}
}
