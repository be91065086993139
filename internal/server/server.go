// Package server exposes the import pipeline over HTTP for the web backend.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/smartspend-dev/spendcsv/internal/categorize"
	"github.com/smartspend-dev/spendcsv/internal/config"
	"github.com/smartspend-dev/spendcsv/internal/importer"
	"github.com/smartspend-dev/spendcsv/internal/logging"
)

// RunIDHeader carries the ID of the import run on every response.
const RunIDHeader = "X-Run-ID"

const uploadField = "file"

// Handler serves imports. It keeps no state between requests.
type Handler struct {
	pipeline *importer.Pipeline
	table    categorize.Table
	maxBytes int64
	logger   *log.Logger
}

// NewHandler creates a Handler.
func NewHandler(p *importer.Pipeline, table categorize.Table, maxBytes int64, logger *log.Logger) *Handler {
	return &Handler{pipeline: p, table: table, maxBytes: maxBytes, logger: logger}
}

// NewEngine builds the gin engine with all routes registered.
func NewEngine(cfg config.ServerConfig, h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), h.requestLog())
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.AllowedOrigins,
			AllowMethods:  []string{"GET", "POST"},
			AllowHeaders:  []string{"Origin", "Content-Type"},
			ExposeHeaders: []string{"Content-Length", RunIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	}
	r.MaxMultipartMemory = cfg.MaxUploadBytes()

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	api.GET("/categories", h.Categories)
	api.POST("/import", h.Import)
	return r
}

// Import runs the pipeline on the uploaded file. Processing failures are
// reported in the body with status 200, the same contract as the CLI.
func (h *Handler) Import(c *gin.Context) {
	runID := uuid.NewString()
	c.Header(RunIDHeader, runID)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)
	fh, err := c.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "upload too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "opening upload: " + err.Error()})
		return
	}
	defer f.Close()

	ctx := logging.WithLogger(c.Request.Context(), h.logger.With("request", runID))
	res := h.pipeline.ProcessReader(ctx, fh.Filename, f)
	c.JSON(http.StatusOK, res)
}

// Categories returns the active keyword table.
func (h *Handler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, h.table)
}

func (h *Handler) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"elapsed", time.Since(start),
		)
	}
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, addr string, engine *gin.Engine, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
