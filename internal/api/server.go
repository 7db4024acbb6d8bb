// Package api provides the HTTP server and handlers.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/savedrive/savedrive/internal/catalog"
	"github.com/savedrive/savedrive/internal/events"
	"github.com/savedrive/savedrive/internal/logging"
	"github.com/savedrive/savedrive/internal/metrics"
	"github.com/savedrive/savedrive/internal/protocol"
	"github.com/savedrive/savedrive/internal/storage"
)

// Server is the HTTP server.
type Server struct {
	catalog *catalog.Controller
	uploads storage.Backend

	maxUploadSize int64
	uploadDelay   time.Duration

	// SSE
	broadcaster *events.Broadcaster
}

// NewServer creates a new server.
func NewServer(
	ctrl *catalog.Controller,
	uploads storage.Backend,
	broadcaster *events.Broadcaster,
	maxUploadSize int64,
	uploadDelay time.Duration,
) *Server {
	return &Server{
		catalog:       ctrl,
		uploads:       uploads,
		broadcaster:   broadcaster,
		maxUploadSize: maxUploadSize,
		uploadDelay:   uploadDelay,
	}
}

// Handler returns the HTTP handler with logging and metrics middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	// Catalog read endpoints
	mux.HandleFunc("GET /api/v1/catalog", s.handleCatalog)
	mux.HandleFunc("GET /api/v1/view", s.handleView)

	// Navigation endpoints
	mux.HandleFunc("PUT /api/v1/nav", s.handleNavUpdate)
	mux.HandleFunc("PUT /api/v1/nav/selection", s.handleSelection)
	mux.HandleFunc("POST /api/v1/nav/folder/{id}", s.handleOpenFolder)
	mux.HandleFunc("POST /api/v1/nav/breadcrumb", s.handleBreadcrumb)

	// Catalog mutation endpoints
	mux.HandleFunc("POST /api/v1/files", s.handleUploadFiles)
	mux.HandleFunc("POST /api/v1/folders", s.handleCreateFolder)
	mux.HandleFunc("POST /api/v1/files/{id}/star", s.handleToggleStar)
	mux.HandleFunc("PUT /api/v1/files/{id}/name", s.handleRename)
	mux.HandleFunc("POST /api/v1/files/{id}/share", s.handleShare)
	mux.HandleFunc("POST /api/v1/files/{id}/duplicate", s.handleDuplicate)
	mux.HandleFunc("POST /api/v1/bulk/delete", s.handleBulkDelete)

	// SSE endpoint
	mux.HandleFunc("GET /api/v1/events", s.handleEvents)

	// Upload directory demo endpoints. These are a standalone feature:
	// they never touch the catalog.
	mux.HandleFunc("GET /api/files", s.handleListUploads)
	mux.HandleFunc("POST /api/upload", s.handleUploadForm)
	mux.HandleFunc("GET /uploads/{name}", s.handleDownload)

	return metrics.Middleware(logging.Middleware(mux))
}

// ─── Health ─────────────────────────────────────────────────────────────────

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, map[string]string{"status": "ok", "version": "1.0"})
}

// ─── SSE Events ─────────────────────────────────────────────────────────────

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.sendError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := s.broadcaster.Subscribe()
	defer s.broadcaster.Unsubscribe(ch)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			data, err := events.MarshalEvent(event)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data)
			flusher.Flush()
		}
	}
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func (s *Server) sendJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (s *Server) sendError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(protocol.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
