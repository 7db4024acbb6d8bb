package api

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/savedrive/savedrive/internal/catalog"
	"github.com/savedrive/savedrive/internal/logging"
	"github.com/savedrive/savedrive/internal/protocol"
)

// ─── Catalog Reads ──────────────────────────────────────────────────────────

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, protocol.CatalogResponse{Files: s.catalog.Records()})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	s.sendJSON(w, protocol.ViewResponse{
		Files: s.catalog.VisibleSet(),
		Nav:   s.catalog.Nav(),
	})
}

// ─── Navigation ─────────────────────────────────────────────────────────────

func (s *Server) handleNavUpdate(w http.ResponseWriter, r *http.Request) {
	var req protocol.NavUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.View != nil && !catalog.ValidView(*req.View) {
		s.sendError(w, http.StatusBadRequest, "unknown view: "+*req.View)
		return
	}
	if req.SortBy != nil && !catalog.ValidSortKey(*req.SortBy) {
		s.sendError(w, http.StatusBadRequest, "unknown sort key: "+*req.SortBy)
		return
	}
	if req.SortOrder != nil && !catalog.ValidSortOrder(*req.SortOrder) {
		s.sendError(w, http.StatusBadRequest, "unknown sort order: "+*req.SortOrder)
		return
	}
	if req.ViewMode != nil && !catalog.ValidViewMode(*req.ViewMode) {
		s.sendError(w, http.StatusBadRequest, "unknown view mode: "+*req.ViewMode)
		return
	}

	if req.View != nil {
		s.catalog.SetView(*req.View)
	}
	if req.Query != nil {
		s.catalog.SetQuery(*req.Query)
	}
	if req.SortBy != nil || req.SortOrder != nil {
		key, order := "", ""
		if req.SortBy != nil {
			key = *req.SortBy
		}
		if req.SortOrder != nil {
			order = *req.SortOrder
		}
		s.catalog.SetSort(key, order)
	}
	if req.ViewMode != nil {
		s.catalog.SetViewMode(*req.ViewMode)
	}

	s.sendJSON(w, s.catalog.Nav())
}

func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	var req protocol.SelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.catalog.SetSelection(req.IDs)
	s.sendJSON(w, s.catalog.Nav())
}

func (s *Server) handleOpenFolder(w http.ResponseWriter, r *http.Request) {
	// Unknown or non-folder ids are silently ignored; the response always
	// reflects the resulting navigation state.
	s.catalog.OpenFolder(r.PathValue("id"))
	s.sendJSON(w, s.catalog.Nav())
}

func (s *Server) handleBreadcrumb(w http.ResponseWriter, r *http.Request) {
	var req protocol.BreadcrumbRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id := ""
	if req.ID != nil {
		id = *req.ID
	}
	s.catalog.ClickBreadcrumb(id)
	s.sendJSON(w, s.catalog.Nav())
}

// ─── Catalog Mutations ──────────────────────────────────────────────────────

func (s *Server) handleUploadFiles(w http.ResponseWriter, r *http.Request) {
	var req protocol.UploadFilesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Files) == 0 {
		s.sendError(w, http.StatusBadRequest, "no files given")
		return
	}

	if s.uploadDelay > 0 {
		// Simulated upload: the records land after a fixed delay.
		// Fire-and-forget, no cancellation.
		files := req.Files
		time.AfterFunc(s.uploadDelay, func() {
			s.catalog.UploadFiles(files)
		})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]any{"accepted": len(files)})
		return
	}

	created := s.catalog.UploadFiles(req.Files)
	logging.Info("files uploaded to catalog", zap.Int("count", len(created)))
	s.sendJSON(w, protocol.CatalogResponse{Files: created})
}

func (s *Server) handleCreateFolder(w http.ResponseWriter, r *http.Request) {
	var req protocol.CreateFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		s.sendError(w, http.StatusBadRequest, "folder name required")
		return
	}

	rec := s.catalog.CreateFolder(req.Name)
	logging.Info("folder created", zap.String("id", rec.ID), zap.String("name", rec.Name))
	s.sendJSON(w, rec)
}

func (s *Server) handleToggleStar(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.catalog.ToggleStar(id)
	if rec, ok := s.catalog.Get(id); ok {
		s.sendJSON(w, rec)
		return
	}
	// Missing ids are a no-op, not an error.
	s.sendJSON(w, map[string]any{})
}

func (s *Server) handleRename(w http.ResponseWriter, r *http.Request) {
	var req protocol.RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		s.sendError(w, http.StatusBadRequest, "name required")
		return
	}

	id := r.PathValue("id")
	s.catalog.Rename(id, req.Name)
	if rec, ok := s.catalog.Get(id); ok {
		s.sendJSON(w, rec)
		return
	}
	s.sendJSON(w, map[string]any{})
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	var req protocol.ShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Emails) == 0 {
		s.sendError(w, http.StatusBadRequest, "at least one recipient required")
		return
	}
	if req.Permission == "" {
		req.Permission = catalog.PermissionView
	}

	id := r.PathValue("id")
	s.catalog.ShareWith(id, req.Emails, req.Permission)
	if rec, ok := s.catalog.Get(id); ok {
		logging.Info("record shared",
			zap.String("id", id),
			zap.Int("recipients", len(req.Emails)),
			zap.String("permission", req.Permission))
		s.sendJSON(w, rec)
		return
	}
	s.sendJSON(w, map[string]any{})
}

func (s *Server) handleDuplicate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if dup, ok := s.catalog.Duplicate(id); ok {
		s.sendJSON(w, dup)
		return
	}
	s.sendJSON(w, map[string]any{})
}

func (s *Server) handleBulkDelete(w http.ResponseWriter, r *http.Request) {
	var req protocol.BulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Confirm {
		s.sendError(w, http.StatusBadRequest, "deletion requires confirmation")
		return
	}

	deleted := s.catalog.DeleteMany(req.IDs)
	logging.Info("records deleted", zap.Int("count", deleted))
	s.sendJSON(w, protocol.BulkDeleteResponse{Deleted: deleted})
}
