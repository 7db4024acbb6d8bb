package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/savedrive/savedrive/internal/events"
	"github.com/savedrive/savedrive/internal/logging"
	"github.com/savedrive/savedrive/internal/metrics"
	"github.com/savedrive/savedrive/internal/protocol"
)

// Handlers for the standalone upload directory feature. Files land on
// disk through the storage backend and are listed and served back; the
// in-memory catalog is never involved.

func (s *Server) handleListUploads(w http.ResponseWriter, r *http.Request) {
	names, err := s.uploads.ListObjects(r.Context())
	if err != nil {
		logging.Error("failed to list upload directory", zap.Error(err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(protocol.FileListResponse{Files: []string{}})
		return
	}
	if names == nil {
		names = []string{}
	}
	s.sendJSON(w, protocol.FileListResponse{Files: names})
}

func (s *Server) handleUploadForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadSize)

	mr, err := r.MultipartReader()
	if err != nil {
		metrics.RecordUpload(0, false)
		s.sendError(w, http.StatusInternalServerError, "Error parsing file")
		return
	}

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			metrics.RecordUpload(0, false)
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				s.sendError(w, http.StatusRequestEntityTooLarge, "file too large")
				return
			}
			s.sendError(w, http.StatusInternalServerError, "Error parsing file")
			return
		}
		if part.FormName() != "file" {
			part.Close()
			continue
		}

		original := part.FileName()
		// Random stored name, extension preserved.
		key := uuid.NewString() + filepath.Ext(original)

		n, err := s.uploads.PutObject(r.Context(), key, part)
		part.Close()
		if err != nil {
			metrics.RecordUpload(0, false)
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				s.sendError(w, http.StatusRequestEntityTooLarge, "file too large")
				return
			}
			logging.Error("upload write failed", zap.String("file", original), zap.Error(err))
			s.sendError(w, http.StatusInternalServerError, "Error uploading file")
			return
		}

		metrics.RecordUpload(n, true)
		logging.Info("file uploaded",
			zap.String("file", original),
			zap.String("stored_as", key),
			zap.String("size", humanize.IBytes(uint64(n))))

		if s.broadcaster != nil {
			s.broadcaster.Publish(events.Event{
				Type: events.EventUpload,
				Path: "/uploads/" + key,
				Name: original,
				Size: n,
			})
		}

		s.sendJSON(w, protocol.UploadResponse{
			Message:  "File uploaded successfully",
			FileName: original,
		})
		return
	}

	metrics.RecordUpload(0, false)
	s.sendError(w, http.StatusBadRequest, "No file uploaded")
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	body, size, err := s.uploads.GetObject(r.Context(), name)
	if err != nil {
		s.sendError(w, http.StatusNotFound, "file not found: "+name)
		return
	}
	defer body.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.FormatInt(size, 10))
	io.Copy(w, body)
}
