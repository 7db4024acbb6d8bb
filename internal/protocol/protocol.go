// Package protocol defines the API request/response types.
package protocol

import "github.com/savedrive/savedrive/internal/catalog"

// ErrorResponse is returned on API errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// CatalogResponse is returned by GET /api/v1/catalog.
type CatalogResponse struct {
	Files []catalog.Record `json:"files"`
}

// ViewResponse is returned by GET /api/v1/view: the visible set plus the
// navigation state it was computed from.
type ViewResponse struct {
	Files []catalog.Record `json:"files"`
	Nav   catalog.NavState `json:"nav"`
}

// NavUpdateRequest is the body for PUT /api/v1/nav. Nil fields leave the
// corresponding navigation state untouched.
type NavUpdateRequest struct {
	View      *string `json:"view,omitempty"`
	Query     *string `json:"query,omitempty"`
	SortBy    *string `json:"sortBy,omitempty"`
	SortOrder *string `json:"sortOrder,omitempty"`
	ViewMode  *string `json:"viewMode,omitempty"`
}

// SelectionRequest is the body for PUT /api/v1/nav/selection.
type SelectionRequest struct {
	IDs []string `json:"ids"`
}

// BreadcrumbRequest is the body for POST /api/v1/nav/breadcrumb.
// A null id jumps back to the root.
type BreadcrumbRequest struct {
	ID *string `json:"id"`
}

// UploadFilesRequest is the body for POST /api/v1/files.
type UploadFilesRequest struct {
	Files []catalog.Incoming `json:"files"`
}

// CreateFolderRequest is the body for POST /api/v1/folders.
type CreateFolderRequest struct {
	Name string `json:"name"`
}

// RenameRequest is the body for PUT /api/v1/files/{id}/name.
type RenameRequest struct {
	Name string `json:"name"`
}

// ShareRequest is the body for POST /api/v1/files/{id}/share.
type ShareRequest struct {
	Emails     []string `json:"emails"`
	Permission string   `json:"permission"`
}

// BulkDeleteRequest is the body for POST /api/v1/bulk/delete. Confirm is
// the explicit yes from the user; without it nothing is removed.
type BulkDeleteRequest struct {
	IDs     []string `json:"ids"`
	Confirm bool     `json:"confirm"`
}

// BulkDeleteResponse reports how many records were removed.
type BulkDeleteResponse struct {
	Deleted int `json:"deleted"`
}

// FileListResponse is returned by GET /api/files.
type FileListResponse struct {
	Files []string `json:"files"`
}

// UploadResponse is returned by POST /api/upload.
type UploadResponse struct {
	Message  string `json:"message"`
	FileName string `json:"fileName"`
}
