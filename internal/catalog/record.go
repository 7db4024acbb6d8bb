// Package catalog implements the in-memory drive catalog: the file and
// folder records, the navigation state, and the controller that computes
// the visible set and applies mutations.
package catalog

// Owner identifier for records owned by the local user.
const OwnerLocal = "me"

// FolderSize is the size sentinel displayed for folders.
const FolderSize = "—"

// DateLayout is the layout used for upload and last-modified dates.
// Seed data and all generated records use this format.
const DateLayout = "Jan 2, 2006"

// Permission levels on a record.
const (
	PermissionView  = "view"
	PermissionEdit  = "edit"
	PermissionOwner = "owner"
)

// Record represents one file or folder in the catalog.
//
// Size and the two dates are human-readable strings: that is what the seed
// resource carries and what the presentation layer renders. LastModified
// may be empty, in which case UploadDate is the effective modification
// time. ParentID is empty for records that live at the root.
type Record struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Size         string   `json:"size"`
	UploadDate   string   `json:"uploadDate"`
	Type         string   `json:"type"`
	IsFolder     bool     `json:"isFolder,omitempty"`
	Starred      bool     `json:"starred,omitempty"`
	Shared       bool     `json:"shared,omitempty"`
	Owner        string   `json:"owner,omitempty"`
	Permissions  string   `json:"permissions,omitempty"`
	SharedWith   []string `json:"sharedWith,omitempty"`
	ParentID     string   `json:"parentId,omitempty"`
	LastModified string   `json:"lastModified,omitempty"`
	Version      int      `json:"version,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Description  string   `json:"description,omitempty"`
}

// ModifiedDate returns the last-modified date, falling back to the upload
// date when no modification has been recorded.
func (r Record) ModifiedDate() string {
	if r.LastModified != "" {
		return r.LastModified
	}
	return r.UploadDate
}

// copyRecord returns a copy of r with its own slice backing, so callers
// holding a snapshot never observe later mutations.
func copyRecord(r Record) Record {
	out := r
	if r.SharedWith != nil {
		out.SharedWith = append([]string(nil), r.SharedWith...)
	}
	if r.Tags != nil {
		out.Tags = append([]string(nil), r.Tags...)
	}
	return out
}
