// Package seed loads the initial catalog from a static JSON resource.
package seed

import (
	"encoding/json"
	"os"

	"go.uber.org/zap"

	"github.com/savedrive/savedrive/internal/catalog"
	"github.com/savedrive/savedrive/internal/logging"
)

// Load reads a JSON array of records from path. No schema validation is
// performed; whatever the resource contains flows into the catalog as-is.
// A missing or malformed resource is logged and yields an empty catalog,
// indistinguishable from a genuinely empty drive. When path is empty the
// built-in demo catalog is returned.
func Load(path string) []catalog.Record {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logging.Error("failed to read seed resource", zap.String("path", path), zap.Error(err))
		return nil
	}

	var records []catalog.Record
	if err := json.Unmarshal(data, &records); err != nil {
		logging.Error("failed to parse seed resource", zap.String("path", path), zap.Error(err))
		return nil
	}

	logging.Info("seed catalog loaded", zap.String("path", path), zap.Int("records", len(records)))
	return records
}

// Default returns the built-in demo catalog.
func Default() []catalog.Record {
	return []catalog.Record{
		{
			ID: "1", Name: "Documents", Size: catalog.FolderSize,
			UploadDate: "Dec 15, 2024", LastModified: "Dec 15, 2024",
			Type: "folder", IsFolder: true,
			Owner: catalog.OwnerLocal, Permissions: catalog.PermissionOwner,
			Version: 1, Tags: []string{"work"},
			Description: "Work documents folder",
		},
		{
			ID: "2", Name: "Photos", Size: catalog.FolderSize,
			UploadDate: "Dec 14, 2024", LastModified: "Dec 14, 2024",
			Type: "folder", IsFolder: true, Starred: true,
			Owner: catalog.OwnerLocal, Permissions: catalog.PermissionOwner,
			Version: 1, Tags: []string{"personal"},
			Description: "Personal photos collection",
		},
		{
			ID: "3", Name: "Project Presentation.pdf", Size: "2.4 MB",
			UploadDate: "Dec 13, 2024", LastModified: "Dec 13, 2024",
			Type: "application/pdf", Starred: true,
			Owner: catalog.OwnerLocal, Permissions: catalog.PermissionOwner,
			Version: 3, Tags: []string{"work", "presentation"},
			Description: "Q4 project presentation slides",
		},
		{
			ID: "4", Name: "Summer Vacation.jpg", Size: "1.8 MB",
			UploadDate: "Dec 12, 2024", LastModified: "Dec 12, 2024",
			Type: "image/jpeg",
			Owner: catalog.OwnerLocal, Permissions: catalog.PermissionOwner,
			Version: 1, Tags: []string{"personal", "vacation"},
			Description: "Summer vacation memories",
		},
		{
			ID: "5", Name: "Meeting Recording.mp4", Size: "45.2 MB",
			UploadDate: "Dec 11, 2024", LastModified: "Dec 11, 2024",
			Type: "video/mp4",
			Owner: catalog.OwnerLocal, Permissions: catalog.PermissionOwner,
			Version: 1, Tags: []string{"work", "meeting"},
			Description: "Team meeting recording",
		},
		{
			ID: "6", Name: "Financial Report.xlsx", Size: "1.2 MB",
			UploadDate: "Dec 10, 2024", LastModified: "Dec 10, 2024",
			Type:   "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Shared: true, Owner: "john.doe@company.com", Permissions: catalog.PermissionEdit,
			SharedWith: []string{"me", "jane.smith@company.com"},
			Version:    2, Tags: []string{"work", "finance"},
			Description: "Monthly financial report",
		},
		{
			ID: "7", Name: "Company Logo.png", Size: "256 KB",
			UploadDate: "Dec 9, 2024", LastModified: "Dec 9, 2024",
			Type: "image/png",
			Owner: catalog.OwnerLocal, Permissions: catalog.PermissionOwner,
			Version: 1, Tags: []string{"work", "branding"},
			Description: "Official company logo",
		},
		{
			ID: "8", Name: "Background Music.mp3", Size: "3.7 MB",
			UploadDate: "Dec 8, 2024", LastModified: "Dec 8, 2024",
			Type: "audio/mp3",
			Owner: catalog.OwnerLocal, Permissions: catalog.PermissionOwner,
			Version: 1, Tags: []string{"personal", "music"},
			Description: "Background music for videos",
		},
	}
}
