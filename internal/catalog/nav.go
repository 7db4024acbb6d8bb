package catalog

// Top-level views.
const (
	ViewMyDrive = "my-drive"
	ViewShared  = "shared"
	ViewRecent  = "recent"
	ViewStarred = "starred"
	ViewTrash   = "trash"
)

// Sort keys.
const (
	SortByName = "name"
	SortByDate = "date"
	SortBySize = "size"
	SortByType = "type"
)

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Display modes.
const (
	ModeGrid = "grid"
	ModeList = "list"
)

// Crumb is one entry in the breadcrumb trail.
type Crumb struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NavState is the ephemeral navigation state: which view is active, where
// in the folder tree the user is, how the visible set is filtered and
// sorted, and what is selected. It is reset to defaults on startup and
// never persisted.
type NavState struct {
	ActiveView    string   `json:"activeView"`
	CurrentFolder string   `json:"currentFolder,omitempty"`
	Breadcrumbs   []Crumb  `json:"breadcrumbs"`
	SearchQuery   string   `json:"searchQuery"`
	SortBy        string   `json:"sortBy"`
	SortOrder     string   `json:"sortOrder"`
	Selected      []string `json:"selected"`
	ViewMode      string   `json:"viewMode"`
}

func defaultNav() NavState {
	return NavState{
		ActiveView: ViewMyDrive,
		SortBy:     SortByName,
		SortOrder:  SortAsc,
		ViewMode:   ModeGrid,
	}
}

// ValidView reports whether v names a known top-level view.
func ValidView(v string) bool {
	switch v {
	case ViewMyDrive, ViewShared, ViewRecent, ViewStarred, ViewTrash:
		return true
	}
	return false
}

// ValidSortKey reports whether k names a known sort key.
func ValidSortKey(k string) bool {
	switch k {
	case SortByName, SortByDate, SortBySize, SortByType:
		return true
	}
	return false
}

// ValidSortOrder reports whether o is a known sort direction.
func ValidSortOrder(o string) bool {
	return o == SortAsc || o == SortDesc
}

// ValidViewMode reports whether m is a known display mode.
func ValidViewMode(m string) bool {
	return m == ModeGrid || m == ModeList
}
