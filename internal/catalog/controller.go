package catalog

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/savedrive/savedrive/internal/events"
	"github.com/savedrive/savedrive/internal/metrics"
)

// Controller owns the catalog and the navigation state. It is the single
// source of truth: the HTTP layer forwards user intents and renders
// whatever the controller computes.
//
// Records are kept in insertion order with new records prepended, so the
// newest creation sits at the front. All state is guarded by one mutex;
// every mutation is applied entirely or not at all.
type Controller struct {
	mu          sync.RWMutex
	records     []Record
	nav         NavState
	broadcaster *events.Broadcaster

	now func() time.Time
}

// New creates a controller seeded with the given records. The broadcaster
// may be nil, in which case no events are published.
func New(records []Record, broadcaster *events.Broadcaster) *Controller {
	c := &Controller{
		records:     append([]Record(nil), records...),
		nav:         defaultNav(),
		broadcaster: broadcaster,
		now:         time.Now,
	}
	metrics.SetCatalogSize(int64(len(c.records)))
	return c
}

// Records returns a snapshot of the full catalog in insertion order.
func (c *Controller) Records() []Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Record, len(c.records))
	for i, r := range c.records {
		out[i] = copyRecord(r)
	}
	return out
}

// Len returns the number of records in the catalog.
func (c *Controller) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Nav returns a snapshot of the navigation state.
func (c *Controller) Nav() NavState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.navSnapshotLocked()
}

func (c *Controller) navSnapshotLocked() NavState {
	nav := c.nav
	nav.Breadcrumbs = append([]Crumb(nil), c.nav.Breadcrumbs...)
	nav.Selected = append([]string(nil), c.nav.Selected...)
	return nav
}

// Get returns the record with the given id, if present.
func (c *Controller) Get(id string) (Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexLocked(id); i >= 0 {
		return copyRecord(c.records[i]), true
	}
	return Record{}, false
}

func (c *Controller) indexLocked(id string) int {
	for i := range c.records {
		if c.records[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Controller) today() string {
	return c.now().Format(DateLayout)
}

func (c *Controller) publish(e events.Event) {
	if c.broadcaster != nil {
		c.broadcaster.Publish(e)
	}
}

// ─── Navigation ─────────────────────────────────────────────────────────────

// SetView switches the active top-level view. Unknown views are ignored.
func (c *Controller) SetView(view string) {
	if !ValidView(view) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nav.ActiveView = view
}

// SetQuery sets the search query.
func (c *Controller) SetQuery(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nav.SearchQuery = q
}

// SetSort sets the sort key and direction. Unknown values leave the
// corresponding field unchanged.
func (c *Controller) SetSort(key, order string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ValidSortKey(key) {
		c.nav.SortBy = key
	}
	if ValidSortOrder(order) {
		c.nav.SortOrder = order
	}
}

// SetViewMode switches between grid and list display.
func (c *Controller) SetViewMode(mode string) {
	if !ValidViewMode(mode) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nav.ViewMode = mode
}

// SetSelection replaces the selection with the given ids. Click semantics
// (replace vs. toggle) are decided by the caller.
func (c *Controller) SetSelection(ids []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nav.Selected = append([]string(nil), ids...)
}

// OpenFolder navigates into the folder with the given id and extends the
// breadcrumb trail. Unknown ids and non-folder records are ignored.
// Navigation is flat addressing: any folder id is reachable from anywhere.
func (c *Controller) OpenFolder(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexLocked(id)
	if i < 0 || !c.records[i].IsFolder {
		return
	}
	c.nav.CurrentFolder = id
	c.nav.Breadcrumbs = append(c.nav.Breadcrumbs, Crumb{ID: id, Name: c.records[i].Name})
}

// ClickBreadcrumb jumps to a trail entry. An empty id resets to the root
// and clears the trail. A known id truncates the trail through that entry.
// An id not present in the trail still becomes the current folder while
// the trail is left alone; the resulting desync is accepted behavior.
func (c *Controller) ClickBreadcrumb(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id == "" {
		c.nav.CurrentFolder = ""
		c.nav.Breadcrumbs = nil
		return
	}
	c.nav.CurrentFolder = id
	for i, b := range c.nav.Breadcrumbs {
		if b.ID == id {
			c.nav.Breadcrumbs = c.nav.Breadcrumbs[:i+1]
			return
		}
	}
}

// ─── Mutations ──────────────────────────────────────────────────────────────

// ToggleStar flips the starred flag on the matching record. Unknown ids
// are a no-op.
func (c *Controller) ToggleStar(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexLocked(id)
	if i < 0 {
		return
	}
	c.records[i].Starred = !c.records[i].Starred
	metrics.RecordMutation("star")
	c.publish(events.Event{Type: events.EventModify, ID: id, Name: c.records[i].Name})
}

// Rename changes a record's display name. Empty or unchanged names are a
// no-op. For files the extension of the current name is preserved: if the
// new name does not already end with it, it is appended. Folders get no
// extension handling.
func (c *Controller) Rename(id, newName string) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexLocked(id)
	if i < 0 {
		return
	}
	rec := &c.records[i]
	if newName == rec.Name {
		return
	}
	if !rec.IsFolder {
		if ext := extension(rec.Name); ext != "" && !strings.HasSuffix(newName, ext) {
			newName += ext
		}
	}
	rec.Name = newName
	rec.LastModified = c.today()
	metrics.RecordMutation("rename")
	c.publish(events.Event{Type: events.EventModify, ID: id, Name: rec.Name})
}

// extension returns the suffix of name from its last dot, or "" when the
// name has no extension. A leading dot (dotfile) does not count.
func extension(name string) string {
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[i:]
	}
	return ""
}

// ShareWith marks a record shared and appends the recipients to its
// collaborator list. Recipients are not deduplicated: repeated shares
// accumulate repeats. The permission argument describes the grant the
// caller chose; the record's own permission level is untouched.
func (c *Controller) ShareWith(id string, emails []string, permission string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexLocked(id)
	if i < 0 {
		return
	}
	rec := &c.records[i]
	rec.Shared = true
	rec.SharedWith = append(append([]string(nil), rec.SharedWith...), emails...)
	metrics.RecordMutation("share")
	c.publish(events.Event{Type: events.EventModify, ID: id, Name: rec.Name})
}

// Duplicate creates a copy of the record with a fresh id, a "Copy of "
// name prefix, today's dates and version 1, and prepends it to the
// catalog. It returns the new record.
func (c *Controller) Duplicate(id string) (Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexLocked(id)
	if i < 0 {
		return Record{}, false
	}
	dup := copyRecord(c.records[i])
	dup.ID = uuid.NewString()
	dup.Name = "Copy of " + dup.Name
	dup.UploadDate = c.today()
	dup.LastModified = c.today()
	dup.Version = 1
	c.records = append([]Record{dup}, c.records...)
	metrics.RecordMutation("duplicate")
	metrics.SetCatalogSize(int64(len(c.records)))
	c.publish(events.Event{Type: events.EventCreate, ID: dup.ID, Name: dup.Name})
	return copyRecord(dup), true
}

// DeleteMany removes all matching records and clears them from the
// current selection. Deletion is shallow: children of a deleted folder
// stay in the catalog and simply stop being reachable through the folder
// scope filter. The confirmation gate lives at the boundary, not here.
func (c *Controller) DeleteMany(ids []string) int {
	if len(ids) == 0 {
		return 0
	}
	doomed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		doomed[id] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.records[:0]
	var removed []Record
	for _, r := range c.records {
		if _, ok := doomed[r.ID]; ok {
			removed = append(removed, r)
			continue
		}
		kept = append(kept, r)
	}
	c.records = kept

	if len(c.nav.Selected) > 0 {
		sel := c.nav.Selected[:0]
		for _, id := range c.nav.Selected {
			if _, ok := doomed[id]; !ok {
				sel = append(sel, id)
			}
		}
		c.nav.Selected = sel
	}

	for _, r := range removed {
		metrics.RecordMutation("delete")
		c.publish(events.Event{Type: events.EventDelete, ID: r.ID, Name: r.Name})
	}
	metrics.SetCatalogSize(int64(len(c.records)))
	return len(removed)
}

// Incoming describes a file blob arriving through the upload flow.
type Incoming struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// UploadFiles synthesizes records for the incoming files and prepends
// them to the catalog, parented under the current folder. The size label
// is always expressed in MB with one decimal, whatever the magnitude.
// Returns the created records.
func (c *Controller) UploadFiles(files []Incoming) []Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	created := make([]Record, 0, len(files))
	for _, f := range files {
		rec := Record{
			ID:           uuid.NewString(),
			Name:         f.Name,
			Size:         formatSizeMB(f.Size),
			UploadDate:   c.today(),
			LastModified: c.today(),
			Type:         f.Type,
			Owner:        OwnerLocal,
			Permissions:  PermissionOwner,
			ParentID:     c.nav.CurrentFolder,
			Version:      1,
			Tags:         []string{},
		}
		created = append(created, rec)
	}
	c.records = append(append([]Record(nil), created...), c.records...)

	for _, rec := range created {
		metrics.RecordMutation("upload")
		c.publish(events.Event{Type: events.EventCreate, ID: rec.ID, Name: rec.Name})
	}
	metrics.SetCatalogSize(int64(len(c.records)))

	out := make([]Record, len(created))
	for i, r := range created {
		out[i] = copyRecord(r)
	}
	return out
}

// CreateFolder synthesizes a folder record under the current folder and
// prepends it to the catalog. Returns the new record.
func (c *Controller) CreateFolder(name string) Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec := Record{
		ID:           uuid.NewString(),
		Name:         name,
		Size:         FolderSize,
		UploadDate:   c.today(),
		LastModified: c.today(),
		Type:         "folder",
		IsFolder:     true,
		Owner:        OwnerLocal,
		Permissions:  PermissionOwner,
		ParentID:     c.nav.CurrentFolder,
		Version:      1,
		Tags:         []string{},
	}
	c.records = append([]Record{rec}, c.records...)
	metrics.RecordMutation("create_folder")
	metrics.SetCatalogSize(int64(len(c.records)))
	c.publish(events.Event{Type: events.EventCreate, ID: rec.ID, Name: rec.Name})
	return copyRecord(rec)
}
