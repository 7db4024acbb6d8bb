package catalog

import (
	"testing"
)

func testRecords() []Record {
	return []Record{
		{ID: "f1", Name: "Documents", Size: FolderSize, Type: "folder", IsFolder: true,
			UploadDate: "Dec 15, 2024", Owner: OwnerLocal, Permissions: PermissionOwner, Version: 1},
		{ID: "r1", Name: "Report.pdf", Size: "2.4 MB", Type: "application/pdf",
			UploadDate: "Dec 13, 2024", Owner: OwnerLocal, Permissions: PermissionOwner, Version: 1},
		{ID: "r2", Name: "Vacation.jpg", Size: "1.8 MB", Type: "image/jpeg",
			UploadDate: "Dec 12, 2024", Owner: OwnerLocal, Permissions: PermissionOwner, Version: 1},
		{ID: "r3", Name: "notes.txt", Size: "900 KB", Type: "text/plain",
			UploadDate: "Dec 11, 2024", Owner: OwnerLocal, Permissions: PermissionOwner,
			ParentID: "f1", Version: 1},
	}
}

func ids(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func equalIDs(a []string, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestVisibleSetSearch(t *testing.T) {
	c := New(testRecords(), nil)

	// Empty query matches everything in scope (root here).
	if got := c.VisibleSet(); len(got) != 3 {
		t.Fatalf("expected 3 root records with empty query, got %d", len(got))
	}

	c.SetQuery("REPORT")
	got := c.VisibleSet()
	if len(got) != 1 || got[0].ID != "r1" {
		t.Fatalf("expected case-insensitive match on r1, got %v", ids(got))
	}

	c.SetQuery("zzz")
	if got := c.VisibleSet(); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", ids(got))
	}
}

func TestVisibleSetFolderScope(t *testing.T) {
	c := New(testRecords(), nil)

	// Root: only parentless records.
	for _, r := range c.VisibleSet() {
		if r.ParentID != "" {
			t.Errorf("root listing leaked child record %s", r.ID)
		}
	}

	c.OpenFolder("f1")
	got := c.VisibleSet()
	if len(got) != 1 || got[0].ID != "r3" {
		t.Fatalf("expected only r3 inside f1, got %v", ids(got))
	}
}

func TestVisibleSetOrphansInvisible(t *testing.T) {
	c := New(testRecords(), nil)
	c.DeleteMany([]string{"f1"})

	// The child stays in the catalog but never shows up: not at the root,
	// and its parent id can no longer be opened.
	if _, ok := c.Get("r3"); !ok {
		t.Fatal("child should survive a shallow folder delete")
	}
	for _, r := range c.VisibleSet() {
		if r.ID == "r3" {
			t.Error("orphan visible at root")
		}
	}
	c.OpenFolder("f1")
	if nav := c.Nav(); nav.CurrentFolder != "" {
		t.Errorf("expected open of deleted folder to no-op, got folder %q", nav.CurrentFolder)
	}
}

func TestVisibleSetViews(t *testing.T) {
	records := []Record{
		{ID: "a", Name: "a.txt", Size: "1.0 MB", Type: "text/plain", Owner: OwnerLocal, Starred: true},
		{ID: "b", Name: "b.txt", Size: "1.0 MB", Type: "text/plain", Owner: OwnerLocal},
		{ID: "c", Name: "c.txt", Size: "1.0 MB", Type: "text/plain", Owner: "someone@example.com"},
		{ID: "d", Name: "d.txt", Size: "1.0 MB", Type: "text/plain", Owner: OwnerLocal, Shared: true},
	}

	tests := []struct {
		view string
		want []string
	}{
		{ViewMyDrive, []string{"a", "b", "c", "d"}},
		{ViewStarred, []string{"a"}},
		// Shared by me, or owned by someone else even without the flag.
		{ViewShared, []string{"c", "d"}},
		{ViewRecent, []string{"a", "b", "c", "d"}},
		{ViewTrash, nil},
	}

	for _, tt := range tests {
		c := New(records, nil)
		c.SetView(tt.view)
		got := ids(c.VisibleSet())
		if !equalIDs(got, tt.want) {
			t.Errorf("view %s: expected %v, got %v", tt.view, tt.want, got)
		}
	}
}

func TestSortStability(t *testing.T) {
	// Identical names: stable sort keeps catalog insertion order.
	records := []Record{
		{ID: "x", Name: "same.txt", Size: "1.0 MB", Type: "text/plain", Owner: OwnerLocal},
		{ID: "y", Name: "same.txt", Size: "2.0 MB", Type: "text/plain", Owner: OwnerLocal},
		{ID: "z", Name: "same.txt", Size: "3.0 MB", Type: "text/plain", Owner: OwnerLocal},
	}
	c := New(records, nil)

	first := ids(c.VisibleSet())
	if !equalIDs(first, []string{"x", "y", "z"}) {
		t.Fatalf("expected insertion order for equal keys, got %v", first)
	}

	// Sorting an already-sorted sequence changes nothing.
	second := ids(c.VisibleSet())
	if !equalIDs(first, second) {
		t.Fatalf("sort not idempotent: %v then %v", first, second)
	}
}

func TestSortByName(t *testing.T) {
	c := New(testRecords(), nil)
	got := ids(c.VisibleSet())
	if !equalIDs(got, []string{"f1", "r1", "r2"}) {
		t.Fatalf("expected name-ascending order [f1 r1 r2], got %v", got)
	}

	c.SetSort(SortByName, SortDesc)
	got = ids(c.VisibleSet())
	if !equalIDs(got, []string{"r2", "r1", "f1"}) {
		t.Fatalf("expected name-descending order [r2 r1 f1], got %v", got)
	}
}

func TestSortByDate(t *testing.T) {
	c := New(testRecords(), nil)
	c.SetSort(SortByDate, SortAsc)
	got := ids(c.VisibleSet())
	// r2 (Dec 12) < r1 (Dec 13) < f1 (Dec 15)
	if !equalIDs(got, []string{"r2", "r1", "f1"}) {
		t.Fatalf("expected date-ascending order [r2 r1 f1], got %v", got)
	}
}

func TestSortByDateFallsBackToUploadDate(t *testing.T) {
	records := []Record{
		{ID: "old", Name: "old.txt", Size: "1.0 MB", Type: "text/plain",
			UploadDate: "Jan 1, 2020", Owner: OwnerLocal},
		{ID: "touched", Name: "touched.txt", Size: "1.0 MB", Type: "text/plain",
			UploadDate: "Jan 1, 2019", LastModified: "Jan 1, 2021", Owner: OwnerLocal},
	}
	c := New(records, nil)
	c.SetSort(SortByDate, SortAsc)
	got := ids(c.VisibleSet())
	if !equalIDs(got, []string{"old", "touched"}) {
		t.Fatalf("expected [old touched], got %v", got)
	}
}

func TestSortBySizeIgnoresUnits(t *testing.T) {
	records := []Record{
		{ID: "kb", Name: "big-by-number.bin", Size: "900 KB", Type: "application/octet-stream", Owner: OwnerLocal},
		{ID: "mb", Name: "small-by-number.bin", Size: "1.2 MB", Type: "application/octet-stream", Owner: OwnerLocal},
		{ID: "dir", Name: "folder", Size: FolderSize, Type: "folder", IsFolder: true, Owner: OwnerLocal},
	}
	c := New(records, nil)
	c.SetSort(SortBySize, SortAsc)

	// Only the numeric prefix counts: folders (0) < 1.2 < 900.
	got := ids(c.VisibleSet())
	if !equalIDs(got, []string{"dir", "mb", "kb"}) {
		t.Fatalf("expected [dir mb kb], got %v", got)
	}
}

func TestSortByType(t *testing.T) {
	records := []Record{
		{ID: "v", Name: "clip", Size: "1.0 MB", Type: "video/mp4", Owner: OwnerLocal},
		{ID: "i", Name: "pic", Size: "1.0 MB", Type: "image/png", Owner: OwnerLocal},
		{ID: "p", Name: "doc", Size: "1.0 MB", Type: "application/pdf", Owner: OwnerLocal},
	}
	c := New(records, nil)
	c.SetSort(SortByType, SortAsc)
	got := ids(c.VisibleSet())
	if !equalIDs(got, []string{"p", "i", "v"}) {
		t.Fatalf("expected [p i v], got %v", got)
	}
}

func TestFormatSizeMB(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{1048576, "1.0 MB"},
		{2516582, "2.4 MB"},
		// Always MB with one decimal, even for tiny or huge files.
		{512, "0.0 MB"},
		{5 * 1024 * 1024 * 1024, "5120.0 MB"},
	}
	for _, tt := range tests {
		if got := formatSizeMB(tt.bytes); got != tt.want {
			t.Errorf("formatSizeMB(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}
