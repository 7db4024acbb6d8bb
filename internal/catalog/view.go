package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// nonNumeric strips everything but digits and dots from a size label.
var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// VisibleSet computes the filtered, sorted subset of the catalog for the
// current navigation state. Three predicates apply independently: search
// match, folder scope, and view match. The result is then sorted by the
// active sort key; the sort is stable, so ties keep catalog insertion
// order.
func (c *Controller) VisibleSet() []Record {
	c.mu.RLock()
	defer c.mu.RUnlock()

	query := strings.ToLower(c.nav.SearchQuery)
	out := make([]Record, 0, len(c.records))
	for _, r := range c.records {
		if query != "" && !strings.Contains(strings.ToLower(r.Name), query) {
			continue
		}
		if !matchesFolder(r, c.nav.CurrentFolder) {
			continue
		}
		if !matchesView(r, c.nav.ActiveView) {
			continue
		}
		out = append(out, copyRecord(r))
	}

	sortRecords(out, c.nav.SortBy, c.nav.SortOrder)
	return out
}

// matchesFolder scopes a record to the current folder. At the root only
// parentless records match; root listing is never recursive. A record
// whose parent no longer exists matches nothing outside that parent's id,
// so orphans stay invisible.
func matchesFolder(r Record, current string) bool {
	if current != "" {
		return r.ParentID == current
	}
	return r.ParentID == ""
}

// matchesView applies the active top-level view.
//
// The shared view includes records shared by someone else even when the
// local shared flag was never set. The recent view shows everything and
// carries its meaning in the sort order. The trash view has no backing
// implementation and is deliberately empty.
func matchesView(r Record, view string) bool {
	switch view {
	case ViewStarred:
		return r.Starred
	case ViewShared:
		return r.Shared || r.Owner != OwnerLocal
	case ViewTrash:
		return false
	default:
		return true
	}
}

func sortRecords(records []Record, key, order string) {
	var cmp func(a, b Record) int
	switch key {
	case SortByDate:
		cmp = func(a, b Record) int {
			ta, tb := parseDate(a.ModifiedDate()), parseDate(b.ModifiedDate())
			return ta.Compare(tb)
		}
	case SortBySize:
		cmp = func(a, b Record) int {
			sa, sb := sizeValue(a), sizeValue(b)
			switch {
			case sa < sb:
				return -1
			case sa > sb:
				return 1
			default:
				return 0
			}
		}
	case SortByType:
		cmp = func(a, b Record) int {
			return strings.Compare(a.Type, b.Type)
		}
	default: // name
		col := collate.New(language.English)
		cmp = func(a, b Record) int {
			return col.CompareString(a.Name, b.Name)
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		n := cmp(records[i], records[j])
		if order == SortDesc {
			return n > 0
		}
		return n < 0
	})
}

// parseDate parses a record date label; unparseable labels sort as the
// zero time.
func parseDate(s string) time.Time {
	t, _ := time.Parse(DateLayout, s)
	return t
}

// sizeValue returns the sortable magnitude of a record's size label.
// Folders count as zero. For files only the leading numeric portion is
// compared; the unit suffix is ignored, so "900 KB" sorts above "1.2 MB".
func sizeValue(r Record) float64 {
	if r.IsFolder {
		return 0
	}
	v, _ := strconv.ParseFloat(nonNumeric.ReplaceAllString(r.Size, ""), 64)
	return v
}

// formatSizeMB renders a byte count the way uploaded records display it:
// megabytes with one decimal, regardless of magnitude.
func formatSizeMB(bytes int64) string {
	return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
}
