// Package townlist holds the user-curated, ordered, de-duplicated
// collection of town snapshots and its CSV exports.
package townlist

import (
	"github.com/sells-group/location-explorer/internal/model"
)

// List is an ordered accumulator of town snapshots, de-duplicated by
// town key with first-insertion order preserved. It is not safe for
// concurrent use; the owning session serializes mutations.
type List struct {
	entries []model.TownListEntry
	present map[string]struct{}
}

// New returns an empty list.
func New() *List {
	return &List{present: make(map[string]struct{})}
}

// Add appends a snapshot. Adding an already-present key is a no-op;
// the return reports whether the entry was inserted.
func (l *List) Add(e model.TownListEntry) bool {
	if _, ok := l.present[e.TownKey]; ok {
		return false
	}
	l.present[e.TownKey] = struct{}{}
	l.entries = append(l.entries, e)
	return true
}

// Remove deletes the entry with the given key, preserving the order of
// the remaining entries. The return reports whether an entry was removed.
func (l *List) Remove(key string) bool {
	if _, ok := l.present[key]; !ok {
		return false
	}
	delete(l.present, key)
	for i, e := range l.entries {
		if e.TownKey == key {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			break
		}
	}
	return true
}

// Clear removes every entry.
func (l *List) Clear() {
	l.entries = nil
	l.present = make(map[string]struct{})
}

// Entries returns a copy of the current entries in insertion order.
func (l *List) Entries() []model.TownListEntry {
	out := make([]model.TownListEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *List) Len() int {
	return len(l.entries)
}
