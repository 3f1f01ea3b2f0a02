// Package session owns the per-session mutable dashboard state: the
// filter state, the selection, and the town list. Each session
// serializes its own mutations behind one mutex; the dataset store is
// shared read-only.
package session

import (
	"sync"
	"time"

	"github.com/sells-group/location-explorer/internal/dataset"
	"github.com/sells-group/location-explorer/internal/filter"
	"github.com/sells-group/location-explorer/internal/model"
	"github.com/sells-group/location-explorer/internal/selection"
	"github.com/sells-group/location-explorer/internal/townlist"
)

// Session is one user's dashboard state.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	ds        *dataset.Store
	filters   *filter.State
	selection selection.Controller
	list      *townlist.List
}

// New creates a session with filter ranges initialized to the dataset's
// observed bounds, no selection, and an empty town list.
func New(id string, ds *dataset.Store) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		ds:        ds,
		filters:   filter.NewState(ds),
		list:      townlist.New(),
	}
}

// ApplyFilterEvent reacts to one filter event.
func (s *Session) ApplyFilterEvent(ev filter.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters.Apply(ev)
}

// ApplySelectionEvent reacts to one selection event.
func (s *Session) ApplySelectionEvent(ev selection.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Apply(ev)
}

// FilterState returns a snapshot of the filter state.
func (s *Session) FilterState() *filter.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters.Clone()
}

// FilteredRecords applies the current filter state to the dataset.
func (s *Session) FilteredRecords() []model.TownRecord {
	return filter.Apply(s.ds.Records(), s.FilterState())
}

// SelectedKey returns the selected town key; false when none.
func (s *Session) SelectedKey() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Selected()
}

// AddSelected snapshots the currently selected town into the list.
// A no-op (returning false) when nothing is selected, the key is not in
// the dataset, or the key is already listed.
func (s *Session) AddSelected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, ok := s.selection.Selected()
	if !ok {
		return false
	}
	return s.addLocked(key)
}

// AddTown snapshots the given town key into the list, with the same
// no-op rules as AddSelected.
func (s *Session) AddTown(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(key)
}

func (s *Session) addLocked(key string) bool {
	r, ok := s.ds.Lookup(key)
	if !ok {
		return false
	}
	return s.list.Add(model.Snapshot(r))
}

// RemoveTown deletes one entry from the list by key.
func (s *Session) RemoveTown(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list.Remove(key)
}

// ClearList removes every entry from the list.
func (s *Session) ClearList() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list.Clear()
}

// ListEntries returns a copy of the town list in insertion order.
func (s *Session) ListEntries() []model.TownListEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list.Entries()
}
