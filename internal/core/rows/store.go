// Package rows holds the local, ordered copy of the records shown in the
// grid. It is the single source of truth the presentation layer renders from.
package rows

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/colonyops/docgrid/internal/core/record"
)

var (
	// ErrNotFound is returned when a row identifier is not in the store.
	ErrNotFound = errors.New("row not found")
	// ErrDuplicateID is returned when an identifier is already held by
	// another row.
	ErrDuplicateID = errors.New("duplicate row id")
)

// Entry is a record plus its transient row metadata.
type Entry struct {
	record.Record
	// IsNew is true from placeholder creation until the first successful
	// persist.
	IsNew bool `json:"isNew,omitempty"`
}

// Store is an ordered in-memory row collection. Insertion order is preserved;
// removals delete in place. It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// List returns a snapshot of all rows in order.
func (s *Store) List() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}

// Len returns the number of rows.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Get returns the row with the given id.
func (s *Store) Get(id string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return Entry{}, fmt.Errorf("get %q: %w", id, ErrNotFound)
	}
	return s.entries[i], nil
}

// Has reports whether a row with the given id exists.
func (s *Store) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id) >= 0
}

// ReplaceAll discards every row and replaces them with recs, in order.
// If recs repeats an id, only the first occurrence is kept.
func (s *Store) ReplaceAll(recs []record.Record) {
	entries := make([]Entry, 0, len(recs))
	seen := make(map[string]struct{}, len(recs))
	for _, r := range recs {
		if _, dup := seen[r.ID]; dup {
			log.Warn().Str("row_id", r.ID).Msg("rows: dropping duplicate id from fetched collection")
			continue
		}
		seen[r.ID] = struct{}{}
		entries = append(entries, Entry{Record: r})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = entries
}

// InsertPlaceholder appends a new, not yet persisted row.
func (s *Store) InsertPlaceholder(tempID string, blank record.Values) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(tempID) >= 0 {
		return Entry{}, fmt.Errorf("insert placeholder %q: %w", tempID, ErrDuplicateID)
	}

	e := Entry{Record: record.FromValues(tempID, blank), IsNew: true}
	s.entries = append(s.entries, e)
	return e, nil
}

// Promote replaces the placeholder tempID with the server's record, keeping
// its position.
func (s *Store) Promote(tempID string, server record.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(tempID)
	if i < 0 {
		return fmt.Errorf("promote %q: %w", tempID, ErrNotFound)
	}
	if server.ID != tempID {
		if j := s.indexOf(server.ID); j >= 0 {
			return fmt.Errorf("promote %q to %q: %w", tempID, server.ID, ErrDuplicateID)
		}
	}

	s.entries[i] = Entry{Record: server}
	return nil
}

// Patch merges fields into the row's record. The id and IsNew flag are left
// unchanged.
func (s *Store) Patch(id string, fields record.Values) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("patch %q: %w", id, ErrNotFound)
	}
	s.entries[i].Record = s.entries[i].Apply(fields)
	return nil
}

// Remove deletes the row.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("remove %q: %w", id, ErrNotFound)
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	return nil
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.entries, func(e Entry) bool { return e.ID == id })
}
