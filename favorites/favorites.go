// Package favorites keeps the user's favorite café ids as a small local
// set persisted to disk, the way the browser client kept them in local
// storage. There is no server representation and no expiry.
package favorites

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// Store is an explicit, injectable favorites set. Open loads the persisted
// state; Toggle is the single mutation entry point and writes the file back
// on every change.
type Store struct {
	mu          sync.Mutex
	path        string
	ids         []int64
	subscribers []func([]int64)
}

// Open loads the favorites file at path. A missing or corrupt file starts
// an empty set, matching the original client's behavior on bad storage.
func Open(path string) *Store {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return s
	}
	s.ids = ids
	return s
}

// Toggle adds id if absent, removes it otherwise, then persists and
// notifies subscribers with the new snapshot.
func (s *Store) Toggle(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
	} else {
		s.ids = append(s.ids, id)
	}

	if err := s.saveLocked(); err != nil {
		return err
	}
	snapshot := s.snapshotLocked()
	for _, fn := range s.subscribers {
		fn(snapshot)
	}
	return nil
}

// Contains reports whether id is currently a favorite.
func (s *Store) Contains(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Contains(s.ids, id)
}

// IDs returns a snapshot of the current set in insertion order.
func (s *Store) IDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to run after every change. Callbacks run with the
// store lock held; keep them short.
func (s *Store) Subscribe(fn func(ids []int64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) snapshotLocked() []int64 {
	return slices.Clone(s.ids)
}

func (s *Store) saveLocked() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("saving favorites: %w", err)
		}
	}
	ids := s.ids
	if ids == nil {
		ids = []int64{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encoding favorites: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("saving favorites: %w", err)
	}
	return nil
}
