package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"cafedir/model"
)

// ErrNotFound is returned when no café matches the requested id.
var ErrNotFound = errors.New("cafe not found")

// Store persists the café collection and the commenter credential list as
// two flat JSON files. Every mutation is a read-modify-write of the whole
// cafés file, serialized by a single in-process mutex. There is no
// cross-process locking; concurrent processes can still lose writes.
type Store struct {
	mu        sync.Mutex
	cafesPath string
	usersPath string
}

func New(cafesPath, usersPath string) *Store {
	return &Store{cafesPath: cafesPath, usersPath: usersPath}
}

// LoadCafes reads and parses the café file. A missing file is an error, the
// same as the original data files' contract; callers surface it as a 500.
func (s *Store) LoadCafes() ([]model.Cafe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadCafesLocked()
}

func (s *Store) loadCafesLocked() ([]model.Cafe, error) {
	data, err := os.ReadFile(s.cafesPath)
	if err != nil {
		return nil, fmt.Errorf("loading cafe data: %w", err)
	}
	var cafes []model.Cafe
	if err := json.Unmarshal(data, &cafes); err != nil {
		return nil, fmt.Errorf("parsing cafe data: %w", err)
	}
	return cafes, nil
}

// SaveCafes overwrites the café file with the full collection,
// pretty-printed so the file stays hand-editable.
func (s *Store) SaveCafes(cafes []model.Cafe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveCafesLocked(cafes)
}

func (s *Store) saveCafesLocked(cafes []model.Cafe) error {
	data, err := json.MarshalIndent(cafes, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cafe data: %w", err)
	}
	if err := os.WriteFile(s.cafesPath, data, 0644); err != nil {
		return fmt.Errorf("saving cafe data: %w", err)
	}
	return nil
}

// Update runs fn on the current collection and persists the result while
// holding the store mutex, so overlapping admin mutations cannot interleave
// their read-modify-write cycles. fn returning an error aborts without
// writing.
func (s *Store) Update(fn func(cafes []model.Cafe) ([]model.Cafe, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cafes, err := s.loadCafesLocked()
	if err != nil {
		return err
	}
	updated, err := fn(cafes)
	if err != nil {
		return err
	}
	return s.saveCafesLocked(updated)
}

// LoadUsers reads the commenter credential list.
func (s *Store) LoadUsers() ([]model.User, error) {
	data, err := os.ReadFile(s.usersPath)
	if err != nil {
		return nil, fmt.Errorf("loading user data: %w", err)
	}
	var users []model.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parsing user data: %w", err)
	}
	return users, nil
}

// FindCafe returns a pointer into cafes for the matching id, or ErrNotFound.
func FindCafe(cafes []model.Cafe, id int64) (*model.Cafe, error) {
	for i := range cafes {
		if cafes[i].ID == id {
			return &cafes[i], nil
		}
	}
	return nil, ErrNotFound
}
