package favorites

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestToggleAddsAndRemoves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.json")
	s := Open(path)

	if err := s.Toggle(42); err != nil {
		t.Fatal(err)
	}
	if !s.Contains(42) {
		t.Fatal("expected 42 to be a favorite after first toggle")
	}

	if err := s.Toggle(42); err != nil {
		t.Fatal(err)
	}
	if s.Contains(42) {
		t.Fatal("expected 42 to be removed after second toggle")
	}
	if len(s.IDs()) != 0 {
		t.Fatalf("double toggle must restore the original set: %v", s.IDs())
	}

	// the file reflects the final state only
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var stored []int64
	if err := json.Unmarshal(data, &stored); err != nil {
		t.Fatal(err)
	}
	if len(stored) != 0 {
		t.Fatalf("persisted set should be empty: %v", stored)
	}
}

func TestSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.json")

	s := Open(path)
	for _, id := range []int64{1, 2, 3} {
		if err := s.Toggle(id); err != nil {
			t.Fatal(err)
		}
	}

	reopened := Open(path)
	if !slices.Equal(reopened.IDs(), []int64{1, 2, 3}) {
		t.Fatalf("favorites lost across reopen: %v", reopened.IDs())
	}
}

func TestOpenMissingOrCorruptFile(t *testing.T) {
	dir := t.TempDir()

	if ids := Open(filepath.Join(dir, "nope.json")).IDs(); len(ids) != 0 {
		t.Fatalf("missing file should start empty: %v", ids)
	}

	corrupt := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(corrupt, []byte("{oops"), 0644); err != nil {
		t.Fatal(err)
	}
	if ids := Open(corrupt).IDs(); len(ids) != 0 {
		t.Fatalf("corrupt file should start empty: %v", ids)
	}
}

func TestSubscribe(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "favorites.json"))

	var seen [][]int64
	s.Subscribe(func(ids []int64) {
		seen = append(seen, ids)
	})

	if err := s.Toggle(7); err != nil {
		t.Fatal(err)
	}
	if err := s.Toggle(8); err != nil {
		t.Fatal(err)
	}

	if len(seen) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(seen))
	}
	if !slices.Equal(seen[1], []int64{7, 8}) {
		t.Fatalf("unexpected final snapshot: %v", seen[1])
	}
}
