package storage

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestSQLiteSetGet(t *testing.T) {
	dir := t.TempDir()
	s, err := NewSQLite(filepath.Join(dir, "test_state.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	defer s.Close()

	if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing key, got %v", err)
	}

	if err := s.Set("weather_cities", `[{"name":"Москва"}]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := s.Get("weather_cities")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != `[{"name":"Москва"}]` {
		t.Fatalf("unexpected value: %q", got)
	}

	// Last write wins.
	if err := s.Set("weather_cities", `[]`); err != nil {
		t.Fatalf("second Set failed: %v", err)
	}
	got, err = s.Get("weather_cities")
	if err != nil {
		t.Fatalf("Get after overwrite failed: %v", err)
	}
	if got != `[]` {
		t.Fatalf("expected overwritten value, got %q", got)
	}
}

func TestSQLiteDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewSQLite(filepath.Join(dir, "test_state.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	defer s.Close()

	if err := s.Set("k", "v"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get("k"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting an absent key is a no-op.
	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete of absent key failed: %v", err)
	}
}
