package locations

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"weather-widget/internal/storage"
)

// StateKey is the single key in the state store holding the serialized list.
const StateKey = "weather_cities"

// Location represents a tracked place. Name is the unique key within
// the tracked set.
type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Store owns the in-memory tracked-location list and its persisted
// mirror. Every mutation rewrites the whole persisted representation,
// preserving insertion order. All methods are safe for concurrent use,
// but mutations are expected to arrive one at a time from the widget's
// event loop.
type Store struct {
	mu    sync.Mutex
	list  []Location
	state storage.Store
}

// NewStore creates a Store backed by the given state store.
func NewStore(state storage.Store) *Store {
	return &Store{state: state}
}

// Restore loads the persisted list into memory. The returned flag
// reports whether the key existed at all: a persisted empty list is
// found, an absent key is not. Only the absent case means first run.
func (s *Store) Restore() ([]Location, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.state.Get(StateKey)
	if errors.Is(err, storage.ErrNotFound) {
		s.list = nil
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("restore locations: %w", err)
	}

	var list []Location
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, false, fmt.Errorf("restore locations: %w", err)
	}
	s.list = list
	return s.snapshot(), true, nil
}

// Add appends loc to the tracked set iff no entry has the same name.
// Duplicate names are a silent no-op. Returns whether an insertion
// happened.
func (s *Store) Add(loc Location) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range s.list {
		if l.Name == loc.Name {
			return false, nil
		}
	}

	s.list = append(s.list, loc)
	if err := s.persist(); err != nil {
		return false, err
	}
	return true, nil
}

// Remove drops every entry with the given name (at most one is
// expected) and persists the resulting list unconditionally.
func (s *Store) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.list[:0]
	for _, l := range s.list {
		if l.Name != name {
			kept = append(kept, l)
		}
	}
	s.list = kept
	return s.persist()
}

// ReplaceAll swaps the whole tracked set. Used by the geolocation
// fallback, which produces a one-element set.
func (s *Store) ReplaceAll(locs []Location) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.list = append([]Location(nil), locs...)
	return s.persist()
}

// Clear empties the tracked set and removes the persisted key, putting
// the store back into its first-run state: the next Restore reports the
// key as absent, so startup geolocates again.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.list = nil
	if err := s.state.Delete(StateKey); err != nil {
		return fmt.Errorf("clear locations: %w", err)
	}
	return nil
}

// List returns a copy of the tracked set in insertion order.
func (s *Store) List() []Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Store) snapshot() []Location {
	out := make([]Location, len(s.list))
	copy(out, s.list)
	return out
}

// persist rewrites the full serialized list. Memory is committed
// before storage, so a storage failure never loses the in-memory state.
func (s *Store) persist() error {
	b, err := json.Marshal(s.list)
	if err != nil {
		return fmt.Errorf("persist locations: %w", err)
	}
	if err := s.state.Set(StateKey, string(b)); err != nil {
		return fmt.Errorf("persist locations: %w", err)
	}
	return nil
}
