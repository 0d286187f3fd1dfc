// Package favorites tracks which restaurants the user has starred.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/poku-e/culinart/internal/restaurant"
	"github.com/poku-e/culinart/internal/storage"
)

// Key is the storage slot holding the JSON array of favorite ids.
const Key = "favorite-restaurants"

type Store struct {
	mu    sync.RWMutex
	port  storage.Port
	ids   []string
	index map[string]struct{}
}

func New(port storage.Port) *Store {
	return &Store{port: port, index: map[string]struct{}{}}
}

// Load replaces the in-memory set with the persisted one. Missing or
// unreadable data yields an empty set; only storage failures are returned.
func (s *Store) Load(ctx context.Context) error {
	raw, err := s.port.Load(ctx, Key)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("load favorites: %w", err)
	}

	var ids []string
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &ids); err != nil {
			log.WithError(err).WithField("key", Key).Debug("[favorites] Ignoring malformed data")
			ids = nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = s.ids[:0]
	s.index = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := s.index[id]; dup || id == "" {
			continue
		}
		s.index[id] = struct{}{}
		s.ids = append(s.ids, id)
	}
	return nil
}

func (s *Store) IsFavorite(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[id]
	return ok
}

// Toggle adds r when absent and removes it when present, then writes the
// whole set back. It reports whether r is a favorite afterwards.
func (s *Store) Toggle(ctx context.Context, r restaurant.Restaurant) (bool, error) {
	return s.ToggleID(ctx, r.ID)
}

func (s *Store) ToggleID(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, errors.New("favorite id empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]string, 0, len(s.ids)+1)
	_, present := s.index[id]
	for _, existing := range s.ids {
		if existing != id {
			next = append(next, existing)
		}
	}
	if !present {
		next = append(next, id)
	}

	data, err := json.Marshal(next)
	if err != nil {
		return present, err
	}
	if err := s.port.Save(ctx, Key, data); err != nil {
		return present, fmt.Errorf("save favorites: %w", err)
	}

	s.ids = next
	if present {
		delete(s.index, id)
	} else {
		s.index[id] = struct{}{}
	}
	return !present, nil
}

// IDs returns the favorite ids in the order they were added.
func (s *Store) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}
