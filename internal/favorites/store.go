package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"movie-discovery-explorer/internal/repository"
)

// DefaultKey is the persisted key holding the favorites list.
const DefaultKey = "favorites"

// ErrPersistedStateCorrupt marks a stored value that is not a JSON integer
// array. The store recovers from it by treating the set as empty.
var ErrPersistedStateCorrupt = errors.New("persisted favorites state corrupt")

// Store is the set of favorite movie ids, persisted as a JSON array under a
// single key. Reads never fail: a missing, corrupt or unreadable value is an
// empty set. Writes report backend failures.
type Store struct {
	kv  repository.KeyValueStore
	key string
	log *zap.Logger

	// serializes read-modify-write within the process
	mu sync.Mutex
}

// NewStore creates a Store over kv.
func NewStore(kv repository.KeyValueStore, key string, log *zap.Logger) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{kv: kv, key: key, log: log}
}

// List returns favorite ids in the order they were added.
func (s *Store) List(ctx context.Context) []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.load(ctx)
	if err != nil {
		s.log.Warn("failed to read favorites, treating as empty", zap.Error(err))
		return []int{}
	}
	return ids
}

// Contains reports whether id is a favorite.
func (s *Store) Contains(ctx context.Context, id int) bool {
	for _, fav := range s.List(ctx) {
		if fav == id {
			return true
		}
	}
	return false
}

// Add marks id as a favorite. Adding an existing favorite is a no-op.
func (s *Store) Add(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.load(ctx)
	if err != nil {
		return err
	}
	if indexOf(ids, id) >= 0 {
		return nil
	}
	return s.save(ctx, append(ids, id))
}

// Remove unmarks id. Removing a non-member is a no-op.
func (s *Store) Remove(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(ids, id)
	if i < 0 {
		return nil
	}
	return s.save(ctx, append(ids[:i], ids[i+1:]...))
}

// Toggle flips membership of id and returns the new membership.
func (s *Store) Toggle(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	if i := indexOf(ids, id); i >= 0 {
		return false, s.save(ctx, append(ids[:i], ids[i+1:]...))
	}
	return true, s.save(ctx, append(ids, id))
}

// load returns backend errors only. Missing and corrupt values decode to an
// empty list.
func (s *Store) load(ctx context.Context) ([]int, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, repository.ErrKeyNotFound) {
		return []int{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}

	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.log.Warn("discarding unreadable favorites",
			zap.String("key", s.key),
			zap.Error(fmt.Errorf("%w: %v", ErrPersistedStateCorrupt, err)),
		)
		return []int{}, nil
	}
	return dedupe(ids), nil
}

func (s *Store) save(ctx context.Context, ids []int) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	return nil
}

func indexOf(ids []int, id int) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func dedupe(ids []int) []int {
	out := make([]int, 0, len(ids))
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
