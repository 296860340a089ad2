package partition

import (
	"context"
	"strings"
	"sync"
)

// MemStore is an in-memory Store implementation used for local development
// and tests. Lookups are case-insensitive like the database-backed store,
// but the name used at creation time is preserved.
type MemStore struct {
	mu         sync.Mutex
	partitions map[string][]map[string]interface{}
}

// NewMemStore creates an empty in-memory partition store
func NewMemStore() *MemStore {
	return &MemStore{
		partitions: make(map[string][]map[string]interface{}),
	}
}

func (s *MemStore) Exists(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup(name) != "", nil
}

func (s *MemStore) Create(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lookup(name) != "" {
		return nil
	}
	s.partitions[name] = nil
	return nil
}

func (s *MemStore) CopyAll(ctx context.Context, src, dst string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	srcKey := s.lookup(src)
	if srcKey == "" {
		return nil
	}
	dstKey := s.lookup(dst)
	if dstKey == "" {
		dstKey = dst
	}
	s.partitions[dstKey] = append(s.partitions[dstKey], s.partitions[srcKey]...)
	return nil
}

func (s *MemStore) Drop(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := s.lookup(name)
	if key == "" {
		return nil
	}
	delete(s.partitions, key)
	return nil
}

func (s *MemStore) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.partitions))
	for name := range s.partitions {
		names = append(names, name)
	}
	return names, nil
}

// Insert appends a record to a partition, creating it if needed.
// Used to seed data in tests and local development.
func (s *MemStore) Insert(name string, record map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := s.lookup(name)
	if key == "" {
		key = name
	}
	s.partitions[key] = append(s.partitions[key], record)
}

// Records returns the records currently held by a partition
func (s *MemStore) Records(name string) []map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := s.lookup(name)
	if key == "" {
		return nil
	}
	out := make([]map[string]interface{}, len(s.partitions[key]))
	copy(out, s.partitions[key])
	return out
}

// lookup returns the stored key matching name case-insensitively, or ""
func (s *MemStore) lookup(name string) string {
	for key := range s.partitions {
		if strings.EqualFold(key, name) {
			return key
		}
	}
	return ""
}
