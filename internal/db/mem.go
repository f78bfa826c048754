package db

import (
	"context"
	"sort"
	"sync"
)

type memStore struct {
	mu     sync.RWMutex
	bySlug map[string]Record
}

func newMemStore() *memStore {
	return &memStore{bySlug: make(map[string]Record)}
}

func (m *memStore) Get(ctx context.Context, slug string) (Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.bySlug[slug]
	if !ok {
		return Record{}, ErrNotFound
	}
	return r, nil
}

func (m *memStore) Put(ctx context.Context, r Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bySlug[r.Slug] = r
	return nil
}

func (m *memStore) Delete(ctx context.Context, slug string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bySlug[slug]; !ok {
		return ErrNotFound
	}
	delete(m.bySlug, slug)
	return nil
}

func (m *memStore) List(ctx context.Context) ([]Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Record, 0, len(m.bySlug))
	for _, r := range m.bySlug {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}
