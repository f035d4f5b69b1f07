// Package store holds built indexes in memory with TTL eviction. Indexes
// are immutable once stored; concurrent readers need no coordination beyond
// the map lock.
package store

import (
	"sync"
	"time"

	"github.com/dgallion1/docindex/internal/graph"
	"github.com/dgallion1/docindex/internal/hierarchy"
)

// Entry is one indexed document: both index shapes plus identity metadata.
type Entry struct {
	DocID       string               `json:"doc_id"`
	Title       string               `json:"title"`
	ContentHash string               `json:"content_hash"`
	Tree        *hierarchy.TreeIndex `json:"tree,omitempty"`
	Graph       *graph.Index         `json:"graph,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`

	lastAccess time.Time
}

// StatsSnapshot reports cache effectiveness.
type StatsSnapshot struct {
	Size    int     `json:"size"`
	Hits    int     `json:"hits"`
	Misses  int     `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

// IndexStore is a thread-safe in-memory index registry with TTL eviction.
type IndexStore struct {
	mu     sync.Mutex
	items  map[string]*Entry
	ttl    time.Duration
	hits   int
	misses int
}

func New(ttl time.Duration) *IndexStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &IndexStore{
		items: make(map[string]*Entry),
		ttl:   ttl,
	}
}

func (s *IndexStore) Put(e *Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.lastAccess = time.Now()
	s.items[e.DocID] = e
}

// Get returns the entry for a document id, or nil. A hit refreshes the
// entry's TTL clock.
func (s *IndexStore) Get(docID string) *Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[docID]
	if !ok {
		s.misses++
		return nil
	}
	s.hits++
	e.lastAccess = time.Now()
	return e
}

// FindByHash returns the entry whose content hash matches, for duplicate
// detection on ingest.
func (s *IndexStore) FindByHash(hash string) *Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.items {
		if e.ContentHash == hash {
			return e
		}
	}
	return nil
}

func (s *IndexStore) Delete(docID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[docID]
	delete(s.items, docID)
	return ok
}

// List returns all entries, unordered.
func (s *IndexStore) List() []*Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Entry, 0, len(s.items))
	for _, e := range s.items {
		out = append(out, e)
	}
	return out
}

// Cleanup removes entries not accessed within the TTL.
func (s *IndexStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-s.ttl)
	for id, e := range s.items {
		if e.lastAccess.Before(cutoff) {
			delete(s.items, id)
		}
	}
}

func (s *IndexStore) Stats() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := StatsSnapshot{
		Size:   len(s.items),
		Hits:   s.hits,
		Misses: s.misses,
	}
	if total := s.hits + s.misses; total > 0 {
		snap.HitRate = float64(s.hits) / float64(total)
	}
	return snap
}
