package store

import (
	"testing"
	"time"
)

func TestPutGet(t *testing.T) {
	s := New(time.Hour)
	s.Put(&Entry{DocID: "d1", Title: "First", ContentHash: "abc"})

	e := s.Get("d1")
	if e == nil || e.Title != "First" {
		t.Fatalf("expected stored entry, got %+v", e)
	}
	if s.Get("missing") != nil {
		t.Errorf("expected nil for unknown doc id")
	}
}

func TestFindByHash(t *testing.T) {
	s := New(time.Hour)
	s.Put(&Entry{DocID: "d1", ContentHash: "abc"})
	s.Put(&Entry{DocID: "d2", ContentHash: "def"})

	if e := s.FindByHash("def"); e == nil || e.DocID != "d2" {
		t.Errorf("expected d2, got %+v", e)
	}
	if s.FindByHash("nope") != nil {
		t.Errorf("expected nil for unknown hash")
	}
}

func TestDelete(t *testing.T) {
	s := New(time.Hour)
	s.Put(&Entry{DocID: "d1"})

	if !s.Delete("d1") {
		t.Errorf("expected delete to report existing entry")
	}
	if s.Delete("d1") {
		t.Errorf("expected second delete to report missing entry")
	}
	if s.Get("d1") != nil {
		t.Errorf("expected entry gone after delete")
	}
}

func TestList(t *testing.T) {
	s := New(time.Hour)
	s.Put(&Entry{DocID: "d1"})
	s.Put(&Entry{DocID: "d2"})

	if got := len(s.List()); got != 2 {
		t.Errorf("expected 2 entries, got %d", got)
	}
}

func TestCleanup_EvictsStaleEntries(t *testing.T) {
	s := New(time.Nanosecond)
	s.Put(&Entry{DocID: "stale"})

	time.Sleep(time.Millisecond)
	s.Cleanup()

	if s.Get("stale") != nil {
		t.Errorf("expected stale entry evicted")
	}
}

func TestCleanup_KeepsFreshEntries(t *testing.T) {
	s := New(time.Hour)
	s.Put(&Entry{DocID: "fresh"})
	s.Cleanup()

	if s.Get("fresh") == nil {
		t.Errorf("expected fresh entry kept")
	}
}

func TestStats(t *testing.T) {
	s := New(time.Hour)
	s.Put(&Entry{DocID: "d1"})

	s.Get("d1")
	s.Get("d1")
	s.Get("missing")

	snap := s.Stats()
	if snap.Size != 1 {
		t.Errorf("expected size 1, got %d", snap.Size)
	}
	if snap.Hits != 2 || snap.Misses != 1 {
		t.Errorf("expected 2 hits 1 miss, got %d/%d", snap.Hits, snap.Misses)
	}
	if snap.HitRate < 0.66 || snap.HitRate > 0.67 {
		t.Errorf("expected hit rate ~0.67, got %v", snap.HitRate)
	}
}
