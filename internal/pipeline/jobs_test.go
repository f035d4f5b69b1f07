package pipeline

import (
	"testing"
	"time"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestContentHashHex_DifferentInputs(t *testing.T) {
	h1 := ContentHashHex([]byte("aaa"))
	h2 := ContentHashHex([]byte("bbb"))
	if h1 == h2 {
		t.Error("expected different hashes for different inputs")
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := &Job{
		ID:        "test-1",
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusParsing, "parsing"},
		{StatusBuilding, "building"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		job.SetStatus(tr.status, tr.phase)
		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
	}
}

func TestJob_Snapshot(t *testing.T) {
	job := &Job{
		ID:     "test-2",
		DocID:  "doc-1",
		Status: StatusQueued,
		Title:  "Report",
	}
	job.SetFileData([]byte("raw bytes"))
	job.SetCounts(3, 4, 4, 5)
	job.AddError("minor hiccup")

	snap := job.Snapshot()
	if snap.ID != "test-2" || snap.DocID != "doc-1" {
		t.Errorf("identity lost in snapshot: %+v", snap)
	}
	if snap.Progress.Segments != 3 || snap.Progress.TreeNodes != 4 {
		t.Errorf("counts lost in snapshot: %+v", snap.Progress)
	}
	if len(snap.Progress.Errors) != 1 || snap.Progress.Errors[0] != "minor hiccup" {
		t.Errorf("errors lost in snapshot: %v", snap.Progress.Errors)
	}
}

func TestJob_SnapshotErrorsNeverNil(t *testing.T) {
	job := &Job{ID: "test-3"}
	if snap := job.Snapshot(); snap.Progress.Errors == nil {
		t.Error("expected empty slice, not nil, for serialization")
	}
}

func TestJob_LockedFieldSetters(t *testing.T) {
	job := &Job{ID: "j", DocID: "orig"}

	job.FillTitle("Extracted")
	job.FillTitle("Ignored")
	job.SetContentHash("abc123")
	job.SetDocID("doc-9")

	snap := job.Snapshot()
	if snap.Title != "Extracted" {
		t.Errorf("expected first fill to win, got %q", snap.Title)
	}
	if snap.ContentHash != "abc123" {
		t.Errorf("expected content hash set, got %q", snap.ContentHash)
	}
	if snap.DocID != "doc-9" {
		t.Errorf("expected doc id repointed, got %q", snap.DocID)
	}
}

func TestJobStore(t *testing.T) {
	s := NewJobStore(time.Hour)
	job := &Job{ID: "j1", UpdatedAt: time.Now()}
	s.Put(job)

	if got := s.Get("j1"); got != job {
		t.Errorf("expected stored job back, got %+v", got)
	}
	if s.Get("missing") != nil {
		t.Errorf("expected nil for unknown job id")
	}
}

func TestJobStore_Cleanup(t *testing.T) {
	s := NewJobStore(time.Minute)
	s.Put(&Job{ID: "old", UpdatedAt: time.Now().Add(-2 * time.Minute)})
	s.Put(&Job{ID: "new", UpdatedAt: time.Now()})

	s.Cleanup()

	if s.Get("old") != nil {
		t.Errorf("expected expired job removed")
	}
	if s.Get("new") == nil {
		t.Errorf("expected fresh job kept")
	}
}
