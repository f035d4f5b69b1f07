package retrieve

import (
	"testing"

	"github.com/dgallion1/docindex/internal/graph"
	"github.com/dgallion1/docindex/internal/hierarchy"
	"github.com/dgallion1/docindex/internal/ident"
)

const guideText = "# Intro\nHello\n\n# Setup\nRun install"

func TestFromTree(t *testing.T) {
	b := hierarchy.NewBuilder(hierarchy.DefaultConfig(), ident.NewSequential("node"))
	tree := b.Build(guideText, "Guide", "")

	records := FromTree(tree, []string{"node-0002", "node-0001"})
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	// Order of input ids is preserved.
	if records[0].Title != "Setup" || records[1].Title != "Intro" {
		t.Errorf("order not preserved: %q, %q", records[0].Title, records[1].Title)
	}
	if records[0].Text != "Run install" {
		t.Errorf("expected text %q, got %q", "Run install", records[0].Text)
	}
}

func TestFromTree_RootFallsBackToSummary(t *testing.T) {
	b := hierarchy.NewBuilder(hierarchy.DefaultConfig(), ident.NewSequential("node"))
	tree := b.Build(guideText, "Guide", "")

	root := tree.Roots[0]
	records := FromTree(tree, []string{root.ID})
	if records[0].Text == "" {
		t.Errorf("expected summary fallback for root node")
	}
}

func TestFromTree_PanicsOnUnknownID(t *testing.T) {
	b := hierarchy.NewBuilder(hierarchy.DefaultConfig(), ident.NewSequential("node"))
	tree := b.Build(guideText, "Guide", "")

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown node id")
		}
	}()
	FromTree(tree, []string{"ghost"})
}

func TestFromGraph(t *testing.T) {
	ix := graph.NewIndexer(graph.DefaultConfig(), ident.NewSequential("n"))
	g := ix.Build(guideText, "Guide", "")

	records := FromGraph(g, []string{"n-0003"})
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Title != "Setup" || records[0].Text != "Run install" {
		t.Errorf("unexpected record %+v", records[0])
	}
}

func TestFromGraph_PanicsOnUnknownID(t *testing.T) {
	ix := graph.NewIndexer(graph.DefaultConfig(), ident.NewSequential("n"))
	g := ix.Build(guideText, "Guide", "")

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown node id")
		}
	}()
	FromGraph(g, []string{"ghost"})
}

func TestFormatContext(t *testing.T) {
	records := []Record{
		{NodeID: "a", Title: "Intro", Text: "Hello"},
		{NodeID: "b", Title: "Setup", Text: "Run install"},
	}
	got := FormatContext(records)
	want := "### Intro\nHello\n\n### Setup\nRun install"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	if FormatContext(nil) != "" {
		t.Errorf("expected empty context for no records")
	}
}
