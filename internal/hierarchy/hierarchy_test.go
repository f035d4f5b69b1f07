package hierarchy

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/dgallion1/docindex/internal/ident"
)

const guideText = "# Intro\nHello\n\n# Setup\nRun install"

func testBuilder() *Builder {
	return NewBuilder(DefaultConfig(), ident.NewSequential("node"))
}

func TestBuild_SingleRootWithSections(t *testing.T) {
	tree := testBuilder().Build(guideText, "Guide", "")

	if len(tree.Roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(tree.Roots))
	}
	root := tree.Roots[0]
	if root.Title != "Guide" {
		t.Errorf("expected root title %q, got %q", "Guide", root.Title)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(root.Children))
	}
	if root.Children[0].Title != "Intro" || root.Children[1].Title != "Setup" {
		t.Errorf("unexpected child titles %q, %q", root.Children[0].Title, root.Children[1].Title)
	}
	if root.Children[1].Text != "Run install" {
		t.Errorf("expected child text %q, got %q", "Run install", root.Children[1].Text)
	}
}

func TestBuild_NestedLevels(t *testing.T) {
	input := "# Top\nIntro text.\n\n## Inner\nInner text.\n\n### Deepest\nDeep text.\n\n# Next\nNext text."
	tree := testBuilder().Build(input, "Doc", "")

	root := tree.Roots[0]
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 top-level sections, got %d", len(root.Children))
	}
	top := root.Children[0]
	if len(top.Children) != 1 || top.Children[0].Title != "Inner" {
		t.Fatalf("expected Inner nested under Top, got %+v", top.Children)
	}
	inner := top.Children[0]
	if len(inner.Children) != 1 || inner.Children[0].Title != "Deepest" {
		t.Fatalf("expected Deepest nested under Inner, got %+v", inner.Children)
	}
	if tree.MaxDepth() != 4 {
		t.Errorf("expected depth 4, got %d", tree.MaxDepth())
	}
}

func TestBuild_RangeInvariants(t *testing.T) {
	input := "# A\nBody a.\n\n## A1\nBody a1.\n\n## A2\nBody a2.\n\n# B\nBody b."
	tree := testBuilder().Build(input, "Doc", "")

	var check func(n *TreeNode)
	check = func(n *TreeNode) {
		for i, c := range n.Children {
			if c.StartIdx < n.StartIdx || c.EndIdx > n.EndIdx {
				t.Errorf("child %s range [%d,%d] escapes parent [%d,%d]",
					c.Title, c.StartIdx, c.EndIdx, n.StartIdx, n.EndIdx)
			}
			if i > 0 {
				prev := n.Children[i-1]
				if c.StartIdx <= prev.EndIdx {
					t.Errorf("siblings %s and %s overlap: [%d,%d] vs [%d,%d]",
						prev.Title, c.Title, prev.StartIdx, prev.EndIdx, c.StartIdx, c.EndIdx)
				}
			}
			check(c)
		}
	}
	for _, r := range tree.Roots {
		check(r)
	}
}

func TestBuild_ParentRangeExtendsToLastChild(t *testing.T) {
	input := "# A\n\nBody a.\n\n## A1\n\nBody a1."
	tree := testBuilder().Build(input, "Doc", "")

	a := tree.Roots[0].Children[0]
	a1 := a.Children[0]
	if a.EndIdx != a1.EndIdx {
		t.Errorf("expected parent end %d to match last child end %d", a.EndIdx, a1.EndIdx)
	}
}

func TestBuild_EmptyInput(t *testing.T) {
	tree := testBuilder().Build("", "Empty", "")
	if len(tree.Roots) != 0 {
		t.Fatalf("expected 0 roots, got %d", len(tree.Roots))
	}
	if tree.CountNodes() != 0 {
		t.Errorf("expected 0 nodes, got %d", tree.CountNodes())
	}
	if tree.MaxDepth() != 0 {
		t.Errorf("expected depth 0, got %d", tree.MaxDepth())
	}
}

func TestBuild_DeterministicIDs(t *testing.T) {
	tree := testBuilder().Build(guideText, "Guide", "")

	// Children are assigned ids before the root node.
	root := tree.Roots[0]
	if root.Children[0].ID != "node-0001" || root.Children[1].ID != "node-0002" {
		t.Errorf("unexpected child ids %q, %q", root.Children[0].ID, root.Children[1].ID)
	}
	if root.ID != "node-0003" {
		t.Errorf("unexpected root id %q", root.ID)
	}
}

func TestSummaryTruncation(t *testing.T) {
	long := strings.Repeat("x", 500)
	tree := testBuilder().Build("# Section\n"+long, "Doc", "")

	section := tree.Roots[0].Children[0]
	if len(section.Summary) != 203 {
		t.Fatalf("expected 200 chars plus ellipsis, got %d", len(section.Summary))
	}
	if !strings.HasSuffix(section.Summary, "...") {
		t.Errorf("expected ellipsis suffix, got %q", section.Summary[len(section.Summary)-10:])
	}
	if section.Text != long {
		t.Errorf("full text must be preserved alongside the summary")
	}
}

func TestSummaryTruncation_MultiByteRunes(t *testing.T) {
	// A two-byte rune straddles the truncation point.
	body := strings.Repeat("x", 199) + "établi " + strings.Repeat("y", 50)
	tree := testBuilder().Build("# Section\n"+body, "Doc", "")

	section := tree.Roots[0].Children[0]
	if !utf8.ValidString(section.Summary) {
		t.Fatalf("summary is not valid UTF-8: %q", section.Summary)
	}
	if !strings.HasSuffix(section.Summary, "...") {
		t.Errorf("expected ellipsis suffix, got %q", section.Summary)
	}

	data, err := json.Marshal(tree)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var restored TreeIndex
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for i, n := range restored.Flatten() {
		if want := tree.Flatten()[i].Summary; n.Summary != want {
			t.Errorf("summary changed in round trip: %q vs %q", n.Summary, want)
		}
	}
}

func TestCountNodesMatchesFlatten(t *testing.T) {
	tree := testBuilder().Build("# A\nText.\n\n## B\nText.\n\n# C\nText.", "Doc", "")
	if got, want := tree.CountNodes(), len(tree.Flatten()); got != want {
		t.Errorf("CountNodes %d != len(Flatten) %d", got, want)
	}
	if tree.CountNodes() != 4 {
		t.Errorf("expected 4 nodes (root + 3 sections), got %d", tree.CountNodes())
	}
}

func TestLookupFindsEveryNode(t *testing.T) {
	tree := testBuilder().Build(guideText, "Guide", "")
	byID := tree.Lookup()
	for _, n := range tree.Flatten() {
		if byID[n.ID] != n {
			t.Errorf("lookup missing node %s", n.ID)
		}
	}
}

func TestTreeIndexJSONRoundTrip(t *testing.T) {
	tree := testBuilder().Build(guideText, "Guide", "a short guide")

	data, err := json.Marshal(tree)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var restored TreeIndex
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if restored.CountNodes() != tree.CountNodes() {
		t.Errorf("node count changed: %d vs %d", restored.CountNodes(), tree.CountNodes())
	}
	if restored.Roots[0].Children[1].Text != "Run install" {
		t.Errorf("child text lost in round trip")
	}
	if restored.Title != "Guide" || restored.Description != "a short guide" {
		t.Errorf("metadata lost in round trip")
	}
}
