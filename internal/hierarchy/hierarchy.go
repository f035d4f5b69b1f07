// Package hierarchy builds a nested section tree from a flat list of
// leveled segments.
package hierarchy

import (
	"time"
	"unicode/utf8"

	"github.com/dgallion1/docindex/internal/ident"
	"github.com/dgallion1/docindex/internal/segment"
)

// TreeNode is one section in the document tree. StartIdx/EndIdx are
// paragraph indices into the original stream; a node's range contains the
// ranges of all its children and sibling ranges never overlap.
type TreeNode struct {
	ID       string      `json:"node_id"`
	Title    string      `json:"title"`
	Summary  string      `json:"summary,omitempty"`
	Text     string      `json:"text,omitempty"`
	StartIdx int         `json:"start_index"`
	EndIdx   int         `json:"end_index"`
	Children []*TreeNode `json:"nodes,omitempty"`
}

// TreeIndex is a fully built, self-contained document tree. It is plain
// data: serializing and reloading it loses nothing.
type TreeIndex struct {
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Source      string      `json:"source,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
	Roots       []*TreeNode `json:"structure"`
}

// Config controls tree construction.
type Config struct {
	SummaryMaxLength int
	Segment          segment.Config
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{SummaryMaxLength: 200}
}

// Builder constructs TreeIndexes. The id generator is injected so tests can
// assert exact node ids.
type Builder struct {
	cfg Config
	ids ident.Generator
}

func NewBuilder(cfg Config, ids ident.Generator) *Builder {
	if cfg.SummaryMaxLength <= 0 {
		cfg.SummaryMaxLength = 200
	}
	if ids == nil {
		ids = ident.UUIDGenerator{}
	}
	return &Builder{cfg: cfg, ids: ids}
}

// Build segments text and assembles the section tree under a single
// synthetic document root. Empty or whitespace-only input yields an index
// with zero roots.
func (b *Builder) Build(text, title, description string) *TreeIndex {
	idx := &TreeIndex{
		Title:       title,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}

	segments := segment.Split(text, b.cfg.Segment)
	if len(segments) == 0 {
		return idx
	}

	children := b.partition(segments)

	root := &TreeNode{
		ID:       b.ids.NewID(),
		Title:    title,
		Summary:  b.summarize(text),
		StartIdx: segments[0].Start,
		EndIdx:   segments[len(segments)-1].End,
		Children: children,
	}
	idx.Roots = []*TreeNode{root}
	return idx
}

// partition recursively converts a run of segments into sibling nodes.
// The first segment becomes a node; the contiguous run of strictly deeper
// segments after it becomes that node's children.
func (b *Builder) partition(segs []segment.Segment) []*TreeNode {
	var nodes []*TreeNode

	i := 0
	for i < len(segs) {
		head := segs[i]

		j := i + 1
		for j < len(segs) && segs[j].Level > head.Level {
			j++
		}

		node := &TreeNode{
			ID:       b.ids.NewID(),
			Title:    head.Title,
			Summary:  b.summarize(head.Text),
			Text:     head.Text,
			StartIdx: head.Start,
			EndIdx:   head.End,
		}
		if j > i+1 {
			node.Children = b.partition(segs[i+1 : j])
			node.EndIdx = node.Children[len(node.Children)-1].EndIdx
		}
		nodes = append(nodes, node)
		i = j
	}

	return nodes
}

func (b *Builder) summarize(text string) string {
	if text == "" {
		return ""
	}
	if len(text) <= b.cfg.SummaryMaxLength {
		return text
	}
	// Back up to a rune boundary so the cut never splits a multi-byte rune.
	cut := b.cfg.SummaryMaxLength
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}

// CountNodes returns the total node count of the tree.
func (t *TreeIndex) CountNodes() int {
	return len(t.Flatten())
}

// Flatten returns every node in depth-first order.
func (t *TreeIndex) Flatten() []*TreeNode {
	var out []*TreeNode
	var walk func(n *TreeNode)
	walk = func(n *TreeNode) {
		out = append(out, n)
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, r := range t.Roots {
		walk(r)
	}
	return out
}

// MaxDepth returns the depth of the deepest node; 0 for an empty tree.
func (t *TreeIndex) MaxDepth() int {
	var depth func(n *TreeNode) int
	depth = func(n *TreeNode) int {
		best := 1
		for _, c := range n.Children {
			if d := depth(c) + 1; d > best {
				best = d
			}
		}
		return best
	}
	best := 0
	for _, r := range t.Roots {
		if d := depth(r); d > best {
			best = d
		}
	}
	return best
}

// Lookup builds a node-id index over the tree.
func (t *TreeIndex) Lookup() map[string]*TreeNode {
	m := make(map[string]*TreeNode)
	for _, n := range t.Flatten() {
		m[n.ID] = n
	}
	return m
}
