package graph

import (
	"time"
	"unicode/utf8"

	"github.com/dgallion1/docindex/internal/ident"
	"github.com/dgallion1/docindex/internal/segment"
)

// Config controls graph construction and search defaults.
type Config struct {
	MaxDepth                float64 // search default: cumulative distance bound
	MaxResults              int     // search default: result cap
	MinEdgeWeight           float64 // minimum similarity for a semantic edge
	EnableCrossReferences   bool    // build semantic edges
	PrecomputeRelationships bool    // compute degree centrality
	Segment                 segment.Config
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxDepth:                3,
		MaxResults:              10,
		MinEdgeWeight:           0.1,
		EnableCrossReferences:   true,
		PrecomputeRelationships: true,
	}
}

// Indexer builds graph Indexes.
type Indexer struct {
	cfg Config
	ids ident.Generator
}

func NewIndexer(cfg Config, ids ident.Generator) *Indexer {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 3
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 10
	}
	if cfg.MinEdgeWeight <= 0 {
		cfg.MinEdgeWeight = 0.1
	}
	if ids == nil {
		ids = ident.UUIDGenerator{}
	}
	return &Indexer{cfg: cfg, ids: ids}
}

// Build segments text and assembles the flat two-tier graph: a document
// root, one section node per segment, parent-child edges from the root and
// semantic edges between keyword-similar sections. Empty input yields a
// graph with zero nodes.
func (ix *Indexer) Build(text, title, description string) *Index {
	idx := &Index{
		Title:       title,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}

	segments := segment.Split(text, ix.cfg.Segment)
	if len(segments) == 0 {
		return idx
	}

	root := &Node{
		ID:       ix.ids.NewID(),
		Title:    title,
		Content:  text,
		Type:     NodeDocument,
		StartIdx: segments[0].Start,
		EndIdx:   segments[len(segments)-1].End,
		Meta:     NodeMeta{Keywords: Keywords(title + " " + description)},
	}
	idx.Nodes = append(idx.Nodes, root)

	for _, seg := range segments {
		node := &Node{
			ID:       ix.ids.NewID(),
			Title:    seg.Title,
			Content:  seg.Text,
			Summary:  summarize(seg.Text, 200),
			Type:     NodeSection,
			StartIdx: seg.Start,
			EndIdx:   seg.End,
			Meta: NodeMeta{
				Level:    seg.Level,
				Keywords: Keywords(seg.Title + " " + seg.Text),
			},
		}
		idx.Nodes = append(idx.Nodes, node)
		idx.Edges = append(idx.Edges, Edge{
			From:   root.ID,
			To:     node.ID,
			Weight: 0.8,
			Type:   EdgeParentChild,
		})
	}

	if ix.cfg.EnableCrossReferences {
		ix.linkSemantic(idx)
	}
	if ix.cfg.PrecomputeRelationships {
		computeCentrality(idx)
	}

	return idx
}

// linkSemantic adds a semantic edge for every unordered pair of section
// nodes whose keyword-set Jaccard similarity exceeds the minimum weight.
func (ix *Indexer) linkSemantic(idx *Index) {
	sections := idx.Nodes[1:]
	for i := 0; i < len(sections); i++ {
		for j := i + 1; j < len(sections); j++ {
			sim := Jaccard(sections[i].Meta.Keywords, sections[j].Meta.Keywords)
			if sim > ix.cfg.MinEdgeWeight {
				idx.Edges = append(idx.Edges, Edge{
					From:   sections[i].ID,
					To:     sections[j].ID,
					Weight: sim,
					Type:   EdgeSemantic,
				})
			}
		}
	}
}

// computeCentrality stores normalized degree (connections/10, capped at 1)
// in each node's metadata.
func computeCentrality(idx *Index) {
	degree := make(map[string]int, len(idx.Nodes))
	for _, e := range idx.Edges {
		degree[e.From]++
		degree[e.To]++
	}
	for _, n := range idx.Nodes {
		c := float64(degree[n.ID]) / 10
		if c > 1 {
			c = 1
		}
		n.Meta.Centrality = c
	}
}

func summarize(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	// Back up to a rune boundary so the cut never splits a multi-byte rune.
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
