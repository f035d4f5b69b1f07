// Package graph builds a flat relationship graph over document sections:
// one document root, one node per section, weighted parent-child and
// keyword-similarity edges.
package graph

import (
	"fmt"
	"time"
)

// NodeType classifies graph nodes.
type NodeType string

const (
	NodeDocument  NodeType = "document"
	NodeSection   NodeType = "section"
	NodeParagraph NodeType = "paragraph"
	NodeReference NodeType = "reference"
)

// EdgeType classifies relationships between nodes.
type EdgeType string

const (
	EdgeParentChild EdgeType = "parent-child"
	EdgeSemantic    EdgeType = "semantic"
	EdgeReference   EdgeType = "reference"
	EdgeCrossLink   EdgeType = "cross-link"
)

// NodeMeta holds per-node annotations. Known kinds are typed fields; Extra
// is the escape hatch for opaque additions.
type NodeMeta struct {
	Level      int               `json:"level,omitempty"`
	Keywords   []string          `json:"keywords,omitempty"`
	Centrality float64           `json:"centrality,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Node is one graph node. StartIdx/EndIdx are paragraph indices into the
// original stream.
type Node struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content,omitempty"`
	Summary  string   `json:"summary,omitempty"`
	Type     NodeType `json:"type"`
	StartIdx int      `json:"start_index"`
	EndIdx   int      `json:"end_index"`
	Meta     NodeMeta `json:"metadata"`
}

// Edge is a directed edge as stored; traversal treats edges as undirected.
type Edge struct {
	From   string   `json:"from"`
	To     string   `json:"to"`
	Weight float64  `json:"weight"`
	Type   EdgeType `json:"type"`
}

// Index is a fully built document graph. Plain data: serializing and
// reloading it loses nothing.
type Index struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Nodes       []*Node   `json:"nodes"`
	Edges       []Edge    `json:"edges"`
}

// Lookup builds a node-id index over the graph.
func (g *Index) Lookup() map[string]*Node {
	m := make(map[string]*Node, len(g.Nodes))
	for _, n := range g.Nodes {
		m[n.ID] = n
	}
	return m
}

// MustNode returns the node with the given id. A missing id means the
// invariant between indexer and searcher is broken, so it panics.
func (g *Index) MustNode(id string) *Node {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	panic(fmt.Sprintf("graph: node %q referenced but not present in index", id))
}

// Root returns the single document-type node, or nil for an empty graph.
func (g *Index) Root() *Node {
	for _, n := range g.Nodes {
		if n.Type == NodeDocument {
			return n
		}
	}
	return nil
}
