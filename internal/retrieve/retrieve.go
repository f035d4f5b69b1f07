// Package retrieve pulls node content for a set of selected ids and formats
// it into a single context string.
package retrieve

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docindex/internal/graph"
	"github.com/dgallion1/docindex/internal/hierarchy"
)

// Record is one ordered content block pulled from an index.
type Record struct {
	NodeID string `json:"node_id"`
	Title  string `json:"title"`
	Text   string `json:"text"`
}

// FromTree resolves node ids against a tree index, preserving order.
// Ids come from a search over the same index, so an unknown id is a broken
// invariant and panics.
func FromTree(t *hierarchy.TreeIndex, nodeIDs []string) []Record {
	lookup := t.Lookup()
	records := make([]Record, 0, len(nodeIDs))
	for _, id := range nodeIDs {
		n, ok := lookup[id]
		if !ok {
			panic(fmt.Sprintf("retrieve: node %q not present in tree index", id))
		}
		text := n.Text
		if text == "" {
			text = n.Summary
		}
		records = append(records, Record{NodeID: n.ID, Title: n.Title, Text: text})
	}
	return records
}

// FromGraph resolves node ids against a graph index, preserving order.
func FromGraph(g *graph.Index, nodeIDs []string) []Record {
	lookup := g.Lookup()
	records := make([]Record, 0, len(nodeIDs))
	for _, id := range nodeIDs {
		n, ok := lookup[id]
		if !ok {
			panic(fmt.Sprintf("retrieve: node %q not present in graph index", id))
		}
		text := n.Content
		if text == "" {
			text = n.Summary
		}
		records = append(records, Record{NodeID: n.ID, Title: n.Title, Text: text})
	}
	return records
}

// FormatContext joins records into "### <title>\n<text>" blocks separated
// by blank lines.
func FormatContext(records []Record) string {
	blocks := make([]string, 0, len(records))
	for _, r := range records {
		blocks = append(blocks, fmt.Sprintf("### %s\n%s", r.Title, r.Text))
	}
	return strings.Join(blocks, "\n\n")
}
