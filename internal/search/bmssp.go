// Package search implements the two query-time strategies over built
// indexes: a bounded multi-source path search on the graph and a keyword
// scorer on the tree.
package search

import (
	"container/heap"
	"fmt"
	"strings"

	"github.com/dgallion1/docindex/internal/graph"
)

// Options controls a graph search.
type Options struct {
	MaxResults    int     // cap on returned paths
	MaxDepth      float64 // cumulative distance bound
	MinEdgeWeight float64 // floor for edge traversal
	Selective     bool    // activation-guided expansion vs. plain distance order
}

func (o Options) withDefaults() Options {
	if o.MaxResults <= 0 {
		o.MaxResults = 10
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = 3
	}
	if o.MinEdgeWeight <= 0 {
		o.MinEdgeWeight = 0.1
	}
	return o
}

// PathResult is one discovered path through the graph.
type PathResult struct {
	Path      []string `json:"path"`
	Distance  float64  `json:"distance"`
	Score     float64  `json:"score"`
	Reasoning string   `json:"reasoning"`
}

// GraphResult bundles the ranked paths with the distinct nodes they touch.
type GraphResult struct {
	Paths   []PathResult `json:"paths"`
	NodeIDs []string     `json:"node_ids"`
}

// activationFloor is the minimum activation score an entry needs to stay in
// the selective search.
const activationFloor = 0.25

// entry is one partial path on the worklist.
type entry struct {
	node        string
	distance    float64
	path        []string
	score       float64 // activation score of this entry's node
	parentScore float64
}

// workList orders entries by activation score (high first, ties by low
// distance) in selective mode, or purely by low distance in baseline mode.
type workList struct {
	entries   []*entry
	selective bool
}

func (w *workList) Len() int { return len(w.entries) }

func (w *workList) Less(i, j int) bool {
	a, b := w.entries[i], w.entries[j]
	if w.selective {
		if a.score != b.score {
			return a.score > b.score
		}
	}
	return a.distance < b.distance
}

func (w *workList) Swap(i, j int) { w.entries[i], w.entries[j] = w.entries[j], w.entries[i] }

func (w *workList) Push(x any) { w.entries = append(w.entries, x.(*entry)) }

func (w *workList) Pop() any {
	old := w.entries
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	w.entries = old[:n-1]
	return e
}

// Sources returns ids of nodes matched by simple query-keyword containment
// against title, summary and extracted keywords.
func Sources(g *graph.Index, query string) []string {
	terms := graph.Tokenize(query, 1)
	if len(terms) == 0 {
		return nil
	}
	var out []string
	for _, n := range g.Nodes {
		title := strings.ToLower(n.Title)
		summary := strings.ToLower(n.Summary)
		for _, term := range terms {
			if strings.Contains(title, term) || strings.Contains(summary, term) || hasKeyword(n, term) {
				out = append(out, n.ID)
				break
			}
		}
	}
	return out
}

func hasKeyword(n *graph.Node, term string) bool {
	for _, k := range n.Meta.Keywords {
		if strings.Contains(k, term) {
			return true
		}
	}
	return false
}

// SearchGraph runs the bounded multi-source path search from the given
// source nodes. Unknown source ids panic: the caller handed us ids that do
// not belong to this graph. No matching sources is not an error; the result
// is simply empty.
func SearchGraph(g *graph.Index, sourceIDs []string, opts Options) GraphResult {
	opts = opts.withDefaults()
	if len(sourceIDs) == 0 {
		return GraphResult{}
	}

	lookup := g.Lookup()
	adjacency := buildAdjacency(g, lookup)

	var sources []*graph.Node
	for _, id := range sourceIDs {
		n, ok := lookup[id]
		if !ok {
			panic(fmt.Sprintf("search: source node %q not present in graph", id))
		}
		sources = append(sources, n)
	}

	wl := &workList{selective: opts.Selective}
	for _, src := range sources {
		heap.Push(wl, &entry{
			node:        src.ID,
			distance:    0,
			path:        []string{src.ID},
			score:       activation(src, sources),
			parentScore: 1.0,
		})
	}

	seen := make(map[string]bool)
	var results []PathResult

	for wl.Len() > 0 && len(results) < opts.MaxResults {
		e := heap.Pop(wl).(*entry)

		if e.distance > opts.MaxDepth {
			continue
		}
		if opts.Selective && e.score < activationFloor {
			continue
		}

		sig := strings.Join(e.path, "->")
		if seen[sig] {
			continue
		}
		seen[sig] = true

		if len(e.path) >= 2 {
			results = append(results, pathResult(e, lookup))
		}

		threshold := opts.MinEdgeWeight
		if opts.Selective {
			// Strong parents may follow weak edges; weak parents need
			// strong edges.
			if t := 0.7 - e.score*0.4; t > threshold {
				threshold = t
			}
		}

		for _, nb := range adjacency[e.node] {
			if nb.weight < threshold {
				continue
			}
			if pathContains(e.path, nb.id) {
				continue
			}
			next := &entry{
				node:        nb.id,
				distance:    e.distance + nb.weight,
				path:        appendPath(e.path, nb.id),
				parentScore: e.score,
			}
			if opts.Selective {
				next.score = activation(lookup[nb.id], sources) * nb.weight * e.score
			}
			heap.Push(wl, next)
		}
	}

	sortByScore(results)
	if len(results) > opts.MaxResults {
		results = results[:opts.MaxResults]
	}

	return GraphResult{Paths: results, NodeIDs: collectNodeIDs(results)}
}

type neighbor struct {
	id     string
	weight float64
}

// buildAdjacency indexes edges in both directions; traversal treats the
// graph as undirected. An edge endpoint missing from the node set is a
// broken indexer invariant and panics.
func buildAdjacency(g *graph.Index, lookup map[string]*graph.Node) map[string][]neighbor {
	adj := make(map[string][]neighbor, len(g.Nodes))
	for _, e := range g.Edges {
		if _, ok := lookup[e.From]; !ok {
			panic(fmt.Sprintf("search: edge endpoint %q not present in graph", e.From))
		}
		if _, ok := lookup[e.To]; !ok {
			panic(fmt.Sprintf("search: edge endpoint %q not present in graph", e.To))
		}
		adj[e.From] = append(adj[e.From], neighbor{id: e.To, weight: e.Weight})
		adj[e.To] = append(adj[e.To], neighbor{id: e.From, weight: e.Weight})
	}
	return adj
}

// activation estimates how relevant a node is to the active source set.
func activation(n *graph.Node, sources []*graph.Node) float64 {
	maxSim := 0.0
	for _, src := range sources {
		if sim := graph.Jaccard(n.Meta.Keywords, src.Meta.Keywords); sim > maxSim {
			maxSim = sim
		}
	}

	keywordSignal := 0.0
	if len(n.Meta.Keywords) > 0 {
		keywordSignal = 0.4
	}

	typeSignal := 0.3
	if n.Type == graph.NodeSection {
		typeSignal = 0.8
	}

	recency := 1 - float64(n.StartIdx)*0.1
	if recency < 0.7 {
		recency = 0.7
	}

	score := n.Meta.Centrality*0.25 +
		maxSim*0.30 +
		keywordSignal*0.15 +
		typeSignal*0.15 +
		recency*0.15
	return clamp01(score)
}

// pathResult converts an accepted worklist entry into a ranked result.
// The path score favors strong edges and central nodes.
func pathResult(e *entry, lookup map[string]*graph.Node) PathResult {
	hops := len(e.path) - 1
	avgEdge := e.distance / float64(hops)

	var centrality float64
	for _, id := range e.path {
		centrality += lookup[id].Meta.Centrality
	}
	centrality /= float64(len(e.path))

	first := lookup[e.path[0]]
	last := lookup[e.path[len(e.path)-1]]

	return PathResult{
		Path:     e.path,
		Distance: e.distance,
		Score:    clamp01(0.7*avgEdge + 0.3*centrality),
		Reasoning: fmt.Sprintf("%d-hop path from %q to %q (distance %.2f, avg edge weight %.2f)",
			hops, first.Title, last.Title, e.distance, avgEdge),
	}
}

func sortByScore(results []PathResult) {
	// Insertion sort keeps equal-score paths in discovery order.
	for i := 1; i < len(results); i++ {
		for j := i; j > 0 && results[j].Score > results[j-1].Score; j-- {
			results[j], results[j-1] = results[j-1], results[j]
		}
	}
}

func collectNodeIDs(results []PathResult) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range results {
		for _, id := range r.Path {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}

func pathContains(path []string, id string) bool {
	for _, p := range path {
		if p == id {
			return true
		}
	}
	return false
}

func appendPath(path []string, id string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = id
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
