package search

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docindex/internal/graph"
	"github.com/dgallion1/docindex/internal/hierarchy"
)

// ScoredNode is a tree node with its keyword-match score.
type ScoredNode struct {
	Node  *hierarchy.TreeNode `json:"node"`
	Score float64             `json:"score"`
}

// TreeResult bundles the ranked nodes with a human-readable rationale.
type TreeResult struct {
	Nodes     []ScoredNode `json:"nodes"`
	Rationale string       `json:"rationale"`
}

// Per-term contribution weights for the keyword scorer.
const (
	titleTokenScore   = 10.0
	titleSubstrScore  = 5.0
	summaryOccurScore = 2.0
	textOccurScore    = 0.5
	textOccurCap      = 5.0
	phraseBonus       = 15.0
)

// SearchTree ranks tree nodes against a query by lexical overlap: exact
// title tokens, title substrings, summary and text occurrences, and a flat
// bonus for an exact phrase match on the title. Only nodes with a positive
// score are returned.
func SearchTree(t *hierarchy.TreeIndex, query string, maxResults int) TreeResult {
	if maxResults <= 0 {
		maxResults = 10
	}
	terms := graph.Tokenize(query, 1)
	if len(terms) == 0 {
		return TreeResult{Rationale: "query produced no usable terms"}
	}
	phrase := strings.Join(terms, " ")

	all := t.Flatten()
	var scored []ScoredNode
	for _, n := range all {
		if s := scoreNode(n, terms, phrase); s > 0 {
			scored = append(scored, ScoredNode{Node: n, Score: s})
		}
	}

	// Insertion sort keeps equal-score nodes in document order.
	for i := 1; i < len(scored); i++ {
		for j := i; j > 0 && scored[j].Score > scored[j-1].Score; j-- {
			scored[j], scored[j-1] = scored[j-1], scored[j]
		}
	}
	matched := len(scored)
	if len(scored) > maxResults {
		scored = scored[:maxResults]
	}

	return TreeResult{
		Nodes: scored,
		Rationale: fmt.Sprintf("keyword match on %d of %d nodes for terms %v",
			matched, len(all), terms),
	}
}

func scoreNode(n *hierarchy.TreeNode, terms []string, phrase string) float64 {
	titleLower := strings.ToLower(n.Title)
	titleTokens := toSet(graph.Tokenize(n.Title, 1))
	summaryTokens := graph.Tokenize(n.Summary, 1)
	textTokens := graph.Tokenize(n.Text, 1)

	var score float64
	for _, term := range terms {
		if titleTokens[term] {
			score += titleTokenScore
		}
		if strings.Contains(titleLower, term) {
			score += titleSubstrScore
		}
		for _, tok := range summaryTokens {
			if tok == term {
				score += summaryOccurScore
			}
		}
		textScore := 0.0
		for _, tok := range textTokens {
			if tok == term {
				textScore += textOccurScore
			}
		}
		if textScore > textOccurCap {
			textScore = textOccurCap
		}
		score += textScore
	}

	if phrase != "" && strings.Contains(titleLower, phrase) {
		score += phraseBonus
	}

	return score
}

func toSet(tokens []string) map[string]bool {
	m := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		m[t] = true
	}
	return m
}
