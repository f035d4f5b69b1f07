package graph

import "strings"

const maxKeywordsPerNode = 10

// Tokenize lower-cases text, strips punctuation and returns tokens longer
// than minLen characters.
func Tokenize(text string, minLen int) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})
	var tokens []string
	for _, f := range fields {
		if len(f) > minLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func isWordRune(r rune) bool {
	return r == '-' || ('a' <= r && r <= 'z') || ('0' <= r && r <= '9') || r > 127
}

// Keywords extracts up to 10 distinct keywords (tokens longer than 3
// characters) from text, in first-seen order.
func Keywords(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, tok := range Tokenize(text, 3) {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
		if len(out) == maxKeywordsPerNode {
			break
		}
	}
	return out
}

// Jaccard returns the Jaccard similarity of two keyword sets.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]bool, len(a))
	for _, k := range a {
		set[k] = true
	}
	inter := 0
	union := len(set)
	seen := make(map[string]bool, len(b))
	for _, k := range b {
		if seen[k] {
			continue
		}
		seen[k] = true
		if set[k] {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
