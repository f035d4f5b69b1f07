package reason

import (
	"fmt"
	"strings"

	"github.com/dgallion1/docindex/internal/hierarchy"
)

const selectionSystemPrompt = `You select sections of an indexed document that are most likely to contain the answer to a question. You are given the document outline as an indented list of "node_id: title — summary" lines. Respond with ONLY a JSON object of the form {"thinking": "...", "node_ids": ["...", "..."]}. Rules:

- Pick at most 5 node ids, best first
- Only use node ids that appear in the outline
- Prefer specific sections over the document root
- Return {"node_ids": []} if no section is relevant`

// BuildSelectionPrompt assembles the user message for node selection.
func BuildSelectionPrompt(query, outline string) string {
	var sb strings.Builder
	sb.WriteString("Question: ")
	sb.WriteString(query)
	sb.WriteString("\n\n---\nDocument outline:\n")
	sb.WriteString(outline)
	return sb.String()
}

// RenderOutline formats a tree index as the indented outline the selection
// prompt expects.
func RenderOutline(t *hierarchy.TreeIndex) string {
	var sb strings.Builder
	var walk func(n *hierarchy.TreeNode, depth int)
	walk = func(n *hierarchy.TreeNode, depth int) {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(n.ID)
		sb.WriteString(": ")
		sb.WriteString(n.Title)
		if n.Summary != "" {
			sb.WriteString(" — ")
			sb.WriteString(firstLine(n.Summary))
		}
		sb.WriteString("\n")
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	for _, r := range t.Roots {
		walk(r, 0)
	}
	return sb.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return fmt.Sprintf("%s...", s[:i])
	}
	return s
}
