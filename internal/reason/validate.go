package reason

import (
	"fmt"
	"strings"
)

const maxSelectedNodes = 5

// ValidateSelection filters a model reply down to known, distinct node ids.
// Model output is untrusted: unknown ids are collected and reported rather
// than panicking, so callers can fall back to the keyword scorer.
func ValidateSelection(ids []string, known map[string]bool) ([]string, error) {
	var valid []string
	var unknown []string
	seen := make(map[string]bool)

	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		if !known[id] {
			unknown = append(unknown, id)
			continue
		}
		valid = append(valid, id)
		if len(valid) == maxSelectedNodes {
			break
		}
	}

	if len(valid) == 0 && len(unknown) > 0 {
		return nil, fmt.Errorf("selection contains only unknown node ids: %s", strings.Join(unknown, ", "))
	}
	return valid, nil
}
