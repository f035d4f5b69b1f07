package parser

import (
	"fmt"
	"strings"
	"testing"
)

func TestCSVParser_BatchesRows(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("name,role\n")
	for i := 1; i <= 25; i++ {
		fmt.Fprintf(&sb, "person%d,role%d\n", i, i)
	}

	p := &CSVParser{}
	out, err := p.Parse(strings.NewReader(sb.String()), "team.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Title != "team" {
		t.Errorf("expected title %q, got %q", "team", out.Title)
	}
	// 25 data rows batch into 20 + 5, with 1-indexed file row ranges.
	if !strings.Contains(out.Text, "# Rows 2-21") {
		t.Errorf("expected first batch heading, got %q", out.Text)
	}
	if !strings.Contains(out.Text, "# Rows 22-26") {
		t.Errorf("expected second batch heading, got %q", out.Text)
	}
	if !strings.Contains(out.Text, "name: person1, role: role1") {
		t.Errorf("expected header-labeled cells, got %q", out.Text)
	}
	if !strings.Contains(out.Text, "Headers: name, role") {
		t.Errorf("expected headers line, got %q", out.Text)
	}
}

func TestCSVParser_Empty(t *testing.T) {
	p := &CSVParser{}
	out, err := p.Parse(strings.NewReader(""), "empty.csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Text != "" {
		t.Errorf("expected empty text, got %q", out.Text)
	}
}
