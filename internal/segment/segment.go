// Package segment splits raw document text into paragraphs and groups them
// into leveled sections by classifying heading paragraphs.
package segment

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Segment is one recognized section: a heading (or synthetic wrapper) plus
// the body paragraphs that follow it. Start/End are paragraph indices into
// the original paragraph stream. Level 0 is never emitted; every segment
// carries the heading level that opened it (synthetic wrappers are level 1).
type Segment struct {
	Title string
	Text  string
	Start int
	End   int
	Level int
}

// Config controls segmentation behavior.
type Config struct {
	// HeadingPatterns are caller-supplied regexes tried before the built-in
	// detectors. Capture group 1 becomes the title when present; matches are
	// always level 1.
	HeadingPatterns []*regexp.Regexp
}

const maxHeadingLevel = 4

var (
	outlineRe  = regexp.MustCompile(`^(\d+(?:\.\d+)*)[.)]?\s+(.+)$`)
	markdownRe = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
)

// sectionVocab is the fixed set of common section names recognized as
// level-1 headings when the paragraph is short.
var sectionVocab = []string{
	"introduction", "abstract", "conclusion", "references",
	"appendix", "summary", "overview", "background",
}

// SplitParagraphs breaks text on blank-line boundaries into trimmed,
// non-empty paragraphs.
func SplitParagraphs(text string) []string {
	var paragraphs []string
	var current strings.Builder

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, strings.TrimSpace(current.String()))
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, strings.TrimSpace(current.String()))
	}
	return paragraphs
}

// heading is the result of classifying one paragraph.
type heading struct {
	title string
	level int
	body  string // remainder of the paragraph after the heading line
}

// classify runs the heading detectors against a paragraph, first match wins.
// Returns nil when the paragraph is body content.
func classify(para string, cfg Config) *heading {
	firstLine, rest, _ := strings.Cut(para, "\n")
	firstLine = strings.TrimSpace(firstLine)
	rest = strings.TrimSpace(rest)

	// 1. Caller-supplied patterns.
	for _, re := range cfg.HeadingPatterns {
		if m := re.FindStringSubmatch(firstLine); m != nil {
			title := firstLine
			if len(m) > 1 && m[1] != "" {
				title = m[1]
			}
			return &heading{title: title, level: 1, body: rest}
		}
	}

	// 2. Numbered outline: "2.1 Methods" nests by dot count.
	if m := outlineRe.FindStringSubmatch(firstLine); m != nil {
		level := strings.Count(m[1], ".") + 1
		if level > maxHeadingLevel {
			level = maxHeadingLevel
		}
		return &heading{title: strings.TrimSpace(m[2]), level: level, body: rest}
	}

	// 3. Markdown hash prefix.
	if m := markdownRe.FindStringSubmatch(firstLine); m != nil {
		level := len(m[1])
		if level > maxHeadingLevel {
			level = maxHeadingLevel
		}
		return &heading{title: strings.TrimSpace(m[2]), level: level, body: rest}
	}

	// Detectors 4 and 5 only apply to single-line paragraphs.
	if rest != "" {
		return nil
	}

	// 4. Common section vocabulary on short paragraphs.
	if len(firstLine) < 50 {
		lower := strings.ToLower(strings.TrimSuffix(firstLine, ":"))
		for _, word := range sectionVocab {
			if lower == word || strings.HasPrefix(lower, word+" ") {
				return &heading{title: strings.TrimSuffix(firstLine, ":"), level: 1}
			}
		}
	}

	// 5. Generic label heuristic.
	if looksLikeLabel(firstLine) {
		return &heading{title: strings.TrimSuffix(firstLine, ":"), level: 1}
	}

	return nil
}

// looksLikeLabel reports whether a short paragraph reads as a section label:
// ends with a colon, is a single capitalized line with no terminal
// punctuation, or is fully upper-case.
func looksLikeLabel(line string) bool {
	if len(line) >= 100 || len(strings.Fields(line)) > 10 {
		return false
	}
	if strings.HasSuffix(line, ":") {
		return true
	}
	if isUpper(line) {
		return true
	}
	runes := []rune(line)
	if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
		return false
	}
	return !strings.ContainsAny(line, ".!?")
}

func isUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

// Split segments document text into a flat, ordered list of leveled sections.
// Body paragraphs attach to the most recent heading; body text that appears
// before any heading is wrapped in a synthetic "Section N" segment so no
// content is ever orphaned.
func Split(text string, cfg Config) []Segment {
	paragraphs := SplitParagraphs(text)
	if len(paragraphs) == 0 {
		return nil
	}

	var segments []Segment
	var current *Segment
	synthetic := 0

	appendBody := func(s *Segment, body string, idx int) {
		if body == "" {
			return
		}
		if s.Text != "" {
			s.Text += "\n\n" + body
		} else {
			s.Text = body
		}
		s.End = idx
	}

	for i, para := range paragraphs {
		if h := classify(para, cfg); h != nil {
			segments = append(segments, Segment{
				Title: h.title,
				Start: i,
				End:   i,
				Level: h.level,
			})
			current = &segments[len(segments)-1]
			appendBody(current, h.body, i)
			continue
		}

		if current == nil {
			// No section open yet: each orphan paragraph gets its own wrapper.
			synthetic++
			segments = append(segments, Segment{
				Title: fmt.Sprintf("Section %d", synthetic),
				Text:  para,
				Start: i,
				End:   i,
				Level: 1,
			})
			continue
		}
		appendBody(current, para, i)
	}

	return segments
}
