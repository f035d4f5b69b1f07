package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVParser handles CSV files. Rows are grouped into batches so each batch
// becomes one navigable section.
type CSVParser struct{}

const csvBatchSize = 20

func (p *CSVParser) Parse(r io.Reader, filename string) (*Extracted, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	out := &Extracted{Title: titleFromFilename(filename)}
	if len(records) == 0 {
		return out, nil
	}

	// First row is headers.
	headers := records[0]
	dataRows := records[1:]

	var paragraphs []string
	for i := 0; i < len(dataRows); i += csvBatchSize {
		end := i + csvBatchSize
		if end > len(dataRows) {
			end = len(dataRows)
		}

		// 1-indexed file rows, skipping the header row.
		paragraphs = append(paragraphs, headingLine(1, fmt.Sprintf("Rows %d-%d", i+2, end+1)))

		var text strings.Builder
		text.WriteString("Headers: " + strings.Join(headers, ", "))
		for _, row := range dataRows[i:end] {
			text.WriteString("\n")
			for j, cell := range row {
				if j < len(headers) {
					text.WriteString(headers[j] + ": " + cell)
				} else {
					text.WriteString(cell)
				}
				if j < len(row)-1 {
					text.WriteString(", ")
				}
			}
		}
		paragraphs = append(paragraphs, text.String())
	}

	out.Text = strings.Join(paragraphs, "\n\n")
	return out, nil
}
