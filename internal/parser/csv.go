package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVParser extracts headers and raw rows from comma-delimited text.
// The first non-empty line is the header; empty lines are skipped entirely;
// ragged data rows are tolerated (missing cells become blanks, extra cells
// are dropped).
type CSVParser struct{}

// Parse reads the whole stream and returns the extracted sheet.
func (p *CSVParser) Parse(r io.Reader) (*Sheet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // ragged rows are handled here, not by the reader
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading the file: %w", err)
	}

	// encoding/csv already skips truly empty lines; drop whitespace-only
	// lines too before locating the header.
	var header []string
	dataStart := 0
	for i, rec := range records {
		if isBlankRow(rec) {
			continue
		}
		header = rec
		dataStart = i + 1
		break
	}

	if header == nil {
		return nil, malformedf("the file does not contain a header row")
	}

	headers := make([]string, len(header))
	for i, h := range header {
		headers[i] = strings.TrimSpace(h)
	}
	if len(headers) == 0 {
		return nil, malformedf("the header row does not contain any columns")
	}

	rows := make([][]string, 0, len(records)-dataStart)
	for _, rec := range records[dataStart:] {
		if isBlankRow(rec) {
			continue
		}
		rows = append(rows, clampRow(rec, len(headers)))
	}

	if len(rows) == 0 {
		return nil, malformedf("the file does not contain any data rows")
	}

	return &Sheet{Headers: headers, Rows: rows}, nil
}
