package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// XLSXParser extracts headers and raw rows from the first sheet of an xlsx
// workbook. The header is the first row with at least one non-blank cell;
// blank header cells get synthesized column_<n> names. Fully blank rows
// anywhere in the sheet are skipped, not treated as end-of-data.
//
// Cell values come from excelize with the workbook's display formatting
// applied, so numeric and date cells yield the text a human reading the
// sheet would see.
type XLSXParser struct{}

// Parse buffers the stream into a workbook and extracts the first sheet.
func (p *XLSXParser) Parse(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("reading the file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, malformedf("the workbook does not contain any sheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading the file: %w", err)
	}

	// Locate the header: first row with any non-blank cell.
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
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}
		headers[i] = h
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
