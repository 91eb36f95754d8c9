// Package parser extracts ordered headers and raw string rows from uploaded
// tabular files. Each parser normalizes its format's quirks (ragged CSV
// rows, blank spreadsheet rows, display formatting) into the same shape:
// every row is clamped to the header width and blank cells are empty
// strings. Type inference and conversion happen downstream.
package parser

import (
	"fmt"
	"io"
	"strings"
)

// Sheet is the format-independent extraction result. Every row has exactly
// len(Headers) cells; absent or blank cells are empty strings. Headers are
// reported as-is: normalization into SQL identifiers happens later.
type Sheet struct {
	Headers []string
	Rows    [][]string
}

// Parser extracts a Sheet from a raw byte stream.
type Parser interface {
	Parse(r io.Reader) (*Sheet, error)
}

// MalformedInputError reports structurally unusable input: no header row,
// no data rows, an empty sheet. It is the caller's file that is wrong, not
// the service.
type MalformedInputError struct {
	Reason string
}

func (e *MalformedInputError) Error() string {
	return e.Reason
}

func malformedf(format string, args ...any) error {
	return &MalformedInputError{Reason: fmt.Sprintf(format, args...)}
}

// ForExtension returns the parser for a file extension (without the dot,
// case-insensitive). Only csv and xlsx are recognized.
func ForExtension(ext string) (Parser, error) {
	switch strings.ToLower(ext) {
	case "csv":
		return &CSVParser{}, nil
	case "xlsx":
		return &XLSXParser{}, nil
	default:
		return nil, malformedf("unsupported file extension %q: only .csv and .xlsx files are supported", ext)
	}
}

// clampRow pads a short row with blanks and drops cells beyond the header
// width, so downstream stages can index by column position unconditionally.
func clampRow(cells []string, width int) []string {
	row := make([]string, width)
	for i := 0; i < width && i < len(cells); i++ {
		row[i] = strings.TrimSpace(cells[i])
	}
	return row
}

// isBlankRow reports whether every cell is empty after trimming.
func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
