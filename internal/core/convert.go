package core

// convert.go converts raw string cells to typed values according to the
// column's inferred kind. Inference is a column-level heuristic, not a
// per-cell guarantee: a cell whose text fails to parse falls back to its
// trimmed string instead of failing the whole import.
//
// All typed values are pgtype values with Valid=false for blank input, so
// the database receives NULL without any special-casing at the store layer.

import (
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// ConvertRows converts every raw row to a typed row. Rows shorter than the
// column set are padded with NULL cells; extra trailing cells never reach
// this point because extraction already clamps rows to the header width.
func ConvertRows(rawRows [][]string, kinds []CellKind) [][]Cell {
	typed := make([][]Cell, 0, len(rawRows))
	for _, raw := range rawRows {
		row := make([]Cell, len(kinds))
		for col, kind := range kinds {
			var v string
			if col < len(raw) {
				v = raw[col]
			}
			row[col] = ConvertCell(v, kind)
		}
		typed = append(typed, row)
	}
	return typed
}

// ConvertCell converts one raw value to the target kind. Blank input yields
// a NULL cell of the target kind. A non-blank value that does not parse as
// the target kind keeps its trimmed text and KindText, so the caller binds
// it by the cell's own kind rather than the column's.
func ConvertCell(raw string, kind CellKind) Cell {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nullCell(kind)
	}

	switch kind {
	case KindInt:
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return Cell{Kind: KindInt, Value: pgtype.Int8{Int64: i, Valid: true}}
		}
	case KindNumeric:
		var n pgtype.Numeric
		if err := n.Scan(v); err == nil {
			return Cell{Kind: KindNumeric, Value: n}
		}
	case KindBool:
		// Strict parse: anything other than true/false keeps its text
		// instead of silently becoming false.
		if strings.EqualFold(v, "true") {
			return Cell{Kind: KindBool, Value: pgtype.Bool{Bool: true, Valid: true}}
		}
		if strings.EqualFold(v, "false") {
			return Cell{Kind: KindBool, Value: pgtype.Bool{Bool: false, Valid: true}}
		}
	case KindDate:
		if t, err := time.Parse(isoDateLayout, v); err == nil {
			return Cell{Kind: KindDate, Value: pgtype.Date{Time: t, Valid: true}}
		}
	}

	return Cell{Kind: KindText, Value: pgtype.Text{String: v, Valid: true}}
}

// nullCell returns an absent value of the given kind.
func nullCell(kind CellKind) Cell {
	switch kind {
	case KindInt:
		return Cell{Kind: KindInt, Value: pgtype.Int8{}}
	case KindNumeric:
		return Cell{Kind: KindNumeric, Value: pgtype.Numeric{}}
	case KindBool:
		return Cell{Kind: KindBool, Value: pgtype.Bool{}}
	case KindDate:
		return Cell{Kind: KindDate, Value: pgtype.Date{}}
	default:
		return Cell{Kind: KindText, Value: pgtype.Text{}}
	}
}
