// Package core implements the schema-inference and typed-row pipeline for
// tabular file imports. It turns raw string cells into column-level type
// decisions, generated Postgres column definitions, and strongly-typed rows
// ready for insertion. The package has no HTTP dependencies and talks to the
// database only through the Store interface.
package core

import (
	"context"
	"fmt"
)

// CellKind is the closed set of scalar types a column can be inferred as.
type CellKind int

const (
	KindText CellKind = iota
	KindInt
	KindNumeric
	KindBool
	KindDate
)

// String returns a readable name for logging and error messages.
func (k CellKind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindNumeric:
		return "numeric"
	case KindBool:
		return "boolean"
	case KindDate:
		return "date"
	default:
		return "text"
	}
}

// Cell is a single typed value. Value holds a pgtype value matching Kind
// (pgtype.Int8, pgtype.Numeric, pgtype.Bool, pgtype.Date or pgtype.Text),
// with Valid=false for absent cells so the database receives NULL.
//
// Kind may differ from the column's inferred kind: a cell whose raw text
// failed conversion keeps KindText and its trimmed string, so the store
// binds it by its own kind rather than the column's.
type Cell struct {
	Kind  CellKind
	Value any
}

// ColumnMeta describes one column of an import.
// Name is normalized exactly once during schema mapping and is then reused
// verbatim for both the CREATE TABLE statement and every INSERT, so the
// schema and the data can never disagree on identifiers.
type ColumnMeta struct {
	Name    string   `json:"name"`
	Kind    CellKind `json:"-"`
	SQLType string   `json:"sqlType"`
}

// TableData is the single-owner pipeline payload: created by extraction,
// enriched by inference and schema mapping, consumed by the materializer.
type TableData struct {
	TableName string
	Columns   []ColumnMeta
	Rows      [][]Cell
}

// InsertResult reports how far a row-insert sequence got. The insert loop
// aborts on the first failing row; Inserted counts the rows committed before
// that, and FailedRow is the zero-based index of the failing row (-1 when
// every row went in).
type InsertResult struct {
	Inserted  int
	FailedRow int
}

// Store is the destination the pipeline materializes tables into.
// CreateTableIfAbsent must be idempotent. InsertRows executes one
// positional-parameterized insert per row, in row order.
type Store interface {
	CreateTableIfAbsent(ctx context.Context, table string, columns []ColumnMeta) error
	InsertRows(ctx context.Context, table string, columns []ColumnMeta, rows [][]Cell) (InsertResult, error)
}

// ImportResult is the summary returned to the caller after an import.
type ImportResult struct {
	TableName    string       `json:"tableName"`
	Columns      []ColumnMeta `json:"columns"`
	RowsInserted int          `json:"rowsInserted"`
}

// BadRequestError marks malformed input: the uploaded file (or the request
// itself) is at fault and retrying without changing it cannot succeed.
// The web layer maps it to HTTP 400; every other error is a server fault.
type BadRequestError struct {
	Reason string
}

func (e *BadRequestError) Error() string {
	return e.Reason
}

// BadRequestf builds a BadRequestError from a format string.
func BadRequestf(format string, args ...any) error {
	return &BadRequestError{Reason: fmt.Sprintf(format, args...)}
}
