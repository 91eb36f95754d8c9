// Package store materializes inferred schemas as Postgres tables and loads
// typed rows into them. Identifiers arriving here are already normalized by
// the core; values are always bound positionally, never interpolated.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmfedotov/tabload/internal/core"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the database interface the store needs.
// Satisfied by *pgxpool.Pool and pgx.Tx, so a caller that wants all-or-nothing
// imports can hand in a transaction instead of the pool.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Postgres implements core.Store against a pgx connection.
type Postgres struct {
	db DBTX
}

// NewPostgres creates a Postgres store backed by db.
func NewPostgres(db DBTX) *Postgres {
	return &Postgres{db: db}
}

// CreateTableIfAbsent issues an idempotent CREATE TABLE IF NOT EXISTS with
// one "name type" definition per column, in column order.
func (p *Postgres) CreateTableIfAbsent(ctx context.Context, table string, columns []core.ColumnMeta) error {
	if table == "" {
		return core.BadRequestf("table name is empty")
	}
	if len(columns) == 0 {
		return core.BadRequestf("the column list is empty, nothing to create")
	}

	defs := make([]string, len(columns))
	for i, col := range columns {
		defs[i] = col.Name + " " + col.SQLType
	}
	ddl := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table, strings.Join(defs, ", "))

	slog.Debug("creating table", "ddl", ddl)
	if _, err := p.db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}
	return nil
}

// InsertRows inserts rows one at a time, in order, and stops at the first
// failure. The returned result always carries the number of rows committed
// so far; on failure it also names the failing row. An empty row set is a
// no-op, not an error.
//
// A row whose width differs from the column count is rejected before any
// statement is issued for it; rows already inserted stay committed.
func (p *Postgres) InsertRows(ctx context.Context, table string, columns []core.ColumnMeta, rows [][]core.Cell) (core.InsertResult, error) {
	result := core.InsertResult{FailedRow: -1}
	if len(rows) == 0 {
		return result, nil
	}

	sql := buildInsertSQL(table, columns)

	for i, row := range rows {
		if len(row) != len(columns) {
			result.FailedRow = i
			return result, core.BadRequestf("row %d has %d values, but %d columns expected", i, len(row), len(columns))
		}

		args := make([]any, len(row))
		for j, cell := range row {
			args[j] = cell.Value
		}

		if _, err := p.db.Exec(ctx, sql, args...); err != nil {
			result.FailedRow = i
			return result, fmt.Errorf("insert row %d into %s: %w", i, table, err)
		}
		result.Inserted++
	}

	return result, nil
}

// buildInsertSQL renders INSERT INTO table (c1, c2, ...) VALUES ($1, $2, ...).
func buildInsertSQL(table string, columns []core.ColumnMeta) string {
	names := make([]string, len(columns))
	params := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.Name
		params[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(names, ", "), strings.Join(params, ", "))
}
