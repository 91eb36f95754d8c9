package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmfedotov/tabload/internal/core"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// fakeDB records executed statements and can fail on the nth call.
type fakeDB struct {
	calls   []execCall
	failOn  int // 1-based call number to fail on, 0 = never
	failErr error
}

type execCall struct {
	sql  string
	args []any
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.calls = append(f.calls, execCall{sql: sql, args: args})
	if f.failOn > 0 && len(f.calls) == f.failOn {
		return pgconn.CommandTag{}, f.failErr
	}
	return pgconn.CommandTag{}, nil
}

func testColumns() []core.ColumnMeta {
	return []core.ColumnMeta{
		{Name: "client_id", Kind: core.KindInt, SQLType: "BIGINT"},
		{Name: "client_fio", Kind: core.KindText, SQLType: "VARCHAR(255)"},
	}
}

func intCell(v int64) core.Cell {
	return core.Cell{Kind: core.KindInt, Value: pgtype.Int8{Int64: v, Valid: true}}
}

func textCell(v string) core.Cell {
	return core.Cell{Kind: core.KindText, Value: pgtype.Text{String: v, Valid: true}}
}

func TestCreateTableIfAbsent(t *testing.T) {
	db := &fakeDB{}
	p := NewPostgres(db)

	err := p.CreateTableIfAbsent(context.Background(), "clients_20240517_093045", testColumns())
	if err != nil {
		t.Fatalf("CreateTableIfAbsent: %v", err)
	}

	if len(db.calls) != 1 {
		t.Fatalf("got %d exec calls, want 1", len(db.calls))
	}

	ddl := db.calls[0].sql
	want := "CREATE TABLE IF NOT EXISTS clients_20240517_093045 (client_id BIGINT, client_fio VARCHAR(255))"
	if ddl != want {
		t.Errorf("ddl = %q, want %q", ddl, want)
	}
}

func TestCreateTableValidation(t *testing.T) {
	db := &fakeDB{}
	p := NewPostgres(db)

	if err := p.CreateTableIfAbsent(context.Background(), "", testColumns()); err == nil {
		t.Error("empty table name accepted")
	}
	if err := p.CreateTableIfAbsent(context.Background(), "t", nil); err == nil {
		t.Error("empty column list accepted")
	}
	if len(db.calls) != 0 {
		t.Errorf("invalid input reached the database: %d calls", len(db.calls))
	}
}

func TestInsertRows(t *testing.T) {
	db := &fakeDB{}
	p := NewPostgres(db)

	rows := [][]core.Cell{
		{intCell(1), textCell("John Smith")},
		{intCell(2), textCell("Jane Doe")},
	}

	res, err := p.InsertRows(context.Background(), "clients", testColumns(), rows)
	if err != nil {
		t.Fatalf("InsertRows: %v", err)
	}
	if res.Inserted != 2 || res.FailedRow != -1 {
		t.Errorf("result = %+v, want 2 inserted, no failed row", res)
	}

	if len(db.calls) != 2 {
		t.Fatalf("got %d exec calls, want 2", len(db.calls))
	}

	wantSQL := "INSERT INTO clients (client_id, client_fio) VALUES ($1, $2)"
	for i, call := range db.calls {
		if call.sql != wantSQL {
			t.Errorf("call %d sql = %q, want %q", i, call.sql, wantSQL)
		}
	}

	if db.calls[0].args[0] != (pgtype.Int8{Int64: 1, Valid: true}) {
		t.Errorf("first arg = %#v", db.calls[0].args[0])
	}
	if db.calls[1].args[1] != (pgtype.Text{String: "Jane Doe", Valid: true}) {
		t.Errorf("last arg = %#v", db.calls[1].args[1])
	}
}

func TestInsertRowsEmptySet(t *testing.T) {
	db := &fakeDB{}
	p := NewPostgres(db)

	res, err := p.InsertRows(context.Background(), "clients", testColumns(), nil)
	if err != nil {
		t.Fatalf("InsertRows: %v", err)
	}
	if res.Inserted != 0 {
		t.Errorf("inserted = %d, want 0", res.Inserted)
	}
	if len(db.calls) != 0 {
		t.Errorf("empty row set issued %d store calls", len(db.calls))
	}
}

func TestInsertRowsWidthMismatch(t *testing.T) {
	db := &fakeDB{}
	p := NewPostgres(db)

	rows := [][]core.Cell{
		{intCell(1), textCell("ok")},
		{intCell(2)}, // one cell short
		{intCell(3), textCell("never reached")},
	}

	res, err := p.InsertRows(context.Background(), "clients", testColumns(), rows)

	var badReq *core.BadRequestError
	if !errors.As(err, &badReq) {
		t.Fatalf("got %v, want BadRequestError", err)
	}
	for _, part := range []string{"row 1", "1 values", "2 columns"} {
		if !strings.Contains(err.Error(), part) {
			t.Errorf("error %q does not mention %q", err, part)
		}
	}

	// First row stays committed, the bad row never reaches the database.
	if res.Inserted != 1 || res.FailedRow != 1 {
		t.Errorf("result = %+v, want 1 inserted, failed row 1", res)
	}
	if len(db.calls) != 1 {
		t.Errorf("got %d exec calls, want 1 (loop must stop at the bad row)", len(db.calls))
	}
}

func TestInsertRowsAbortsOnFirstFailure(t *testing.T) {
	db := &fakeDB{failOn: 2, failErr: errors.New(`duplicate key value violates unique constraint`)}
	p := NewPostgres(db)

	rows := [][]core.Cell{
		{intCell(1), textCell("a")},
		{intCell(2), textCell("b")},
		{intCell(3), textCell("c")},
	}

	res, err := p.InsertRows(context.Background(), "clients", testColumns(), rows)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "duplicate key") {
		t.Errorf("cause lost: %v", err)
	}

	if res.Inserted != 1 || res.FailedRow != 1 {
		t.Errorf("result = %+v, want 1 inserted, failed row 1", res)
	}
	if len(db.calls) != 2 {
		t.Errorf("got %d exec calls, want 2 (no continuation past the failure)", len(db.calls))
	}
}

func TestInsertRowsBindsFallbackCellsByOwnKind(t *testing.T) {
	// A text fallback cell in an integer column is sent as text; whether
	// the database accepts the cast is the database's call.
	db := &fakeDB{}
	p := NewPostgres(db)

	rows := [][]core.Cell{
		{textCell("n/a"), textCell("x")},
	}

	if _, err := p.InsertRows(context.Background(), "clients", testColumns(), rows); err != nil {
		t.Fatalf("InsertRows: %v", err)
	}

	if db.calls[0].args[0] != (pgtype.Text{String: "n/a", Valid: true}) {
		t.Errorf("fallback cell bound as %#v, want its own text value", db.calls[0].args[0])
	}
}
