package core

// service.go sequences one import: extract, infer, convert, name, create,
// insert, summarize. Each stage fully completes before the next begins and
// any stage error ends the import; there are no retries. The service holds
// no per-request state, so concurrent imports are independent.

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/dmfedotov/tabload/internal/parser"
	"github.com/google/uuid"
)

// Service orchestrates file imports against a destination store.
type Service struct {
	store Store
}

// NewService creates the import orchestrator.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Import runs the full pipeline for one uploaded file and returns the
// summary. Malformed input (unsupported extension, unreadable or empty
// file, structural problems) comes back as a BadRequestError; store
// failures propagate as-is.
//
// Inserts are issued row by row and abort at the first store failure,
// leaving prior rows committed. There is no compensating rollback.
func (s *Service) Import(ctx context.Context, filename string, r io.Reader) (*ImportResult, error) {
	logger := slog.With("import_id", uuid.NewString(), "file", filename)

	if strings.TrimSpace(filename) == "" {
		return nil, BadRequestf("unable to determine the uploaded file name")
	}

	p, err := parser.ForExtension(extension(filename))
	if err != nil {
		return nil, asClientFault(err)
	}

	sheet, err := p.Parse(r)
	if err != nil {
		// Extraction failures are the upload's fault, including stream
		// read errors: the service never got a usable file.
		return nil, asClientFault(err)
	}
	logger.Info("file extracted", "columns", len(sheet.Headers), "rows", len(sheet.Rows))

	kinds := InferColumnKinds(sheet.Rows, len(sheet.Headers))
	rows := ConvertRows(sheet.Rows, kinds)

	columns := make([]ColumnMeta, len(sheet.Headers))
	for i, h := range sheet.Headers {
		columns[i] = ColumnMeta{Name: h, Kind: kinds[i]}
	}
	NormalizeColumnNames(columns)
	for i := range columns {
		columns[i].SQLType = SQLType(columns[i].Kind)
	}

	data := TableData{
		TableName: GenerateTableName(filename, time.Now()),
		Columns:   columns,
		Rows:      rows,
	}

	if err := s.store.CreateTableIfAbsent(ctx, data.TableName, data.Columns); err != nil {
		logger.Error("create table failed", "table", data.TableName, "error", err)
		return nil, err
	}

	res, err := s.store.InsertRows(ctx, data.TableName, data.Columns, data.Rows)
	if err != nil {
		logger.Error("insert aborted",
			"table", data.TableName,
			"inserted", res.Inserted,
			"failed_row", res.FailedRow,
			"error", err,
		)
		return nil, err
	}

	logger.Info("import complete",
		"table", data.TableName,
		"columns", len(data.Columns),
		"rows_inserted", res.Inserted,
	)

	return &ImportResult{
		TableName:    data.TableName,
		Columns:      data.Columns,
		RowsInserted: res.Inserted,
	}, nil
}

// extension returns the lower-cased filename extension without the dot, or
// an empty string when there is none.
func extension(filename string) string {
	dot := strings.LastIndex(filename, ".")
	if dot == -1 || dot == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[dot+1:])
}

// asClientFault rewraps extraction errors as BadRequestError so the
// transport layer reports them with a client-fault status.
func asClientFault(err error) error {
	var malformed *parser.MalformedInputError
	if errors.As(err, &malformed) {
		return &BadRequestError{Reason: malformed.Reason}
	}
	var badReq *BadRequestError
	if errors.As(err, &badReq) {
		return err
	}
	return &BadRequestError{Reason: err.Error()}
}
