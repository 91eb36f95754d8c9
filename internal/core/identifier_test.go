package core

import (
	"strings"
	"testing"
	"time"
)

func TestNormalizeIdentifier(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "lower-cases",
			raw:  "ClientID",
			want: "clientid",
		},
		{
			name: "spaces become underscores",
			raw:  "client FIO",
			want: "client_fio",
		},
		{
			name: "punctuation becomes underscores",
			raw:  "price ($)",
			want: "price____",
		},
		{
			name: "already safe name unchanged",
			raw:  "client_income",
			want: "client_income",
		},
		{
			name: "leading digit gets a prefix",
			raw:  "2024_sales",
			want: "c_2024_sales",
		},
		{
			name: "cyrillic becomes underscores",
			raw:  "имя",
			want: "___",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeIdentifier(tt.raw)
			if got != tt.want {
				t.Errorf("NormalizeIdentifier(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdentifierIdempotent(t *testing.T) {
	for _, raw := range []string{"Client ID", "price ($)", "2024_sales", "ok_name"} {
		once := NormalizeIdentifier(raw)
		twice := NormalizeIdentifier(once)
		if once != twice {
			t.Errorf("normalize(%q): %q then %q, not idempotent", raw, once, twice)
		}
	}
}

func TestNormalizeIdentifierBlankFallback(t *testing.T) {
	got := NormalizeIdentifier("")
	if !strings.HasPrefix(got, "col_") {
		t.Errorf("blank name normalized to %q, want col_ fallback", got)
	}
}

func TestNormalizeColumnNames(t *testing.T) {
	columns := []ColumnMeta{
		{Name: "Client ID"},
		{Name: "client id"}, // collides after normalization
		{Name: "Amount"},
		{Name: "client_id"}, // collides again
	}

	NormalizeColumnNames(columns)

	want := []string{"client_id", "client_id_2", "amount", "client_id_3"}
	for i, w := range want {
		if columns[i].Name != w {
			t.Errorf("column %d = %q, want %q", i, columns[i].Name, w)
		}
	}
}

func TestGenerateTableName(t *testing.T) {
	now := time.Date(2024, 5, 17, 9, 30, 45, 0, time.UTC)

	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{
			name:     "simple csv",
			filename: "Sales Report.csv",
			want:     "sales_report_20240517_093045",
		},
		{
			name:     "extension stripped only once",
			filename: "data.backup.xlsx",
			want:     "data_backup_20240517_093045",
		},
		{
			name:     "no extension",
			filename: "export",
			want:     "export_20240517_093045",
		},
		{
			name:     "nothing usable falls back",
			filename: "###.csv",
			want:     "imported_table_20240517_093045",
		},
		{
			name:     "leading digit gets a prefix",
			filename: "2024.csv",
			want:     "t_2024_20240517_093045",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateTableName(tt.filename, now)
			if got != tt.want {
				t.Errorf("GenerateTableName(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}
