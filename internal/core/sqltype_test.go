package core

import "testing"

func TestSQLType(t *testing.T) {
	tests := []struct {
		kind CellKind
		want string
	}{
		{KindInt, "BIGINT"},
		{KindNumeric, "NUMERIC"},
		{KindBool, "BOOLEAN"},
		{KindDate, "DATE"},
		{KindText, "VARCHAR(255)"},
		{CellKind(99), "VARCHAR(255)"}, // unknown kinds get the safe default
	}

	for _, tt := range tests {
		if got := SQLType(tt.kind); got != tt.want {
			t.Errorf("SQLType(%v) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
