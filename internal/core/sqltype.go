package core

// SQLType maps an inferred cell kind to its Postgres column type keyword.
// The mapping is total: anything unrecognized lands on VARCHAR(255), the
// safe default, so schema generation never errors.
func SQLType(kind CellKind) string {
	switch kind {
	case KindInt:
		return "BIGINT"
	case KindNumeric:
		return "NUMERIC"
	case KindBool:
		return "BOOLEAN"
	case KindDate:
		return "DATE"
	case KindText:
		return "VARCHAR(255)"
	default:
		return "VARCHAR(255)"
	}
}
