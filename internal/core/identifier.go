package core

// identifier.go normalizes raw header and file names into safe SQL
// identifiers. Column and table names are interpolated into generated DDL
// and INSERT statements (values are always bound positionally), so this
// normalization is a correctness and injection-safety requirement, not
// cosmetics.

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
)

var unsafeIdentChars = regexp.MustCompile(`[^a-z0-9_]`)

// fallbackTableName is used when a filename normalizes to nothing.
const fallbackTableName = "imported_table"

// NormalizeIdentifier lowers the name, replaces every character outside
// [a-z0-9_] with an underscore, and prefixes names that start with a digit.
// A name that normalizes to nothing gets a time-based fallback. The
// transformation is idempotent for any non-degenerate input.
func NormalizeIdentifier(raw string) string {
	normalized := unsafeIdentChars.ReplaceAllString(strings.ToLower(raw), "_")
	if normalized == "" {
		normalized = fmt.Sprintf("col_%d", time.Now().UnixMilli())
	}

	if unicode.IsDigit(rune(normalized[0])) {
		normalized = "c_" + normalized
	}

	return normalized
}

// NormalizeColumnNames normalizes every column name exactly once and
// deduplicates collisions with _2, _3, ... suffixes so the resulting set is
// unique. The returned names are stored on the ColumnMeta and reused
// verbatim for both table creation and inserts.
func NormalizeColumnNames(columns []ColumnMeta) {
	seen := make(map[string]bool, len(columns))
	for i := range columns {
		name := NormalizeIdentifier(columns[i].Name)
		if seen[name] {
			for n := 2; ; n++ {
				candidate := fmt.Sprintf("%s_%d", name, n)
				if !seen[candidate] {
					name = candidate
					break
				}
			}
		}
		seen[name] = true
		columns[i].Name = name
	}
}

// GenerateTableName derives a table name from the uploaded file's base name:
// extension stripped, lower-cased, unsafe characters replaced, empty result
// replaced with a fixed fallback, then suffixed with a second-resolution
// timestamp so repeated imports of the same file do not collide.
func GenerateTableName(filename string, now time.Time) string {
	base := filename
	if dot := strings.LastIndex(filename, "."); dot != -1 {
		base = filename[:dot]
	}

	normalized := unsafeIdentChars.ReplaceAllString(strings.ToLower(base), "_")
	if strings.Trim(normalized, "_") == "" {
		normalized = fallbackTableName
	}
	if unicode.IsDigit(rune(normalized[0])) {
		normalized = "t_" + normalized
	}

	return normalized + "_" + now.Format("20060102_150405")
}
