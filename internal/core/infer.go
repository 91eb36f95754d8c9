package core

// infer.go decides one scalar kind per column by scanning every non-blank
// value. Each candidate kind is tracked with a still-possible flag that only
// ever flips from possible to impossible, so the scan is order-independent.

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const isoDateLayout = "2006-01-02"

// decimalRegex matches arbitrary-precision decimal syntax: optional sign,
// digits with an optional fraction, optional exponent.
var decimalRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// InferColumnKinds returns one CellKind per column, inferred independently
// from all non-blank values at that column index. Rows shorter than
// columnCount simply contribute nothing to the missing positions.
func InferColumnKinds(rows [][]string, columnCount int) []CellKind {
	kinds := make([]CellKind, columnCount)
	for col := 0; col < columnCount; col++ {
		kinds[col] = inferColumnKind(rows, col)
	}
	return kinds
}

func inferColumnKind(rows [][]string, col int) CellKind {
	intPossible := true
	numericPossible := true
	boolPossible := true
	datePossible := true
	hasValue := false

	for _, row := range rows {
		if col >= len(row) {
			continue
		}
		v := strings.TrimSpace(row[col])
		if v == "" {
			continue
		}
		hasValue = true

		if intPossible && !isInteger(v) {
			intPossible = false
		}
		if numericPossible && !isDecimal(v) {
			numericPossible = false
		}
		if boolPossible && !isBoolean(v) {
			boolPossible = false
		}
		if datePossible && !isISODate(v) {
			datePossible = false
		}
	}

	// A column with no non-blank value at all is text, not unknown.
	if !hasValue {
		return KindText
	}

	// Integer is checked before numeric so that all-integer columns stay
	// BIGINT; a column mixing integers and decimals still lands on NUMERIC
	// because the integer flag drops at the first fractional value.
	switch {
	case intPossible:
		return KindInt
	case numericPossible:
		return KindNumeric
	case datePossible:
		return KindDate
	case boolPossible:
		return KindBool
	default:
		return KindText
	}
}

func isInteger(v string) bool {
	_, err := strconv.ParseInt(v, 10, 64)
	return err == nil
}

func isDecimal(v string) bool {
	return decimalRegex.MatchString(v)
}

func isBoolean(v string) bool {
	return strings.EqualFold(v, "true") || strings.EqualFold(v, "false")
}

func isISODate(v string) bool {
	_, err := time.Parse(isoDateLayout, v)
	return err == nil
}
