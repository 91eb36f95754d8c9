package core

// error_messages.go translates technical errors into user-friendly messages
// with stable codes for support reference.
//
// Error codes are grouped by category:
//
//	FILE001 - No file provided in the upload form
//	FILE002 - Empty file
//	FILE003 - Unsupported file extension (only .csv and .xlsx)
//	FILE004 - File too large
//	FILE005 - Unreadable file (I/O failure while extracting)
//
//	VAL001  - Missing header row
//	VAL002  - No data rows
//	VAL003  - Row width does not match the column count
//
//	DB001   - Duplicate key / unique constraint violation
//	DB002   - Unable to connect to database
//	DB003   - Database connection interrupted
//	DB004   - Operation timed out
//	DB005   - Value rejected by the column type
//
//	ERR000  - Fallback for anything unclassified
//
// Patterns are matched case-insensitively with strings.Contains; the first
// match wins, so more specific patterns come before general ones.

import (
	"fmt"
	"strings"
)

// UserMessage is user-facing error information with actionable guidance.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Stable code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// File and upload errors
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Choose a .csv or .xlsx file to import",
			Code:    "FILE001",
		},
	},
	{
		pattern: "file is empty",
		msg: UserMessage{
			Message: "The uploaded file is empty",
			Action:  "Upload a file that contains a header row and data",
			Code:    "FILE002",
		},
	},
	{
		pattern: "unsupported file extension",
		msg: UserMessage{
			Message: "This file format is not supported",
			Action:  "Only .csv and .xlsx files can be imported",
			Code:    "FILE003",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "The file exceeds the maximum upload size",
			Action:  "Split the file into smaller parts and import them separately",
			Code:    "FILE004",
		},
	},
	{
		pattern: "reading the file",
		msg: UserMessage{
			Message: "The file could not be read",
			Action:  "Re-export the file and try the upload again",
			Code:    "FILE005",
		},
	},

	// Extraction and validation errors
	{
		pattern: "header row",
		msg: UserMessage{
			Message: "No header row was found",
			Action:  "Make sure the first populated row contains column names",
			Code:    "VAL001",
		},
	},
	{
		pattern: "data rows",
		msg: UserMessage{
			Message: "The file contains no data rows",
			Action:  "Add at least one row below the header",
			Code:    "VAL002",
		},
	},
	{
		pattern: "values, but",
		msg: UserMessage{
			Message: "A row has a different number of values than the header",
			Action:  "Check the reported row for missing or extra cells",
			Code:    "VAL003",
		},
	},

	// Database errors
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "A duplicate value was rejected by the database",
			Action:  "Review the data for duplicate key values",
			Code:    "DB001",
		},
	},
	{
		pattern: "unique constraint",
		msg: UserMessage{
			Message: "A duplicate value was rejected by the database",
			Action:  "Review the data for duplicate key values",
			Code:    "DB001",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to the database",
			Action:  "Please try again in a few moments",
			Code:    "DB002",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "The database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB003",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "The operation timed out",
			Action:  "Try a smaller file or try again later",
			Code:    "DB004",
		},
	},
	{
		pattern: "invalid input syntax",
		msg: UserMessage{
			Message: "A value was rejected by its column type",
			Action:  "Check that each column holds a single consistent kind of value",
			Code:    "DB005",
		},
	},
}

// MapError converts a technical error into a UserMessage. Unmatched errors
// get the ERR000 fallback; the original text is preserved in the message so
// nothing is silently swallowed.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{Message: "Success", Code: "OK"}
	}

	errText := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errText, ep.pattern) {
			return ep.msg
		}
	}

	return UserMessage{
		Message: fmt.Sprintf("An unexpected error occurred: %s", err.Error()),
		Action:  "Please try again or contact support with this code",
		Code:    "ERR000",
	}
}
