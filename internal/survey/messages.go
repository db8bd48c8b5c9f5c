package survey

import (
	"context"
	"errors"
	"fmt"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorKind maps a sentinel error to its user message.
// The first kind matched with errors.Is wins.
type errorKind struct {
	target error
	msg    UserMessage
}

var errorKinds = []errorKind{
	{
		target: ErrSourceUnavailable,
		msg: UserMessage{
			Message: "Input file cannot be opened or read",
			Action:  "Check the file path and permissions",
			Code:    "SRC001",
		},
	},
	{
		target: ErrEmptyDataset,
		msg: UserMessage{
			Message: "Input file has no data rows",
			Action:  "Provide a header line followed by at least one data row",
			Code:    "DATA001",
		},
	},
	{
		target: ErrCapacityExceeded,
		msg: UserMessage{
			Message: "Input file has more rows than the configured limit",
			Action:  "Raise the row limit with --max-rows or SURVEY_MAX_ROWS",
			Code:    "DATA002",
		},
	},
	{
		target: ErrNoPopulation,
		msg: UserMessage{
			Message: "People counts sum to zero",
			Action:  "Check the people_count column",
			Code:    "EST001",
		},
	},
	{
		target: ErrInsufficientSample,
		msg: UserMessage{
			Message: "At least two districts are needed to estimate variance",
			Action:  "Add more sampled districts to the input file",
			Code:    "EST002",
		},
	},
	{
		target: ErrInvalidFrame,
		msg: UserMessage{
			Message: "Population constants are invalid",
			Action:  "Total districts and the z-score must both be positive",
			Code:    "EST003",
		},
	},
	{
		target: ErrInvalidConfig,
		msg: UserMessage{
			Message: "Configuration is invalid",
			Action:  "Check environment variables, flags and the frame file",
			Code:    "CFG001",
		},
	},
	{
		target: context.Canceled,
		msg: UserMessage{
			Message: "Run was cancelled",
			Action:  "Start the run again when ready",
			Code:    "RUN001",
		},
	},
}

var (
	missingFieldsMessage = UserMessage{
		Message: "Row is malformed or has fewer than 3 fields",
		Action:  "Each data line needs district_id,people_count,total_spend",
		Code:    "ROW001",
	}
	invalidCellMessage = UserMessage{
		Message: "Row contains a non-numeric value",
		Action:  "Fix the value or rerun with --lenient to read numeric prefixes",
		Code:    "ROW002",
	}
)

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Rerun with --log-level debug and check the log output",
	Code:    "ERR000",
}

// MapError converts an error to a user-friendly message by matching the
// sentinel errors it wraps. Unknown errors map to ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	if errors.Is(err, ErrMalformedRow) {
		var le *LoadError
		if errors.As(err, &le) && le.Column != "" {
			return invalidCellMessage
		}
		return missingFieldsMessage
	}

	for _, k := range errorKinds {
		if errors.Is(err, k.target) {
			return k.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing returns true if the error maps to a known message.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
