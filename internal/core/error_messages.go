// Package core provides the product table domain logic.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// Error codes are grouped by category:
//
// # Referential Errors (REF001-REF099)
//
//	REF001 - Missing category: A product references a category that does not exist
//	         Action: Fix the categoryId in the product fixtures
//	         Sentinel: ErrMissingCategory
//
//	REF002 - Missing owner: A category references a user that does not exist
//	         Action: Fix the ownerId in the category fixtures
//	         Sentinel: ErrMissingOwner
//
//	REF003 - Duplicate id: Two records in the same collection share an id
//	         Action: Make ids unique within each fixture file
//	         Sentinel: ErrDuplicateID
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Unknown column: The requested sort column does not exist
//	         Action: Sort by id, name, category or user
//	         Sentinel: ErrUnknownColumn
//
//	VAL002 - Invalid query: The query string could not be decoded
//	         Action: Check the query parameters
//	         Patterns: "invalid query"
//
// # Data Errors (DATA001-DATA099)
//
//	DATA001 - Fixture missing: A fixture file could not be read
//	          Patterns: "no such file", "fixture not found"
//
//	DATA002 - Fixture invalid: A fixture file is not valid JSON
//	          Patterns: "decode fixture"
//
//	DATA003 - Database unavailable: Fixtures could not be read from PostgreSQL
//	          Patterns: "connection refused", "load postgres"
//
// # Session Errors (SES001-SES099)
//
//	SES001 - Session expired: The view session was not found
//	         Action: Reload the page to start a new session
//	         Sentinel: ErrSessionNotFound
//
// # Request Errors
//
//	RATE001 - Rate limited: Too many requests
//	AUTH001 - Invalid API key
//	REQ001  - Request timeout: "context deadline exceeded"
//	REQ002  - Request cancelled: "context canceled"
//
// # Default Error (ERR000)
//
// Fallback when no sentinel or pattern matches.
//
// # Matching
//
// Sentinels are matched first with errors.Is, so wrapped errors resolve to
// their root cause. Remaining errors are matched case-insensitively by
// substring; the first matching pattern wins.
package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingCategory = errors.New("missing category")
	ErrMissingOwner    = errors.New("missing category owner")
	ErrDuplicateID     = errors.New("duplicate id")
	ErrUnknownColumn   = errors.New("unknown sort column")
	ErrSessionNotFound = errors.New("session not found")
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type sentinelMessage struct {
	err error
	msg UserMessage
}

// sentinelMessages are checked with errors.Is before any pattern.
var sentinelMessages = []sentinelMessage{
	{
		err: ErrMissingCategory,
		msg: UserMessage{
			Message: "A product references a category that does not exist",
			Action:  "Fix the categoryId in the product fixtures",
			Code:    "REF001",
		},
	},
	{
		err: ErrMissingOwner,
		msg: UserMessage{
			Message: "A category references a user that does not exist",
			Action:  "Fix the ownerId in the category fixtures",
			Code:    "REF002",
		},
	},
	{
		err: ErrDuplicateID,
		msg: UserMessage{
			Message: "Two records share the same id",
			Action:  "Make ids unique within each fixture file",
			Code:    "REF003",
		},
	},
	{
		err: ErrUnknownColumn,
		msg: UserMessage{
			Message: "The requested sort column does not exist",
			Action:  "Sort by id, name, category or user",
			Code:    "VAL001",
		},
	},
	{
		err: ErrSessionNotFound,
		msg: UserMessage{
			Message: "Your view session has expired",
			Action:  "Reload the page to start a new session",
			Code:    "SES001",
		},
	},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error text (case-insensitive) to user messages.
// Order matters: more specific patterns come first.
var errorPatterns = []errorPattern{
	{
		pattern: "invalid query",
		msg: UserMessage{
			Message: "The query could not be understood",
			Action:  "Check the query parameters",
			Code:    "VAL002",
		},
	},
	{
		pattern: "no such file",
		msg: UserMessage{
			Message: "A fixture file could not be found",
			Action:  "Check DATA_PATH points at the fixture directory",
			Code:    "DATA001",
		},
	},
	{
		pattern: "fixture not found",
		msg: UserMessage{
			Message: "A fixture file could not be found",
			Action:  "Check DATA_PATH points at the fixture directory",
			Code:    "DATA001",
		},
	},
	{
		pattern: "decode fixture",
		msg: UserMessage{
			Message: "A fixture file is not valid JSON",
			Action:  "Validate the fixture files",
			Code:    "DATA002",
		},
	},
	{
		pattern: "load postgres",
		msg: UserMessage{
			Message: "Product data could not be read from the database",
			Action:  "Check DATABASE_URL and that the tables exist",
			Code:    "DATA003",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DATA003",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
	{
		pattern: "api key",
		msg: UserMessage{
			Message: "Invalid or missing API key",
			Action:  "Send a valid X-API-Key header",
			Code:    "AUTH001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ002",
		},
	},
}

// defaultMessage is returned when no pattern matches.
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error into a user-friendly message.
// Returns an empty UserMessage for nil.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, sm := range sentinelMessages {
		if errors.Is(err, sm.err) {
			return sm.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
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

// IsUserFacing reports whether err maps to a specific message rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
