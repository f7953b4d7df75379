package errors

import (
	"fmt"
)

// Error is the structured error type for henkaiki.
// It provides context for error handling, logging, and API mapping.
type Error struct {
	// Code is the unique error code (e.g., "ERR_402_ARTICLE_NOT_FOUND").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, Validation, Internal).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with Error.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *Error) WithDetail(key, value string) *Error {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// New creates a new Error with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Newf creates a new Error with a formatted message.
func Newf(code string, cause error, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...), cause)
}

// Wrap creates an Error from an existing error.
// The error's message becomes the Error message.
func Wrap(code string, err error) *Error {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// NotFound creates an article-not-found error for the given id.
func NotFound(id int32) *Error {
	return Newf(ErrCodeArticleNotFound, nil, "article %d not found in index", id)
}

// PageOutOfRange creates a pagination error for the given page request.
func PageOutOfRange(page, totalPages int) *Error {
	return Newf(ErrCodePageOutOfRange, nil, "page %d out of range (total pages: %d)", page, totalPages)
}

// GetCode extracts the error code from an Error.
// Returns empty string if not an Error.
func GetCode(err error) string {
	if he, ok := err.(*Error); ok {
		return he.Code
	}
	return ""
}

// GetCategory extracts the category from an Error.
// Returns empty string if not an Error.
func GetCategory(err error) Category {
	if he, ok := err.(*Error); ok {
		return he.Category
	}
	return ""
}

// HasCode reports whether err is an Error carrying the given code,
// checking the whole unwrap chain.
func HasCode(err error, code string) bool {
	for err != nil {
		if he, ok := err.(*Error); ok && he.Code == code {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// IsFatal checks if an error has fatal severity.
// Fatal errors should abort the current operation.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if he, ok := err.(*Error); ok {
		return he.Severity == SeverityFatal
	}
	return false
}
