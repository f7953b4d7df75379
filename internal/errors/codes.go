// Package errors provides structured error handling for henkaiki.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: IO errors (filesystem)
//   - 4XX: Validation and lookup errors
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates filesystem I/O errors.
	CategoryIO Category = "IO"
	// CategoryValidation indicates validation and lookup errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"

	// IO errors (200-299)
	ErrCodeSourceDirUnreadable = "ERR_201_SOURCE_DIR_UNREADABLE"
	ErrCodeArticleDirMissing   = "ERR_202_ARTICLE_DIR_MISSING"
	ErrCodeMarkdownMissing     = "ERR_203_MARKDOWN_MISSING"

	// Validation errors (400-499)
	ErrCodeMalformedMetainfo = "ERR_401_MALFORMED_METAINFO"
	ErrCodeArticleNotFound   = "ERR_402_ARTICLE_NOT_FOUND"
	ErrCodePageOutOfRange    = "ERR_403_PAGE_OUT_OF_RANGE"

	// Internal errors (500-599)
	ErrCodeInternal = "ERR_501_INTERNAL"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Extract the leading digit of the numeric portion
	// (e.g., "2" from "ERR_201_ARTICLE_DIR_MISSING").
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeSourceDirUnreadable:
		// The index keeps its previous contents, but the rebuild itself failed.
		return SeverityFatal
	case ErrCodeMalformedMetainfo:
		// Skippable during bulk scan; callers decide whether to surface it.
		return SeverityWarning
	}
	return SeverityError
}
