// Package error defines domain-specific errors for the SpendLens application.
package error

import "errors"

// Categorization domain errors.
var (
	// ErrRuleNotFound is returned when a categorization rule is not found.
	ErrRuleNotFound = errors.New("categorization rule not found")

	// ErrDuplicateRule is returned when a rule with the same learning key
	// already exists for the user.
	ErrDuplicateRule = errors.New("a rule with this pattern already exists")

	// ErrEmptyPattern is returned when a pattern rule is created with an empty pattern.
	ErrEmptyPattern = errors.New("pattern is required")

	// ErrInvalidMatchMode is returned when the match mode is not one of
	// contains, starts_with or exact.
	ErrInvalidMatchMode = errors.New("invalid match mode")

	// ErrInvalidCategorizationOption is returned when the manual
	// categorization option is unknown.
	ErrInvalidCategorizationOption = errors.New("invalid categorization option")

	// ErrCategoryRequired is returned when a manual categorization omits the
	// category on a transaction that is neither a transfer nor income.
	ErrCategoryRequired = errors.New("category is required")

	// ErrNotAuthorizedToModifyRule is returned when a user is not authorized
	// to modify a rule.
	ErrNotAuthorizedToModifyRule = errors.New("not authorized to modify rule")

	// ErrPatternTooLong is returned when the pattern exceeds the maximum length.
	ErrPatternTooLong = errors.New("pattern too long")
)

// CategorizationErrorCode defines error codes for categorization errors.
// Format: CTZ-XXYYYY where XX is category and YYYY is specific error.
type CategorizationErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeEmptyPattern          CategorizationErrorCode = "CTZ-010001"
	ErrCodeInvalidMatchMode      CategorizationErrorCode = "CTZ-010002"
	ErrCodePatternTooLong        CategorizationErrorCode = "CTZ-010003"
	ErrCodeInvalidOption         CategorizationErrorCode = "CTZ-010004"
	ErrCodeCategoryRequired      CategorizationErrorCode = "CTZ-010005"
	ErrCodeCategoryNotFoundRule  CategorizationErrorCode = "CTZ-010006"

	// Conflict errors (02XXXX)
	ErrCodeDuplicateRule CategorizationErrorCode = "CTZ-020001"

	// Lookup/authorization errors (03XXXX)
	ErrCodeRuleNotFound      CategorizationErrorCode = "CTZ-030001"
	ErrCodeNotAuthorizedRule CategorizationErrorCode = "CTZ-030002"
)

// CategorizationError represents a categorization error with code and message.
type CategorizationError struct {
	Code    CategorizationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CategorizationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CategorizationError) Unwrap() error {
	return e.Err
}

// NewCategorizationError creates a new CategorizationError with the given code and message.
func NewCategorizationError(code CategorizationErrorCode, message string, err error) *CategorizationError {
	return &CategorizationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
