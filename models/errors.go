package models

import "errors"

// Error codes used in API responses and internal error handling.
const (
	ErrCodeNoActiveTab     = "NO_ACTIVE_TAB"
	ErrCodeWrongSite       = "WRONG_SITE"
	ErrCodeExtractionEmpty = "EXTRACTION_EMPTY"
	ErrCodeValidation      = "VALIDATION_FAILED"
	ErrCodeSubmitFailed    = "SUBMIT_FAILED"
	ErrCodeStorage         = "STORAGE_FAILED"
	ErrCodeInvalidInput    = "INVALID_INPUT"
	ErrCodeUnknownField    = "UNKNOWN_FIELD"
	ErrCodeRateLimited     = "RATE_LIMITED"
	ErrCodeConflict        = "CONFLICT"
	ErrCodeBrowser         = "BROWSER_FAILED"
	ErrCodeInternal        = "INTERNAL_ERROR"
)

// ErrorDetail is the structured error in API responses.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AppError is a failure the form can report to the user. Message is the
// text shown in the status line or API response; Err keeps the cause for
// logs.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Code + ": " + e.Message
	}
	return e.Code + ": " + e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error { return e.Err }

// Is matches any *AppError with the same code, so a sentinel such as
// NewAppError(ErrCodeConflict, "...", nil) works with errors.Is whatever
// message or cause the returned error carries.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// ToDetail converts an internal error to an API-facing ErrorDetail.
func (e *AppError) ToDetail() *ErrorDetail {
	return &ErrorDetail{Code: e.Code, Message: e.Message}
}

// AsAppError returns the first *AppError in err's chain. Any other error
// is wrapped as ErrCodeInternal. It returns nil for a nil err.
func AsAppError(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewAppError(ErrCodeInternal, err.Error(), err)
}

// HasCode reports whether err's chain holds an *AppError with code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
