// Package errors provides the unified error definitions.
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode identifies an error class.
type ErrorCode string

// Predefined error codes.
const (
	// Generic errors (1xxx)
	CodeSuccess            ErrorCode = "0"
	CodeUnknown            ErrorCode = "1000"
	CodeInvalidParam       ErrorCode = "1001"
	CodeNotFound           ErrorCode = "1004"
	CodeConflict           ErrorCode = "1005"
	CodeInternalError      ErrorCode = "1007"
	CodeServiceUnavailable ErrorCode = "1008"

	// Resource errors (2xxx)
	CodeUnknownGenre       ErrorCode = "2001"
	CodeCharacterNotFound  ErrorCode = "2002"
	CodeCharacterExists    ErrorCode = "2003"
	CodeStoryNotFound      ErrorCode = "2004"
	CodeChapterNotFound    ErrorCode = "2005"
	CodeChapterExists      ErrorCode = "2006"
	CodePlotThreadNotFound ErrorCode = "2007"
	CodeSceneNotFound      ErrorCode = "2008"

	// Generation errors (3xxx)
	CodeInferenceFailed ErrorCode = "3001"
	CodeEngineNotReady  ErrorCode = "3002"

	// Persistence errors (4xxx)
	CodePersistenceCorrupt ErrorCode = "4001"
	CodePersistenceFailed  ErrorCode = "4002"
)

// AppError is the application error carried across layers.
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail attaches caller-facing detail.
func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail
	return e
}

// WithError attaches the underlying error.
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// New creates an application error.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Newf creates an application error with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Err:        err,
	}
}

// codeToHTTPStatus maps an error code to an HTTP status.
func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeSuccess:
		return http.StatusOK
	case CodeInvalidParam, CodeUnknownGenre:
		return http.StatusBadRequest
	case CodeNotFound, CodeCharacterNotFound, CodeStoryNotFound, CodeChapterNotFound, CodePlotThreadNotFound, CodeSceneNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeCharacterExists, CodeChapterExists:
		return http.StatusConflict
	case CodeInferenceFailed:
		return http.StatusBadGateway
	case CodeEngineNotReady, CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Predefined errors.
var (
	ErrInvalidParam       = New(CodeInvalidParam, "invalid parameter")
	ErrNotFound           = New(CodeNotFound, "resource not found")
	ErrConflict           = New(CodeConflict, "resource conflict")
	ErrInternalError      = New(CodeInternalError, "internal server error")
	ErrServiceUnavailable = New(CodeServiceUnavailable, "service unavailable")

	ErrUnknownGenre      = New(CodeUnknownGenre, "unknown genre")
	ErrCharacterNotFound = New(CodeCharacterNotFound, "character not found")
	ErrCharacterExists   = New(CodeCharacterExists, "character already exists")
	ErrStoryNotFound     = New(CodeStoryNotFound, "story not found")
	ErrChapterNotFound   = New(CodeChapterNotFound, "chapter not found")

	ErrInferenceFailed = New(CodeInferenceFailed, "inference failed")
	ErrEngineNotReady  = New(CodeEngineNotReady, "inference engine not ready")
)

// IsAppError reports whether err is an AppError.
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// AsAppError converts an error to an AppError.
func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Wrap(err, CodeUnknown, "unknown error")
}

// IsCode reports whether err is an AppError with the given code.
func IsCode(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}
