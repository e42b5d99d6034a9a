package apperrors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
)

// ErrorType represents different types of errors
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeRestricted ErrorType = "restricted"
	ErrorTypeStorage    ErrorType = "storage"
	ErrorTypeExternal   ErrorType = "external_api"
	ErrorTypeInternal   ErrorType = "internal"
)

// AppError represents an application error with additional context
type AppError struct {
	Type     ErrorType
	Message  string
	Code     string
	Internal error
	Context  map[string]interface{}
	Source   string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the internal error
func (e *AppError) Unwrap() error {
	return e.Internal
}

// Is checks if the error matches the target
func (e *AppError) Is(target error) bool {
	if t, ok := target.(*AppError); ok {
		return e.Type == t.Type && e.Code == t.Code
	}
	return errors.Is(e.Internal, target)
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// LogFields returns structured logging fields
func (e *AppError) LogFields() []interface{} {
	fields := []interface{}{
		"error_type", e.Type,
		"error_code", e.Code,
		"error_message", e.Message,
		"source", e.Source,
	}

	if e.Internal != nil {
		fields = append(fields, "internal_error", e.Internal.Error())
	}

	for k, v := range e.Context {
		fields = append(fields, k, v)
	}

	return fields
}

// New creates a new AppError
func New(errorType ErrorType, code, message string) *AppError {
	_, file, line, _ := runtime.Caller(1)
	source := fmt.Sprintf("%s:%d", file, line)

	return &AppError{
		Type:    errorType,
		Code:    code,
		Message: message,
		Source:  source,
		Context: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error into AppError
func Wrap(err error, errorType ErrorType, code, message string) *AppError {
	_, file, line, _ := runtime.Caller(1)
	source := fmt.Sprintf("%s:%d", file, line)

	return &AppError{
		Type:     errorType,
		Code:     code,
		Message:  message,
		Internal: err,
		Source:   source,
		Context:  make(map[string]interface{}),
	}
}

// Handler provides error handling strategies
type Handler struct {
	logger *slog.Logger
}

// NewHandler creates a new error handler
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle processes an error according to its type
func (h *Handler) Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		h.handleAppError(ctx, appErr)
	} else {
		h.logger.ErrorContext(ctx, "Unhandled error", "error", err.Error())
	}
}

func (h *Handler) handleAppError(ctx context.Context, err *AppError) {
	switch err.Type {
	case ErrorTypeValidation, ErrorTypeRestricted:
		h.logger.WarnContext(ctx, "Rejected request", err.LogFields()...)
	case ErrorTypeStorage, ErrorTypeExternal, ErrorTypeInternal:
		h.logger.ErrorContext(ctx, "Critical error", err.LogFields()...)
	default:
		h.logger.ErrorContext(ctx, "Unknown error type", err.LogFields()...)
	}
}

// Predefined errors
var (
	ErrMalformedInput   = New(ErrorTypeValidation, "MALFORMED_INPUT", "Input could not be parsed")
	ErrRestrictedWindow = New(ErrorTypeRestricted, "RESTRICTED_WINDOW", "Logging is closed for the day")
	ErrStorage          = New(ErrorTypeStorage, "STORAGE", "Storage operation failed")
)

// NewMalformedInputError creates a validation error for unparseable user input
func NewMalformedInputError(message string) *AppError {
	return New(ErrorTypeValidation, "MALFORMED_INPUT", message)
}

// NewRestrictedWindowError creates a rejection for adds during quiet hours
func NewRestrictedWindowError(hour int) *AppError {
	return New(ErrorTypeRestricted, "RESTRICTED_WINDOW", "Logging is closed for the day").
		WithContext("hour", hour)
}

// NewStorageError wraps a backing-store failure
func NewStorageError(err error) *AppError {
	return Wrap(err, ErrorTypeStorage, "STORAGE", "Storage operation failed")
}

// IsMalformedInput reports whether err is a malformed-input rejection
func IsMalformedInput(err error) bool {
	return errors.Is(err, ErrMalformedInput)
}

// IsRestrictedWindow reports whether err is a quiet-window rejection
func IsRestrictedWindow(err error) bool {
	return errors.Is(err, ErrRestrictedWindow)
}

// IsStorage reports whether err is a backing-store failure
func IsStorage(err error) bool {
	return errors.Is(err, ErrStorage)
}
