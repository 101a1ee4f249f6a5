package apierrors

import (
	"context"
	"fmt"
	"time"
)

type requestIDKey struct{}

// WithRequestID stores the request ID on a context so errors created from it
// carry the ID back to the client.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext extracts the request ID from context.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// ErrorType represents the category of error.
type ErrorType string

const (
	ErrorTypeNotFound          ErrorType = "NOT_FOUND"
	ErrorTypeValidation        ErrorType = "VALIDATION"
	ErrorTypeDecode            ErrorType = "DECODE_ERROR"
	ErrorTypeDatabaseError     ErrorType = "DATABASE_ERROR"
	ErrorTypeUpstreamDown      ErrorType = "UPSTREAM_UNREACHABLE"
	ErrorTypeUpstreamTimeout   ErrorType = "UPSTREAM_TIMEOUT"
	ErrorTypeUpstreamBadStatus ErrorType = "UPSTREAM_BAD_STATUS"
	ErrorTypeUpstreamMalformed ErrorType = "UPSTREAM_MALFORMED"
	ErrorTypeInternal          ErrorType = "INTERNAL"
)

// Layer represents the application layer where the error occurred.
type Layer string

const (
	LayerRepository     Layer = "repository"
	LayerDomain         Layer = "domain"
	LayerHandler        Layer = "handler"
	LayerInfrastructure Layer = "infrastructure"
)

// APIError represents an error with context and metadata.
type APIError struct {
	Type      ErrorType
	Message   string
	Err       error
	RequestID string
	Layer     Layer
	Timestamp time.Time
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s][%s] %s: %v", e.Layer, e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s][%s] %s", e.Layer, e.Type, e.Message)
}

// Unwrap returns the underlying error.
func (e *APIError) Unwrap() error {
	return e.Err
}

// New creates an APIError, picking up the request ID from ctx if present.
func New(ctx context.Context, layer Layer, errorType ErrorType, message string, err error) *APIError {
	return &APIError{
		Type:      errorType,
		Message:   message,
		Err:       err,
		RequestID: RequestIDFromContext(ctx),
		Layer:     layer,
		Timestamp: time.Now().UTC(),
	}
}
