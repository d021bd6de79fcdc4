// Package apierror provides the standardized error envelope for the API.
// Every 4xx/5xx response goes through this package so clients always see the
// same shape and internal details (stack traces, payload contents) never leak.
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Error implements the error interface so an APIError can travel through
// gin's error chain.
func (e *APIError) Error() string {
	return e.Detail
}

// ValidationError wraps per-field validation failures.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validación", Fields: fields}
}
