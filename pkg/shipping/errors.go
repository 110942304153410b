package shipping

import (
	"errors"
	"fmt"
)

// ProviderError represents a classified failure from a shipping provider:
// a rejected request, a transport failure, or any unexpected error wrapped
// at the adapter boundary.
type ProviderError struct {
	Provider   string
	Code       string
	Message    string
	StatusCode int
	Response   map[string]any
	Cause      error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s error (%s): %s: %v", e.Provider, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error (%s): %s", e.Provider, e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is: two provider errors match on Code.
func (e *ProviderError) Is(target error) bool {
	t, ok := target.(*ProviderError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewProviderError creates a new ProviderError.
func NewProviderError(provider, code, message string) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Code:     code,
		Message:  message,
	}
}

// WithCause adds a cause to the error.
func (e *ProviderError) WithCause(err error) *ProviderError {
	e.Cause = err
	return e
}

// WithStatusCode adds an HTTP status code to the error.
func (e *ProviderError) WithStatusCode(code int) *ProviderError {
	e.StatusCode = code
	return e
}

// WithResponse attaches the decoded provider body to the error.
func (e *ProviderError) WithResponse(data map[string]any) *ProviderError {
	e.Response = data
	return e
}

// InvalidOrderError reports order input that failed pre-flight validation.
// It is detected locally, before any network call.
type InvalidOrderError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *InvalidOrderError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid order data field %q: %s", e.Field, e.Message)
	}
	return e.Message
}

// Sentinel errors for the structural validation failures.
var (
	// ErrMissingShippingAddress indicates the order has no shipping address.
	ErrMissingShippingAddress = errors.New("shipping address is required for order creation")

	// ErrMissingOrderItems indicates the order has no line items.
	ErrMissingOrderItems = errors.New("order items are required for order creation")
)

// IsInvalidOrder reports whether err is a validation failure.
func IsInvalidOrder(err error) bool {
	var invalid *InvalidOrderError
	return errors.As(err, &invalid) ||
		errors.Is(err, ErrMissingShippingAddress) ||
		errors.Is(err, ErrMissingOrderItems)
}
