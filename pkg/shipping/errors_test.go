package shipping_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nilecart/jtexpress/pkg/shipping"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderError_Error(t *testing.T) {
	err := shipping.NewProviderError("jtexpress", "121003006", "not printable")
	assert.Equal(t, "jtexpress error (121003006): not printable", err.Error())
}

func TestProviderError_ErrorWithCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := shipping.NewProviderError("TRANSPORT", "", "trackOrder failed").WithCause(cause)

	assert.Contains(t, err.Error(), "trackOrder failed")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestProviderError_Unwrap(t *testing.T) {
	cause := errors.New("timeout")
	err := shipping.NewProviderError("TRANSPORT", "", "createOrder failed").WithCause(cause)

	assert.ErrorIs(t, err, cause)
}

func TestProviderError_IsMatchesOnCode(t *testing.T) {
	a := shipping.NewProviderError("jtexpress", "145003050", "illegal params")
	b := shipping.NewProviderError("other", "145003050", "different message")
	c := shipping.NewProviderError("jtexpress", "121003006", "not printable")

	assert.ErrorIs(t, a, b)
	assert.NotErrorIs(t, a, c)
	assert.NotErrorIs(t, a, errors.New("145003050"))
}

func TestProviderError_Builders(t *testing.T) {
	body := map[string]any{"code": "0"}
	err := shipping.NewProviderError("jtexpress", "0", "rejected").
		WithStatusCode(400).
		WithResponse(body)

	assert.Equal(t, 400, err.StatusCode)
	assert.Equal(t, body, err.Response)
}

func TestInvalidOrderError_Error(t *testing.T) {
	withField := &shipping.InvalidOrderError{Field: "weight", Message: "weight must be positive"}
	assert.Equal(t, `invalid order data field "weight": weight must be positive`, withField.Error())

	bare := &shipping.InvalidOrderError{Message: "invalid JSON body"}
	assert.Equal(t, "invalid JSON body", bare.Error())
}

func TestIsInvalidOrder(t *testing.T) {
	assert.True(t, shipping.IsInvalidOrder(shipping.ErrMissingShippingAddress))
	assert.True(t, shipping.IsInvalidOrder(shipping.ErrMissingOrderItems))
	assert.True(t, shipping.IsInvalidOrder(&shipping.InvalidOrderError{Field: "length", Message: "length must be positive"}))
	assert.True(t, shipping.IsInvalidOrder(fmt.Errorf("validating order: %w", shipping.ErrMissingOrderItems)))

	assert.False(t, shipping.IsInvalidOrder(nil))
	assert.False(t, shipping.IsInvalidOrder(errors.New("boom")))
	assert.False(t, shipping.IsInvalidOrder(shipping.NewProviderError("jtexpress", "0", "rejected")))
}

func TestResult_Err(t *testing.T) {
	success := &shipping.Result{Success: true, StatusCode: 200}
	assert.NoError(t, success.Err())

	failure := &shipping.Result{
		Success:      false,
		StatusCode:   400,
		ErrorMessage: "Order does not exist",
		ErrorCode:    "145003041",
		Data:         map[string]any{"code": "0"},
	}
	err := failure.Err()
	require.Error(t, err)

	var provErr *shipping.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "145003041", provErr.Code)
	assert.Equal(t, "Order does not exist", provErr.Message)
	assert.Equal(t, 400, provErr.StatusCode)
	assert.Equal(t, failure.Data, provErr.Response)
}

func TestResult_ErrDefaultsMessage(t *testing.T) {
	failure := &shipping.Result{Success: false, StatusCode: 500}
	err := failure.Err()
	require.Error(t, err)

	var provErr *shipping.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, "unknown provider error", provErr.Message)
}

func TestResult_ErrNilReceiver(t *testing.T) {
	var r *shipping.Result
	assert.NoError(t, r.Err())
}
