package jtexpress

import (
	"github.com/nilecart/jtexpress/pkg/shipping"
)

// OrderDataValidator performs pre-flight structural checks on order input
// before any network call.
type OrderDataValidator struct{}

// NewOrderDataValidator creates a validator.
func NewOrderDataValidator() *OrderDataValidator {
	return &OrderDataValidator{}
}

// Validate fails fast when a required order section is missing or empty.
func (v *OrderDataValidator) Validate(data *shipping.OrderData) error {
	if err := v.ValidateShippingAddress(data); err != nil {
		return err
	}
	return v.ValidateOrderItems(data)
}

// ValidateShippingAddress checks the shipping-address section is present.
func (v *OrderDataValidator) ValidateShippingAddress(data *shipping.OrderData) error {
	if data == nil || isEmptyAddress(data.ShippingAddress) {
		return shipping.ErrMissingShippingAddress
	}
	return nil
}

// ValidateOrderItems checks the order-items section is present.
func (v *OrderDataValidator) ValidateOrderItems(data *shipping.OrderData) error {
	if data == nil || len(data.Items) == 0 {
		return shipping.ErrMissingOrderItems
	}
	return nil
}

// ValidateOptional applies stricter range checks on physical dimensions.
// It is not invoked by Validate; callers opt in.
func (v *OrderDataValidator) ValidateOptional(data *shipping.OrderData) error {
	if data == nil {
		return nil
	}
	for _, field := range []string{"weight", "length", "width", "height"} {
		raw, ok := data.Overrides[field]
		if !ok {
			continue
		}
		if floatValue(raw, 0) < 0 {
			return &shipping.InvalidOrderError{
				Field:   field,
				Message: field + " must be positive",
			}
		}
	}
	return nil
}

func isEmptyAddress(addr any) bool {
	switch v := addr.(type) {
	case nil:
		return true
	case *shipping.Address:
		return v == nil
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}
