// Package shipping provides an abstraction layer for parcel shipping providers.
package shipping

import (
	"context"
)

// Service defines the operations a shipping provider integration must implement.
// It is a substitution seam, not a routing layer: one implementation talks to
// exactly one provider.
type Service interface {
	// Name returns the provider identifier (e.g., "jtexpress").
	Name() string

	// CreateOrder registers a new shipping order with the provider.
	CreateOrder(ctx context.Context, data *OrderData) (*Result, error)

	// UpdateOrder re-submits an existing order with updated data.
	UpdateOrder(ctx context.Context, data *OrderData) (*Result, error)

	// CancelOrder cancels an order by its transaction logistics id.
	// An empty reason falls back to the provider-facing default.
	CancelOrder(ctx context.Context, txLogisticID, reason string) (*Result, error)

	// TrackOrder retrieves tracking events for a waybill code.
	TrackOrder(ctx context.Context, billCode string) (*Result, error)

	// GetOrders retrieves order details for one or more serial numbers.
	// The outgoing payload always carries a list, even for a single serial.
	GetOrders(ctx context.Context, serialNumbers ...string) (*Result, error)

	// PrintOrder generates a printable waybill for a bill code.
	PrintOrder(ctx context.Context, billCode string, opts *PrintOptions) (*Result, error)
}

// PrintOptions carries the optional waybill print parameters.
// Zero values select the provider defaults (size "0", code 0).
type PrintOptions struct {
	PrintSize string
	PrintCode int
}
