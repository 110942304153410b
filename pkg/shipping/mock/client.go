// Package mock provides a mock shipping service implementation for testing.
package mock

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/nilecart/jtexpress/pkg/shipping"
)

// Client is a mock shipping service for testing. It returns canned
// successful results shaped like real provider replies.
type Client struct {
	name string

	// FailWith, when set, is returned as the error from every operation.
	FailWith error
}

// New creates a new mock service.
func New(name string) *Client {
	return &Client{name: name}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return c.name
}

// CreateOrder returns a mock successful order creation.
func (c *Client) CreateOrder(ctx context.Context, data *shipping.OrderData) (*shipping.Result, error) {
	if c.FailWith != nil {
		return nil, c.FailWith
	}

	txID := ""
	if data != nil {
		txID = data.ID
	}
	if txID == "" {
		txID = fmt.Sprintf("ORDER%010d", time.Now().UnixNano()%10_000_000_000)
	}
	billCode := fmt.Sprintf("%s-%d", c.name, time.Now().UnixNano())

	return &shipping.Result{
		Success:      true,
		StatusCode:   http.StatusOK,
		Message:      "success",
		WaybillCode:  billCode,
		TxLogisticID: txID,
		SortingCode:  "MOCK01",
		Data: map[string]any{
			"code": "1",
			"msg":  "success",
			"data": map[string]any{
				"billCode":     billCode,
				"txlogisticId": txID,
			},
		},
	}, nil
}

// UpdateOrder returns a mock successful order update.
func (c *Client) UpdateOrder(ctx context.Context, data *shipping.OrderData) (*shipping.Result, error) {
	return c.CreateOrder(ctx, data)
}

// CancelOrder returns a mock successful cancellation.
func (c *Client) CancelOrder(ctx context.Context, txLogisticID, reason string) (*shipping.Result, error) {
	if c.FailWith != nil {
		return nil, c.FailWith
	}

	return &shipping.Result{
		Success:      true,
		StatusCode:   http.StatusOK,
		Message:      "success",
		TxLogisticID: txLogisticID,
		Data: map[string]any{
			"code": "1",
			"msg":  "success",
		},
	}, nil
}

// TrackOrder returns a mock trace with two events.
func (c *Client) TrackOrder(ctx context.Context, billCode string) (*shipping.Result, error) {
	if c.FailWith != nil {
		return nil, c.FailWith
	}

	return &shipping.Result{
		Success:    true,
		StatusCode: http.StatusOK,
		Data: map[string]any{
			"code": "1",
			"msg":  "success",
			"data": []any{
				map[string]any{
					"billCode": billCode,
					"details": []any{
						map[string]any{"scanTime": "2024-01-02 10:00:00", "desc": "Picked up"},
						map[string]any{"scanTime": "2024-01-03 08:30:00", "desc": "In transit"},
					},
				},
			},
		},
	}, nil
}

// GetOrders returns mock order details for each serial number.
func (c *Client) GetOrders(ctx context.Context, serialNumbers ...string) (*shipping.Result, error) {
	if c.FailWith != nil {
		return nil, c.FailWith
	}

	content := make([]any, 0, len(serialNumbers))
	for _, serial := range serialNumbers {
		content = append(content, map[string]any{
			"txlogisticId": serial,
			"orderStatus":  "1",
		})
	}

	return &shipping.Result{
		Success:    true,
		StatusCode: http.StatusOK,
		Message:    "success",
		Data: map[string]any{
			"code": "1",
			"msg":  "success",
			"data": map[string]any{"content": content},
		},
	}, nil
}

// PrintOrder returns a mock print payload.
func (c *Client) PrintOrder(ctx context.Context, billCode string, opts *shipping.PrintOptions) (*shipping.Result, error) {
	if c.FailWith != nil {
		return nil, c.FailWith
	}

	return &shipping.Result{
		Success:     true,
		StatusCode:  http.StatusOK,
		Message:     "Print successful",
		WaybillCode: billCode,
		Data: map[string]any{
			"code": "1",
			"msg":  "success",
			"data": map[string]any{"base64EncodeContent": "JVBERi0xLjQ="},
		},
	}, nil
}

// Ensure Client implements the Service interface
var _ shipping.Service = (*Client)(nil)
