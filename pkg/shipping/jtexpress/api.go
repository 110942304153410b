package jtexpress

import (
	"context"
)

// Endpoint paths, one per operation. Create and update share addOrder; the
// operate type inside the payload distinguishes them.
const (
	endpointCreateOrder = "/webopenplatformapi/api/order/addOrder"
	endpointCancelOrder = "/webopenplatformapi/api/order/cancelOrder"
	endpointTrackOrder  = "/webopenplatformapi/api/logistics/trace"
	endpointGetOrders   = "/webopenplatformapi/api/order/getOrders"
	endpointPrintOrder  = "/webopenplatformapi/api/order/printOrder"
)

// RawResponse is the uninterpreted provider reply: the transport passes it
// through, classification happens in OrderResponseHandler.
type RawResponse struct {
	StatusCode int
	Body       []byte
}

// Successful reports whether the HTTP layer accepted the request.
func (r *RawResponse) Successful() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// APIClient defines the wire operations against the provider. The
// abstraction allows mock implementations during testing and the HTTP
// implementation in production. Each call POSTs the serialized bizContent
// with the signed headers and returns the raw reply.
type APIClient interface {
	CreateOrder(ctx context.Context, bizContent string, headers map[string]string) (*RawResponse, error)
	CancelOrder(ctx context.Context, bizContent string, headers map[string]string) (*RawResponse, error)
	TrackOrder(ctx context.Context, bizContent string, headers map[string]string) (*RawResponse, error)
	GetOrders(ctx context.Context, bizContent string, headers map[string]string) (*RawResponse, error)
	PrintOrder(ctx context.Context, bizContent string, headers map[string]string) (*RawResponse, error)
}
