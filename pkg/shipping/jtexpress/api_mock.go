package jtexpress

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MockAPIClient is a mock implementation of APIClient for testing.
type MockAPIClient struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	OnCreateOrder func(ctx context.Context, bizContent string, headers map[string]string) (*RawResponse, error)
	OnCancelOrder func(ctx context.Context, bizContent string, headers map[string]string) (*RawResponse, error)
	OnTrackOrder  func(ctx context.Context, bizContent string, headers map[string]string) (*RawResponse, error)
	OnGetOrders   func(ctx context.Context, bizContent string, headers map[string]string) (*RawResponse, error)
	OnPrintOrder  func(ctx context.Context, bizContent string, headers map[string]string) (*RawResponse, error)

	// LastBizContent and LastHeaders record the most recent request for
	// payload assertions in tests.
	LastBizContent string
	LastHeaders    map[string]string
}

// NewMockAPIClient creates a new mock API client with default behavior.
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{}
}

// CreateOrder returns a canned successful order creation reply.
func (m *MockAPIClient) CreateOrder(ctx context.Context, bizContent string, headers map[string]string) (*RawResponse, error) {
	if resp, err, done := m.intercept(bizContent, headers, m.OnCreateOrder, ctx); done {
		return resp, err
	}

	billCode := mockBillCode()
	body := fmt.Sprintf(`{"code":"1","msg":"success","data":{"billCode":%q,"txlogisticId":"ORDER0000000001","sortingCode":"CAI01","lastCenterName":"Cairo Center"}}`, billCode)
	return &RawResponse{StatusCode: http.StatusOK, Body: []byte(body)}, nil
}

// CancelOrder returns a canned successful cancellation reply.
func (m *MockAPIClient) CancelOrder(ctx context.Context, bizContent string, headers map[string]string) (*RawResponse, error) {
	if resp, err, done := m.intercept(bizContent, headers, m.OnCancelOrder, ctx); done {
		return resp, err
	}

	return &RawResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"code":"1","msg":"success","data":{"txlogisticId":"ORDER0000000001"}}`),
	}, nil
}

// TrackOrder returns a canned trace reply with two events.
func (m *MockAPIClient) TrackOrder(ctx context.Context, bizContent string, headers map[string]string) (*RawResponse, error) {
	if resp, err, done := m.intercept(bizContent, headers, m.OnTrackOrder, ctx); done {
		return resp, err
	}

	body := fmt.Sprintf(`{"code":"1","msg":"success","data":[{"billCode":%q,"details":[{"scanTime":"2024-01-02 10:00:00","desc":"Picked up"},{"scanTime":"2024-01-03 08:30:00","desc":"In transit"}]}]}`, mockBillCode())
	return &RawResponse{StatusCode: http.StatusOK, Body: []byte(body)}, nil
}

// GetOrders returns a canned order details reply.
func (m *MockAPIClient) GetOrders(ctx context.Context, bizContent string, headers map[string]string) (*RawResponse, error) {
	if resp, err, done := m.intercept(bizContent, headers, m.OnGetOrders, ctx); done {
		return resp, err
	}

	body := fmt.Sprintf(`{"code":"1","msg":"success","data":{"content":[{"billCode":%q,"txlogisticId":"ORDER0000000001","orderStatus":"1"}]}}`, mockBillCode())
	return &RawResponse{StatusCode: http.StatusOK, Body: []byte(body)}, nil
}

// PrintOrder returns a canned print reply with an inline base64 payload.
func (m *MockAPIClient) PrintOrder(ctx context.Context, bizContent string, headers map[string]string) (*RawResponse, error) {
	if resp, err, done := m.intercept(bizContent, headers, m.OnPrintOrder, ctx); done {
		return resp, err
	}

	return &RawResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"code":"1","msg":"success","data":{"base64EncodeContent":"JVBERi0xLjQ="}}`),
	}, nil
}

func (m *MockAPIClient) intercept(
	bizContent string,
	headers map[string]string,
	hook func(ctx context.Context, bizContent string, headers map[string]string) (*RawResponse, error),
	ctx context.Context,
) (*RawResponse, error, bool) {
	m.LastBizContent = bizContent
	m.LastHeaders = headers

	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}

	if m.SimulateErrors {
		return nil, fmt.Errorf("simulated transport error"), true
	}

	if hook != nil {
		resp, err := hook(ctx, bizContent, headers)
		return resp, err, true
	}
	return nil, nil, false
}

func mockBillCode() string {
	return "JT" + strings.ToUpper(uuid.New().String()[:10])
}

// Ensure MockAPIClient implements APIClient interface
var _ APIClient = (*MockAPIClient)(nil)
