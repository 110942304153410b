package jtexpress

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPAPIClient is the production implementation of APIClient.
type HTTPAPIClient struct {
	baseURL    string
	httpClient *http.Client
}

// HTTPAPIClientConfig holds configuration for the HTTP client.
type HTTPAPIClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

// NewHTTPAPIClient creates a new HTTP-based API client for production use.
func NewHTTPAPIClient(cfg HTTPAPIClientConfig) *HTTPAPIClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &HTTPAPIClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// CreateOrder submits an order creation (or update) request.
func (c *HTTPAPIClient) CreateOrder(ctx context.Context, bizContent string, headers map[string]string) (*RawResponse, error) {
	return c.post(ctx, endpointCreateOrder, bizContent, headers)
}

// CancelOrder submits an order cancellation request.
func (c *HTTPAPIClient) CancelOrder(ctx context.Context, bizContent string, headers map[string]string) (*RawResponse, error) {
	return c.post(ctx, endpointCancelOrder, bizContent, headers)
}

// TrackOrder submits a waybill trace request.
func (c *HTTPAPIClient) TrackOrder(ctx context.Context, bizContent string, headers map[string]string) (*RawResponse, error) {
	return c.post(ctx, endpointTrackOrder, bizContent, headers)
}

// GetOrders submits an order details request.
func (c *HTTPAPIClient) GetOrders(ctx context.Context, bizContent string, headers map[string]string) (*RawResponse, error) {
	return c.post(ctx, endpointGetOrders, bizContent, headers)
}

// PrintOrder submits a waybill print request.
func (c *HTTPAPIClient) PrintOrder(ctx context.Context, bizContent string, headers map[string]string) (*RawResponse, error) {
	return c.post(ctx, endpointPrintOrder, bizContent, headers)
}

// post sends the serialized bizContent form-encoded under the single field
// name the provider expects, with the signed headers attached verbatim.
func (c *HTTPAPIClient) post(ctx context.Context, endpoint, bizContent string, headers map[string]string) (*RawResponse, error) {
	form := url.Values{}
	form.Set("bizContent", bizContent)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &RawResponse{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}

// Ensure HTTPAPIClient implements APIClient interface
var _ APIClient = (*HTTPAPIClient)(nil)
