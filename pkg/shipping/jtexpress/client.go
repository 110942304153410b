// Package jtexpress provides integration with the J&T Express Egypt open
// platform API.
package jtexpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nilecart/jtexpress/pkg/shipping"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const providerName = "jtexpress"

const (
	productionBaseURL = "https://openapi.jtjms-eg.com"
	demoBaseURL       = "https://demoopenapi.jtjms-eg.com"

	defaultCancelReason = "Customer request"
	defaultPrintSize    = "0"

	// operate type 2 re-submits an existing order through the same
	// endpoint; there is no separate update endpoint.
	updateOperateType = 2
)

// Print failure codes the orchestrator translates; all other codes pass
// through unmodified.
const (
	printCodeIllegalParams = "145003050"
	printCodeNotPrintable  = "121003006"
)

const notPrintableMessage = "Order status does not support printing. " +
	"Please check if the order has been picked up or is in transit."

// Config holds J&T Express configuration.
type Config struct {
	APIAccount   string
	PrivateKey   string
	CustomerCode string
	CustomerPwd  string

	// PrintDigest is the separately configured static digest printOrder
	// sends instead of the computed bizContent digest. Provider quirk;
	// see the note on PrintOrder.
	PrintDigest string

	// Production selects the live base URL; the demo environment is used
	// otherwise. BaseURL overrides both when set.
	Production bool
	BaseURL    string

	Sender  SenderConfig
	Timeout time.Duration
	UseMock bool
}

// Client is the J&T Express shipping client. It implements the
// shipping.Service interface and delegates wire calls to the underlying
// APIClient (mock or HTTP).
//
// A Client performs at most one outbound HTTP call per operation and holds
// no mutable state beyond construction-time configuration, so it is safe
// for concurrent use.
type Client struct {
	config    Config
	apiClient APIClient
	logger    *otelzap.Logger
	tracer    trace.Tracer

	handler   *OrderResponseHandler
	addresses *AddressFormatter
	items     *OrderItemFormatter
	validator *OrderDataValidator
}

// New creates a new J&T Express client. If cfg.UseMock is true, it uses a
// mock API client for testing; otherwise it uses the real HTTP client
// against the environment-selected base URL.
func New(cfg Config, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var apiClient APIClient

	if cfg.UseMock {
		apiClient = NewMockAPIClient()
	} else {
		apiClient = NewHTTPAPIClient(HTTPAPIClientConfig{
			BaseURL: resolveBaseURL(cfg),
			Timeout: cfg.Timeout,
		})
	}

	return NewWithAPIClient(cfg, apiClient, logger, tracer)
}

// NewWithAPIClient creates a new client with a custom API client. This is
// useful for injecting mock clients in tests.
func NewWithAPIClient(cfg Config, apiClient APIClient, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	return &Client{
		config:    cfg,
		apiClient: apiClient,
		logger:    logger,
		tracer:    tracer,
		handler:   NewOrderResponseHandler(),
		addresses: NewAddressFormatter(cfg.Sender),
		items:     NewOrderItemFormatter(),
		validator: NewOrderDataValidator(),
	}
}

func resolveBaseURL(cfg Config) string {
	if cfg.BaseURL != "" {
		return cfg.BaseURL
	}
	if cfg.Production {
		return productionBaseURL
	}
	return demoBaseURL
}

// Name returns the provider name.
func (c *Client) Name() string {
	return providerName
}

// CreateOrder registers a new shipping order.
func (c *Client) CreateOrder(ctx context.Context, data *shipping.OrderData) (*shipping.Result, error) {
	ctx, end := c.span(ctx, "CreateOrder")
	defer end()

	return c.submitOrder(ctx, data, 0)
}

// UpdateOrder re-submits an existing order. It is the create flow with the
// operate type forced to the update value; the provider has no separate
// update endpoint.
func (c *Client) UpdateOrder(ctx context.Context, data *shipping.OrderData) (*shipping.Result, error) {
	ctx, end := c.span(ctx, "UpdateOrder")
	defer end()

	return c.submitOrder(ctx, data, updateOperateType)
}

func (c *Client) submitOrder(ctx context.Context, data *shipping.OrderData, forceOperateType int) (*shipping.Result, error) {
	if err := c.validator.Validate(data); err != nil {
		return nil, err
	}

	bizDigest := BizContentDigest(c.config.CustomerCode, c.config.CustomerPwd, c.config.PrivateKey)

	receiver := c.addresses.FormatReceiver(data.ShippingAddress)
	sender := c.addresses.FormatSender()
	items := c.items.Format(data.Items)

	builder := NewOrderRequestBuilder(c.config.CustomerCode, bizDigest)
	request := builder.Build(data, receiver, sender, items)
	if forceOperateType != 0 {
		request.OperateType = forceOperateType
	}

	bizContent, err := marshalBizContent(request.Payload())
	if err != nil {
		return nil, c.wrapError("create order", err)
	}

	c.logger.Info("Submitting J&T Express order",
		zap.String("txlogistic_id", request.TxLogisticID),
		zap.Int("item_count", len(items)),
		zap.Int("operate_type", request.OperateType),
	)

	resp, err := c.apiClient.CreateOrder(ctx, bizContent, c.headers(bizContent))
	if err != nil {
		c.logger.Error("J&T Express API error", zap.Error(err))
		return nil, c.wrapError("create order", err)
	}

	result := c.handler.Handle(resp)
	c.logOutcome("create order", result)
	return result, nil
}

// CancelOrder cancels an order by transaction logistics id. An empty reason
// defaults to "Customer request".
func (c *Client) CancelOrder(ctx context.Context, txLogisticID, reason string) (*shipping.Result, error) {
	ctx, end := c.span(ctx, "CancelOrder")
	defer end()

	if reason == "" {
		reason = defaultCancelReason
	}

	bizContent, err := marshalBizContent(map[string]any{
		"txlogisticId": txLogisticID,
		"orderType":    1,
		"reason":       reason,
		"customerCode": c.config.CustomerCode,
		"digest":       BizContentDigest(c.config.CustomerCode, c.config.CustomerPwd, c.config.PrivateKey),
	})
	if err != nil {
		return nil, c.wrapError("cancel order", err)
	}

	c.logger.Info("Cancelling J&T Express order",
		zap.String("txlogistic_id", txLogisticID),
		zap.String("reason", reason),
	)

	resp, err := c.apiClient.CancelOrder(ctx, bizContent, c.headers(bizContent))
	if err != nil {
		c.logger.Error("J&T Express API error", zap.Error(err))
		return nil, c.wrapError("cancel order", err)
	}

	result := c.handler.Handle(resp)
	c.logOutcome("cancel order", result)
	return result, nil
}

// TrackOrder retrieves tracking events for a waybill. The trace endpoint
// takes no bizContent digest and is classified on the HTTP status alone;
// both quirks match the provider's observed behavior.
func (c *Client) TrackOrder(ctx context.Context, billCode string) (*shipping.Result, error) {
	ctx, end := c.span(ctx, "TrackOrder")
	defer end()

	bizContent, err := marshalBizContent(map[string]any{
		"billCodes": billCode,
	})
	if err != nil {
		return nil, c.wrapError("track order", err)
	}

	c.logger.Info("Tracking J&T Express order", zap.String("bill_code", billCode))

	resp, err := c.apiClient.TrackOrder(ctx, bizContent, c.headers(bizContent))
	if err != nil {
		c.logger.Error("J&T Express API error", zap.Error(err))
		return nil, c.wrapError("track order", err)
	}

	result := c.handler.HandleHTTP(resp)
	c.logOutcome("track order", result)
	return result, nil
}

// GetOrders retrieves order details for one or more serial numbers. The
// provider requires a list; a single serial is sent as a one-element list.
func (c *Client) GetOrders(ctx context.Context, serialNumbers ...string) (*shipping.Result, error) {
	ctx, end := c.span(ctx, "GetOrders")
	defer end()

	if serialNumbers == nil {
		serialNumbers = []string{}
	}

	bizContent, err := marshalBizContent(map[string]any{
		"command":      1,
		"serialNumber": serialNumbers,
		"customerCode": c.config.CustomerCode,
		"digest":       BizContentDigest(c.config.CustomerCode, c.config.CustomerPwd, c.config.PrivateKey),
	})
	if err != nil {
		return nil, c.wrapError("get orders", err)
	}

	c.logger.Info("Getting J&T Express order details",
		zap.Strings("serial_numbers", serialNumbers),
	)

	resp, err := c.apiClient.GetOrders(ctx, bizContent, c.headers(bizContent))
	if err != nil {
		c.logger.Error("J&T Express API error", zap.Error(err))
		return nil, c.wrapError("get orders", err)
	}

	result := c.handler.Handle(resp)
	c.logOutcome("get orders", result)
	return result, nil
}

// PrintOrder generates a printable waybill. The payload carries the
// statically configured print digest rather than the computed bizContent
// digest every other signed operation uses.
// TODO: verify against provider docs whether print really requires the
// pre-shared digest or the original integration carried a defect.
func (c *Client) PrintOrder(ctx context.Context, billCode string, opts *shipping.PrintOptions) (*shipping.Result, error) {
	ctx, end := c.span(ctx, "PrintOrder")
	defer end()

	printSize := defaultPrintSize
	printCode := 0
	if opts != nil {
		if opts.PrintSize != "" {
			printSize = opts.PrintSize
		}
		printCode = opts.PrintCode
	}

	bizContent, err := marshalBizContent(map[string]any{
		"customerCode": c.config.CustomerCode,
		"digest":       c.config.PrintDigest,
		"billCode":     billCode,
		"printSize":    printSize,
		"printCode":    printCode,
	})
	if err != nil {
		return nil, c.wrapError("print order", err)
	}

	c.logger.Info("Printing J&T Express waybill",
		zap.String("bill_code", billCode),
		zap.String("print_size", printSize),
		zap.Int("print_code", printCode),
	)

	resp, err := c.apiClient.PrintOrder(ctx, bizContent, c.headers(bizContent))
	if err != nil {
		c.logger.Error("J&T Express API error", zap.Error(err))
		return nil, c.wrapError("print order", err)
	}

	return c.printResult(resp, billCode, bizContent), nil
}

// printResult applies the print-specific overlay on top of the generic
// classification: two provider codes get translated, everything else
// passes through.
func (c *Client) printResult(resp *RawResponse, billCode, bizContent string) *shipping.Result {
	result := c.handler.Handle(resp)
	if result.Success {
		if result.Message == "" {
			result.Message = "Print successful"
		}
		return result
	}

	switch result.ErrorCode {
	case printCodeIllegalParams:
		c.logger.Warn("J&T Express print rejected: illegal parameters",
			zap.String("bill_code", billCode),
			zap.String("biz_content", bizContent),
			zap.Any("response", result.Data),
		)
	case printCodeNotPrintable:
		c.logger.Warn("J&T Express print rejected: order status not printable",
			zap.String("bill_code", billCode),
		)
		result.ErrorMessage = notPrintableMessage
	}
	return result
}

// headers builds the signed request headers for one serialized body. The
// digest is recomputed per request from the body itself.
func (c *Client) headers(bizContent string) map[string]string {
	return map[string]string{
		"Accept":       "application/json",
		"Content-Type": "application/x-www-form-urlencoded",
		"apiAccount":   c.config.APIAccount,
		"digest":       HeaderDigest(bizContent, c.config.PrivateKey),
		"timestamp":    Timestamp(),
	}
}

// wrapError normalizes any non-classified failure into a provider error
// carrying the original cause.
func (c *Client) wrapError(op string, err error) error {
	return shipping.NewProviderError(providerName, "TRANSPORT", op+" failed").WithCause(err)
}

func (c *Client) logOutcome(op string, result *shipping.Result) {
	if result.Success {
		c.logger.Info("J&T Express "+op+" succeeded",
			zap.Int("status", result.StatusCode),
			zap.String("bill_code", result.WaybillCode),
			zap.String("txlogistic_id", result.TxLogisticID),
		)
		return
	}
	c.logger.Warn("J&T Express "+op+" rejected",
		zap.Int("status", result.StatusCode),
		zap.String("code", result.ErrorCode),
		zap.String("error", result.ErrorMessage),
	)
}

func (c *Client) span(ctx context.Context, op string) (context.Context, func()) {
	if c.tracer == nil {
		return ctx, func() {}
	}
	ctx, span := c.tracer.Start(ctx, providerName+"."+op)
	return ctx, func() { span.End() }
}

// marshalBizContent serializes a payload map without HTML escaping, so
// slashes and non-ASCII text reach the provider unescaped.
func marshalBizContent(payload map[string]any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return "", fmt.Errorf("failed to marshal bizContent: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// Ensure Client implements the Service interface
var _ shipping.Service = (*Client)(nil)
