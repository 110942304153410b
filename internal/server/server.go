// Package server exposes the shipping adapter over a small JSON HTTP facade.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nilecart/jtexpress/internal/telemetry"
	"github.com/nilecart/jtexpress/pkg/shipping"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Server is the HTTP server for the shipping facade.
type Server struct {
	port    int
	service shipping.Service
	logger  *otelzap.Logger
	metrics *telemetry.Metrics
}

// Config holds server configuration.
type Config struct {
	Port int
}

// New creates a new server instance.
func New(cfg Config, service shipping.Service, logger *otelzap.Logger) *Server {
	return &Server{
		port:    cfg.Port,
		service: service,
		logger:  logger,
		metrics: telemetry.NewMetrics(),
	}
}

// NewWithMetrics creates a server with externally constructed metrics,
// used by tests to avoid duplicate Prometheus registration.
func NewWithMetrics(cfg Config, service shipping.Service, logger *otelzap.Logger, metrics *telemetry.Metrics) *Server {
	return &Server{
		port:    cfg.Port,
		service: service,
		logger:  logger,
		metrics: metrics,
	}
}

// Run starts the HTTP server and blocks until context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// Handler builds the route mux; exposed for httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("POST /api/orders", s.instrument("create", s.handleCreate))
	mux.HandleFunc("POST /api/orders/update", s.instrument("update", s.handleUpdate))
	mux.HandleFunc("POST /api/orders/cancel", s.instrument("cancel", s.handleCancel))
	mux.HandleFunc("POST /api/orders/track", s.instrument("track", s.handleTrack))
	mux.HandleFunc("POST /api/orders/details", s.instrument("details", s.handleDetails))
	mux.HandleFunc("POST /api/orders/print", s.instrument("print", s.handlePrint))

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// resultEnvelope is the JSON shape returned to facade callers.
type resultEnvelope struct {
	Success        bool           `json:"success"`
	StatusCode     int            `json:"status_code"`
	Message        string         `json:"message,omitempty"`
	WaybillCode    string         `json:"waybill_code,omitempty"`
	TxLogisticID   string         `json:"tx_logistic_id,omitempty"`
	SortingCode    string         `json:"sorting_code,omitempty"`
	LastCenterName string         `json:"last_center_name,omitempty"`
	Error          string         `json:"error,omitempty"`
	ErrorCode      string         `json:"error_code,omitempty"`
	Data           map[string]any `json:"data,omitempty"`
}

func envelopeFrom(result *shipping.Result) resultEnvelope {
	return resultEnvelope{
		Success:        result.Success,
		StatusCode:     result.StatusCode,
		Message:        result.Message,
		WaybillCode:    result.WaybillCode,
		TxLogisticID:   result.TxLogisticID,
		SortingCode:    result.SortingCode,
		LastCenterName: result.LastCenterName,
		Error:          result.ErrorMessage,
		ErrorCode:      result.ErrorCode,
		Data:           result.Data,
	}
}

type operationFunc func(r *http.Request) (*shipping.Result, error)

// instrument wraps a handler with metrics recording and uniform error
// mapping: invalid input is 400, transport/unexpected failures are 502,
// classified provider results pass through as 200 envelopes.
func (s *Server) instrument(operation string, op operationFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		result, err := op(r)
		duration := time.Since(start).Seconds()

		w.Header().Set("Content-Type", "application/json")

		switch {
		case err != nil && shipping.IsInvalidOrder(err):
			s.metrics.RecordRequest(operation, "invalid", duration)
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(resultEnvelope{
				Success:    false,
				StatusCode: http.StatusBadRequest,
				Error:      err.Error(),
			})
		case err != nil:
			s.metrics.RecordRequest(operation, "error", duration)
			s.logger.Error("Operation failed",
				zap.String("operation", operation),
				zap.Error(err),
			)
			w.WriteHeader(http.StatusBadGateway)
			json.NewEncoder(w).Encode(resultEnvelope{
				Success:    false,
				StatusCode: http.StatusBadGateway,
				Error:      err.Error(),
			})
		default:
			status := "success"
			if !result.Success {
				status = "rejected"
				s.metrics.RecordProviderError(result.ErrorCode)
			}
			s.metrics.RecordRequest(operation, status, duration)
			json.NewEncoder(w).Encode(envelopeFrom(result))
		}
	}
}

// handleCreate accepts the flat order shape: id, total, shippingAddress,
// orderItems, and any remaining keys become builder overrides.
func (s *Server) handleCreate(r *http.Request) (*shipping.Result, error) {
	data, err := decodeOrderData(r)
	if err != nil {
		return nil, err
	}
	return s.service.CreateOrder(r.Context(), data)
}

func (s *Server) handleUpdate(r *http.Request) (*shipping.Result, error) {
	data, err := decodeOrderData(r)
	if err != nil {
		return nil, err
	}
	return s.service.UpdateOrder(r.Context(), data)
}

func (s *Server) handleCancel(r *http.Request) (*shipping.Result, error) {
	var req struct {
		TxLogisticID string `json:"txlogisticId"`
		Reason       string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, &shipping.InvalidOrderError{Message: "invalid JSON body: " + err.Error()}
	}
	if req.TxLogisticID == "" {
		return nil, &shipping.InvalidOrderError{Field: "txlogisticId", Message: "txlogisticId is required"}
	}
	return s.service.CancelOrder(r.Context(), req.TxLogisticID, req.Reason)
}

func (s *Server) handleTrack(r *http.Request) (*shipping.Result, error) {
	var req struct {
		BillCode string `json:"billCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, &shipping.InvalidOrderError{Message: "invalid JSON body: " + err.Error()}
	}
	if req.BillCode == "" {
		return nil, &shipping.InvalidOrderError{Field: "billCode", Message: "billCode is required"}
	}
	return s.service.TrackOrder(r.Context(), req.BillCode)
}

func (s *Server) handleDetails(r *http.Request) (*shipping.Result, error) {
	var req struct {
		SerialNumber  string   `json:"serialNumber"`
		SerialNumbers []string `json:"serialNumbers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, &shipping.InvalidOrderError{Message: "invalid JSON body: " + err.Error()}
	}

	serials := req.SerialNumbers
	if len(serials) == 0 && req.SerialNumber != "" {
		serials = []string{req.SerialNumber}
	}
	if len(serials) == 0 {
		return nil, &shipping.InvalidOrderError{Field: "serialNumbers", Message: "at least one serial number is required"}
	}
	return s.service.GetOrders(r.Context(), serials...)
}

func (s *Server) handlePrint(r *http.Request) (*shipping.Result, error) {
	var req struct {
		BillCode  string `json:"billCode"`
		PrintSize string `json:"printSize"`
		PrintCode int    `json:"printCode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, &shipping.InvalidOrderError{Message: "invalid JSON body: " + err.Error()}
	}
	if req.BillCode == "" {
		return nil, &shipping.InvalidOrderError{Field: "billCode", Message: "billCode is required"}
	}
	return s.service.PrintOrder(r.Context(), req.BillCode, &shipping.PrintOptions{
		PrintSize: req.PrintSize,
		PrintCode: req.PrintCode,
	})
}

// decodeOrderData splits a flat JSON order into the structured sections and
// the overrides map the builder layers over its defaults.
func decodeOrderData(r *http.Request) (*shipping.OrderData, error) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, &shipping.InvalidOrderError{Message: "invalid JSON body: " + err.Error()}
	}

	data := &shipping.OrderData{Overrides: map[string]any{}}

	for key, value := range raw {
		switch key {
		case "id":
			data.ID = asString(value)
		case "total":
			data.Total = asString(value)
		case "shippingAddress":
			if addr, ok := value.(map[string]any); ok {
				data.ShippingAddress = addr
			}
		case "orderItems":
			if items, ok := value.([]any); ok {
				data.Items = items
			}
		default:
			data.Overrides[key] = value
		}
	}
	return data, nil
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return fmt.Sprintf("%v", s)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", s)
	}
}
