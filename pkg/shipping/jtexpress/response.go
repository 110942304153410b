package jtexpress

import (
	"bytes"
	"encoding/json"

	"github.com/nilecart/jtexpress/pkg/shipping"
)

// successCode is the provider's status sentinel for accepted requests.
const successCode = "1"

// OrderResponseHandler classifies raw provider replies into the uniform
// result shape. A reply is successful iff the HTTP layer accepted the
// request AND the decoded body carries the success sentinel; anything else,
// including a body that fails to decode, is a failure.
type OrderResponseHandler struct{}

// NewOrderResponseHandler creates a response handler.
func NewOrderResponseHandler() *OrderResponseHandler {
	return &OrderResponseHandler{}
}

// Handle classifies a reply into a result without raising errors.
func (h *OrderResponseHandler) Handle(resp *RawResponse) *shipping.Result {
	data := decodeBody(resp.Body)

	if h.isSuccessful(resp, data) {
		return successResult(data, resp.StatusCode)
	}
	return failureResult(data, resp.StatusCode)
}

// HandleStrict classifies a reply and returns a *shipping.ProviderError
// instead of a failure result, for call sites preferring error-based flow.
func (h *OrderResponseHandler) HandleStrict(resp *RawResponse) (*shipping.Result, error) {
	data := decodeBody(resp.Body)

	if h.isSuccessful(resp, data) {
		return successResult(data, resp.StatusCode), nil
	}

	msg, code := errorFields(data)
	return nil, shipping.NewProviderError(providerName, code, msg).
		WithStatusCode(resp.StatusCode).
		WithResponse(data)
}

// HandleHTTP classifies on the HTTP status alone, ignoring the provider
// code sentinel. The trace endpoint is classified this way.
func (h *OrderResponseHandler) HandleHTTP(resp *RawResponse) *shipping.Result {
	data := decodeBody(resp.Body)

	if resp.Successful() {
		return &shipping.Result{
			Success:    true,
			StatusCode: resp.StatusCode,
			Data:       data,
		}
	}
	return failureResult(data, resp.StatusCode)
}

func (h *OrderResponseHandler) isSuccessful(resp *RawResponse, data map[string]any) bool {
	return resp.Successful() && data != nil && codeString(data["code"]) == successCode
}

func successResult(data map[string]any, statusCode int) *shipping.Result {
	result := &shipping.Result{
		Success:    true,
		StatusCode: statusCode,
		Data:       data,
	}
	if msg, ok := data["msg"].(string); ok {
		result.Message = msg
	}
	if payload, ok := data["data"].(map[string]any); ok {
		result.WaybillCode = mapString(payload, "billCode")
		result.TxLogisticID = mapString(payload, "txlogisticId")
		result.SortingCode = mapString(payload, "sortingCode")
		result.LastCenterName = mapString(payload, "lastCenterName")
	}
	return result
}

func failureResult(data map[string]any, statusCode int) *shipping.Result {
	msg, code := errorFields(data)
	return &shipping.Result{
		Success:      false,
		StatusCode:   statusCode,
		Data:         data,
		ErrorMessage: msg,
		ErrorCode:    code,
	}
}

func errorFields(data map[string]any) (msg, code string) {
	msg = "Unknown error"
	if data != nil {
		if m, ok := data["msg"].(string); ok && m != "" {
			msg = m
		}
		code = codeString(data["code"])
	}
	return msg, code
}

// decodeBody decodes the provider body into a generic map. Numbers are kept
// as json.Number so long numeric error codes survive intact. A decode
// failure yields nil, which classifies as failure.
func decodeBody(body []byte) map[string]any {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil
	}
	return data
}

// codeString normalizes the provider status code, which arrives as either
// a JSON string or a bare number depending on the endpoint.
func codeString(v any) string {
	switch c := v.(type) {
	case string:
		return c
	case json.Number:
		return c.String()
	default:
		return ""
	}
}
