package jtexpress

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/nilecart/jtexpress/pkg/shipping"
)

const (
	defaultDeliveryType  = "04"
	defaultPayType       = "PP_PM"
	defaultExpressType   = "EZ"
	defaultServiceType   = "01"
	defaultGoodsType     = "ITN1"
	defaultOperateType   = 1
	defaultOrderType     = "1"
	defaultTotalQuantity = "1"
	defaultOfferFee      = "0"

	sendTimeLayout = "2006-01-02 15:04:05"
)

// OrderRequest is the complete signed business payload for order creation.
// Built fresh per call, never mutated afterwards, discarded after one HTTP
// exchange.
type OrderRequest struct {
	CustomerCode            string
	Digest                  string
	TxLogisticID            string
	Receiver                AddressData
	Sender                  AddressData
	Items                   []OrderItemData
	DeliveryType            string
	PayType                 string
	ExpressType             string
	ServiceType             string
	GoodsType               string
	PriceCurrency           string
	Network                 string
	Length                  float64
	Width                   float64
	Height                  float64
	Weight                  float64
	SendStartTime           string
	SendEndTime             string
	ItemsValue              string
	Remark                  string
	InvoiceNumber           string
	PackingNumber           string
	BatchNumber             string
	BillCode                string
	OperateType             int
	OrderType               string
	ExpectDeliveryStartTime string
	ExpectDeliveryEndTime   string
	TotalQuantity           string
	OfferFee                string
}

// Payload serializes the request to the provider field map, applying the
// sparse-payload rule once at this boundary: top-level empty strings and
// nils are dropped entirely, zero-valued numbers are kept, and the nested
// receiver/sender/items objects are never filtered.
func (r *OrderRequest) Payload() map[string]any {
	items := make([]map[string]any, len(r.Items))
	for i, item := range r.Items {
		items[i] = item.Payload()
	}

	data := map[string]any{
		"customerCode":  r.CustomerCode,
		"digest":        r.Digest,
		"deliveryType":  r.DeliveryType,
		"payType":       r.PayType,
		"expressType":   r.ExpressType,
		"network":       r.Network,
		"length":        r.Length,
		"width":         r.Width,
		"height":        r.Height,
		"weight":        r.Weight,
		"sendStartTime": r.SendStartTime,
		"sendEndTime":   r.SendEndTime,
		"itemsValue":    r.ItemsValue,
		"remark":        r.Remark,
		// The provider schema spells this field without the "i".
		"invoceNumber":            r.InvoiceNumber,
		"packingNumber":           r.PackingNumber,
		"batchNumber":             r.BatchNumber,
		"txlogisticId":            r.TxLogisticID,
		"billCode":                r.BillCode,
		"operateType":             r.OperateType,
		"orderType":               r.OrderType,
		"serviceType":             r.ServiceType,
		"expectDeliveryStartTime": r.ExpectDeliveryStartTime,
		"expectDeliveryEndTime":   r.ExpectDeliveryEndTime,
		"goodsType":               r.GoodsType,
		"totalQuantity":           r.TotalQuantity,
		"offerFee":                r.OfferFee,
		"priceCurrency":           r.PriceCurrency,
		"receiver":                r.Receiver.Payload(),
		"sender":                  r.Sender.Payload(),
		"items":                   items,
	}

	for key, value := range data {
		if value == nil {
			delete(data, key)
			continue
		}
		if s, ok := value.(string); ok && s == "" {
			delete(data, key)
		}
	}
	return data
}

// OrderRequestBuilder assembles an OrderRequest from class-level defaults
// layered under caller overrides. It trusts validated input; type checks
// belong to the validator.
type OrderRequestBuilder struct {
	customerCode string
	digest       string
	now          func() time.Time
}

// NewOrderRequestBuilder creates a builder bound to the account identity
// and the precomputed bizContent digest.
func NewOrderRequestBuilder(customerCode, digest string) *OrderRequestBuilder {
	return &OrderRequestBuilder{
		customerCode: customerCode,
		digest:       digest,
		now:          time.Now,
	}
}

// Build produces the full request record for one order.
func (b *OrderRequestBuilder) Build(data *shipping.OrderData, receiver, sender AddressData, items []OrderItemData) *OrderRequest {
	o := data.Overrides
	now := b.now()

	return &OrderRequest{
		CustomerCode:            b.customerCode,
		Digest:                  b.digest,
		TxLogisticID:            b.txLogisticID(data),
		Receiver:                receiver,
		Sender:                  sender,
		Items:                   items,
		DeliveryType:            stringOr(o, "deliveryType", defaultDeliveryType),
		PayType:                 stringOr(o, "payType", defaultPayType),
		ExpressType:             stringOr(o, "expressType", defaultExpressType),
		ServiceType:             stringOr(o, "serviceType", defaultServiceType),
		GoodsType:               stringOr(o, "goodsType", defaultGoodsType),
		PriceCurrency:           itemCurrency,
		Network:                 stringOr(o, "network", ""),
		Length:                  floatOr(o, "length", 0),
		Width:                   floatOr(o, "width", 10),
		Height:                  floatOr(o, "height", 0),
		Weight:                  floatOr(o, "weight", 1),
		SendStartTime:           stringOr(o, "sendStartTime", now.Format(sendTimeLayout)),
		SendEndTime:             stringOr(o, "sendEndTime", now.Add(24*time.Hour).Format(sendTimeLayout)),
		ItemsValue:              data.Total,
		Remark:                  stringOr(o, "remark", ""),
		InvoiceNumber:           stringOr(o, "invoiceNumber", ""),
		PackingNumber:           stringOr(o, "packingNumber", ""),
		BatchNumber:             stringOr(o, "batchNumber", ""),
		BillCode:                stringOr(o, "billCode", ""),
		OperateType:             intOr(o, "operateType", defaultOperateType),
		OrderType:               stringOr(o, "orderType", defaultOrderType),
		ExpectDeliveryStartTime: stringOr(o, "expectDeliveryStartTime", ""),
		ExpectDeliveryEndTime:   stringOr(o, "expectDeliveryEndTime", ""),
		TotalQuantity:           stringOr(o, "totalQuantity", defaultTotalQuantity),
		OfferFee:                stringOr(o, "offerFee", defaultOfferFee),
	}
}

// txLogisticID uses the caller's id verbatim when present, otherwise
// synthesizes "ORDER" plus a 10-digit zero-padded random decimal. Random
// generation is best-effort uniqueness only; callers needing guaranteed
// uniqueness must supply their own id.
func (b *OrderRequestBuilder) txLogisticID(data *shipping.OrderData) string {
	if data.ID != "" {
		return data.ID
	}
	return fmt.Sprintf("ORDER%010d", rand.Int64N(10_000_000_000))
}

func stringOr(m map[string]any, key, def string) string {
	if v, ok := m[key]; ok {
		return stringValue(v)
	}
	return def
}

func floatOr(m map[string]any, key string, def float64) float64 {
	if v, ok := m[key]; ok {
		return floatValue(v, def)
	}
	return def
}

func intOr(m map[string]any, key string, def int) int {
	if v, ok := m[key]; ok {
		return intValue(v, def)
	}
	return def
}

func floatValue(v any, def float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		if parsed, err := strconv.ParseFloat(n, 64); err == nil {
			return parsed
		}
	}
	return def
}
