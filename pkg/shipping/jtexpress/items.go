package jtexpress

import (
	"fmt"
	"strconv"

	"github.com/nilecart/jtexpress/pkg/shipping"
)

const (
	defaultItemType   = "ITN1"
	itemCurrency      = "EGP"
	defaultItemName   = "Product"
	defaultItemDesc   = "Order Item"
	englishNameLocale = "en"
)

// OrderItemData is the provider-shaped order line record.
type OrderItemData struct {
	ItemName      string
	EnglishName   string
	ChineseName   string
	Number        int
	ItemType      string
	PriceCurrency string
	ItemValue     string
	ItemURL       string
	Desc          string
}

// Payload serializes the line item with the provider's field names.
func (i OrderItemData) Payload() map[string]any {
	return map[string]any{
		"itemName":      i.ItemName,
		"englishName":   i.EnglishName,
		"chineseName":   i.ChineseName,
		"number":        i.Number,
		"itemType":      i.ItemType,
		"priceCurrency": i.PriceCurrency,
		"itemValue":     i.ItemValue,
		"itemUrl":       i.ItemURL,
		"desc":          i.Desc,
	}
}

// OrderItemFormatter maps application-level order lines onto OrderItemData.
type OrderItemFormatter struct{}

// NewOrderItemFormatter creates an item formatter.
func NewOrderItemFormatter() *OrderItemFormatter {
	return &OrderItemFormatter{}
}

// Format never returns an empty slice: when the input has no items a single
// synthetic placeholder line is substituted so the provider request remains
// valid. That is a documented fallback, not a validation failure.
func (f *OrderItemFormatter) Format(items []any) []OrderItemData {
	formatted := make([]OrderItemData, 0, len(items))

	for _, item := range items {
		switch v := item.(type) {
		case *shipping.OrderItem:
			if v != nil {
				formatted = append(formatted, fromStructItem(v))
			}
		case shipping.OrderItem:
			formatted = append(formatted, fromStructItem(&v))
		case map[string]any:
			formatted = append(formatted, fromMapItem(v))
		}
	}

	if len(formatted) == 0 {
		formatted = append(formatted, defaultItem())
	}
	return formatted
}

func fromStructItem(item *shipping.OrderItem) OrderItemData {
	name := defaultItemName
	desc := defaultItemDesc
	english := ""

	switch p := item.Product.(type) {
	case *shipping.Product:
		if p != nil {
			name = orDefault(p.Name, defaultItemName)
			desc = orDefault(p.Description, defaultItemDesc)
		}
	case shipping.Product:
		name = orDefault(p.Name, defaultItemName)
		desc = orDefault(p.Description, defaultItemDesc)
	case map[string]any:
		name = orDefault(mapString(p, "name"), defaultItemName)
		desc = orDefault(mapString(p, "description"), defaultItemDesc)
	case shipping.LocalizedProduct:
		name = orDefault(p.Name, defaultItemName)
		desc = orDefault(p.Description, defaultItemDesc)
	}

	// The localized name is only attempted when the product exposes the
	// translation capability; missing it yields an empty string.
	if tr, ok := item.Product.(shipping.NameTranslator); ok {
		english = tr.TranslatedName(englishNameLocale)
	}

	number := item.Quantity
	if number <= 0 {
		number = 1
	}

	return OrderItemData{
		ItemName:      name,
		EnglishName:   english,
		Number:        number,
		ItemType:      defaultItemType,
		PriceCurrency: itemCurrency,
		ItemValue:     orDefault(item.PriceAtPurchase, "0"),
		Desc:          desc,
	}
}

func fromMapItem(item map[string]any) OrderItemData {
	return OrderItemData{
		ItemName:      orDefault(nestedString(item, "product", "name"), defaultItemName),
		Number:        intValue(item["quantity"], 1),
		ItemType:      defaultItemType,
		PriceCurrency: itemCurrency,
		ItemValue:     orDefault(stringValue(item["price_at_purchase"]), "0"),
		Desc:          orDefault(nestedString(item, "product", "description"), defaultItemDesc),
	}
}

func defaultItem() OrderItemData {
	return OrderItemData{
		ItemName:      defaultItemName,
		Number:        1,
		ItemType:      defaultItemType,
		PriceCurrency: itemCurrency,
		ItemValue:     "0",
		Desc:          defaultItemDesc,
	}
}

// intValue coerces JSON-decoded numbers and numeric strings to an int.
func intValue(v any, def int) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		if parsed, err := strconv.Atoi(n); err == nil {
			return parsed
		}
	}
	return def
}

// stringValue coerces scalar values to their decimal string form.
func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", s)
	}
}
