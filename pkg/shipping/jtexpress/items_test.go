package jtexpress_test

import (
	"testing"

	"github.com/nilecart/jtexpress/pkg/shipping"
	"github.com/nilecart/jtexpress/pkg/shipping/jtexpress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_EmptyInputYieldsPlaceholderLine(t *testing.T) {
	f := jtexpress.NewOrderItemFormatter()

	for _, items := range [][]any{nil, {}, {"garbage", 42, (*shipping.OrderItem)(nil)}} {
		got := f.Format(items)
		require.Len(t, got, 1)
		assert.Equal(t, jtexpress.OrderItemData{
			ItemName:      "Product",
			Number:        1,
			ItemType:      "ITN1",
			PriceCurrency: "EGP",
			ItemValue:     "0",
			Desc:          "Order Item",
		}, got[0])
	}
}

func TestFormat_StructItems(t *testing.T) {
	f := jtexpress.NewOrderItemFormatter()

	got := f.Format([]any{
		shipping.OrderItem{
			Product:         shipping.Product{Name: "Blue Mug", Description: "Ceramic mug"},
			Quantity:        3,
			PriceAtPurchase: "49.99",
		},
		&shipping.OrderItem{
			Product: &shipping.Product{Name: "Red Mug"},
		},
	})

	require.Len(t, got, 2)
	assert.Equal(t, "Blue Mug", got[0].ItemName)
	assert.Equal(t, "Ceramic mug", got[0].Desc)
	assert.Equal(t, 3, got[0].Number)
	assert.Equal(t, "49.99", got[0].ItemValue)
	assert.Equal(t, "ITN1", got[0].ItemType)
	assert.Equal(t, "EGP", got[0].PriceCurrency)

	// Zero quantity and empty price default to 1 and "0".
	assert.Equal(t, "Red Mug", got[1].ItemName)
	assert.Equal(t, "Order Item", got[1].Desc)
	assert.Equal(t, 1, got[1].Number)
	assert.Equal(t, "0", got[1].ItemValue)
}

func TestFormat_LocalizedProductName(t *testing.T) {
	f := jtexpress.NewOrderItemFormatter()

	got := f.Format([]any{
		shipping.OrderItem{
			Product: shipping.LocalizedProduct{
				Product: shipping.Product{Name: "كوب أزرق", Description: "كوب سيراميك"},
				Names:   map[string]string{"en": "Blue Mug"},
			},
			Quantity: 1,
		},
	})

	require.Len(t, got, 1)
	assert.Equal(t, "كوب أزرق", got[0].ItemName)
	assert.Equal(t, "Blue Mug", got[0].EnglishName)
}

func TestFormat_PlainProductHasNoEnglishName(t *testing.T) {
	f := jtexpress.NewOrderItemFormatter()

	got := f.Format([]any{
		shipping.OrderItem{Product: shipping.Product{Name: "Mug"}},
	})

	require.Len(t, got, 1)
	assert.Equal(t, "", got[0].EnglishName)
}

func TestFormat_MapItems(t *testing.T) {
	f := jtexpress.NewOrderItemFormatter()

	got := f.Format([]any{
		map[string]any{
			"product": map[string]any{
				"name":        "Green Mug",
				"description": "Another mug",
			},
			"quantity":          float64(2),
			"price_at_purchase": "19.50",
		},
		map[string]any{
			"quantity":          "4",
			"price_at_purchase": float64(12),
		},
	})

	require.Len(t, got, 2)
	assert.Equal(t, "Green Mug", got[0].ItemName)
	assert.Equal(t, "Another mug", got[0].Desc)
	assert.Equal(t, 2, got[0].Number)
	assert.Equal(t, "19.50", got[0].ItemValue)

	// Missing product falls back to placeholders; numeric coercions apply.
	assert.Equal(t, "Product", got[1].ItemName)
	assert.Equal(t, "Order Item", got[1].Desc)
	assert.Equal(t, 4, got[1].Number)
	assert.Equal(t, "12", got[1].ItemValue)
}

func TestFormat_NegativeQuantityDefaultsToOne(t *testing.T) {
	f := jtexpress.NewOrderItemFormatter()

	got := f.Format([]any{
		shipping.OrderItem{Product: shipping.Product{Name: "Mug"}, Quantity: -5},
	})

	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Number)
}

func TestOrderItemPayload_FieldNames(t *testing.T) {
	payload := jtexpress.OrderItemData{
		ItemName:      "Mug",
		EnglishName:   "Mug",
		Number:        2,
		ItemType:      "ITN1",
		PriceCurrency: "EGP",
		ItemValue:     "10",
		Desc:          "Ceramic",
	}.Payload()

	assert.Equal(t, map[string]any{
		"itemName":      "Mug",
		"englishName":   "Mug",
		"chineseName":   "",
		"number":        2,
		"itemType":      "ITN1",
		"priceCurrency": "EGP",
		"itemValue":     "10",
		"itemUrl":       "",
		"desc":          "Ceramic",
	}, payload)
}
