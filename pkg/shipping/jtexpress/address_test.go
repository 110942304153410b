package jtexpress_test

import (
	"testing"

	"github.com/nilecart/jtexpress/pkg/shipping"
	"github.com/nilecart/jtexpress/pkg/shipping/jtexpress"
	"github.com/stretchr/testify/assert"
)

func TestFormatReceiver_NilYieldsPlaceholder(t *testing.T) {
	f := jtexpress.NewAddressFormatter(jtexpress.SenderConfig{})

	for _, input := range []any{nil, (*shipping.Address)(nil), map[string]any{}, 42} {
		got := f.FormatReceiver(input)
		assert.Equal(t, "Test Receiver", got.Name)
		assert.Equal(t, "01000000000", got.Mobile)
		assert.Equal(t, "01000000000", got.Phone)
		assert.Equal(t, "EGY", got.CountryCode)
		assert.Equal(t, "القاهرة", got.Prov)
		assert.Equal(t, "مدينة نصر", got.City)
	}
}

func TestFormatReceiver_StructAddress(t *testing.T) {
	f := jtexpress.NewAddressFormatter(jtexpress.SenderConfig{})

	got := f.FormatReceiver(&shipping.Address{
		FirstName:    "Ahmed",
		LastName:     "Hassan",
		Phone:        "01234567890",
		State:        &shipping.Region{Name: "Giza"},
		City:         &shipping.Region{Name: "Dokki"},
		Area:         "Mesaha",
		Street:       "Tahrir St",
		AddressLine1: "Apt 4, Tahrir St",
		Building:     "12",
		Floor:        "3",
		Flats:        "7",
		Company:      "Acme",
		User:         &shipping.User{Email: "ahmed@example.com"},
		PostCode:     "12611",
		Latitude:     "30.03",
		Longitude:    "31.21",
	})

	assert.Equal(t, "Ahmed Hassan", got.Name)
	assert.Equal(t, "01234567890", got.Mobile)
	assert.Equal(t, "01234567890", got.Phone)
	assert.Equal(t, "EGY", got.CountryCode)
	assert.Equal(t, "Giza", got.Prov)
	assert.Equal(t, "Dokki", got.City)
	assert.Equal(t, "Mesaha", got.Area)
	assert.Equal(t, "Tahrir St", got.Street)
	assert.Equal(t, "12", got.Building)
	assert.Equal(t, "ahmed@example.com", got.MailBox)
	assert.Equal(t, "12611", got.PostCode)
}

func TestFormatReceiver_PrecedenceChains(t *testing.T) {
	f := jtexpress.NewAddressFormatter(jtexpress.SenderConfig{})

	// No state: prov falls back to the city name, area to the (empty)
	// state name, street to address line 1.
	got := f.FormatReceiver(&shipping.Address{
		FirstName:    "Mona",
		Phone:        "01111111111",
		City:         &shipping.Region{Name: "Alexandria"},
		AddressLine1: "Corniche Rd 5",
	})

	assert.Equal(t, "Alexandria", got.Prov)
	assert.Equal(t, "Alexandria", got.City)
	assert.Equal(t, "", got.Area)
	assert.Equal(t, "Corniche Rd 5", got.Street)
}

func TestFormatReceiver_AreaFallsBackToState(t *testing.T) {
	f := jtexpress.NewAddressFormatter(jtexpress.SenderConfig{})

	got := f.FormatReceiver(&shipping.Address{
		FirstName: "Omar",
		State:     &shipping.Region{Name: "Cairo"},
	})

	assert.Equal(t, "Cairo", got.Prov)
	assert.Equal(t, "Cairo", got.Area)
	assert.Equal(t, "مدينة نصر", got.City)
	assert.Equal(t, "01000000000", got.Mobile)
}

func TestFormatReceiver_MapAndStructParity(t *testing.T) {
	f := jtexpress.NewAddressFormatter(jtexpress.SenderConfig{})

	fromStruct := f.FormatReceiver(&shipping.Address{
		FirstName:    "Sara",
		LastName:     "Ali",
		Phone:        "01098765432",
		State:        &shipping.Region{Name: "Giza"},
		City:         &shipping.Region{Name: "Haram"},
		Street:       "Pyramids Rd",
		AddressLine1: "ignored",
		Building:     "9",
		User:         &shipping.User{Email: "sara@example.com"},
	})

	fromMap := f.FormatReceiver(map[string]any{
		"first_name":    "Sara",
		"last_name":     "Ali",
		"phone":         "01098765432",
		"state":         map[string]any{"name": "Giza"},
		"city":          map[string]any{"name": "Haram"},
		"street":        "Pyramids Rd",
		"address_line1": "ignored",
		"building":      "9",
		"user":          map[string]any{"email": "sara@example.com"},
	})

	assert.Equal(t, fromStruct, fromMap)
}

func TestFormatReceiver_MapWithNonStringValues(t *testing.T) {
	f := jtexpress.NewAddressFormatter(jtexpress.SenderConfig{})

	// Numeric and nil values are treated as absent, not stringified.
	got := f.FormatReceiver(map[string]any{
		"first_name": "Nour",
		"phone":      1234567,
		"building":   nil,
		"state":      "not a map",
	})

	assert.Equal(t, "Nour", got.Name)
	assert.Equal(t, "01000000000", got.Phone)
	assert.Equal(t, "", got.Building)
	assert.Equal(t, "القاهرة", got.Prov)
}

func TestAddressPayload_AllKeysAlwaysPresent(t *testing.T) {
	payload := jtexpress.AddressData{}.Payload()

	keys := []string{
		"name", "mobile", "phone", "countryCode", "prov", "city", "area",
		"street", "building", "floor", "flats", "company", "mailBox",
		"postCode", "latitude", "longitude",
	}
	assert.Len(t, payload, len(keys))
	for _, key := range keys {
		assert.Contains(t, payload, key)
		assert.Equal(t, "", payload[key])
	}
}

func TestFormatSender_ConfiguredValues(t *testing.T) {
	f := jtexpress.NewAddressFormatter(jtexpress.SenderConfig{
		Name:    "NileCart Fulfillment",
		Mobile:  "01555555555",
		Phone:   "0233333333",
		Prov:    "Giza",
		City:    "6th of October",
		Area:    "Industrial Zone",
		Street:  "Factory Rd 3",
		MailBox: "ops@nilecart.example",
	})

	got := f.FormatSender()
	assert.Equal(t, "NileCart Fulfillment", got.Name)
	assert.Equal(t, "01555555555", got.Mobile)
	assert.Equal(t, "0233333333", got.Phone)
	assert.Equal(t, "EGY", got.CountryCode)
	assert.Equal(t, "Giza", got.Prov)
	assert.Equal(t, "6th of October", got.City)
	assert.Equal(t, "Industrial Zone", got.Area)
	assert.Equal(t, "ops@nilecart.example", got.MailBox)
}

func TestFormatSender_Fallbacks(t *testing.T) {
	f := jtexpress.NewAddressFormatter(jtexpress.SenderConfig{})

	got := f.FormatSender()
	assert.Equal(t, "Test Sender", got.Name)
	assert.Equal(t, "01000000000", got.Mobile)
	assert.Equal(t, "01000000000", got.Phone)
	assert.Equal(t, "الجيزة", got.Prov)
	assert.Equal(t, "مدينة السادس من أكتوبر", got.City)
	assert.Equal(t, "test area", got.Area)
	assert.Equal(t, "456", got.Street)
	assert.Equal(t, "1", got.Building)
	assert.Equal(t, "22", got.Floor)
	assert.Equal(t, "33", got.Flats)
	assert.Equal(t, "testCompany", got.Company)
	assert.Equal(t, "", got.MailBox)
}
