package shipping

// OrderData is the caller-side representation of an order to be shipped.
//
// ShippingAddress and Items accept either the structured types below or
// generic map[string]any values decoded from JSON; provider adapters must
// treat both shapes identically.
type OrderData struct {
	// ID becomes the provider transaction id when non-empty. Adapters
	// generate one otherwise.
	ID string

	// Total is the order total as a decimal string.
	Total string

	// ShippingAddress is an *Address or a map[string]any.
	ShippingAddress any

	// Items holds OrderItem values or map[string]any entries.
	Items []any

	// Overrides carries optional provider envelope fields (weight, length,
	// payType, ...). Presence of a key overrides the adapter default; no
	// type validation happens here.
	Overrides map[string]any
}

// Region is a named administrative area (state, city).
type Region struct {
	Name string
}

// User is the account that placed the order.
type User struct {
	Email string
}

// Address is the structured shape of a shipping address.
type Address struct {
	FirstName    string
	LastName     string
	Phone        string
	State        *Region
	City         *Region
	Area         string
	Street       string
	AddressLine1 string
	Building     string
	Floor        string
	Flats        string
	Company      string
	User         *User
	PostCode     string
	Latitude     string
	Longitude    string
}

// Product describes the purchasable behind an order line.
type Product struct {
	Name        string
	Description string
}

// NameTranslator is implemented by product values that carry localized
// names. Adapters probe for it; absence is not an error.
type NameTranslator interface {
	TranslatedName(locale string) string
}

// LocalizedProduct is a Product with per-locale names.
type LocalizedProduct struct {
	Product
	Names map[string]string
}

// TranslatedName returns the product name for a locale, or "" when the
// locale has no translation.
func (p LocalizedProduct) TranslatedName(locale string) string {
	return p.Names[locale]
}

// OrderItem is the structured shape of an order line.
type OrderItem struct {
	// Product is a Product, *Product, LocalizedProduct, or map[string]any.
	Product any

	// Quantity of units; 0 means unset and defaults to 1.
	Quantity int

	// PriceAtPurchase is the unit value as a decimal string.
	PriceAtPurchase string
}

// Result is the uniform outcome of a provider operation.
type Result struct {
	Success    bool `json:"success"`
	StatusCode int  `json:"status_code"`

	// Data echoes the decoded provider body.
	Data map[string]any `json:"data,omitempty"`

	// Message is the provider's human-readable message on success.
	Message string `json:"message,omitempty"`

	// Convenience fields extracted from the provider payload on success.
	WaybillCode    string `json:"waybill_code,omitempty"`
	TxLogisticID   string `json:"tx_logistic_id,omitempty"`
	SortingCode    string `json:"sorting_code,omitempty"`
	LastCenterName string `json:"last_center_name,omitempty"`

	// ErrorMessage and ErrorCode are set on failure.
	ErrorMessage string `json:"error,omitempty"`
	ErrorCode    string `json:"error_code,omitempty"`
}

// Err converts a failure result into a *ProviderError for call sites that
// prefer error-based control flow. Returns nil for successful results.
func (r *Result) Err() error {
	if r == nil || r.Success {
		return nil
	}
	msg := r.ErrorMessage
	if msg == "" {
		msg = "unknown provider error"
	}
	return &ProviderError{
		Code:       r.ErrorCode,
		Message:    msg,
		StatusCode: r.StatusCode,
		Response:   r.Data,
	}
}
