package jtexpress

import (
	"strings"

	"github.com/nilecart/jtexpress/pkg/shipping"
)

const (
	countryCode         = "EGY"
	defaultPhone        = "01000000000"
	defaultReceiverName = "Test Receiver"
	defaultReceiverProv = "القاهرة"
	defaultReceiverCity = "مدينة نصر"
)

// AddressData is the provider-shaped address record. Every field is always
// present on the wire, defaulted to the empty string; the provider tolerates
// empty values but not absent keys inside the address object.
type AddressData struct {
	Name        string
	Mobile      string
	Phone       string
	CountryCode string
	Prov        string
	City        string
	Area        string
	Street      string
	Building    string
	Floor       string
	Flats       string
	Company     string
	MailBox     string
	PostCode    string
	Latitude    string
	Longitude   string
}

// Payload serializes the address with the provider's field names. No field
// is ever dropped here; the sparse-payload filter applies to the envelope
// top level only.
func (a AddressData) Payload() map[string]any {
	return map[string]any{
		"name":        a.Name,
		"mobile":      a.Mobile,
		"phone":       a.Phone,
		"countryCode": a.CountryCode,
		"prov":        a.Prov,
		"city":        a.City,
		"area":        a.Area,
		"street":      a.Street,
		"building":    a.Building,
		"floor":       a.Floor,
		"flats":       a.Flats,
		"company":     a.Company,
		"mailBox":     a.MailBox,
		"postCode":    a.PostCode,
		"latitude":    a.Latitude,
		"longitude":   a.Longitude,
	}
}

// SenderConfig holds the merchant's fixed origin address. Empty fields fall
// back to the documented defaults at formatting time.
type SenderConfig struct {
	Name      string
	Mobile    string
	Phone     string
	Prov      string
	City      string
	Area      string
	Street    string
	Building  string
	Floor     string
	Flats     string
	Company   string
	MailBox   string
	PostCode  string
	Latitude  string
	Longitude string
}

// AddressFormatter maps application-level addresses onto AddressData.
type AddressFormatter struct {
	sender SenderConfig
}

// NewAddressFormatter creates a formatter with the configured sender origin.
func NewAddressFormatter(sender SenderConfig) *AddressFormatter {
	return &AddressFormatter{sender: sender}
}

// FormatReceiver builds the receiver address from a *shipping.Address or a
// map[string]any. Empty or unsupported input yields a fixed placeholder
// receiver so demo and staging calls can proceed.
func (f *AddressFormatter) FormatReceiver(addr any) AddressData {
	switch v := addr.(type) {
	case *shipping.Address:
		if v == nil {
			return defaultReceiver()
		}
		return fromStructAddress(v)
	case shipping.Address:
		return fromStructAddress(&v)
	case map[string]any:
		if len(v) == 0 {
			return defaultReceiver()
		}
		return fromMapAddress(v)
	default:
		return defaultReceiver()
	}
}

// FormatSender builds the merchant origin address from configuration. It
// takes no parameters: the sender is account-level, not per-order.
func (f *AddressFormatter) FormatSender() AddressData {
	s := f.sender
	return AddressData{
		Name:        orDefault(s.Name, "Test Sender"),
		Mobile:      orDefault(s.Mobile, defaultPhone),
		Phone:       orDefault(s.Phone, defaultPhone),
		CountryCode: countryCode,
		Prov:        orDefault(s.Prov, "الجيزة"),
		City:        orDefault(s.City, "مدينة السادس من أكتوبر"),
		Area:        orDefault(s.Area, "test area"),
		Street:      orDefault(s.Street, "456"),
		Building:    orDefault(s.Building, "1"),
		Floor:       orDefault(s.Floor, "22"),
		Flats:       orDefault(s.Flats, "33"),
		Company:     orDefault(s.Company, "testCompany"),
		MailBox:     s.MailBox,
		PostCode:    s.PostCode,
		Latitude:    s.Latitude,
		Longitude:   s.Longitude,
	}
}

func defaultReceiver() AddressData {
	return AddressData{
		Name:        defaultReceiverName,
		Mobile:      defaultPhone,
		Phone:       defaultPhone,
		CountryCode: countryCode,
		Prov:        defaultReceiverProv,
		City:        defaultReceiverCity,
		Area:        "test area",
		Street:      "test street",
	}
}

func fromStructAddress(addr *shipping.Address) AddressData {
	stateName := ""
	if addr.State != nil {
		stateName = addr.State.Name
	}
	cityName := ""
	if addr.City != nil {
		cityName = addr.City.Name
	}
	email := ""
	if addr.User != nil {
		email = addr.User.Email
	}
	return buildAddressData(extracted{
		name:      strings.TrimSpace(addr.FirstName + " " + addr.LastName),
		phone:     addr.Phone,
		stateName: stateName,
		cityName:  cityName,
		area:      addr.Area,
		street:    addr.Street,
		line1:     addr.AddressLine1,
		building:  addr.Building,
		floor:     addr.Floor,
		flats:     addr.Flats,
		company:   addr.Company,
		mailBox:   email,
		postCode:  addr.PostCode,
		latitude:  addr.Latitude,
		longitude: addr.Longitude,
	})
}

func fromMapAddress(addr map[string]any) AddressData {
	return buildAddressData(extracted{
		name:      strings.TrimSpace(mapString(addr, "first_name") + " " + mapString(addr, "last_name")),
		phone:     mapString(addr, "phone"),
		stateName: nestedString(addr, "state", "name"),
		cityName:  nestedString(addr, "city", "name"),
		area:      mapString(addr, "area"),
		street:    mapString(addr, "street"),
		line1:     mapString(addr, "address_line1"),
		building:  mapString(addr, "building"),
		floor:     mapString(addr, "floor"),
		flats:     mapString(addr, "flats"),
		company:   mapString(addr, "company"),
		mailBox:   nestedString(addr, "user", "email"),
		postCode:  mapString(addr, "post_code"),
		latitude:  mapString(addr, "latitude"),
		longitude: mapString(addr, "longitude"),
	})
}

// extracted is the shape-independent intermediate both adapters produce.
type extracted struct {
	name      string
	phone     string
	stateName string
	cityName  string
	area      string
	street    string
	line1     string
	building  string
	floor     string
	flats     string
	company   string
	mailBox   string
	postCode  string
	latitude  string
	longitude string
}

// buildAddressData applies the per-field precedence chains. The mailBox
// reach-through to the order user's email is intentional.
func buildAddressData(e extracted) AddressData {
	prov := e.stateName
	if prov == "" {
		prov = e.cityName
	}
	if prov == "" {
		prov = defaultReceiverProv
	}

	area := e.area
	if area == "" {
		area = e.stateName
	}

	street := e.street
	if street == "" {
		street = e.line1
	}

	return AddressData{
		Name:        e.name,
		Mobile:      orDefault(e.phone, defaultPhone),
		Phone:       orDefault(e.phone, defaultPhone),
		CountryCode: countryCode,
		Prov:        prov,
		City:        orDefault(e.cityName, defaultReceiverCity),
		Area:        area,
		Street:      street,
		Building:    e.building,
		Floor:       e.floor,
		Flats:       e.flats,
		Company:     e.company,
		MailBox:     e.mailBox,
		PostCode:    e.postCode,
		Latitude:    e.latitude,
		Longitude:   e.longitude,
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func mapString(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func nestedString(m map[string]any, key, sub string) string {
	if nested, ok := m[key].(map[string]any); ok {
		return mapString(nested, sub)
	}
	return ""
}
