package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/nilecart/jtexpress/pkg/shipping/jtexpress"
	"go.opentelemetry.io/otel/attribute"
)

// Config holds all configuration for the service.
type Config struct {
	// Server
	Port     int    `envconfig:"PORT" default:"80"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// J&T Express account
	JTAPIAccount   string `envconfig:"JT_API_ACCOUNT" default:"292508153084379141"`
	JTPrivateKey   string `envconfig:"JT_PRIVATE_KEY" default:"a0a1047cce70493c9d5d29704f05d0d9"`
	JTCustomerCode string `envconfig:"JT_CUSTOMER_CODE" default:"J0086000020"`
	JTCustomerPwd  string `envconfig:"JT_CUSTOMER_PWD" default:"4AF43B0704D20349725BF0BBB64051BB"`
	JTPrintDigest  string `envconfig:"JT_DIGEST"`
	JTProduction   bool   `envconfig:"JT_PRODUCTION" default:"false"`
	JTBaseURL      string `envconfig:"JT_BASE_URL"`
	JTUseMock      bool   `envconfig:"JT_USE_MOCK" default:"false"`

	// Merchant origin address
	JTSenderName      string `envconfig:"JT_SENDER_NAME" default:"Test Sender"`
	JTSenderMobile    string `envconfig:"JT_SENDER_MOBILE" default:"01000000000"`
	JTSenderPhone     string `envconfig:"JT_SENDER_PHONE" default:"01000000000"`
	JTSenderProv      string `envconfig:"JT_SENDER_PROV" default:"الجيزة"`
	JTSenderCity      string `envconfig:"JT_SENDER_CITY" default:"مدينة السادس من أكتوبر"`
	JTSenderArea      string `envconfig:"JT_SENDER_AREA" default:"test area"`
	JTSenderStreet    string `envconfig:"JT_SENDER_STREET" default:"456"`
	JTSenderBuilding  string `envconfig:"JT_SENDER_BUILDING" default:"1"`
	JTSenderFloor     string `envconfig:"JT_SENDER_FLOOR" default:"22"`
	JTSenderFlats     string `envconfig:"JT_SENDER_FLATS" default:"33"`
	JTSenderCompany   string `envconfig:"JT_SENDER_COMPANY" default:"testCompany"`
	JTSenderMailBox   string `envconfig:"JT_SENDER_MAILBOX"`
	JTSenderPostCode  string `envconfig:"JT_SENDER_POSTCODE"`
	JTSenderLatitude  string `envconfig:"JT_SENDER_LAT"`
	JTSenderLongitude string `envconfig:"JT_SENDER_LNG"`

	// Telemetry
	OTELEnabled  bool   `envconfig:"OTEL_ENABLED" default:"true"`
	OTELEndpoint string `envconfig:"OTEL_ENDPOINT" default:"http://localhost:4318"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"jtexpress-bridge"`
	Version      string `envconfig:"SERVICE_VERSION" default:"0.0.1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// JTExpress assembles the adapter configuration from the flat env surface.
func (c *Config) JTExpress() jtexpress.Config {
	return jtexpress.Config{
		APIAccount:   c.JTAPIAccount,
		PrivateKey:   c.JTPrivateKey,
		CustomerCode: c.JTCustomerCode,
		CustomerPwd:  c.JTCustomerPwd,
		PrintDigest:  c.JTPrintDigest,
		Production:   c.JTProduction,
		BaseURL:      c.JTBaseURL,
		UseMock:      c.JTUseMock,
		Sender: jtexpress.SenderConfig{
			Name:      c.JTSenderName,
			Mobile:    c.JTSenderMobile,
			Phone:     c.JTSenderPhone,
			Prov:      c.JTSenderProv,
			City:      c.JTSenderCity,
			Area:      c.JTSenderArea,
			Street:    c.JTSenderStreet,
			Building:  c.JTSenderBuilding,
			Floor:     c.JTSenderFloor,
			Flats:     c.JTSenderFlats,
			Company:   c.JTSenderCompany,
			MailBox:   c.JTSenderMailBox,
			PostCode:  c.JTSenderPostCode,
			Latitude:  c.JTSenderLatitude,
			Longitude: c.JTSenderLongitude,
		},
	}
}

// Attributes returns OpenTelemetry attributes for this configuration.
func (c *Config) Attributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", c.ServiceName),
		attribute.String("service.version", c.Version),
		attribute.Bool("jtexpress.production", c.JTProduction),
		attribute.Bool("jtexpress.mock", c.JTUseMock),
	}
}
