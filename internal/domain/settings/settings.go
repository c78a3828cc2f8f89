package settings

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shelfbridge/backend/internal/domain/shared"
)

// Option names recognized by the store. Unknown names are rejected on write
// so typos never create orphan rows.
const (
	OptionProductionAPIKey   = "prod_api_key"
	OptionSandboxAPIKey      = "test_api_key"
	OptionSandboxMode        = "sandbox_mode"
	OptionOnlyVendorProducts = "only_vendor_products"
	OptionDefaultPrice       = "default_price"
	OptionPlatformFeeRate    = "platform_fee_rate"
)

// defaults applied when an option has never been written
var defaults = map[string]string{
	OptionProductionAPIKey:   "",
	OptionSandboxAPIKey:      "",
	OptionSandboxMode:        "no",
	OptionOnlyVendorProducts: "no",
	OptionDefaultPrice:       "",
	OptionPlatformFeeRate:    "0.15",
}

// Option is a single named configuration value persisted by the store
type Option struct {
	shared.BaseEntity
	Name  string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Value string `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (Option) TableName() string {
	return "options"
}

// NewOption creates an option with a recognized name
func NewOption(name, value string) (*Option, error) {
	if _, ok := defaults[name]; !ok {
		return nil, shared.NewDomainError("UNKNOWN_OPTION", "Unrecognized option name: "+name)
	}
	return &Option{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Value:      value,
	}, nil
}

// SetValue replaces the stored value
func (o *Option) SetValue(value string) {
	o.Value = value
	o.UpdatedAt = time.Now()
}

// IsKnownOption reports whether name is a recognized option
func IsKnownOption(name string) bool {
	_, ok := defaults[name]
	return ok
}

// DefaultValue returns the fallback value for an option name
func DefaultValue(name string) string {
	return defaults[name]
}

// KnownOptions returns all recognized option names
func KnownOptions() []string {
	names := make([]string, 0, len(defaults))
	for name := range defaults {
		names = append(names, name)
	}
	return names
}

// Settings is a snapshot of the store options with typed accessors
type Settings struct {
	values map[string]string
}

// NewSettings builds a snapshot from stored options, filling in defaults for
// anything not yet written
func NewSettings(options []Option) *Settings {
	values := make(map[string]string, len(defaults))
	for name, value := range defaults {
		values[name] = value
	}
	for _, opt := range options {
		if _, ok := defaults[opt.Name]; ok {
			values[opt.Name] = opt.Value
		}
	}
	return &Settings{values: values}
}

// Get returns the raw value for an option name
func (s *Settings) Get(name string) string {
	return s.values[name]
}

// SandboxMode reports whether the store talks to the vendor sandbox
func (s *Settings) SandboxMode() bool {
	return s.values[OptionSandboxMode] == "yes"
}

// OnlyVendorProducts reports whether non-vendor products are trashed on sync
func (s *Settings) OnlyVendorProducts() bool {
	return s.values[OptionOnlyVendorProducts] == "yes"
}

// APIKey returns the vendor API key for the active environment. Empty when
// the key has never been configured.
func (s *Settings) APIKey() string {
	if s.SandboxMode() {
		return s.values[OptionSandboxAPIKey]
	}
	return s.values[OptionProductionAPIKey]
}

// DefaultPrice returns the opt-in fallback price for catalog items that have
// no price of their own. Zero unless the store configured one, so unpriced
// items import at zero by default.
func (s *Settings) DefaultPrice() decimal.Decimal {
	return parseDecimal(s.values[OptionDefaultPrice], defaults[OptionDefaultPrice])
}

// PlatformFeeRate returns the checkout fee rate as a fraction
func (s *Settings) PlatformFeeRate() decimal.Decimal {
	return parseDecimal(s.values[OptionPlatformFeeRate], defaults[OptionPlatformFeeRate])
}

func parseDecimal(value, fallback string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		d, _ = decimal.NewFromString(fallback)
	}
	return d
}
