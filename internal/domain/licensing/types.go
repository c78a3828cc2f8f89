package licensing

import "github.com/shopspring/decimal"

// Credential identifies a reader account on the vendor platform. The
// reference is derived from the local user id, so a reader always maps to
// the same vendor account.
type Credential struct {
	Reference   string
	AccessToken string
}

// NewUser describes a reader account to provision on the vendor platform
type NewUser struct {
	Reference string
	FirstName string
	LastName  string
	Email     string
}

// License is a content license held by a reader
type License struct {
	SKU    string
	Active bool
}

// Code is a redeemable license code issued for a SKU
type Code struct {
	SKU  string
	Code string
}

// Redemption is the result of redeeming a code for a reader
type Redemption struct {
	Code   string
	Status string
}

// CatalogItem is one title from the vendor product feed
type CatalogItem struct {
	VendorBookID string
	Title        string
	Description  string
	CoverURL     string
	Variants     []CatalogVariant
}

// CatalogVariant is one purchasable variant of a catalog item
type CatalogVariant struct {
	SKU    string
	Type   string
	Prices []CatalogPrice
}

// CatalogPrice is a price entry on a variant
type CatalogPrice struct {
	Currency string
	Type     string
	Value    decimal.Decimal
}

// SingleLicensePrice returns the digital list price in USD from the first
// single-license variant, along with its SKU. ok is false when the item has
// no such variant or price.
func (i CatalogItem) SingleLicensePrice() (sku string, price decimal.Decimal, ok bool) {
	for _, v := range i.Variants {
		if v.Type != VariantTypeSingle {
			continue
		}
		for _, p := range v.Prices {
			if p.Currency == "USD" && p.Type == PriceTypeDigitalList {
				return v.SKU, p.Value, true
			}
		}
		return v.SKU, decimal.Zero, false
	}
	return "", decimal.Zero, false
}

const (
	VariantTypeSingle    = "Single"
	PriceTypeDigitalList = "digital-list-price"
)
