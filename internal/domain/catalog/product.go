package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shelfbridge/backend/internal/domain/shared"
	"github.com/shelfbridge/backend/internal/domain/shared/valueobject"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive  ProductStatus = "active"
	ProductStatusTrashed ProductStatus = "trashed"
)

// Product represents a sellable title in the store catalog.
// It is the aggregate root for catalog operations. Titles synced from the
// vendor catalog carry a VendorBookID; locally created products may not.
type Product struct {
	shared.BaseAggregateRoot
	Code             string          `gorm:"type:varchar(50);index"` // SKU, may be empty for titles without a purchasable variant
	Name             string          `gorm:"type:varchar(200);not null"`
	Slug             string          `gorm:"type:varchar(200);not null;uniqueIndex"`
	Description      string          `gorm:"type:text"`
	RegularPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SoldIndividually bool            `gorm:"not null;default:true"`
	VendorBookID     string          `gorm:"type:varchar(50);index"` // vendor catalog identifier (vbid)
	CoverImageKey    string          `gorm:"type:varchar(200)"`      // object storage key of the cover image
	Status           ProductStatus   `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with a slug derived from its name
func NewProduct(name string) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              Slugify(name),
		RegularPrice:      decimal.Zero,
		SoldIndividually:  true,
		Status:            ProductStatusActive,
	}, nil
}

// Rename updates the product name and re-derives the slug
func (p *Product) Rename(name string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = name
	p.Slug = Slugify(name)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetCode sets the product code (SKU)
func (p *Product) SetCode(code string) error {
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot exceed 50 characters")
	}

	p.Code = code
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetRegularPrice sets the regular (list) price
func (p *Product) SetRegularPrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Regular price cannot be negative")
	}

	p.RegularPrice = price.Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetDescription updates the product description
func (p *Product) SetDescription(description string) {
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetVendorBookID links the product to a vendor catalog entry
func (p *Product) SetVendorBookID(vbid string) {
	p.VendorBookID = vbid
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetCoverImageKey records the object storage key of the cover image
func (p *Product) SetCoverImageKey(key string) {
	p.CoverImageKey = key
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetSoldIndividually marks whether the product is limited to one per order
func (p *Product) SetSoldIndividually(v bool) {
	p.SoldIndividually = v
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// Trash soft-deletes the product from the storefront
func (p *Product) Trash() error {
	if p.Status == ProductStatusTrashed {
		return shared.NewDomainError("ALREADY_TRASHED", "Product is already trashed")
	}

	p.Status = ProductStatusTrashed
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Restore brings a trashed product back to the storefront
func (p *Product) Restore() error {
	if p.Status == ProductStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Product is already active")
	}

	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// IsActive returns true if the product is visible in the storefront
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

// IsVendorLinked returns true if the product maps to a vendor catalog entry
func (p *Product) IsVendorLinked() bool {
	return p.VendorBookID != ""
}

// HasCode returns true if the product has a SKU assigned
func (p *Product) HasCode() bool {
	return p.Code != ""
}

// RegularPriceMoney returns the regular price as a Money value object
func (p *Product) RegularPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.RegularPrice)
}

// validateProductName validates the product name
func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
