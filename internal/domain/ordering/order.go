package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shelfbridge/backend/internal/domain/shared"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusFailed    OrderStatus = "failed"
)

// Order is the aggregate root for checkout orders
type Order struct {
	shared.BaseAggregateRoot
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerEmail string          `gorm:"type:varchar(200);not null"`
	Status        OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	FeeTotal      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PaidAt        *time.Time
	Items         []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a single purchased line within an order. Items for titles
// synced from the vendor catalog carry both the SKU and the vendor book id;
// fulfillment is only attempted when both are present.
type OrderItem struct {
	shared.BaseEntity
	OrderID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName      string          `gorm:"type:varchar(200);not null"`
	ProductSlug      string          `gorm:"type:varchar(200);not null"` // permalink slug at time of purchase
	SKU              string          `gorm:"type:varchar(50)"`
	VendorBookID     string          `gorm:"type:varchar(50)"`
	Quantity         int             `gorm:"not null;default:1"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	RedeemedAt       *time.Time      // license redemption succeeded at this time
	RedemptionFailed bool            `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrder creates a new pending order for a customer
func NewOrder(customerID uuid.UUID, customerEmail string) (*Order, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Order requires a customer")
	}
	if customerEmail == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Order requires a customer email")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CustomerID:        customerID,
		CustomerEmail:     customerEmail,
		Status:            OrderStatusPending,
		Subtotal:          decimal.Zero,
		FeeTotal:          decimal.Zero,
		Items:             make([]OrderItem, 0),
	}, nil
}

// AddItem appends a line item and recalculates the order subtotal
func (o *Order) AddItem(productID uuid.UUID, name, slug, sku, vendorBookID string, subtotal decimal.Decimal) error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Items can only be added to pending orders")
	}
	if name == "" {
		return shared.NewDomainError("INVALID_ITEM", "Order item requires a product name")
	}
	if subtotal.IsNegative() {
		return shared.NewDomainError("INVALID_ITEM", "Order item subtotal cannot be negative")
	}

	o.Items = append(o.Items, OrderItem{
		BaseEntity:   shared.NewBaseEntity(),
		OrderID:      o.ID,
		ProductID:    productID,
		ProductName:  name,
		ProductSlug:  slug,
		SKU:          sku,
		VendorBookID: vendorBookID,
		Quantity:     1,
		Subtotal:     subtotal,
	})
	o.Subtotal = o.Subtotal.Add(subtotal)
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// SetFeeTotal records the platform fee charged at checkout
func (o *Order) SetFeeTotal(fee decimal.Decimal) {
	o.FeeTotal = fee
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// MarkPaid transitions the order to paid
func (o *Order) MarkPaid() error {
	if o.Status == OrderStatusPaid || o.Status == OrderStatusCompleted {
		return nil
	}
	if o.Status == OrderStatusFailed {
		return shared.NewDomainError("INVALID_STATE", "Cannot pay a failed order")
	}

	now := time.Now()
	o.Status = OrderStatusPaid
	o.PaidAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// MarkFailed transitions the order to failed
func (o *Order) MarkFailed() {
	o.Status = OrderStatusFailed
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}

// IsFailed returns true if the order failed
func (o *Order) IsFailed() bool {
	return o.Status == OrderStatusFailed
}

// LastItem returns the most recently added item, or nil for empty orders
func (o *Order) LastItem() *OrderItem {
	if len(o.Items) == 0 {
		return nil
	}
	return &o.Items[len(o.Items)-1]
}

// RequiresFulfillment returns true if the item maps to a vendor title and
// has not yet had a redemption attempt
func (i *OrderItem) RequiresFulfillment() bool {
	return i.VendorBookID != "" && i.SKU != "" && i.RedeemedAt == nil && !i.RedemptionFailed
}

// MarkRedeemed records a successful license redemption for the item
func (i *OrderItem) MarkRedeemed(at time.Time) {
	i.RedeemedAt = &at
	i.RedemptionFailed = false
	i.UpdatedAt = time.Now()
}

// MarkRedemptionFailed records a failed license redemption for the item
func (i *OrderItem) MarkRedemptionFailed() {
	i.RedemptionFailed = true
	i.UpdatedAt = time.Now()
}
