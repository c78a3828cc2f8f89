package dto

import (
	"time"

	"github.com/shelfbridge/backend/internal/domain/ordering"
)

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID            string              `json:"id"`
	CustomerID    string              `json:"customer_id"`
	CustomerEmail string              `json:"customer_email"`
	Status        string              `json:"status"`
	Subtotal      string              `json:"subtotal"`
	FeeTotal      string              `json:"fee_total"`
	PaidAt        *time.Time          `json:"paid_at,omitempty"`
	Items         []OrderItemResponse `json:"items"`
	TimestampResponse
}

// OrderItemResponse represents an order line item in API responses
type OrderItemResponse struct {
	ProductID        string     `json:"product_id"`
	ProductName      string     `json:"product_name"`
	ProductSlug      string     `json:"product_slug"`
	SKU              string     `json:"sku,omitempty"`
	VendorBookID     string     `json:"vendor_book_id,omitempty"`
	Quantity         int        `json:"quantity"`
	Subtotal         string     `json:"subtotal"`
	RedeemedAt       *time.Time `json:"redeemed_at,omitempty"`
	RedemptionFailed bool       `json:"redemption_failed"`
}

// ToOrderResponse converts an order to its API representation
func ToOrderResponse(o *ordering.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ProductID:        item.ProductID.String(),
			ProductName:      item.ProductName,
			ProductSlug:      item.ProductSlug,
			SKU:              item.SKU,
			VendorBookID:     item.VendorBookID,
			Quantity:         item.Quantity,
			Subtotal:         item.Subtotal.StringFixed(2),
			RedeemedAt:       item.RedeemedAt,
			RedemptionFailed: item.RedemptionFailed,
		}
	}

	return OrderResponse{
		ID:            o.ID.String(),
		CustomerID:    o.CustomerID.String(),
		CustomerEmail: o.CustomerEmail,
		Status:        string(o.Status),
		Subtotal:      o.Subtotal.StringFixed(2),
		FeeTotal:      o.FeeTotal.StringFixed(2),
		PaidAt:        o.PaidAt,
		Items:         items,
		TimestampResponse: TimestampResponse{
			CreatedAt: o.CreatedAt,
			UpdatedAt: o.UpdatedAt,
		},
	}
}

// CartFeeRequest carries cart line subtotals for fee calculation
type CartFeeRequest struct {
	Subtotals []string `json:"subtotals" binding:"required,dive,decimal"`
}

// CartFeeResponse carries the calculated platform fee
type CartFeeResponse struct {
	Fee string `json:"fee"`
}

// ThankYouResponse carries the post-checkout redirect target
type ThankYouResponse struct {
	RedirectTo string `json:"redirect_to"`
}
