package ordering

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shelfbridge/backend/internal/domain/shared"
)

// OrderRepository defines persistence operations for orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]Order, error)
	// FindPaidForCustomerWithProduct returns paid or completed orders placed by
	// the customer that contain the product and were paid at or after since.
	FindPaidForCustomerWithProduct(ctx context.Context, customerID, productID uuid.UUID, since time.Time) ([]Order, error)
	Save(ctx context.Context, order *Order) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
