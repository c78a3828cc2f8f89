package storefront

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shelfbridge/backend/internal/domain/licensing"
	"github.com/shelfbridge/backend/internal/domain/ordering"
	"github.com/shelfbridge/backend/internal/domain/settings"
)

// ProductPath returns the storefront permalink path for a product slug
func ProductPath(slug string) string {
	return "/products/" + slug
}

// CheckoutService runs the checkout lifecycle hooks: the platform fee
// calculation, post-payment license redemption, and the thank-you redirect.
type CheckoutService struct {
	orders  ordering.OrderRepository
	options settings.OptionRepository
	gateway licensing.Gateway
	logger  *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	orders ordering.OrderRepository,
	options settings.OptionRepository,
	gateway licensing.Gateway,
	logger *zap.Logger,
) *CheckoutService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutService{
		orders:  orders,
		options: options,
		gateway: gateway,
		logger:  logger,
	}
}

// HandlePaymentSuccess marks the order paid and redeems a license for every
// qualifying line item. Redemption failures are recorded on the item and
// never fail the order; each item gets exactly one attempt.
func (s *CheckoutService) HandlePaymentSuccess(ctx context.Context, orderID uuid.UUID) (*ordering.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.MarkPaid(); err != nil {
		return nil, err
	}

	// The platform fee is fixed at payment time; a retried payment hook
	// keeps the fee recorded on the first run.
	if order.FeeTotal.IsZero() {
		fee, err := s.CartFee(ctx, itemSubtotals(order))
		if err != nil {
			return nil, err
		}
		order.SetFeeTotal(fee)
	}

	buyer := licensing.NewUser{
		Reference: CustomerReference(order.CustomerID),
		Email:     order.CustomerEmail,
	}

	for i := range order.Items {
		item := &order.Items[i]
		if !item.RequiresFulfillment() {
			continue
		}

		if err := s.fulfillItem(ctx, buyer, item.SKU); err != nil {
			s.logger.Warn("license redemption failed",
				zap.String("order_id", order.ID.String()),
				zap.String("sku", item.SKU),
				zap.Error(err))
			item.MarkRedemptionFailed()
			continue
		}

		item.MarkRedeemed(time.Now())
	}

	if err := s.orders.Save(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

func itemSubtotals(order *ordering.Order) []decimal.Decimal {
	subtotals := make([]decimal.Decimal, len(order.Items))
	for i, item := range order.Items {
		subtotals[i] = item.Subtotal
	}
	return subtotals
}

// fulfillItem grants the buyer a license for one purchased SKU
func (s *CheckoutService) fulfillItem(ctx context.Context, buyer licensing.NewUser, sku string) error {
	accessToken, err := ensureAccessToken(ctx, s.gateway, buyer)
	if err != nil {
		return err
	}
	return grantLicense(ctx, s.gateway, accessToken, sku)
}

// ThankYouRedirect returns the storefront path the buyer lands on after
// checkout: the permalink of the last purchased item. Failed and empty
// orders produce no redirect.
func (s *CheckoutService) ThankYouRedirect(ctx context.Context, orderID uuid.UUID) (string, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return "", err
	}

	if order.IsFailed() {
		return "", nil
	}

	last := order.LastItem()
	if last == nil {
		return "", nil
	}

	return ProductPath(last.ProductSlug), nil
}

// CartFee computes the platform fee for a cart as rate times the sum of
// line subtotals, rounded to cents. A zero-subtotal cart carries no fee.
func (s *CheckoutService) CartFee(ctx context.Context, subtotals []decimal.Decimal) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, subtotal := range subtotals {
		total = total.Add(subtotal)
	}

	if !total.IsPositive() {
		return decimal.Zero, nil
	}

	snapshot, err := s.options.Load(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	return total.Mul(snapshot.PlatformFeeRate()).Round(2), nil
}
