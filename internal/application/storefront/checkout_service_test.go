package storefront

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shelfbridge/backend/internal/domain/licensing"
	"github.com/shelfbridge/backend/internal/domain/ordering"
	"github.com/shelfbridge/backend/internal/domain/settings"
	"github.com/shelfbridge/backend/internal/domain/shared"
)

func newPaidTestOrder(t *testing.T) *ordering.Order {
	t.Helper()
	order, err := ordering.NewOrder(uuid.New(), "buyer@example.com")
	require.NoError(t, err)
	require.NoError(t, order.AddItem(uuid.New(), "Introduction to Biology", "introduction-to-biology",
		"SKU1", "VBID-1", decimal.NewFromFloat(49.99)))
	return order
}

func TestCheckoutService_HandlePaymentSuccess_RedeemsLicense(t *testing.T) {
	orders := new(MockOrderRepository)
	options := new(MockOptionRepository)
	gateway := new(MockGateway)
	service := NewCheckoutService(orders, options, gateway, nil)

	order := newPaidTestOrder(t)
	ref := CustomerReference(order.CustomerID)

	orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	options.On("Load", mock.Anything).Return(settings.NewSettings(nil), nil)
	gateway.On("CheckCredentials", mock.Anything, ref).
		Return(&licensing.Credential{Reference: ref, AccessToken: "tok"}, nil)
	gateway.On("CreateCode", mock.Anything, "tok", "SKU1").
		Return(&licensing.Code{SKU: "SKU1", Code: "CODE-1"}, nil)
	gateway.On("RedeemCode", mock.Anything, "tok", "CODE-1").
		Return(&licensing.Redemption{Code: "CODE-1", Status: "active"}, nil)
	orders.On("Save", mock.Anything, order).Return(nil)

	result, err := service.HandlePaymentSuccess(context.Background(), order.ID)

	require.NoError(t, err)
	assert.Equal(t, ordering.OrderStatusPaid, result.Status)
	require.NotNil(t, result.Items[0].RedeemedAt)
	assert.False(t, result.Items[0].RedemptionFailed)
	// 49.99 * 0.15 rounded to cents
	assert.Equal(t, "7.50", result.FeeTotal.StringFixed(2))
}

func TestCheckoutService_HandlePaymentSuccess_ProvisionsAccount(t *testing.T) {
	orders := new(MockOrderRepository)
	options := new(MockOptionRepository)
	gateway := new(MockGateway)
	service := NewCheckoutService(orders, options, gateway, nil)

	order := newPaidTestOrder(t)
	ref := CustomerReference(order.CustomerID)

	orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	options.On("Load", mock.Anything).Return(settings.NewSettings(nil), nil)
	gateway.On("CheckCredentials", mock.Anything, ref).Return(nil, licensing.ErrUnavailable)
	gateway.On("CreateUserCredentials", mock.Anything, licensing.NewUser{Reference: ref, Email: "buyer@example.com"}).
		Return(&licensing.Credential{Reference: ref, AccessToken: "tok-new"}, nil)
	gateway.On("CreateCode", mock.Anything, "tok-new", "SKU1").
		Return(&licensing.Code{SKU: "SKU1", Code: "CODE-1"}, nil)
	gateway.On("RedeemCode", mock.Anything, "tok-new", "CODE-1").
		Return(&licensing.Redemption{Code: "CODE-1", Status: "active"}, nil)
	orders.On("Save", mock.Anything, order).Return(nil)

	result, err := service.HandlePaymentSuccess(context.Background(), order.ID)

	require.NoError(t, err)
	require.NotNil(t, result.Items[0].RedeemedAt)
}

func TestCheckoutService_HandlePaymentSuccess_RedemptionFailureNeverFailsOrder(t *testing.T) {
	orders := new(MockOrderRepository)
	options := new(MockOptionRepository)
	gateway := new(MockGateway)
	service := NewCheckoutService(orders, options, gateway, nil)

	order := newPaidTestOrder(t)
	ref := CustomerReference(order.CustomerID)

	orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	options.On("Load", mock.Anything).Return(settings.NewSettings(nil), nil)
	gateway.On("CheckCredentials", mock.Anything, ref).Return(nil, licensing.ErrUnavailable)
	gateway.On("CreateUserCredentials", mock.Anything, mock.Anything).Return(nil, licensing.ErrUnavailable)
	orders.On("Save", mock.Anything, order).Return(nil)

	result, err := service.HandlePaymentSuccess(context.Background(), order.ID)

	require.NoError(t, err)
	assert.Equal(t, ordering.OrderStatusPaid, result.Status)
	assert.Nil(t, result.Items[0].RedeemedAt)
	assert.True(t, result.Items[0].RedemptionFailed)
	assert.False(t, result.Items[0].RequiresFulfillment())
}

func TestCheckoutService_HandlePaymentSuccess_SkipsNonVendorItems(t *testing.T) {
	orders := new(MockOrderRepository)
	options := new(MockOptionRepository)
	gateway := new(MockGateway)
	service := NewCheckoutService(orders, options, gateway, nil)

	order, err := ordering.NewOrder(uuid.New(), "buyer@example.com")
	require.NoError(t, err)
	require.NoError(t, order.AddItem(uuid.New(), "Plain Product", "plain-product", "", "", decimal.NewFromInt(10)))

	orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	options.On("Load", mock.Anything).Return(settings.NewSettings(nil), nil)
	orders.On("Save", mock.Anything, order).Return(nil)

	_, err = service.HandlePaymentSuccess(context.Background(), order.ID)

	require.NoError(t, err)
	gateway.AssertNotCalled(t, "CheckCredentials", mock.Anything, mock.Anything)
}

func TestCheckoutService_HandlePaymentSuccess_SingleAttemptPerItem(t *testing.T) {
	orders := new(MockOrderRepository)
	options := new(MockOptionRepository)
	gateway := new(MockGateway)
	service := NewCheckoutService(orders, options, gateway, nil)

	order := newPaidTestOrder(t)
	order.Items[0].MarkRedemptionFailed()

	orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	options.On("Load", mock.Anything).Return(settings.NewSettings(nil), nil)
	orders.On("Save", mock.Anything, order).Return(nil)

	_, err := service.HandlePaymentSuccess(context.Background(), order.ID)

	require.NoError(t, err)
	gateway.AssertNotCalled(t, "CheckCredentials", mock.Anything, mock.Anything)
}

func TestCheckoutService_HandlePaymentSuccess_KeepsRecordedFee(t *testing.T) {
	orders := new(MockOrderRepository)
	options := new(MockOptionRepository)
	gateway := new(MockGateway)
	service := NewCheckoutService(orders, options, gateway, nil)

	order := newPaidTestOrder(t)
	order.Items[0].MarkRedemptionFailed()
	order.SetFeeTotal(decimal.NewFromFloat(7.50))

	orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	orders.On("Save", mock.Anything, order).Return(nil)

	result, err := service.HandlePaymentSuccess(context.Background(), order.ID)

	require.NoError(t, err)
	assert.Equal(t, "7.50", result.FeeTotal.StringFixed(2))
	options.AssertNotCalled(t, "Load", mock.Anything)
}

func TestCheckoutService_ThankYouRedirect(t *testing.T) {
	orders := new(MockOrderRepository)
	options := new(MockOptionRepository)
	gateway := new(MockGateway)
	service := NewCheckoutService(orders, options, gateway, nil)

	t.Run("redirects to last item permalink", func(t *testing.T) {
		order := newPaidTestOrder(t)
		require.NoError(t, order.AddItem(uuid.New(), "Second Title", "second-title", "SKU2", "VBID-2", decimal.NewFromInt(5)))
		orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		target, err := service.ThankYouRedirect(context.Background(), order.ID)
		require.NoError(t, err)
		assert.Equal(t, "/products/second-title", target)
	})

	t.Run("failed order gets no redirect", func(t *testing.T) {
		order := newPaidTestOrder(t)
		order.MarkFailed()
		orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		target, err := service.ThankYouRedirect(context.Background(), order.ID)
		require.NoError(t, err)
		assert.Empty(t, target)
	})

	t.Run("empty order gets no redirect", func(t *testing.T) {
		order, err := ordering.NewOrder(uuid.New(), "buyer@example.com")
		require.NoError(t, err)
		orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)

		target, err := service.ThankYouRedirect(context.Background(), order.ID)
		require.NoError(t, err)
		assert.Empty(t, target)
	})

	t.Run("missing order", func(t *testing.T) {
		id := uuid.New()
		orders.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := service.ThankYouRedirect(context.Background(), id)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCheckoutService_CartFee(t *testing.T) {
	tests := []struct {
		name      string
		subtotals []string
		feeRate   string
		want      string
	}{
		{
			name:      "default rate",
			subtotals: []string{"49.99", "10.00"},
			feeRate:   "",
			want:      "9.00", // 59.99 * 0.15 = 8.9985
		},
		{
			name:      "custom rate",
			subtotals: []string{"100.00"},
			feeRate:   "0.10",
			want:      "10.00",
		},
		{
			name:      "zero subtotal carries no fee",
			subtotals: []string{"0"},
			feeRate:   "",
			want:      "0.00",
		},
		{
			name:      "empty cart carries no fee",
			subtotals: nil,
			feeRate:   "",
			want:      "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := new(MockOrderRepository)
			options := new(MockOptionRepository)
			gateway := new(MockGateway)
			service := NewCheckoutService(orders, options, gateway, nil)

			var opts []settings.Option
			if tt.feeRate != "" {
				opts = append(opts, settings.Option{Name: settings.OptionPlatformFeeRate, Value: tt.feeRate})
			}
			options.On("Load", mock.Anything).Return(settings.NewSettings(opts), nil)

			subtotals := make([]decimal.Decimal, 0, len(tt.subtotals))
			for _, s := range tt.subtotals {
				d, err := decimal.NewFromString(s)
				require.NoError(t, err)
				subtotals = append(subtotals, d)
			}

			fee, err := service.CartFee(context.Background(), subtotals)
			require.NoError(t, err)
			assert.Equal(t, tt.want, fee.StringFixed(2))
		})
	}
}
