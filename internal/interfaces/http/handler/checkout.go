package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shelfbridge/backend/internal/application/storefront"
	"github.com/shelfbridge/backend/internal/interfaces/http/dto"
)

// CheckoutHandler serves checkout lifecycle endpoints
type CheckoutHandler struct {
	BaseHandler
	checkout *storefront.CheckoutService
}

// NewCheckoutHandler creates a checkout handler
func NewCheckoutHandler(checkout *storefront.CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		BaseHandler: NewBaseHandler(logger),
		checkout:    checkout,
	}
}

// PaymentSuccess handles POST /api/v1/checkout/orders/:id/payment. It marks
// the order paid and redeems licenses for vendor items; redemption failures
// never fail the payment.
func (h *CheckoutHandler) PaymentSuccess(c *gin.Context) {
	orderID, ok := h.parseOrderID(c)
	if !ok {
		return
	}

	order, err := h.checkout.HandlePaymentSuccess(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.ToOrderResponse(order))
}

// ThankYou handles GET /api/v1/checkout/orders/:id/thank-you and returns
// where the storefront should send the buyer after checkout
func (h *CheckoutHandler) ThankYou(c *gin.Context) {
	orderID, ok := h.parseOrderID(c)
	if !ok {
		return
	}

	redirectTo, err := h.checkout.ThankYouRedirect(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.ThankYouResponse{RedirectTo: redirectTo})
}

// CartFees handles POST /api/v1/cart/fees and returns the platform fee for
// the given cart line subtotals
func (h *CheckoutHandler) CartFees(c *gin.Context) {
	var req dto.CartFeeRequest
	if !h.BindJSON(c, &req) {
		return
	}

	subtotals := make([]decimal.Decimal, 0, len(req.Subtotals))
	for _, raw := range req.Subtotals {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			h.Error(c, dto.ErrCodeValidation, "Invalid subtotal: "+raw)
			return
		}
		subtotals = append(subtotals, d)
	}

	fee, err := h.checkout.CartFee(c.Request.Context(), subtotals)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.CartFeeResponse{Fee: fee.StringFixed(2)})
}

func (h *CheckoutHandler) parseOrderID(c *gin.Context) (uuid.UUID, bool) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, dto.ErrCodeValidation, "Invalid order ID")
		return uuid.Nil, false
	}
	return orderID, true
}
