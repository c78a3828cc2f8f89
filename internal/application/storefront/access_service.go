package storefront

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shelfbridge/backend/internal/domain/catalog"
	"github.com/shelfbridge/backend/internal/domain/licensing"
	"github.com/shelfbridge/backend/internal/domain/ordering"
)

// PageAction tells the storefront what control to render on a product page
type PageAction string

const (
	// PageActionDefault renders the normal purchase control
	PageActionDefault PageAction = "default"
	// PageActionRegister prompts the visitor to sign in or register
	PageActionRegister PageAction = "register"
	// PageActionRead replaces the purchase control with a read link
	PageActionRead PageAction = "read"
)

// PageDecision is the access outcome for one product page view. It is
// recomputed on every request; the resolved read link rides in the decision
// value rather than any shared cache.
type PageDecision struct {
	Action       PageAction `json:"action"`
	ReadLink     string     `json:"read_link,omitempty"`
	HideDownload bool       `json:"hide_download"`
}

// DefaultRecentPurchaseWindow bounds how far back a paid order still
// qualifies a reader for sample fulfillment on the product page.
const DefaultRecentPurchaseWindow = 24 * time.Hour

// AccessService decides what a viewer may do on a product page
type AccessService struct {
	orders               ordering.OrderRepository
	gateway              licensing.Gateway
	recentPurchaseWindow time.Duration
	logger               *zap.Logger
}

// NewAccessService creates a new AccessService
func NewAccessService(orders ordering.OrderRepository, gateway licensing.Gateway, logger *zap.Logger) *AccessService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccessService{
		orders:               orders,
		gateway:              gateway,
		recentPurchaseWindow: DefaultRecentPurchaseWindow,
		logger:               logger,
	}
}

// SetRecentPurchaseWindow overrides the qualifying purchase window
func (s *AccessService) SetRecentPurchaseWindow(window time.Duration) {
	s.recentPurchaseWindow = window
}

// DecideProductPage evaluates the viewer against the product. Licensing
// failures never surface as errors here: the page degrades to its default
// purchase control instead.
func (s *AccessService) DecideProductPage(ctx context.Context, product *catalog.Product, viewer Viewer) PageDecision {
	if !product.IsVendorLinked() {
		return PageDecision{Action: PageActionDefault}
	}

	if !viewer.Authenticated {
		return PageDecision{Action: PageActionRegister}
	}

	cred, credErr := s.gateway.CheckCredentials(ctx, viewer.Reference())

	if credErr == nil && product.HasCode() {
		if decision, ok := s.decideLicensed(ctx, product, cred.AccessToken); ok {
			return decision
		}
	}

	if !product.HasCode() || !s.qualifiesForSample(ctx, product, viewer) {
		return PageDecision{Action: PageActionDefault}
	}

	return s.fulfillSample(ctx, product, viewer, cred, credErr)
}

// decideLicensed returns the read decision when the token already holds a
// license for the product
func (s *AccessService) decideLicensed(ctx context.Context, product *catalog.Product, accessToken string) (PageDecision, bool) {
	license, err := s.gateway.CheckContentLicense(ctx, accessToken, product.Code)
	if err != nil || !license.Active {
		return PageDecision{}, false
	}

	link, err := s.gateway.ResolveReadLink(ctx, accessToken, product.VendorBookID)
	if err != nil {
		s.logger.Warn("read link resolution failed",
			zap.String("vbid", product.VendorBookID),
			zap.Error(err))
		return PageDecision{}, false
	}

	return PageDecision{Action: PageActionRead, ReadLink: link, HideDownload: true}, true
}

// qualifiesForSample reports whether the viewer gets a license granted on
// sight: instructors always do, buyers with a recent paid order for this
// product do once.
func (s *AccessService) qualifiesForSample(ctx context.Context, product *catalog.Product, viewer Viewer) bool {
	if viewer.IsInstructor() {
		return true
	}

	since := time.Now().Add(-s.recentPurchaseWindow)
	orders, err := s.orders.FindPaidForCustomerWithProduct(ctx, viewer.UserID, product.ID, since)
	if err != nil {
		s.logger.Warn("recent purchase lookup failed",
			zap.String("user_id", viewer.UserID.String()),
			zap.Error(err))
		return false
	}

	return len(orders) > 0
}

// fulfillSample provisions credentials if needed, grants a license, and
// resolves the read link. Any failure falls back to the default page.
func (s *AccessService) fulfillSample(
	ctx context.Context,
	product *catalog.Product,
	viewer Viewer,
	cred *licensing.Credential,
	credErr error,
) PageDecision {
	var accessToken string
	if credErr == nil {
		accessToken = cred.AccessToken
	} else {
		created, err := s.gateway.CreateUserCredentials(ctx, viewer.NewUser())
		if err != nil {
			s.logger.Warn("reader account provisioning failed",
				zap.String("reference", viewer.Reference()),
				zap.Error(err))
			return PageDecision{Action: PageActionDefault}
		}
		accessToken = created.AccessToken
	}

	if err := grantLicense(ctx, s.gateway, accessToken, product.Code); err != nil {
		s.logger.Warn("sample license grant failed",
			zap.String("sku", product.Code),
			zap.Error(err))
		return PageDecision{Action: PageActionDefault}
	}

	link, err := s.gateway.ResolveReadLink(ctx, accessToken, product.VendorBookID)
	if err != nil {
		s.logger.Warn("read link resolution failed",
			zap.String("vbid", product.VendorBookID),
			zap.Error(err))
		return PageDecision{Action: PageActionDefault}
	}

	return PageDecision{Action: PageActionRead, ReadLink: link, HideDownload: true}
}
