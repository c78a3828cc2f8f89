package licensing

import (
	"context"
	"errors"
)

// ErrUnavailable is returned for any licensing operation that cannot be
// completed, whether the vendor API is unreachable, rejects the request, or
// no API key is configured. Callers treat all of these the same way: the
// storefront falls back to its unlicensed behavior.
var ErrUnavailable = errors.New("licensing service unavailable")

// Gateway is the port to the vendor licensing platform
type Gateway interface {
	// CheckCredentials verifies that the reader has a vendor account and
	// returns an access token for it.
	CheckCredentials(ctx context.Context, userRef string) (*Credential, error)

	// CreateUserCredentials provisions a vendor account for the reader and
	// returns its access token.
	CreateUserCredentials(ctx context.Context, user NewUser) (*Credential, error)

	// CheckContentLicense reports whether the access token holds an online
	// license for the SKU.
	CheckContentLicense(ctx context.Context, accessToken, sku string) (*License, error)

	// CreateCode issues a single perpetual online license code for the SKU
	// on behalf of the access token holder.
	CreateCode(ctx context.Context, accessToken, sku string) (*Code, error)

	// RedeemCode redeems a license code against the reader's access token.
	RedeemCode(ctx context.Context, accessToken, code string) (*Redemption, error)

	// ResolveReadLink returns a signed URL that opens the book in the
	// vendor's online reader for the access token holder.
	ResolveReadLink(ctx context.Context, accessToken, vendorBookID string) (string, error)

	// FetchCatalog returns the vendor product feed.
	FetchCatalog(ctx context.Context) ([]CatalogItem, error)
}
