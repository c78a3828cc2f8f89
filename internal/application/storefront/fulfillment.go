package storefront

import (
	"context"

	"github.com/shelfbridge/backend/internal/domain/licensing"
)

// ensureAccessToken returns an access token for the user's vendor account,
// provisioning the account when it does not exist yet.
func ensureAccessToken(ctx context.Context, gateway licensing.Gateway, user licensing.NewUser) (string, error) {
	cred, err := gateway.CheckCredentials(ctx, user.Reference)
	if err == nil {
		return cred.AccessToken, nil
	}

	created, err := gateway.CreateUserCredentials(ctx, user)
	if err != nil {
		return "", err
	}
	return created.AccessToken, nil
}

// grantLicense issues a perpetual license code for the SKU and redeems it
// against the access token holder's library.
func grantLicense(ctx context.Context, gateway licensing.Gateway, accessToken, sku string) error {
	code, err := gateway.CreateCode(ctx, accessToken, sku)
	if err != nil {
		return err
	}

	_, err = gateway.RedeemCode(ctx, accessToken, code.Code)
	return err
}
