package vitalsource

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shelfbridge/backend/internal/domain/licensing"
)

// maxResponseSize limits the response body size to prevent memory exhaustion
const maxResponseSize = 10 * 1024 * 1024 // 10MB max response

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>`

// KeySource supplies the vendor API key at request time. Keys live in the
// settings store and can change between requests, so the client never caches
// one.
type KeySource interface {
	APIKey(ctx context.Context) (string, error)
}

// Client talks to the VitalSource v3/v4 APIs and implements the licensing
// gateway. Every failure mode, missing key, transport error, vendor
// rejection, surfaces as licensing.ErrUnavailable so callers degrade the
// same way regardless of cause.
type Client struct {
	config     *Config
	keys       KeySource
	httpClient *http.Client
}

// NewClient creates a VitalSource API client
func NewClient(config *Config, keys KeySource) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		config: config,
		keys:   keys,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// CheckCredentials verifies that the reader has a vendor account
func (c *Client) CheckCredentials(ctx context.Context, userRef string) (*licensing.Credential, error) {
	body, err := xml.Marshal(credentialsRequest{Credential: credentialReference{Reference: userRef}})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", licensing.ErrUnavailable, err)
	}

	respBody, err := c.doRequest(ctx, http.MethodPost, "/v3/credentials.xml", "", body)
	if err != nil {
		return nil, err
	}

	var resp credentialsResponse
	if err := xml.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: malformed credentials response", licensing.ErrUnavailable)
	}
	if len(resp.Credentials) == 0 || resp.Credentials[0].AccessToken == "" {
		return nil, fmt.Errorf("%w: no access token for %s", licensing.ErrUnavailable, userRef)
	}

	return &licensing.Credential{
		Reference:   userRef,
		AccessToken: resp.Credentials[0].AccessToken,
	}, nil
}

// CreateUserCredentials provisions a vendor account for the reader
func (c *Client) CreateUserCredentials(ctx context.Context, user licensing.NewUser) (*licensing.Credential, error) {
	body, err := xml.Marshal(userRequest{
		Reference: user.Reference,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", licensing.ErrUnavailable, err)
	}

	respBody, err := c.doRequest(ctx, http.MethodPost, "/v3/users.xml", "", body)
	if err != nil {
		return nil, err
	}

	var resp userResponse
	if err := xml.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: malformed user response", licensing.ErrUnavailable)
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("%w: user creation returned no access token", licensing.ErrUnavailable)
	}

	return &licensing.Credential{
		Reference:   user.Reference,
		AccessToken: resp.AccessToken,
	}, nil
}

// CheckContentLicense reports whether the access token holds an online
// license for the SKU
func (c *Client) CheckContentLicense(ctx context.Context, accessToken, sku string) (*licensing.License, error) {
	path := "/v3/licenses.xml?sku=" + url.QueryEscape(sku) + "&license_type=online"
	respBody, err := c.doRequest(ctx, http.MethodGet, path, accessToken, nil)
	if err != nil {
		return nil, err
	}

	var resp licensesResponse
	if err := xml.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: malformed licenses response", licensing.ErrUnavailable)
	}

	// a license entry without an expiration is not an active license
	for _, l := range resp.Licenses {
		if l.Expiration != "" {
			return &licensing.License{SKU: sku, Active: true}, nil
		}
	}
	return &licensing.License{SKU: sku, Active: false}, nil
}

// CreateCode issues a single perpetual online license code for the SKU on
// behalf of the access token holder
func (c *Client) CreateCode(ctx context.Context, accessToken, sku string) (*licensing.Code, error) {
	body, err := xml.Marshal(codesRequest{
		SKU:               sku,
		LicenseType:       "perpetual",
		OnlineLicenseType: "perpetual",
		NumCodes:          1,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", licensing.ErrUnavailable, err)
	}

	respBody, err := c.doRequest(ctx, http.MethodPost, "/v3/codes.xml", accessToken, body)
	if err != nil {
		return nil, err
	}

	var resp codesResponse
	if err := xml.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: malformed codes response", licensing.ErrUnavailable)
	}
	if len(resp.Codes) == 0 || resp.Codes[0].Code == "" {
		return nil, fmt.Errorf("%w: no code issued for %s", licensing.ErrUnavailable, sku)
	}

	return &licensing.Code{SKU: sku, Code: resp.Codes[0].Code}, nil
}

// RedeemCode redeems a license code against the reader's access token
func (c *Client) RedeemCode(ctx context.Context, accessToken, code string) (*licensing.Redemption, error) {
	body, err := xml.Marshal(redemptionRequest{Code: code})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", licensing.ErrUnavailable, err)
	}

	respBody, err := c.doRequest(ctx, http.MethodPost, "/v3/redemptions.xml", accessToken, body)
	if err != nil {
		return nil, err
	}

	var resp redemptionResponse
	if err := xml.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: malformed redemption response", licensing.ErrUnavailable)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("%w: redemption returned no library item", licensing.ErrUnavailable)
	}

	return &licensing.Redemption{Code: code, Status: resp.Items[0].Status}, nil
}

// ResolveReadLink returns a signed URL that opens the book in the vendor's
// online reader
func (c *Client) ResolveReadLink(ctx context.Context, accessToken, vendorBookID string) (string, error) {
	body, err := xml.Marshal(redirectRequest{
		Destination: ReaderBaseURL + vendorBookID,
		Brand:       ReaderBrand,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", licensing.ErrUnavailable, err)
	}

	respBody, err := c.doRequest(ctx, http.MethodPost, "/v3/redirects.xml", accessToken, body)
	if err != nil {
		return "", err
	}

	var resp redirectResponse
	if err := xml.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("%w: malformed redirect response", licensing.ErrUnavailable)
	}
	if resp.AutoSignin == "" {
		return "", fmt.Errorf("%w: redirect returned no signin URL", licensing.ErrUnavailable)
	}

	return resp.AutoSignin, nil
}

// FetchCatalog returns the vendor product feed
func (c *Client) FetchCatalog(ctx context.Context) ([]licensing.CatalogItem, error) {
	respBody, err := c.doJSONRequest(ctx, http.MethodGet, "/v4/products")
	if err != nil {
		return nil, err
	}

	var resp productsResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: malformed product feed", licensing.ErrUnavailable)
	}

	items := make([]licensing.CatalogItem, 0, len(resp.Items))
	for _, item := range resp.Items {
		ci := licensing.CatalogItem{
			VendorBookID: item.VBID,
			Title:        item.Title,
			Description:  item.Description,
			CoverURL:     item.ResourceLinks.CoverImage,
			Variants:     make([]licensing.CatalogVariant, 0, len(item.Variants)),
		}
		for _, v := range item.Variants {
			cv := licensing.CatalogVariant{
				SKU:    v.SKU,
				Type:   v.Type,
				Prices: make([]licensing.CatalogPrice, 0, len(v.Prices)),
			}
			for _, p := range v.Prices {
				cv.Prices = append(cv.Prices, licensing.CatalogPrice{
					Currency: p.Currency,
					Type:     p.Type,
					Value:    p.Value,
				})
			}
			ci.Variants = append(ci.Variants, cv)
		}
		items = append(items, ci)
	}

	return items, nil
}

// doRequest performs an XML API request against the v3 API
func (c *Client) doRequest(ctx context.Context, method, path, accessToken string, body []byte) ([]byte, error) {
	apiKey, err := c.apiKey(ctx)
	if err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewReader(append([]byte(xmlHeader), body...))
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.APIBaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", licensing.ErrUnavailable, err)
	}

	req.Header.Set("X-VitalSource-API-Key", apiKey)
	req.Header.Set("Content-Type", "application/xml")
	if accessToken != "" {
		req.Header.Set("X-VitalSource-Access-Token", accessToken)
	}

	return c.send(req)
}

// doJSONRequest performs a JSON API request against the v4 API
func (c *Client) doJSONRequest(ctx context.Context, method, path string) ([]byte, error) {
	apiKey, err := c.apiKey(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.APIBaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", licensing.ErrUnavailable, err)
	}

	req.Header.Set("X-VitalSource-API-Key", apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.send(req)
}

func (c *Client) send(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", licensing.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response", licensing.ErrUnavailable)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", licensing.ErrUnavailable, resp.StatusCode)
	}

	return body, nil
}

// apiKey fetches the current key, failing fast without a network round trip
// when no key is configured
func (c *Client) apiKey(ctx context.Context) (string, error) {
	key, err := c.keys.APIKey(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", licensing.ErrUnavailable, err)
	}
	if key == "" {
		return "", fmt.Errorf("%w: no API key configured", licensing.ErrUnavailable)
	}
	return key, nil
}

// Ensure Client implements the licensing gateway
var _ licensing.Gateway = (*Client)(nil)
