package vitalsource

import (
	"encoding/xml"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// XML request payloads (v3 API)
// ---------------------------------------------------------------------------

type credentialsRequest struct {
	XMLName    xml.Name            `xml:"credentials"`
	Credential credentialReference `xml:"credential"`
}

type credentialReference struct {
	Reference string `xml:"reference,attr"`
}

type userRequest struct {
	XMLName   xml.Name `xml:"user"`
	Reference string   `xml:"reference"`
	FirstName string   `xml:"first-name,omitempty"`
	LastName  string   `xml:"last-name,omitempty"`
	Email     string   `xml:"email,omitempty"`
}

type codesRequest struct {
	XMLName           xml.Name `xml:"codes"`
	SKU               string   `xml:"sku,attr"`
	LicenseType       string   `xml:"license-type,attr"`
	OnlineLicenseType string   `xml:"online-license-type,attr"`
	NumCodes          int      `xml:"num-codes,attr"`
}

type redemptionRequest struct {
	XMLName xml.Name `xml:"redemption"`
	Code    string   `xml:"code"`
}

type redirectRequest struct {
	XMLName     xml.Name `xml:"redirect"`
	Destination string   `xml:"destination"`
	Brand       string   `xml:"brand"`
}

// ---------------------------------------------------------------------------
// XML response payloads (v3 API)
// ---------------------------------------------------------------------------

type credentialsResponse struct {
	XMLName     xml.Name `xml:"credentials"`
	Credentials []struct {
		AccessToken string `xml:"access-token,attr"`
	} `xml:"credential"`
}

type userResponse struct {
	XMLName     xml.Name `xml:"user"`
	AccessToken string   `xml:"access-token"`
}

type licensesResponse struct {
	XMLName  xml.Name `xml:"licenses"`
	Licenses []struct {
		SKU        string `xml:"sku,attr"`
		Type       string `xml:"type,attr"`
		Expiration string `xml:"expiration,attr"`
	} `xml:"license"`
}

type codesResponse struct {
	XMLName xml.Name `xml:"codes"`
	Codes   []struct {
		Code string `xml:",chardata"`
	} `xml:"code"`
}

type redemptionResponse struct {
	XMLName xml.Name `xml:"library"`
	Items   []struct {
		Status string `xml:"status,attr"`
	} `xml:"item"`
}

type redirectResponse struct {
	XMLName    xml.Name `xml:"redirect"`
	AutoSignin string   `xml:"auto-signin,attr"`
}

// ---------------------------------------------------------------------------
// JSON payloads (v4 product feed)
// ---------------------------------------------------------------------------

type productsResponse struct {
	Items []productItem `json:"items"`
}

type productItem struct {
	VBID          string           `json:"vbid"`
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	ResourceLinks productResources `json:"resource_links"`
	Variants      []productVariant `json:"variants"`
}

type productResources struct {
	CoverImage string `json:"cover_image"`
}

type productVariant struct {
	SKU    string         `json:"sku"`
	Type   string         `json:"type"`
	Prices []variantPrice `json:"prices"`
}

type variantPrice struct {
	Currency string          `json:"currency"`
	Type     string          `json:"type"`
	Value    decimal.Decimal `json:"value"`
}
