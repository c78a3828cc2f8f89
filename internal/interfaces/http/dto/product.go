package dto

import (
	"github.com/shelfbridge/backend/internal/application/storefront"
	"github.com/shelfbridge/backend/internal/domain/catalog"
)

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID               string `json:"id"`
	Code             string `json:"code,omitempty"`
	Name             string `json:"name"`
	Slug             string `json:"slug"`
	Description      string `json:"description,omitempty"`
	RegularPrice     string `json:"regular_price"`
	SoldIndividually bool   `json:"sold_individually"`
	VendorBookID     string `json:"vendor_book_id,omitempty"`
	CoverURL         string `json:"cover_url,omitempty"`
	Status           string `json:"status"`
	TimestampResponse
}

// AccessResponse tells the storefront how to render the product page for
// the current viewer
type AccessResponse struct {
	Action       string `json:"action"`
	ReadLink     string `json:"read_link,omitempty"`
	HideDownload bool   `json:"hide_download"`
}

// ProductDetailResponse is a product with the viewer's access decision
type ProductDetailResponse struct {
	ProductResponse
	Access AccessResponse `json:"access"`
}

// ToProductResponse converts a product to its API representation
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:               p.ID.String(),
		Code:             p.Code,
		Name:             p.Name,
		Slug:             p.Slug,
		Description:      p.Description,
		RegularPrice:     p.RegularPrice.StringFixed(2),
		SoldIndividually: p.SoldIndividually,
		VendorBookID:     p.VendorBookID,
		Status:           string(p.Status),
		TimestampResponse: TimestampResponse{
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		},
	}
}

// ToProductListResponse converts a slice of products
func ToProductListResponse(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

// ToAccessResponse converts a page decision to its API representation
func ToAccessResponse(decision storefront.PageDecision) AccessResponse {
	return AccessResponse{
		Action:       string(decision.Action),
		ReadLink:     decision.ReadLink,
		HideDownload: decision.HideDownload,
	}
}
