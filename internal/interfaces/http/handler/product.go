package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/shelfbridge/backend/internal/application/catalog"
	"github.com/shelfbridge/backend/internal/application/storefront"
	"github.com/shelfbridge/backend/internal/domain/catalog"
	"github.com/shelfbridge/backend/internal/domain/shared"
	"github.com/shelfbridge/backend/internal/interfaces/http/dto"
	"github.com/shelfbridge/backend/internal/interfaces/http/middleware"
)

// coverURLExpiry bounds how long a presigned cover link stays valid
const coverURLExpiry = 15 * time.Minute

// ProductHandler serves storefront product endpoints
type ProductHandler struct {
	BaseHandler
	products catalog.ProductRepository
	access   *storefront.AccessService
	storage  catalogapp.ObjectStorageService
}

// NewProductHandler creates a product handler. Storage may be nil, in which
// case cover URLs are omitted from responses.
func NewProductHandler(
	products catalog.ProductRepository,
	access *storefront.AccessService,
	storage catalogapp.ObjectStorageService,
	logger *zap.Logger,
) *ProductHandler {
	return &ProductHandler{
		BaseHandler: NewBaseHandler(logger),
		products:    products,
		access:      access,
		storage:     storage,
	}
}

// List handles GET /api/v1/products
func (h *ProductHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if !h.BindQuery(c, &req) {
		return
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	}

	products, err := h.products.FindActive(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	total, err := h.products.Count(c.Request.Context(), filter.WithFilter("status", string(catalog.ProductStatusActive)))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	responses := dto.ToProductListResponse(products)
	for i := range products {
		responses[i].CoverURL = h.coverURL(c, &products[i])
	}

	h.SuccessWithMeta(c, responses, total, req.Page, req.PageSize)
}

// Get handles GET /api/v1/products/:slug and embeds the viewer's access
// decision alongside the product
func (h *ProductHandler) Get(c *gin.Context) {
	slug := c.Param("slug")

	product, err := h.products.FindBySlug(c.Request.Context(), slug)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	viewer := viewerFromContext(c)
	decision := h.access.DecideProductPage(c.Request.Context(), product, viewer)

	response := dto.ProductDetailResponse{
		ProductResponse: dto.ToProductResponse(product),
		Access:          dto.ToAccessResponse(decision),
	}
	response.CoverURL = h.coverURL(c, product)

	h.Success(c, response)
}

func (h *ProductHandler) coverURL(c *gin.Context, product *catalog.Product) string {
	if h.storage == nil || product.CoverImageKey == "" {
		return ""
	}

	url, _, err := h.storage.GenerateDownloadURL(c.Request.Context(), product.CoverImageKey, coverURLExpiry)
	if err != nil {
		h.logger.Warn("cover url generation failed",
			zap.String("storage_key", product.CoverImageKey),
			zap.Error(err))
		return ""
	}
	return url
}

// viewerFromContext builds the storefront viewer from the optional bearer
// token claims
func viewerFromContext(c *gin.Context) storefront.Viewer {
	claims, ok := middleware.GetJWTClaims(c)
	if !ok {
		return storefront.Viewer{}
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return storefront.Viewer{}
	}

	firstName, lastName := splitName(claims.Name)
	return storefront.Viewer{
		Authenticated: true,
		UserID:        userID,
		FirstName:     firstName,
		LastName:      lastName,
		Email:         claims.Email,
		Roles:         claims.Roles,
	}
}

func splitName(name string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(name), " ", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return parts[0], ""
}
