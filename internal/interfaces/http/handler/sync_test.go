package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	catalogapp "github.com/shelfbridge/backend/internal/application/catalog"
	"github.com/shelfbridge/backend/internal/domain/licensing"
	"github.com/shelfbridge/backend/internal/domain/settings"
	"github.com/shelfbridge/backend/internal/infrastructure/auth"
	"github.com/shelfbridge/backend/internal/interfaces/http/middleware"
)

func setupSyncRouter(
	products *MockProductRepository,
	options *MockOptionRepository,
	gateway *MockGateway,
	nonces *auth.NonceService,
) *gin.Engine {
	sync := catalogapp.NewSyncService(products, options, gateway, nil, nil, nil)
	h := NewSyncHandler(sync, nonces, nil)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.POST("/api/v1/catalog/import", middleware.VerifyNonce(nonces, nil), h.Import)
	router.GET("/api/v1/catalog/import/nonce", h.Nonce)
	return router
}

func TestSyncHandler_Import(t *testing.T) {
	products := new(MockProductRepository)
	options := new(MockOptionRepository)
	gateway := new(MockGateway)
	nonces := auth.NewNonceService("sync-secret", 10*time.Minute)
	router := setupSyncRouter(products, options, gateway, nonces)

	gateway.On("FetchCatalog", mock.Anything).Return([]licensing.CatalogItem{}, nil)
	options.On("Load", mock.Anything).Return(settings.NewSettings(nil), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/import", nil)
	req.Header.Set(middleware.SyncTokenHeader, nonces.Issue())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"imported":0`)
	assert.Contains(t, w.Body.String(), `"trashed":0`)
}

func TestSyncHandler_Import_MissingToken(t *testing.T) {
	nonces := auth.NewNonceService("sync-secret", 10*time.Minute)
	gateway := new(MockGateway)
	router := setupSyncRouter(new(MockProductRepository), new(MockOptionRepository), gateway, nonces)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/import", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	gateway.AssertNotCalled(t, "FetchCatalog", mock.Anything)
}

func TestSyncHandler_Import_FeedUnavailable(t *testing.T) {
	products := new(MockProductRepository)
	options := new(MockOptionRepository)
	gateway := new(MockGateway)
	nonces := auth.NewNonceService("sync-secret", 10*time.Minute)
	router := setupSyncRouter(products, options, gateway, nonces)

	gateway.On("FetchCatalog", mock.Anything).Return(nil, licensing.ErrUnavailable)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/import", nil)
	req.Header.Set(middleware.SyncTokenHeader, nonces.Issue())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_UPSTREAM_UNAVAILABLE")
}

func TestSyncHandler_Nonce(t *testing.T) {
	nonces := auth.NewNonceService("sync-secret", 10*time.Minute)
	router := setupSyncRouter(new(MockProductRepository), new(MockOptionRepository), new(MockGateway), nonces)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/import/nonce", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	// The issued token verifies against the same service
	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NoError(t, nonces.Verify(resp.Data.Token))
}
