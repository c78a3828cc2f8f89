package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/shelfbridge/backend/internal/domain/settings"
	"github.com/shelfbridge/backend/internal/interfaces/http/middleware"
)

func setupSettingsRouter(options *MockOptionRepository) *gin.Engine {
	h := NewSettingsHandler(options, nil)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/api/v1/settings", h.Get)
	router.PUT("/api/v1/settings", h.Update)
	return router
}

func TestSettingsHandler_Get(t *testing.T) {
	options := new(MockOptionRepository)
	router := setupSettingsRouter(options)

	stored := []settings.Option{}
	if opt, err := settings.NewOption(settings.OptionProductionAPIKey, "prodkey-123456"); err == nil {
		stored = append(stored, *opt)
	}
	if opt, err := settings.NewOption(settings.OptionSandboxMode, "yes"); err == nil {
		stored = append(stored, *opt)
	}
	options.On("Load", mock.Anything).Return(settings.NewSettings(stored), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sandbox_mode":"yes"`)
	assert.Contains(t, w.Body.String(), `"platform_fee_rate":"0.15"`)
	// API keys come back masked
	assert.Contains(t, w.Body.String(), `"prod_api_key":"****3456"`)
	assert.NotContains(t, w.Body.String(), "prodkey-123456")
}

func TestSettingsHandler_Update(t *testing.T) {
	options := new(MockOptionRepository)
	router := setupSettingsRouter(options)

	options.On("Set", mock.Anything, settings.OptionSandboxMode, "yes").Return(nil)
	options.On("Set", mock.Anything, settings.OptionPlatformFeeRate, "0.10").Return(nil)

	body := `{"options": {"sandbox_mode": "yes", "platform_fee_rate": "0.10"}}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	options.AssertExpectations(t)
}

func TestSettingsHandler_Update_UnknownOption(t *testing.T) {
	options := new(MockOptionRepository)
	router := setupSettingsRouter(options)

	body := `{"options": {"no_such_option": "value"}}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ERR_UNKNOWN_OPTION")
	options.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestSettingsHandler_Update_MissingBody(t *testing.T) {
	options := new(MockOptionRepository)
	router := setupSettingsRouter(options)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
