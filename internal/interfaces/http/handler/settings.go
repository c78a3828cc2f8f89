package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shelfbridge/backend/internal/domain/settings"
	"github.com/shelfbridge/backend/internal/interfaces/http/dto"
	"github.com/shelfbridge/backend/internal/interfaces/http/middleware"
)

// SettingsHandler serves store configuration endpoints. All routes are
// admin only.
type SettingsHandler struct {
	BaseHandler
	options settings.OptionRepository
}

// NewSettingsHandler creates a settings handler
func NewSettingsHandler(options settings.OptionRepository, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{
		BaseHandler: NewBaseHandler(logger),
		options:     options,
	}
}

// Get handles GET /api/v1/settings and returns all options with defaults
// applied. API keys are masked; the storefront never needs them back.
func (h *SettingsHandler) Get(c *gin.Context) {
	snapshot, err := h.options.Load(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	values := make(map[string]string)
	for _, name := range settings.KnownOptions() {
		values[name] = snapshot.Get(name)
	}
	values[settings.OptionProductionAPIKey] = maskSecret(values[settings.OptionProductionAPIKey])
	values[settings.OptionSandboxAPIKey] = maskSecret(values[settings.OptionSandboxAPIKey])

	h.Success(c, dto.SettingsResponse{Options: values})
}

// Update handles PUT /api/v1/settings. Unknown option names reject the
// whole request before anything is written.
func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	for name := range req.Options {
		if !settings.IsKnownOption(name) {
			h.Error(c, dto.ErrCodeUnknownOption, "Unrecognized option name: "+name)
			return
		}
	}

	for name, value := range req.Options {
		if err := h.options.Set(c.Request.Context(), name, value); err != nil {
			h.HandleError(c, err)
			return
		}
	}

	userID, _ := middleware.GetJWTUserID(c)
	h.logger.Info("settings updated",
		zap.String("user_id", userID),
		zap.Int("option_count", len(req.Options)))

	h.Success(c, gin.H{"updated": len(req.Options)})
}

// maskSecret hides all but the last four characters of a secret
func maskSecret(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 4 {
		return "****"
	}
	return "****" + value[len(value)-4:]
}
