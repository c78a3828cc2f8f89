package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/shelfbridge/backend/internal/application/catalog"
	"github.com/shelfbridge/backend/internal/infrastructure/auth"
	"github.com/shelfbridge/backend/internal/interfaces/http/dto"
	"github.com/shelfbridge/backend/internal/interfaces/http/middleware"
)

// SyncHandler serves catalog import endpoints
type SyncHandler struct {
	BaseHandler
	sync   *catalogapp.SyncService
	nonces *auth.NonceService
}

// NewSyncHandler creates a sync handler
func NewSyncHandler(sync *catalogapp.SyncService, nonces *auth.NonceService, logger *zap.Logger) *SyncHandler {
	return &SyncHandler{
		BaseHandler: NewBaseHandler(logger),
		sync:        sync,
		nonces:      nonces,
	}
}

// Import handles POST /api/v1/catalog/import. The route is guarded by the
// sync token middleware; the import itself runs synchronously and reports
// per-run counters.
func (h *SyncHandler) Import(c *gin.Context) {
	result, err := h.sync.Sync(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.logger.Info("catalog import finished",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.Int("imported", result.Imported),
		zap.Int("updated", result.Updated),
		zap.Int("trashed", result.Trashed))

	h.Success(c, result)
}

// Nonce handles GET /api/v1/catalog/import/nonce. Admin only; the returned
// token authorizes one import window.
func (h *SyncHandler) Nonce(c *gin.Context) {
	h.Success(c, dto.NonceResponse{Token: h.nonces.Issue()})
}
