package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shelfbridge/backend/internal/infrastructure/auth"
	"github.com/shelfbridge/backend/internal/interfaces/http/dto"
)

// SyncTokenHeader carries the one-time token protecting the catalog
// import endpoint
const SyncTokenHeader = "X-Sync-Token"

// VerifyNonce rejects requests whose sync token is missing, forged or
// older than the nonce TTL
func VerifyNonce(nonceService *auth.NonceService, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		token := c.GetHeader(SyncTokenHeader)
		if token == "" {
			token = c.Query("sync_token")
		}
		if token == "" {
			c.JSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeNonceInvalid,
				"Sync token required",
				GetRequestID(c),
			))
			c.Abort()
			return
		}

		if err := nonceService.Verify(token); err != nil {
			logger.Warn("sync token rejected",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			c.JSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeNonceInvalid,
				"Invalid or expired sync token",
				GetRequestID(c),
			))
			c.Abort()
			return
		}

		c.Next()
	}
}
