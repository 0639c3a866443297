package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
)

const tokenKey = "bearer_token"

func requestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func recovery(logger logging.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, rec any) {
		logger.Error(c.Request.Context(), "panic while serving request", "panic", rec, "path", c.Request.URL.Path)
		fail(c, http.StatusInternalServerError, MsgInternal)
	})
}

// bearerToken extracts the credential from "Authorization: Bearer <token>".
// The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func requireBearer(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, found := bearerToken(c.GetHeader(common.AuthorizationHeader))
		if !found {
			logger.Debug(c.Request.Context(), "request without bearer token", "path", c.Request.URL.Path)
			fail(c, http.StatusUnauthorized, MsgMissingToken)
			return
		}
		c.Set(tokenKey, token)
		c.Next()
	}
}
