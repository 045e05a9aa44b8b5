package middleware

import (
	pkgerrors "user-crud-service/pkg/errors"
	"user-crud-service/pkg/logger"
	"user-crud-service/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthorizationHeader carries the shared API key, with no scheme prefix.
const AuthorizationHeader = "Authorization"

// APIKey rejects every request whose Authorization header does not equal
// secret. An empty header never matches, and an empty secret rejects
// everything.
func APIKey(secret string, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.GetHeader(AuthorizationHeader)
		if secret == "" || presented == "" || !security.SecretsEqual(presented, secret) {
			logger.WithContext(c.Request.Context(), log).Warn("request rejected by api key check",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Bool("header_present", presented != ""),
				zap.Bool("secret_configured", secret != ""),
			)
			abortWithError(c, pkgerrors.ErrForbidden)
			return
		}

		c.Next()
	}
}

// abortWithError stops the chain and answers with the status and body that
// the error's code maps to.
func abortWithError(c *gin.Context, err error) {
	code, slug, msg := pkgerrors.ToHTTP(err)
	c.AbortWithStatusJSON(code, gin.H{
		"error":   slug,
		"message": msg,
	})
}
