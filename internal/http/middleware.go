package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"user-api/internal/auth"
)

// AuthHeader carries the token on requests and on the login response.
const AuthHeader = "x-auth-token"

const contextKeyClaims = "user_claims"

// ClaimsFromContext returns the verified claims set by RequireUser, or
// nil when the request did not pass through the gate.
func ClaimsFromContext(c *gin.Context) *auth.Claims {
	v, ok := c.Get(contextKeyClaims)
	if !ok {
		return nil
	}
	claims, ok := v.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// RequireUser guards protected routes: a missing token is rejected with
// 401, a token failing verification with 400. On success the decoded
// claims are attached to the request context.
func RequireUser(tokens *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(AuthHeader)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, NewError(http.StatusUnauthorized, "Access denied.", ""))
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, NewError(http.StatusBadRequest, "Invalid token.", ""))
			return
		}

		c.Set(contextKeyClaims, claims)
		c.Next()
	}
}

// RequestLogger tags every request with an id and logs method, path,
// status and latency once the handler chain finishes.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Writer.Header().Set("X-Request-Id", requestID)

		start := time.Now()
		c.Next()

		logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
		}).Info("request completed")
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, x-auth-token")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "x-auth-token, X-Request-Id")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
