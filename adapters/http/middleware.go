package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yash-jivani/DevNetworks/pkg/apperror"
	"github.com/yash-jivani/DevNetworks/pkg/auth"
	"github.com/yash-jivani/DevNetworks/pkg/logger"
)

const GinContextKeyUserID = "userID"

// extractToken reads the bearer token. The legacy x-auth-token header is
// still accepted for older clients.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString != authHeader {
			return tokenString
		}
		return ""
	}
	return c.GetHeader("x-auth-token")
}

// AuthMiddleware verifies the token and injects the user id into the gin
// context. Invalid and expired tokens are both rejected as 401 without
// telling the client which it was. It never loads the user record.
func AuthMiddleware(jwtSvc *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {

		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"errors": []gin.H{{"msg": "No token, authorization denied"}},
			})
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"errors": []gin.H{{"msg": "Token is not valid"}},
			})
			return
		}

		c.Set(GinContextKeyUserID, claims.UserID)

		c.Next()
	}
}

func GetUserIDFromGinContext(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(GinContextKeyUserID)
	if !ok {
		return uuid.Nil, false
	}
	userID, ok := v.(uuid.UUID)
	if !ok {
		return uuid.Nil, false
	}
	return userID, true
}

// ErrorMiddleware is the single place error kinds become status codes.
// Handlers attach errors with c.Error and never write statuses themselves.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var vErr *validationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, vErr.ToJSON())
			return
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			status := apperror.ToHTTPStatus(appErr)
			if status >= http.StatusInternalServerError {
				log.Error("request failed", appErr, zap.String("path", c.FullPath()))
			}
			c.JSON(status, appErr.ToJSON())
			return
		}

		// Unexpected errors are logged server-side, never echoed.
		log.Error("unhandled error", err, zap.String("path", c.FullPath()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"errors": []gin.H{{"msg": "Server error"}},
		})
	}
}
