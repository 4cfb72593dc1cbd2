package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/bookshelf-auth/pkg/helpers"
	"github.com/oksasatya/bookshelf-auth/pkg/response"
)

// Context keys set by Auth.
const (
	CtxUserIDKey  = "userID"
	CtxIsAdminKey = "isAdmin"
)

const authTokenHeader = "x-auth-token"

// bearerToken returns the auth token from x-auth-token, falling back to an
// Authorization: Bearer header.
func bearerToken(c *gin.Context) string {
	if t := strings.TrimSpace(c.GetHeader(authTokenHeader)); t != "" {
		return t
	}
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// Auth verifies the auth token and sets userID and isAdmin in the Gin context.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Abort(c, response.Error[any](c, http.StatusUnauthorized, "No token provided", nil))
			return
		}
		claims, err := jwt.VerifyAuthToken(token)
		if err != nil {
			response.Abort(c, response.Error[any](c, http.StatusBadRequest, "Invalid token", err.Error()))
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxIsAdminKey, claims.IsAdmin)
		c.Next()
	}
}
