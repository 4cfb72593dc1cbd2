package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/bookshelf-auth/internal/interface/http"
)

// AuthModule mounts login and the forgot-password flow. All routes are public.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth", m.Handler.Login)
	rg.POST("/auth/reset-password-request", m.Handler.ResetPasswordRequest)
	rg.POST("/auth/authorization-reset-password-request", m.Handler.AuthorizationResetPasswordRequest)
}
