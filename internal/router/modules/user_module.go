package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/bookshelf-auth/internal/interface/http"
	"github.com/oksasatya/bookshelf-auth/internal/interface/middleware"
	"github.com/oksasatya/bookshelf-auth/pkg/helpers"
)

// UserModule wires registration and the current-user profile.
// Public: POST /api/users
// Protected: GET /api/users/me
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.POST("/users", m.Handler.Register)

	auth := rg.Group("/users")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/me", m.Handler.Me)
	}
}
