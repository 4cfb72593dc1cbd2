package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/bookshelf-auth/internal/interface/http"
)

// BookModule mounts the catalog endpoints. Both are public.
type BookModule struct {
	Handler *handlers.BookHandler
}

func NewBookModule(h *handlers.BookHandler) *BookModule {
	return &BookModule{Handler: h}
}

func (m *BookModule) Register(rg *gin.RouterGroup) {
	rg.POST("/books", m.Handler.Create)
	rg.GET("/books/search", m.Handler.Search)
}
