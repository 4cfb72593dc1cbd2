package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bookshelf-auth/internal/application"
	"github.com/oksasatya/bookshelf-auth/pkg/helpers"
	"github.com/oksasatya/bookshelf-auth/pkg/response"
	"github.com/oksasatya/bookshelf-auth/pkg/validation"
)

type BookHandler struct {
	Svc    *application.BookService
	Logger *logrus.Logger
}

func NewBookHandler(svc *application.BookService, logger *logrus.Logger) *BookHandler {
	return &BookHandler{Svc: svc, Logger: logger}
}

type createBookRequest struct {
	Name   string `json:"name" binding:"required,min=1,max=200"`
	Author string `json:"author" binding:"required,min=1,max=200"`
}

// Create POST /api/books
func (h *BookHandler) Create(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, validation.FirstMessage(err), validation.ToDetails(err)))
		return
	}

	b, err := h.Svc.Create(c.Request.Context(), req.Name, req.Author)
	if err != nil {
		if errors.Is(err, application.ErrBookExists) {
			response.JSON(c, response.Error[any](c, http.StatusBadRequest, "Book already added.", nil))
			return
		}
		helpers.RequestEntry(h.Logger, c).WithError(err).Error("create book failed")
		response.JSON(c, response.Error[any](c, http.StatusInternalServerError, "internal error", nil))
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, b, "book added", nil))
}

// Search GET /api/books/search?q=&size=
func (h *BookHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, `"q" is required`, nil))
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	books, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		helpers.RequestEntry(h.Logger, c).WithError(err).Error("search books failed")
		response.JSON(c, response.Error[any](c, http.StatusBadGateway, "search unavailable", nil))
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, books, "books", map[string]any{"count": len(books)}))
}
