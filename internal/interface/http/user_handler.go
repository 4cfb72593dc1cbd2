package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bookshelf-auth/internal/application"
	"github.com/oksasatya/bookshelf-auth/pkg/helpers"
	"github.com/oksasatya/bookshelf-auth/pkg/response"
	"github.com/oksasatya/bookshelf-auth/pkg/validation"
)

// AuthTokenHeader carries the auth token on registration responses and
// authenticated requests.
const AuthTokenHeader = "x-auth-token"

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Email    string `json:"email" binding:"account_email"`
	Password string `json:"password" binding:"account_password"`
}

// Register POST /api/users
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.JSON(c, response.Error[any](c, http.StatusBadRequest, validation.FirstMessage(err), validation.ToDetails(err)))
		return
	}

	u, token, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.JSON(c, response.Error[any](c, http.StatusBadRequest, "User already registered.", nil))
			return
		}
		helpers.RequestEntry(h.Logger, c).WithError(err).Error("register failed")
		response.JSON(c, response.Error[any](c, http.StatusInternalServerError, "internal error", nil))
		return
	}
	c.Header(AuthTokenHeader, token)
	response.JSON(c, response.Success(c, http.StatusOK, gin.H{"id": u.ID, "email": u.Email}, "registered", nil))
}

// Me GET /api/users/me
func (h *UserHandler) Me(c *gin.Context) {
	uid := c.GetString("userID")
	p, err := h.Svc.GetProfile(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.JSON(c, response.Error[any](c, http.StatusNotFound, "user not found", nil))
			return
		}
		helpers.RequestEntry(h.Logger, c).WithError(err).Error("load profile failed")
		response.JSON(c, response.Error[any](c, http.StatusInternalServerError, "internal error", nil))
		return
	}
	response.JSON(c, response.Success(c, http.StatusOK, p, "profile", nil))
}
