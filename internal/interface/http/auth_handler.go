package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bookshelf-auth/internal/application"
	"github.com/oksasatya/bookshelf-auth/pkg/helpers"
	"github.com/oksasatya/bookshelf-auth/pkg/validation"
)

// Plain-text bodies of the auth endpoints.
const (
	MsgInvalidCredentials = "Invalid email or password."
	MsgEmailNotRegistered = "This email has not registered yet."
	MsgResetNotFound      = "No user email or reset password request or token has been expired"
	MsgDeliveryFailed     = "Something wrong!"
	MsgCheckEmail         = "Check your email"
	MsgPasswordChanged    = "Changed password"
	MsgInternal           = "Internal server error."
)

// AuthHandler serves login and the forgot-password endpoints. Responses are
// plain text.
type AuthHandler struct {
	Auth   *application.AuthService
	Reset  *application.ResetService
	Logger *logrus.Logger
}

func NewAuthHandler(auth *application.AuthService, reset *application.ResetService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, Reset: reset, Logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"account_email"`
	Password string `json:"password" binding:"account_password"`
}

type resetRequest struct {
	Email string `json:"email" binding:"account_email"`
}

type completeResetRequest struct {
	ID       string `json:"id" binding:"reset_id"`
	Token    string `json:"token" binding:"reset_token"`
	Password string `json:"password" binding:"account_password"`
}

func (h *AuthHandler) internal(c *gin.Context, err error, msg string) {
	if h.Logger != nil {
		helpers.RequestEntry(h.Logger, c).WithError(err).Error(msg)
	}
	c.String(http.StatusInternalServerError, MsgInternal)
}

// Login POST /api/auth
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, validation.FirstMessage(err))
		return
	}

	token, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		c.String(http.StatusOK, token)
	case errors.Is(err, application.ErrInvalidCredentials):
		c.String(http.StatusBadRequest, MsgInvalidCredentials)
	default:
		h.internal(c, err, "login failed")
	}
}

// ResetPasswordRequest POST /api/auth/reset-password-request
func (h *AuthHandler) ResetPasswordRequest(c *gin.Context) {
	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, validation.FirstMessage(err))
		return
	}

	err := h.Reset.RequestReset(c.Request.Context(), req.Email)
	switch {
	case err == nil:
		c.String(http.StatusOK, MsgCheckEmail)
	case errors.Is(err, application.ErrEmailNotFound):
		c.String(http.StatusBadRequest, MsgEmailNotRegistered)
	case errors.Is(err, application.ErrNotificationDeliveryFailed):
		c.String(http.StatusBadRequest, MsgDeliveryFailed)
	default:
		h.internal(c, err, "reset request failed")
	}
}

// AuthorizationResetPasswordRequest POST /api/auth/authorization-reset-password-request
func (h *AuthHandler) AuthorizationResetPasswordRequest(c *gin.Context) {
	var req completeResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, validation.FirstMessage(err))
		return
	}

	err := h.Reset.CompleteReset(c.Request.Context(), req.ID, req.Token, req.Password)
	switch {
	case err == nil:
		c.String(http.StatusOK, MsgPasswordChanged)
	case errors.Is(err, application.ErrResetNotFoundOrExpired):
		c.String(http.StatusBadRequest, MsgResetNotFound)
	default:
		h.internal(c, err, "reset completion failed")
	}
}
