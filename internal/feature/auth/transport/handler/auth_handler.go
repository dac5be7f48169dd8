// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"contacts_backend/internal/api"
	"contacts_backend/internal/feature/auth/domain/entity"
	"contacts_backend/internal/feature/auth/transport/http/dto"
	"contacts_backend/internal/feature/auth/usecase"
	"contacts_backend/internal/platform/validation"
)

const (
	msgCredentialsRequired = "email and password required"
	msgPasswordTooLong     = "password must be at most 72 bytes"
	msgEmailTaken          = "Email already registered"
	msgInvalidCredentials  = "Invalid credentials"
)

// AuthUsecase defines the use case for authentication operations.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	// Signup registers a new user and returns it.
	Signup(ctx context.Context, email, password string) (*entity.User, error)
	// Login authenticates a user and returns a signed token on success.
	Login(ctx context.Context, email, password string) (string, error)
}

// AuthHandler handles HTTP requests for registration and login.
type AuthHandler struct {
	auth AuthUsecase
	log  *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth AuthUsecase, log *zap.Logger) *AuthHandler {
	validation.MustRegister()
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthHandler{auth: auth, log: log}
}

// Signup handles POST /auth/register.
//   - missing email or password: 400
//   - password longer than bcrypt accepts: 400
//   - email already registered: 409
//   - success: 201 with the new user's id and email
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("signup rejected", zap.Error(err), zap.String("remote_addr", c.ClientIP()))
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: msgCredentialsRequired})
		return
	}

	user, err := h.auth.Signup(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, usecase.ErrValidation):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: msgCredentialsRequired})
		return
	case errors.Is(err, usecase.ErrPasswordTooLong):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: msgPasswordTooLong})
		return
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		h.log.Warn("signup with registered email", zap.String("remote_addr", c.ClientIP()))
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: msgEmailTaken})
		return
	default:
		h.log.Error("signup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: api.MsgServerError})
		return
	}

	h.log.Info("user signup successful", zap.Uint("user_id", user.ID), zap.String("remote_addr", c.ClientIP()))
	c.JSON(http.StatusCreated, dto.NewSignupRes(user))
}

// Login handles POST /auth/login.
//   - missing email or password: 400
//   - unknown email or wrong password: 401 with the same message
//   - success: 200 with a signed token
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("login rejected", zap.Error(err), zap.String("remote_addr", c.ClientIP()))
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: msgCredentialsRequired})
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, usecase.ErrValidation):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: msgCredentialsRequired})
		return
	case errors.Is(err, usecase.ErrInvalidCredentials):
		// The response never reveals whether the email exists.
		h.log.Warn("login failed", zap.String("remote_addr", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: msgInvalidCredentials})
		return
	default:
		h.log.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: api.MsgServerError})
		return
	}

	c.JSON(http.StatusOK, api.TokenResponse{Token: token})
}
