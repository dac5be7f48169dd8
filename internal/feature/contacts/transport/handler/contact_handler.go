// Package handler provides the HTTP handlers for the contacts feature.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"contacts_backend/internal/api"
	"contacts_backend/internal/feature/contacts/domain/entity"
	"contacts_backend/internal/feature/contacts/transport/http/dto"
	"contacts_backend/internal/feature/contacts/usecase"
	jwtmw "contacts_backend/internal/platform/jwt"
	"contacts_backend/internal/platform/validation"
)

const (
	msgNameRequired = "name is required"
	msgNotFound     = "Contact not found"
	msgDeleted      = "Contact deleted"
)

// ContactUsecase defines the contact operations the handler depends on.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type ContactUsecase interface {
	List(ctx context.Context, userID uint) ([]entity.Contact, error)
	Create(ctx context.Context, userID uint, in entity.Input) (*entity.Contact, error)
	Get(ctx context.Context, userID, id uint) (*entity.Contact, error)
	Update(ctx context.Context, userID, id uint, in entity.Input) (*entity.Contact, error)
	Delete(ctx context.Context, userID, id uint) error
}

// ContactHandler handles HTTP requests for the authenticated user's contacts.
// It must be mounted behind jwtmw.AuthRequired.
type ContactHandler struct {
	uc  ContactUsecase
	log *zap.Logger
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(uc ContactUsecase, log *zap.Logger) *ContactHandler {
	validation.MustRegister()
	if log == nil {
		log = zap.NewNop()
	}
	return &ContactHandler{uc: uc, log: log}
}

// List handles GET /contacts.
func (h *ContactHandler) List(c *gin.Context) {
	user, ok := h.identity(c)
	if !ok {
		return
	}
	contacts, err := h.uc.List(c.Request.Context(), user.ID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, api.DataResponse[[]dto.ContactRes]{Data: dto.NewContactListRes(contacts)})
}

// Create handles POST /contacts.
func (h *ContactHandler) Create(c *gin.Context) {
	user, ok := h.identity(c)
	if !ok {
		return
	}
	req, ok := h.bind(c)
	if !ok {
		return
	}
	contact, err := h.uc.Create(c.Request.Context(), user.ID, req.ToInput())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, api.DataResponse[dto.ContactRes]{Data: dto.NewContactRes(*contact)})
}

// Get handles GET /contacts/:id.
func (h *ContactHandler) Get(c *gin.Context) {
	user, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	contact, err := h.uc.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, api.DataResponse[dto.ContactRes]{Data: dto.NewContactRes(*contact)})
}

// Update handles PUT /contacts/:id.
func (h *ContactHandler) Update(c *gin.Context) {
	user, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	req, ok := h.bind(c)
	if !ok {
		return
	}
	contact, err := h.uc.Update(c.Request.Context(), user.ID, id, req.ToInput())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, api.DataResponse[dto.ContactRes]{Data: dto.NewContactRes(*contact)})
}

// Delete handles DELETE /contacts/:id.
func (h *ContactHandler) Delete(c *gin.Context) {
	user, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), user.ID, id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: msgDeleted})
}

// identity returns the caller resolved by the auth middleware.
// Reaching a handler without one is a wiring error, reported as 401.
func (h *ContactHandler) identity(c *gin.Context) (*jwtmw.Identity, bool) {
	user, ok := jwtmw.CurrentUser(c)
	if !ok {
		h.log.Error("contact handler reached without identity", zap.String("path", c.FullPath()))
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: api.MsgUnauthorized})
		return nil, false
	}
	return user, true
}

func (h *ContactHandler) bind(c *gin.Context) (dto.ContactReq, bool) {
	var req dto.ContactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		msg := api.MsgInvalidBody
		if validation.IsValidationError(err) {
			msg = msgNameRequired
		}
		h.log.Debug("contact body rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: msg})
		return req, false
	}
	return req, true
}

// parseID reads the :id path parameter as an unsigned integer.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, strconv.IntSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: api.MsgInvalidID})
		return 0, false
	}
	return uint(id), true
}

// fail maps usecase errors to HTTP responses.
func (h *ContactHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: msgNameRequired})
	case errors.Is(err, usecase.ErrContactNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: msgNotFound})
	default:
		h.log.Error("contact operation failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: api.MsgServerError})
	}
}
