package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"softwaresur_backend/internal/quotes/service"
	"softwaresur_backend/internal/quotes/transport"
	"softwaresur_backend/platform/httpkit"
	"softwaresur_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgInvalidID        = "invalid quote request id"
	msgValidationFailed = "validation failed"
)

// Handler serves the admin-facing quote request endpoints.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the admin quote routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

// RegisterTemplateRoutes registers the canned response template routes.
func (h *Handler) RegisterTemplateRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.ListResponseTemplates)
}

// List handles GET /api/v1/admin/quote-requests
func (h *Handler) List(c *gin.Context) {
	var filter transport.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	identity := httpkit.MustGetIdentity(c)
	result, err := h.svc.List(c.Request.Context(), identity.UserID(), filter)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// GetByID handles GET /api/v1/admin/quote-requests/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	identity := httpkit.MustGetIdentity(c)
	result, err := h.svc.GetByID(c.Request.Context(), identity.UserID(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Update handles PATCH /api/v1/admin/quote-requests/:id
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldIssues(err))
		return
	}

	identity := httpkit.MustGetIdentity(c)
	result, err := h.svc.Update(c.Request.Context(), identity.UserID(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Delete handles DELETE /api/v1/admin/quote-requests/:id
func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if httpkit.HandleError(c, h.svc.Delete(c.Request.Context(), identity.UserID(), id)) {
		return
	}

	c.Status(http.StatusNoContent)
}

// ListResponseTemplates handles GET /api/v1/admin/response-templates
func (h *Handler) ListResponseTemplates(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	result, err := h.svc.ListResponseTemplates(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.Nil, false
	}
	return id, true
}
