package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"softwaresur_backend/internal/quotes/service"
	"softwaresur_backend/internal/quotes/transport"
	"softwaresur_backend/platform/httpkit"
	"softwaresur_backend/platform/validator"
)

// PublicHandler serves the unauthenticated intake and status endpoints
// used by the marketing site.
type PublicHandler struct {
	svc *service.Service
	val *validator.Validator
}

func NewPublicHandler(svc *service.Service, val *validator.Validator) *PublicHandler {
	return &PublicHandler{svc: svc, val: val}
}

// RegisterRoutes registers the public quote routes.
func (h *PublicHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Submit)
	rg.GET("/:id", h.GetStatus)
}

// Submit handles POST /api/v1/public/quote-requests
func (h *PublicHandler) Submit(c *gin.Context) {
	var req transport.SubmitQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldIssues(err))
		return
	}

	result, err := h.svc.Submit(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.JSON(c, http.StatusCreated, result)
}

// GetStatus handles GET /api/v1/public/quote-requests/:id
func (h *PublicHandler) GetStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.svc.GetPublicStatus(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}
