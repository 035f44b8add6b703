package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"softwaresur_backend/internal/auth/service"
	"softwaresur_backend/internal/auth/transport"
	"softwaresur_backend/platform/httpkit"
	"softwaresur_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the public auth routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/login", h.Login)
}

// RegisterProtectedRoutes registers routes behind the auth middleware.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", h.Me)
}

// Login handles POST /api/v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req transport.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, validator.FieldIssues(err))
		return
	}

	result, err := h.svc.Login(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}

// Me handles GET /api/v1/auth/me
func (h *Handler) Me(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	result, err := h.svc.Profile(c.Request.Context(), identity.UserID())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, result)
}
