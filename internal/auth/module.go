// Package auth provides admin authentication: login, token issuance and
// the admin membership check other modules authorize against.
package auth

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"softwaresur_backend/internal/auth/handler"
	"softwaresur_backend/internal/auth/repository"
	"softwaresur_backend/internal/auth/service"
	apphttp "softwaresur_backend/internal/http"
	"softwaresur_backend/platform/logger"
	"softwaresur_backend/platform/validator"
)

type Module struct {
	handler *handler.Handler
	service *service.Service
}

func NewModule(pool *pgxpool.Pool, cfg service.Config, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, log)

	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "auth"
}

// Service exposes the admin checker for other modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	login := ctx.V1.Group("/auth")
	login.Use(ctx.AuthRateLimiter.RateLimit())
	m.handler.RegisterRoutes(login)

	m.handler.RegisterProtectedRoutes(ctx.Protected.Group("/auth"))
}

var _ apphttp.Module = (*Module)(nil)
