// Package quotes provides the quote request (cotizaciones) domain module:
// public intake, tracking IDs, and the admin back office.
package quotes

import (
	"github.com/jackc/pgx/v5/pgxpool"

	apphttp "softwaresur_backend/internal/http"
	"softwaresur_backend/internal/quotes/handler"
	"softwaresur_backend/internal/quotes/repository"
	"softwaresur_backend/internal/quotes/service"
	"softwaresur_backend/platform/events"
	"softwaresur_backend/platform/logger"
	"softwaresur_backend/platform/validator"
)

// Module wires the quote request repository, service and handlers.
type Module struct {
	handler       *handler.Handler
	publicHandler *handler.PublicHandler
	service       *service.Service
}

// NewModule creates the quotes module with all dependencies wired. The
// admins checker comes from the auth module.
func NewModule(pool *pgxpool.Pool, admins service.AdminChecker, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.NewRepository(pool)
	svc := service.NewService(repo, admins, eventBus, log)

	return &Module{
		handler:       handler.New(svc, val),
		publicHandler: handler.NewPublicHandler(svc, val),
		service:       svc,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "quotes"
}

// Service returns the service layer for other modules (dashboard export).
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Admin.Group("/quote-requests"))
	m.handler.RegisterTemplateRoutes(ctx.Admin.Group("/response-templates"))

	// Public intake — no auth middleware, but rate limited.
	public := ctx.V1.Group("/public/quote-requests")
	public.Use(ctx.PublicRateLimiter.RateLimit())
	m.publicHandler.RegisterRoutes(public)
}

var _ apphttp.Module = (*Module)(nil)
