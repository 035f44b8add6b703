// Package dashboard provides the admin back-office extras: a live
// server-sent change feed and CSV exports of the quote listing.
package dashboard

import (
	apphttp "softwaresur_backend/internal/http"
	quoteservice "softwaresur_backend/internal/quotes/service"
	"softwaresur_backend/platform/events"
	"softwaresur_backend/platform/logger"
)

type Module struct {
	handler *Handler
	feed    *Feed
}

func NewModule(quotes *quoteservice.Service, admins quoteservice.AdminChecker, eventBus events.Bus, log *logger.Logger) *Module {
	feed := NewFeed(log)
	feed.RegisterHandlers(eventBus)

	return &Module{
		handler: NewHandler(quotes, admins, feed),
		feed:    feed,
	}
}

// Name returns the module name for logging.
func (m *Module) Name() string {
	return "dashboard"
}

// Feed exposes the change feed, mainly for tests.
func (m *Module) Feed() *Feed {
	return m.feed
}

// RegisterRoutes registers the module's routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Admin.Group("/dashboard"))
}

var _ apphttp.Module = (*Module)(nil)
