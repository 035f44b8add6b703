// Package http provides HTTP server infrastructure including the Module
// interface that all domain modules implement for route registration.
package http

import (
	"github.com/gin-gonic/gin"

	"softwaresur_backend/platform/config"
	"softwaresur_backend/platform/httpkit"
)

// Module represents a bounded context that can register its HTTP routes.
// Each domain module implements this interface to encapsulate its own
// route setup, keeping the main router decoupled from specific endpoints.
type Module interface {
	// Name returns the module's identifier for logging purposes.
	Name() string
	// RegisterRoutes mounts the module's routes on the provided router group.
	// The RouterContext provides access to shared middleware and configuration.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext provides shared dependencies for module route registration.
// This avoids passing many parameters to each module's RegisterRoutes method.
type RouterContext struct {
	// Engine is the root Gin engine for modules that need engine-level access.
	Engine *gin.Engine
	// V1 is the /api/v1 route group.
	V1 *gin.RouterGroup
	// Protected is the authenticated route group under /api/v1.
	Protected *gin.RouterGroup
	// Admin is the admin-scoped route group under /api/v1/admin. Routes here
	// carry the auth middleware; handlers still verify admin privileges.
	Admin *gin.RouterGroup
	// Config is the JWT configuration for auth middleware (scoped access).
	Config config.JWTConfig
	// AuthMiddleware provides the authentication middleware.
	AuthMiddleware gin.HandlerFunc
	// AuthRateLimiter is the stricter rate limiter for login routes.
	AuthRateLimiter *httpkit.AuthRateLimiter
	// PublicRateLimiter throttles the unauthenticated intake endpoints.
	PublicRateLimiter *httpkit.IPRateLimiter
}
