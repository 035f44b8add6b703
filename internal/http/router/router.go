// Package router assembles the Gin engine from the application modules.
package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apphttp "softwaresur_backend/internal/http"
	"softwaresur_backend/platform/httpkit"
)

// New builds the HTTP engine: global middleware, health endpoint, route
// groups, and every module's routes.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(corsMiddleware(app))

	globalLimiter := httpkit.NewIPRateLimiter(rate.Limit(20), 40, app.Logger)
	engine.Use(globalLimiter.RateLimit())

	engine.GET("/api/health", healthHandler(app.Health))

	v1 := engine.Group("/api/v1")
	authMiddleware := httpkit.AuthRequired(app.Config)
	protected := v1.Group("")
	protected.Use(authMiddleware)
	admin := protected.Group("/admin")

	ctx := &apphttp.RouterContext{
		Engine:            engine,
		V1:                v1,
		Protected:         protected,
		Admin:             admin,
		Config:            app.Config,
		AuthMiddleware:    authMiddleware,
		AuthRateLimiter:   httpkit.NewAuthRateLimiter(app.Logger),
		PublicRateLimiter: httpkit.NewIPRateLimiter(rate.Limit(2), 5, app.Logger),
	}

	for _, m := range app.Modules {
		m.RegisterRoutes(ctx)
		app.Logger.Info("registered module routes", "module", m.Name())
	}

	return engine
}

func corsMiddleware(app *apphttp.App) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: app.Config.GetCORSAllowCreds(),
		MaxAge:           12 * time.Hour,
	}
	if app.Config.GetCORSAllowAll() {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = app.Config.GetCORSOrigins()
	}
	return cors.New(corsCfg)
}

func healthHandler(health apphttp.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if health != nil {
			if err := health.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
