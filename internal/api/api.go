package api

import (
	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"

	"github.com/connexo-app/backend/internal/middleware"
	"github.com/connexo-app/backend/internal/service"
	"github.com/connexo-app/backend/internal/store"
)

// Deps bundles everything the handlers need.
type Deps struct {
	Profiles      *store.Store
	Auth          *service.AuthService
	Account       *service.AccountService
	Images        *service.ImageService
	Analytics     *service.AnalyticsService
	PageCache     *gocache.Cache
	UploadLimiter *middleware.RateLimiter
}

// SetupAPI registers all routes on the engine.
func SetupAPI(router *gin.Engine, deps Deps) {
	v1 := router.Group("/api/v1")

	authHandler := NewAuthHandler(deps.Auth)
	dashboardHandler := NewDashboardHandler(
		deps.Profiles, deps.Account, deps.Images, deps.Analytics, deps.Auth, deps.UploadLimiter)
	pageHandler := NewPageHandler(deps.Profiles, deps.Auth, deps.PageCache)

	authHandler.RegisterRoutes(v1)
	dashboardHandler.RegisterRoutes(v1)
	pageHandler.RegisterRoutes(router, v1)
}
