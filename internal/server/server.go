package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"

	"github.com/connexo-app/backend/config"
	"github.com/connexo-app/backend/internal/api"
	"github.com/connexo-app/backend/internal/database"
	"github.com/connexo-app/backend/internal/middleware"
	"github.com/connexo-app/backend/internal/service"
	"github.com/connexo-app/backend/internal/store"
	"github.com/connexo-app/backend/internal/types"
)

// pageCacheTTL bounds how long a projected public page may be served
// without re-projecting. Mutations flush the cache anyway; the TTL only
// covers documents changed by another process.
const pageCacheTTL = 30 * time.Second

// Server represents the HTTP server
type Server struct {
	cfg      *config.Config
	router   *gin.Engine
	http     *http.Server
	db       *gorm.DB
	profiles *store.Store
}

// New builds a fully wired server: database, optional Redis and S3,
// the profile store and all HTTP handlers. Redis and S3 are best-effort;
// the server runs without caching and with embedded images when they
// are unavailable.
func New(cfg *config.Config) (*Server, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	rows := database.NewDocumentStore(db)
	var docs store.Persistence = rows

	var uploadLimiter *middleware.RateLimiter
	if redisClient, err := database.NewRedisClient(cfg); err != nil {
		log.Printf("redis unavailable, continuing without document cache and rate limiting: %v", err)
	} else {
		docs = database.NewLayeredDocuments(database.NewRedisDocuments(redisClient, time.Hour), rows)
		uploadLimiter = middleware.NewUploadRateLimiter(redisClient)
	}

	s3cfg := loadS3(context.Background())

	pages := gocache.New(pageCacheTTL, time.Minute)
	profiles := store.New(docs, store.WithOnChange(func(uuid.UUID, types.ProfileDocument) {
		// Public pages must reflect edits immediately.
		pages.Flush()
	}))

	authService := service.NewAuthService(db, profiles, cfg.JWTSecret)
	accountService := service.NewAccountService(db, profiles)
	imageService := service.NewImageService(s3cfg)
	analyticsService := service.NewAnalyticsService()

	srv := &Server{cfg: cfg, db: db, profiles: profiles}
	srv.router = newRouter(api.Deps{
		Profiles:      profiles,
		Auth:          authService,
		Account:       accountService,
		Images:        imageService,
		Analytics:     analyticsService,
		PageCache:     pages,
		UploadLimiter: uploadLimiter,
	})
	return srv, nil
}

// loadS3 initializes the S3 client and its public-read bucket policy.
// Returns nil when the AWS environment is not configured.
func loadS3(ctx context.Context) *config.S3Config {
	s3cfg, err := config.NewS3Config(ctx)
	if err != nil {
		log.Printf("s3 unavailable, images will be embedded as data URIs: %v", err)
		return nil
	}
	if err := s3cfg.SetupBucketPolicy(ctx); err != nil {
		log.Printf("failed to apply s3 bucket policy: %v", err)
	}
	return s3cfg
}

// newRouter builds the Gin engine with CORS and all routes registered.
func newRouter(deps api.Deps) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.SetupAPI(router, deps)
	return router
}

// Start starts the server and blocks until it exits.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler: s.router,
	}

	log.Printf("listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server and flushes every dirty
// profile document so no debounced edits are lost.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			return err
		}
	}
	return s.profiles.FlushAll(ctx)
}
