package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/govjobs/apiserver/config"
	"github.com/govjobs/apiserver/internal/auth"
	"github.com/govjobs/apiserver/internal/cache"
	"github.com/govjobs/apiserver/internal/db"
	"github.com/govjobs/apiserver/internal/handlers"
	"github.com/govjobs/apiserver/internal/services"
	"github.com/govjobs/apiserver/internal/store"
	"github.com/govjobs/apiserver/web"
	"github.com/redis/go-redis/v9"
)

const productionBcryptCost = 12

// Server wraps the HTTP server and router.
type Server struct {
	httpServer  *http.Server
	router      *chi.Mux
	db          *sql.DB
	searchCache *cache.SearchCache
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var searchCache *cache.SearchCache
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		searchCache = cache.New(client, "jobs:", cfg.Redis.CacheTTL)
		if err := searchCache.Ping(ctx); err != nil {
			// The cache is an optimization; run without it when Redis
			// is unreachable.
			fmt.Fprintf(os.Stderr, "redis unavailable, caching disabled: %v\n", err)
			_ = searchCache.Close()
			searchCache = nil
		}
	}

	issuer := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.TokenTTL)

	userRepo := store.NewUserRepository(dbConn)
	userService := services.NewUserService(userRepo, issuer, productionBcryptCost)
	jobsService := services.NewJobsService(cfg.USAJobs, searchCache)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.CORSAllowedOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	router.Get("/healthz", handlers.Healthz)
	router.Route("/users", func(r chi.Router) {
		handlers.UsersRouter(r, userService, issuer)
	})
	router.Route("/jobs", func(r chi.Router) {
		handlers.JobsRouter(r, jobsService)
	})
	router.NotFound(web.SPAHandler())

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer:  httpServer,
		router:      router,
		db:          dbConn,
		searchCache: searchCache,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.db != nil {
		_ = s.db.Close()
	}
	if s.searchCache != nil {
		_ = s.searchCache.Close()
	}
	return s.httpServer.Close()
}
