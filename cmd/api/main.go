package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/Lelo88/collectibles-api-golang/internal/config"
	"github.com/Lelo88/collectibles-api-golang/internal/csvimport"
	"github.com/Lelo88/collectibles-api-golang/internal/db"
	"github.com/Lelo88/collectibles-api-golang/internal/docs"
	"github.com/Lelo88/collectibles-api-golang/internal/health"
	"github.com/Lelo88/collectibles-api-golang/internal/httpx"
	"github.com/Lelo88/collectibles-api-golang/internal/items"
	"github.com/Lelo88/collectibles-api-golang/internal/logging"
	"github.com/Lelo88/collectibles-api-golang/internal/platforms"
)

const requestTimeout = 30 * time.Second

// appPool es lo que la app usa de pgxpool.Pool.
type appPool interface {
	Ping(ctx context.Context) error
	Close()
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// appDeps agrupa lo externo para poder testear run sin DB ni red.
type appDeps struct {
	loadConfig     func() (config.Config, error)
	newLogger      func(level, format string) (*zap.Logger, error)
	newPool        func(ctx context.Context, url string) (appPool, error)
	listenAndServe func(addr string, handler http.Handler) error
}

var (
	loadConfigFn = config.Load
	newLoggerFn  = logging.New
	newPoolFn    = func(ctx context.Context, url string) (appPool, error) {
		return db.NewPool(ctx, url)
	}
	listenAndServeFn = func(addr string, handler http.Handler) error {
		server := &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}
		return server.ListenAndServe()
	}
	// Antes de tener logger solo queda el log estándar.
	fatalf = log.Fatal
)

func main() {
	deps := appDeps{
		loadConfig:     loadConfigFn,
		newLogger:      newLoggerFn,
		newPool:        newPoolFn,
		listenAndServe: listenAndServeFn,
	}
	if err := run(context.Background(), deps); err != nil {
		fatalf(err)
	}
}

func run(ctx context.Context, deps appDeps) error {
	cfg, err := deps.loadConfig()
	if err != nil {
		return err
	}

	logger, err := deps.newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	pool, err := deps.newPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("database unavailable", zap.Error(err))
		return err
	}
	defer pool.Close()

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr))
	return deps.listenAndServe(addr, buildRouter(pool, cfg, logger))
}

func buildRouter(pool appPool, cfg config.Config, logger *zap.Logger) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logging.RequestLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5, "text/csv", "application/json"))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Disposition", "Retry-After"},
		MaxAge:         300,
	}))

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, r, http.StatusNotFound, "not_found", "resource not found")
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		httpx.Fail(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	healthHandler := health.New(pool)
	router.Group(func(timed chi.Router) {
		timed.Use(middleware.Timeout(requestTimeout))
		timed.Get("/health", healthHandler.Health)
		timed.Get("/ready", healthHandler.Ready)
		docs.RegisterRoutes(timed)
	})

	platformRepository := platforms.NewRepository(pool)
	itemRepository := items.NewRepository(pool)
	importer := csvimport.NewImporter(platformRepository, itemRepository, logger)
	limiter := httpx.NewRateLimiter(cfg.RateLimitPerMinute)

	router.Route("/api", func(api chi.Router) {
		api.Use(limiter.Middleware)

		api.Group(func(timed chi.Router) {
			timed.Use(middleware.Timeout(requestTimeout))
			platforms.RegisterRoutes(timed, platforms.NewHandler(platforms.NewService(platformRepository)))
			items.RegisterRoutes(timed, items.NewHandler(items.NewService(itemRepository)))
		})
		// /import no lleva timeout; ver csvimport.RegisterRoutes.
		csvimport.RegisterRoutes(api, csvimport.NewHandler(importer, itemRepository, cfg.MaxUploadBytes, logger), requestTimeout)
	})

	return router
}
