package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/recipeasy/recipeasy-api/internal/adapters/httpapi"
	memfavoriterepo "github.com/recipeasy/recipeasy-api/internal/adapters/memory/favoriterepo"
	memidempotency "github.com/recipeasy/recipeasy-api/internal/adapters/memory/idempotency"
	memresponsecache "github.com/recipeasy/recipeasy-api/internal/adapters/memory/responsecache"
	postgres "github.com/recipeasy/recipeasy-api/internal/adapters/postgres"
	pgfavoriterepo "github.com/recipeasy/recipeasy-api/internal/adapters/postgres/favoriterepo"
	pgidempotency "github.com/recipeasy/recipeasy-api/internal/adapters/postgres/idempotency"
	"github.com/recipeasy/recipeasy-api/internal/adapters/postgres/migrations"
	"github.com/recipeasy/recipeasy-api/internal/adapters/samplecatalog"
	"github.com/recipeasy/recipeasy-api/internal/adapters/spoonacular"
	"github.com/recipeasy/recipeasy-api/internal/app/favorites"
	"github.com/recipeasy/recipeasy-api/internal/app/recipes"
	platformclock "github.com/recipeasy/recipeasy-api/internal/platform/clock"
	"github.com/recipeasy/recipeasy-api/internal/platform/config"
	"github.com/recipeasy/recipeasy-api/internal/platform/logging"
	"github.com/recipeasy/recipeasy-api/internal/platform/metrics"
	favoriterepoport "github.com/recipeasy/recipeasy-api/internal/ports/out/favoriterepo"
	idempotencyport "github.com/recipeasy/recipeasy-api/internal/ports/out/idempotency"
	"github.com/recipeasy/recipeasy-api/internal/ports/out/recipeapi"
)

const serviceName = "recipeasy-api"

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("api exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadAppConfigFromEnv()
	if err != nil {
		logging.SetDefaultStructuredLogger(serviceName, version, "info")
		return err
	}
	log := logging.SetDefaultStructuredLogger(serviceName, version, cfg.LogLevel)
	metrics.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Auth configuration:
	// - dev: X-Debug-Subject header, falling back to DEV_SUBJECT
	// - static: Authorization: Bearer <token> against AUTH_TOKENS
	var authMW func(http.Handler) http.Handler
	switch cfg.AuthMode {
	case config.AuthModeStatic:
		authMW = httpapi.NewAuthMiddleware(httpapi.NewStaticTokenVerifier(cfg.AuthTokens))
	default:
		authMW = httpapi.NewDevAuthMiddleware(cfg.DevSubject)
	}

	clk := platformclock.NewSystemClock()

	var gateway recipeapi.Gateway
	switch cfg.RecipeProvider {
	case config.ProviderSample:
		catalog, err := samplecatalog.New()
		if err != nil {
			return err
		}
		gateway = catalog
		log.Info("using embedded sample recipe catalog")
	default:
		gateway = spoonacular.NewClient(spoonacular.Options{
			BaseURL: cfg.RecipeAPIBaseURL,
			Timeout: cfg.RecipeAPITimeout,
			Logger:  log,
		})
		if os.Getenv(spoonacular.APIKeyEnv) == "" {
			log.Warn("recipe provider key is not set; recipe requests will fail until it is", "env", spoonacular.APIKeyEnv)
		}
	}

	var (
		favoriteRepo favoriterepoport.Repository
		idemStore    idempotencyport.Store
	)
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, postgres.PoolOptions{})
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := migrations.Apply(ctx, pool); err != nil {
			return err
		}
		favoriteRepo = pgfavoriterepo.NewRepo(pool, cfg.AuthIssuer)
		idemStore = pgidempotency.NewStore(pool, cfg.AuthIssuer)
	default:
		favoriteRepo = memfavoriterepo.NewRepo()
		idemStore = memidempotency.NewStore()
	}

	cache := memresponsecache.NewStore(clk, memresponsecache.Options{
		TTL:        cfg.CacheTTL,
		MaxEntries: cfg.CacheMaxEntries,
	})
	recipeSvc := recipes.NewService(gateway, cache, recipes.Options{
		Dedupe: cfg.SearchDedupe,
		Logger: log,
	})
	favoriteSvc := favorites.NewService(favoriteRepo, clk)

	api := httpapi.NewServer(recipeSvc, favoriteSvc, idemStore)
	api.ExposeErrorCause = cfg.Development()

	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}

	handler := httpapi.NewRouterWithOptions(api, httpapi.RouterOptions{
		AuthMiddleware:   authMW,
		RateLimiter:      limiter,
		AllowedOrigin:    cfg.ClientURL,
		MetricsHandler:   metrics.Handler(),
		Logger:           log,
		ExposeErrorCause: cfg.Development(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("api listening", "addr", srv.Addr, "provider", cfg.RecipeProvider, "storage", cfg.StorageBackend, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
