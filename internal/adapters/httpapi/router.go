package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/recipeasy/recipeasy-api/internal/adapters/httpapi/oas"
)

// APIPrefix is the second mount point of every API route.
const APIPrefix = "/api"

type RouterOptions struct {
	// AuthMiddleware guards operations that declare bearer security. Nil leaves
	// them unauthenticated, and handlers then answer 401 for lack of a subject.
	AuthMiddleware func(http.Handler) http.Handler
	// RateLimiter is shared by all API routes. Nil disables limiting.
	RateLimiter *rate.Limiter
	// AllowedOrigin enables CORS for one browser origin.
	AllowedOrigin string
	// MetricsHandler is served at /metrics when set.
	MetricsHandler http.Handler
	Logger         *slog.Logger
	// ExposeErrorCause adds details.cause to unexpected 500 responses.
	ExposeErrorCause bool
}

// NewRouter constructs the API HTTP router.
func NewRouter(ssi oas.StrictServerInterface) http.Handler {
	return NewRouterWithOptions(ssi, RouterOptions{})
}

// NewRouterWithOptions constructs the API HTTP router.
//
// The oas layer decodes requests and binds parameters; this package wires
// middleware and operational endpoints around it.
func NewRouterWithOptions(ssi oas.StrictServerInterface, opts RouterOptions) http.Handler {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	if opts.AllowedOrigin != "" {
		r.Use(cors(opts.AllowedOrigin))
	}
	r.Use(instrument)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeOASError(w, r, http.StatusNotFound, codeNotFound, "Cannot "+r.Method+" "+r.URL.Path, nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeOASError(w, r, http.StatusMethodNotAllowed, codeMethod, "Method "+r.Method+" not allowed on "+r.URL.Path, nil)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "Recipe API is running"})
	})
	r.Get(APIPrefix+"/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":    "ok",
			"message":   "Server is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		})
	})
	if opts.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", opts.MetricsHandler)
	}

	strict := oas.NewStrictHandlerWithOptions(ssi, nil, oas.StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  requestErrorHandler,
		ResponseErrorHandlerFunc: responseErrorHandler(log, opts.ExposeErrorCause),
	})
	var mws []oas.MiddlewareFunc
	if opts.AuthMiddleware != nil {
		mws = append(mws, oas.MiddlewareFunc(opts.AuthMiddleware))
	}

	r.Group(func(r chi.Router) {
		if opts.RateLimiter != nil {
			r.Use(rateLimit(opts.RateLimiter))
		}
		for _, base := range []string{"", APIPrefix} {
			oas.HandlerWithOptions(strict, oas.ChiServerOptions{
				BaseURL:          base,
				BaseRouter:       r,
				Middlewares:      mws,
				ErrorHandlerFunc: requestErrorHandler,
			})
		}
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
