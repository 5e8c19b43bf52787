package itest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/recipeasy/recipeasy-api/internal/adapters/httpapi"
	memclock "github.com/recipeasy/recipeasy-api/internal/adapters/memory/clock"
	memfavoriterepo "github.com/recipeasy/recipeasy-api/internal/adapters/memory/favoriterepo"
	memidempotency "github.com/recipeasy/recipeasy-api/internal/adapters/memory/idempotency"
	memresponsecache "github.com/recipeasy/recipeasy-api/internal/adapters/memory/responsecache"
	pgfavoriterepo "github.com/recipeasy/recipeasy-api/internal/adapters/postgres/favoriterepo"
	pgidempotency "github.com/recipeasy/recipeasy-api/internal/adapters/postgres/idempotency"
	postgres_testutil "github.com/recipeasy/recipeasy-api/internal/adapters/postgres/testutil"
	"github.com/recipeasy/recipeasy-api/internal/adapters/samplecatalog"
	"github.com/recipeasy/recipeasy-api/internal/app/favorites"
	"github.com/recipeasy/recipeasy-api/internal/app/recipes"
	favoriterepoport "github.com/recipeasy/recipeasy-api/internal/ports/out/favoriterepo"
	idempotencyport "github.com/recipeasy/recipeasy-api/internal/ports/out/idempotency"
)

type backend string

const (
	backendMemory   backend = "memory"
	backendPostgres backend = "postgres"
)

func backendsFromEnv(t *testing.T) []backend {
	t.Helper()
	switch strings.ToLower(strings.TrimSpace(os.Getenv("ITEST_BACKEND"))) {
	case "", "memory":
		return []backend{backendMemory}
	case "postgres":
		return []backend{backendPostgres}
	case "all":
		return []backend{backendMemory, backendPostgres}
	default:
		t.Fatalf("unknown ITEST_BACKEND value (expected memory|postgres|all)")
		return nil
	}
}

type testServer struct {
	baseURL string
	client  *http.Client
}

func newTestServer(t *testing.T, b backend) *testServer {
	t.Helper()

	const issuer = "itest-issuer"
	clk := memclock.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	var (
		favoriteRepo favoriterepoport.Repository
		idemStore    idempotencyport.Store
	)

	switch b {
	case backendPostgres:
		pool := postgres_testutil.OpenMigratedPool(t)
		favoriteRepo = pgfavoriterepo.NewRepo(pool, issuer)
		idemStore = pgidempotency.NewStore(pool, issuer)
	case backendMemory:
		favoriteRepo = memfavoriterepo.NewRepo()
		idemStore = memidempotency.NewStore()
	default:
		t.Fatalf("unknown backend: %s", b)
	}

	catalog, err := samplecatalog.New()
	if err != nil {
		t.Fatalf("samplecatalog.New: %v", err)
	}
	cache := memresponsecache.NewStore(clk, memresponsecache.Options{})
	recipeSvc := recipes.NewService(catalog, cache, recipes.Options{Dedupe: true})
	favoriteSvc := favorites.NewService(favoriteRepo, clk)
	api := httpapi.NewServer(recipeSvc, favoriteSvc, idemStore)

	// Integration tests use the dev auth middleware to stay fully local and deterministic.
	// We pass empty default subject to ensure requests MUST provide X-Debug-Subject, allowing
	// auth-failure coverage.
	authMW := httpapi.NewDevAuthMiddleware("")
	handler := httpapi.NewRouterWithOptions(api, httpapi.RouterOptions{AuthMiddleware: authMW})

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		baseURL: srv.URL,
		client:  srv.Client(),
	}
}

func (s *testServer) url(path string) string {
	if strings.HasPrefix(path, "/") {
		return s.baseURL + path
	}
	return s.baseURL + "/" + path
}

func (s *testServer) doJSON(t *testing.T, method string, path string, subject string, body any) (int, []byte, http.Header) {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, s.url(path), r)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if subject != "" {
		req.Header.Set("X-Debug-Subject", subject)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, out, resp.Header
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func mustUnmarshal[T any](t *testing.T, b []byte) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v\nbody=%s", err, string(b))
	}
	return out
}

func requireErrorCode(t *testing.T, status int, body []byte, wantStatus int, wantCode string) {
	t.Helper()
	if status != wantStatus {
		t.Fatalf("status=%d want=%d body=%s", status, wantStatus, string(body))
	}
	got := mustUnmarshal[errorResponse](t, body)
	if got.Error.Code != wantCode {
		t.Fatalf("error.code=%q want=%q body=%s", got.Error.Code, wantCode, string(body))
	}
}

func requireHeaderPresent(t *testing.T, h http.Header, key string) {
	t.Helper()
	if strings.TrimSpace(h.Get(key)) == "" {
		t.Fatalf("expected header %q to be present", key)
	}
}

func (s *testServer) doJSONWithKey(t *testing.T, method string, path string, subject string, key string, body any) (int, []byte) {
	t.Helper()

	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req, err := http.NewRequest(method, s.url(path), bytes.NewReader(b))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Debug-Subject", subject)
	req.Header.Set("Idempotency-Key", key)

	resp, err := s.client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, out
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
