package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/recipeasy/recipeasy-api/internal/adapters/httpapi/oas"
	memclock "github.com/recipeasy/recipeasy-api/internal/adapters/memory/clock"
	memfavoriterepo "github.com/recipeasy/recipeasy-api/internal/adapters/memory/favoriterepo"
	memidempotency "github.com/recipeasy/recipeasy-api/internal/adapters/memory/idempotency"
	memresponsecache "github.com/recipeasy/recipeasy-api/internal/adapters/memory/responsecache"
	"github.com/recipeasy/recipeasy-api/internal/adapters/samplecatalog"
	"github.com/recipeasy/recipeasy-api/internal/app/favorites"
	"github.com/recipeasy/recipeasy-api/internal/app/recipes"
	"github.com/recipeasy/recipeasy-api/internal/domain"
	"github.com/recipeasy/recipeasy-api/internal/ports/out/recipeapi"
)

// stubGateway fails every call with err.
type stubGateway struct{ err error }

func (g stubGateway) FindByIngredients(context.Context, string) ([]domain.RawMatch, error) {
	return nil, g.err
}

func (g stubGateway) InformationBulk(context.Context, []domain.RecipeID) ([]domain.DetailRecord, error) {
	return nil, g.err
}

func (g stubGateway) Information(context.Context, domain.RecipeID) (domain.DetailRecord, error) {
	return domain.DetailRecord{}, g.err
}

func sampleGateway(t *testing.T) recipeapi.Gateway {
	t.Helper()
	c, err := samplecatalog.New()
	if err != nil {
		t.Fatalf("samplecatalog.New: %v", err)
	}
	return c
}

func newTestServer(gw recipeapi.Gateway) *Server {
	clk := memclock.NewManualClock(time.Unix(100, 0).UTC())
	cache := memresponsecache.NewStore(clk, memresponsecache.Options{})
	return NewServer(
		recipes.NewService(gw, cache, recipes.Options{Logger: quietLogger()}),
		favorites.NewService(memfavoriterepo.NewRepo(), clk),
		memidempotency.NewStore(),
	)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(t *testing.T, gw recipeapi.Gateway) http.Handler {
	t.Helper()
	return NewRouterWithOptions(newTestServer(gw), RouterOptions{
		AuthMiddleware: NewDevAuthMiddleware(""),
		Logger:         quietLogger(),
	})
}

func doJSON(t *testing.T, h http.Handler, method, path, subject string, body any, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if subject != "" {
		req.Header.Set("X-Debug-Subject", subject)
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v body=%s", err, rec.Body.String())
	}
	return out
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) oas.ErrorResponse {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status=%d want=%d body=%s", rec.Code, status, rec.Body.String())
	}
	er := decode[oas.ErrorResponse](t, rec)
	if er.Error.Code != code {
		t.Fatalf("code=%q want=%q body=%s", er.Error.Code, code, rec.Body.String())
	}
	return er
}
