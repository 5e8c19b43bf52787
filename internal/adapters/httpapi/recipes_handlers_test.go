package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/recipeasy/recipeasy-api/internal/adapters/httpapi/oas"
	"github.com/recipeasy/recipeasy-api/internal/ports/out/recipeapi"
)

func TestSearchRecipes_RanksSampleCatalog(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, sampleGateway(t))
	rec := doJSON(t, h, http.MethodPost, "/recipes/search", "", map[string]any{"ingredients": "chicken, broccoli"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	res := decode[oas.RecipeSearchResult](t, rec)
	if res.Total != 2 || len(res.Recipes) != 2 {
		t.Fatalf("result=%+v", res)
	}
	if res.Recipes[0].ID != 900001 || res.Recipes[1].ID != 900003 {
		t.Fatalf("order=%d,%d", res.Recipes[0].ID, res.Recipes[1].ID)
	}
	if res.Recipes[0].MatchPercentage != 29 || res.Recipes[0].ProteinGrams != 42 {
		t.Fatalf("first=%+v", res.Recipes[0])
	}
	if res.Filters == nil || res.Filters.Ingredients != "chicken, broccoli" || res.Filters.MinProtein != 0 || res.Filters.MaxTime != 999 {
		t.Fatalf("filters=%+v", res.Filters)
	}
}

func TestSearchRecipes_ArrayFormAndFilters(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, sampleGateway(t))
	rec := doJSON(t, h, http.MethodPost, "/api/recipes/search", "", `{"ingredients":["chicken","broccoli"],"minProtein":40,"maxTime":null}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	res := decode[oas.RecipeSearchResult](t, rec)
	if res.Total != 1 || res.Recipes[0].ID != 900001 {
		t.Fatalf("result=%+v", res)
	}
	if res.Filters.Ingredients != "chicken,broccoli" || res.Filters.MinProtein != 40 || res.Filters.MaxTime != 999 {
		t.Fatalf("filters=%+v", res.Filters)
	}
}

func TestSearchRecipes_NoCandidates_EmptyResult(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, sampleGateway(t))
	rec := doJSON(t, h, http.MethodPost, "/recipes/search", "", map[string]any{"ingredients": "unobtainium"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"recipes":[],"total":0}` {
		t.Fatalf("body=%s", got)
	}
}

func TestSearchRecipes_Validation_400(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, sampleGateway(t))
	for _, body := range []string{
		``,
		`{}`,
		`{"ingredients":null}`,
		`{"ingredients":"  "}`,
		`{"ingredients":[]}`,
		`{"ingredients":42}`,
		`{"ingredients":"x","minProtein":-1}`,
		`{"ingredients":"x","maxTime":0}`,
		`{`,
	} {
		rec := doJSON(t, h, http.MethodPost, "/recipes/search", "", body, nil)
		requireError(t, rec, http.StatusBadRequest, "VALIDATION_ERROR")
	}
}

func TestSearchRecipes_UpstreamFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not configured", recipeapi.ErrNotConfigured, http.StatusInternalServerError, "SERVICE_NOT_CONFIGURED"},
		{"quota", &recipeapi.Error{Op: "findByIngredients", StatusCode: http.StatusPaymentRequired}, http.StatusServiceUnavailable, "UPSTREAM_QUOTA_EXCEEDED"},
		{"server error", &recipeapi.Error{Op: "findByIngredients", StatusCode: http.StatusBadGateway}, http.StatusInternalServerError, "SEARCH_FAILED"},
		{"network", &recipeapi.Error{Op: "findByIngredients", Err: errors.New("connection refused")}, http.StatusInternalServerError, "SEARCH_FAILED"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := newTestRouter(t, stubGateway{err: tc.err})
			rec := doJSON(t, h, http.MethodPost, "/recipes/search", "", map[string]any{"ingredients": "x"}, nil)
			er := requireError(t, rec, tc.status, tc.code)
			if er.Error.Details.IsSpecified() {
				t.Fatalf("details should be hidden outside development: %s", rec.Body.String())
			}
		})
	}
}

func TestSearchRecipes_ExposeErrorCause(t *testing.T) {
	t.Parallel()

	api := newTestServer(stubGateway{err: &recipeapi.Error{Op: "findByIngredients", StatusCode: http.StatusBadGateway}})
	api.ExposeErrorCause = true
	h := NewRouterWithOptions(api, RouterOptions{Logger: quietLogger()})

	rec := doJSON(t, h, http.MethodPost, "/recipes/search", "", map[string]any{"ingredients": "x"}, nil)
	er := requireError(t, rec, http.StatusInternalServerError, "SEARCH_FAILED")
	details, err := er.Error.Details.Get()
	if err != nil || !strings.Contains(details["cause"].(string), "502") {
		t.Fatalf("details=%v err=%v", details, err)
	}
}

func TestGetRecipe(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, sampleGateway(t))

	rec := doJSON(t, h, http.MethodGet, "/recipes/900003", "", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	view := decode[oas.RecipeDetail](t, rec)
	if view.ID != 900003 || view.Title != "Teriyaki Salmon Rice Bowls" || view.Nutrition.Protein != 34 {
		t.Fatalf("view=%+v", view)
	}

	requireError(t, doJSON(t, h, http.MethodGet, "/api/recipes/42", "", nil, nil), http.StatusNotFound, "RECIPE_NOT_FOUND")
	requireError(t, doJSON(t, h, http.MethodGet, "/recipes/abc", "", nil, nil), http.StatusBadRequest, "VALIDATION_ERROR")
	requireError(t, doJSON(t, h, http.MethodGet, "/recipes/0", "", nil, nil), http.StatusBadRequest, "VALIDATION_ERROR")
}

func TestGetRecipe_UpstreamFailure_500(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, stubGateway{err: &recipeapi.Error{Op: "information", StatusCode: http.StatusInternalServerError}})
	requireError(t, doJSON(t, h, http.MethodGet, "/recipes/7", "", nil, nil), http.StatusInternalServerError, "RECIPE_FETCH_FAILED")
}
