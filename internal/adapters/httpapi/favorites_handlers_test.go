package httpapi

import (
	"net/http"
	"testing"

	"github.com/recipeasy/recipeasy-api/internal/adapters/httpapi/oas"
)

func TestFavorites_AddListRemove(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, sampleGateway(t))

	rec := doJSON(t, h, http.MethodPost, "/favorites", "sub-1", map[string]any{
		"recipeId": 900003,
		"title":    "  Teriyaki Salmon Rice Bowls ",
		"image":    "https://img.example/900003.jpg",
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	created := decode[oas.AddFavoriteResponse](t, rec)
	if created.Favorite.Id == "" || created.Favorite.RecipeId != 900003 || created.Favorite.Title != "Teriyaki Salmon Rice Bowls" {
		t.Fatalf("favorite=%+v", created.Favorite)
	}

	requireError(t, doJSON(t, h, http.MethodPost, "/favorites", "sub-1", map[string]any{"recipeId": 900003, "title": "again"}, nil),
		http.StatusConflict, "FAVORITE_ALREADY_EXISTS")

	rec = doJSON(t, h, http.MethodGet, "/api/favorites", "sub-1", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status=%d body=%s", rec.Code, rec.Body.String())
	}
	list := decode[oas.ListFavoritesResponse](t, rec)
	if len(list.Favorites) != 1 || list.Favorites[0].Id != created.Favorite.Id {
		t.Fatalf("list=%+v", list)
	}

	// Other subjects see their own (empty) list.
	rec = doJSON(t, h, http.MethodGet, "/favorites", "sub-2", nil, nil)
	if list := decode[oas.ListFavoritesResponse](t, rec); list.Favorites == nil || len(list.Favorites) != 0 {
		t.Fatalf("sub-2 list=%s", rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodDelete, "/favorites/900003", "sub-1", nil, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status=%d body=%s", rec.Code, rec.Body.String())
	}
	requireError(t, doJSON(t, h, http.MethodDelete, "/favorites/900003", "sub-1", nil, nil), http.StatusNotFound, "FAVORITE_NOT_FOUND")
}

func TestFavorites_Validation(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, sampleGateway(t))

	requireError(t, doJSON(t, h, http.MethodPost, "/favorites", "sub-1", map[string]any{"recipeId": 0, "title": "x"}, nil), http.StatusBadRequest, "VALIDATION_ERROR")
	requireError(t, doJSON(t, h, http.MethodPost, "/favorites", "sub-1", map[string]any{"recipeId": 1, "title": " "}, nil), http.StatusBadRequest, "VALIDATION_ERROR")
	requireError(t, doJSON(t, h, http.MethodPost, "/favorites", "sub-1", "", nil), http.StatusBadRequest, "VALIDATION_ERROR")
	requireError(t, doJSON(t, h, http.MethodDelete, "/favorites/abc", "sub-1", nil, nil), http.StatusBadRequest, "VALIDATION_ERROR")
	requireError(t, doJSON(t, h, http.MethodDelete, "/favorites/-1", "sub-1", nil, nil), http.StatusBadRequest, "VALIDATION_ERROR")
}

func TestFavorites_RequireSubject_401(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, sampleGateway(t))
	requireError(t, doJSON(t, h, http.MethodGet, "/favorites", "", nil, nil), http.StatusUnauthorized, "UNAUTHORIZED")
	requireError(t, doJSON(t, h, http.MethodPost, "/favorites", "", map[string]any{"recipeId": 1, "title": "x"}, nil), http.StatusUnauthorized, "UNAUTHORIZED")

	// Without any auth middleware the handlers still refuse anonymous callers.
	bare := NewRouterWithOptions(newTestServer(sampleGateway(t)), RouterOptions{Logger: quietLogger()})
	requireError(t, doJSON(t, bare, http.MethodGet, "/favorites", "", nil, nil), http.StatusUnauthorized, "UNAUTHORIZED")
}

func TestFavorites_IdempotentReplay(t *testing.T) {
	t.Parallel()

	h := newTestRouter(t, sampleGateway(t))
	key := map[string]string{"Idempotency-Key": "idem-1"}
	body := map[string]any{"recipeId": 900001, "title": "Lemon Chicken"}

	first := doJSON(t, h, http.MethodPost, "/favorites", "sub-1", body, key)
	if first.Code != http.StatusCreated {
		t.Fatalf("first status=%d body=%s", first.Code, first.Body.String())
	}
	// Equivalent after normalization, so it replays rather than conflicting.
	second := doJSON(t, h, http.MethodPost, "/favorites", "sub-1", map[string]any{"recipeId": 900001, "title": " Lemon Chicken "}, key)
	if second.Code != http.StatusCreated {
		t.Fatalf("replay status=%d body=%s", second.Code, second.Body.String())
	}
	a := decode[oas.AddFavoriteResponse](t, first)
	b := decode[oas.AddFavoriteResponse](t, second)
	if a.Favorite.Id != b.Favorite.Id {
		t.Fatalf("replay returned a different favorite: %s vs %s", a.Favorite.Id, b.Favorite.Id)
	}

	requireError(t, doJSON(t, h, http.MethodPost, "/favorites", "sub-1", map[string]any{"recipeId": 900002, "title": "Curry"}, key),
		http.StatusConflict, "IDEMPOTENCY_KEY_REUSE")

	// Keys are scoped per subject.
	rec := doJSON(t, h, http.MethodPost, "/favorites", "sub-2", map[string]any{"recipeId": 900002, "title": "Curry"}, key)
	if rec.Code != http.StatusCreated {
		t.Fatalf("sub-2 status=%d body=%s", rec.Code, rec.Body.String())
	}
}
