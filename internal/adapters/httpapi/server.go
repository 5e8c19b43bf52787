package httpapi

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/oapi-codegen/nullable"

	"github.com/recipeasy/recipeasy-api/internal/adapters/httpapi/oas"
	"github.com/recipeasy/recipeasy-api/internal/app/favorites"
	"github.com/recipeasy/recipeasy-api/internal/app/recipes"
	"github.com/recipeasy/recipeasy-api/internal/domain"
	"github.com/recipeasy/recipeasy-api/internal/ports/out/idempotency"
)

const addFavoriteRoute = "POST /favorites"

var _ oas.StrictServerInterface = (*Server)(nil)

// Server implements oas.StrictServerInterface on top of the application services.
type Server struct {
	Recipes   *recipes.Service
	Favorites *favorites.Service
	Idem      idempotency.Store

	// ExposeErrorCause adds details.cause to application error responses.
	// Development only.
	ExposeErrorCause bool
}

func NewServer(recipesSvc *recipes.Service, favoritesSvc *favorites.Service, idem idempotency.Store) *Server {
	return &Server{
		Recipes:   recipesSvc,
		Favorites: favoritesSvc,
		Idem:      idem,
	}
}

func (s *Server) SearchRecipes(ctx context.Context, req oas.SearchRecipesRequestObject) (oas.SearchRecipesResponseObject, error) {
	var in recipes.SearchInput
	if req.Body != nil {
		in.Ingredients = []string(req.Body.Ingredients)
		in.MinProtein = nullableFloat(req.Body.MinProtein)
		in.MaxTime = nullableFloat(req.Body.MaxTime)
	}

	res, err := s.Recipes.Search(ctx, in)
	if err != nil {
		if ae := (*recipes.Error)(nil); errors.As(err, &ae) {
			body := s.recipeError(ctx, ae)
			switch ae.Status {
			case http.StatusBadRequest:
				return oas.SearchRecipes400JSONResponse{BadRequestJSONResponse: oas.BadRequestJSONResponse(body)}, nil
			case http.StatusServiceUnavailable:
				return oas.SearchRecipes503JSONResponse{ServiceUnavailableJSONResponse: oas.ServiceUnavailableJSONResponse(body)}, nil
			default:
				return oas.SearchRecipes500JSONResponse{InternalErrorJSONResponse: oas.InternalErrorJSONResponse(body)}, nil
			}
		}
		return nil, err
	}
	return oas.SearchRecipes200JSONResponse(res), nil
}

func (s *Server) GetRecipe(ctx context.Context, req oas.GetRecipeRequestObject) (oas.GetRecipeResponseObject, error) {
	view, err := s.Recipes.GetRecipe(ctx, req.Id)
	if err != nil {
		if ae := (*recipes.Error)(nil); errors.As(err, &ae) {
			body := s.recipeError(ctx, ae)
			switch ae.Status {
			case http.StatusBadRequest:
				return oas.GetRecipe400JSONResponse{BadRequestJSONResponse: oas.BadRequestJSONResponse(body)}, nil
			case http.StatusNotFound:
				return oas.GetRecipe404JSONResponse{NotFoundJSONResponse: oas.NotFoundJSONResponse(body)}, nil
			default:
				return oas.GetRecipe500JSONResponse{InternalErrorJSONResponse: oas.InternalErrorJSONResponse(body)}, nil
			}
		}
		return nil, err
	}
	return oas.GetRecipe200JSONResponse(view), nil
}

func (s *Server) ListFavorites(ctx context.Context, _ oas.ListFavoritesRequestObject) (oas.ListFavoritesResponseObject, error) {
	sub, ok := SubjectFromContext(ctx)
	if !ok {
		return oas.ListFavorites401JSONResponse{UnauthorizedJSONResponse: oas.UnauthorizedJSONResponse(oasError(ctx, codeUnauthorized, "missing subject", nil))}, nil
	}
	fs, err := s.Favorites.ListFavorites(ctx, sub)
	if err != nil {
		return nil, err
	}
	out := make([]oas.Favorite, 0, len(fs))
	for _, f := range fs {
		out = append(out, favoriteFromDomain(f))
	}
	return oas.ListFavorites200JSONResponse{Favorites: out}, nil
}

func (s *Server) AddFavorite(ctx context.Context, req oas.AddFavoriteRequestObject) (oas.AddFavoriteResponseObject, error) {
	sub, ok := SubjectFromContext(ctx)
	if !ok {
		return oas.AddFavorite401JSONResponse{UnauthorizedJSONResponse: oas.UnauthorizedJSONResponse(oasError(ctx, codeUnauthorized, "missing subject", nil))}, nil
	}
	if req.Body == nil {
		return oas.AddFavorite400JSONResponse{BadRequestJSONResponse: oas.BadRequestJSONResponse(oasError(ctx, codeValidation, "missing request body", nil))}, nil
	}

	// Idempotency (when the caller sends a key):
	// - replay if same subject+key+route+bodyHash
	// - reject if same subject+key+route with a different bodyHash (409)
	var respFP *idempotency.Fingerprint
	if s.Idem != nil && req.Params.IdempotencyKey != nil && strings.TrimSpace(*req.Params.IdempotencyKey) != "" {
		bodyHash, err := hashAddFavoriteBody(*req.Body)
		if err != nil {
			return nil, err
		}
		metaFP := idempotency.Fingerprint{
			Key:      idempotency.Key(strings.TrimSpace(*req.Params.IdempotencyKey)),
			Subject:  sub,
			Route:    addFavoriteRoute,
			BodyHash: "",
		}
		if meta, ok, err := s.Idem.Get(ctx, metaFP); err != nil {
			return nil, err
		} else if ok {
			if string(meta.Body) != bodyHash {
				return oas.AddFavorite409JSONResponse{ConflictJSONResponse: oas.ConflictJSONResponse(oasError(ctx, codeIdempotencyKey, "idempotency key reuse with different payload", nil))}, nil
			}
		} else {
			_ = s.Idem.Put(ctx, metaFP, idempotency.Record{
				StatusCode:  0,
				ContentType: "text/plain",
				Body:        []byte(bodyHash),
				CreatedAt:   time.Now().UTC(),
			})
		}

		fp := metaFP
		fp.BodyHash = bodyHash
		if rec, ok, err := s.Idem.Get(ctx, fp); err != nil {
			return nil, err
		} else if ok && rec.StatusCode == http.StatusCreated && strings.HasPrefix(rec.ContentType, "application/json") {
			var payload oas.AddFavoriteResponse
			if err := json.Unmarshal(rec.Body, &payload); err == nil {
				return oas.AddFavorite201JSONResponse(payload), nil
			}
		}
		respFP = &fp
	}

	in := favorites.AddFavoriteInput{
		RecipeID: domain.RecipeID(req.Body.RecipeId),
		Title:    req.Body.Title,
		Image:    nullableString(req.Body.Image),
	}
	f, err := s.Favorites.AddFavorite(ctx, sub, in)
	if err != nil {
		if ae := (*favorites.Error)(nil); errors.As(err, &ae) {
			body := oasError(ctx, ae.Code, ae.Message, ae.Details)
			switch ae.Status {
			case http.StatusBadRequest:
				return oas.AddFavorite400JSONResponse{BadRequestJSONResponse: oas.BadRequestJSONResponse(body)}, nil
			case http.StatusConflict:
				return oas.AddFavorite409JSONResponse{ConflictJSONResponse: oas.ConflictJSONResponse(body)}, nil
			default:
				return nil, err
			}
		}
		return nil, err
	}

	resp := oas.AddFavoriteResponse{Favorite: favoriteFromDomain(f)}

	// Store successful response for replay.
	if respFP != nil {
		if b, err := json.Marshal(resp); err == nil {
			_ = s.Idem.Put(ctx, *respFP, idempotency.Record{
				StatusCode:  http.StatusCreated,
				ContentType: "application/json",
				Body:        b,
				CreatedAt:   time.Now().UTC(),
			})
		}
	}

	return oas.AddFavorite201JSONResponse(resp), nil
}

func (s *Server) RemoveFavorite(ctx context.Context, req oas.RemoveFavoriteRequestObject) (oas.RemoveFavoriteResponseObject, error) {
	sub, ok := SubjectFromContext(ctx)
	if !ok {
		return oas.RemoveFavorite401JSONResponse{UnauthorizedJSONResponse: oas.UnauthorizedJSONResponse(oasError(ctx, codeUnauthorized, "missing subject", nil))}, nil
	}
	if req.RecipeId <= 0 {
		return oas.RemoveFavorite400JSONResponse{BadRequestJSONResponse: oas.BadRequestJSONResponse(oasError(ctx, codeValidation, "Invalid recipe ID", map[string]any{"recipeId": "must be a positive integer"}))}, nil
	}

	if err := s.Favorites.RemoveFavorite(ctx, sub, domain.RecipeID(req.RecipeId)); err != nil {
		if ae := (*favorites.Error)(nil); errors.As(err, &ae) {
			switch ae.Status {
			case http.StatusNotFound:
				return oas.RemoveFavorite404JSONResponse{NotFoundJSONResponse: oas.NotFoundJSONResponse(oasError(ctx, ae.Code, ae.Message, ae.Details))}, nil
			default:
				return nil, err
			}
		}
		return nil, err
	}
	return oas.RemoveFavorite204Response{}, nil
}

func (s *Server) recipeError(ctx context.Context, ae *recipes.Error) oas.ErrorResponse {
	return oasError(ctx, ae.Code, ae.Message, withCause(ae.Details, ae.Cause, s.ExposeErrorCause))
}

func favoriteFromDomain(f domain.Favorite) oas.Favorite {
	return oas.Favorite{
		Id:        string(f.ID),
		RecipeId:  int64(f.RecipeID),
		Title:     f.Title,
		Image:     f.Image,
		CreatedAt: f.CreatedAt,
	}
}

func nullableFloat(n nullable.Nullable[float64]) *float64 {
	if !n.IsSpecified() || n.IsNull() {
		return nil
	}
	v, err := n.Get()
	if err != nil {
		return nil
	}
	return &v
}

func nullableString(n nullable.Nullable[string]) *string {
	if !n.IsSpecified() || n.IsNull() {
		return nil
	}
	v, err := n.Get()
	if err != nil {
		return nil
	}
	return &v
}

func hashAddFavoriteBody(b oas.AddFavoriteRequest) (string, error) {
	// Canonicalize fields the service normalizes before hashing.
	canon := b
	canon.Title = strings.TrimSpace(canon.Title)
	if v := nullableString(canon.Image); v != nil {
		if t := strings.TrimSpace(*v); t != "" {
			canon.Image = nullable.NewNullableWithValue(t)
		} else {
			canon.Image = nullable.Nullable[string]{}
		}
	} else {
		canon.Image = nullable.Nullable[string]{}
	}

	raw, err := json.Marshal(canon)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
