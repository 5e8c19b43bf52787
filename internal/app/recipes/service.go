package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/sync/singleflight"

	"github.com/recipeasy/recipeasy-api/internal/domain"
	"github.com/recipeasy/recipeasy-api/internal/platform/metrics"
	"github.com/recipeasy/recipeasy-api/internal/ports/out/recipeapi"
	"github.com/recipeasy/recipeasy-api/internal/ports/out/responsecache"
)

const (
	cacheKindSearch = "search"
	cacheKindRecipe = "recipe"
)

// Options tunes a Service.
type Options struct {
	// Dedupe collapses concurrent cache misses for the same key into one
	// upstream resolution. Off by default.
	Dedupe bool
	Logger *slog.Logger
}

// Service orchestrates recipe search and recipe detail lookups on top of the
// provider gateway and the response cache.
type Service struct {
	gateway recipeapi.Gateway
	cache   responsecache.Store
	log     *slog.Logger

	// flight is nil unless Options.Dedupe is set.
	flight *singleflight.Group
}

func NewService(gateway recipeapi.Gateway, cache responsecache.Store, opts Options) *Service {
	s := &Service{
		gateway: gateway,
		cache:   cache,
		log:     opts.Logger,
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	if opts.Dedupe {
		s.flight = &singleflight.Group{}
	}
	return s
}

// Search validates the input, serves from cache when possible, and otherwise
// runs find -> bulk detail -> merge -> filter -> rank and caches the result.
// Failures are never cached.
func (s *Service) Search(ctx context.Context, in SearchInput) (domain.SearchResult, error) {
	q, err := normalizeSearch(in)
	if err != nil {
		return domain.SearchResult{}, err
	}

	key := SearchCacheKey(q)
	var res domain.SearchResult
	if s.fromCache(ctx, cacheKindSearch, key, &res) {
		return res, nil
	}

	b, err := s.load(key, func() ([]byte, error) {
		return s.searchUpstream(ctx, q, key)
	})
	if err != nil {
		return domain.SearchResult{}, s.searchError(ctx, q, err)
	}
	if err := json.Unmarshal(b, &res); err != nil {
		return domain.SearchResult{}, s.searchError(ctx, q, err)
	}
	return res, nil
}

// GetRecipe returns the detail view for a recipe id given as text.
func (s *Service) GetRecipe(ctx context.Context, rawID string) (domain.RecipeDetail, error) {
	id, err := ParseRecipeID(rawID)
	if err != nil {
		return domain.RecipeDetail{}, err
	}

	key := RecipeCacheKey(id)
	var view domain.RecipeDetail
	if s.fromCache(ctx, cacheKindRecipe, key, &view) {
		return view, nil
	}

	b, err := s.load(key, func() ([]byte, error) {
		d, err := s.gateway.Information(ctx, id)
		if err != nil {
			return nil, err
		}
		b, err := json.Marshal(DetailView(d))
		if err != nil {
			return nil, err
		}
		s.cache.Set(ctx, key, b)
		return b, nil
	})
	if err != nil {
		return domain.RecipeDetail{}, s.detailError(ctx, id, err)
	}
	if err := json.Unmarshal(b, &view); err != nil {
		return domain.RecipeDetail{}, s.detailError(ctx, id, err)
	}
	return view, nil
}

// ParseRecipeID accepts only a base-10 positive integer.
func ParseRecipeID(raw string) (domain.RecipeID, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, validationError("Invalid recipe ID", map[string]any{"id": "must be a positive integer"})
	}
	return domain.RecipeID(id), nil
}

func normalizeSearch(in SearchInput) (domain.SearchQuery, error) {
	if in.Ingredients == nil {
		return domain.SearchQuery{}, validationError("Please provide at least one ingredient", map[string]any{"ingredients": "is required"})
	}
	joined := strings.Join(in.Ingredients, ",")
	if strings.TrimSpace(joined) == "" {
		return domain.SearchQuery{}, validationError("Please provide at least one ingredient", map[string]any{"ingredients": "must not be blank"})
	}

	q := domain.SearchQuery{
		Ingredients: joined,
		MinProtein:  domain.NoMinProtein,
		MaxTime:     domain.NoMaxTime,
	}
	if in.MinProtein != nil {
		if *in.MinProtein < 0 {
			return domain.SearchQuery{}, validationError("invalid minProtein", map[string]any{"minProtein": "must be >= 0"})
		}
		q.MinProtein = *in.MinProtein
	}
	if in.MaxTime != nil {
		if *in.MaxTime <= 0 {
			return domain.SearchQuery{}, validationError("invalid maxTime", map[string]any{"maxTime": "must be > 0"})
		}
		q.MaxTime = *in.MaxTime
	}
	return q, nil
}

func (s *Service) searchUpstream(ctx context.Context, q domain.SearchQuery, key string) ([]byte, error) {
	matches, err := s.gateway.FindByIngredients(ctx, q.Ingredients)
	if err != nil {
		return nil, err
	}

	res := domain.SearchResult{Recipes: []domain.RankedRecipe{}}
	if len(matches) > 0 {
		ids := make([]domain.RecipeID, 0, len(matches))
		for _, m := range matches {
			ids = append(ids, m.ID)
		}
		details, err := s.gateway.InformationBulk(ctx, ids)
		if err != nil {
			return nil, err
		}
		byID := make(map[domain.RecipeID]*domain.DetailRecord, len(details))
		for i := range details {
			if _, seen := byID[details[i].ID]; !seen {
				byID[details[i].ID] = &details[i]
			}
		}

		merged := make([]domain.RankedRecipe, 0, len(matches))
		for _, m := range matches {
			merged = append(merged, Merge(m, byID[m.ID]))
		}
		ranked := Rank(Filter(merged, q.MinProtein, q.MaxTime))
		res = domain.SearchResult{
			Recipes: ranked,
			Total:   len(ranked),
			Filters: &domain.SearchFilters{
				Ingredients: q.Ingredients,
				MinProtein:  q.MinProtein,
				MaxTime:     q.MaxTime,
			},
		}
	}

	b, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, b)
	return b, nil
}

func (s *Service) fromCache(ctx context.Context, kind, key string, dst any) bool {
	b, ok := s.cache.Get(ctx, key)
	if !ok {
		metrics.IncCacheMiss(kind)
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		s.log.WarnContext(ctx, "discarding undecodable cache entry", "key", key, "error", err)
		metrics.IncCacheMiss(kind)
		return false
	}
	metrics.IncCacheHit(kind)
	s.log.DebugContext(ctx, "cache hit", "key", key)
	return true
}

func (s *Service) load(key string, fn func() ([]byte, error)) ([]byte, error) {
	if s.flight == nil {
		return fn()
	}
	v, err, _ := s.flight.Do(key, func() (any, error) {
		return fn()
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (s *Service) searchError(ctx context.Context, q domain.SearchQuery, err error) error {
	switch {
	case errors.Is(err, recipeapi.ErrNotConfigured):
		s.log.ErrorContext(ctx, "recipe search unavailable: provider not configured")
		return &Error{
			Status:  http.StatusInternalServerError,
			Code:    CodeNotConfigured,
			Message: "Recipe API is not configured. Please set RECIPE_API_KEY.",
			Cause:   err,
		}
	case recipeapi.IsQuotaExceeded(err):
		s.log.WarnContext(ctx, "recipe search rejected by provider quota", "ingredients", q.Ingredients, "error", err)
		return &Error{
			Status:  http.StatusServiceUnavailable,
			Code:    CodeQuotaExceeded,
			Message: "Recipe search is temporarily unavailable. Please try again later.",
			Cause:   err,
		}
	default:
		s.log.ErrorContext(ctx, "recipe search failed", "ingredients", q.Ingredients, "upstreamStatus", recipeapi.StatusCode(err), "error", err)
		return &Error{
			Status:  http.StatusInternalServerError,
			Code:    CodeSearchFailed,
			Message: "An error occurred while searching for recipes",
			Cause:   err,
		}
	}
}

func (s *Service) detailError(ctx context.Context, id domain.RecipeID, err error) error {
	switch {
	case recipeapi.IsNotFound(err):
		return &Error{
			Status:  http.StatusNotFound,
			Code:    CodeRecipeNotFound,
			Message: "Recipe not found",
			Cause:   err,
		}
	case errors.Is(err, recipeapi.ErrNotConfigured):
		s.log.ErrorContext(ctx, "recipe detail unavailable: provider not configured", "id", id)
		return &Error{
			Status:  http.StatusInternalServerError,
			Code:    CodeNotConfigured,
			Message: "Recipe API is not configured. Please set RECIPE_API_KEY.",
			Cause:   err,
		}
	default:
		s.log.ErrorContext(ctx, "recipe detail failed", "id", id, "upstreamStatus", recipeapi.StatusCode(err), "error", err)
		return &Error{
			Status:  http.StatusInternalServerError,
			Code:    CodeFetchFailed,
			Message: "An error occurred while fetching recipe details",
			Cause:   err,
		}
	}
}
