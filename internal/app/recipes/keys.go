package recipes

import (
	"strconv"
	"strings"

	"github.com/recipeasy/recipeasy-api/internal/domain"
)

const (
	searchKeyPrefix = "search:"
	recipeKeyPrefix = "recipe:"
)

// SearchCacheKey derives the cache key for a normalized query:
// "search:<ingredients>:<minProtein>:<maxTime>". The two numeric fields never
// contain ':' so the key stays unambiguous whatever the ingredient text holds.
func SearchCacheKey(q domain.SearchQuery) string {
	var b strings.Builder
	b.WriteString(searchKeyPrefix)
	b.WriteString(q.Ingredients)
	b.WriteByte(':')
	b.WriteString(formatNumber(q.MinProtein))
	b.WriteByte(':')
	b.WriteString(formatNumber(q.MaxTime))
	return b.String()
}

// RecipeCacheKey is "recipe:<id>".
func RecipeCacheKey(id domain.RecipeID) string {
	return recipeKeyPrefix + strconv.FormatInt(int64(id), 10)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
