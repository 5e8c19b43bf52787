// Package oas holds the HTTP wire contract: request/response models, the
// chi-bound ServerInterface with its parameter-binding wrapper, and the strict
// (typed request/response) adapter on top of it.
package oas

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/oapi-codegen/nullable"

	"github.com/recipeasy/recipeasy-api/internal/domain"
)

const (
	BearerAuthScopes = "bearerAuth.Scopes"
)

// Error defines model for Error.
type Error struct {
	Code      string                            `json:"code"`
	Message   string                            `json:"message"`
	Details   nullable.Nullable[map[string]any] `json:"details,omitempty"`
	RequestId nullable.Nullable[string]         `json:"requestId,omitempty"`
}

// ErrorResponse defines model for ErrorResponse.
type ErrorResponse struct {
	Error Error `json:"error"`
}

// IngredientList is the search "ingredients" field. It accepts a single
// comma-separated string or an array of strings. It stays nil when the field
// is absent or null.
type IngredientList []string

var errIngredientsType = errors.New("ingredients must be a string or an array of strings")

func (l *IngredientList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*l = nil
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return errIngredientsType
		}
		*l = IngredientList{s}
		return nil
	default:
		var items []string
		if err := json.Unmarshal(b, &items); err != nil {
			return errIngredientsType
		}
		if items == nil {
			items = []string{}
		}
		*l = items
		return nil
	}
}

// SearchRecipesRequest defines model for SearchRecipesRequest.
// An explicit null for minProtein or maxTime is treated the same as absent.
type SearchRecipesRequest struct {
	Ingredients IngredientList             `json:"ingredients,omitempty"`
	MinProtein  nullable.Nullable[float64] `json:"minProtein,omitempty"`
	MaxTime     nullable.Nullable[float64] `json:"maxTime,omitempty"`
}

// RecipeSearchResult and RecipeDetail share their shape with the cached payloads.
type RecipeSearchResult = domain.SearchResult
type RecipeDetail = domain.RecipeDetail

// Favorite defines model for Favorite.
type Favorite struct {
	Id        string    `json:"id"`
	RecipeId  int64     `json:"recipeId"`
	Title     string    `json:"title"`
	Image     *string   `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
}

// AddFavoriteRequest defines model for AddFavoriteRequest.
type AddFavoriteRequest struct {
	RecipeId int64                     `json:"recipeId"`
	Title    string                    `json:"title"`
	Image    nullable.Nullable[string] `json:"image,omitempty"`
}

type AddFavoriteResponse struct {
	Favorite Favorite `json:"favorite"`
}

type ListFavoritesResponse struct {
	Favorites []Favorite `json:"favorites"`
}

// AddFavoriteParams defines parameters for AddFavorite.
type AddFavoriteParams struct {
	IdempotencyKey *string `json:"Idempotency-Key,omitempty"`
}

type SearchRecipesJSONRequestBody = SearchRecipesRequest
type AddFavoriteJSONRequestBody = AddFavoriteRequest
