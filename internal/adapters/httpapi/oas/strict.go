package oas

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	strictnethttp "github.com/oapi-codegen/runtime/strictmiddleware/nethttp"
)

type BadRequestJSONResponse ErrorResponse
type UnauthorizedJSONResponse ErrorResponse
type NotFoundJSONResponse ErrorResponse
type ConflictJSONResponse ErrorResponse
type InternalErrorJSONResponse ErrorResponse
type ServiceUnavailableJSONResponse ErrorResponse

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

type SearchRecipesRequestObject struct {
	Body *SearchRecipesJSONRequestBody
}

type SearchRecipesResponseObject interface {
	VisitSearchRecipesResponse(w http.ResponseWriter) error
}

type SearchRecipes200JSONResponse RecipeSearchResult

func (response SearchRecipes200JSONResponse) VisitSearchRecipesResponse(w http.ResponseWriter) error {
	return writeJSON(w, 200, response)
}

type SearchRecipes400JSONResponse struct{ BadRequestJSONResponse }

func (response SearchRecipes400JSONResponse) VisitSearchRecipesResponse(w http.ResponseWriter) error {
	return writeJSON(w, 400, response)
}

type SearchRecipes500JSONResponse struct{ InternalErrorJSONResponse }

func (response SearchRecipes500JSONResponse) VisitSearchRecipesResponse(w http.ResponseWriter) error {
	return writeJSON(w, 500, response)
}

type SearchRecipes503JSONResponse struct{ ServiceUnavailableJSONResponse }

func (response SearchRecipes503JSONResponse) VisitSearchRecipesResponse(w http.ResponseWriter) error {
	return writeJSON(w, 503, response)
}

type GetRecipeRequestObject struct {
	Id string `json:"id"`
}

type GetRecipeResponseObject interface {
	VisitGetRecipeResponse(w http.ResponseWriter) error
}

type GetRecipe200JSONResponse RecipeDetail

func (response GetRecipe200JSONResponse) VisitGetRecipeResponse(w http.ResponseWriter) error {
	return writeJSON(w, 200, response)
}

type GetRecipe400JSONResponse struct{ BadRequestJSONResponse }

func (response GetRecipe400JSONResponse) VisitGetRecipeResponse(w http.ResponseWriter) error {
	return writeJSON(w, 400, response)
}

type GetRecipe404JSONResponse struct{ NotFoundJSONResponse }

func (response GetRecipe404JSONResponse) VisitGetRecipeResponse(w http.ResponseWriter) error {
	return writeJSON(w, 404, response)
}

type GetRecipe500JSONResponse struct{ InternalErrorJSONResponse }

func (response GetRecipe500JSONResponse) VisitGetRecipeResponse(w http.ResponseWriter) error {
	return writeJSON(w, 500, response)
}

type ListFavoritesRequestObject struct{}

type ListFavoritesResponseObject interface {
	VisitListFavoritesResponse(w http.ResponseWriter) error
}

type ListFavorites200JSONResponse ListFavoritesResponse

func (response ListFavorites200JSONResponse) VisitListFavoritesResponse(w http.ResponseWriter) error {
	return writeJSON(w, 200, response)
}

type ListFavorites401JSONResponse struct{ UnauthorizedJSONResponse }

func (response ListFavorites401JSONResponse) VisitListFavoritesResponse(w http.ResponseWriter) error {
	return writeJSON(w, 401, response)
}

type AddFavoriteRequestObject struct {
	Params AddFavoriteParams
	Body   *AddFavoriteJSONRequestBody
}

type AddFavoriteResponseObject interface {
	VisitAddFavoriteResponse(w http.ResponseWriter) error
}

type AddFavorite201JSONResponse AddFavoriteResponse

func (response AddFavorite201JSONResponse) VisitAddFavoriteResponse(w http.ResponseWriter) error {
	return writeJSON(w, 201, response)
}

type AddFavorite400JSONResponse struct{ BadRequestJSONResponse }

func (response AddFavorite400JSONResponse) VisitAddFavoriteResponse(w http.ResponseWriter) error {
	return writeJSON(w, 400, response)
}

type AddFavorite401JSONResponse struct{ UnauthorizedJSONResponse }

func (response AddFavorite401JSONResponse) VisitAddFavoriteResponse(w http.ResponseWriter) error {
	return writeJSON(w, 401, response)
}

type AddFavorite409JSONResponse struct{ ConflictJSONResponse }

func (response AddFavorite409JSONResponse) VisitAddFavoriteResponse(w http.ResponseWriter) error {
	return writeJSON(w, 409, response)
}

type RemoveFavoriteRequestObject struct {
	RecipeId int64 `json:"recipeId"`
}

type RemoveFavoriteResponseObject interface {
	VisitRemoveFavoriteResponse(w http.ResponseWriter) error
}

type RemoveFavorite204Response struct{}

func (response RemoveFavorite204Response) VisitRemoveFavoriteResponse(w http.ResponseWriter) error {
	w.WriteHeader(204)
	return nil
}

type RemoveFavorite400JSONResponse struct{ BadRequestJSONResponse }

func (response RemoveFavorite400JSONResponse) VisitRemoveFavoriteResponse(w http.ResponseWriter) error {
	return writeJSON(w, 400, response)
}

type RemoveFavorite401JSONResponse struct{ UnauthorizedJSONResponse }

func (response RemoveFavorite401JSONResponse) VisitRemoveFavoriteResponse(w http.ResponseWriter) error {
	return writeJSON(w, 401, response)
}

type RemoveFavorite404JSONResponse struct{ NotFoundJSONResponse }

func (response RemoveFavorite404JSONResponse) VisitRemoveFavoriteResponse(w http.ResponseWriter) error {
	return writeJSON(w, 404, response)
}

// StrictServerInterface represents all server handlers.
type StrictServerInterface interface {
	// (POST /recipes/search)
	SearchRecipes(ctx context.Context, request SearchRecipesRequestObject) (SearchRecipesResponseObject, error)
	// (GET /recipes/{id})
	GetRecipe(ctx context.Context, request GetRecipeRequestObject) (GetRecipeResponseObject, error)
	// (GET /favorites)
	ListFavorites(ctx context.Context, request ListFavoritesRequestObject) (ListFavoritesResponseObject, error)
	// (POST /favorites)
	AddFavorite(ctx context.Context, request AddFavoriteRequestObject) (AddFavoriteResponseObject, error)
	// (DELETE /favorites/{recipeId})
	RemoveFavorite(ctx context.Context, request RemoveFavoriteRequestObject) (RemoveFavoriteResponseObject, error)
}

type StrictHandlerFunc = strictnethttp.StrictHTTPHandlerFunc
type StrictMiddlewareFunc = strictnethttp.StrictHTTPMiddlewareFunc

type StrictHTTPServerOptions struct {
	RequestErrorHandlerFunc  func(w http.ResponseWriter, r *http.Request, err error)
	ResponseErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

func NewStrictHandler(ssi StrictServerInterface, middlewares []StrictMiddlewareFunc) ServerInterface {
	return &strictHandler{ssi: ssi, middlewares: middlewares, options: StrictHTTPServerOptions{
		RequestErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		},
		ResponseErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		},
	}}
}

func NewStrictHandlerWithOptions(ssi StrictServerInterface, middlewares []StrictMiddlewareFunc, options StrictHTTPServerOptions) ServerInterface {
	return &strictHandler{ssi: ssi, middlewares: middlewares, options: options}
}

type strictHandler struct {
	ssi         StrictServerInterface
	middlewares []StrictMiddlewareFunc
	options     StrictHTTPServerOptions
}

func (sh *strictHandler) run(w http.ResponseWriter, r *http.Request, operationID string, request any, call StrictHandlerFunc) {
	handler := call
	for _, middleware := range sh.middlewares {
		handler = middleware(handler, operationID)
	}

	response, err := handler(r.Context(), w, r, request)
	if err != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, err)
		return
	}
	if response == nil {
		return
	}

	visit := func(w http.ResponseWriter) error {
		return fmt.Errorf("unexpected response type: %T", response)
	}
	switch v := response.(type) {
	case SearchRecipesResponseObject:
		visit = v.VisitSearchRecipesResponse
	case GetRecipeResponseObject:
		visit = v.VisitGetRecipeResponse
	case ListFavoritesResponseObject:
		visit = v.VisitListFavoritesResponse
	case AddFavoriteResponseObject:
		visit = v.VisitAddFavoriteResponse
	case RemoveFavoriteResponseObject:
		visit = v.VisitRemoveFavoriteResponse
	}
	if err := visit(w); err != nil {
		sh.options.ResponseErrorHandlerFunc(w, r, err)
	}
}

// SearchRecipes operation middleware
func (sh *strictHandler) SearchRecipes(w http.ResponseWriter, r *http.Request) {
	var request SearchRecipesRequestObject

	var body SearchRecipesJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if !errors.Is(err, io.EOF) {
			sh.options.RequestErrorHandlerFunc(w, r, fmt.Errorf("can't decode JSON body: %w", err))
			return
		}
	} else {
		request.Body = &body
	}

	sh.run(w, r, "SearchRecipes", request, func(ctx context.Context, w http.ResponseWriter, r *http.Request, request any) (any, error) {
		return sh.ssi.SearchRecipes(ctx, request.(SearchRecipesRequestObject))
	})
}

// GetRecipe operation middleware
func (sh *strictHandler) GetRecipe(w http.ResponseWriter, r *http.Request, id string) {
	request := GetRecipeRequestObject{Id: id}

	sh.run(w, r, "GetRecipe", request, func(ctx context.Context, w http.ResponseWriter, r *http.Request, request any) (any, error) {
		return sh.ssi.GetRecipe(ctx, request.(GetRecipeRequestObject))
	})
}

// ListFavorites operation middleware
func (sh *strictHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	var request ListFavoritesRequestObject

	sh.run(w, r, "ListFavorites", request, func(ctx context.Context, w http.ResponseWriter, r *http.Request, request any) (any, error) {
		return sh.ssi.ListFavorites(ctx, request.(ListFavoritesRequestObject))
	})
}

// AddFavorite operation middleware
func (sh *strictHandler) AddFavorite(w http.ResponseWriter, r *http.Request, params AddFavoriteParams) {
	request := AddFavoriteRequestObject{Params: params}

	var body AddFavoriteJSONRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if !errors.Is(err, io.EOF) {
			sh.options.RequestErrorHandlerFunc(w, r, fmt.Errorf("can't decode JSON body: %w", err))
			return
		}
	} else {
		request.Body = &body
	}

	sh.run(w, r, "AddFavorite", request, func(ctx context.Context, w http.ResponseWriter, r *http.Request, request any) (any, error) {
		return sh.ssi.AddFavorite(ctx, request.(AddFavoriteRequestObject))
	})
}

// RemoveFavorite operation middleware
func (sh *strictHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request, recipeId int64) {
	request := RemoveFavoriteRequestObject{RecipeId: recipeId}

	sh.run(w, r, "RemoveFavorite", request, func(ctx context.Context, w http.ResponseWriter, r *http.Request, request any) (any, error) {
		return sh.ssi.RemoveFavorite(ctx, request.(RemoveFavoriteRequestObject))
	})
}
