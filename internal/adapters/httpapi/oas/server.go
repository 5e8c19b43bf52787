package oas

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (POST /recipes/search)
	SearchRecipes(w http.ResponseWriter, r *http.Request)
	// (GET /recipes/{id})
	GetRecipe(w http.ResponseWriter, r *http.Request, id string)
	// (GET /favorites)
	ListFavorites(w http.ResponseWriter, r *http.Request)
	// (POST /favorites)
	AddFavorite(w http.ResponseWriter, r *http.Request, params AddFavoriteParams)
	// (DELETE /favorites/{recipeId})
	RemoveFavorite(w http.ResponseWriter, r *http.Request, recipeId int64)
}

type MiddlewareFunc func(http.Handler) http.Handler

// ServerInterfaceWrapper converts contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler            ServerInterface
	HandlerMiddlewares []MiddlewareFunc
	ErrorHandlerFunc   func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *ServerInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, secured bool, h http.HandlerFunc) {
	if secured {
		r = r.WithContext(context.WithValue(r.Context(), BearerAuthScopes, []string{}))
	}
	handler := http.Handler(h)
	for _, middleware := range siw.HandlerMiddlewares {
		handler = middleware(handler)
	}
	handler.ServeHTTP(w, r)
}

// SearchRecipes operation middleware
func (siw *ServerInterfaceWrapper) SearchRecipes(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, false, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.SearchRecipes(w, r)
	})
}

// GetRecipe operation middleware
func (siw *ServerInterfaceWrapper) GetRecipe(w http.ResponseWriter, r *http.Request) {
	var err error

	// ------------- Path parameter "id" -------------
	var id string

	err = runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
		return
	}

	siw.serve(w, r, false, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.GetRecipe(w, r, id)
	})
}

// ListFavorites operation middleware
func (siw *ServerInterfaceWrapper) ListFavorites(w http.ResponseWriter, r *http.Request) {
	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.ListFavorites(w, r)
	})
}

// AddFavorite operation middleware
func (siw *ServerInterfaceWrapper) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var err error

	// Parameter object where we will unmarshal all parameters from the context
	var params AddFavoriteParams

	if valueList, found := r.Header[http.CanonicalHeaderKey("Idempotency-Key")]; found {
		var IdempotencyKey string
		if n := len(valueList); n != 1 {
			siw.ErrorHandlerFunc(w, r, &TooManyValuesForParamError{ParamName: "Idempotency-Key", Count: n})
			return
		}

		err = runtime.BindStyledParameterWithOptions("simple", "Idempotency-Key", valueList[0], &IdempotencyKey, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: false})
		if err != nil {
			siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "Idempotency-Key", Err: err})
			return
		}

		params.IdempotencyKey = &IdempotencyKey
	}

	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.AddFavorite(w, r, params)
	})
}

// RemoveFavorite operation middleware
func (siw *ServerInterfaceWrapper) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	var err error

	// ------------- Path parameter "recipeId" -------------
	var recipeId int64

	err = runtime.BindStyledParameterWithOptions("simple", "recipeId", chi.URLParam(r, "recipeId"), &recipeId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		siw.ErrorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "recipeId", Err: err})
		return
	}

	siw.serve(w, r, true, func(w http.ResponseWriter, r *http.Request) {
		siw.Handler.RemoveFavorite(w, r, recipeId)
	})
}

type TooManyValuesForParamError struct {
	ParamName string
	Count     int
}

func (e *TooManyValuesForParamError) Error() string {
	return fmt.Sprintf("Expected one value for %s, got %d", e.ParamName, e.Count)
}

type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// HandlerFromMux creates http.Handler with routing mounted on the provided mux.
func HandlerFromMux(si ServerInterface, r chi.Router) http.Handler {
	return HandlerWithOptions(si, ChiServerOptions{
		BaseRouter: r,
	})
}

// HandlerWithOptions creates http.Handler with additional options
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter

	if r == nil {
		r = chi.NewRouter()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
	wrapper := ServerInterfaceWrapper{
		Handler:            si,
		HandlerMiddlewares: options.Middlewares,
		ErrorHandlerFunc:   options.ErrorHandlerFunc,
	}

	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/recipes/search", wrapper.SearchRecipes)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/recipes/{id}", wrapper.GetRecipe)
	})
	r.Group(func(r chi.Router) {
		r.Get(options.BaseURL+"/favorites", wrapper.ListFavorites)
	})
	r.Group(func(r chi.Router) {
		r.Post(options.BaseURL+"/favorites", wrapper.AddFavorite)
	})
	r.Group(func(r chi.Router) {
		r.Delete(options.BaseURL+"/favorites/{recipeId}", wrapper.RemoveFavorite)
	})

	return r
}
