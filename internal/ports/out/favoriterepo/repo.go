package favoriterepo

import (
	"context"
	"errors"

	"github.com/recipeasy/recipeasy-api/internal/domain"
)

var (
	// ErrNotFound indicates the subject has not saved the recipe.
	ErrNotFound = errors.New("favorite not found")

	// ErrAlreadyExists indicates the subject already saved the recipe.
	ErrAlreadyExists = errors.New("favorite already exists")
)

// Repository persists favorites per subject.
//
// Result ordering expectations:
// - List returns favorites ordered by CreatedAt descending, then RecipeID ascending.
type Repository interface {
	List(ctx context.Context, subject domain.SubjectID) ([]domain.Favorite, error)
	Create(ctx context.Context, f domain.Favorite) error
	Delete(ctx context.Context, subject domain.SubjectID, recipeID domain.RecipeID) error
}
