package favorites

import "github.com/recipeasy/recipeasy-api/internal/domain"

type AddFavoriteInput struct {
	RecipeID domain.RecipeID
	Title    string
	// Image is optional; nil or blank means no image.
	Image *string
}
