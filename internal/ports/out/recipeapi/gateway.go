package recipeapi

import (
	"context"

	"github.com/recipeasy/recipeasy-api/internal/domain"
)

// MaxCandidates bounds how many ingredient-search candidates are requested.
const MaxCandidates = 20

// Gateway is the outbound port to the third-party recipe data provider.
type Gateway interface {
	// FindByIngredients returns up to MaxCandidates recipes ranked by the provider to
	// maximize used-ingredient coverage. Pantry staples are not excluded.
	FindByIngredients(ctx context.Context, ingredients string) ([]domain.RawMatch, error)

	// InformationBulk returns detail records (nutrition included) for ids.
	// Records are matched to ids by their ID field; missing ids are simply absent.
	InformationBulk(ctx context.Context, ids []domain.RecipeID) ([]domain.DetailRecord, error)

	// Information returns the detail record for a single recipe, nutrition included.
	Information(ctx context.Context, id domain.RecipeID) (domain.DetailRecord, error)
}
