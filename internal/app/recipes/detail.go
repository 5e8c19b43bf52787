package recipes

import (
	"regexp"
	"slices"
	"unicode/utf8"

	"github.com/recipeasy/recipeasy-api/internal/domain"
)

const (
	summaryMaxChars = 150
	summarySuffix   = "..."

	ingredientImageBaseURL = "https://spoonacular.com/cdn/ingredients_100x100/"
)

// tagPattern is a plain tag remover. It does not decode entities.
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// detailNutrients is the allowlist of nutrients shown on the detail view, matched exactly.
var detailNutrients = []string{"Calories", "Protein", "Fat", "Carbohydrates", "Fiber", "Sugar", "Sodium"}

// StripTags removes anything that looks like an HTML tag.
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// SummarizeHTML strips tags, keeps the first 150 characters and appends an
// ellipsis. An empty input stays empty.
func SummarizeHTML(s string) string {
	if s == "" {
		return ""
	}
	plain := StripTags(s)
	if utf8.RuneCountInString(plain) > summaryMaxChars {
		plain = string([]rune(plain)[:summaryMaxChars])
	}
	return plain + summarySuffix
}

// DetailView builds the single-recipe view from a provider record.
func DetailView(d domain.DetailRecord) domain.RecipeDetail {
	servings := d.Servings
	if servings == 0 {
		servings = 1
	}

	ings := make([]domain.RecipeIngredient, 0, len(d.Ingredients))
	for _, in := range d.Ingredients {
		var img *string
		if in.Image != "" {
			u := ingredientImageBaseURL + in.Image
			img = &u
		}
		ings = append(ings, domain.RecipeIngredient{
			ID:       in.ID,
			Name:     in.Name,
			Original: in.Original,
			Amount:   in.Amount,
			Unit:     in.Unit,
			Image:    img,
		})
	}

	steps := make([]domain.RecipeStep, 0, len(d.Steps))
	for _, s := range d.Steps {
		steps = append(steps, domain.RecipeStep{Number: s.Number, Step: s.Step})
	}

	nutrients := make([]domain.NutrientView, 0, len(detailNutrients))
	for _, n := range d.Nutrients {
		if !slices.Contains(detailNutrients, n.Name) {
			continue
		}
		nutrients = append(nutrients, domain.NutrientView{
			Name:                n.Name,
			Amount:              roundHalfUp(n.Amount),
			Unit:                n.Unit,
			PercentOfDailyNeeds: roundHalfUp(n.PercentOfDailyNeeds),
		})
	}

	return domain.RecipeDetail{
		ID:                   d.ID,
		Title:                d.Title,
		Image:                d.Image,
		ReadyInMinutes:       d.ReadyInMinutes,
		Servings:             servings,
		SourceURL:            d.SourceURL,
		Summary:              StripTags(d.Summary),
		Ingredients:          ings,
		Instructions:         StripTags(d.Instructions),
		AnalyzedInstructions: steps,
		Nutrition: domain.NutritionView{
			Calories:  ExtractNutrient(d.Nutrients, nutrientCalories),
			Protein:   ExtractNutrient(d.Nutrients, nutrientProtein),
			Nutrients: nutrients,
		},
		Diets:      nonNilStrings(d.Diets),
		DishTypes:  nonNilStrings(d.DishTypes),
		Cuisines:   nonNilStrings(d.Cuisines),
		Vegetarian: d.Vegetarian,
		Vegan:      d.Vegan,
		GlutenFree: d.GlutenFree,
		DairyFree:  d.DairyFree,
	}
}

func nonNilStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
