package recipes

import (
	"cmp"
	"math"
	"slices"

	"golang.org/x/text/cases"

	"github.com/recipeasy/recipeasy-api/internal/domain"
)

const (
	nutrientProtein  = "protein"
	nutrientCalories = "calories"
)

// ExtractNutrient returns the rounded amount of the named nutrient, matched
// case-insensitively. A missing nutrient yields 0.
func ExtractNutrient(nutrients []domain.Nutrient, name string) int {
	fold := cases.Fold()
	want := fold.String(name)
	for _, n := range nutrients {
		if fold.String(n.Name) == want {
			return roundHalfUp(n.Amount)
		}
	}
	return 0
}

// MatchRatio is used/(used+missed), or 0 when both counts are 0.
func MatchRatio(used, missed int) float64 {
	total := used + missed
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total)
}

// Merge combines a search candidate with its detail record. A nil detail
// leaves readyInMinutes, protein, calories and summary at their zero values.
func Merge(m domain.RawMatch, d *domain.DetailRecord) domain.RankedRecipe {
	r := domain.RankedRecipe{
		ID:                    m.ID,
		Title:                 m.Title,
		Image:                 m.Image,
		UsedIngredientCount:   m.UsedIngredientCount,
		MissedIngredientCount: m.MissedIngredientCount,
		UsedIngredients:       nonNilIngredients(m.UsedIngredients),
		MissedIngredients:     nonNilIngredients(m.MissedIngredients),
		MatchPercentage:       roundHalfUp(MatchRatio(m.UsedIngredientCount, m.MissedIngredientCount) * 100),
	}
	if d == nil {
		return r
	}
	r.ReadyInMinutes = d.ReadyInMinutes
	r.ProteinGrams = ExtractNutrient(d.Nutrients, nutrientProtein)
	r.Calories = ExtractNutrient(d.Nutrients, nutrientCalories)
	r.Summary = SummarizeHTML(d.Summary)
	return r
}

// Filter keeps recipes meeting both constraints. minProtein <= 0 and
// maxTime >= 999 mean "unconstrained". Input order is preserved.
func Filter(in []domain.RankedRecipe, minProtein, maxTime float64) []domain.RankedRecipe {
	out := make([]domain.RankedRecipe, 0, len(in))
	for _, r := range in {
		if minProtein > domain.NoMinProtein && float64(r.ProteinGrams) < minProtein {
			continue
		}
		if maxTime < domain.NoMaxTime && float64(r.ReadyInMinutes) > maxTime {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Rank sorts recipes in place by match ratio desc, protein desc, then
// cooking time asc. Equal recipes keep their input order.
func Rank(rs []domain.RankedRecipe) []domain.RankedRecipe {
	slices.SortStableFunc(rs, compareRanked)
	return rs
}

func compareRanked(a, b domain.RankedRecipe) int {
	ra := MatchRatio(a.UsedIngredientCount, a.MissedIngredientCount)
	rb := MatchRatio(b.UsedIngredientCount, b.MissedIngredientCount)
	if c := cmp.Compare(rb, ra); c != 0 {
		return c
	}
	if c := cmp.Compare(b.ProteinGrams, a.ProteinGrams); c != 0 {
		return c
	}
	return cmp.Compare(a.ReadyInMinutes, b.ReadyInMinutes)
}

// roundHalfUp rounds to the nearest integer with halves going toward +Inf.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

func nonNilIngredients(in []domain.MatchedIngredient) []domain.MatchedIngredient {
	if in == nil {
		return []domain.MatchedIngredient{}
	}
	return in
}
