package recipes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipeasy/recipeasy-api/internal/domain"
)

func ranked(id int64, used, missed, protein, minutes int) domain.RankedRecipe {
	return domain.RankedRecipe{
		ID:                    domain.RecipeID(id),
		UsedIngredientCount:   used,
		MissedIngredientCount: missed,
		ProteinGrams:          protein,
		ReadyInMinutes:        minutes,
	}
}

func ids(rs []domain.RankedRecipe) []domain.RecipeID {
	out := make([]domain.RecipeID, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID)
	}
	return out
}

func TestExtractNutrient(t *testing.T) {
	nutrients := []domain.Nutrient{
		{Name: "Calories", Amount: 512.6, Unit: "kcal"},
		{Name: "PROTEIN", Amount: 31.5, Unit: "g"},
	}

	assert.Equal(t, 513, ExtractNutrient(nutrients, "calories"))
	assert.Equal(t, 32, ExtractNutrient(nutrients, "Protein"))
	assert.Equal(t, 0, ExtractNutrient(nutrients, "Fiber"))
	assert.Equal(t, 0, ExtractNutrient(nil, "protein"))
}

func TestMatchRatio(t *testing.T) {
	assert.Equal(t, 0.0, MatchRatio(0, 0))
	assert.Equal(t, 0.75, MatchRatio(3, 1))
	assert.Equal(t, 1.0, MatchRatio(2, 0))
}

func TestMerge_WithDetail(t *testing.T) {
	m := domain.RawMatch{
		ID:                    11,
		Title:                 "Chicken Stir Fry",
		Image:                 "https://img.example/11.jpg",
		UsedIngredientCount:   2,
		MissedIngredientCount: 1,
		UsedIngredients:       []domain.MatchedIngredient{{ID: 1, Name: "chicken"}, {ID: 2, Name: "broccoli"}},
	}
	d := &domain.DetailRecord{
		ID:             11,
		ReadyInMinutes: 25,
		Summary:        "<b>Quick</b> weeknight dinner",
		Nutrients: []domain.Nutrient{
			{Name: "Protein", Amount: 40.4},
			{Name: "Calories", Amount: 450.5},
		},
	}

	got := Merge(m, d)

	assert.Equal(t, domain.RecipeID(11), got.ID)
	assert.Equal(t, 25, got.ReadyInMinutes)
	assert.Equal(t, 40, got.ProteinGrams)
	assert.Equal(t, 451, got.Calories)
	assert.Equal(t, 67, got.MatchPercentage)
	assert.Equal(t, "Quick weeknight dinner...", got.Summary)
	assert.Len(t, got.UsedIngredients, 2)
	assert.NotNil(t, got.MissedIngredients)
}

func TestMerge_MissingDetailZeroes(t *testing.T) {
	got := Merge(domain.RawMatch{ID: 7, Title: "Mystery"}, nil)

	assert.Equal(t, 0, got.ProteinGrams)
	assert.Equal(t, 0, got.Calories)
	assert.Equal(t, 0, got.ReadyInMinutes)
	assert.Equal(t, "", got.Summary)
	assert.Equal(t, 0, got.MatchPercentage)
}

func TestSummarizeHTML_TruncatesTo150Chars(t *testing.T) {
	long := "<p>" + strings.Repeat("é", 200) + "</p>"
	got := SummarizeHTML(long)

	require.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, 150, len([]rune(strings.TrimSuffix(got, "..."))))
	assert.Equal(t, "", SummarizeHTML(""))
	// Entities are left alone.
	assert.Equal(t, "a &amp; b...", SummarizeHTML("<i>a</i> &amp; b"))
}

func TestFilter_SentinelsKeepEverything(t *testing.T) {
	in := []domain.RankedRecipe{
		ranked(1, 1, 1, 5, 120),
		ranked(2, 1, 0, 80, 2000),
		ranked(3, 0, 0, 0, 0),
	}

	got := Filter(in, 0, 999)

	assert.Equal(t, ids(in), ids(got))
}

func TestFilter_MinProteinAndMaxTime(t *testing.T) {
	in := []domain.RankedRecipe{
		ranked(1, 1, 1, 49, 10),
		ranked(2, 1, 1, 50, 30),
		ranked(3, 1, 1, 70, 31),
	}

	assert.Equal(t, []domain.RecipeID{2, 3}, ids(Filter(in, 50, 999)))
	assert.Equal(t, []domain.RecipeID{1, 2}, ids(Filter(in, 0, 30)))
	assert.Equal(t, []domain.RecipeID{2}, ids(Filter(in, 50, 30)))
}

func TestRank_Ordering(t *testing.T) {
	in := []domain.RankedRecipe{
		ranked(1, 1, 3, 90, 5),  // ratio .25
		ranked(2, 3, 1, 10, 60), // ratio .75
		ranked(3, 3, 1, 30, 60), // ratio .75, more protein
		ranked(4, 3, 1, 30, 20), // ratio .75, same protein, faster
		ranked(5, 0, 0, 99, 1),  // ratio 0
	}

	got := Rank(in)

	assert.Equal(t, []domain.RecipeID{4, 3, 2, 1, 5}, ids(got))
}

func TestRank_StableForTies(t *testing.T) {
	in := []domain.RankedRecipe{
		ranked(10, 2, 2, 20, 30),
		ranked(11, 1, 1, 20, 30),
		ranked(12, 3, 3, 20, 30),
	}

	got := Rank(in)

	assert.Equal(t, []domain.RecipeID{10, 11, 12}, ids(got))
}

func TestDetailView(t *testing.T) {
	d := domain.DetailRecord{
		ID:           42,
		Title:        "Lentil Soup",
		Summary:      "<p>Hearty <b>soup</b></p>",
		Instructions: "<ol><li>Boil</li></ol>",
		Ingredients: []domain.DetailIngredient{
			{ID: 1, Name: "lentils", Image: "lentils.jpg"},
			{ID: 2, Name: "water"},
		},
		Steps: []domain.InstructionStep{{Number: 1, Step: "Boil"}},
		Nutrients: []domain.Nutrient{
			{Name: "Calories", Amount: 300.4, Unit: "kcal", PercentOfDailyNeeds: 15.5},
			{Name: "Protein", Amount: 18.6, Unit: "g"},
			{Name: "Vitamin C", Amount: 4, Unit: "mg", PercentOfDailyNeeds: 5},
		},
	}

	v := DetailView(d)

	assert.Equal(t, 1, v.Servings)
	assert.Equal(t, "Hearty soup", v.Summary)
	assert.Equal(t, "Boil", v.Instructions)
	require.Len(t, v.Ingredients, 2)
	require.NotNil(t, v.Ingredients[0].Image)
	assert.Equal(t, "https://spoonacular.com/cdn/ingredients_100x100/lentils.jpg", *v.Ingredients[0].Image)
	assert.Nil(t, v.Ingredients[1].Image)
	assert.Equal(t, 300, v.Nutrition.Calories)
	assert.Equal(t, 19, v.Nutrition.Protein)
	require.Len(t, v.Nutrition.Nutrients, 2)
	assert.Equal(t, domain.NutrientView{Name: "Calories", Amount: 300, Unit: "kcal", PercentOfDailyNeeds: 16}, v.Nutrition.Nutrients[0])
	assert.Equal(t, 0, v.Nutrition.Nutrients[1].PercentOfDailyNeeds)
	assert.NotNil(t, v.Diets)
	assert.NotNil(t, v.Cuisines)
}

func TestSearchCacheKey(t *testing.T) {
	q := domain.SearchQuery{Ingredients: "chicken,broccoli", MinProtein: 0, MaxTime: 999}
	assert.Equal(t, "search:chicken,broccoli:0:999", SearchCacheKey(q))

	q2 := domain.SearchQuery{Ingredients: "chicken,broccoli", MinProtein: 12.5, MaxTime: 30}
	assert.Equal(t, "search:chicken,broccoli:12.5:30", SearchCacheKey(q2))
	assert.NotEqual(t, SearchCacheKey(q), SearchCacheKey(q2))

	assert.Equal(t, "recipe:715538", RecipeCacheKey(715538))
}
