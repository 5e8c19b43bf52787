package spoonacular

import "github.com/recipeasy/recipeasy-api/internal/domain"

// Provider payloads. Only the fields this service reads are declared.

type wireIngredient struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Original string  `json:"original"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
	Image    string  `json:"image"`
}

type wireMatch struct {
	ID                    int64            `json:"id"`
	Title                 string           `json:"title"`
	Image                 string           `json:"image"`
	UsedIngredientCount   int              `json:"usedIngredientCount"`
	MissedIngredientCount int              `json:"missedIngredientCount"`
	UsedIngredients       []wireIngredient `json:"usedIngredients"`
	MissedIngredients     []wireIngredient `json:"missedIngredients"`
}

type wireNutrient struct {
	Name                string  `json:"name"`
	Amount              float64 `json:"amount"`
	Unit                string  `json:"unit"`
	PercentOfDailyNeeds float64 `json:"percentOfDailyNeeds"`
}

type wireStep struct {
	Number int    `json:"number"`
	Step   string `json:"step"`
}

type wireInformation struct {
	ID             int64   `json:"id"`
	Title          string  `json:"title"`
	Image          string  `json:"image"`
	ReadyInMinutes int     `json:"readyInMinutes"`
	Servings       int     `json:"servings"`
	SourceURL      string  `json:"sourceUrl"`
	Summary        string  `json:"summary"`
	Instructions   string  `json:"instructions"`
	Nutrition      *struct {
		Nutrients []wireNutrient `json:"nutrients"`
	} `json:"nutrition"`
	ExtendedIngredients  []wireIngredient `json:"extendedIngredients"`
	AnalyzedInstructions []struct {
		Steps []wireStep `json:"steps"`
	} `json:"analyzedInstructions"`
	Diets      []string `json:"diets"`
	DishTypes  []string `json:"dishTypes"`
	Cuisines   []string `json:"cuisines"`
	Vegetarian bool     `json:"vegetarian"`
	Vegan      bool     `json:"vegan"`
	GlutenFree bool     `json:"glutenFree"`
	DairyFree  bool     `json:"dairyFree"`
}

func (m wireMatch) toDomain() domain.RawMatch {
	return domain.RawMatch{
		ID:                    domain.RecipeID(m.ID),
		Title:                 m.Title,
		Image:                 m.Image,
		UsedIngredientCount:   m.UsedIngredientCount,
		MissedIngredientCount: m.MissedIngredientCount,
		UsedIngredients:       matchedIngredients(m.UsedIngredients),
		MissedIngredients:     matchedIngredients(m.MissedIngredients),
	}
}

func matchedIngredients(in []wireIngredient) []domain.MatchedIngredient {
	out := make([]domain.MatchedIngredient, 0, len(in))
	for _, i := range in {
		out = append(out, domain.MatchedIngredient{
			ID:       i.ID,
			Name:     i.Name,
			Original: i.Original,
			Amount:   i.Amount,
			Unit:     i.Unit,
			Image:    i.Image,
		})
	}
	return out
}

func (w wireInformation) toDomain() domain.DetailRecord {
	d := domain.DetailRecord{
		ID:             domain.RecipeID(w.ID),
		Title:          w.Title,
		Image:          w.Image,
		ReadyInMinutes: w.ReadyInMinutes,
		Servings:       w.Servings,
		SourceURL:      w.SourceURL,
		Summary:        w.Summary,
		Instructions:   w.Instructions,
		Diets:          w.Diets,
		DishTypes:      w.DishTypes,
		Cuisines:       w.Cuisines,
		Vegetarian:     w.Vegetarian,
		Vegan:          w.Vegan,
		GlutenFree:     w.GlutenFree,
		DairyFree:      w.DairyFree,
	}
	if w.Nutrition != nil {
		for _, n := range w.Nutrition.Nutrients {
			d.Nutrients = append(d.Nutrients, domain.Nutrient(n))
		}
	}
	for _, i := range w.ExtendedIngredients {
		d.Ingredients = append(d.Ingredients, domain.DetailIngredient(i))
	}
	if len(w.AnalyzedInstructions) > 0 {
		for _, s := range w.AnalyzedInstructions[0].Steps {
			d.Steps = append(d.Steps, domain.InstructionStep(s))
		}
	}
	return d
}
