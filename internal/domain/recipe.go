package domain

import "time"

const (
	// NoMinProtein is the minProtein sentinel meaning "no protein floor".
	NoMinProtein float64 = 0
	// NoMaxTime is the maxTime sentinel meaning "no cooking time ceiling".
	NoMaxTime float64 = 999
)

// SearchQuery is a normalized ingredient search request.
type SearchQuery struct {
	// Ingredients is the comma-joined ingredient string sent upstream.
	Ingredients string
	MinProtein  float64
	MaxTime     float64
}

// MatchedIngredient is an ingredient reported by an ingredient search match.
type MatchedIngredient struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Original string  `json:"original"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
	Image    string  `json:"image,omitempty"`
}

// RawMatch is a single candidate returned by the provider's ingredient search.
type RawMatch struct {
	ID                    RecipeID
	Title                 string
	Image                 string
	UsedIngredientCount   int
	MissedIngredientCount int
	UsedIngredients       []MatchedIngredient
	MissedIngredients     []MatchedIngredient
}

// Nutrient is one named entry of a provider nutrition breakdown.
type Nutrient struct {
	Name                string
	Amount              float64
	Unit                string
	PercentOfDailyNeeds float64
}

// DetailIngredient is a structured ingredient line of a recipe.
type DetailIngredient struct {
	ID       int64
	Name     string
	Original string
	Amount   float64
	Unit     string
	Image    string
}

// InstructionStep is one numbered preparation step.
type InstructionStep struct {
	Number int
	Step   string
}

// DetailRecord is the provider's full recipe payload, nutrition included.
type DetailRecord struct {
	ID             RecipeID
	Title          string
	Image          string
	ReadyInMinutes int
	Servings       int
	SourceURL      string
	Summary        string
	Instructions   string

	Nutrients   []Nutrient
	Ingredients []DetailIngredient
	// Steps holds the first analyzed instruction block only.
	Steps []InstructionStep

	Diets     []string
	DishTypes []string
	Cuisines  []string

	Vegetarian bool
	Vegan      bool
	GlutenFree bool
	DairyFree  bool
}

// The types below are read models. Their json tags are the wire format and
// also the payload format stored in the response cache.

// RankedRecipe is a search candidate merged with its detail record.
type RankedRecipe struct {
	ID                    RecipeID            `json:"id"`
	Title                 string              `json:"title"`
	Image                 string              `json:"image"`
	UsedIngredientCount   int                 `json:"usedIngredientCount"`
	MissedIngredientCount int                 `json:"missedIngredientCount"`
	UsedIngredients       []MatchedIngredient `json:"usedIngredients"`
	MissedIngredients     []MatchedIngredient `json:"missedIngredients"`
	ReadyInMinutes        int                 `json:"readyInMinutes"`
	ProteinGrams          int                 `json:"proteinGrams"`
	Calories              int                 `json:"calories"`
	Summary               string              `json:"summary"`
	MatchPercentage       int                 `json:"matchPercentage"`
}

// SearchFilters echoes the normalized query back to the caller.
type SearchFilters struct {
	Ingredients string  `json:"ingredients"`
	MinProtein  float64 `json:"minProtein"`
	MaxTime     float64 `json:"maxTime"`
}

// SearchResult is the ranked response to a search. Filters is omitted for
// the empty result produced when the provider has no candidates.
type SearchResult struct {
	Recipes []RankedRecipe `json:"recipes"`
	Total   int            `json:"total"`
	Filters *SearchFilters `json:"filters,omitempty"`
}

type RecipeIngredient struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Original string  `json:"original"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
	Image    *string `json:"image"`
}

type RecipeStep struct {
	Number int    `json:"number"`
	Step   string `json:"step"`
}

type NutrientView struct {
	Name                string `json:"name"`
	Amount              int    `json:"amount"`
	Unit                string `json:"unit"`
	PercentOfDailyNeeds int    `json:"percentOfDailyNeeds"`
}

type NutritionView struct {
	Calories  int            `json:"calories"`
	Protein   int            `json:"protein"`
	Nutrients []NutrientView `json:"nutrients"`
}

// RecipeDetail is the single-recipe detail view.
type RecipeDetail struct {
	ID                   RecipeID           `json:"id"`
	Title                string             `json:"title"`
	Image                string             `json:"image"`
	ReadyInMinutes       int                `json:"readyInMinutes"`
	Servings             int                `json:"servings"`
	SourceURL            string             `json:"sourceUrl,omitempty"`
	Summary              string             `json:"summary"`
	Ingredients          []RecipeIngredient `json:"ingredients"`
	Instructions         string             `json:"instructions"`
	AnalyzedInstructions []RecipeStep       `json:"analyzedInstructions"`
	Nutrition            NutritionView      `json:"nutrition"`
	Diets                []string           `json:"diets"`
	DishTypes            []string           `json:"dishTypes"`
	Cuisines             []string           `json:"cuisines"`
	Vegetarian           bool               `json:"vegetarian"`
	Vegan                bool               `json:"vegan"`
	GlutenFree           bool               `json:"glutenFree"`
	DairyFree            bool               `json:"dairyFree"`
}

// Favorite is a recipe saved by a subject.
type Favorite struct {
	ID        FavoriteID
	Subject   SubjectID
	RecipeID  RecipeID
	Title     string
	Image     *string
	CreatedAt time.Time
}
