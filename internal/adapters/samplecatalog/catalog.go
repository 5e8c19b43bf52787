// Package samplecatalog is an offline recipeapi.Gateway backed by a small
// embedded dataset. It needs no credential and makes no network calls.
package samplecatalog

import (
	"cmp"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/recipeasy/recipeasy-api/internal/domain"
	"github.com/recipeasy/recipeasy-api/internal/ports/out/recipeapi"
)

//go:embed recipes.json
var datasetJSON []byte

type sampleIngredient struct {
	Name     string  `json:"name"`
	Original string  `json:"original"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
}

type sampleRecipe struct {
	ID             int64              `json:"id"`
	Title          string             `json:"title"`
	Image          string             `json:"image"`
	ReadyInMinutes int                `json:"readyInMinutes"`
	Servings       int                `json:"servings"`
	ProteinGrams   float64            `json:"proteinGrams"`
	Calories       float64            `json:"calories"`
	Summary        string             `json:"summary"`
	Cuisines       []string           `json:"cuisines"`
	Diets          []string           `json:"diets"`
	Ingredients    []sampleIngredient `json:"ingredients"`
}

var _ recipeapi.Gateway = (*Catalog)(nil)

// Catalog is immutable after construction and safe for concurrent use.
type Catalog struct {
	recipes []sampleRecipe
	byID    map[domain.RecipeID]int
}

// New loads the embedded dataset.
func New() (*Catalog, error) {
	return Load(datasetJSON)
}

// Load builds a catalog from a JSON array of sample recipes.
func Load(data []byte) (*Catalog, error) {
	var recipes []sampleRecipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("decode sample catalog: %w", err)
	}
	c := &Catalog{
		recipes: recipes,
		byID:    make(map[domain.RecipeID]int, len(recipes)),
	}
	for i, r := range recipes {
		id := domain.RecipeID(r.ID)
		if _, dup := c.byID[id]; dup {
			return nil, fmt.Errorf("sample catalog: duplicate recipe id %d", r.ID)
		}
		c.byID[id] = i
	}
	return c, nil
}

// FindByIngredients marks a recipe ingredient as used when any query term is a
// case-insensitive substring of its name. Recipes using none of the terms are skipped.
func (c *Catalog) FindByIngredients(ctx context.Context, ingredients string) ([]domain.RawMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fold := cases.Fold()
	var terms []string
	for _, t := range strings.Split(ingredients, ",") {
		if t = strings.TrimSpace(t); t != "" {
			terms = append(terms, fold.String(t))
		}
	}

	var out []domain.RawMatch
	for _, r := range c.recipes {
		m := domain.RawMatch{
			ID:                domain.RecipeID(r.ID),
			Title:             r.Title,
			Image:             r.Image,
			UsedIngredients:   []domain.MatchedIngredient{},
			MissedIngredients: []domain.MatchedIngredient{},
		}
		for i, ing := range r.Ingredients {
			mi := domain.MatchedIngredient{
				ID:       ingredientID(r.ID, i),
				Name:     ing.Name,
				Original: ing.Original,
				Amount:   ing.Amount,
				Unit:     ing.Unit,
			}
			if matchesAny(fold.String(ing.Name), terms) {
				m.UsedIngredients = append(m.UsedIngredients, mi)
			} else {
				m.MissedIngredients = append(m.MissedIngredients, mi)
			}
		}
		m.UsedIngredientCount = len(m.UsedIngredients)
		m.MissedIngredientCount = len(m.MissedIngredients)
		if m.UsedIngredientCount > 0 {
			out = append(out, m)
		}
	}

	slices.SortStableFunc(out, func(a, b domain.RawMatch) int {
		if n := cmp.Compare(b.UsedIngredientCount, a.UsedIngredientCount); n != 0 {
			return n
		}
		return cmp.Compare(a.MissedIngredientCount, b.MissedIngredientCount)
	})
	if len(out) > recipeapi.MaxCandidates {
		out = out[:recipeapi.MaxCandidates]
	}
	return out, nil
}

// InformationBulk skips unknown ids, as the provider does.
func (c *Catalog) InformationBulk(ctx context.Context, ids []domain.RecipeID) ([]domain.DetailRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.DetailRecord, 0, len(ids))
	for _, id := range ids {
		if i, ok := c.byID[id]; ok {
			out = append(out, c.recipes[i].toDetail())
		}
	}
	return out, nil
}

func (c *Catalog) Information(ctx context.Context, id domain.RecipeID) (domain.DetailRecord, error) {
	if err := ctx.Err(); err != nil {
		return domain.DetailRecord{}, err
	}
	i, ok := c.byID[id]
	if !ok {
		return domain.DetailRecord{}, &recipeapi.Error{Op: "information", StatusCode: http.StatusNotFound}
	}
	return c.recipes[i].toDetail(), nil
}

func (r sampleRecipe) toDetail() domain.DetailRecord {
	d := domain.DetailRecord{
		ID:             domain.RecipeID(r.ID),
		Title:          r.Title,
		Image:          r.Image,
		ReadyInMinutes: r.ReadyInMinutes,
		Servings:       r.Servings,
		Summary:        r.Summary,
		Nutrients: []domain.Nutrient{
			{Name: "Calories", Amount: r.Calories, Unit: "kcal"},
			{Name: "Protein", Amount: r.ProteinGrams, Unit: "g"},
		},
		Diets:    r.Diets,
		Cuisines: r.Cuisines,
	}
	for i, ing := range r.Ingredients {
		d.Ingredients = append(d.Ingredients, domain.DetailIngredient{
			ID:       ingredientID(r.ID, i),
			Name:     ing.Name,
			Original: ing.Original,
			Amount:   ing.Amount,
			Unit:     ing.Unit,
		})
	}
	for _, diet := range r.Diets {
		switch diet {
		case "vegetarian":
			d.Vegetarian = true
		case "vegan":
			d.Vegan = true
			d.Vegetarian = true
		case "gluten free":
			d.GlutenFree = true
		case "dairy free":
			d.DairyFree = true
		}
	}
	if d.Vegan {
		d.DairyFree = true
	}
	return d
}

// ingredientID derives a stable per-recipe ingredient id.
func ingredientID(recipeID int64, idx int) int64 {
	return recipeID*100 + int64(idx) + 1
}

func matchesAny(name string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(name, t) {
			return true
		}
	}
	return false
}
