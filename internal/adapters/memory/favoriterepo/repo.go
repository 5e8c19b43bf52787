package favoriterepo

import (
	"context"
	"sort"
	"sync"

	"github.com/recipeasy/recipeasy-api/internal/domain"
	"github.com/recipeasy/recipeasy-api/internal/ports/out/favoriterepo"
)

type favoriteKey struct {
	subject  domain.SubjectID
	recipeID domain.RecipeID
}

// Repo is an in-memory implementation of favoriterepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu sync.RWMutex

	byKey map[favoriteKey]domain.Favorite
}

func NewRepo() *Repo {
	return &Repo{
		byKey: make(map[favoriteKey]domain.Favorite),
	}
}

func (r *Repo) List(ctx context.Context, subject domain.SubjectID) ([]domain.Favorite, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Favorite, 0)
	for k, f := range r.byKey {
		if k.subject == subject {
			out = append(out, cloneFavorite(f))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].RecipeID < out[j].RecipeID
	})
	return out, nil
}

func (r *Repo) Create(ctx context.Context, f domain.Favorite) error {
	_ = ctx
	k := favoriteKey{subject: f.Subject, recipeID: f.RecipeID}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byKey[k]; ok {
		return favoriterepo.ErrAlreadyExists
	}
	r.byKey[k] = cloneFavorite(f)
	return nil
}

func (r *Repo) Delete(ctx context.Context, subject domain.SubjectID, recipeID domain.RecipeID) error {
	_ = ctx
	k := favoriteKey{subject: subject, recipeID: recipeID}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byKey[k]; !ok {
		return favoriterepo.ErrNotFound
	}
	delete(r.byKey, k)
	return nil
}

func cloneFavorite(f domain.Favorite) domain.Favorite {
	if f.Image != nil {
		v := *f.Image
		f.Image = &v
	}
	return f
}
