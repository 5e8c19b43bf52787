package favoriterepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/recipeasy/recipeasy-api/internal/domain"
	"github.com/recipeasy/recipeasy-api/internal/ports/out/favoriterepo"
)

func TestRepo_ListIsScopedToSubject(t *testing.T) {
	t.Parallel()

	r := NewRepo()
	ctx := context.Background()
	now := time.Unix(100, 0).UTC()
	for _, f := range []domain.Favorite{
		{ID: "f1", Subject: "sub-a", RecipeID: 1, Title: "A", CreatedAt: now},
		{ID: "f2", Subject: "sub-b", RecipeID: 1, Title: "A", CreatedAt: now},
	} {
		if err := r.Create(ctx, f); err != nil {
			t.Fatalf("Create(%s) err=%v", f.ID, err)
		}
	}

	got, err := r.List(ctx, "sub-a")
	if err != nil {
		t.Fatalf("List err=%v", err)
	}
	if len(got) != 1 || got[0].ID != "f1" {
		t.Fatalf("List=%+v", got)
	}

	empty, err := r.List(ctx, "sub-c")
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("List(sub-c)=%v err=%v, want empty non-nil", empty, err)
	}
}

func TestRepo_ReturnsClones(t *testing.T) {
	t.Parallel()

	r := NewRepo()
	ctx := context.Background()
	img := "https://img.example/1.jpg"
	f := domain.Favorite{ID: "f1", Subject: "sub-a", RecipeID: 1, Title: "A", Image: &img, CreatedAt: time.Unix(1, 0)}
	if err := r.Create(ctx, f); err != nil {
		t.Fatalf("Create err=%v", err)
	}
	img = "mutated"

	got, _ := r.List(ctx, "sub-a")
	if got[0].Image == nil || *got[0].Image != "https://img.example/1.jpg" {
		t.Fatalf("stored image aliased caller memory: %v", got[0].Image)
	}
	*got[0].Image = "mutated again"
	again, _ := r.List(ctx, "sub-a")
	if *again[0].Image != "https://img.example/1.jpg" {
		t.Fatalf("List returned shared pointer")
	}
}

func TestRepo_DeleteMissing(t *testing.T) {
	t.Parallel()

	r := NewRepo()
	if err := r.Delete(context.Background(), "sub-a", 99); !errors.Is(err, favoriterepo.ErrNotFound) {
		t.Fatalf("Delete err=%v, want ErrNotFound", err)
	}
}
