package contracttest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/recipeasy/recipeasy-api/internal/domain"
	favoriterepoport "github.com/recipeasy/recipeasy-api/internal/ports/out/favoriterepo"
	idempotencyport "github.com/recipeasy/recipeasy-api/internal/ports/out/idempotency"
)

type CleanupFunc = func()

type FavoriteRepoFactory func(t *testing.T) (favoriterepoport.Repository, CleanupFunc)
type IdemStoreFactory func(t *testing.T) (idempotencyport.Store, CleanupFunc)

func RunIdempotencyStore(t *testing.T, newStore IdemStoreFactory) {
	t.Helper()
	ctx := context.Background()

	store, cleanup := newStore(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	// Subjects are unique per run so a shared database does not leak state between runs.
	sub := domain.SubjectID("sub-" + uuid.NewString())
	fp := idempotencyport.Fingerprint{
		Key:      "k-1",
		Subject:  sub,
		Route:    "POST /favorites",
		BodyHash: "",
	}
	rec := idempotencyport.Record{
		StatusCode:  0,
		ContentType: "text/plain",
		Body:        []byte("hash-abc"),
		CreatedAt:   time.Unix(123, 0).UTC(),
	}

	if _, ok, err := store.Get(ctx, fp); err != nil || ok {
		t.Fatalf("Get before Put: ok=%v err=%v", ok, err)
	}
	if err := store.Put(ctx, fp, rec); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := store.Get(ctx, fp)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok=true")
	}
	if string(got.Body) != "hash-abc" || got.ContentType != "text/plain" || got.StatusCode != 0 {
		t.Fatalf("unexpected record: %+v", got)
	}

	// Overwrite semantics.
	rec2 := rec
	rec2.Body = []byte("hash-def")
	if err := store.Put(ctx, fp, rec2); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}
	got, ok, err = store.Get(ctx, fp)
	if err != nil || !ok || string(got.Body) != "hash-def" {
		t.Fatalf("expected overwritten record, got ok=%v err=%v body=%q", ok, err, string(got.Body))
	}

	// Every fingerprint field participates in the lookup.
	respFP := fp
	respFP.BodyHash = "hash-def"
	if _, ok, err := store.Get(ctx, respFP); err != nil || ok {
		t.Fatalf("distinct BodyHash matched: ok=%v err=%v", ok, err)
	}
	otherSub := fp
	otherSub.Subject = domain.SubjectID("other-" + uuid.NewString())
	if _, ok, err := store.Get(ctx, otherSub); err != nil || ok {
		t.Fatalf("distinct Subject matched: ok=%v err=%v", ok, err)
	}
	if err := store.Put(ctx, respFP, idempotencyport.Record{
		StatusCode:  201,
		ContentType: "application/json",
		Body:        []byte(`{"favorite":{"recipeId":1}}`),
		CreatedAt:   time.Unix(124, 0).UTC(),
	}); err != nil {
		t.Fatalf("Put response: %v", err)
	}
	got, ok, err = store.Get(ctx, respFP)
	if err != nil || !ok || got.StatusCode != 201 || got.ContentType != "application/json" {
		t.Fatalf("response record: ok=%v err=%v rec=%+v", ok, err, got)
	}
}

func RunFavoriteRepo(t *testing.T, newRepo FavoriteRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	sub := domain.SubjectID("sub-" + uuid.NewString())
	other := domain.SubjectID("sub-" + uuid.NewString())
	t0 := time.Unix(1000, 0).UTC()
	img := "https://img.example/715538.jpg"

	mk := func(subject domain.SubjectID, recipeID domain.RecipeID, at time.Time, image *string) domain.Favorite {
		return domain.Favorite{
			ID:        domain.FavoriteID(uuid.NewString()),
			Subject:   subject,
			RecipeID:  recipeID,
			Title:     "Recipe",
			Image:     image,
			CreatedAt: at,
		}
	}

	a := mk(sub, 715538, t0, &img)
	b := mk(sub, 2, t0.Add(time.Minute), nil)
	c := mk(sub, 1, t0.Add(time.Minute), nil)
	for _, f := range []domain.Favorite{a, b, c, mk(other, 715538, t0, nil)} {
		if err := repo.Create(ctx, f); err != nil {
			t.Fatalf("Create(%d): %v", f.RecipeID, err)
		}
	}

	// One favorite per subject and recipe.
	if err := repo.Create(ctx, mk(sub, 715538, t0.Add(time.Hour), nil)); !errors.Is(err, favoriterepoport.ErrAlreadyExists) {
		t.Fatalf("duplicate Create err=%v, want ErrAlreadyExists", err)
	}

	// Newest first, ties by recipe id.
	got, err := repo.List(ctx, sub)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 3 || got[0].RecipeID != 1 || got[1].RecipeID != 2 || got[2].RecipeID != 715538 {
		t.Fatalf("unexpected list order: %+v", got)
	}
	if got[2].ID != a.ID || got[2].Image == nil || *got[2].Image != img || !got[2].CreatedAt.Equal(t0) {
		t.Fatalf("round-trip mismatch: got=%+v want=%+v", got[2], a)
	}
	if got[0].Image != nil {
		t.Fatalf("expected nil image, got %q", *got[0].Image)
	}

	if err := repo.Delete(ctx, sub, 2); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, sub, 2); !errors.Is(err, favoriterepoport.ErrNotFound) {
		t.Fatalf("second Delete err=%v, want ErrNotFound", err)
	}
	got, err = repo.List(ctx, sub)
	if err != nil || len(got) != 2 {
		t.Fatalf("List after delete: len=%d err=%v", len(got), err)
	}

	// Other subjects are unaffected.
	got, err = repo.List(ctx, other)
	if err != nil || len(got) != 1 || got[0].RecipeID != 715538 {
		t.Fatalf("List(other)=%+v err=%v", got, err)
	}
}
