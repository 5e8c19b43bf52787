package favoriterepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/recipeasy/recipeasy-api/internal/adapters/postgres"
	"github.com/recipeasy/recipeasy-api/internal/domain"
	"github.com/recipeasy/recipeasy-api/internal/ports/out/favoriterepo"
)

// Repo is a Postgres implementation of favoriterepo.Repository.
type Repo struct {
	pool   *pgxpool.Pool
	issuer string
}

func NewRepo(pool *pgxpool.Pool, authIssuer string) *Repo {
	return &Repo{pool: pool, issuer: authIssuer}
}

func (r *Repo) List(ctx context.Context, subject domain.SubjectID) ([]domain.Favorite, error) {
	if r.pool == nil {
		return nil, errors.New("nil postgres pool")
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, recipe_id, title, image, created_at
		FROM favorites
		WHERE subject_iss = $1
		  AND subject_sub = $2
		ORDER BY created_at DESC, recipe_id ASC
	`, r.issuer, string(subject))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Favorite, 0)
	for rows.Next() {
		var (
			id       uuid.UUID
			recipeID int64
			f        domain.Favorite
		)
		if err := rows.Scan(&id, &recipeID, &f.Title, &f.Image, &f.CreatedAt); err != nil {
			return nil, err
		}
		f.ID = domain.FavoriteID(id.String())
		f.Subject = subject
		f.RecipeID = domain.RecipeID(recipeID)
		f.CreatedAt = f.CreatedAt.UTC()
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *Repo) Create(ctx context.Context, f domain.Favorite) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	id, err := uuid.Parse(string(f.ID))
	if err != nil {
		return fmt.Errorf("invalid favorite id: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO favorites (
			id,
			subject_iss,
			subject_sub,
			recipe_id,
			title,
			image,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		id,
		r.issuer,
		string(f.Subject),
		int64(f.RecipeID),
		f.Title,
		f.Image,
		f.CreatedAt.UTC(),
	)
	if err != nil {
		if pe, ok := postgres.AsPgError(err); ok && pe.Code == postgres.UniqueViolationCode {
			return favoriterepo.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, subject domain.SubjectID, recipeID domain.RecipeID) error {
	if r.pool == nil {
		return errors.New("nil postgres pool")
	}
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM favorites
		WHERE subject_iss = $1
		  AND subject_sub = $2
		  AND recipe_id = $3
	`, r.issuer, string(subject), int64(recipeID))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return favoriterepo.ErrNotFound
	}
	return nil
}
