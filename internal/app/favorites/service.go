package favorites

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/recipeasy/recipeasy-api/internal/domain"
	clockport "github.com/recipeasy/recipeasy-api/internal/ports/out/clock"
	"github.com/recipeasy/recipeasy-api/internal/ports/out/favoriterepo"
)

const maxTitleLen = 300

type Service struct {
	repo favoriterepo.Repository
	clk  clockport.Clock

	newFavoriteID func() domain.FavoriteID
}

func NewService(repo favoriterepo.Repository, clk clockport.Clock) *Service {
	return &Service{
		repo: repo,
		clk:  clk,
		newFavoriteID: func() domain.FavoriteID {
			return domain.FavoriteID(uuid.NewString())
		},
	}
}

// ListFavorites returns the subject's favorites, newest first.
func (s *Service) ListFavorites(ctx context.Context, subject domain.SubjectID) ([]domain.Favorite, error) {
	return s.repo.List(ctx, subject)
}

func (s *Service) AddFavorite(ctx context.Context, subject domain.SubjectID, in AddFavoriteInput) (domain.Favorite, error) {
	if in.RecipeID <= 0 {
		return domain.Favorite{}, &Error{
			Status:  400,
			Code:    "VALIDATION_ERROR",
			Message: "invalid recipeId",
			Details: map[string]any{"recipeId": "must be a positive integer"},
		}
	}
	title := strings.TrimSpace(in.Title)
	if title == "" || utf8.RuneCountInString(title) > maxTitleLen {
		return domain.Favorite{}, &Error{
			Status:  400,
			Code:    "VALIDATION_ERROR",
			Message: "invalid title",
			Details: map[string]any{"title": "must be 1-300 characters"},
		}
	}

	f := domain.Favorite{
		ID:        s.newFavoriteID(),
		Subject:   subject,
		RecipeID:  in.RecipeID,
		Title:     title,
		Image:     normalizeImage(in.Image),
		CreatedAt: s.clk.Now(),
	}
	if err := s.repo.Create(ctx, f); err != nil {
		if errors.Is(err, favoriterepo.ErrAlreadyExists) {
			return domain.Favorite{}, &Error{
				Status:  409,
				Code:    "FAVORITE_ALREADY_EXISTS",
				Message: "Recipe is already in favorites.",
			}
		}
		return domain.Favorite{}, err
	}
	return f, nil
}

func (s *Service) RemoveFavorite(ctx context.Context, subject domain.SubjectID, recipeID domain.RecipeID) error {
	if err := s.repo.Delete(ctx, subject, recipeID); err != nil {
		if errors.Is(err, favoriterepo.ErrNotFound) {
			return &Error{
				Status:  404,
				Code:    "FAVORITE_NOT_FOUND",
				Message: "Recipe is not in favorites.",
			}
		}
		return err
	}
	return nil
}

func normalizeImage(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}
