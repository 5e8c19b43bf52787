package httpapi

import (
	"context"

	"github.com/recipeasy/recipeasy-api/internal/domain"
)

type subjectKey struct{}

func WithSubject(ctx context.Context, subjectID string) context.Context {
	return context.WithValue(ctx, subjectKey{}, subjectID)
}

func SubjectFromContext(ctx context.Context) (domain.SubjectID, bool) {
	v, ok := ctx.Value(subjectKey{}).(string)
	return domain.SubjectID(v), ok && v != ""
}
