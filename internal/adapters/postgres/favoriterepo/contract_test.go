package favoriterepo

import (
	"testing"

	"github.com/recipeasy/recipeasy-api/internal/adapters/contracttest"
	"github.com/recipeasy/recipeasy-api/internal/adapters/postgres/testutil"
	favoriterepoport "github.com/recipeasy/recipeasy-api/internal/ports/out/favoriterepo"
)

func TestContract_PostgresFavoriteRepo(t *testing.T) {
	pool := testutil.OpenMigratedPool(t)
	issuer := "https://issuer.test"

	contracttest.RunFavoriteRepo(t, func(t *testing.T) (favoriterepoport.Repository, func()) {
		t.Helper()
		return NewRepo(pool, issuer), nil
	})
}
