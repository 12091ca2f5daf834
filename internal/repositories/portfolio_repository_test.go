package repositories

import (
	"context"
	"testing"
	"time"

	"portfolio_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T, repo PortfolioRepository, id, title string, skills ...string) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &models.Portfolio{
		ID:        id,
		Hero:      models.Hero{Name: "Person " + id, Title: title},
		Skills:    skills,
		CreatedAt: time.Now(),
	}))
}

func ids(ps []*models.Portfolio) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.ID)
	}
	return out
}

func TestPortfolioRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("FindAll keeps insertion order", func(t *testing.T) {
		repo := NewPortfolioRepository()
		seed(t, repo, "b", "Designer")
		seed(t, repo, "a", "Engineer")
		seed(t, repo, "c", "Writer")

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a", "c"}, ids(all))
	})

	t.Run("Create rejects duplicate id", func(t *testing.T) {
		repo := NewPortfolioRepository()
		seed(t, repo, "a", "Engineer")
		err := repo.Create(ctx, &models.Portfolio{ID: "a"})
		assert.ErrorIs(t, err, ErrPortfolioExists)
	})

	t.Run("returned records are copies", func(t *testing.T) {
		repo := NewPortfolioRepository()
		seed(t, repo, "a", "Engineer", "Go")

		got, err := repo.FindByID(ctx, "a")
		require.NoError(t, err)
		got.Skills[0] = "mutated"
		got.Hero.Title = "mutated"

		again, err := repo.FindByID(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []string{"Go"}, again.Skills)
		assert.Equal(t, "Engineer", again.Hero.Title)
	})

	t.Run("Update replaces in place", func(t *testing.T) {
		repo := NewPortfolioRepository()
		seed(t, repo, "a", "Engineer")
		seed(t, repo, "b", "Designer")

		require.NoError(t, repo.Update(ctx, &models.Portfolio{ID: "a", Hero: models.Hero{Title: "Architect"}}))

		all, _ := repo.FindAll(ctx)
		assert.Equal(t, []string{"a", "b"}, ids(all))
		assert.Equal(t, "Architect", all[0].Hero.Title)

		err := repo.Update(ctx, &models.Portfolio{ID: "zzz"})
		assert.ErrorIs(t, err, ErrPortfolioNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		repo := NewPortfolioRepository()
		seed(t, repo, "a", "Engineer")
		seed(t, repo, "b", "Designer")

		require.NoError(t, repo.Delete(ctx, "a"))
		assert.ErrorIs(t, repo.Delete(ctx, "a"), ErrPortfolioNotFound)

		_, err := repo.FindByID(ctx, "a")
		assert.ErrorIs(t, err, ErrPortfolioNotFound)

		all, _ := repo.FindAll(ctx)
		assert.Equal(t, []string{"b"}, ids(all))
	})

	t.Run("FindBySkill is case-insensitive substring", func(t *testing.T) {
		repo := NewPortfolioRepository()
		seed(t, repo, "a", "Engineer", "React", "Node")
		seed(t, repo, "b", "Engineer", "Vue")
		seed(t, repo, "c", "Engineer", "Preact")

		got, err := repo.FindBySkill(ctx, "react")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "c"}, ids(got))
	})

	t.Run("FindByRole matches hero title", func(t *testing.T) {
		repo := NewPortfolioRepository()
		seed(t, repo, "a", "Senior Frontend Developer")
		seed(t, repo, "b", "UX Designer")

		got, err := repo.FindByRole(ctx, "DEVELOPER")
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, ids(got))

		none, err := repo.FindByRole(ctx, "chef")
		require.NoError(t, err)
		assert.Empty(t, none)
		assert.NotNil(t, none)
	})
}

func TestImageRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewImageRepository()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, &models.Image{ID: "p1-1", OwnerID: "p1", CreatedAt: now}))
	require.NoError(t, repo.Create(ctx, &models.Image{ID: "p1-2", OwnerID: "p1", CreatedAt: now.Add(time.Millisecond)}))
	require.NoError(t, repo.Create(ctx, &models.Image{ID: "p2-1", OwnerID: "p2", CreatedAt: now}))

	owned, err := repo.FindByOwner(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, "p1-1", owned[0].ID)
	assert.Equal(t, "p1-2", owned[1].ID)

	require.NoError(t, repo.Delete(ctx, "p1-1"))
	_, err = repo.FindByID(ctx, "p1-1")
	assert.ErrorIs(t, err, ErrImageNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "p1-1"), ErrImageNotFound)

	img, err := repo.FindByID(ctx, "p2-1")
	require.NoError(t, err)
	assert.Equal(t, "p2", img.OwnerID)
}
