package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"portfolio_backend/internal/models"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/internal/storage"
	"portfolio_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	portfolios PortfolioService
	images     ImageService
	blobs      *storage.MemoryStorage
}

func newFixture() *fixture {
	blobs := storage.NewMemoryStorage()
	images := NewImageService(repositories.NewImageRepository(), blobs)
	return &fixture{
		portfolios: NewPortfolioService(repositories.NewPortfolioRepository(), images),
		images:     images,
		blobs:      blobs,
	}
}

func png(name string) *dto.UploadedFile {
	return &dto.UploadedFile{Name: name, MimeType: "image/png", Data: []byte("png:" + name)}
}

func ptr[T any](v T) *T { return &v }

func payload(name, title string, skills ...string) *dto.PortfolioPayload {
	return &dto.PortfolioPayload{
		Hero:     &models.Hero{Name: name, Title: title},
		Skills:   &skills,
		Template: ptr("classic"),
		Projects: &[]dto.ProjectPayload{
			{Title: "One"}, {Title: "Two"},
		},
	}
}

func TestCreatePortfolio(t *testing.T) {
	ctx := context.Background()

	t.Run("identifiers are unique", func(t *testing.T) {
		f := newFixture()
		seen := map[string]bool{}
		for i := 0; i < 50; i++ {
			p, err := f.portfolios.CreatePortfolio(ctx, payload("A", "Dev"), nil)
			require.NoError(t, err)
			assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
			seen[p.ID] = true
		}
	})

	t.Run("stores images and embeds their ids", func(t *testing.T) {
		f := newFixture()
		files := &dto.PortfolioFiles{
			Profile:  png("me.png"),
			Projects: map[int]*dto.UploadedFile{1: png("two.png"), 2: png("orphan.png")},
		}

		p, err := f.portfolios.CreatePortfolio(ctx, payload("Ada", "Engineer", "Go"), files)
		require.NoError(t, err)

		require.NotNil(t, p.ProfileImageID)
		assert.Contains(t, *p.ProfileImageID, p.ID+"-")
		assert.Nil(t, p.Projects[0].ImageID)
		require.NotNil(t, p.Projects[1].ImageID)
		assert.Equal(t, 2, f.blobs.Len(), "file for a missing project position is not stored")

		img, err := f.images.Get(ctx, *p.Projects[1].ImageID)
		require.NoError(t, err)
		assert.Equal(t, []byte("png:two.png"), img.Data)
		assert.Equal(t, "image/png", img.Image.MimeType)
		assert.Equal(t, p.ID, img.Image.OwnerID)
		assert.Equal(t, "two.png", img.Image.OriginalName)

		assert.Equal(t, "classic", p.Template)
		assert.False(t, p.CreatedAt.IsZero())
		assert.Nil(t, p.UpdatedAt)
	})

	t.Run("empty payload yields empty lists", func(t *testing.T) {
		f := newFixture()
		p, err := f.portfolios.CreatePortfolio(ctx, &dto.PortfolioPayload{}, nil)
		require.NoError(t, err)
		assert.NotNil(t, p.Skills)
		assert.NotNil(t, p.Projects)
		assert.Nil(t, p.ProfileImageID)
	})
}

func TestGetPortfolio_NotFound(t *testing.T) {
	f := newFixture()
	_, err := f.portfolios.GetPortfolio(context.Background(), "missing")

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
	assert.Equal(t, "Portfolio not found", appErr.Message)
}

func TestUpdatePortfolio(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps profile image when no new file", func(t *testing.T) {
		f := newFixture()
		created, err := f.portfolios.CreatePortfolio(ctx, payload("Ada", "Engineer"), &dto.PortfolioFiles{Profile: png("me.png")})
		require.NoError(t, err)

		updated, err := f.portfolios.UpdatePortfolio(ctx, created.ID, &dto.PortfolioPayload{
			Hero: &models.Hero{Name: "Ada L.", Title: "Architect"},
		}, nil)
		require.NoError(t, err)

		require.NotNil(t, updated.ProfileImageID)
		assert.Equal(t, *created.ProfileImageID, *updated.ProfileImageID)
		assert.Equal(t, "Architect", updated.Hero.Title)
		assert.NotNil(t, updated.UpdatedAt)
		assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	})

	t.Run("omitted sections are preserved", func(t *testing.T) {
		f := newFixture()
		created, err := f.portfolios.CreatePortfolio(ctx, payload("Ada", "Engineer", "Go", "SQL"), nil)
		require.NoError(t, err)

		updated, err := f.portfolios.UpdatePortfolio(ctx, created.ID, &dto.PortfolioPayload{
			Blog: &models.Blog{Title: "Notes"},
		}, nil)
		require.NoError(t, err)

		assert.Equal(t, []string{"Go", "SQL"}, updated.Skills)
		assert.Equal(t, "Engineer", updated.Hero.Title)
		assert.Equal(t, "classic", updated.Template)
		assert.Equal(t, "Notes", updated.Blog.Title)
		assert.Len(t, updated.Projects, 2)
	})

	t.Run("project images are kept by position and replaced by new files", func(t *testing.T) {
		f := newFixture()
		created, err := f.portfolios.CreatePortfolio(ctx, payload("Ada", "Engineer"), &dto.PortfolioFiles{
			Projects: map[int]*dto.UploadedFile{0: png("a.png"), 1: png("b.png")},
		})
		require.NoError(t, err)
		oldFirst := *created.Projects[0].ImageID
		oldSecond := *created.Projects[1].ImageID

		updated, err := f.portfolios.UpdatePortfolio(ctx, created.ID, &dto.PortfolioPayload{
			Projects: &[]dto.ProjectPayload{{Title: "One v2"}, {Title: "Two v2"}, {Title: "Three"}},
		}, &dto.PortfolioFiles{Projects: map[int]*dto.UploadedFile{1: png("b2.png")}})
		require.NoError(t, err)

		assert.Equal(t, oldFirst, *updated.Projects[0].ImageID)
		require.NotNil(t, updated.Projects[1].ImageID)
		assert.NotEqual(t, oldSecond, *updated.Projects[1].ImageID)
		assert.Nil(t, updated.Projects[2].ImageID)

		// замененное изображение удалено
		_, err = f.images.Get(ctx, oldSecond)
		assert.Error(t, err)
		assert.Equal(t, 2, f.blobs.Len())
	})

	t.Run("unknown id", func(t *testing.T) {
		f := newFixture()
		_, err := f.portfolios.UpdatePortfolio(ctx, "missing", &dto.PortfolioPayload{}, nil)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 404, appErr.HTTPCode)
	})
}

func TestDeletePortfolio(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	keep, err := f.portfolios.CreatePortfolio(ctx, payload("Keep", "Dev"), &dto.PortfolioFiles{Profile: png("k.png")})
	require.NoError(t, err)
	gone, err := f.portfolios.CreatePortfolio(ctx, payload("Gone", "Dev"), &dto.PortfolioFiles{
		Profile:  png("g.png"),
		Projects: map[int]*dto.UploadedFile{0: png("g0.png")},
	})
	require.NoError(t, err)
	goneImages := gone.ImageIDs()
	require.Len(t, goneImages, 2)

	require.NoError(t, f.portfolios.DeletePortfolio(ctx, gone.ID))

	all, err := f.portfolios.GetPortfolios(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keep.ID, all[0].ID)

	for _, id := range goneImages {
		_, err := f.images.Get(ctx, id)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 404, appErr.HTTPCode)
	}
	_, err = f.images.Get(ctx, *keep.ProfileImageID)
	assert.NoError(t, err)
	assert.Equal(t, 1, f.blobs.Len())

	err = f.portfolios.DeletePortfolio(ctx, gone.ID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestFilterPortfolios(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	first, err := f.portfolios.CreatePortfolio(ctx, payload("A", "Frontend Developer", "React", "Node"), nil)
	require.NoError(t, err)
	_, err = f.portfolios.CreatePortfolio(ctx, payload("B", "Designer", "Vue"), nil)
	require.NoError(t, err)

	bySkill, err := f.portfolios.FilterPortfolios(ctx, FilterBySkills, "react")
	require.NoError(t, err)
	require.Len(t, bySkill, 1)
	assert.Equal(t, first.ID, bySkill[0].ID)

	byRole, err := f.portfolios.FilterPortfolios(ctx, FilterByRole, "developer")
	require.NoError(t, err)
	require.Len(t, byRole, 1)
	assert.Equal(t, first.ID, byRole[0].ID)

	other, err := f.portfolios.FilterPortfolios(ctx, "location", "x")
	require.NoError(t, err)
	assert.Empty(t, other)
}

// gatedPortfolioRepo останавливает первый Update, пока тест не откроет release
type gatedPortfolioRepo struct {
	repositories.PortfolioRepository
	calls   atomic.Int32
	entered chan struct{}
	release chan struct{}
}

func (r *gatedPortfolioRepo) Update(ctx context.Context, p *models.Portfolio) error {
	if r.calls.Add(1) == 1 {
		close(r.entered)
		<-r.release
	}
	return r.PortfolioRepository.Update(ctx, p)
}

type failingUpdateRepo struct {
	repositories.PortfolioRepository
}

func (r *failingUpdateRepo) Update(ctx context.Context, p *models.Portfolio) error {
	return errors.New("write failed")
}

type failingDeleteStorage struct {
	storage.Storage
}

func (s *failingDeleteStorage) Delete(ctx context.Context, key string) error {
	return errors.New("medium unavailable")
}

func TestUpdatePortfolio_ConcurrentUpdatesKeepImagesResolvable(t *testing.T) {
	ctx := context.Background()
	blobs := storage.NewMemoryStorage()
	images := NewImageService(repositories.NewImageRepository(), blobs)
	repo := &gatedPortfolioRepo{
		PortfolioRepository: repositories.NewPortfolioRepository(),
		entered:             make(chan struct{}),
		release:             make(chan struct{}),
	}
	portfolios := NewPortfolioService(repo, images)

	created, err := portfolios.CreatePortfolio(ctx, payload("Ada", "Engineer"), &dto.PortfolioFiles{
		Profile:  png("orig.png"),
		Projects: map[int]*dto.UploadedFile{0: png("p0.png")},
	})
	require.NoError(t, err)

	errA := make(chan error, 1)
	go func() {
		_, err := portfolios.UpdatePortfolio(ctx, created.ID, &dto.PortfolioPayload{}, &dto.PortfolioFiles{Profile: png("a.png")})
		errA <- err
	}()
	<-repo.entered

	errB := make(chan error, 1)
	go func() {
		_, err := portfolios.UpdatePortfolio(ctx, created.ID, &dto.PortfolioPayload{
			Projects: &[]dto.ProjectPayload{{Title: "One v2"}, {Title: "Two v2"}},
		}, &dto.PortfolioFiles{
			Profile:  png("b.png"),
			Projects: map[int]*dto.UploadedFile{0: png("p0b.png")},
		})
		errB <- err
	}()

	close(repo.release)
	require.NoError(t, <-errA)
	require.NoError(t, <-errB)

	stored, err := portfolios.GetPortfolio(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, stored.ImageIDs(), 2)

	for _, id := range stored.ImageIDs() {
		_, err := images.Get(ctx, id)
		assert.NoError(t, err, "image %s must resolve", id)
	}

	profile, err := images.Get(ctx, *stored.ProfileImageID)
	require.NoError(t, err)
	assert.Equal(t, []byte("png:b.png"), profile.Data)
	assert.Equal(t, 2, blobs.Len(), "replaced images are removed")
}

func TestUpdatePortfolio_FailedWriteDiscardsOnlyItsOwnUploads(t *testing.T) {
	ctx := context.Background()
	blobs := storage.NewMemoryStorage()
	images := NewImageService(repositories.NewImageRepository(), blobs)
	repo := &failingUpdateRepo{PortfolioRepository: repositories.NewPortfolioRepository()}
	portfolios := NewPortfolioService(repo, images)

	created, err := portfolios.CreatePortfolio(ctx, payload("Ada", "Engineer"), &dto.PortfolioFiles{Profile: png("me.png")})
	require.NoError(t, err)

	// файл другого запроса к той же записи, еще не записанный в нее
	pending, err := images.Store(ctx, []byte("png:pending"), "image/png", "pending.png", created.ID)
	require.NoError(t, err)

	_, err = portfolios.UpdatePortfolio(ctx, created.ID, &dto.PortfolioPayload{}, &dto.PortfolioFiles{Profile: png("new.png")})
	require.Error(t, err)

	_, err = images.Get(ctx, *created.ProfileImageID)
	assert.NoError(t, err)
	_, err = images.Get(ctx, pending)
	assert.NoError(t, err)
	assert.Equal(t, 2, blobs.Len())
}

func TestDeletePortfolio_ImageCleanupFailureStillSucceeds(t *testing.T) {
	ctx := context.Background()
	images := NewImageService(repositories.NewImageRepository(), &failingDeleteStorage{Storage: storage.NewMemoryStorage()})
	portfolios := NewPortfolioService(repositories.NewPortfolioRepository(), images)

	created, err := portfolios.CreatePortfolio(ctx, payload("Ada", "Engineer"), &dto.PortfolioFiles{Profile: png("me.png")})
	require.NoError(t, err)

	require.NoError(t, portfolios.DeletePortfolio(ctx, created.ID))

	_, err = portfolios.GetPortfolio(ctx, created.ID)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestImageService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	first, err := f.images.Store(ctx, []byte("one"), "image/png", "one.png", "owner")
	require.NoError(t, err)
	second, err := f.images.Store(ctx, []byte("two"), "image/png", "two.png", "owner")
	require.NoError(t, err)

	require.NoError(t, f.images.Delete(ctx, []string{first, "unknown"}))

	_, err = f.images.Get(ctx, first)
	assert.Error(t, err)
	_, err = f.images.Get(ctx, second)
	assert.NoError(t, err)
	assert.Equal(t, 1, f.blobs.Len())
}
