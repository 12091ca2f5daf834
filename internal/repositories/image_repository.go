package repositories

import (
	"context"
	"errors"
	"sort"
	"sync"

	"portfolio_backend/internal/models"
)

var ErrImageNotFound = errors.New("image not found")

// ImageRepository - индекс метаданных изображений
type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	FindByID(ctx context.Context, id string) (*models.Image, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*models.Image, error)
	Delete(ctx context.Context, id string) error
}

type ImageRepositoryImpl struct {
	mu     sync.RWMutex
	images map[string]models.Image
}

func NewImageRepository() ImageRepository {
	return &ImageRepositoryImpl{images: make(map[string]models.Image)}
}

func (r *ImageRepositoryImpl) Create(ctx context.Context, image *models.Image) error {
	r.mu.Lock()
	r.images[image.ID] = *image
	r.mu.Unlock()
	return nil
}

func (r *ImageRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Image, error) {
	r.mu.RLock()
	img, ok := r.images[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrImageNotFound
	}
	return &img, nil
}

// FindByOwner возвращает изображения владельца в порядке загрузки
func (r *ImageRepositoryImpl) FindByOwner(ctx context.Context, ownerID string) ([]*models.Image, error) {
	r.mu.RLock()
	var out []*models.Image
	for _, img := range r.images {
		if img.OwnerID == ownerID {
			img := img
			out = append(out, &img)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *ImageRepositoryImpl) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.images[id]; !ok {
		return ErrImageNotFound
	}
	delete(r.images, id)
	return nil
}
