package services

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/storage"
	"portfolio_backend/pkg/apperrors"
)

// ImageService - хранилище изображений портфолио.
// Метаданные лежат в ImageRepository, байты в storage.Storage.
type ImageService interface {
	Store(ctx context.Context, data []byte, mimeType, originalName, ownerID string) (string, error)
	Get(ctx context.Context, imageID string) (*ImageContent, error)
	Stat(ctx context.Context, imageID string) (*models.Image, error)
	Delete(ctx context.Context, imageIDs []string) error
	DeleteByOwner(ctx context.Context, ownerID string) error
}

// ImageContent - изображение вместе с байтами
type ImageContent struct {
	Image *models.Image
	Data  []byte
}

const imageKeyPrefix = "images/"

type imageService struct {
	imageRepo repositories.ImageRepository
	storage   storage.Storage
	now       func() time.Time
}

func NewImageService(imageRepo repositories.ImageRepository, storage storage.Storage) ImageService {
	return &imageService{
		imageRepo: imageRepo,
		storage:   storage,
		now:       time.Now,
	}
}

// Store сохраняет байты, затем индексирует метаданные.
// Запись в индексе появляется только после успешной записи байтов.
func (s *imageService) Store(ctx context.Context, data []byte, mimeType, originalName, ownerID string) (string, error) {
	imageID, err := s.newImageID(ctx, ownerID)
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	key := imageKeyPrefix + imageID + extensionFor(mimeType, originalName)
	if err := s.storage.Save(ctx, key, bytes.NewReader(data), int64(len(data)), mimeType); err != nil {
		logger.CtxWithError(ctx, "failed to save image bytes", err, "image_id", imageID)
		return "", apperrors.ErrStorage(err)
	}

	image := &models.Image{
		ID:           imageID,
		OwnerID:      ownerID,
		MimeType:     mimeType,
		OriginalName: originalName,
		Key:          key,
		Size:         int64(len(data)),
		CreatedAt:    s.now(),
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		_ = s.storage.Delete(ctx, key)
		return "", apperrors.InternalError(err)
	}

	logger.CtxDebug(ctx, "image stored", "image_id", imageID, "mime", mimeType, "size", image.Size)
	return imageID, nil
}

func (s *imageService) Get(ctx context.Context, imageID string) (*ImageContent, error) {
	image, err := s.Stat(ctx, imageID)
	if err != nil {
		return nil, err
	}

	rc, err := s.storage.Get(ctx, image.Key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, apperrors.ErrImageNotFound(err)
		}
		return nil, apperrors.ErrStorage(err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, apperrors.ErrStorage(err)
	}

	return &ImageContent{Image: image, Data: data}, nil
}

// Stat возвращает метаданные без чтения байтов
func (s *imageService) Stat(ctx context.Context, imageID string) (*models.Image, error) {
	image, err := s.imageRepo.FindByID(ctx, imageID)
	if err != nil {
		return nil, handleImageError(err)
	}
	return image, nil
}

// Delete удаляет изображения по id. Уже удаленные пропускаются.
func (s *imageService) Delete(ctx context.Context, imageIDs []string) error {
	images := make([]*models.Image, 0, len(imageIDs))
	for _, id := range imageIDs {
		image, err := s.imageRepo.FindByID(ctx, id)
		if errors.Is(err, repositories.ErrImageNotFound) {
			continue
		}
		if err != nil {
			return apperrors.InternalError(err)
		}
		images = append(images, image)
	}
	return s.remove(ctx, images)
}

// DeleteByOwner удаляет все изображения портфолио
func (s *imageService) DeleteByOwner(ctx context.Context, ownerID string) error {
	images, err := s.imageRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	return s.remove(ctx, images)
}

func (s *imageService) remove(ctx context.Context, images []*models.Image) error {
	var errs []error
	removed := 0
	for _, image := range images {
		if err := s.storage.Delete(ctx, image.Key); err != nil {
			errs = append(errs, fmt.Errorf("image %s: %w", image.ID, err))
			continue
		}
		if err := s.imageRepo.Delete(ctx, image.ID); err != nil && !errors.Is(err, repositories.ErrImageNotFound) {
			errs = append(errs, fmt.Errorf("image %s: %w", image.ID, err))
			continue
		}
		removed++
	}

	if removed > 0 {
		logger.CtxInfo(ctx, "images removed", "count", removed)
	}
	if len(errs) > 0 {
		return apperrors.ErrStorage(errors.Join(errs...))
	}
	return nil
}

// newImageID: <owner>-<unix millis>-<random 0..1e9>
func (s *imageService) newImageID(ctx context.Context, ownerID string) (string, error) {
	for {
		n, err := rand.Int(rand.Reader, big.NewInt(1e9))
		if err != nil {
			return "", fmt.Errorf("failed to generate image id: %w", err)
		}
		id := fmt.Sprintf("%s-%d-%d", ownerID, s.now().UnixMilli(), n.Int64())
		if _, err := s.imageRepo.FindByID(ctx, id); errors.Is(err, repositories.ErrImageNotFound) {
			return id, nil
		}
	}
}

func handleImageError(err error) error {
	if errors.Is(err, repositories.ErrImageNotFound) {
		return apperrors.ErrImageNotFound(err)
	}
	return apperrors.InternalError(err)
}
