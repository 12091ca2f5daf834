package services

import (
	"context"
	"errors"
	"time"

	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// Типы фильтра для FilterPortfolios
const (
	FilterBySkills = "skills"
	FilterByRole   = "role"
)

type PortfolioService interface {
	CreatePortfolio(ctx context.Context, payload *dto.PortfolioPayload, files *dto.PortfolioFiles) (*models.Portfolio, error)
	GetPortfolios(ctx context.Context) ([]*models.Portfolio, error)
	GetPortfolio(ctx context.Context, id string) (*models.Portfolio, error)
	UpdatePortfolio(ctx context.Context, id string, payload *dto.PortfolioPayload, files *dto.PortfolioFiles) (*models.Portfolio, error)
	DeletePortfolio(ctx context.Context, id string) error
	FilterPortfolios(ctx context.Context, filterType, value string) ([]*models.Portfolio, error)
}

type portfolioService struct {
	portfolioRepo repositories.PortfolioRepository
	imageService  ImageService
	writes        *keyedMutex
	now           func() time.Time
	newID         func() string
}

func NewPortfolioService(portfolioRepo repositories.PortfolioRepository, imageService ImageService) PortfolioService {
	return &portfolioService{
		portfolioRepo: portfolioRepo,
		imageService:  imageService,
		writes:        newKeyedMutex(),
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

// CreatePortfolio сохраняет изображения, затем саму запись
func (s *portfolioService) CreatePortfolio(ctx context.Context, payload *dto.PortfolioPayload, files *dto.PortfolioFiles) (*models.Portfolio, error) {
	portfolio := &models.Portfolio{
		ID:        s.newID(),
		CreatedAt: s.now().UTC(),
	}
	ctx = logger.WithPortfolioID(ctx, portfolio.ID)

	applyPayload(portfolio, payload, nil)

	stored, err := s.attachImages(ctx, portfolio, files)
	if err != nil {
		s.discardImages(ctx, stored)
		return nil, err
	}

	if err := s.portfolioRepo.Create(ctx, portfolio); err != nil {
		s.discardImages(ctx, stored)
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "portfolio created", "images", len(portfolio.ImageIDs()))
	return portfolio, nil
}

func (s *portfolioService) GetPortfolios(ctx context.Context) ([]*models.Portfolio, error) {
	portfolios, err := s.portfolioRepo.FindAll(ctx)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return portfolios, nil
}

func (s *portfolioService) GetPortfolio(ctx context.Context, id string) (*models.Portfolio, error) {
	portfolio, err := s.portfolioRepo.FindByID(ctx, id)
	if err != nil {
		return nil, handlePortfolioError(err)
	}
	return portfolio, nil
}

// UpdatePortfolio накладывает присланные разделы на предыдущую запись.
// Без нового файла изображение сохраняет прежний id.
// Обновления и удаление одной записи выполняются по очереди.
func (s *portfolioService) UpdatePortfolio(ctx context.Context, id string, payload *dto.PortfolioPayload, files *dto.PortfolioFiles) (*models.Portfolio, error) {
	ctx = logger.WithPortfolioID(ctx, id)

	unlock := s.writes.Lock(id)
	defer unlock()

	previous, err := s.portfolioRepo.FindByID(ctx, id)
	if err != nil {
		return nil, handlePortfolioError(err)
	}

	next := previous.Clone()
	applyPayload(next, payload, previous.Projects)

	stored, err := s.attachImages(ctx, next, files)
	if err != nil {
		s.discardImages(ctx, stored)
		return nil, err
	}

	updatedAt := s.now().UTC()
	next.UpdatedAt = &updatedAt

	if err := s.portfolioRepo.Update(ctx, next); err != nil {
		s.discardImages(ctx, stored)
		return nil, handlePortfolioError(err)
	}

	// замененные изображения и изображения удаленных проектов
	s.discardImages(ctx, difference(previous.ImageIDs(), next.ImageIDs()))

	logger.CtxInfo(ctx, "portfolio updated")
	return next, nil
}

// DeletePortfolio удаляет запись и все ее изображения.
// Сбой удаления изображений только логируется: записи уже нет.
func (s *portfolioService) DeletePortfolio(ctx context.Context, id string) error {
	ctx = logger.WithPortfolioID(ctx, id)

	unlock := s.writes.Lock(id)
	defer unlock()

	if err := s.portfolioRepo.Delete(ctx, id); err != nil {
		return handlePortfolioError(err)
	}

	if err := s.imageService.DeleteByOwner(ctx, id); err != nil {
		logger.CtxWithError(ctx, "failed to delete portfolio images", err)
	}

	logger.CtxInfo(ctx, "portfolio deleted")
	return nil
}

// FilterPortfolios: "skills" по навыкам, "role" по hero.title.
// Неизвестный тип дает пустой список.
func (s *portfolioService) FilterPortfolios(ctx context.Context, filterType, value string) ([]*models.Portfolio, error) {
	var (
		result []*models.Portfolio
		err    error
	)

	switch filterType {
	case FilterBySkills:
		result, err = s.portfolioRepo.FindBySkill(ctx, value)
	case FilterByRole:
		result, err = s.portfolioRepo.FindByRole(ctx, value)
	default:
		return []*models.Portfolio{}, nil
	}

	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return result, nil
}

// ============================================
// Вспомогательные функции
// ============================================

// attachImages сохраняет присланные файлы и пишет их id в запись.
// Возвращает id всех сохраненных файлов, в том числе при ошибке.
func (s *portfolioService) attachImages(ctx context.Context, p *models.Portfolio, files *dto.PortfolioFiles) ([]string, error) {
	var stored []string

	if f := files.ProfileFile(); f != nil {
		imageID, err := s.imageService.Store(ctx, f.Data, f.MimeType, f.Name, p.ID)
		if err != nil {
			return stored, err
		}
		stored = append(stored, imageID)
		p.ProfileImageID = &imageID
	}

	// файл для позиции без проекта не сохраняется
	for i := range p.Projects {
		f := files.Project(i)
		if f == nil {
			continue
		}
		imageID, err := s.imageService.Store(ctx, f.Data, f.MimeType, f.Name, p.ID)
		if err != nil {
			return stored, err
		}
		stored = append(stored, imageID)
		p.Projects[i].ImageID = &imageID
	}

	return stored, nil
}

func (s *portfolioService) discardImages(ctx context.Context, imageIDs []string) {
	if len(imageIDs) == 0 {
		return
	}
	if err := s.imageService.Delete(ctx, imageIDs); err != nil {
		logger.CtxWithError(ctx, "failed to discard images", err)
	}
}

// difference возвращает id из a, которых нет в b
func difference(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, id := range b {
		inB[id] = struct{}{}
	}
	var out []string
	for _, id := range a {
		if _, ok := inB[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

// applyPayload переносит присутствующие разделы payload в запись.
// previousProjects задает imageId по позиции для проектов без нового файла.
func applyPayload(p *models.Portfolio, payload *dto.PortfolioPayload, previousProjects []models.Project) {
	if payload == nil {
		normalize(p)
		return
	}

	if payload.Hero != nil {
		p.Hero = *payload.Hero
	}
	if payload.About != nil {
		p.About = *payload.About
	}
	if payload.Skills != nil {
		p.Skills = append([]string{}, *payload.Skills...)
	}
	if payload.Services != nil {
		p.Services = append([]models.Service{}, *payload.Services...)
	}
	if payload.Testimonials != nil {
		p.Testimonials = append([]models.Testimonial{}, *payload.Testimonials...)
	}
	if payload.Blog != nil {
		p.Blog = *payload.Blog
	}
	if payload.Contact != nil {
		p.Contact = *payload.Contact
	}
	if payload.Template != nil {
		p.Template = *payload.Template
	}

	if payload.Projects != nil {
		projects := make([]models.Project, len(*payload.Projects))
		for i, pp := range *payload.Projects {
			projects[i] = models.Project{
				Title:        pp.Title,
				Description:  pp.Description,
				Technologies: append([]string{}, pp.Technologies...),
				Github:       pp.Github,
				Live:         pp.Live,
			}
			if i < len(previousProjects) && previousProjects[i].ImageID != nil {
				id := *previousProjects[i].ImageID
				projects[i].ImageID = &id
			}
		}
		p.Projects = projects
	}

	normalize(p)
}

// normalize заменяет nil-списки пустыми, чтобы в JSON были [] а не null
func normalize(p *models.Portfolio) {
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Services == nil {
		p.Services = []models.Service{}
	}
	if p.Projects == nil {
		p.Projects = []models.Project{}
	}
	if p.Testimonials == nil {
		p.Testimonials = []models.Testimonial{}
	}
	for i := range p.Projects {
		if p.Projects[i].Technologies == nil {
			p.Projects[i].Technologies = []string{}
		}
	}
}

func handlePortfolioError(err error) error {
	if errors.Is(err, repositories.ErrPortfolioNotFound) {
		return apperrors.ErrPortfolioNotFound(err)
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperrors.InternalError(err)
}
