package repositories

import (
	"context"
	"errors"
	"sync"

	"portfolio_backend/internal/models"
)

var (
	ErrPortfolioNotFound = errors.New("portfolio not found")
	// ErrPortfolioExists: id выдает сервис, поэтому Create не перезаписывает чужую запись при коллизии
	ErrPortfolioExists   = errors.New("portfolio already exists")
)

// PortfolioRepository - коллекция портфолио.
// Реализации возвращают копии: изменения снаружи не влияют на хранилище.
type PortfolioRepository interface {
	Create(ctx context.Context, portfolio *models.Portfolio) error
	FindAll(ctx context.Context) ([]*models.Portfolio, error)
	FindByID(ctx context.Context, id string) (*models.Portfolio, error)
	Update(ctx context.Context, portfolio *models.Portfolio) error
	Delete(ctx context.Context, id string) error
	FindBySkill(ctx context.Context, substring string) ([]*models.Portfolio, error)
	FindByRole(ctx context.Context, substring string) ([]*models.Portfolio, error)
}

// PortfolioRepositoryImpl хранит записи в памяти процесса в порядке вставки.
// Данные теряются при перезапуске.
type PortfolioRepositoryImpl struct {
	mu    sync.RWMutex
	items []*models.Portfolio
}

func NewPortfolioRepository() PortfolioRepository {
	return &PortfolioRepositoryImpl{}
}

func (r *PortfolioRepositoryImpl) Create(ctx context.Context, portfolio *models.Portfolio) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(portfolio.ID) >= 0 {
		return ErrPortfolioExists
	}
	r.items = append(r.items, portfolio.Clone())
	return nil
}

func (r *PortfolioRepositoryImpl) FindAll(ctx context.Context) ([]*models.Portfolio, error) {
	return r.filter(func(*models.Portfolio) bool { return true }), nil
}

func (r *PortfolioRepositoryImpl) FindByID(ctx context.Context, id string) (*models.Portfolio, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrPortfolioNotFound
	}
	return r.items[i].Clone(), nil
}

// Update заменяет запись целиком на том же месте
func (r *PortfolioRepositoryImpl) Update(ctx context.Context, portfolio *models.Portfolio) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(portfolio.ID)
	if i < 0 {
		return ErrPortfolioNotFound
	}
	r.items[i] = portfolio.Clone()
	return nil
}

func (r *PortfolioRepositoryImpl) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrPortfolioNotFound
	}
	r.items = append(r.items[:i], r.items[i+1:]...)
	return nil
}

func (r *PortfolioRepositoryImpl) FindBySkill(ctx context.Context, substring string) ([]*models.Portfolio, error) {
	return r.filter(func(p *models.Portfolio) bool { return p.HasSkill(substring) }), nil
}

func (r *PortfolioRepositoryImpl) FindByRole(ctx context.Context, substring string) ([]*models.Portfolio, error) {
	return r.filter(func(p *models.Portfolio) bool { return p.HasRole(substring) }), nil
}

func (r *PortfolioRepositoryImpl) filter(keep func(*models.Portfolio) bool) []*models.Portfolio {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Portfolio, 0, len(r.items))
	for _, p := range r.items {
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// вызывать под блокировкой
func (r *PortfolioRepositoryImpl) indexOf(id string) int {
	for i, p := range r.items {
		if p.ID == id {
			return i
		}
	}
	return -1
}
