// Package views holds the read-only list and detail projections of
// portfolios fetched from the API, and their terminal rendering.
package views

import (
	"context"
	"fmt"
	"sync"

	"portfolio_backend/internal/client"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/models"
)

const loadFallbackMessage = "Failed to load portfolios. Please try again."

// FilterKind - фильтр списка
type FilterKind string

const (
	FilterAll    FilterKind = "all"
	FilterSkills FilterKind = "skills"
	FilterRole   FilterKind = "role"
)

// Query - поиск по имени или должности плюс необязательный фильтр
type Query struct {
	Search string     `json:"search"`
	Filter FilterKind `json:"filter" validate:"is-filter-type"`
	Value  string     `json:"value"`
}

// ListSource - то, откуда список берет данные
type ListSource interface {
	ListPortfolios(ctx context.Context) ([]models.Portfolio, error)
	DeletePortfolio(ctx context.Context, id string) error
}

// ListView - список портфолио с фильтрацией на клиенте
type ListView struct {
	mu      sync.RWMutex
	source  ListSource
	all     []models.Portfolio
	query   Query
	message string
}

func NewListView(source ListSource) *ListView {
	return &ListView{source: source, query: Query{Filter: FilterAll}}
}

// Load загружает список один раз. Ошибка остается в Message, список пустеет.
func (v *ListView) Load(ctx context.Context) error {
	list, err := v.source.ListPortfolios(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		v.all = nil
		v.message = client.MessageOf(err, loadFallbackMessage)
		logger.CtxWarn(ctx, "failed to load portfolios", "error", err)
		return err
	}
	v.all = list
	v.message = ""
	return nil
}

// Apply меняет запрос без повторной загрузки и возвращает видимые записи
func (v *ListView) Apply(q Query) []models.Portfolio {
	if q.Filter == "" {
		q.Filter = FilterAll
	}
	v.mu.Lock()
	v.query = q
	v.mu.Unlock()
	return v.Visible()
}

// Visible - записи, прошедшие текущий запрос, в исходном порядке
func (v *ListView) Visible() []models.Portfolio {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]models.Portfolio, 0, len(v.all))
	for i := range v.all {
		if v.query.matches(&v.all[i]) {
			out = append(out, v.all[i])
		}
	}
	return out
}

func (q Query) matches(p *models.Portfolio) bool {
	if q.Search != "" && !p.MatchesSearch(q.Search) {
		return false
	}
	if q.Value == "" {
		return true
	}
	switch q.Filter {
	case FilterSkills:
		return p.HasSkill(q.Value)
	case FilterRole:
		return p.HasRole(q.Value)
	default:
		return true
	}
}

// Delete удаляет запись и перезагружает список
func (v *ListView) Delete(ctx context.Context, id string) error {
	if err := v.source.DeletePortfolio(ctx, id); err != nil {
		v.mu.Lock()
		v.message = client.MessageOf(err, "Failed to delete portfolio. Please try again.")
		v.mu.Unlock()
		return err
	}
	logger.CtxInfo(ctx, "portfolio deleted", "portfolio_id", id)
	return v.Load(ctx)
}

func (v *ListView) Total() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.all)
}

func (v *ListView) Query() Query {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.query
}

// Message - текст последней ошибки
func (v *ListView) Message() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.message
}

// Summary: "Showing X of Y"
func (v *ListView) Summary() string {
	return fmt.Sprintf("Showing %d of %d", len(v.Visible()), v.Total())
}
