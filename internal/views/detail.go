package views

import (
	"context"

	"portfolio_backend/internal/client"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/templates"
)

// PageState - состояние страницы портфолио
type PageState int

const (
	PageLoaded PageState = iota
	PageNotFound
)

// DetailSource - откуда страница берет запись
type DetailSource interface {
	GetPortfolio(ctx context.Context, id string) (*models.Portfolio, error)
}

// DetailPage - запись с уже разрешенными URL изображений и выбранной темой
type DetailPage struct {
	State            PageState
	Portfolio        *models.Portfolio
	ProfileImageURL  string
	ProjectImageURLs []string // по индексу проекта, "" если изображения нет
	Theme            templates.Theme
}

type DetailView struct {
	source  DetailSource
	baseURL string
}

func NewDetailView(source DetailSource, baseURL string) *DetailView {
	return &DetailView{source: source, baseURL: baseURL}
}

// Load загружает запись. Любая ошибка дает PageNotFound.
func (v *DetailView) Load(ctx context.Context, id string) *DetailPage {
	p, err := v.source.GetPortfolio(ctx, id)
	if err != nil || p == nil {
		logger.CtxWarn(ctx, "portfolio not available", "portfolio_id", id, "error", err)
		return &DetailPage{State: PageNotFound, Theme: templates.ThemeForTemplate("")}
	}

	page := &DetailPage{
		State:            PageLoaded,
		Portfolio:        p,
		ProfileImageURL:  v.imageURL(p.ProfileImageID),
		ProjectImageURLs: make([]string, len(p.Projects)),
		Theme:            templates.ThemeForTemplate(p.Template),
	}
	for i, project := range p.Projects {
		page.ProjectImageURLs[i] = v.imageURL(project.ImageID)
	}
	return page
}

func (v *DetailView) imageURL(id *string) string {
	if id == nil || *id == "" {
		return ""
	}
	return client.ImageURL(v.baseURL, *id)
}
