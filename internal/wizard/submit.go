package wizard

import (
	"context"
	"strings"
	"time"

	"portfolio_backend/internal/client"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/internal/templates"
)

const (
	SuccessRoute         = "/success"
	ListRoute            = "/professionals"
	SuccessRedirectDelay = 3 * time.Second
)

// Submission - готовый к отправке запрос: JSON и файлы
type Submission struct {
	Payload dto.PortfolioPayload
	Files   client.Files
}

// FileFields перечисляет multipart-поля файлов в порядке отправки
func (s Submission) FileFields() []string {
	var fields []string
	if s.Files.Profile != nil {
		fields = append(fields, dto.FieldProfileImage)
	}
	for i := 0; i < dto.MaxProjectImages; i++ {
		if s.Files.Projects[i] != nil {
			fields = append(fields, dto.ProjectImageField(i))
		}
	}
	return fields
}

// BuildSubmission отбрасывает пустые записи и собирает запрос.
// Состояние мастера не меняется.
func (w *Wizard) BuildSubmission() Submission {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buildLocked()
}

func (w *Wizard) buildLocked() Submission {
	d := w.data

	skills := make([]string, 0, len(d.Skills))
	for _, s := range d.Skills {
		if !blank(s) {
			skills = append(skills, s)
		}
	}

	services := make([]models.Service, 0, len(d.Services))
	for _, s := range d.Services {
		if !blank(s.Title) {
			services = append(services, s)
		}
	}

	testimonials := make([]models.Testimonial, 0, len(d.Testimonials))
	for _, t := range d.Testimonials {
		if !blank(t.Name) {
			testimonials = append(testimonials, t)
		}
	}

	files := client.Files{Projects: make(map[int]*client.File)}
	if f, ok := w.profileImage.File(); ok {
		files.Profile = f
	}

	// файл проекта получает индекс проекта после фильтрации
	projects := make([]dto.ProjectPayload, 0, len(d.Projects))
	for i, p := range d.Projects {
		if blank(p.Title) {
			continue
		}
		if f, ok := w.projectImages[i].File(); ok {
			files.Projects[len(projects)] = f
		}
		technologies := append([]string{}, p.Technologies...)
		projects = append(projects, dto.ProjectPayload{
			Title:        p.Title,
			Description:  p.Description,
			Technologies: technologies,
			Github:       p.Github,
			Live:         p.Live,
		})
	}

	template := w.templateID
	if template == "" {
		template = templates.DefaultID
	}

	hero := models.Hero{Name: d.Hero.Name, Title: d.Hero.Title, Tagline: d.Hero.Tagline}
	about := d.About
	blog := d.Blog
	contact := d.Contact

	return Submission{
		Payload: dto.PortfolioPayload{
			Hero:         &hero,
			About:        &about,
			Skills:       &skills,
			Services:     &services,
			Projects:     &projects,
			Testimonials: &testimonials,
			Blog:         &blog,
			Contact:      &contact,
			Template:     &template,
		},
		Files: files,
	}
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Submit отправляет форму. При ошибке состояние сохраняется, а текст ошибки
// доступен через LastError.
func (w *Wizard) Submit(ctx context.Context) (Outcome, error) {
	w.mu.Lock()
	if w.busy {
		w.mu.Unlock()
		return Outcome{}, ErrBusy
	}
	w.busy = true
	w.lastErr = ""
	sub := w.buildLocked()
	w.mu.Unlock()

	logger.Debug("submitting portfolio", "template", *sub.Payload.Template, "files", len(sub.FileFields()))
	created, err := w.creator.CreatePortfolio(ctx, sub.Payload, &sub.Files)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.busy = false

	if err != nil {
		w.lastErr = client.MessageOf(err, SubmitFallbackMessage)
		logger.Error("portfolio submit failed", "error", err, "message", w.lastErr)
		return Outcome{}, err
	}

	w.markUploaded(created)
	logger.Info("portfolio created", "portfolio_id", created.ID)

	return Outcome{
		Route:         SuccessRoute,
		RedirectTo:    ListRoute,
		RedirectAfter: SuccessRedirectDelay,
		Portfolio:     created,
	}, nil
}

// markUploaded переводит отправленные файлы в ImageUploaded
func (w *Wizard) markUploaded(p *models.Portfolio) {
	if p == nil {
		return
	}
	if p.ProfileImageID != nil && w.profileImage.Kind() == ImagePending {
		w.profileImage = UploadedImage(*p.ProfileImageID)
	}

	next := 0
	for i, draft := range w.data.Projects {
		if blank(draft.Title) {
			continue
		}
		if next < len(p.Projects) && p.Projects[next].ImageID != nil && w.projectImages[i].Kind() == ImagePending {
			w.projectImages[i] = UploadedImage(*p.Projects[next].ImageID)
		}
		next++
	}
}
