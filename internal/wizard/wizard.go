// Package wizard implements the step-by-step portfolio builder: it collects
// form data over eight fixed steps and submits it to the API.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"portfolio_backend/internal/client"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/templates"
)

var (
	ErrNoTemplate       = errors.New("no template selected")
	ErrUnknownTemplate  = errors.New("unknown template")
	ErrUnknownField     = errors.New("unknown field")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrImageTooLarge    = errors.New("image is too large")
	ErrBusy             = errors.New("submission in progress")
)

// SubmitFallbackMessage показывается, когда сервер не прислал текст ошибки
const SubmitFallbackMessage = "Error creating portfolio. Please try again."

// Step - шаг мастера
type Step int

const (
	StepHero Step = iota
	StepAbout
	StepSkills
	StepServices
	StepPortfolio
	StepTestimonials
	StepBlog
	StepContact
)

var stepNames = [...]string{"hero", "about", "skills", "services", "portfolio", "testimonials", "blog", "contact"}

func (s Step) String() string {
	if s < 0 || int(s) >= len(stepNames) {
		return "unknown"
	}
	return stepNames[s]
}

// Steps возвращает шаги по порядку
func Steps() []Step {
	out := make([]Step, len(stepNames))
	for i := range out {
		out[i] = Step(i)
	}
	return out
}

// PortfolioCreator - то, куда мастер отправляет результат
type PortfolioCreator interface {
	CreatePortfolio(ctx context.Context, payload interface{}, files *client.Files) (*models.Portfolio, error)
}

// Outcome - куда перейти после успешной отправки
type Outcome struct {
	Route         string
	RedirectTo    string
	RedirectAfter time.Duration
	Portfolio     *models.Portfolio
}

// Wizard хранит состояние формы
type Wizard struct {
	mu sync.Mutex

	creator    PortfolioCreator
	templateID string
	step       Step
	data       FormData

	profileImage  ImageRef
	projectImages [ProjectSlots]ImageRef

	busy    bool
	lastErr string
}

func New(creator PortfolioCreator) *Wizard {
	return &Wizard{
		creator: creator,
		data:    NewFormData(),
	}
}

// ============================================
// Шаблон и навигация
// ============================================

func (w *Wizard) SelectTemplate(id string) error {
	if _, ok := templates.Lookup(id); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTemplate, id)
	}
	w.mu.Lock()
	w.templateID = id
	w.mu.Unlock()
	return nil
}

func (w *Wizard) TemplateID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.templateID
}

// Enter проверяет, что шаблон выбран. Иначе вызывающий возвращается к выбору шаблона.
func (w *Wizard) Enter() error {
	if w.TemplateID() == "" {
		return ErrNoTemplate
	}
	return nil
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

func (w *Wizard) Next() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step < StepContact {
		w.step++
	}
	return w.step
}

func (w *Wizard) Previous() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step > StepHero {
		w.step--
	}
	return w.step
}

// Data возвращает копию формы
func (w *Wizard) Data() FormData {
	w.mu.Lock()
	defer w.mu.Unlock()
	d := w.data
	d.Skills = append([]string(nil), w.data.Skills...)
	d.Services = append([]models.Service(nil), w.data.Services...)
	d.Testimonials = append([]models.Testimonial(nil), w.data.Testimonials...)
	d.Projects = make([]ProjectDraft, len(w.data.Projects))
	for i, p := range w.data.Projects {
		p.Technologies = append([]string(nil), p.Technologies...)
		d.Projects[i] = p
	}
	return d
}

// Busy - идет ли отправка
func (w *Wizard) Busy() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.busy
}

// LastError - сообщение последней неудачной отправки
func (w *Wizard) LastError() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// ============================================
// Поля
// ============================================

// SetField присваивает значение простому полю раздела (hero, about, blog, contact)
func (w *Wizard) SetField(section, field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var target *string
	switch section {
	case "hero":
		target = pick(field, map[string]*string{
			"name": &w.data.Hero.Name, "title": &w.data.Hero.Title, "tagline": &w.data.Hero.Tagline,
		})
	case "about":
		a := &w.data.About
		target = pick(field, map[string]*string{
			"bio": &a.Bio, "description": &a.Description, "email": &a.Email, "phone": &a.Phone, "location": &a.Location,
		})
	case "blog":
		target = pick(field, map[string]*string{"title": &w.data.Blog.Title, "summary": &w.data.Blog.Summary})
	case "contact":
		c := &w.data.Contact
		target = pick(field, map[string]*string{"message": &c.Message, "email": &c.Email, "phone": &c.Phone})
	}
	if target == nil {
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, section, field)
	}
	*target = value
	return nil
}

// SetNestedField - то же для вложенного объекта (about.socials)
func (w *Wizard) SetNestedField(section, subsection, field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var target *string
	if section == "about" && subsection == "socials" {
		s := &w.data.About.Socials
		target = pick(field, map[string]*string{
			"github": &s.Github, "linkedin": &s.Linkedin, "twitter": &s.Twitter, "website": &s.Website,
		})
	}
	if target == nil {
		return fmt.Errorf("%w: %s.%s.%s", ErrUnknownField, section, subsection, field)
	}
	*target = value
	return nil
}

func pick(field string, fields map[string]*string) *string {
	return fields[field]
}

// --- навыки ---

func (w *Wizard) AddSkill() {
	w.mu.Lock()
	w.data.Skills = append(w.data.Skills, "")
	w.mu.Unlock()
}

// RemoveSkill не удаляет последний оставшийся навык
func (w *Wizard) RemoveSkill(i int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if i < 0 || i >= len(w.data.Skills) {
		return ErrIndexOutOfRange
	}
	if len(w.data.Skills) == 1 {
		return nil
	}
	w.data.Skills = append(w.data.Skills[:i:i], w.data.Skills[i+1:]...)
	return nil
}

func (w *Wizard) SetSkill(i int, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if i < 0 || i >= len(w.data.Skills) {
		return ErrIndexOutOfRange
	}
	w.data.Skills[i] = value
	return nil
}

// --- отзывы: от 1 до 3 ---

func (w *Wizard) AddTestimonial() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.data.Testimonials) >= MaxTestimonials {
		return
	}
	w.data.Testimonials = append(w.data.Testimonials, models.Testimonial{})
}

func (w *Wizard) RemoveTestimonial(i int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if i < 0 || i >= len(w.data.Testimonials) {
		return ErrIndexOutOfRange
	}
	if len(w.data.Testimonials) == 1 {
		return nil
	}
	w.data.Testimonials = append(w.data.Testimonials[:i:i], w.data.Testimonials[i+1:]...)
	return nil
}

func (w *Wizard) SetTestimonialField(i int, field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if i < 0 || i >= len(w.data.Testimonials) {
		return ErrIndexOutOfRange
	}
	t := &w.data.Testimonials[i]
	target := pick(field, map[string]*string{"name": &t.Name, "quote": &t.Quote, "position": &t.Position})
	if target == nil {
		return fmt.Errorf("%w: testimonials.%s", ErrUnknownField, field)
	}
	*target = value
	return nil
}

// --- услуги и проекты: фиксированные 3 карточки ---

func (w *Wizard) SetServiceField(i int, field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if i < 0 || i >= len(w.data.Services) {
		return ErrIndexOutOfRange
	}
	s := &w.data.Services[i]
	target := pick(field, map[string]*string{"title": &s.Title, "description": &s.Description})
	if target == nil {
		return fmt.Errorf("%w: services.%s", ErrUnknownField, field)
	}
	*target = value
	return nil
}

func (w *Wizard) SetProjectField(i int, field, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if i < 0 || i >= len(w.data.Projects) {
		return ErrIndexOutOfRange
	}
	p := &w.data.Projects[i]
	target := pick(field, map[string]*string{
		"title": &p.Title, "description": &p.Description, "github": &p.Github, "live": &p.Live,
	})
	if target == nil {
		return fmt.Errorf("%w: portfolio.%s", ErrUnknownField, field)
	}
	*target = value
	return nil
}

func (w *Wizard) SetProjectTechnologies(i int, technologies []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if i < 0 || i >= len(w.data.Projects) {
		return ErrIndexOutOfRange
	}
	w.data.Projects[i].Technologies = append([]string(nil), technologies...)
	return nil
}

// ============================================
// Изображения
// ============================================

// SetImage прикрепляет файл к цели; nil очищает ее
func (w *Wizard) SetImage(target ImageTarget, file *client.File) error {
	ref := NoImage()
	if file != nil {
		if err := checkImage(file); err != nil {
			return err
		}
		ref = PendingImage(*file)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if target == ProfileImage {
		w.profileImage = ref
		return nil
	}
	if target < 0 || int(target) >= ProjectSlots {
		return ErrIndexOutOfRange
	}
	w.projectImages[target] = ref
	return nil
}

// Image возвращает текущее состояние изображения цели
func (w *Wizard) Image(target ImageTarget) ImageRef {
	w.mu.Lock()
	defer w.mu.Unlock()
	if target == ProfileImage {
		return w.profileImage
	}
	if target < 0 || int(target) >= ProjectSlots {
		return NoImage()
	}
	return w.projectImages[target]
}

func checkImage(f *client.File) error {
	if len(f.Data) > MaxImageSize {
		return ErrImageTooLarge
	}
	ct := strings.ToLower(strings.TrimSpace(f.ContentType))
	for _, allowed := range AllowedImageTypes {
		if ct == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedImage, f.ContentType)
}
