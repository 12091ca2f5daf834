package wizard

import (
	"portfolio_backend/internal/client"
	"portfolio_backend/internal/models"
)

// Количество фиксированных карточек в форме
const (
	ServiceSlots    = 3
	ProjectSlots    = 3
	MaxTestimonials = 3
	MaxImageSize    = 5 * 1024 * 1024
)

// AllowedImageTypes - типы, которые форма принимает до отправки
var AllowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// HeroDraft - hero без изображения: оно хранится отдельно как ImageRef
type HeroDraft struct {
	Name    string
	Title   string
	Tagline string
}

// ProjectDraft - карточка проекта в форме
type ProjectDraft struct {
	Title        string
	Description  string
	Technologies []string
	Github       string
	Live         string
}

// FormData - все, что пользователь ввел в мастере
type FormData struct {
	Hero         HeroDraft
	About        models.About
	Skills       []string
	Services     []models.Service
	Projects     []ProjectDraft
	Testimonials []models.Testimonial
	Blog         models.Blog
	Contact      models.Contact
}

// NewFormData возвращает пустую форму: 1 навык, 3 услуги, 3 проекта, 1 отзыв
func NewFormData() FormData {
	return FormData{
		Skills:       []string{""},
		Services:     make([]models.Service, ServiceSlots),
		Projects:     make([]ProjectDraft, ProjectSlots),
		Testimonials: make([]models.Testimonial, 1),
	}
}

// ============================================
// ImageRef
// ============================================

// ImageKind - вариант ImageRef
type ImageKind int

const (
	ImageNone ImageKind = iota
	ImagePending
	ImageUploaded
)

// ImageRef: нет изображения, файл ждет отправки или уже загружен на сервер
type ImageRef struct {
	kind ImageKind
	file *client.File
	id   string
}

func NoImage() ImageRef { return ImageRef{} }

func PendingImage(f client.File) ImageRef {
	return ImageRef{kind: ImagePending, file: &f}
}

func UploadedImage(id string) ImageRef {
	return ImageRef{kind: ImageUploaded, id: id}
}

func (r ImageRef) Kind() ImageKind { return r.kind }

// File возвращает файл для ImagePending
func (r ImageRef) File() (*client.File, bool) {
	if r.kind != ImagePending {
		return nil, false
	}
	return r.file, true
}

// ID возвращает id для ImageUploaded
func (r ImageRef) ID() (string, bool) {
	if r.kind != ImageUploaded {
		return "", false
	}
	return r.id, true
}

// ImageTarget - куда прикрепляется файл: профиль или проект i
type ImageTarget int

// ProfileImage - цель для фото профиля
const ProfileImage ImageTarget = -1

// ProjectImage - цель для изображения проекта i
func ProjectImage(i int) ImageTarget { return ImageTarget(i) }
