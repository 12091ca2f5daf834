package models

import (
	"strings"
	"time"
)

// Portfolio - сохраненная страница портфолио
type Portfolio struct {
	ID             string        `json:"id"`
	Hero           Hero          `json:"hero"`
	ProfileImageID *string       `json:"profileImageId"`
	About          About         `json:"about"`
	Skills         []string      `json:"skills"`
	Services       []Service     `json:"services"`
	Projects       []Project     `json:"portfolio"`
	Testimonials   []Testimonial `json:"testimonials"`
	Blog           Blog          `json:"blog"`
	Contact        Contact       `json:"contact"`
	Template       string        `json:"template"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      *time.Time    `json:"updatedAt,omitempty"`
}

type Hero struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Tagline  string `json:"tagline,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
}

type About struct {
	Bio         string  `json:"bio,omitempty"`
	Description string  `json:"description,omitempty"`
	Email       string  `json:"email,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Location    string  `json:"location,omitempty"`
	Socials     Socials `json:"socials"`
}

type Socials struct {
	Github   string `json:"github,omitempty"`
	Linkedin string `json:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	Website  string `json:"website,omitempty"`
}

type Service struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Github       string   `json:"github,omitempty"`
	Live         string   `json:"live,omitempty"`
	ImageID      *string  `json:"imageId"`
}

type Testimonial struct {
	Name     string `json:"name"`
	Quote    string `json:"quote"`
	Position string `json:"position"`
}

type Blog struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
}

type Contact struct {
	Message string `json:"message"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// HasSkill - регистронезависимый поиск подстроки по навыкам
func (p *Portfolio) HasSkill(sub string) bool {
	needle := strings.ToLower(sub)
	for _, s := range p.Skills {
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

// HasRole - регистронезависимый поиск подстроки по hero.title
func (p *Portfolio) HasRole(sub string) bool {
	return strings.Contains(strings.ToLower(p.Hero.Title), strings.ToLower(sub))
}

// MatchesSearch ищет подстроку в имени или должности
func (p *Portfolio) MatchesSearch(term string) bool {
	needle := strings.ToLower(term)
	return strings.Contains(strings.ToLower(p.Hero.Name), needle) ||
		strings.Contains(strings.ToLower(p.Hero.Title), needle)
}

// ImageIDs возвращает все id изображений, на которые ссылается запись
func (p *Portfolio) ImageIDs() []string {
	var ids []string
	if p.ProfileImageID != nil {
		ids = append(ids, *p.ProfileImageID)
	}
	for _, pr := range p.Projects {
		if pr.ImageID != nil {
			ids = append(ids, *pr.ImageID)
		}
	}
	return ids
}

// Clone делает глубокую копию, чтобы вызывающий не менял хранилище
func (p *Portfolio) Clone() *Portfolio {
	cp := *p
	cp.ProfileImageID = cloneString(p.ProfileImageID)
	cp.Skills = cloneSlice(p.Skills)
	cp.Services = cloneSlice(p.Services)
	cp.Testimonials = cloneSlice(p.Testimonials)
	if p.Projects != nil {
		cp.Projects = make([]Project, len(p.Projects))
		for i, pr := range p.Projects {
			pr.Technologies = cloneSlice(pr.Technologies)
			pr.ImageID = cloneString(pr.ImageID)
			cp.Projects[i] = pr
		}
	}
	if p.UpdatedAt != nil {
		t := *p.UpdatedAt
		cp.UpdatedAt = &t
	}
	return &cp
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append(make([]T, 0, len(s)), s...)
}
