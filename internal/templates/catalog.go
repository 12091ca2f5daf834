// Package templates holds the static catalog of portfolio templates and the
// display themes derived from them.
package templates

import "strings"

// Style - визуальный стиль шаблона
type Style int

const (
	StyleModern Style = iota
	StyleClassic
)

func (s Style) String() string {
	switch s {
	case StyleClassic:
		return "classic"
	default:
		return "modern"
	}
}

// Template - описание шаблона в каталоге
type Template struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Colors      []string `json:"colors"`
	Popular     bool     `json:"popular"`
	Style       Style    `json:"-"`
	StyleTag    string   `json:"style"`
}

// DefaultID используется, когда шаблон не выбран
const DefaultID = "modern"

var catalog = []Template{
	{
		ID:          "modern",
		Name:        "Modern Professional",
		Description: "Dynamic layout with sidebar navigation, glass morphism effects, and modern grid system",
		Features:    []string{"Sidebar Navigation", "Glass Morphism", "Grid Layout", "Modern Icons"},
		Colors:      []string{"#667eea", "#764ba2", "#f093fb", "#f5576c"},
		Popular:     true,
		Style:       StyleModern,
		StyleTag:    StyleModern.String(),
	},
	{
		ID:          "classic",
		Name:        "Classic Elegant",
		Description: "Centered layout with traditional typography, clean sections, and professional structure",
		Features:    []string{"Centered Layout", "Serif Typography", "Clean Sections", "Professional Design"},
		Colors:      []string{"#2c3e50", "#34495e", "#7f8c8d", "#95a5a6"},
		Popular:     false,
		Style:       StyleClassic,
		StyleTag:    StyleClassic.String(),
	},
}

// Catalog возвращает копию каталога в порядке отображения
func Catalog() []Template {
	out := make([]Template, len(catalog))
	for i, t := range catalog {
		t.Features = append([]string(nil), t.Features...)
		t.Colors = append([]string(nil), t.Colors...)
		out[i] = t
	}
	return out
}

// Lookup ищет шаблон по id
func Lookup(id string) (Template, bool) {
	for _, t := range Catalog() {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// StyleOf возвращает стиль для сохраненного id шаблона.
// Пустой или неизвестный id дает StyleModern.
func StyleOf(id string) Style {
	if t, ok := Lookup(strings.ToLower(strings.TrimSpace(id))); ok {
		return t.Style
	}
	return StyleModern
}
