package templates

// Theme - параметры отображения страницы портфолио
type Theme struct {
	Style         Style
	Layout        string // sidebar | centered
	Typography    string // sans | serif
	HeroFrom      string
	HeroTo        string
	Accent        string
	Highlight     string
	CardBorder    string
	TextPrimary   string
	TextSecondary string
}

var themes = map[Style]Theme{
	StyleModern: {
		Style:         StyleModern,
		Layout:        "sidebar",
		Typography:    "sans",
		HeroFrom:      "#667eea",
		HeroTo:        "#764ba2",
		Accent:        "#f093fb",
		Highlight:     "#f5576c",
		CardBorder:    "#a5b4fc",
		TextPrimary:   "#ffffff",
		TextSecondary: "#e0e7ff",
	},
	StyleClassic: {
		Style:         StyleClassic,
		Layout:        "centered",
		Typography:    "serif",
		HeroFrom:      "#2c3e50",
		HeroTo:        "#34495e",
		Accent:        "#7f8c8d",
		Highlight:     "#2563eb",
		CardBorder:    "#95a5a6",
		TextPrimary:   "#2c3e50",
		TextSecondary: "#7f8c8d",
	},
}

// ThemeFor возвращает тему стиля
func ThemeFor(s Style) Theme {
	if t, ok := themes[s]; ok {
		return t
	}
	return themes[StyleModern]
}

// ThemeForTemplate выбирает тему по сохраненному id шаблона
func ThemeForTemplate(id string) Theme {
	return ThemeFor(StyleOf(id))
}
