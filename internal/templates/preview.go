package templates

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Preview рисует миниатюру шаблона для терминала
func (t Template) Preview(width int) string {
	if width < 24 {
		width = 24
	}
	theme := ThemeFor(t.Style)

	swatches := make([]string, 0, len(t.Colors))
	for _, c := range t.Colors {
		swatches = append(swatches, lipgloss.NewStyle().Background(lipgloss.Color(c)).Render("    "))
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.HeroFrom)).
		Render(t.Name)
	if t.Popular {
		title += " " + lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Highlight)).Render("★ popular")
	}

	body := lipgloss.NewStyle().Width(width - 4).Render(t.Description)
	features := "• " + strings.Join(t.Features, "\n• ")

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		strings.Join(swatches, ""),
		body,
		features,
	)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.CardBorder)).
		Padding(0, 1).
		Width(width)
	if theme.Layout == "centered" {
		box = box.Align(lipgloss.Center)
	}
	return box.Render(content)
}
