package views

import (
	"fmt"
	"io"
	"strings"

	"portfolio_backend/internal/models"
	"portfolio_backend/internal/templates"

	"github.com/charmbracelet/lipgloss"
)

const pageWidth = 72

type palette struct {
	title   lipgloss.Style
	heading lipgloss.Style
	muted   lipgloss.Style
	accent  lipgloss.Style
	card    lipgloss.Style
	align   lipgloss.Position
}

func paletteFor(theme templates.Theme) palette {
	p := palette{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.HeroFrom)),
		heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.HeroTo)).MarginTop(1),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(theme.TextSecondary)),
		accent:  lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Highlight)),
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.CardBorder)).
			Padding(0, 1).
			Width(pageWidth),
		align: lipgloss.Left,
	}
	if theme.Layout == "centered" {
		p.align = lipgloss.Center
		p.card = p.card.Align(lipgloss.Center)
	}
	if theme.Typography == "serif" {
		p.title = p.title.Italic(true)
	}
	return p
}

// RenderList печатает видимые записи списка и строку "Showing X of Y"
func RenderList(w io.Writer, v *ListView) error {
	pal := paletteFor(templates.ThemeFor(templates.StyleModern))

	var b strings.Builder
	b.WriteString(pal.title.Render("Professionals"))
	b.WriteString("\n")
	if msg := v.Message(); msg != "" {
		b.WriteString(pal.accent.Render(msg))
		b.WriteString("\n")
	}
	b.WriteString(pal.muted.Render(v.Summary()))
	b.WriteString("\n")

	visible := v.Visible()
	if len(visible) == 0 {
		b.WriteString("No portfolios found\n")
	}
	for i := range visible {
		b.WriteString(listCard(pal, &visible[i]))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func listCard(pal palette, p *models.Portfolio) string {
	lines := []string{
		pal.title.Render(orDash(p.Hero.Name)) + "  " + pal.muted.Render(p.ID),
		orDash(p.Hero.Title),
	}
	if len(p.Skills) > 0 {
		lines = append(lines, pal.accent.Render(strings.Join(p.Skills, " · ")))
	}
	lines = append(lines, pal.muted.Render(fmt.Sprintf("%s · %d projects", styleName(p.Template), len(p.Projects))))
	return pal.card.Render(strings.Join(lines, "\n"))
}

// RenderDetail печатает страницу портфолио в теме его шаблона
func RenderDetail(w io.Writer, page *DetailPage) error {
	pal := paletteFor(page.Theme)

	if page.State == PageNotFound || page.Portfolio == nil {
		_, err := io.WriteString(w, pal.card.Render(
			pal.title.Render("Portfolio Not Found")+"\n"+
				"The portfolio you're looking for doesn't exist.",
		)+"\n")
		return err
	}

	p := page.Portfolio
	sections := []string{heroBlock(pal, p, page.ProfileImageURL)}

	if about := aboutBlock(p.About); about != "" {
		sections = append(sections, pal.heading.Render("About"), about)
	}
	if len(p.Skills) > 0 {
		sections = append(sections, pal.heading.Render("Skills"), pal.accent.Render(strings.Join(p.Skills, " · ")))
	}
	if len(p.Services) > 0 {
		sections = append(sections, pal.heading.Render("Services"))
		for _, s := range p.Services {
			sections = append(sections, pal.card.Render(s.Title+"\n"+pal.muted.Render(s.Description)))
		}
	}
	if len(p.Projects) > 0 {
		sections = append(sections, pal.heading.Render("Portfolio"))
		for i, pr := range p.Projects {
			sections = append(sections, projectCard(pal, pr, page.ProjectImageURLs[i]))
		}
	}
	if len(p.Testimonials) > 0 {
		sections = append(sections, pal.heading.Render("Testimonials"))
		for _, t := range p.Testimonials {
			sections = append(sections, pal.card.Render(
				fmt.Sprintf("“%s”\n%s", t.Quote, pal.muted.Render(strings.TrimSpace(t.Name+", "+t.Position))),
			))
		}
	}
	if p.Blog.Title != "" {
		sections = append(sections, pal.heading.Render("Blog"), p.Blog.Title+"\n"+pal.muted.Render(p.Blog.Summary))
	}
	if contact := contactBlock(p.Contact); contact != "" {
		sections = append(sections, pal.heading.Render("Contact"), contact)
	}

	_, err := io.WriteString(w, lipgloss.JoinVertical(pal.align, sections...)+"\n")
	return err
}

func heroBlock(pal palette, p *models.Portfolio, imageURL string) string {
	lines := []string{pal.title.Render(orDash(p.Hero.Name)), p.Hero.Title}
	if p.Hero.Tagline != "" {
		lines = append(lines, pal.muted.Render(p.Hero.Tagline))
	}
	if imageURL != "" {
		lines = append(lines, pal.muted.Render("photo: "+imageURL))
	}
	return pal.card.Render(strings.Join(lines, "\n"))
}

func aboutBlock(a models.About) string {
	var lines []string
	for _, s := range []string{a.Bio, a.Description} {
		if s != "" {
			lines = append(lines, s)
		}
	}
	for _, kv := range [][2]string{
		{"email", a.Email}, {"phone", a.Phone}, {"location", a.Location},
		{"github", a.Socials.Github}, {"linkedin", a.Socials.Linkedin},
		{"twitter", a.Socials.Twitter}, {"website", a.Socials.Website},
	} {
		if kv[1] != "" {
			lines = append(lines, kv[0]+": "+kv[1])
		}
	}
	return strings.Join(lines, "\n")
}

func projectCard(pal palette, pr models.Project, imageURL string) string {
	lines := []string{pr.Title}
	if pr.Description != "" {
		lines = append(lines, pal.muted.Render(pr.Description))
	}
	if len(pr.Technologies) > 0 {
		lines = append(lines, pal.accent.Render(strings.Join(pr.Technologies, ", ")))
	}
	if pr.Github != "" {
		lines = append(lines, "code: "+pr.Github)
	}
	if pr.Live != "" {
		lines = append(lines, "live: "+pr.Live)
	}
	if imageURL != "" {
		lines = append(lines, pal.muted.Render("image: "+imageURL))
	}
	return pal.card.Render(strings.Join(lines, "\n"))
}

func contactBlock(c models.Contact) string {
	var lines []string
	if c.Message != "" {
		lines = append(lines, c.Message)
	}
	if c.Email != "" {
		lines = append(lines, "email: "+c.Email)
	}
	if c.Phone != "" {
		lines = append(lines, "phone: "+c.Phone)
	}
	return strings.Join(lines, "\n")
}

func styleName(templateID string) string {
	return templates.StyleOf(templateID).String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
