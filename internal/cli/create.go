package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"portfolio_backend/internal/client"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/internal/templates"
	"portfolio_backend/internal/validator"
	"portfolio_backend/internal/wizard"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// draft - черновик портфолио в том же JSON, что принимает API
type draft struct {
	Hero         models.Hero          `json:"hero"`
	About        models.About         `json:"about"`
	Skills       []string             `json:"skills"`
	Services     []models.Service     `json:"services"`
	Projects     []dto.ProjectPayload `json:"portfolio"`
	Testimonials []models.Testimonial `json:"testimonials"`
	Blog         models.Blog          `json:"blog"`
	Contact      models.Contact       `json:"contact"`
	Template     string               `json:"template" validate:"omitempty,is-template-id"`
}

func newCreateCommand(opts *rootOptions) *cobra.Command {
	var dataPath, templateID, profilePath string
	var projectImages []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a portfolio from a JSON draft",
		Example: `  portfolioctl create --data jane.json --template classic \
    --profile-image me.jpg --project-image 0=shop.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(dataPath)
			if err != nil {
				return errors.Wrapf(err, "failed to read draft %s", dataPath)
			}
			var d draft
			if err := json.Unmarshal(raw, &d); err != nil {
				return errors.Wrapf(err, "failed to parse draft %s", dataPath)
			}
			if templateID != "" {
				d.Template = templateID
			}
			if d.Template == "" {
				d.Template = templates.DefaultID
			}
			if err := validator.New().Validate(&d); err != nil {
				return err
			}

			w := wizard.New(opts.client())
			if err := fillWizard(w, &d); err != nil {
				return err
			}
			if err := attachImages(w, profilePath, projectImages); err != nil {
				return err
			}

			outcome, err := w.Submit(cmd.Context())
			if err != nil {
				return errors.New(w.LastError())
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Portfolio created: %s\n", outcome.Portfolio.ID)
			fmt.Fprintf(out, "next: %s, then %s in %s\n", outcome.Route, outcome.RedirectTo, outcome.RedirectAfter)
			return nil
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "path to the portfolio JSON draft")
	cmd.Flags().StringVar(&templateID, "template", "", "template id (overrides the draft)")
	cmd.Flags().StringVar(&profilePath, "profile-image", "", "profile image file")
	cmd.Flags().StringArrayVar(&projectImages, "project-image", nil, "project image as index=path, repeatable")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

// fillWizard проходит все шаги мастера и заполняет их из черновика
func fillWizard(w *wizard.Wizard, d *draft) error {
	if err := w.SelectTemplate(d.Template); err != nil {
		return err
	}
	if err := w.Enter(); err != nil {
		return err
	}

	for {
		step := w.Step()
		logger.Debug("wizard step", "step", step.String())
		if err := fillStep(w, step, d); err != nil {
			return errors.Wrapf(err, "step %s", step)
		}
		if step == wizard.StepContact {
			return nil
		}
		w.Next()
	}
}

func fillStep(w *wizard.Wizard, step wizard.Step, d *draft) error {
	switch step {
	case wizard.StepHero:
		return setFields(w, "hero", map[string]string{
			"name": d.Hero.Name, "title": d.Hero.Title, "tagline": d.Hero.Tagline,
		})

	case wizard.StepAbout:
		a := d.About
		if err := setFields(w, "about", map[string]string{
			"bio": a.Bio, "description": a.Description, "email": a.Email, "phone": a.Phone, "location": a.Location,
		}); err != nil {
			return err
		}
		for field, v := range map[string]string{
			"github": a.Socials.Github, "linkedin": a.Socials.Linkedin, "twitter": a.Socials.Twitter, "website": a.Socials.Website,
		} {
			if err := w.SetNestedField("about", "socials", field, v); err != nil {
				return err
			}
		}

	case wizard.StepSkills:
		for i, s := range d.Skills {
			if i > 0 {
				w.AddSkill()
			}
			if err := w.SetSkill(i, s); err != nil {
				return err
			}
		}

	case wizard.StepServices:
		if len(d.Services) > wizard.ServiceSlots {
			return errors.Errorf("at most %d services", wizard.ServiceSlots)
		}
		for i, s := range d.Services {
			if err := w.SetServiceField(i, "title", s.Title); err != nil {
				return err
			}
			if err := w.SetServiceField(i, "description", s.Description); err != nil {
				return err
			}
		}

	case wizard.StepPortfolio:
		if len(d.Projects) > wizard.ProjectSlots {
			return errors.Errorf("at most %d projects", wizard.ProjectSlots)
		}
		for i, p := range d.Projects {
			for field, v := range map[string]string{
				"title": p.Title, "description": p.Description, "github": p.Github, "live": p.Live,
			} {
				if err := w.SetProjectField(i, field, v); err != nil {
					return err
				}
			}
			if err := w.SetProjectTechnologies(i, p.Technologies); err != nil {
				return err
			}
		}

	case wizard.StepTestimonials:
		if len(d.Testimonials) > wizard.MaxTestimonials {
			return errors.Errorf("at most %d testimonials", wizard.MaxTestimonials)
		}
		for i, t := range d.Testimonials {
			if i > 0 {
				w.AddTestimonial()
			}
			for field, v := range map[string]string{"name": t.Name, "quote": t.Quote, "position": t.Position} {
				if err := w.SetTestimonialField(i, field, v); err != nil {
					return err
				}
			}
		}

	case wizard.StepBlog:
		return setFields(w, "blog", map[string]string{"title": d.Blog.Title, "summary": d.Blog.Summary})

	case wizard.StepContact:
		return setFields(w, "contact", map[string]string{
			"message": d.Contact.Message, "email": d.Contact.Email, "phone": d.Contact.Phone,
		})
	}
	return nil
}

func setFields(w *wizard.Wizard, section string, fields map[string]string) error {
	for field, v := range fields {
		if err := w.SetField(section, field, v); err != nil {
			return err
		}
	}
	return nil
}

func attachImages(w *wizard.Wizard, profilePath string, projectImages []string) error {
	if profilePath != "" {
		f, err := readImage(profilePath)
		if err != nil {
			return err
		}
		if err := w.SetImage(wizard.ProfileImage, f); err != nil {
			return errors.Wrap(err, profilePath)
		}
	}

	for _, spec := range projectImages {
		idx, path, ok := strings.Cut(spec, "=")
		if !ok {
			return errors.Errorf("invalid --project-image %q: want index=path", spec)
		}
		i, err := strconv.Atoi(idx)
		if err != nil {
			return errors.Wrapf(err, "invalid project index in %q", spec)
		}
		f, err := readImage(path)
		if err != nil {
			return err
		}
		if err := w.SetImage(wizard.ProjectImage(i), f); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func readImage(path string) (*client.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read image %s", path)
	}
	mt := mimetype.Detect(data)
	return &client.File{
		Name:        filepath.Base(path),
		ContentType: strings.SplitN(mt.String(), ";", 2)[0],
		Data:        data,
	}, nil
}
