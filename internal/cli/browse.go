package cli

import (
	"fmt"

	"portfolio_backend/internal/templates"
	"portfolio_backend/internal/validator"
	"portfolio_backend/internal/views"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newTemplatesCommand(opts *rootOptions) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Show the template catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := templates.Catalog()
			if remote {
				var err error
				list, err = opts.client().Templates(cmd.Context())
				if err != nil {
					return err
				}
			}
			for _, t := range list {
				// у шаблона с сервера стиль приходит только строкой
				t.Style = templates.StyleOf(t.ID)
				fmt.Fprintf(cmd.OutOrStdout(), "%s  (%s)\n%s\n\n", t.ID, t.StyleTag, t.Preview(48))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "fetch the catalog from the API")
	return cmd
}

func newListCommand(opts *rootOptions) *cobra.Command {
	var q views.Query
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List portfolios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q.Filter = views.FilterKind(filter)
			if err := validator.New().Validate(&q); err != nil {
				return err
			}

			lv := views.NewListView(opts.client())
			if err := lv.Load(cmd.Context()); err != nil {
				return err
			}
			lv.Apply(q)
			return views.RenderList(cmd.OutOrStdout(), lv)
		},
	}
	cmd.Flags().StringVar(&q.Search, "search", "", "search by name or title")
	cmd.Flags().StringVar(&filter, "filter", string(views.FilterAll), "filter type: all, skills or role")
	cmd.Flags().StringVar(&q.Value, "value", "", "filter value")
	return cmd
}

func newShowCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Render a portfolio page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := opts.client()
			page := views.NewDetailView(c, c.BaseURL()).Load(cmd.Context(), args[0])
			if err := views.RenderDetail(cmd.OutOrStdout(), page); err != nil {
				return err
			}
			if page.State == views.PageNotFound {
				return errors.Errorf("portfolio %s not found", args[0])
			}
			return nil
		},
	}
}

func newDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a portfolio and its images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lv := views.NewListView(opts.client())
			if err := lv.Delete(cmd.Context(), args[0]); err != nil {
				return errors.New(lv.Message())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Portfolio deleted successfully\n%s\n", lv.Summary())
			return nil
		},
	}
}
