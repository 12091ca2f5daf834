// Package cli implements portfolioctl: the API server plus terminal
// versions of the builder, list and detail pages.
package cli

import (
	"errors"
	"os"
	"time"

	"portfolio_backend/internal/client"
	"portfolio_backend/internal/config"
	"portfolio_backend/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	apiURL  string
	timeout time.Duration
	cfg     *config.Config
}

// NewRootCommand собирает дерево команд
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "portfolioctl",
		Short: "Build, browse and serve developer portfolios",
		Long: `portfolioctl runs the portfolio API server and talks to it:
create portfolios from a JSON draft, list and filter them, and render a
portfolio page in the terminal using its template theme.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			opts.cfg = cfg
			logger.InitTo(cfg.Server.Env, cmd.ErrOrStderr())

			if opts.apiURL == "" {
				opts.apiURL = cfg.Client.BaseURL
			}
			if opts.timeout == 0 {
				opts.timeout = cfg.Client.Timeout()
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.apiURL, "api", "", "API base URL (default from config client.base_url)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "HTTP timeout (default from config client.timeout_seconds)")

	cmd.AddCommand(
		newServeCommand(opts),
		newTemplatesCommand(opts),
		newListCommand(opts),
		newShowCommand(opts),
		newDeleteCommand(opts),
		newCreateCommand(opts),
	)
	return cmd
}

// Execute запускает CLI
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func (o *rootOptions) client() *client.Client {
	return client.New(o.apiURL, o.timeout)
}
