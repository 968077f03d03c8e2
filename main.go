package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/metrics"
	"github.com/Zachkp/portfolio/internal/projects"
	"github.com/Zachkp/portfolio/internal/server"
	"github.com/Zachkp/portfolio/internal/view"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "portfolio",
		Short:        "Personal portfolio site",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newRenderCmd(), newCheckCmd())
	return root
}

// loadSite returns the content at path, or the built-in content when path
// is empty.
func loadSite(path string) (*content.Site, error) {
	if path == "" {
		return content.Default()
	}
	return content.Load(path)
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}

			site, err := loadSite(cfg.ContentPath)
			if err != nil {
				return err
			}

			deps := server.Deps{Submitter: contact.Discard{}}
			if cfg.SMTP.Enabled() {
				deps.Submitter = contact.NewMailer(cfg.SMTP)
				log.Printf("Contact form delivers to %s via %s", cfg.SMTP.To, cfg.SMTP.Host)
			}

			if cfg.TrackingEnabled || cfg.AdminEnabled() {
				store, err := metrics.Open(cfg.MetricsDB)
				if err != nil {
					return err
				}
				defer store.Close()
				deps.Store = store
			}

			srv, err := server.New(cfg, site, deps)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}
}

func newRenderCmd() *cobra.Command {
	var (
		contentPath string
		output      string
		category    string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the page to a static HTML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := loadSite(contentPath)
			if err != nil {
				return err
			}

			gallery := projects.NewGallery(site)
			if category != "" && !gallery.Select(category) {
				return fmt.Errorf("unknown category %q (have %v)", category, site.Categories)
			}

			tmpl, err := view.Templates()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				out = f
			}

			return view.Render(tmpl, out, "index.html", view.NewPage(site, gallery, view.ContactForm{}))
		},
	}

	cmd.Flags().StringVar(&contentPath, "content", os.Getenv("CONTENT_PATH"), "content YAML file (default: built-in)")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")
	cmd.Flags().StringVar(&category, "category", "", "preselected project category")
	return cmd
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <content.yaml>",
		Short: "Validate a content file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := content.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d timeline entries, %d projects, categories %v)\n",
				args[0], len(site.Timeline), len(site.Projects), site.Categories)
			return nil
		},
	}
}
