// Package cli implements the photorama command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/timmy/photorama/internal/app"
	"github.com/timmy/photorama/internal/config"
	"github.com/timmy/photorama/internal/domain"
	"github.com/timmy/photorama/internal/logger"
)

type rootOptions struct {
	configFile string
	method     string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "photorama",
		Short: "Fetch and cache photos from the photo feed.",
		Long: `photorama lists a page of photos from the photo feed and downloads,
decodes and caches their images on demand.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configFile, "config", os.Getenv("CONFIG_PATH"), "config file path (default ./configs/config.yaml or ./config.yaml)")
	root.PersistentFlags().StringVarP(&opts.method, "method", "m", "interesting", "feed method: interesting or recent")

	root.AddCommand(newListCmd(opts), newWarmCmd(opts))
	return root
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration and builds the app for a subcommand.
func (o *rootOptions) setup() (*app.App, domain.Method, error) {
	method, err := domain.ParseMethod(o.method)
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, "", err
	}

	log := app.NewLogger(cfg.Log)
	logger.SetDefaultLogger(log)

	a, err := app.New(cfg, log)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start: %w", err)
	}
	return a, method, nil
}
