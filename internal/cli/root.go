// Package cli implements catalogctl, a terminal client for the catalog gateway that shares the
// resolver, filter and rating logic with the web service.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/echoverse/echo-web/internal/catalog"
	"github.com/echoverse/echo-web/internal/gateway"
	"github.com/echoverse/echo-web/internal/logger"
	"github.com/echoverse/echo-web/internal/service"
)

// Version information, set at build time using ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
)

const relatedLimit = 8

// options holds the persistent flags. Zero values defer to the config file.
type options struct {
	configPath string
	gatewayURL string
	timeout    time.Duration
	output     string
	logLevel   string
}

// app is the state shared by every command once flags and config are resolved.
type app struct {
	out     io.Writer
	format  string
	logger  *slog.Logger
	client  *gateway.Client
	catalog *service.CatalogService
}

// NewRootCommand builds the catalogctl command tree writing to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	opts := &options{}
	a := &app{out: out}

	root := &cobra.Command{
		Use:   "catalogctl",
		Short: "Browse the Echo catalog from a terminal",
		Long: `catalogctl talks to the Echo gateway and resolves categories and items the same way
the web front end does: slugs, ratings, filters, sorting and breadcrumbs.

Settings come from flags, then catalogctl.yaml (or $CATALOGCTL_CONFIG), then defaults.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup(opts)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.client != nil {
				a.client.Close()
			}
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file (default: ./catalogctl.yaml)")
	flags.StringVar(&opts.gatewayURL, "gateway-url", "", "Gateway API base URL")
	flags.DurationVar(&opts.timeout, "timeout", 0, "Gateway request timeout")
	flags.StringVarP(&opts.output, "output", "o", "", "Output format: table or json")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(
		newCategoriesCommand(a),
		newItemsCommand(a),
		newShowCommand(a),
		newSearchCommand(a),
		newBreadcrumbCommand(a),
		newStatsCommand(a),
		newVersionCommand(a),
	)
	return root
}

// Execute runs catalogctl with os.Args and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) setup(opts *options) error {
	cfg, err := LoadFileConfig(opts.configPath)
	if err != nil {
		return err
	}

	a.format = firstNonEmpty(opts.output, cfg.Output)
	if a.format != "table" && a.format != "json" {
		return fmt.Errorf("unknown output format %q (want table or json)", a.format)
	}

	a.logger = logger.New(logger.Config{
		Writer: os.Stderr,
		Level:  logger.ParseLevel(firstNonEmpty(opts.logLevel, cfg.LogLevel)),
	}).Logger

	timeout := cfg.Gateway.Timeout
	if opts.timeout > 0 {
		timeout = opts.timeout
	}

	a.client, err = gateway.New(gateway.Options{
		BaseURL:   firstNonEmpty(opts.gatewayURL, cfg.Gateway.URL),
		Timeout:   timeout,
		RPS:       cfg.Gateway.RPS,
		Burst:     cfg.Gateway.Burst,
		UserAgent: "catalogctl/" + Version,
	}, a.logger)
	if err != nil {
		return err
	}

	a.catalog = service.NewCatalogService(a.client, catalog.NewResolver(a.client, a.logger), service.CatalogOptions{RelatedLimit: relatedLimit}, a.logger)
	return nil
}

func (a *app) context(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
