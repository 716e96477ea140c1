// Command sheetctl inspects the portfolio spreadsheet: it fetches tables,
// maps them the way the API does and reports rows that would be dropped.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"

	"github.com/twoong-studio/portfolio-backend/config"
	"github.com/twoong-studio/portfolio-backend/internal/portfolio/service"
	"github.com/twoong-studio/portfolio-backend/internal/portfolio/sheets"
)

type options struct {
	baseURL string
	gids    map[string]string
	timeout time.Duration
	verbose bool

	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "sheetctl",
		Short:         "Inspect the portfolio spreadsheet",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logCfg := zap.NewProductionConfig()
			logCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if opts.verbose {
				logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			opts.logger, err = logCfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.baseURL, "base-url", "", "published spreadsheet URL (default SHEET_BASE_URL)")
	flags.StringToStringVar(&opts.gids, "gid", nil, "table=gid pairs, merged over SHEET_GID_*")
	flags.DurationVar(&opts.timeout, "timeout", 0, "per-request timeout (default FETCH_TIMEOUT)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newFetchCmd(opts), newValidateCmd(opts))
	return root
}

// service builds a content service over the HTTP fetcher. Settings come
// from the environment (and .env) the way cmd/api reads them; flags win.
func (o *options) service() (*service.ContentService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	baseURL := cfg.Sheets.BaseURL
	if o.baseURL != "" {
		baseURL = o.baseURL
	}
	tabs := make(sheets.Tabs, len(cfg.Sheets.GIDs)+len(o.gids))
	for t, gid := range cfg.Sheets.GIDs {
		tabs[t] = gid
	}
	for name, gid := range o.gids {
		t, err := sheets.ParseTable(name)
		if err != nil {
			return nil, err
		}
		tabs[t] = gid
	}
	timeout := cfg.Sheets.Timeout
	if o.timeout > 0 {
		timeout = o.timeout
	}

	fetcher := sheets.NewHTTPFetcher(sheets.HTTPFetcherConfig{
		BaseURL:   baseURL,
		Tabs:      tabs,
		Timeout:   timeout,
		RateLimit: rate.Limit(cfg.Sheets.RateLimit),
		Burst:     1,
	}, o.logger)
	return service.NewContentService(fetcher, o.logger), nil
}
