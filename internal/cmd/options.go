package cmd

import (
	"context"
	"fmt"

	metrics "github.com/rcrowley/go-metrics"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dendrascience/xkcdfs/config"
	"github.com/dendrascience/xkcdfs/content"
	"github.com/dendrascience/xkcdfs/xkcdfs"
)

// archiveOptions are the flags every command that talks to the archive takes.
// Flags explicitly set on the command line win over the config file.
type archiveOptions struct {
	configPath string
	baseURL    string
	timeout    string
	logLevel   string
}

func (o *archiveOptions) addFlags(cmd *cobra.Command) {
	defaults := config.Default()
	cmd.Flags().StringVarP(&o.configPath, "config", "c", "", "Path to a TOML config file")
	cmd.Flags().StringVar(&o.baseURL, "base-url", defaults.BaseURL, "Archive base URL")
	cmd.Flags().StringVar(&o.timeout, "timeout", defaults.Timeout, "Timeout for a single remote request")
	cmd.Flags().StringVar(&o.logLevel, "log-level", defaults.LogLevel, "Log level (debug, info, warn, error)")
}

// resolve merges defaults, the optional config file and changed flags, and
// applies the resulting log level.
func (o *archiveOptions) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.LoadConfig(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = o.baseURL
	}
	if flags.Changed("timeout") {
		cfg.Timeout = o.timeout
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, _ := log.ParseLevel(cfg.LogLevel)
	log.SetLevel(level)
	return cfg, nil
}

// newService builds the HTTP client, the cache and the route table for cfg.
func newService(ctx context.Context, cfg *config.Config, registry metrics.Registry) (*xkcdfs.Service, error) {
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	client := content.NewHTTPClient(content.MakePesterClient(timeout))
	cache := content.NewCache(client, cfg.BaseURL, registry)

	svc, err := xkcdfs.NewService(ctx, cache)
	if err != nil {
		return nil, fmt.Errorf("failed to reach %s: %w", cfg.BaseURL, err)
	}
	return svc, nil
}
