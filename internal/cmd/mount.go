package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/google/uuid"
	metrics "github.com/rcrowley/go-metrics"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dendrascience/xkcdfs/config"
	"github.com/dendrascience/xkcdfs/util"
	"github.com/dendrascience/xkcdfs/version"
	"github.com/dendrascience/xkcdfs/xkcdfs"
)

type mountOptions struct {
	archiveOptions
	metricsInterval string
	allowOther      bool
}

// NewMountCmd creates and returns the mount subcommand for the xkcdfs CLI.
// It handles mounting the archive at a specified mountpoint.
func NewMountCmd() *cobra.Command {
	opts := &mountOptions{}
	cmd := &cobra.Command{
		Use:   "mount MOUNTPOINT",
		Short: "Mount the xkcd archive",
		Long: `Mount the xkcd archive at the specified mountpoint.

MOUNTPOINT is the directory where the filesystem will be mounted. The
latest comic number is fetched once before mounting; the mount fails if
the archive cannot be reached.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runMount(cmd, opts, args[0])
		},
	}
	opts.addFlags(cmd)
	return cmd
}

func (o *mountOptions) addFlags(cmd *cobra.Command) {
	o.archiveOptions.addFlags(cmd)
	cmd.Flags().StringVar(&o.metricsInterval, "metrics-interval", "", "Log cache metrics at this interval (e.g. 1m); empty disables")
	cmd.Flags().BoolVar(&o.allowOther, "allow-other", false, "Allow other users to access the mount")
}

// resolve layers the mount-only flags over the shared ones.
func (o *mountOptions) resolve(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := o.archiveOptions.resolve(cmd)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("metrics-interval") {
		cfg.MetricsInterval = o.metricsInterval
	}
	if cmd.Flags().Changed("allow-other") {
		cfg.AllowOther = o.allowOther
	}
	return cfg, cfg.Validate()
}

func mountOptionsFor(cfg *config.Config) []fuse.MountOption {
	options := []fuse.MountOption{
		fuse.FSName("xkcdfs"),
		fuse.Subtype("xkcdfs"),
		fuse.ReadOnly(),
	}
	if cfg.AllowOther {
		options = append(options, fuse.AllowOther())
	}
	return options
}

func runMount(cmd *cobra.Command, opts *mountOptions, mountpoint string) {
	// Print version info on startup
	fmt.Printf("xkcdfs %s starting...\n", version.GetFullVersion())

	cfg, err := opts.resolve(cmd)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	interval, _ := cfg.MetricsIntervalDuration()

	logger := log.WithFields(log.Fields{
		"session":    uuid.New().String(),
		"mountpoint": mountpoint,
		"base_url":   cfg.BaseURL,
	})

	registry := metrics.NewRegistry()
	registry.GetOrRegister("fs.inodes", metrics.NewFunctionalGauge(func() int64 {
		return int64(util.InodeRegistrySize())
	}))
	svc, err := newService(cmd.Context(), cfg, registry)
	if err != nil {
		logger.Fatal(err)
	}
	filesystem := xkcdfs.NewFS(svc.Dispatcher())

	c, err := fuse.Mount(mountpoint, mountOptionsFor(cfg)...)
	if err != nil {
		logger.Fatal(err)
	}
	defer c.Close()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		sig := <-sigChan
		logger.Infof("Received %v, unmounting...", sig)
		if err := fuse.Unmount(mountpoint); err != nil {
			logger.Errorf("Unmount failed: %v", err)
		}
	}()

	if interval > 0 {
		go metrics.Log(registry, interval, logger)
	}

	logger.WithField("latest", svc.Latest().Num).Infof("xkcdfs %s mounted", version.GetVersion())
	if err := fs.Serve(c, filesystem); err != nil {
		logger.Fatal(err)
	}

	metrics.WriteOnce(registry, os.Stderr)
	logger.Info("Shutdown complete")
}
