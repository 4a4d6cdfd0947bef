package cmd

import (
	"fmt"
	"os"

	metrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"

	"github.com/dendrascience/xkcdfs/route"
)

// dispatcherFor resolves the archive flags and returns a ready dispatcher.
func dispatcherFor(cmd *cobra.Command, opts *archiveOptions) (*route.Dispatcher, error) {
	cfg, err := opts.resolve(cmd)
	if err != nil {
		return nil, err
	}
	svc, err := newService(cmd.Context(), cfg, metrics.NewRegistry())
	if err != nil {
		return nil, err
	}
	return svc.Dispatcher(), nil
}

// NewLsCmd creates the ls subcommand, which lists a path without mounting.
func NewLsCmd() *cobra.Command {
	opts := &archiveOptions{}
	cmd := &cobra.Command{
		Use:   "ls [PATH]",
		Short: "List the entries under a path",
		Long: `List the entries under PATH (default "/") exactly as a mount would
show them, one name per line.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/"
			if len(args) == 1 {
				path = args[0]
			}
			d, err := dispatcherFor(cmd, opts)
			if err != nil {
				return err
			}
			names, err := d.List(cmd.Context(), path)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
	opts.addFlags(cmd)
	return cmd
}

// NewStatCmd creates the stat subcommand. A missing path is reported as an
// error so the exit status reflects it.
func NewStatCmd() *cobra.Command {
	opts := &archiveOptions{}
	cmd := &cobra.Command{
		Use:   "stat PATH",
		Short: "Report whether a path exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dispatcherFor(cmd, opts)
			if err != nil {
				return err
			}
			exists, err := d.Stat(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !exists {
				return fmt.Errorf("%s: no such file", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: exists\n", args[0])
			return nil
		},
	}
	opts.addFlags(cmd)
	return cmd
}

// NewCatCmd creates the cat subcommand, which writes a file's content to
// stdout or to --output.
func NewCatCmd() *cobra.Command {
	opts := &archiveOptions{}
	var output string
	cmd := &cobra.Command{
		Use:   "cat PATH",
		Short: "Print the content of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := dispatcherFor(cmd, opts)
			if err != nil {
				return err
			}
			data, err := d.Read(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if output != "" {
				return os.WriteFile(output, data, 0o644)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	opts.addFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}
