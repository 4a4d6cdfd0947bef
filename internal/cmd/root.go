package cmd

import (
	"github.com/dendrascience/xkcdfs/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the xkcdfs CLI.
// It sets up all subcommands, command groups, and basic configuration.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xkcdfs",
		Short: "xkcdfs - A read-only FUSE filesystem over the xkcd archive",
		Long: `xkcdfs mounts the xkcd archive as a flat, read-only directory.

Every comic appears as a file named by its number; reading the file
downloads the image on first access and serves it from memory afterwards.

Use subcommands to perform different operations:
  - mount: Mount the archive at a specified mountpoint
  - ls: List a path without mounting
  - stat: Check whether a path exists without mounting
  - cat: Print a file's content without mounting`,
		Version:      version.GetFullVersion(),
		SilenceUsage: true,
	}

	groupUtilities := "utilities"
	groupFilesystem := "filesystem"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupFilesystem,
		Title: "Filesystem Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	mountCmd := NewMountCmd()
	lsCmd := NewLsCmd()
	statCmd := NewStatCmd()
	catCmd := NewCatCmd()
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print detailed version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			version.PrintVersion(cmd.OutOrStdout())
		},
	}

	mountCmd.GroupID = groupFilesystem
	lsCmd.GroupID = groupUtilities
	statCmd.GroupID = groupUtilities
	catCmd.GroupID = groupUtilities
	versionCmd.GroupID = groupUtilities

	rootCmd.AddCommand(mountCmd)
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(statCmd)
	rootCmd.AddCommand(catCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}
