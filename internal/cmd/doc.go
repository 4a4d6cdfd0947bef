// Package cmd provides the command-line interface implementation for xkcdfs.
//
// It uses the Cobra library for command structure and Fang for styling.
//
// The package is organized into the following commands:
//   - root: Main command coordinator and entry point
//   - mount: FUSE filesystem mounting functionality
//   - ls, stat, cat: Mountless access to the same routes, for scripting and debugging
//
// Each command is implemented with its own constructor function that returns a
// *cobra.Command. Every command that talks to the archive shares the same
// flags (--config, --base-url, --timeout, --log-level); flags given on the
// command line override values from the TOML config file.
package cmd
