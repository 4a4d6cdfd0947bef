// Package main provides the xkcdfs command-line interface.
//
// xkcdfs is a read-only FUSE filesystem that exposes the xkcd archive as a
// flat directory. Every comic is a file named by its number; its content is
// the comic image, fetched on first read and kept in memory for the life of
// the mount.
//
// The main binary supports multiple subcommands:
//   - mount: Mount the archive at a specified mountpoint
//   - ls: List a path through the same dispatcher a mount uses
//   - stat: Check whether a path exists
//   - cat: Print or save a file's content
package main
