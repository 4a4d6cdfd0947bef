// Package util provides shared building blocks for the xkcdfs filesystem.
//
// It holds the sentinel errors that travel between the router, the content
// cache and the FUSE layer, and the inode registry that gives every path a
// stable inode number for the life of the process.
//
// Errors:
//   - ErrNotFound marks absence (remote 404, out-of-range identifier, no route)
//   - ErrIO marks any other per-request failure surfaced to the kernel as EIO
//   - ErrInvalidPattern and ErrDuplicateRoute are startup configuration errors
//
// Inodes:
//   - RootInode (1) is reserved for "/"
//   - InodeForPath allocates lazily and never reuses a number
//
// Everything in this package is safe for concurrent use.
package util
