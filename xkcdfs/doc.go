// Package xkcdfs implements a read-only FUSE filesystem over the xkcd archive.
//
// The mounted tree is flat:
//
//	/        lists "1" through the latest identifier learned at mount time
//	/<n>     a read-only file holding the image of record n
//
// Kernel requests reach a route.Dispatcher through the bazil.org/fuse nodes in
// fs.go. Three routes are registered at startup:
//
//   - READ /:identifier parses the identifier, fetches its record and image
//     through the content cache, and reports ENOENT when the archive has no
//     such record. Non-numeric names fail with EIO.
//   - LIST / names every identifier from 1 to the latest one.
//   - STAT /:identifier compares against the latest identifier without any
//     remote call. Names that are not numbers are reported as existing; only
//     READ rejects them.
//
// Records and images are cached for the life of the process.
package xkcdfs
