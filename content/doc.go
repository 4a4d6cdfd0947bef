// Package content fetches and memoizes archive records and their images.
//
// Two tables back the cache: records keyed by Ref (a numeric identifier or
// the Latest sentinel) and blobs keyed by URL. Both are filled on first
// successful fetch and kept for the life of the process. A remote not-found
// is returned as util.ErrNotFound and never cached.
//
// The remote API is consumed as:
//
//	GET {base}/info.0.json        most recent record
//	GET {base}/{n}/info.0.json    record n, 404 when absent
//	GET {img}                     raw image bytes
//
// HTTPClient is the production Client; it speaks through a pester client
// configured for a single attempt.
package content
