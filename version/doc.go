// Package version provides version information and build metadata for xkcdfs.
//
// Version information comes from, in order of preference:
//   - Compile-time variables (Version, Commit, Date) set via -ldflags
//   - Runtime build info from debug.ReadBuildInfo()
//   - Fallback defaults for development builds
//
// The package provides multiple version formats:
//   - GetVersion(): Simple version string
//   - GetFullVersion(): Formatted version with commit and build date
//   - GetInfo(): Complete version information as a struct
//   - UserAgent(): The User-Agent sent to the archive
//   - PrintVersion(): Human-readable version output
//
// Release builds set the variables with:
//
//	go build -ldflags "-X github.com/dendrascience/xkcdfs/version.Version=v1.0.0 -X github.com/dendrascience/xkcdfs/version.Commit=abc123 -X github.com/dendrascience/xkcdfs/version.Date=2023-01-01T00:00:00Z"
package version
