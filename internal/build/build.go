// Package build holds version metadata injected at link time:
//
//	go build -ldflags "-X go.trai.ch/restore/internal/build.Version=v1.2.3"
package build

// Build metadata. The defaults identify a development build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
