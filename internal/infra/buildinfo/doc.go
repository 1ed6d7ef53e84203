// Package buildinfo provides build information for redikv.
//
// Version, Commit and BuildTime are injected via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/redikv/internal/infra/buildinfo.Version=v0.3.0 \
//	  -X github.com/yndnr/redikv/internal/infra/buildinfo.Commit=$(git rev-parse --short HEAD)"
//
// When they are not injected, Get falls back to the VCS stamp the Go
// toolchain embeds in module builds.
package buildinfo
