// Package buildinfo exposes version data injected at link time:
//
//	go build -ldflags "-X github.com/yndnr/rudis-go/internal/infra/buildinfo.Version=v0.3.0 \
//	  -X github.com/yndnr/rudis-go/internal/infra/buildinfo.Commit=$(git rev-parse --short HEAD)"
//
// It also records when the process started, for uptime reporting.
package buildinfo
