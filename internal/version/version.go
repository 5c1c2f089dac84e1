// Package version carries build identity, stamped via -ldflags.
package version

var (
	AppName = "watchtower"
	Version = "dev"
)
