// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Cinedual is the canonical application identifier used for filesystem paths and CLI branding.
	Cinedual = "cinedual"

	// Version is the current application semantic version string.
	Version = "0.1.0"
)
