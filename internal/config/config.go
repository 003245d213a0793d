// Package config defines runtime configuration for corecap.
package config

// Config holds all settings passed in via CLI flags or environment variables.
type Config struct {
	// Workers is an explicit worker-count override: absolute ("4") or a
	// percentage of available CPUs ("50%"). Empty derives the count.
	Workers string

	// InBand forces a single worker.
	InBand bool

	// Watch enables watch-mode sizing (half the available CPUs).
	Watch bool

	// ShowSource also prints which signal produced the CPU count.
	ShowSource bool

	// JSON emits machine-readable output.
	JSON bool

	// Verbose logs each probe's outcome.
	Verbose bool
}
