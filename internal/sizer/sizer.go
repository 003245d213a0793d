// Package sizer turns an effective CPU count into a worker count.
//
// The resolver answers "how many CPUs do we have"; this package answers
// "how many workers should we start", which is a policy question: explicit
// overrides, watch mode, and in-band runs all adjust the number.
package sizer

import (
	"strconv"
	"strings"
)

// Options are the run-mode knobs layered on top of the resolved CPU count.
type Options struct {
	// Workers is an explicit override: an absolute count ("4") or a
	// percentage of the available CPUs ("50%"). Empty means derive the
	// count from the environment. An unparseable value is ignored.
	Workers string

	// InBand forces a single worker. It beats every other option.
	InBand bool

	// Watch halves the derived count, leaving CPUs free for the main
	// process and whatever triggered the watch. It does not apply to an
	// explicit absolute override.
	Watch bool
}

// Count returns the number of workers to start given avail usable CPUs.
// The answer is always >= 1.
func Count(avail int, opts Options) int {
	if avail < 1 {
		avail = 1
	}
	if opts.InBand {
		return 1
	}

	if n, isPct, ok := parseWorkers(opts.Workers); ok {
		if isPct {
			// floor, per "50% of 5 CPUs is 2 workers"
			return clamp(avail * n / 100)
		}
		// An explicit absolute count is taken as-is; the caller said
		// what they want, watch mode does not second-guess it.
		return clamp(n)
	}

	n := avail
	if opts.Watch {
		n /= 2
	}
	return clamp(n)
}

// parseWorkers splits the Workers option into a value and whether it is a
// percentage. ok is false for empty, non-numeric, or non-positive input.
func parseWorkers(s string) (n int, isPct bool, ok bool) {
	if s == "" {
		return 0, false, false
	}
	if pct, found := strings.CutSuffix(s, "%"); found {
		v, err := strconv.Atoi(pct)
		if err != nil || v <= 0 {
			return 0, false, false
		}
		return v, true, true
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return 0, false, false
	}
	return v, false, true
}

func clamp(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
