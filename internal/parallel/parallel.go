// Package parallel resolves the number of CPUs the current process can
// actually use, accounting for container CPU quotas.
//
// Inside a container started with --cpus=2 on a 64-core host the OS still
// reports 64 logical CPUs, so a worker pool sized from that number
// over-provisions by a factor of 32 and gets throttled. This package reads
// the cgroup CPU quota (v2 first, then v1) and only falls back to the
// OS-reported CPU count when no quota applies.
//
// Resolution is best-effort and never fails: every unreadable or malformed
// signal is skipped, and when nothing at all is available the answer is 1.
package parallel

import "sync"

// Source records which signal produced a resolved value. It exists for
// diagnostics and tests; callers should not branch on it.
type Source int

const (
	// SourceFallback means no signal was available; the count is 1.
	SourceFallback Source = iota

	// SourceCgroupV2 means the count came from the unified-hierarchy
	// cpu.max quota.
	SourceCgroupV2

	// SourceCgroupV1 means the count came from the legacy
	// cpu.cfs_quota_us / cpu.cfs_period_us pair.
	SourceCgroupV1

	// SourceOSReported means no quota applied and the count is the number
	// of logical CPUs the OS reports as visible to this process.
	SourceOSReported
)

// String returns the source name used in logs and JSON output.
func (s Source) String() string {
	switch s {
	case SourceCgroupV2:
		return "cgroup-v2"
	case SourceCgroupV1:
		return "cgroup-v1"
	case SourceOSReported:
		return "os"
	default:
		return "fallback"
	}
}

// Parallelism is a resolved effective CPU count. Count is always >= 1.
type Parallelism struct {
	Count  int
	Source Source
}

// Resolver probes an ordered list of signals and takes the first hit.
// The zero value is not usable; call NewResolver.
type Resolver struct {
	// cgroupRoot is where the cgroup filesystem is mounted,
	// usually /sys/fs/cgroup. Overridden in tests.
	cgroupRoot string

	// numCPU reports the logical CPUs visible to this process.
	// Overridden in tests.
	numCPU func() int
}

// NewResolver creates a resolver that reads the real cgroup mount and the
// real OS CPU count.
func NewResolver() *Resolver {
	return &Resolver{
		cgroupRoot: cgroupRoot,
		numCPU:     numCPU,
	}
}

// Resolve returns the effective parallelism for the current environment.
// It never fails; when every signal is absent it returns {1, SourceFallback}.
//
// The probe order encodes precedence: the v2 unified hierarchy is the
// modern interface and wins over v1 when both are mounted.
func (r *Resolver) Resolve() Parallelism {
	probes := []func() (Parallelism, bool){
		r.probeCgroupV2,
		r.probeCgroupV1,
		r.probeOS,
	}
	for _, probe := range probes {
		if p, ok := probe(); ok {
			return p
		}
	}
	return Parallelism{Count: 1, Source: SourceFallback}
}

// probeOS reports the logical CPU count the OS exposes to this process.
func (r *Resolver) probeOS() (Parallelism, bool) {
	if n := r.numCPU(); n > 0 {
		return Parallelism{Count: n, Source: SourceOSReported}, true
	}
	return Parallelism{}, false
}

var (
	resolveOnce sync.Once
	resolved    Parallelism
)

// Resolve returns the process-wide effective parallelism.
//
// The result is computed once and memoized: cgroup limits do not change
// within a process's lifetime in the common case, and probing is a handful
// of small file reads that callers should not repeat per task. Concurrent
// first callers are safe; all of them observe the same value.
func Resolve() Parallelism {
	resolveOnce.Do(func() {
		resolved = NewResolver().Resolve()
	})
	return resolved
}
