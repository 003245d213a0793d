// cgroup CPU quota probes. Both probes treat every failure — missing file,
// permission error, malformed content, nonsense values — as "no signal" and
// let the resolver fall through to the next source.

package parallel

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// cgroupRoot is the conventional cgroup filesystem mount point.
const cgroupRoot = "/sys/fs/cgroup"

// quotaInfo is a CPU time budget read from the kernel: quotaMicros of CPU
// time per periodMicros of wall clock. A reading only exists when
// quotaMicros > 0 and periodMicros > 0; anything else is treated as absent
// before a quotaInfo is ever constructed.
type quotaInfo struct {
	quotaMicros  int64
	periodMicros int64
}

// cpus converts the budget to a whole CPU count, rounding UP. A fractional
// allocation like 2.5 CPUs must still permit 3 concurrent units of work —
// rounding down would leave bursty fractional allocations under-utilized.
// Callers that want headroom subtract it themselves.
func (q quotaInfo) cpus() int {
	n := q.quotaMicros / q.periodMicros
	if q.quotaMicros%q.periodMicros != 0 {
		n++
	}
	if n < 1 {
		return 1
	}
	return int(n)
}

// probeCgroupV2 reads the unified-hierarchy quota from <root>/cpu.max.
// The file holds "<quota> <period>" or "max <period>"; "max" means
// unlimited, which is not a signal.
func (r *Resolver) probeCgroupV2() (Parallelism, bool) {
	data, err := os.ReadFile(filepath.Join(r.cgroupRoot, "cpu.max"))
	if err != nil {
		return Parallelism{}, false
	}
	q, ok := parseCPUMax(string(data))
	if !ok {
		logrus.WithField("cpu.max", strings.TrimSpace(string(data))).
			Debug("cgroup v2 present but no usable quota")
		return Parallelism{}, false
	}
	p := Parallelism{Count: q.cpus(), Source: SourceCgroupV2}
	logrus.WithFields(logrus.Fields{
		"quota_us":  q.quotaMicros,
		"period_us": q.periodMicros,
		"cpus":      p.Count,
	}).Debug("cpu quota from cgroup v2")
	return p, true
}

// probeCgroupV1 reads the legacy per-controller quota files
// <root>/cpu/cpu.cfs_quota_us and <root>/cpu/cpu.cfs_period_us.
// A quota of -1 means unlimited.
func (r *Resolver) probeCgroupV1() (Parallelism, bool) {
	quota, ok := readMicrosFile(filepath.Join(r.cgroupRoot, "cpu", "cpu.cfs_quota_us"))
	if !ok || quota <= 0 {
		return Parallelism{}, false
	}
	period, ok := readMicrosFile(filepath.Join(r.cgroupRoot, "cpu", "cpu.cfs_period_us"))
	if !ok || period <= 0 {
		return Parallelism{}, false
	}
	q := quotaInfo{quotaMicros: quota, periodMicros: period}
	p := Parallelism{Count: q.cpus(), Source: SourceCgroupV1}
	logrus.WithFields(logrus.Fields{
		"quota_us":  quota,
		"period_us": period,
		"cpus":      p.Count,
	}).Debug("cpu quota from cgroup v1")
	return p, true
}

// parseCPUMax parses the cgroup v2 cpu.max format. It returns false for
// "max" (unlimited), a wrong token count, non-numeric tokens, or a
// non-positive quota or period — all of which mean "no usable reading".
func parseCPUMax(s string) (quotaInfo, bool) {
	fields := strings.Fields(s)
	if len(fields) != 2 || fields[0] == "max" {
		return quotaInfo{}, false
	}
	quota, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil || quota <= 0 {
		return quotaInfo{}, false
	}
	period, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil || period <= 0 {
		return quotaInfo{}, false
	}
	return quotaInfo{quotaMicros: quota, periodMicros: period}, true
}

// readMicrosFile reads a single microsecond integer from a v1 control file.
// Kernel-reported values fit in int64; parsing at full width avoids
// wrapping on absurdly large limits.
func readMicrosFile(path string) (int64, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	v, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
