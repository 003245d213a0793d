// Linux specific logical CPU counting.

//go:build linux

package parallel

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// numCPU is the Linux implementation.
// The scheduler affinity mask is narrower than the machine's online CPU
// count when the process runs under taskset or a restricted cpuset, so it
// is the more honest "visible to this process" figure. When the syscall
// fails we fall back to runtime.NumCPU.
func numCPU() int {
	var mask unix.CPUSet
	if err := unix.SchedGetaffinity(0, &mask); err == nil {
		if n := mask.Count(); n > 0 {
			return n
		}
	}
	return runtime.NumCPU()
}
