// Generic logical CPU counting fallback for non-Linux platforms.

//go:build !linux

package parallel

import "runtime"

// numCPU is runtime.NumCPU on platforms without an affinity syscall.
func numCPU() int {
	return runtime.NumCPU()
}
