package utils

import (
	"runtime"
)

// ParallelFactor caps how many generations run at once. Tests may lower it.
var ParallelFactor = runtime.GOMAXPROCS(0)

func init() {
	if ParallelFactor <= 0 {
		ParallelFactor = 1
	}
	// leave most of a large machine to the callers
	if quarter := ParallelFactor / 4; quarter > 8 {
		ParallelFactor = quarter
	}
}

// WorkerLimit returns how many of n independent jobs should run concurrently, at least 1.
func WorkerLimit(n int) int {
	return max(1, min(n, ParallelFactor))
}
