package parser

import "runtime"

const (
	minPoolSize = 2
	maxPoolSize = 16
)

// getDefaultPoolSize returns the default pool size based on CPU count.
//
// One extraction call uses a single parser at a time (the pipeline is
// synchronous), so the pool only needs to cover callers running separate
// extractions concurrently.
//
// Pool sizing strategy:
// - Base: CPU cores
// - Minimum: 2 parsers
// - Maximum: 16 parsers (limits memory on high-core machines)
func getDefaultPoolSize() int {
	size := runtime.NumCPU()
	if size < minPoolSize {
		return minPoolSize
	}
	if size > maxPoolSize {
		return maxPoolSize
	}
	return size
}

// getPoolSize returns the pool size to use, allowing for override.
// If override is 0, returns the default based on CPU count.
func getPoolSize(override int) int {
	if override > 0 {
		return override
	}
	return getDefaultPoolSize()
}
