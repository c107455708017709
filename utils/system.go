package utils

import (
	"math"
	"runtime"
)

// MemUsageMiB reports heap and system memory in MiB along with the GC count.
func MemUsageMiB() (alloc, sys uint64, numGC uint32) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	// For info on each, see: https://golang.org/pkg/runtime/#MemStats
	bToMb := func(b uint64) uint64 {
		return b / 1024 / 1024
	}
	return bToMb(m.Alloc), bToMb(m.Sys), m.NumGC
}

// IsFinite is false when any value of A is NaN or infinite.
func IsFinite(A any) bool {
	switch v := A.(type) {
	case float64:
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	case []float64:
		for _, f := range v {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return false
			}
		}
	case [5]float64:
		return IsFinite(v[:])
	}
	return true
}
