//go:build linux

package driver

import (
	perf "github.com/hodgesds/perf-utils"
)

// countInstructions runs f under a perf instruction counter. Where perf events
// are unavailable f still runs and the count is zero.
func countInstructions(f func() error) (count uint64, err error) {
	var (
		ran   bool
		fnErr error
	)
	pv, perfErr := perf.CPUInstructions(func() error {
		ran = true
		fnErr = f()
		return fnErr
	})
	switch {
	case !ran:
		return 0, f()
	case fnErr != nil:
		return 0, fnErr
	case perfErr != nil:
		return 0, nil
	}
	return pv.Value, nil
}
