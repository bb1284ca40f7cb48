// Package util holds small formatting helpers shared by the progress and
// CLI packages.
package util

import "time"

var durations = []time.Duration{
	time.Nanosecond,
	time.Microsecond,
	time.Millisecond,
	time.Second,
	time.Minute,
	time.Hour,
}

// HumanElapsed returns the time elapsed since start, truncated to a
// resolution that keeps the printed duration short (e.g. 725.8ms rather than
// 725.801332ms).
func HumanElapsed(start time.Time) time.Duration {
	return humanElapsed(time.Since(start))
}

func humanElapsed(elapsed time.Duration) time.Duration {
	i := 0
	for i < len(durations) && elapsed >= durations[i] {
		i++
	}

	if i >= 2 {
		resolution := durations[i-2]
		if (durations[i-1] / durations[i-2]) > 100 {
			resolution *= 10
		}
		return elapsed.Truncate(resolution)
	}

	return elapsed
}
