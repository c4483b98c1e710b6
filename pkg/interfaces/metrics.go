package interfaces

import "time"

// ResolutionMetrics records hero resolution outcomes. Implementations must be
// safe for concurrent use.
type ResolutionMetrics interface {
	// ObserveResolution counts a finished resolution. Outcome is "ok" or the
	// internal not-found cause.
	ObserveResolution(locale, outcome string)
	// ObserveFetch records the latency of a single content fetch.
	ObserveFetch(variant string, found bool, duration time.Duration)
}
