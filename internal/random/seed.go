// Package random provides the per-request deterministic random source used by
// the generation engine.
//
// A Source is a pure function of its seed string and the number of draws made
// so far. There is no package-level generator: every request builds its own
// Source so concurrent requests never share state.
package random

import (
	"strconv"
	"time"
)

// DefaultSeed derives a replayable seed from the given instant.
//
// Callers echo the returned value so the same output can be reproduced later.
func DefaultSeed(now time.Time) string {
	return strconv.FormatInt(now.UTC().UnixNano(), 36)
}

// ResolveSeed returns seed unchanged when the caller supplied one, or a
// time-based default otherwise. The boolean reports whether a default was used.
//
// An explicitly empty seed is still a valid, deterministic input; only a nil
// pointer means "absent".
func ResolveSeed(seed *string, now func() time.Time) (string, bool) {
	if seed != nil {
		return *seed, false
	}
	if now == nil {
		now = time.Now
	}
	return DefaultSeed(now()), true
}
