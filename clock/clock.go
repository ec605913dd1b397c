// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: clock/clock.go
// Summary: Timer abstraction for the single-threaded transition core.
// Usage: Effects and the rotation machine arm timers through Clock only.
// Notes: Callbacks always run on the goroutine that owns the event loop.

package clock

import "time"

// Timer is an armed one-shot callback.
type Timer interface {
	// Stop cancels the timer. It reports whether the call prevented the
	// callback from running. Stopping twice is harmless.
	Stop() bool
}

// Clock schedules callbacks on the host event loop.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}
