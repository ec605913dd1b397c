// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: clock/manual.go
// Summary: Deterministic Clock advanced by hand.
// Usage: Tests and the headless simulator drive time with Advance.

package clock

import (
	"sync"
	"time"
)

// Manual is a Clock whose time only moves when Advance is called. Due
// callbacks run synchronously on the caller of Advance, in deadline order.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	clock   *Manual
	when    time.Time
	seq     uint64
	f       func()
	stopped bool
	fired   bool
}

// NewManual returns a clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTimer{clock: m, when: m.now.Add(d), seq: m.seq, f: f}
	m.timers = append(m.timers, t)
	return t
}

func (t *manualTimer) Stop() bool {
	m := t.clock
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	m.removeLocked(t)
	return true
}

// Pending returns the number of armed timers.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// Advance moves time forward by d, firing every timer that falls due,
// including timers armed by callbacks during the advance.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextLocked()
		if next == nil || next.when.After(target) {
			m.now = target
			m.mu.Unlock()
			return
		}
		m.removeLocked(next)
		next.fired = true
		if next.when.After(m.now) {
			m.now = next.when
		}
		m.mu.Unlock()
		next.f()
	}
}

// RunUntilIdle keeps advancing to the next deadline until no timers remain
// or limit of simulated time has passed. It returns the time consumed.
func (m *Manual) RunUntilIdle(limit time.Duration) time.Duration {
	start := m.Now()
	for {
		m.mu.Lock()
		next := m.nextLocked()
		now := m.now
		m.mu.Unlock()
		if next == nil {
			break
		}
		if next.when.Sub(start) > limit {
			m.Advance(start.Add(limit).Sub(now))
			break
		}
		m.Advance(next.when.Sub(now))
	}
	return m.Now().Sub(start)
}

func (m *Manual) nextLocked() *manualTimer {
	var next *manualTimer
	for _, t := range m.timers {
		if next == nil || t.when.Before(next.when) || (t.when.Equal(next.when) && t.seq < next.seq) {
			next = t
		}
	}
	return next
}

func (m *Manual) removeLocked(t *manualTimer) {
	for i, candidate := range m.timers {
		if candidate == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return
		}
	}
}
