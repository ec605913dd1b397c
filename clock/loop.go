// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: clock/loop.go
// Summary: Real-time event loop implementing Clock.
// Usage: The host runs Loop.Run on one goroutine; other goroutines Post work.

package clock

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// ErrLoopClosed is returned by Run after Close.
var ErrLoopClosed = errors.New("clock: loop closed")

// Loop serialises timer callbacks and posted work onto the goroutine calling
// Run. Cross-goroutine requests are marshalled as messages through Post.
type Loop struct {
	queue  chan func()
	closed chan struct{}
	once   atomic.Bool
}

// NewLoop creates a loop whose queue holds up to depth pending callbacks.
func NewLoop(depth int) *Loop {
	if depth <= 0 {
		depth = 64
	}
	return &Loop{
		queue:  make(chan func(), depth),
		closed: make(chan struct{}),
	}
}

// Run dispatches callbacks until ctx is done or Close is called.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.closed:
			return ErrLoopClosed
		case f := <-l.queue:
			f()
		}
	}
}

// Post queues f for execution on the loop goroutine. It blocks while the
// queue is full and returns false once the loop is closed.
func (l *Loop) Post(f func()) bool {
	select {
	case <-l.closed:
		return false
	default:
	}
	select {
	case l.queue <- f:
		return true
	case <-l.closed:
		return false
	}
}

// Close stops Run. Pending callbacks are dropped.
func (l *Loop) Close() {
	if l.once.CompareAndSwap(false, true) {
		close(l.closed)
	}
}

func (l *Loop) Now() time.Time {
	return time.Now()
}

// AfterFunc arms a wall-clock timer whose callback is posted to the loop.
func (l *Loop) AfterFunc(d time.Duration, f func()) Timer {
	t := &loopTimer{}
	t.timer = time.AfterFunc(d, func() {
		l.Post(func() {
			// Stop may have been called after the wall timer fired but
			// before this message was dispatched.
			if !t.state.CompareAndSwap(timerArmed, timerFired) {
				return
			}
			f()
		})
	})
	return t
}

const (
	timerArmed int32 = iota
	timerFired
	timerStopped
)

type loopTimer struct {
	timer *time.Timer
	state atomic.Int32
}

func (t *loopTimer) Stop() bool {
	if !t.state.CompareAndSwap(timerArmed, timerStopped) {
		return false
	}
	t.timer.Stop()
	return true
}
