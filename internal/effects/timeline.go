// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/timeline.go
// Summary: Frame timeline that drives one transition from 0 to 1.
// Usage: Owned by exactly one effect; emits frames on the clock until done.
// Notes: Not safe for concurrent use; all calls happen on the event loop.

package effects

import (
	"time"

	"github.com/tanema/gween"

	"github.com/framegrace/texelfx/clock"
)

// FrameInterval is the delay between two emitted frames.
const FrameInterval = 16 * time.Millisecond

type timelineState int

const (
	timelineIdle timelineState = iota
	timelineRunning
	timelineFinished
	timelineStopped
)

// Timeline emits progress frames for a fixed duration. The final frame always
// carries progress 1 with last set, and is followed by the completion callback.
type Timeline struct {
	clock    clock.Clock
	duration time.Duration
	tween    *gween.Tween
	timer    clock.Timer
	lastTick time.Time
	progress float32
	state    timelineState

	onFrame     func(progress float32, last bool)
	onCompleted func()
}

// NewTimeline creates an idle timeline with linear progress; effects shape it
// with their own curves. Durations under a millisecond are raised to one so
// the tween never divides by zero.
func NewTimeline(clk clock.Clock, duration time.Duration) *Timeline {
	if duration < time.Millisecond {
		duration = time.Millisecond
	}
	return &Timeline{
		clock:    clk,
		duration: duration,
		tween:    gween.New(0, 1, float32(duration.Seconds()), TweenFunc(EaseLinear)),
	}
}

// OnFrame sets the per-frame callback.
func (tl *Timeline) OnFrame(fn func(progress float32, last bool)) {
	tl.onFrame = fn
}

// OnCompleted sets the callback run after the last frame of a natural finish.
func (tl *Timeline) OnCompleted(fn func()) {
	tl.onCompleted = fn
}

// Duration returns the configured length.
func (tl *Timeline) Duration() time.Duration {
	return tl.duration
}

// Progress returns the progress of the most recent frame.
func (tl *Timeline) Progress() float32 {
	return tl.progress
}

// Active reports whether the timeline is started and not yet finished or stopped.
func (tl *Timeline) Active() bool {
	return tl.state == timelineRunning
}

// Start begins emitting frames. Starting twice is a no-op.
func (tl *Timeline) Start() {
	if tl.state != timelineIdle {
		return
	}
	tl.state = timelineRunning
	tl.lastTick = tl.clock.Now()
	tl.arm()
}

// Stop cancels further frames and the completion callback. It reports
// whether the timeline was running.
func (tl *Timeline) Stop() bool {
	if tl.state != timelineRunning && tl.state != timelineIdle {
		return false
	}
	wasRunning := tl.state == timelineRunning
	tl.state = timelineStopped
	if tl.timer != nil {
		tl.timer.Stop()
		tl.timer = nil
	}
	return wasRunning
}

func (tl *Timeline) arm() {
	tl.timer = tl.clock.AfterFunc(FrameInterval, tl.tick)
}

func (tl *Timeline) tick() {
	tl.timer = nil
	if tl.state != timelineRunning {
		return
	}
	now := tl.clock.Now()
	dt := now.Sub(tl.lastTick)
	tl.lastTick = now

	value, finished := tl.tween.Update(float32(dt.Seconds()))
	if finished || value >= 1 {
		tl.progress = 1
		tl.state = timelineFinished
		tl.emit(1, true)
		if tl.onCompleted != nil {
			tl.onCompleted()
		}
		return
	}

	tl.progress = Clamp01(value)
	tl.emit(tl.progress, false)
	// A frame callback may have stopped us.
	if tl.state == timelineRunning {
		tl.arm()
	}
}

func (tl *Timeline) emit(progress float32, last bool) {
	if tl.onFrame != nil {
		tl.onFrame(progress, last)
	}
}
