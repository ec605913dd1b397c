// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package effects

import (
	"testing"
	"time"

	"github.com/framegrace/texelfx/clock"
)

func TestTimelineEmitsFramesThenCompletes(t *testing.T) {
	clk := clock.NewManual(time.Unix(0, 0))
	tl := NewTimeline(clk, 100*time.Millisecond)

	var frames []float32
	lastFrames := 0
	completed := 0
	tl.OnFrame(func(p float32, last bool) {
		frames = append(frames, p)
		if last {
			lastFrames++
		}
	})
	tl.OnCompleted(func() { completed++ })
	tl.Start()
	if !tl.Active() {
		t.Fatalf("expected timeline to be active after Start")
	}

	clk.RunUntilIdle(time.Second)

	if completed != 1 || lastFrames != 1 {
		t.Fatalf("expected exactly one last frame and completion, got %d/%d", lastFrames, completed)
	}
	if frames[len(frames)-1] != 1 {
		t.Fatalf("expected final frame at 1, got %v", frames[len(frames)-1])
	}
	for i := 1; i < len(frames); i++ {
		if frames[i] < frames[i-1] {
			t.Fatalf("progress went backwards: %v", frames)
		}
	}
	if tl.Active() {
		t.Fatalf("expected timeline inactive after completion")
	}
}

func TestTimelineStopSuppressesCompletion(t *testing.T) {
	clk := clock.NewManual(time.Unix(0, 0))
	tl := NewTimeline(clk, 100*time.Millisecond)
	completed := false
	frames := 0
	tl.OnFrame(func(float32, bool) { frames++ })
	tl.OnCompleted(func() { completed = true })
	tl.Start()

	clk.Advance(40 * time.Millisecond)
	seen := frames
	if !tl.Stop() {
		t.Fatalf("expected Stop to report a running timeline")
	}
	if tl.Stop() {
		t.Fatalf("expected second Stop to be a no-op")
	}
	clk.Advance(time.Second)
	if completed {
		t.Fatalf("stopped timeline completed")
	}
	if frames != seen {
		t.Fatalf("stopped timeline emitted %d more frames", frames-seen)
	}
	if clk.Pending() != 0 {
		t.Fatalf("stopped timeline left %d timers armed", clk.Pending())
	}
}

func TestTimelineStopFromFrameCallback(t *testing.T) {
	clk := clock.NewManual(time.Unix(0, 0))
	tl := NewTimeline(clk, 200*time.Millisecond)
	tl.OnFrame(func(float32, bool) { tl.Stop() })
	tl.Start()
	clk.Advance(time.Second)
	if clk.Pending() != 0 {
		t.Fatalf("expected no rearm after Stop inside a frame")
	}
}

func TestTimelineProgressIsLinear(t *testing.T) {
	clk := clock.NewManual(time.Unix(0, 0))
	tl := NewTimeline(clk, 160*time.Millisecond)
	var frames []float32
	tl.OnFrame(func(p float32, _ bool) { frames = append(frames, p) })
	tl.Start()

	clk.Advance(5 * FrameInterval)
	if len(frames) != 5 {
		t.Fatalf("expected 5 frames, got %d", len(frames))
	}
	for i, p := range frames {
		want := float32(i+1) * 0.1
		if diff := p - want; diff > 1e-4 || diff < -1e-4 {
			t.Fatalf("frame %d: expected progress %v, got %v", i, want, p)
		}
	}
	tl.Stop()
}
