// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package effects

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestCurvesAreIdentityOutsideUnitInterval(t *testing.T) {
	curves := map[string]EasingFunc{
		"overshoot":  Overshoot,
		"smoothRamp": SmoothRamp,
		"easeIn":     EaseIn,
		"easeOut":    EaseOut,
	}
	for name, curve := range curves {
		for _, x := range []float32{-0.5, 0, 1, 1.25, 2} {
			if got := curve(x); got != x {
				t.Fatalf("%s(%v) = %v, want identity", name, x, got)
			}
		}
	}
}

func TestSmoothRampIsSymmetric(t *testing.T) {
	if got := SmoothRamp(0.5); !near(got, 0.5) {
		t.Fatalf("SmoothRamp(0.5) = %v, want 0.5", got)
	}
	for _, x := range []float32{0.1, 0.25, 0.4} {
		if !near(SmoothRamp(x)+SmoothRamp(1-x), 1) {
			t.Fatalf("SmoothRamp not symmetric around 0.5 at %v", x)
		}
	}
}

func TestEaseInAndOutShapes(t *testing.T) {
	if !(EaseIn(0.5) < 0.5) {
		t.Fatalf("EaseIn should lag linear progress, got %v", EaseIn(0.5))
	}
	if !(EaseOut(0.5) > 0.5) {
		t.Fatalf("EaseOut should lead linear progress, got %v", EaseOut(0.5))
	}
	if !near(EaseIn(0.3)+EaseOut(0.7), 1) {
		t.Fatalf("EaseIn and EaseOut should mirror each other")
	}
}

func TestOvershootPassesOne(t *testing.T) {
	peak := float32(0)
	for i := 1; i < 100; i++ {
		if v := Overshoot(float32(i) / 100); v > peak {
			peak = v
		}
	}
	if peak <= 1 {
		t.Fatalf("expected overshoot above 1, peak %v", peak)
	}
	if peak > 1.2 {
		t.Fatalf("overshoot too strong: %v", peak)
	}
	if v := Overshoot(0.99); !(v > 0.99 && v < 1.05) {
		t.Fatalf("expected overshoot to settle near 1, got %v", v)
	}
}

func TestTweenFuncScalesRange(t *testing.T) {
	f := TweenFunc(SmoothRamp)
	if got := f(0.5, 10, 20, 1); !near(got, 20) {
		t.Fatalf("TweenFunc midpoint = %v, want 20", got)
	}
	if got := f(2, 10, 20, 2); !near(got, 30) {
		t.Fatalf("TweenFunc end = %v, want 30", got)
	}
}
