// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/easing.go
// Summary: Easing curves used by compositor transitions.
// Usage: Per-frame callbacks shape timeline progress with these curves.
// Notes: Every curve returns its input unchanged outside (0,1).

package effects

import (
	"math"

	"github.com/tanema/gween/ease"
)

// EasingFunc maps progress [0,1] to shaped progress.
type EasingFunc func(progress float32) float32

var (
	// EaseLinear keeps constant speed; it paces every Timeline.
	EaseLinear EasingFunc = func(t float32) float32 { return t }

	// Overshoot ramps to 1 and briefly passes it before settling, giving
	// pop-in motions a springy feel.
	Overshoot EasingFunc = func(x float32) float32 {
		if x <= 0 || x >= 1 {
			return x
		}
		amt := float64(x)
		smoothRamp := 1 - math.Cos(amt*math.Pi)
		converge := math.Sin(0.5 * math.Pi * (1 - amt))
		return float32(smoothRamp*0.675*converge + (1 - converge))
	}

	// SmoothRamp is the cosine S-curve (1-cos(πx))/2.
	SmoothRamp EasingFunc = func(x float32) float32 {
		if x <= 0 || x >= 1 {
			return x
		}
		return float32((1 - math.Cos(float64(x)*math.Pi)) * 0.5)
	}

	// EaseIn accelerates from rest along a quarter cosine.
	EaseIn EasingFunc = func(x float32) float32 {
		if x <= 0 || x >= 1 {
			return x
		}
		return float32(1 - math.Cos(float64(x)*math.Pi*0.5))
	}

	// EaseOut decelerates to rest along a quarter cosine.
	EaseOut EasingFunc = func(x float32) float32 {
		if x <= 0 || x >= 1 {
			return x
		}
		return float32(math.Cos(float64(1-x) * math.Pi * 0.5))
	}

	// EaseCubic speeds up as it goes (x³); used by the rotation fade.
	EaseCubic EasingFunc = func(x float32) float32 {
		return x * x * x
	}
)

// TweenFunc adapts an EasingFunc to gween's (t, begin, change, duration)
// signature so the same curves can drive gween tweens.
func TweenFunc(f EasingFunc) ease.TweenFunc {
	return func(t, b, c, d float32) float32 {
		if d <= 0 {
			return b + c
		}
		return b + c*f(t/d)
	}
}

// Clamp01 limits v to [0,1].
func Clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
