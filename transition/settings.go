// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: transition/settings.go
// Summary: Tunable transition parameters and their built-in defaults.
// Usage: Manager and Rotator read durations and angles through Settings.

package transition

import "time"

// Settings looks up per-transition parameters. Implementations must never
// fail the caller: on any lookup problem they return def.
type Settings interface {
	GetInt(transition, key string, def int) int
	GetDouble(transition, key string, def float64) float64
}

// Transition names and keys understood by the manager.
const (
	SectionPopup        = "popup"
	SectionFade         = "fade"
	SectionAppClose     = "app_close"
	SectionNotification = "notification"
	SectionSubview      = "subview"
	SectionRotate       = "rotate"

	KeyDurationIn       = "duration_in"
	KeyDurationOut      = "duration_out"
	KeyDuration         = "duration"
	KeyAngle            = "angle"
	KeyDamageTimeout    = "damage_timeout"
	KeyDamageTimeoutMax = "damage_timeout_max"
)

// Built-in defaults, in milliseconds unless noted.
const (
	DefaultPopupDuration        = 250
	DefaultFadeDuration         = 250
	DefaultAppCloseDuration     = 500
	DefaultNotificationDuration = 500
	DefaultSubviewDuration      = 250
	DefaultRotateDuration       = 300
	DefaultRotateAngle          = 40.0 // degrees
	DefaultDamageTimeout        = 50.0
	DefaultDamageTimeoutMax     = 1000.0
)

// DefaultSettings returns the built-in value for every lookup.
type DefaultSettings struct{}

func (DefaultSettings) GetInt(_, _ string, def int) int { return def }

func (DefaultSettings) GetDouble(_, _ string, def float64) float64 { return def }

func durationKey(event Event) string {
	if event == EventMap {
		return KeyDurationIn
	}
	return KeyDurationOut
}

func millis(ms float64) time.Duration {
	if ms < 0 {
		ms = 0
	}
	return time.Duration(ms * float64(time.Millisecond))
}
