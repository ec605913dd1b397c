// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for the transitions file.

package config

import "github.com/framegrace/texelfx/transition"

// Sound section keys.
const (
	SectionSound    = "sound"
	KeySoundEnabled = "enabled"
	KeyWindowClosed = "window_closed"
)

func applyDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	cfg.RegisterDefaults(transition.SectionPopup, inOut(transition.DefaultPopupDuration))
	cfg.RegisterDefaults(transition.SectionFade, inOut(transition.DefaultFadeDuration))
	cfg.RegisterDefaults(transition.SectionAppClose, Section{
		transition.KeyDuration: transition.DefaultAppCloseDuration,
	})
	cfg.RegisterDefaults(transition.SectionNotification, inOut(transition.DefaultNotificationDuration))
	cfg.RegisterDefaults(transition.SectionSubview, inOut(transition.DefaultSubviewDuration))
	rotate := inOut(transition.DefaultRotateDuration)
	rotate[transition.KeyAngle] = transition.DefaultRotateAngle
	rotate[transition.KeyDamageTimeout] = transition.DefaultDamageTimeout
	rotate[transition.KeyDamageTimeoutMax] = transition.DefaultDamageTimeoutMax
	cfg.RegisterDefaults(transition.SectionRotate, rotate)
	cfg.RegisterDefaults(SectionSound, Section{
		KeySoundEnabled: true,
		KeyWindowClosed: transition.WindowClosedSound,
	})
}

func inOut(ms int) Section {
	return Section{
		transition.KeyDurationIn:  ms,
		transition.KeyDurationOut: ms,
	}
}
