// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: transition/notification.go
// Summary: Notification banner transitions.

package transition

import (
	"math"

	"github.com/framegrace/texelfx/internal/effects"
	"github.com/framegrace/texelfx/wm"
)

// Where an exiting notification shrinks to: the task button.
const (
	taskButtonX      = 8
	taskButtonY      = 17
	taskButtonWidth  = 96
	taskButtonHeight = 23

	// topLeftButtonWidth offsets the arc an entering banner travels along.
	topLeftButtonWidth = 112

	// Exit spends notifyShrink parts shrinking and notifyFade parts fading.
	notifyShrink = 400.0
	notifyFade   = 150.0
)

// Notification arcs a banner in from the top right, or shrinks it into the
// task button and fades it out.
func (m *Manager) Notification(c wm.Client, event Event) bool {
	if c == nil {
		return false
	}
	actor := c.Actor()
	if actor == nil {
		return false
	}
	e := m.newEffect(KindNotification, event, m.notificationFrame)
	m.setPrimary(e, c, actor)
	e.geo = actor.Geometry()
	m.launch(e, m.duration(SectionNotification, event, DefaultNotificationDuration))
	return true
}

func (m *Manager) notificationFrame(e *Effect, progress float32, _ bool) {
	actor := e.primaryActor.get()
	if actor == nil {
		return
	}
	geo := actor.Geometry()
	if geo.Width <= 0 || geo.Height <= 0 {
		return
	}
	w, h := float64(geo.Width), float64(geo.Height)
	now := float64(progress)

	if e.event == EventUnmap {
		thr := notifyShrink / (notifyShrink + notifyFade)
		t := float64(effects.SmoothRamp(float32(math.Min(now/thr, 1))))
		x, y := actor.Position()
		cx := (taskButtonX - x) * t
		cy := (taskButtonY - y) * t
		sx := (taskButtonWidth/w-1)*t + 1
		sy := (taskButtonHeight/h-1)*t + 1
		actor.SetScale(sx, sy)
		actor.SetAnchorPoint(-cx/sx, -cy/sy)
		if now < thr {
			actor.SetOpacity(opacity(1 - 0.25*t))
		} else {
			f := (now - thr) / (1 - thr)
			actor.SetOpacity(opacity(0.75 * (1 - f)))
		}
		return
	}

	screenW, _ := m.ui.ScreenSize()
	amt := float64(effects.SmoothRamp(progress))
	scale := 1 + (1-amt)*0.5
	ang := amt * math.Pi / 2
	cornerX := (float64(screenW)*0.5 - topLeftButtonWidth) * math.Cos(ang)
	cornerY := (math.Sin(ang) - 1) * h
	actor.SetOpacity(opacity(amt))
	actor.SetScale(scale, scale)
	actor.SetAnchorPoint(-cornerX/scale, -cornerY/scale)
}
