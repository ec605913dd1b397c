// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: transition/popup.go
// Summary: Popup and fade transitions for menus, dialogs and plain windows.

package transition

import (
	"github.com/framegrace/texelfx/internal/effects"
	"github.com/framegrace/texelfx/scene"
	"github.com/framegrace/texelfx/wm"
)

// Popup slides c in from (or out to) the screen edge it touches, with a slight
// overshoot. The gap the overshoot opens is painted with a filler rectangle.
func (m *Manager) Popup(c wm.Client, event Event) bool {
	if c == nil {
		return false
	}
	actor := c.Actor()
	if actor == nil {
		return false
	}
	e := m.newEffect(KindPopup, event, m.popupFrame)
	m.setPrimary(e, c, actor)
	e.geo = actor.Geometry()
	e.setDecoration(0, m.stage.NewRectangle(m.filler))
	m.launch(e, m.duration(SectionPopup, event, DefaultPopupDuration))
	return true
}

func (m *Manager) popupFrame(e *Effect, progress float32, _ bool) {
	actor := e.primaryActor.get()
	if actor == nil {
		return
	}
	filler := e.decoration(0)
	scene.Unparent(filler)

	geo := actor.Geometry()
	_, screenH := m.ui.ScreenSize()
	fromTop := geo.Y == 0
	fromBottom := geo.Y+geo.Height == screenH
	if fromTop && fromBottom {
		fromTop = false
	}

	amt := progress
	if e.event == EventUnmap {
		amt = 1 - amt
	}
	over := float64(effects.Overshoot(amt))

	y, h := float64(geo.Y), float64(geo.Height)
	low, high := y, y
	switch {
	case fromTop:
		low = -h
	case fromBottom:
		low = y + h
	}
	pos := low*(1-over) + high*over

	actor.SetAnchorPoint(0, y-pos)
	actor.SetOpacity(opacity(float64(amt)))

	if filler == nil {
		return
	}
	if (fromTop && pos > high) || (fromBottom && pos < high) {
		if parent, ok := actor.(scene.Container); ok {
			parent.Add(filler)
		}
		filler.Show()
		if fromTop {
			filler.SetPosition(0, high-pos)
			filler.SetSize(float64(geo.Width), pos-high)
		} else {
			filler.SetPosition(0, h)
			filler.SetSize(float64(geo.Width), high-pos)
		}
	}
}

// Fade animates the opacity of c along a smooth ramp.
func (m *Manager) Fade(c wm.Client, event Event) bool {
	if c == nil {
		return false
	}
	actor := c.Actor()
	if actor == nil {
		return false
	}
	e := m.newEffect(KindFade, event, fadeFrame)
	m.setPrimary(e, c, actor)
	m.launch(e, m.duration(SectionFade, event, DefaultFadeDuration))
	return true
}

func fadeFrame(e *Effect, progress float32, _ bool) {
	actor := e.primaryActor.get()
	if actor == nil {
		return
	}
	amt := progress
	if e.event == EventUnmap {
		amt = 1 - amt
	}
	actor.SetOpacity(opacity(float64(effects.SmoothRamp(amt))))
}
