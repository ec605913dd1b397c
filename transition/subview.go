// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: transition/subview.go
// Summary: Horizontal slide between an application's main view and a subview.
// Notes: At most one slide runs per view pair; a follow-up request on a busy
//   view retargets the running slide instead of stacking a second one.

package transition

import (
	"log"

	"github.com/framegrace/texelfx/internal/effects"
	"github.com/framegrace/texelfx/wm"
)

// Subview slides subview in over mainview (EventMap) or back out (EventUnmap).
func (m *Manager) Subview(subview, mainview wm.Client, event Event) bool {
	if subview == nil || mainview == nil {
		return false
	}
	if subview.ID() == mainview.ID() {
		log.Printf("Transition: subview %s is its own main view", subview.ID())
		return false
	}
	if !m.ui.IsApp(m.ui.State()) {
		return false
	}

	subBusy := subview.Flags().Has(wm.FlagEffectRunning)
	mainBusy := mainview.Flags().Has(wm.FlagEffectRunning)
	switch {
	case subBusy && mainBusy:
		debugLog.Printf("subview %s -> %s dropped, both busy", mainview.ID(), subview.ID())
		return false
	case mainBusy:
		// Pushing again from a view that is still sliding in: slide to the
		// new view instead.
		e := m.EffectFor(mainview)
		if event == EventMap && e != nil && e.kind == KindSubview &&
			e.event == EventMap && e.primary.is(mainview) {
			return m.retargetPrimary(e, subview)
		}
		return false
	case subBusy:
		// Popping back to a view that is still sliding out.
		e := m.EffectFor(subview)
		if event == EventUnmap && e != nil && e.kind == KindSubview &&
			e.event == EventUnmap && e.secondary.is(subview) {
			return m.retargetSecondary(e, mainview)
		}
		return false
	}

	subActor, mainActor := subview.Actor(), mainview.Actor()
	if subActor == nil || mainActor == nil {
		return false
	}
	e := m.newEffect(KindSubview, event, m.subviewFrame)
	m.setPrimary(e, subview, subActor)
	m.setSecondary(e, mainview, mainActor)
	m.launch(e, m.duration(SectionSubview, event, DefaultSubviewDuration))
	return true
}

func (m *Manager) retargetPrimary(e *Effect, c wm.Client) bool {
	actor := c.Actor()
	if actor == nil {
		return false
	}
	if old := e.primaryActor.get(); old != nil {
		old.Hide()
		old.SetAnchorPoint(0, 0)
	}
	e.primaryActor.release()
	if old := e.primary.get(); old != nil {
		m.unbind(old, e)
		old.UnsetFlags(wm.FlagDontUpdate | wm.FlagEffectRunning)
	}
	e.primary.release()

	m.setPrimary(e, c, actor)
	c.SetFlags(wm.FlagDontUpdate | wm.FlagEffectRunning)
	debugLog.Printf("subview %s retargeted to %s", e.id, c.ID())
	return true
}

func (m *Manager) retargetSecondary(e *Effect, c wm.Client) bool {
	actor := c.Actor()
	if actor == nil {
		return false
	}
	if old := e.secondaryActor.get(); old != nil {
		old.Hide()
		old.SetAnchorPoint(0, 0)
	}
	e.secondaryActor.release()
	if old := e.secondary.get(); old != nil {
		m.unbind(old, e)
		old.UnsetFlags(wm.FlagDontUpdate | wm.FlagEffectRunning)
	}
	e.secondary.release()

	m.setSecondary(e, c, actor)
	c.SetFlags(wm.FlagDontUpdate | wm.FlagEffectRunning)
	debugLog.Printf("subview %s returns to %s", e.id, c.ID())
	return true
}

func (m *Manager) subviewFrame(e *Effect, progress float32, last bool) {
	sub := e.primaryActor.get()
	main := e.secondaryActor.get()
	screenW, _ := m.ui.ScreenSize()

	amt := float64(effects.SmoothRamp(progress))
	if e.event == EventUnmap {
		amt = 1 - amt
	}
	cornerX := (1 - amt) * float64(screenW)

	if sub != nil {
		sub.SetAnchorPoint(-cornerX, 0)
		sub.Show()
	}
	if main != nil {
		main.SetAnchorPoint(-(cornerX - float64(screenW)), 0)
		main.Show()
	}
	if !last {
		return
	}
	if sub != nil {
		sub.SetAnchorPoint(0, 0)
		if e.event == EventUnmap {
			sub.Hide()
		}
	}
	if main != nil {
		main.SetAnchorPoint(0, 0)
		if e.event == EventMap {
			main.Hide()
		}
	}
}
