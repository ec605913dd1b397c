// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: transition/rotate_effect.go
// Summary: Whole-screen fade used on both sides of an orientation change.

package transition

import (
	"github.com/framegrace/texelfx/internal/effects"
	"github.com/framegrace/texelfx/scene"
)

// maxRotateDepth is how far the scene is pushed back when fully faded out.
const maxRotateDepth = 150

// fadeAndRotate tilts the rendered scene away (firstPart) or back towards the
// viewer while a black rectangle dims it. done runs after teardown.
func (m *Manager) fadeAndRotate(firstPart, toPortrait bool, done func()) *Effect {
	event := EventUnmap
	if firstPart {
		event = EventMap
	}
	e := m.newEffect(KindRotate, event, m.rotateFrame)
	e.angle = m.settings.GetDouble(SectionRotate, KeyAngle, DefaultRotateAngle)
	if firstPart != toPortrait {
		e.angle = -e.angle
	}

	screenW, screenH := m.ui.ScreenSize()
	if dim := m.stage.NewRectangle(scene.Black); dim != nil {
		dim.SetSize(float64(screenW), float64(screenH))
		if root := m.stage.Root(); root != nil {
			root.Add(dim)
		}
		dim.Show()
		e.setDecoration(0, dim)
	}
	// Landscape apps shown in portrait leave the right of the panel
	// unpainted; cover it while fading out towards landscape.
	if firstPart && !toPortrait {
		if mask := m.stage.NewRectangle(scene.Black); mask != nil {
			mask.SetPosition(LandscapeHeight, 0)
			mask.SetSize(LandscapeWidth-LandscapeHeight, LandscapeHeight)
			if render := m.ui.RenderActor(); render != nil {
				render.Add(mask)
			}
			mask.Show()
			e.setDecoration(1, mask)
		}
	}

	e.Then(done)
	m.launch(e, m.duration(SectionRotate, event, DefaultRotateDuration))
	return e
}

func (m *Manager) rotateFrame(e *Effect, progress float32, last bool) {
	amt := float64(effects.EaseCubic(progress))
	if e.event == EventUnmap {
		amt = 1 - amt
	}
	dim := amt*4 - 3
	if dim < 0 {
		dim = 0
	}

	if render := m.ui.RenderActor(); render != nil {
		w, h := m.ui.ScreenSize()
		axis := scene.XAxis
		if m.ui.InPortrait() {
			axis = scene.YAxis
		}
		angle := e.angle * amt
		if last {
			angle = 0
		}
		render.SetRotation(axis, angle, float64(w)/2, float64(h)/2)
		render.SetDepth(-amt * maxRotateDepth)
	}

	if d := e.decoration(0); d != nil {
		d.RaiseTop()
		d.SetOpacity(opacity(dim))
	}
}
