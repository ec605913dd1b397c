// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: transition/close.go
// Summary: Application close transitions (TV-off fold with sparkles, and the
//   variant that waits for a screen rotation).

package transition

import (
	"math"

	"github.com/framegrace/texelfx/internal/effects"
	"github.com/framegrace/texelfx/scene"
	"github.com/framegrace/texelfx/wm"
)

const (
	// closeParticles is the number of sparkles orbiting a closing window.
	closeParticles = MaxDecorations
	// minCloseSize is the smallest window edge that gets a close animation.
	minCloseSize = 16

	// LandscapeWidth and LandscapeHeight are the panel size in landscape.
	LandscapeWidth  = 800
	LandscapeHeight = 480
)

func (m *Manager) closable(c wm.Client) (scene.Actor, bool) {
	if c == nil || c.Type() != wm.ClientApp {
		return nil, false
	}
	if m.ui.IsTaskNav(m.ui.State()) {
		return nil, false
	}
	actor := c.Actor()
	if actor == nil || !actor.IsVisible() {
		return nil, false
	}
	return actor, true
}

// CloseApp folds the window of c away like a switched-off television while
// sparkles spiral out of its centre.
func (m *Manager) CloseApp(c wm.Client) bool {
	actor, ok := m.closable(c)
	if !ok || c.IsSecondary() {
		return false
	}
	geo := actor.Geometry()
	if geo.Width < minCloseSize || geo.Height < minCloseSize {
		return false
	}

	e := m.newEffect(KindClose, EventUnmap, closeFrame)
	m.setPrimary(e, c, actor)
	// Read again: setPrimary may have settled an earlier effect on c.
	e.geo = actor.Geometry()
	e.cancelResize = m.stage.OnResize(func(w, h int) { m.followRotation(e, w, h) })

	front := m.ui.FrontGroup()
	actor.Reparent(front)
	actor.LowerBottom()
	actor.SetAnchorPoint(float64(geo.Width)/2, float64(geo.Height)/2)
	actor.SetPosition(float64(geo.X)+float64(geo.Width)/2, float64(geo.Y)+float64(geo.Height)/2)

	for i := 0; i < closeParticles; i++ {
		p := m.stage.NewParticle()
		if p == nil {
			continue
		}
		pg := p.Geometry()
		p.SetAnchorPoint(float64(pg.Width)/2, float64(pg.Height)/2)
		if front != nil {
			front.Add(p)
		}
		p.Hide()
		e.setDecoration(i, p)
	}

	duration := millis(float64(m.settings.GetInt(SectionAppClose, KeyDuration, DefaultAppCloseDuration)))
	m.launch(e, duration)
	m.playSound(WindowClosedSound)
	return true
}

// followRotation keeps a closing window in place when the screen rotates
// underneath it.
func (m *Manager) followRotation(e *Effect, w, h int) {
	actor := e.primaryActor.get()
	if actor == nil || e.done {
		return
	}
	g := &e.geo
	if w > h {
		actor.SetRotation(scene.ZAxis, -90, 0, 0)
		x := g.X
		g.X = g.Y
		g.Y = h - (x + g.Width)
	} else {
		actor.SetRotation(scene.ZAxis, 90, 0, 0)
		y := g.Y
		g.Y = g.X
		g.X = w - (y + g.Height)
	}
	g.Width, g.Height = g.Height, g.Width
	actor.SetPosition(float64(g.X)+float64(g.Width)/2, float64(g.Y)+float64(g.Height)/2)
}

func closeFrame(e *Effect, progress float32, _ bool) {
	actor := e.primaryActor.get()
	if actor == nil {
		return
	}
	a := float64(progress)
	amtx := float64(effects.Clamp01(float32(1.6 - a*2.5)))
	amty := float64(effects.Clamp01(float32(1 - a*2.5)))
	amtp := float64(effects.Clamp01(float32(a*2 - 1)))
	amtx = (1-math.Cos(amtx*math.Pi))*0.45 + 0.1
	amty = (1-math.Cos(amty*math.Pi))*0.45 + 0.1
	sparkle := math.Sin(amtp * math.Pi)
	radius := 8 + (1-math.Cos(amtp*math.Pi))*32

	actor.SetScale(amtx, amty)
	actor.SetOpacity(opacity(1 - amtp))

	cx := float64(e.geo.X) + float64(e.geo.Width)/2
	cy := float64(e.geo.Y) + float64(e.geo.Height)/2
	for i := 0; i < closeParticles; i++ {
		p := e.decoration(i)
		if p == nil {
			continue
		}
		if amtp <= 0 || amtp >= 1 {
			p.Hide()
			continue
		}
		ang := float64(i)*15 + amtp*math.Pi/2
		r := radius * float64(i+1) / closeParticles
		p.Show()
		p.SetOpacity(opacity(sparkle * (1 - math.Cos(a*50+float64(i))) / 2))
		s := 1 - amtp*0.5
		p.SetScale(s, s)
		p.SetPosition(cx+math.Sin(ang)*r, cy+math.Cos(ang)*r)
	}
}

// CloseAppBeforeRotate keeps the closing window of c on screen, dressed with a
// fake title bar, until the rotation has blanked the screen. The effect has no
// timeline: the rotation machine completes it once faded out.
func (m *Manager) CloseAppBeforeRotate(c wm.Client) bool {
	actor, ok := m.closable(c)
	if !ok {
		return false
	}
	e := m.newEffect(KindCloseBeforeRotate, EventUnmap, nil)
	m.setPrimary(e, c, actor)
	e.geo = actor.Geometry()

	front := m.ui.FrontGroup()
	actor.Reparent(front)
	actor.LowerBottom()
	if bar := m.stage.NewFakeTitleBar(LandscapeHeight); bar != nil {
		if front != nil {
			front.Add(bar)
		}
		bar.Show()
		e.setDecoration(0, bar)
	}

	m.track(e, wm.FlagDontUpdate|wm.FlagDontShow|wm.FlagEffectRunning)
	debugLog.Printf("start %s %s", e.kind, e.id)
	if m.deferClose != nil {
		m.deferClose(e)
	} else {
		m.complete(e)
	}
	m.playSound(WindowClosedSound)
	return true
}
