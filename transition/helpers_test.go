// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package transition

import (
	"testing"
	"time"

	"github.com/framegrace/texelfx/clock"
	"github.com/framegrace/texelfx/internal/memhost"
	"github.com/framegrace/texelfx/scene"
)

type fixture struct {
	host *memhost.Host
	clk  *clock.Manual
	mgr  *Manager
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	host := memhost.New(800, 480)
	host.UI.SetState(memhost.StateApp)
	clk := clock.NewManual(time.Unix(0, 0))
	mgr := NewManager(Host{Stage: host.Stage, UI: host.UI, Clock: clk}, opts...)
	return &fixture{host: host, clk: clk, mgr: mgr}
}

func (f *fixture) settle(t *testing.T) {
	t.Helper()
	f.clk.RunUntilIdle(10 * time.Second)
	if n := f.clk.Pending(); n != 0 {
		t.Fatalf("expected no armed timers, got %d", n)
	}
}

func (f *fixture) assertClean(t *testing.T) {
	t.Helper()
	if f.mgr.Running() != 0 {
		t.Fatalf("expected no running effects, got %d", f.mgr.Running())
	}
	if leaked := f.host.Stage.Leaked(); len(leaked) != 0 {
		t.Fatalf("expected every decoration released, leaked %v", leaked)
	}
	for _, a := range f.host.Stage.Created() {
		if a.OverReleased() != 0 {
			t.Fatalf("decoration %s released %d extra times", a.Name(), a.OverReleased())
		}
		if a.Parent() != nil {
			t.Fatalf("decoration %s still parented", a.Name())
		}
	}
	if f.host.Stage.Listeners() != 0 {
		t.Fatalf("expected resize listeners removed, got %d", f.host.Stage.Listeners())
	}
}

func assertReleased(t *testing.T, c *memhost.Client) {
	t.Helper()
	if c.Refs() != 1 || c.OverReleased() != 0 {
		t.Fatalf("client %s refs=%d over=%d, want 1/0", c.ID(), c.Refs(), c.OverReleased())
	}
	g := group(c)
	if g.Refs() != 1 || g.OverReleased() != 0 {
		t.Fatalf("actor %s refs=%d over=%d, want 1/0", g.Name(), g.Refs(), g.OverReleased())
	}
}

func group(c *memhost.Client) *memhost.Group {
	return c.Actor().(*memhost.Group)
}

type actorState struct {
	visible  bool
	opacity  uint8
	x, y     float64
	sx, sy   float64
	ax, ay   float64
	parented bool
}

func snapshot(a *memhost.Group) actorState {
	st := actorState{visible: a.IsVisible(), opacity: a.Opacity(), parented: a.Parent() != nil}
	st.x, st.y = a.Position()
	st.sx, st.sy = a.Scale()
	st.ax, st.ay = a.AnchorPoint()
	return st
}

var (
	geoFull   = scene.Geometry{X: 0, Y: 0, Width: 800, Height: 480}
	geoMenu   = scene.Geometry{X: 100, Y: 0, Width: 400, Height: 120}
	geoBanner = scene.Geometry{X: 200, Y: 60, Width: 400, Height: 80}
)
