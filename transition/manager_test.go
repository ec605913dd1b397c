// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package transition

import (
	"testing"
	"time"

	"github.com/framegrace/texelfx/internal/memhost"
	"github.com/framegrace/texelfx/scene"
	"github.com/framegrace/texelfx/wm"
)

func TestForcedStopMatchesNaturalCompletion(t *testing.T) {
	cases := []struct {
		name  string
		geo   scene.Geometry
		start func(f *fixture, c, main *memhost.Client) bool
	}{
		{"popup map", geoMenu, func(f *fixture, c, _ *memhost.Client) bool { return f.mgr.Popup(c, EventMap) }},
		{"popup unmap", geoMenu, func(f *fixture, c, _ *memhost.Client) bool { return f.mgr.Popup(c, EventUnmap) }},
		{"fade map", geoBanner, func(f *fixture, c, _ *memhost.Client) bool { return f.mgr.Fade(c, EventMap) }},
		{"fade unmap", geoBanner, func(f *fixture, c, _ *memhost.Client) bool { return f.mgr.Fade(c, EventUnmap) }},
		{"close", geoFull, func(f *fixture, c, _ *memhost.Client) bool { return f.mgr.CloseApp(c) }},
		{"notification map", geoBanner, func(f *fixture, c, _ *memhost.Client) bool { return f.mgr.Notification(c, EventMap) }},
		{"notification unmap", geoBanner, func(f *fixture, c, _ *memhost.Client) bool { return f.mgr.Notification(c, EventUnmap) }},
		{"subview map", geoFull, func(f *fixture, c, main *memhost.Client) bool { return f.mgr.Subview(c, main, EventMap) }},
		{"subview unmap", geoFull, func(f *fixture, c, main *memhost.Client) bool { return f.mgr.Subview(c, main, EventUnmap) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			run := func(force bool) actorState {
				f := newFixture(t)
				main := f.host.AddApp("main", geoFull)
				c := f.host.AddApp("target", tc.geo)
				if !tc.start(f, c, main) {
					t.Fatalf("expected effect to start")
				}
				if force {
					if !f.mgr.Stop(c) {
						t.Fatalf("expected Stop to find the effect")
					}
				} else {
					f.settle(t)
				}
				f.assertClean(t)
				assertReleased(t, c)
				return snapshot(group(c))
			}
			natural, forced := run(false), run(true)
			if natural != forced {
				t.Fatalf("forced stop diverged:\nnatural %+v\nforced  %+v", natural, forced)
			}
		})
	}
}

func TestTeardownRunsOnce(t *testing.T) {
	var counts []int
	f := newFixture(t, WithRunningHook(func(n int) { counts = append(counts, n) }))
	c := f.host.AddApp("app", geoFull)

	if !f.mgr.CloseApp(c) {
		t.Fatalf("expected close effect to start")
	}
	e := f.mgr.EffectFor(c)
	if e == nil || e.Kind() != KindClose {
		t.Fatalf("expected close effect bound to client, got %v", e)
	}
	if !c.Flags().Has(wm.FlagEffectRunning | wm.FlagDontUpdate) {
		t.Fatalf("expected client flags set, got %b", c.Flags())
	}

	f.clk.Advance(100 * time.Millisecond)
	if !f.mgr.Stop(c) {
		t.Fatalf("expected first Stop to succeed")
	}
	if f.mgr.Stop(c) {
		t.Fatalf("expected second Stop to find nothing")
	}
	f.mgr.complete(e)
	f.settle(t)

	if len(counts) != 2 || counts[0] != 1 || counts[1] != 0 {
		t.Fatalf("expected running counter 1 then 0, got %v", counts)
	}
	if !e.Done() {
		t.Fatalf("expected effect done")
	}
	if c.Flags() != 0 {
		t.Fatalf("expected client flags cleared, got %b", c.Flags())
	}
	if len(f.host.Stage.Created()) != closeParticles {
		t.Fatalf("expected %d particles, got %d", closeParticles, len(f.host.Stage.Created()))
	}
	f.assertClean(t)
	assertReleased(t, c)
}

func TestNaturalCompletionThenStop(t *testing.T) {
	f := newFixture(t)
	c := f.host.AddClient("menu", wm.ClientMenu, geoMenu)
	f.mgr.Popup(c, EventMap)
	f.settle(t)
	if f.mgr.Stop(c) {
		t.Fatalf("expected Stop after completion to be a no-op")
	}
	f.assertClean(t)
	assertReleased(t, c)
	if group(c).Parent() == nil {
		t.Fatalf("expected mapped popup to stay parented")
	}
}

func TestPopupPaintsFillerWhileOvershooting(t *testing.T) {
	f := newFixture(t)
	c := f.host.AddClient("menu", wm.ClientMenu, geoMenu)
	f.mgr.Popup(c, EventMap)

	// Overshoot passes 1 at about 70% progress.
	f.clk.Advance(176 * time.Millisecond)
	children := group(c).Children()
	if len(children) != 1 {
		t.Fatalf("expected filler inside the popup, got %v", children)
	}
	filler := children[0].(*memhost.Actor)
	if filler.Kind() != "rect" || !filler.IsVisible() {
		t.Fatalf("expected visible filler rectangle, got %s visible=%v", filler.Kind(), filler.IsVisible())
	}
	if g := filler.Geometry(); g.Width != geoMenu.Width {
		t.Fatalf("expected filler as wide as popup, got %d", g.Width)
	}

	f.settle(t)
	if len(group(c).Children()) != 0 {
		t.Fatalf("expected filler removed at the end")
	}
	if _, ay := group(c).AnchorPoint(); ay != 0 {
		t.Fatalf("expected popup to land at its geometry, anchor y=%v", ay)
	}
	f.assertClean(t)
}

func TestExitEffectsRemoveActor(t *testing.T) {
	f := newFixture(t)
	c := f.host.AddClient("note", wm.ClientNote, geoBanner)
	f.mgr.Fade(c, EventUnmap)
	if !f.mgr.ActorWillGoAway(c.Actor()) {
		t.Fatalf("expected exiting actor to be reported as going away")
	}
	f.settle(t)
	if group(c).Parent() != nil {
		t.Fatalf("expected exiting actor unparented")
	}
	if f.mgr.ActorWillGoAway(c.Actor()) {
		t.Fatalf("expected nothing going away after completion")
	}
	if group(c).Opacity() != 0 {
		t.Fatalf("expected faded out actor, opacity %d", group(c).Opacity())
	}
}

func TestActorWillGoAwayIgnoresEnteringActors(t *testing.T) {
	f := newFixture(t)
	c := f.host.AddClient("note", wm.ClientNote, geoBanner)
	f.mgr.Notification(c, EventMap)
	if f.mgr.ActorWillGoAway(c.Actor()) {
		t.Fatalf("expected entering actor to stay")
	}
}

func TestOperationsRejectMissingActor(t *testing.T) {
	f := newFixture(t)
	c := memhost.NewClient("ghost", wm.ClientApp, nil)
	main := f.host.AddApp("main", geoFull)
	ops := map[string]func() bool{
		"popup":        func() bool { return f.mgr.Popup(c, EventMap) },
		"fade":         func() bool { return f.mgr.Fade(c, EventMap) },
		"close":        func() bool { return f.mgr.CloseApp(c) },
		"notification": func() bool { return f.mgr.Notification(c, EventMap) },
		"subview":      func() bool { return f.mgr.Subview(c, main, EventMap) },
		"nil client":   func() bool { return f.mgr.Fade(nil, EventMap) },
	}
	for name, op := range ops {
		if op() {
			t.Fatalf("%s: expected rejection", name)
		}
	}
	if f.mgr.Running() != 0 || len(f.mgr.Effects()) != 0 {
		t.Fatalf("expected no partial effects")
	}
	if c.Refs() != 1 || main.Refs() != 1 {
		t.Fatalf("expected no references taken, got %d/%d", c.Refs(), main.Refs())
	}
}

type recordingSound struct {
	played []string
}

func (s *recordingSound) Play(path string) error {
	s.played = append(s.played, path)
	return nil
}

func TestCloseAppPreconditions(t *testing.T) {
	cases := []struct {
		name  string
		setup func(f *fixture) *memhost.Client
	}{
		{"dialog", func(f *fixture) *memhost.Client {
			return f.host.AddClient("dlg", wm.ClientDialog, geoFull)
		}},
		{"secondary", func(f *fixture) *memhost.Client {
			c := f.host.AddApp("stacked", geoFull)
			c.SetSecondary(true)
			return c
		}},
		{"task switcher", func(f *fixture) *memhost.Client {
			f.host.UI.SetState(memhost.StateTaskNav)
			return f.host.AddApp("app", geoFull)
		}},
		{"too small", func(f *fixture) *memhost.Client {
			return f.host.AddApp("tiny", scene.Geometry{Width: 15, Height: 400})
		}},
		{"hidden", func(f *fixture) *memhost.Client {
			c := f.host.AddApp("hidden", geoFull)
			c.Actor().Hide()
			return c
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sound := &recordingSound{}
			f := newFixture(t, WithSound(sound))
			c := tc.setup(f)
			if f.mgr.CloseApp(c) {
				t.Fatalf("expected close to be skipped")
			}
			if f.mgr.Running() != 0 || c.Flags() != 0 || len(sound.played) != 0 {
				t.Fatalf("expected no side effects")
			}
		})
	}
}

func TestCloseAppPlaysSoundAndFolds(t *testing.T) {
	sound := &recordingSound{}
	f := newFixture(t, WithSound(sound))
	c := f.host.AddApp("app", scene.Geometry{X: 100, Y: 40, Width: 400, Height: 200})
	f.mgr.CloseApp(c)

	if len(sound.played) != 1 || sound.played[0] != WindowClosedSound {
		t.Fatalf("expected window closed sound, got %v", sound.played)
	}
	g := group(c)
	if g.Parent() != scene.Container(f.host.UI.Front()) {
		t.Fatalf("expected actor moved to the front group")
	}
	if x, y := g.Position(); x != 300 || y != 140 {
		t.Fatalf("expected actor centred at 300,140, got %v,%v", x, y)
	}

	f.clk.Advance(320 * time.Millisecond)
	visible := 0
	for _, p := range f.host.Stage.Created() {
		if p.IsVisible() {
			visible++
		}
	}
	if visible == 0 {
		t.Fatalf("expected sparkles visible in the second half")
	}
	if sx, _ := g.Scale(); sx >= 1 {
		t.Fatalf("expected actor folded, scale %v", sx)
	}
	f.settle(t)
	f.assertClean(t)
}

func TestCloseAppWithoutParticles(t *testing.T) {
	f := newFixture(t)
	f.host.Stage.NoParticles = true
	c := f.host.AddApp("app", geoFull)
	if !f.mgr.CloseApp(c) {
		t.Fatalf("expected close without sparkles to run")
	}
	f.settle(t)
	f.assertClean(t)
	assertReleased(t, c)
}

func TestCloseAppFollowsScreenRotation(t *testing.T) {
	f := newFixture(t)
	c := f.host.AddApp("app", geoFull)
	f.mgr.CloseApp(c)
	f.clk.Advance(50 * time.Millisecond)

	f.host.Display.ChangeOrientation(true)
	g := group(c)
	axis, angle := g.Rotation()
	if axis != scene.ZAxis || angle != 90 {
		t.Fatalf("expected +90 z rotation, got %v %v", axis, angle)
	}
	if x, y := g.Position(); x != 240 || y != 400 {
		t.Fatalf("expected centre of rotated geometry, got %v,%v", x, y)
	}

	f.host.Display.ChangeOrientation(false)
	if axis, angle = g.Rotation(); angle != -90 {
		t.Fatalf("expected -90 rotation back to landscape, got %v %v", axis, angle)
	}
	if x, y := g.Position(); x != 400 || y != 240 {
		t.Fatalf("expected centre of landscape geometry, got %v,%v", x, y)
	}
	f.settle(t)
	f.assertClean(t)
}

func TestCloseAppBeforeRotateWithoutRotator(t *testing.T) {
	f := newFixture(t)
	c := f.host.AddApp("app", geoFull)
	if !f.mgr.CloseAppBeforeRotate(c) {
		t.Fatalf("expected effect")
	}
	if f.mgr.Running() != 0 {
		t.Fatalf("expected immediate completion, running %d", f.mgr.Running())
	}
	if !c.Flags().Has(wm.FlagDontShow) {
		t.Fatalf("expected closing client to stay hidden from the render manager")
	}
	f.assertClean(t)
	assertReleased(t, c)
}

type mapSettings map[string]float64

func (s mapSettings) GetInt(tr, key string, def int) int {
	if v, ok := s[tr+"/"+key]; ok {
		return int(v)
	}
	return def
}

func (s mapSettings) GetDouble(tr, key string, def float64) float64 {
	if v, ok := s[tr+"/"+key]; ok {
		return v
	}
	return def
}

func TestSettingsControlDuration(t *testing.T) {
	f := newFixture(t, WithSettings(mapSettings{"fade/duration_in": 1000}))
	c := f.host.AddClient("note", wm.ClientNote, geoBanner)
	f.mgr.Fade(c, EventMap)
	f.clk.Advance(600 * time.Millisecond)
	if f.mgr.Running() != 1 {
		t.Fatalf("expected configured duration to keep the fade running")
	}
	f.settle(t)
	if f.clk.Now().Sub(time.Unix(0, 0)) < time.Second {
		t.Fatalf("expected fade to last a second, ended at %v", f.clk.Now())
	}
}

func TestSecondEffectOverridesFirst(t *testing.T) {
	cases := []struct {
		name         string
		first        func(m *Manager, c wm.Client) bool
		second       func(m *Manager, c wm.Client) bool
		wantKind     Kind
		wantParented bool
	}{
		{
			name:         "entry over entry",
			first:        func(m *Manager, c wm.Client) bool { return m.Fade(c, EventMap) },
			second:       func(m *Manager, c wm.Client) bool { return m.Notification(c, EventMap) },
			wantKind:     KindNotification,
			wantParented: true,
		},
		{
			name:         "remap during exit",
			first:        func(m *Manager, c wm.Client) bool { return m.Fade(c, EventUnmap) },
			second:       func(m *Manager, c wm.Client) bool { return m.Fade(c, EventMap) },
			wantKind:     KindFade,
			wantParented: true,
		},
		{
			name:         "close during popup",
			first:        func(m *Manager, c wm.Client) bool { return m.Popup(c, EventMap) },
			second:       func(m *Manager, c wm.Client) bool { return m.CloseApp(c) },
			wantKind:     KindClose,
			wantParented: false,
		},
		{
			name:         "exit over exit",
			first:        func(m *Manager, c wm.Client) bool { return m.Fade(c, EventUnmap) },
			second:       func(m *Manager, c wm.Client) bool { return m.Popup(c, EventUnmap) },
			wantKind:     KindPopup,
			wantParented: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			c := f.host.AddApp("app", geoFull)

			if !tc.first(f.mgr, c) {
				t.Fatalf("expected the first effect to start")
			}
			f.clk.Advance(100 * time.Millisecond)
			if !tc.second(f.mgr, c) {
				t.Fatalf("expected the second effect to start")
			}
			f.clk.Advance(100 * time.Millisecond)

			if f.mgr.Running() != 1 {
				t.Fatalf("expected one live effect for the client, got %d", f.mgr.Running())
			}
			e := f.mgr.EffectFor(c)
			if e == nil || e.Kind() != tc.wantKind {
				t.Fatalf("expected the client bound to a %s effect, got %v", tc.wantKind, e)
			}
			if !c.Flags().Has(wm.FlagDontUpdate | wm.FlagEffectRunning) {
				t.Fatalf("expected flags kept while the second effect runs, got %b", c.Flags())
			}

			f.settle(t)
			if c.Flags().Has(wm.FlagEffectRunning) || c.Flags().Has(wm.FlagDontUpdate) {
				t.Fatalf("expected flags cleared after the last effect, got %b", c.Flags())
			}
			if got := group(c).Parent() != nil; got != tc.wantParented {
				t.Fatalf("expected parented=%v, got %v", tc.wantParented, got)
			}
			f.assertClean(t)
			assertReleased(t, c)
		})
	}
}

func TestRemapDuringExitRestoresWindow(t *testing.T) {
	f := newFixture(t)
	c := f.host.AddClient("menu", wm.ClientMenu, geoMenu)
	f.mgr.Fade(c, EventUnmap)
	f.clk.Advance(100 * time.Millisecond)
	f.mgr.Fade(c, EventMap)
	if f.mgr.ActorWillGoAway(c.Actor()) {
		t.Fatalf("expected a remapped actor to stay")
	}
	f.settle(t)

	st := snapshot(group(c))
	if !st.parented || !st.visible || st.opacity != 255 {
		t.Fatalf("expected the remapped window shown in the scene, got %+v", st)
	}
}
