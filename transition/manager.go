// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: transition/manager.go
// Summary: Effect lifecycle manager: start, track, stop and tear down transitions.
// Usage: The window manager calls one operation per lifecycle event; frames and
//   completion are driven by the host clock.
// Notes: Single-threaded. Every method must run on the event-loop goroutine.

package transition

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/framegrace/texelfx/clock"
	"github.com/framegrace/texelfx/internal/effects"
	"github.com/framegrace/texelfx/scene"
	"github.com/framegrace/texelfx/wm"
)

// WindowClosedSound is played when an application window closes.
const WindowClosedSound = "/usr/share/sounds/ui-window_close.wav"

// SoundPlayer plays short audio cues.
type SoundPlayer interface {
	Play(path string) error
}

// Host bundles the collaborators a Manager animates.
type Host struct {
	Stage scene.Stage
	UI    wm.StateManager
	Clock clock.Clock
}

// Option configures a Manager.
type Option func(*Manager)

// WithSettings sets the parameter source. The default uses built-in values.
func WithSettings(s Settings) Option {
	return func(m *Manager) {
		if s != nil {
			m.settings = s
		}
	}
}

// WithSound sets the audio cue player.
func WithSound(p SoundPlayer) Option {
	return func(m *Manager) { m.sound = p }
}

// WithRunningHook registers fn to observe the running-effect counter.
func WithRunningHook(fn func(running int)) Option {
	return func(m *Manager) { m.onRunning = fn }
}

// WithFillerColor sets the colour painted behind overshooting popups.
func WithFillerColor(c scene.Color) Option {
	return func(m *Manager) { m.filler = c }
}

// Manager owns every running Effect.
type Manager struct {
	stage    scene.Stage
	ui       wm.StateManager
	clock    clock.Clock
	settings Settings
	sound    SoundPlayer
	filler   scene.Color

	onRunning func(running int)
	running   int
	live      map[*Effect]struct{}
	byClient  map[string]*Effect

	// deferClose receives close-before-rotate effects; a Rotator installs it.
	deferClose func(e *Effect)
}

// NewManager returns a manager animating host.
func NewManager(host Host, opts ...Option) *Manager {
	m := &Manager{
		stage:    host.Stage,
		ui:       host.UI,
		clock:    host.Clock,
		settings: DefaultSettings{},
		filler:   scene.Color{R: 0x30, G: 0x30, B: 0x30, A: 0xff},
		live:     make(map[*Effect]struct{}),
		byClient: make(map[string]*Effect),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Running returns the number of effects not yet torn down.
func (m *Manager) Running() int { return m.running }

// EffectFor returns the effect currently bound to c, or nil.
func (m *Manager) EffectFor(c wm.Client) *Effect {
	if c == nil {
		return nil
	}
	return m.byClient[c.ID()]
}

// Effects returns the live effects in no particular order.
func (m *Manager) Effects() []*Effect {
	out := make([]*Effect, 0, len(m.live))
	for e := range m.live {
		out = append(out, e)
	}
	return out
}

func (m *Manager) newEffect(kind Kind, event Event, frame frameFunc) *Effect {
	return &Effect{
		id:    uuid.NewString(),
		kind:  kind,
		event: event,
		frame: frame,
	}
}

func (m *Manager) bind(c wm.Client, e *Effect) {
	if c != nil {
		m.byClient[c.ID()] = e
	}
}

func (m *Manager) unbind(c wm.Client, e *Effect) {
	if c == nil {
		return
	}
	if m.byClient[c.ID()] == e {
		delete(m.byClient, c.ID())
	}
}

// override forces any other effect still bound to c to its end state, so a
// client is only ever animated by one effect. An overridden exit leaves the
// actor in the scene; the new effect decides whether it goes away.
func (m *Manager) override(c wm.Client, e *Effect) {
	if c == nil {
		return
	}
	old := m.byClient[c.ID()]
	if old == nil || old == e || old.done {
		return
	}
	if old.event == EventUnmap && old.primary.is(c) {
		old.handedOver = true
	}
	debugLog.Printf("%s/%s %s overrides %s/%s %s on %s",
		e.kind, e.event, e.id, old.kind, old.event, old.id, c.ID())
	m.finish(old)
}

func (m *Manager) setPrimary(e *Effect, c wm.Client, actor scene.Actor) {
	m.override(c, e)
	e.primary = holdClient(c)
	e.primaryActor = holdActor(actor)
	m.bind(c, e)
}

func (m *Manager) setSecondary(e *Effect, c wm.Client, actor scene.Actor) {
	m.override(c, e)
	e.secondary = holdClient(c)
	e.secondaryActor = holdActor(actor)
	m.bind(c, e)
}

func (m *Manager) duration(section string, event Event, def int) time.Duration {
	return millis(float64(m.settings.GetInt(section, durationKey(event), def)))
}

// track registers e as running and marks its clients.
func (m *Manager) track(e *Effect, flags wm.ClientFlags) {
	if c := e.primary.get(); c != nil {
		c.SetFlags(flags)
	}
	if c := e.secondary.get(); c != nil {
		c.SetFlags(flags)
	}
	m.live[e] = struct{}{}
	m.running++
	m.notifyRunning()
}

// launch tracks e, draws its first frame and starts its timeline.
func (m *Manager) launch(e *Effect, d time.Duration) {
	tl := effects.NewTimeline(m.clock, d)
	tl.OnFrame(func(progress float32, last bool) { e.apply(progress, last) })
	tl.OnCompleted(func() { m.complete(e) })
	e.timeline = tl

	m.track(e, wm.FlagDontUpdate|wm.FlagEffectRunning)
	e.apply(0, false)
	tl.Start()
	debugLog.Printf("start %s/%s %s (%v)", e.kind, e.event, e.id, d)
}

// complete tears e down. It is the only place an effect releases what it
// holds, and running it twice is a no-op.
func (m *Manager) complete(e *Effect) {
	if e == nil || e.done {
		return
	}
	e.done = true
	if e.timeline != nil {
		e.timeline.Stop()
	}
	if e.cancelResize != nil {
		e.cancelResize()
		e.cancelResize = nil
	}

	if c := e.primary.get(); c != nil {
		m.unbind(c, e)
		c.UnsetFlags(wm.FlagDontUpdate | wm.FlagEffectRunning)
		if e.event == EventUnmap && !e.handedOver {
			scene.Unparent(e.primaryActor.get())
		}
	}
	e.primaryActor.release()
	e.primary.release()

	if c := e.secondary.get(); c != nil {
		m.unbind(c, e)
		c.UnsetFlags(wm.FlagDontUpdate | wm.FlagEffectRunning)
	}
	e.secondaryActor.release()
	e.secondary.release()

	for i := range e.decorations {
		scene.Unparent(e.decorations[i].get())
		e.decorations[i].release()
	}

	delete(m.live, e)
	m.running--
	m.notifyRunning()
	debugLog.Printf("done %s/%s %s", e.kind, e.event, e.id)

	then := e.then
	e.then = nil
	if e.cancelled {
		return
	}
	for _, fn := range then {
		fn()
	}
}

func (m *Manager) notifyRunning() {
	if m.onRunning != nil {
		m.onRunning(m.running)
	}
}

// Stop forces the effect on c to its final frame and tears it down. It
// reports whether c had an effect.
func (m *Manager) Stop(c wm.Client) bool {
	e := m.EffectFor(c)
	if e == nil || e.done {
		return false
	}
	m.finish(e)
	return true
}

// StopAll forces every running effect to its end state.
func (m *Manager) StopAll() {
	for _, e := range m.Effects() {
		m.finish(e)
	}
}

func (m *Manager) finish(e *Effect) {
	if e.timeline != nil {
		e.timeline.Stop()
	}
	e.apply(1, true)
	m.complete(e)
}

// ActorWillGoAway reports whether actor is being animated out and will be
// removed once its effect finishes.
func (m *Manager) ActorWillGoAway(actor scene.Actor) bool {
	if actor == nil {
		return false
	}
	for e := range m.live {
		if e.event == EventUnmap && e.primary.get() != nil && e.primaryActor.get() == actor {
			return true
		}
	}
	return false
}

func (m *Manager) playSound(path string) {
	if m.sound == nil {
		return
	}
	start := time.Now()
	if err := m.sound.Play(path); err != nil {
		log.Printf("Transition: sound %s: %v", path, err)
		return
	}
	if took := time.Since(start); took > 100*time.Millisecond {
		log.Printf("Transition: sound %s took %v to start", path, took)
	}
}

func opacity(amt float64) uint8 {
	v := 255 * amt
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}
