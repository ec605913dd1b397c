// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: transition/rotator.go
// Summary: Orientation change sequencer: fade out, reconfigure, wait for the
//   screen to settle, fade back in.
// Usage: One Rotator per compositor; feed it rotation requests and damage.
// Notes: The sequence can be redirected while it runs but never aborted.

package transition

import (
	"log"
	"time"

	"github.com/framegrace/texelfx/clock"
	"github.com/framegrace/texelfx/wm"
)

// Direction is the orientation a rotation heads for.
type Direction int

const (
	ToLandscape Direction = iota
	ToPortrait
)

func (d Direction) String() string {
	if d == ToPortrait {
		return "portrait"
	}
	return "landscape"
}

func directionOf(portrait bool) Direction {
	if portrait {
		return ToPortrait
	}
	return ToLandscape
}

// Phase is the stage a rotation is in.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFadeOut
	PhaseWaiting
	PhaseFadeIn
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "IDLE"
	case PhaseFadeOut:
		return "FADE_OUT"
	case PhaseWaiting:
		return "WAITING"
	case PhaseFadeIn:
		return "FADE_IN"
	default:
		return "UNKNOWN"
	}
}

// RotationState is a snapshot of a Rotator.
type RotationState struct {
	Phase         Phase
	Direction     Direction
	Requested     Direction
	PendingState  wm.UIState
	HasPending    bool
	Deferred      int
	DebounceArmed bool
	Waiting       time.Duration
}

// RotatorOption configures a Rotator.
type RotatorOption func(*Rotator)

// OnPhase registers fn to observe every phase change.
func OnPhase(fn func(from, to Phase, dir Direction)) RotatorOption {
	return func(r *Rotator) { r.onPhase = fn }
}

// Rotator drives orientation changes.
type Rotator struct {
	mgr      *Manager
	display  wm.Display
	ui       wm.StateManager
	clock    clock.Clock
	settings Settings

	phase     Phase
	direction Direction
	requested Direction

	pendingState wm.UIState
	hasPending   bool

	debounce     clock.Timer
	waitStarted  time.Time
	waitTimed    bool
	deferred     []*Effect
	fade         *Effect
	stepping     bool
	rerun        bool
	onPhase      func(from, to Phase, dir Direction)
}

// NewRotator returns an idle rotator facing the current orientation. It takes
// over the close-before-rotate hand-off of mgr.
func NewRotator(mgr *Manager, display wm.Display, opts ...RotatorOption) *Rotator {
	r := &Rotator{
		mgr:      mgr,
		display:  display,
		ui:       mgr.ui,
		clock:    mgr.clock,
		settings: mgr.settings,
	}
	r.direction = directionOf(r.ui.InPortrait())
	r.requested = r.direction
	for _, opt := range opts {
		opt(r)
	}
	mgr.deferClose = r.deferEffect
	return r
}

// State returns a snapshot of the rotator.
func (r *Rotator) State() RotationState {
	st := RotationState{
		Phase:         r.phase,
		Direction:     r.direction,
		Requested:     r.requested,
		PendingState:  r.pendingState,
		HasPending:    r.hasPending,
		Deferred:      len(r.deferred),
		DebounceArmed: r.debounce != nil,
	}
	if r.waitTimed {
		st.Waiting = r.clock.Now().Sub(r.waitStarted)
	}
	return st
}

// RotateScreen requests a rotation. It returns false, changing nothing, when
// no rotation runs and the screen already has that orientation.
func (r *Rotator) RotateScreen(portrait bool) bool {
	dir := directionOf(portrait)
	if r.phase == PhaseIdle {
		if r.ui.InPortrait() == portrait {
			log.Printf("Transition: already in %s mode", dir)
			return false
		}
		r.requested = dir
		r.run()
		return true
	}
	debugLog.Printf("rotate: redirect to %s during %s", dir, r.phase)
	r.requested = dir
	return true
}

// ChangeStateAfterRotate asks for state to be set once the screen is blank.
// It is applied only if it suits the orientation being rotated to.
func (r *Rotator) ChangeStateAfterRotate(state wm.UIState) {
	r.pendingState = state
	r.hasPending = true
}

// IgnoreDamage reports whether screen damage should be dropped. While waiting
// for the screen to settle, each call also postpones the fade in, up to the
// configured ceiling.
func (r *Rotator) IgnoreDamage() bool {
	if r.phase != PhaseWaiting {
		return false
	}
	ceiling := millis(r.settings.GetDouble(SectionRotate, KeyDamageTimeoutMax, DefaultDamageTimeoutMax))
	if r.clock.Now().Sub(r.waitStarted) < ceiling {
		r.armDebounce()
	}
	return true
}

// CloseAppAndRotate closes c once the screen has faded out for a rotation
// to the given orientation. It reports whether the rotation was accepted.
func (r *Rotator) CloseAppAndRotate(c wm.Client, portrait bool) bool {
	accepted := r.RotateScreen(portrait)
	r.mgr.CloseAppBeforeRotate(c)
	return accepted
}

func (r *Rotator) deferEffect(e *Effect) {
	if r.phase != PhaseFadeOut {
		// Nothing will blank the screen for it; finish now.
		r.mgr.complete(e)
		return
	}
	r.deferred = append(r.deferred, e)
}

// run steps the machine until it has to wait for a timer.
func (r *Rotator) run() {
	if r.stepping {
		r.rerun = true
		return
	}
	r.stepping = true
	defer func() { r.stepping = false }()
	for {
		r.rerun = false
		if !r.step() && !r.rerun {
			return
		}
	}
}

// step performs the work of the current phase boundary and reports whether
// the next phase must run immediately.
func (r *Rotator) step() bool {
	r.stopTimers()

	switch r.phase {
	case PhaseIdle:
		r.direction = r.requested
		r.setPhase(PhaseFadeOut)
		r.startFade(true)
		return false

	case PhaseFadeOut:
		r.applyPendingState()
		r.drainDeferred()
		if r.direction != r.requested {
			// Restart the fade heading the corrected way.
			r.direction = r.requested
			r.setPhase(PhaseFadeOut)
			r.startFade(true)
			return false
		}
		r.setPhase(PhaseWaiting)
		if render := r.ui.RenderActor(); render != nil {
			render.Hide()
		}
		r.waitStarted = r.clock.Now()
		r.waitTimed = true
		r.armDebounce()
		r.display.ChangeOrientation(r.direction == ToPortrait)
		return false

	case PhaseWaiting:
		if r.direction != r.requested {
			r.direction = r.requested
			r.setPhase(PhaseFadeOut)
			return true
		}
		r.setPhase(PhaseFadeIn)
		if render := r.ui.RenderActor(); render != nil {
			render.Show()
		}
		r.startFade(false)
		r.ui.Restack()
		return false

	case PhaseFadeIn:
		r.setPhase(PhaseIdle)
		r.drainDeferred()
		return r.direction != r.requested
	}
	return false
}

func (r *Rotator) setPhase(p Phase) {
	from := r.phase
	r.phase = p
	debugLog.Printf("rotate: %s -> %s (%s)", from, p, r.direction)
	if r.onPhase != nil {
		r.onPhase(from, p, r.direction)
	}
}

func (r *Rotator) startFade(firstPart bool) {
	r.fade = r.mgr.fadeAndRotate(firstPart, r.direction == ToPortrait, r.fadeDone)
}

func (r *Rotator) fadeDone() {
	r.fade = nil
	r.run()
}

func (r *Rotator) armDebounce() {
	if r.debounce != nil {
		r.debounce.Stop()
	}
	d := millis(r.settings.GetDouble(SectionRotate, KeyDamageTimeout, DefaultDamageTimeout))
	r.debounce = r.clock.AfterFunc(d, r.debounceFired)
}

func (r *Rotator) debounceFired() {
	r.debounce = nil
	if r.phase != PhaseWaiting {
		return
	}
	r.run()
}

func (r *Rotator) stopTimers() {
	if r.debounce != nil {
		r.debounce.Stop()
		r.debounce = nil
	}
	r.waitTimed = false
}

func (r *Rotator) applyPendingState() {
	if !r.hasPending {
		return
	}
	state := r.pendingState
	r.pendingState, r.hasPending = 0, false

	var ok bool
	if r.requested == ToPortrait {
		ok = r.ui.IsPortrait(state) || r.ui.IsPortraitCapable(state)
	} else {
		ok = !r.ui.IsPortrait(state)
	}
	if !ok {
		debugLog.Printf("rotate: state %d does not suit %s, dropped", state, r.requested)
		return
	}
	r.ui.SetState(state)
}

func (r *Rotator) drainDeferred() {
	pending := r.deferred
	r.deferred = nil
	for _, e := range pending {
		r.mgr.complete(e)
	}
}
