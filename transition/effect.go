// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: transition/effect.go
// Summary: Effect record holding the state of one in-flight transition.
// Usage: Created by Manager operations, torn down exactly once by Manager.complete.

package transition

import (
	"github.com/framegrace/texelfx/internal/effects"
	"github.com/framegrace/texelfx/scene"
)

// Kind identifies the animation an effect performs.
type Kind int

const (
	KindPopup Kind = iota
	KindFade
	KindClose
	KindCloseBeforeRotate
	KindNotification
	KindSubview
	KindRotate
)

func (k Kind) String() string {
	switch k {
	case KindPopup:
		return "popup"
	case KindFade:
		return "fade"
	case KindClose:
		return "close"
	case KindCloseBeforeRotate:
		return "close-before-rotate"
	case KindNotification:
		return "notification"
	case KindSubview:
		return "subview"
	case KindRotate:
		return "rotate"
	default:
		return "unknown"
	}
}

// Event is the lifecycle direction of a transition.
type Event int

const (
	// EventMap animates something appearing.
	EventMap Event = iota
	// EventUnmap animates something going away.
	EventUnmap
)

func (e Event) String() string {
	if e == EventMap {
		return "map"
	}
	return "unmap"
}

// MaxDecorations bounds the auxiliary actors one effect may own.
const MaxDecorations = 8

type frameFunc func(e *Effect, progress float32, last bool)

// Effect is one in-flight transition.
type Effect struct {
	id    string
	kind  Kind
	event Event

	primary        clientHandle
	primaryActor   actorHandle
	secondary      clientHandle
	secondaryActor actorHandle
	decorations    [MaxDecorations]actorHandle

	geo   scene.Geometry
	angle float64

	timeline     *effects.Timeline
	frame        frameFunc
	cancelResize func()

	then      []func()
	cancelled bool
	done      bool
	// handedOver is set when a newer effect on the same client took the
	// actor over before this exit finished.
	handedOver bool
}

func (e *Effect) ID() string   { return e.id }
func (e *Effect) Kind() Kind   { return e.kind }
func (e *Effect) Event() Event { return e.event }

// Done reports whether the effect has been torn down.
func (e *Effect) Done() bool { return e.done }

// Progress returns the progress of the last emitted frame.
func (e *Effect) Progress() float32 {
	if e.timeline == nil {
		return 0
	}
	return e.timeline.Progress()
}

// Then queues fn to run after teardown unless the effect is cancelled first.
func (e *Effect) Then(fn func()) {
	if fn == nil || e.done {
		return
	}
	e.then = append(e.then, fn)
}

// Cancel drops the pending continuations. Teardown still happens.
func (e *Effect) Cancel() {
	e.cancelled = true
	e.then = nil
}

func (e *Effect) apply(progress float32, last bool) {
	if e.frame == nil || e.done {
		return
	}
	e.frame(e, progress, last)
}

func (e *Effect) setDecoration(i int, a scene.Actor) {
	if a == nil || i < 0 || i >= MaxDecorations {
		return
	}
	e.decorations[i].release()
	e.decorations[i] = adoptActor(a)
}

func (e *Effect) decoration(i int) scene.Actor {
	if i < 0 || i >= MaxDecorations {
		return nil
	}
	return e.decorations[i].get()
}
