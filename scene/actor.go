// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: scene/actor.go
// Summary: Scene-graph interfaces consumed by the transition core.
// Usage: Implemented by the compositor host (or internal/memhost in tests).
// Notes: Actors are reference counted; every Ref must be matched by one Unref.

package scene

// Geometry is an actor's position and size in stage pixels.
type Geometry struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Color is an 8-bit RGBA colour.
type Color struct {
	R, G, B, A uint8
}

// Black is the opaque black used for dimming and masks.
var Black = Color{A: 0xff}

// Axis selects the rotation axis for SetRotation.
type Axis int

const (
	XAxis Axis = iota
	YAxis
	ZAxis
)

func (a Axis) String() string {
	switch a {
	case XAxis:
		return "x"
	case YAxis:
		return "y"
	case ZAxis:
		return "z"
	default:
		return "unknown"
	}
}

// Actor is one visible element of the scene graph.
type Actor interface {
	Name() string

	Ref()
	Unref()

	Show()
	Hide()
	IsVisible() bool

	Geometry() Geometry
	Position() (x, y float64)
	SetPosition(x, y float64)
	SetSize(width, height float64)

	Opacity() uint8
	SetOpacity(opacity uint8)
	SetScale(sx, sy float64)
	SetAnchorPoint(ax, ay float64)
	SetRotation(axis Axis, angle, cx, cy float64)
	SetDepth(depth float64)

	// Parent returns the containing actor, or nil when unparented.
	Parent() Container
	// Reparent moves the actor into c, keeping its own properties.
	Reparent(c Container)
	RaiseTop()
	LowerBottom()
}

// Container is an actor that holds children.
type Container interface {
	Actor
	Add(child Actor)
	Remove(child Actor)
}

// Unparent removes a from its parent container, if any.
func Unparent(a Actor) {
	if a == nil {
		return
	}
	if parent := a.Parent(); parent != nil {
		parent.Remove(a)
	}
}

// Stage is the root of the scene graph and the factory for auxiliary actors.
type Stage interface {
	Root() Container
	Size() (width, height int)

	// NewRectangle returns a new, unparented, hidden rectangle holding one reference.
	NewRectangle(color Color) Actor
	// NewParticle returns a sparkle texture actor holding one reference, or nil
	// when the theme has none.
	NewParticle() Actor
	// NewFakeTitleBar returns a title-bar background of the given width,
	// holding one reference.
	NewFakeTitleBar(width int) Actor

	// OnResize registers fn for stage allocation changes. The returned function
	// removes the registration.
	OnResize(fn func(width, height int)) (cancel func())
}
