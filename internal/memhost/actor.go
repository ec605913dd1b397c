// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/memhost/actor.go
// Summary: In-memory scene actors with reference counting.
// Usage: Backs tests, the headless simulator and the terminal demo.

package memhost

import (
	"fmt"

	"github.com/framegrace/texelfx/scene"
)

// Actor is a plain scene actor. Group embeds it to hold children.
type Actor struct {
	self  scene.Actor
	name  string
	kind  string
	color scene.Color

	refs         int
	overReleased int

	visible bool
	x, y    float64
	w, h    float64
	opacity uint8
	sx, sy  float64
	ax, ay  float64
	depth   float64

	rotAxis  scene.Axis
	rotAngle float64
	rotCX    float64
	rotCY    float64

	parent scene.Container
}

func newActor(name, kind string) *Actor {
	a := &Actor{
		name:    name,
		kind:    kind,
		refs:    1,
		visible: true,
		opacity: 0xff,
		sx:      1,
		sy:      1,
	}
	a.self = a
	return a
}

// NewActor returns a visible actor with the given geometry, holding one reference.
func NewActor(name string, geo scene.Geometry) *Actor {
	a := newActor(name, "actor")
	a.x, a.y = float64(geo.X), float64(geo.Y)
	a.w, a.h = float64(geo.Width), float64(geo.Height)
	return a
}

func (a *Actor) Name() string { return a.name }

// Kind is "actor", "group", "rect", "particle" or "titlebar".
func (a *Actor) Kind() string { return a.kind }

func (a *Actor) Color() scene.Color { return a.color }

func (a *Actor) String() string {
	return fmt.Sprintf("%s(%s)", a.kind, a.name)
}

func (a *Actor) Ref() { a.refs++ }

func (a *Actor) Unref() {
	if a.refs <= 0 {
		a.overReleased++
		return
	}
	a.refs--
}

// Refs returns the live reference count.
func (a *Actor) Refs() int { return a.refs }

// OverReleased counts Unref calls made with no reference left.
func (a *Actor) OverReleased() int { return a.overReleased }

func (a *Actor) Show() { a.visible = true }
func (a *Actor) Hide() { a.visible = false }
func (a *Actor) IsVisible() bool { return a.visible }

func (a *Actor) Geometry() scene.Geometry {
	return scene.Geometry{X: int(a.x), Y: int(a.y), Width: int(a.w), Height: int(a.h)}
}

func (a *Actor) Position() (float64, float64) { return a.x, a.y }

func (a *Actor) SetPosition(x, y float64) { a.x, a.y = x, y }

func (a *Actor) SetSize(w, h float64) { a.w, a.h = w, h }

func (a *Actor) Opacity() uint8 { return a.opacity }

func (a *Actor) SetOpacity(o uint8) { a.opacity = o }

func (a *Actor) Scale() (float64, float64) { return a.sx, a.sy }

func (a *Actor) SetScale(sx, sy float64) { a.sx, a.sy = sx, sy }

func (a *Actor) AnchorPoint() (float64, float64) { return a.ax, a.ay }

func (a *Actor) SetAnchorPoint(ax, ay float64) { a.ax, a.ay = ax, ay }

func (a *Actor) Rotation() (scene.Axis, float64) { return a.rotAxis, a.rotAngle }

func (a *Actor) SetRotation(axis scene.Axis, angle, cx, cy float64) {
	a.rotAxis, a.rotAngle, a.rotCX, a.rotCY = axis, angle, cx, cy
}

func (a *Actor) Depth() float64 { return a.depth }

func (a *Actor) SetDepth(d float64) { a.depth = d }

func (a *Actor) Parent() scene.Container { return a.parent }

func (a *Actor) Reparent(c scene.Container) {
	if a.parent == c {
		return
	}
	scene.Unparent(a.self)
	if c != nil {
		c.Add(a.self)
	}
}

func (a *Actor) RaiseTop() {
	if g, ok := a.parent.(*Group); ok {
		g.move(a.self, true)
	}
}

func (a *Actor) LowerBottom() {
	if g, ok := a.parent.(*Group); ok {
		g.move(a.self, false)
	}
}

// VisualRect returns the on-stage rectangle after anchor and scale, ignoring
// rotation and the parent chain.
func (a *Actor) VisualRect() (x, y, w, h float64) {
	return a.x - a.ax*a.sx, a.y - a.ay*a.sy, a.w * a.sx, a.h * a.sy
}

// Group is an actor holding children, bottom first.
type Group struct {
	*Actor
	children []scene.Actor
}

// NewGroup returns an empty visible group holding one reference.
func NewGroup(name string, geo scene.Geometry) *Group {
	g := &Group{Actor: NewActor(name, geo)}
	g.kind = "group"
	g.self = g
	return g
}

func (g *Group) Add(child scene.Actor) {
	if child == nil {
		return
	}
	scene.Unparent(child)
	g.children = append(g.children, child)
	if base := baseOf(child); base != nil {
		base.parent = g
	}
}

func (g *Group) Remove(child scene.Actor) {
	for i, c := range g.children {
		if c == child {
			g.children = append(g.children[:i], g.children[i+1:]...)
			if base := baseOf(child); base != nil && base.parent == scene.Container(g) {
				base.parent = nil
			}
			return
		}
	}
}

// Children returns a copy of the child list, bottom first.
func (g *Group) Children() []scene.Actor {
	return append([]scene.Actor(nil), g.children...)
}

// Contains reports whether child is a direct child of g.
func (g *Group) Contains(child scene.Actor) bool {
	for _, c := range g.children {
		if c == child {
			return true
		}
	}
	return false
}

func (g *Group) move(child scene.Actor, top bool) {
	for i, c := range g.children {
		if c != child {
			continue
		}
		g.children = append(g.children[:i], g.children[i+1:]...)
		if top {
			g.children = append(g.children, child)
		} else {
			g.children = append([]scene.Actor{child}, g.children...)
		}
		return
	}
}

func baseOf(a scene.Actor) *Actor {
	switch v := a.(type) {
	case *Actor:
		return v
	case *Group:
		return v.Actor
	default:
		return nil
	}
}
