// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/memhost/stage.go
// Summary: In-memory stage implementing scene.Stage.

package memhost

import (
	"fmt"
	"slices"

	"github.com/framegrace/texelfx/scene"
)

const (
	// ParticleSize is the edge of a sparkle texture.
	ParticleSize = 16
	// TitleBarHeight is the height of a fake title bar.
	TitleBarHeight = 56
)

// Stage is a scene root with resize notifications. It remembers every actor
// it created so tests can check that each one was released.
type Stage struct {
	root      *Group
	width     int
	height    int
	created   []*Actor
	listeners map[int]func(int, int)
	nextID    int

	// NoParticles makes NewParticle return nil, like a theme without the image.
	NoParticles bool
}

// NewStage returns a stage of the given size.
func NewStage(width, height int) *Stage {
	return &Stage{
		root:      NewGroup("stage", scene.Geometry{Width: width, Height: height}),
		width:     width,
		height:    height,
		listeners: make(map[int]func(int, int)),
	}
}

func (s *Stage) Root() scene.Container { return s.root }

// RootGroup returns the concrete root group.
func (s *Stage) RootGroup() *Group { return s.root }

func (s *Stage) Size() (int, int) { return s.width, s.height }

// SetSize changes the stage allocation and notifies listeners.
func (s *Stage) SetSize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	s.root.SetSize(float64(width), float64(height))
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if fn, ok := s.listeners[id]; ok {
			fn(width, height)
		}
	}
}

func (s *Stage) NewRectangle(color scene.Color) scene.Actor {
	a := s.track(newActor(fmt.Sprintf("rect-%d", len(s.created)), "rect"))
	a.color = color
	a.visible = false
	return a
}

func (s *Stage) NewParticle() scene.Actor {
	if s.NoParticles {
		return nil
	}
	a := s.track(newActor(fmt.Sprintf("particle-%d", len(s.created)), "particle"))
	a.w, a.h = ParticleSize, ParticleSize
	a.visible = false
	return a
}

func (s *Stage) NewFakeTitleBar(width int) scene.Actor {
	a := s.track(newActor(fmt.Sprintf("titlebar-%d", len(s.created)), "titlebar"))
	a.w, a.h = float64(width), TitleBarHeight
	return a
}

func (s *Stage) OnResize(fn func(int, int)) func() {
	s.nextID++
	id := s.nextID
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

// Listeners returns the number of registered resize callbacks.
func (s *Stage) Listeners() int { return len(s.listeners) }

// Created returns every auxiliary actor made by the stage.
func (s *Stage) Created() []*Actor {
	return append([]*Actor(nil), s.created...)
}

// Leaked returns created actors that still hold references.
func (s *Stage) Leaked() []*Actor {
	var out []*Actor
	for _, a := range s.created {
		if a.refs > 0 {
			out = append(out, a)
		}
	}
	return out
}

func (s *Stage) track(a *Actor) *Actor {
	s.created = append(s.created, a)
	return a
}
