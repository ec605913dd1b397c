// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wm/state.go
// Summary: UI-state manager and display collaborators.

package wm

import "github.com/framegrace/texelfx/scene"

// UIState is an opaque render-manager state owned by the host.
type UIState int

// StateManager exposes the host's global rendering state.
type StateManager interface {
	State() UIState
	SetState(s UIState)

	IsPortrait(s UIState) bool
	IsPortraitCapable(s UIState) bool
	IsApp(s UIState) bool
	IsTaskNav(s UIState) bool

	// InPortrait reports whether the screen is currently in portrait mode.
	InPortrait() bool
	ScreenSize() (width, height int)

	// RenderActor is the top-level actor that is dimmed and rotated.
	RenderActor() scene.Container
	// FrontGroup holds actors that must stay visible across view changes.
	FrontGroup() scene.Container
	// Restack re-evaluates stacking and blur.
	Restack()
}

// Display performs the physical screen reconfiguration. Its completion is
// observed indirectly through damage notifications.
type Display interface {
	ChangeOrientation(portrait bool)
}
