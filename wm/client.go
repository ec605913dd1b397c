// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: wm/client.go
// Summary: Window-client model consumed by the transition core.
// Usage: Implemented by the window manager host.

package wm

import "github.com/framegrace/texelfx/scene"

// ClientFlags is the per-client compositor bitmask.
type ClientFlags uint32

const (
	// FlagDontUpdate suspends redraws of the client's actor.
	FlagDontUpdate ClientFlags = 1 << iota
	// FlagEffectRunning marks a client that is the target of a running effect.
	FlagEffectRunning
	// FlagDontShow keeps the render manager from showing the actor.
	FlagDontShow
)

// Has reports whether all bits of f are set.
func (c ClientFlags) Has(f ClientFlags) bool {
	return c&f == f
}

// ClientType classifies managed windows.
type ClientType int

const (
	ClientApp ClientType = iota
	ClientDialog
	ClientMenu
	ClientNote
	ClientDesktop
	ClientPanel
)

func (t ClientType) String() string {
	switch t {
	case ClientApp:
		return "app"
	case ClientDialog:
		return "dialog"
	case ClientMenu:
		return "menu"
	case ClientNote:
		return "note"
	case ClientDesktop:
		return "desktop"
	case ClientPanel:
		return "panel"
	default:
		return "unknown"
	}
}

// Client is a managed window as seen by the compositor.
type Client interface {
	// ID is stable for the lifetime of the client.
	ID() string

	Ref()
	Unref()

	// Actor returns the client's scene actor, or nil if it has none yet.
	Actor() scene.Actor
	Type() ClientType
	// IsSecondary reports a non-leading window of an application stack.
	IsSecondary() bool

	Flags() ClientFlags
	SetFlags(f ClientFlags)
	UnsetFlags(f ClientFlags)
}
