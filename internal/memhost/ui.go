// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/memhost/ui.go
// Summary: In-memory UI-state manager and display.

package memhost

import (
	"github.com/framegrace/texelfx/scene"
	"github.com/framegrace/texelfx/wm"
)

// UI states understood by the in-memory render manager.
const (
	StateHome wm.UIState = iota + 1
	StateApp
	StateAppPortrait
	StateTaskNav
	StateLauncher
)

// StateName returns a readable name for the states above.
func StateName(s wm.UIState) string {
	switch s {
	case StateHome:
		return "home"
	case StateApp:
		return "app"
	case StateAppPortrait:
		return "app-portrait"
	case StateTaskNav:
		return "task-nav"
	case StateLauncher:
		return "launcher"
	default:
		return "undefined"
	}
}

// UI implements wm.StateManager on top of a Stage.
type UI struct {
	stage      *Stage
	state      wm.UIState
	portrait   bool
	render     *Group
	front      *Group
	restacks   int
	stateLog   []wm.UIState
	portraitOK map[wm.UIState]bool
}

// NewUI builds the render-manager group and front group under the stage root.
func NewUI(stage *Stage) *UI {
	w, h := stage.Size()
	ui := &UI{
		stage:  stage,
		state:  StateHome,
		render: NewGroup("render-manager", scene.Geometry{Width: w, Height: h}),
		front:  NewGroup("front", scene.Geometry{Width: w, Height: h}),
		portraitOK: map[wm.UIState]bool{
			StateApp: true,
		},
	}
	stage.RootGroup().Add(ui.render)
	ui.render.Add(ui.front)
	return ui
}

func (u *UI) State() wm.UIState { return u.state }

func (u *UI) SetState(s wm.UIState) {
	u.state = s
	u.stateLog = append(u.stateLog, s)
}

// StateLog returns every state set through SetState.
func (u *UI) StateLog() []wm.UIState {
	return append([]wm.UIState(nil), u.stateLog...)
}

func (u *UI) IsPortrait(s wm.UIState) bool { return s == StateAppPortrait }
func (u *UI) IsPortraitCapable(s wm.UIState) bool { return u.portraitOK[s] }
func (u *UI) IsApp(s wm.UIState) bool { return s == StateApp || s == StateAppPortrait }
func (u *UI) IsTaskNav(s wm.UIState) bool { return s == StateTaskNav }

// SetPortraitCapable toggles whether s may be shown in portrait.
func (u *UI) SetPortraitCapable(s wm.UIState, ok bool) { u.portraitOK[s] = ok }

func (u *UI) InPortrait() bool { return u.portrait }

func (u *UI) ScreenSize() (int, int) { return u.stage.Size() }

func (u *UI) RenderActor() scene.Container { return u.render }

// RenderGroup returns the concrete render-manager group.
func (u *UI) RenderGroup() *Group { return u.render }

func (u *UI) FrontGroup() scene.Container { return u.front }

// Front returns the concrete front group.
func (u *UI) Front() *Group { return u.front }

func (u *UI) Restack() { u.restacks++ }

// Restacks counts Restack calls.
func (u *UI) Restacks() int { return u.restacks }

// Display swaps the stage dimensions on reconfiguration and records calls.
type Display struct {
	ui    *UI
	calls []bool

	// OnChange, when set, runs after every reconfiguration; hosts use it to
	// inject the damage that the reconfigured clients produce.
	OnChange func(portrait bool)
}

// NewDisplay returns a display driving ui's stage.
func NewDisplay(ui *UI) *Display {
	return &Display{ui: ui}
}

func (d *Display) ChangeOrientation(portrait bool) {
	d.calls = append(d.calls, portrait)
	w, h := d.ui.stage.Size()
	if portrait != (h > w) {
		d.ui.stage.SetSize(h, w)
		d.ui.render.SetSize(float64(h), float64(w))
		d.ui.front.SetSize(float64(h), float64(w))
	}
	d.ui.portrait = portrait
	if d.OnChange != nil {
		d.OnChange(portrait)
	}
}

// Calls returns the requested orientations, oldest first.
func (d *Display) Calls() []bool {
	return append([]bool(nil), d.calls...)
}

// Host bundles a complete in-memory compositor.
type Host struct {
	Stage   *Stage
	UI      *UI
	Display *Display
}

// New returns a landscape host of the given size.
func New(width, height int) *Host {
	stage := NewStage(width, height)
	ui := NewUI(stage)
	return &Host{Stage: stage, UI: ui, Display: NewDisplay(ui)}
}

// AddApp creates an application client whose actor sits in the render group.
func (h *Host) AddApp(id string, geo scene.Geometry) *Client {
	return h.addClient(id, wm.ClientApp, geo)
}

// AddClient creates a client of any type whose actor sits in the render group.
func (h *Host) AddClient(id string, typ wm.ClientType, geo scene.Geometry) *Client {
	return h.addClient(id, typ, geo)
}

func (h *Host) addClient(id string, typ wm.ClientType, geo scene.Geometry) *Client {
	actor := NewGroup(id, geo)
	h.UI.render.Add(actor)
	return NewClient(id, typ, actor)
}
