// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: transition/handles.go
// Summary: Owned references to actors and clients held by an effect.
// Notes: release is idempotent; each handle drops its reference at most once.

package transition

import (
	"github.com/framegrace/texelfx/scene"
	"github.com/framegrace/texelfx/wm"
)

type actorHandle struct {
	actor scene.Actor
}

// holdActor takes a new reference on a.
func holdActor(a scene.Actor) actorHandle {
	if a != nil {
		a.Ref()
	}
	return actorHandle{actor: a}
}

// adoptActor takes over the reference the caller already owns.
func adoptActor(a scene.Actor) actorHandle {
	return actorHandle{actor: a}
}

func (h *actorHandle) get() scene.Actor { return h.actor }

func (h *actorHandle) release() {
	if h.actor == nil {
		return
	}
	a := h.actor
	h.actor = nil
	a.Unref()
}

type clientHandle struct {
	client wm.Client
}

func holdClient(c wm.Client) clientHandle {
	if c != nil {
		c.Ref()
	}
	return clientHandle{client: c}
}

func (h *clientHandle) get() wm.Client { return h.client }

func (h *clientHandle) is(c wm.Client) bool {
	return h.client != nil && c != nil && h.client.ID() == c.ID()
}

func (h *clientHandle) release() {
	if h.client == nil {
		return
	}
	c := h.client
	h.client = nil
	c.Unref()
}
