// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/memhost/client.go
// Summary: In-memory window clients implementing wm.Client.

package memhost

import (
	"github.com/framegrace/texelfx/scene"
	"github.com/framegrace/texelfx/wm"
)

// Client is a managed window with a reference count and flag bitmask.
type Client struct {
	id        string
	actor     scene.Actor
	typ       wm.ClientType
	secondary bool
	flags     wm.ClientFlags

	refs         int
	overReleased int
}

// NewClient returns a client owning actor (which may be nil).
func NewClient(id string, typ wm.ClientType, actor scene.Actor) *Client {
	return &Client{id: id, typ: typ, actor: actor, refs: 1}
}

func (c *Client) ID() string { return c.id }
func (c *Client) Actor() scene.Actor { return c.actor }
func (c *Client) Type() wm.ClientType { return c.typ }
func (c *Client) IsSecondary() bool { return c.secondary }
func (c *Client) Flags() wm.ClientFlags { return c.flags }
func (c *Client) SetFlags(f wm.ClientFlags) { c.flags |= f }
func (c *Client) UnsetFlags(f wm.ClientFlags) {
	c.flags &^= f
}

// SetSecondary marks the client as a non-leading stack window.
func (c *Client) SetSecondary(v bool) { c.secondary = v }

// SetActor replaces the client's actor.
func (c *Client) SetActor(a scene.Actor) { c.actor = a }

func (c *Client) Ref() { c.refs++ }

func (c *Client) Unref() {
	if c.refs <= 0 {
		c.overReleased++
		return
	}
	c.refs--
}

func (c *Client) Refs() int { return c.refs }
func (c *Client) OverReleased() int { return c.overReleased }
