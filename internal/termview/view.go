// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/termview/view.go
// Summary: Draws an in-memory scene onto a tcell screen.
// Usage: The demo command redraws after every frame of the event loop.
// Notes: Stage pixels are scaled to cells. Rotation is not drawn; depth
//   shrinks actors towards the stage centre.

package termview

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/texelfx/internal/memhost"
	"github.com/framegrace/texelfx/scene"
)

// node is what the view needs from a memhost actor or group.
type node interface {
	scene.Actor
	Kind() string
	Color() scene.Color
	Depth() float64
	VisualRect() (x, y, w, h float64)
}

// View renders a memhost stage.
type View struct {
	screen     tcell.Screen
	stage      *memhost.Stage
	background tcell.Color
	colors     map[string]tcell.Color

	sx, sy float64
}

// New returns a view of stage on screen.
func New(screen tcell.Screen, stage *memhost.Stage) *View {
	return &View{
		screen:     screen,
		stage:      stage,
		background: tcell.NewRGBColor(0x10, 0x10, 0x18),
		colors:     make(map[string]tcell.Color),
	}
}

// SetColor paints the actor called name with c. Groups are only painted
// when they have a colour.
func (v *View) SetColor(name string, c tcell.Color) {
	v.colors[name] = c
}

// SetBackground sets the colour behind everything.
func (v *View) SetBackground(c tcell.Color) {
	v.background = c
}

type frame struct {
	ox, oy float64
	alpha  float64
	shrink float64
}

// Draw repaints the whole screen.
func (v *View) Draw() {
	cols, rows := v.screen.Size()
	sw, sh := v.stage.Size()
	if cols <= 0 || rows <= 0 || sw <= 0 || sh <= 0 {
		return
	}
	v.sx = float64(cols) / float64(sw)
	v.sy = float64(rows) / float64(sh)

	v.screen.Fill(' ', tcell.StyleDefault.Background(v.background))
	v.drawNode(v.stage.RootGroup(), frame{alpha: 1, shrink: 1})
	v.screen.Show()
}

func (v *View) drawNode(a scene.Actor, parent frame) {
	n, ok := a.(node)
	if !ok || !n.IsVisible() {
		return
	}
	x, y, w, h := n.VisualRect()
	x += parent.ox
	y += parent.oy

	cur := frame{
		ox:     x,
		oy:     y,
		alpha:  parent.alpha * float64(n.Opacity()) / 255,
		shrink: parent.shrink * depthScale(n.Depth()),
	}
	if cur.alpha <= 0 {
		return
	}

	if color, ok := v.colorOf(n); ok {
		px, py, pw, ph := v.project(x, y, w, h, cur.shrink)
		v.fill(px, py, pw, ph, color, cur.alpha)
		if n.Kind() == "group" {
			v.label(px, py, pw, n.Name())
		}
	}

	if g, ok := a.(*memhost.Group); ok {
		for _, child := range g.Children() {
			v.drawNode(child, cur)
		}
	}
}

func (v *View) colorOf(n node) (tcell.Color, bool) {
	if c, ok := v.colors[n.Name()]; ok {
		return c, true
	}
	switch n.Kind() {
	case "rect":
		c := n.Color()
		return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)), true
	case "particle":
		return tcell.ColorLightYellow, true
	case "titlebar":
		return tcell.ColorDimGray, true
	}
	return 0, false
}

func depthScale(depth float64) float64 {
	s := 1 + depth/1000
	if s < 0.1 {
		return 0.1
	}
	return s
}

// project scales a stage rectangle to cells, shrinking it towards the
// stage centre by shrink.
func (v *View) project(x, y, w, h, shrink float64) (int, int, int, int) {
	sw, sh := v.stage.Size()
	cx, cy := float64(sw)/2, float64(sh)/2
	x = cx + (x-cx)*shrink
	y = cy + (y-cy)*shrink
	w *= shrink
	h *= shrink

	x0 := int(math.Floor(x * v.sx))
	y0 := int(math.Floor(y * v.sy))
	x1 := int(math.Ceil((x + w) * v.sx))
	y1 := int(math.Ceil((y + h) * v.sy))
	return x0, y0, x1 - x0, y1 - y0
}

func (v *View) fill(x, y, w, h int, color tcell.Color, alpha float64) {
	cols, rows := v.screen.Size()
	for row := max(y, 0); row < min(y+h, rows); row++ {
		for col := max(x, 0); col < min(x+w, cols); col++ {
			mainc, combc, style, _ := v.screen.GetContent(col, row)
			_, bg, _ := style.Decompose()
			if !bg.Valid() {
				bg = v.background
			}
			blended := blendColor(bg, color, float32(alpha))
			v.screen.SetContent(col, row, mainc, combc, style.Background(blended))
		}
	}
}

func (v *View) label(x, y, w int, text string) {
	if w <= 0 {
		return
	}
	cols, rows := v.screen.Size()
	if y < 0 || y >= rows {
		return
	}
	text = runewidth.Truncate(text, w, "…")
	col := x
	for _, r := range text {
		if col >= 0 && col < cols {
			_, _, style, _ := v.screen.GetContent(col, y)
			v.screen.SetContent(col, y, r, nil, style.Foreground(tcell.ColorWhite))
		}
		col += runewidth.RuneWidth(r)
	}
}

// blendColor interpolates linearly from original to blend.
func blendColor(original, blend tcell.Color, intensity float32) tcell.Color {
	if !original.Valid() || !blend.Valid() {
		return blend
	}
	r1, g1, b1 := original.RGB()
	r2, g2, b2 := blend.RGB()
	mix := func(a, b int32) int32 {
		v := int32(float32(a)*(1-intensity) + float32(b)*intensity)
		return min(max(v, 0), 255)
	}
	return tcell.NewRGBColor(mix(r1, r2), mix(g1, g2), mix(b1, b2))
}
