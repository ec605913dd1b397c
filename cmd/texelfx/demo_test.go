// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/texelfx/clock"
	"github.com/framegrace/texelfx/transition"
	"github.com/framegrace/texelfx/wm"
)

func newTestDemo(t *testing.T) (*demo, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(100, 30)
	loop := clock.NewLoop(1024)
	t.Cleanup(loop.Close)
	return newDemo(screen, loop, transition.WithFillerColor(fillerColor)), screen
}

func TestDemoKeysStartEffects(t *testing.T) {
	d, _ := newTestDemo(t)

	d.key('p')
	if !d.mapped["dialog"] || !d.dialog.Flags().Has(wm.FlagEffectRunning) {
		t.Fatalf("expected the dialog to pop up")
	}
	filled := false
	for _, a := range d.host.Stage.Created() {
		if a.Kind() == "rect" && a.Color() == fillerColor {
			filled = true
		}
	}
	if !filled {
		t.Fatalf("expected the popup filler painted in the background colour")
	}
	d.key('s')
	if !d.subview.Flags().Has(wm.FlagEffectRunning) {
		t.Fatalf("expected the subview to slide in")
	}
	d.key('a')
	d.key('c')
	if len(d.apps) != 1 {
		t.Fatalf("expected the closed app to leave the stack, have %d", len(d.apps))
	}
	if d.mgr.Running() != 3 {
		t.Fatalf("expected three running effects, got %d", d.mgr.Running())
	}
	d.mgr.StopAll()
	if d.mgr.Running() != 0 {
		t.Fatalf("expected StopAll to finish every effect, got %d", d.mgr.Running())
	}
}

func TestDemoDrawsStatusLine(t *testing.T) {
	d, screen := newTestDemo(t)
	d.draw()

	cells, width, height := screen.GetContents()
	var line strings.Builder
	for x := 0; x < width; x++ {
		c := cells[(height-1)*width+x]
		if len(c.Runes) > 0 {
			line.WriteRune(c.Runes[0])
		}
	}
	if !strings.HasPrefix(line.String(), "a:app") {
		t.Fatalf("expected the key help on the last row, got %q", line.String())
	}
}
