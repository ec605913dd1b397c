// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelfx/demo.go
// Summary: Interactive terminal playground for the transition effects.
// Usage: texelfx demo, then press the keys listed on the status line.
// Notes: All scene work runs on the clock loop goroutine.

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/framegrace/texelfx/clock"
	"github.com/framegrace/texelfx/config"
	"github.com/framegrace/texelfx/internal/audio"
	"github.com/framegrace/texelfx/internal/memhost"
	"github.com/framegrace/texelfx/internal/termview"
	"github.com/framegrace/texelfx/scene"
	"github.com/framegrace/texelfx/transition"
	"github.com/framegrace/texelfx/wm"
)

// fillerColor matches the terminal background behind overshooting popups.
var fillerColor = scene.Color{R: 0x10, G: 0x10, B: 0x18, A: 0xff}

const (
	demoHelp     = "a:app c:close p:dialog f:menu n:note s/b:subview r:rotate x:close+rotate q:quit"
	redrawPeriod = 33 * time.Millisecond
)

func newDemoCommand() *cobra.Command {
	var mute bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Play with the effects in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("demo needs an interactive terminal")
			}
			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("create screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("init screen: %w", err)
			}
			defer screen.Fini()

			player := audio.NewPlayer()
			defer player.Close()
			cfg := config.Transitions()
			player.SetEnabled(!mute && cfg.GetBool(config.SectionSound, config.KeySoundEnabled, true))
			if err := player.Initialize(); err != nil {
				log.Printf("Audio: %v", err)
			}

			d := newDemo(screen, clock.NewLoop(256), transition.WithSettings(config.StoreSettings()),
				transition.WithFillerColor(fillerColor),
				transition.WithSound(&cuePlayer{
					player: player,
					paths: map[string]string{
						transition.WindowClosedSound: cfg.GetString(config.SectionSound, config.KeyWindowClosed, transition.WindowClosedSound),
					},
				}))
			return d.run(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&mute, "mute", false, "Do not play sounds")
	return cmd
}

// cuePlayer plays the configured file in place of each built-in cue.
type cuePlayer struct {
	player *audio.Player
	paths  map[string]string
}

func (p *cuePlayer) Play(path string) error {
	if alt, ok := p.paths[path]; ok && alt != "" {
		path = alt
	}
	return p.player.Play(path)
}

type demo struct {
	screen tcell.Screen
	loop   *clock.Loop
	host   *memhost.Host
	view   *termview.View
	mgr    *transition.Manager
	rot    *transition.Rotator
	cancel context.CancelFunc

	apps     []*memhost.Client
	nextApp  int
	dialog   *memhost.Client
	menu     *memhost.Client
	note     *memhost.Client
	subview  *memhost.Client
	mapped   map[string]bool
	status   string
	damaging int
}

func newDemo(screen tcell.Screen, loop *clock.Loop, opts ...transition.Option) *demo {
	host := memhost.New(transition.LandscapeWidth, transition.LandscapeHeight)
	host.UI.SetState(memhost.StateApp)

	d := &demo{
		screen: screen,
		loop:   loop,
		host:   host,
		view:   termview.New(screen, host.Stage),
		mapped: make(map[string]bool),
	}
	opts = append(opts, transition.WithRunningHook(func(running int) {
		d.status = fmt.Sprintf("%d running", running)
	}))
	d.mgr = transition.NewManager(transition.Host{Stage: host.Stage, UI: host.UI, Clock: loop}, opts...)
	d.rot = transition.NewRotator(d.mgr, host.Display, transition.OnPhase(func(_, to transition.Phase, dir transition.Direction) {
		d.status = fmt.Sprintf("rotate %s: %s", dir, to)
	}))
	host.Display.OnChange = d.reconfigured

	d.dialog = d.client("dialog", wm.ClientDialog, scene.Geometry{X: 160, Y: 240, Width: 480, Height: 240}, tcell.ColorSteelBlue)
	d.menu = d.client("menu", wm.ClientMenu, scene.Geometry{X: 0, Y: 56, Width: 320, Height: 300}, tcell.ColorDarkOliveGreen)
	d.note = d.client("note", wm.ClientNote, scene.Geometry{X: 420, Y: 0, Width: 380, Height: 72}, tcell.ColorGoldenrod)
	d.subview = d.client("settings", wm.ClientApp, scene.Geometry{Width: 800, Height: 480}, tcell.ColorDarkSlateGray)
	d.addApp()
	return d
}

func (d *demo) client(id string, typ wm.ClientType, geo scene.Geometry, color tcell.Color) *memhost.Client {
	c := memhost.NewClient(id, typ, memhost.NewGroup(id, geo))
	d.view.SetColor(id, color)
	return c
}

func (d *demo) run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, d.cancel = context.WithCancel(ctx)
	defer d.cancel()

	go d.pollEvents()
	go d.redraw(ctx)

	err := d.loop.Run(ctx)
	d.loop.Close()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (d *demo) pollEvents() {
	for {
		ev := d.screen.PollEvent()
		if ev == nil {
			return
		}
		if !d.loop.Post(func() { d.handle(ev) }) {
			return
		}
	}
}

func (d *demo) redraw(ctx context.Context) {
	ticker := time.NewTicker(redrawPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !d.loop.Post(d.draw) {
				return
			}
		}
	}
}

func (d *demo) draw() {
	d.view.Draw()
	_, rows := d.screen.Size()
	style := tcell.StyleDefault.Reverse(true)
	x := d.text(0, rows-1, demoHelp, style)
	if d.status != "" {
		d.text(x+2, rows-1, d.status, style)
	}
	d.screen.Show()
}

func (d *demo) text(x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		d.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	return x
}

func (d *demo) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		d.screen.Sync()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			d.cancel()
			return
		}
		d.key(ev.Rune())
	}
}

func (d *demo) key(r rune) {
	switch r {
	case 'q':
		d.cancel()
	case 'a':
		d.addApp()
	case 'c':
		if app := d.topApp(); app != nil && d.mgr.CloseApp(app) {
			d.dropApp(app)
		}
	case 'p':
		d.toggle(d.dialog, d.mgr.Popup)
	case 'f':
		d.toggle(d.menu, d.mgr.Fade)
	case 'n':
		d.toggle(d.note, d.mgr.Notification)
	case 's':
		if app := d.topApp(); app != nil && !d.mapped[d.subview.ID()] {
			d.show(d.subview)
			if d.mgr.Subview(d.subview, app, transition.EventMap) {
				d.mapped[d.subview.ID()] = true
			}
		}
	case 'b':
		if app := d.topApp(); app != nil && d.mapped[d.subview.ID()] {
			d.show(app)
			if d.mgr.Subview(d.subview, app, transition.EventUnmap) {
				d.mapped[d.subview.ID()] = false
			}
		}
	case 'r':
		d.rot.RotateScreen(!d.host.UI.InPortrait())
	case 'x':
		if app := d.topApp(); app != nil && d.rot.CloseAppAndRotate(app, !d.host.UI.InPortrait()) {
			d.dropApp(app)
		}
	}
}

// toggle maps c with effect when hidden and unmaps it when shown.
func (d *demo) toggle(c *memhost.Client, effect func(wm.Client, transition.Event) bool) {
	if d.mapped[c.ID()] {
		if effect(c, transition.EventUnmap) {
			d.mapped[c.ID()] = false
		}
		return
	}
	if c.Flags().Has(wm.FlagEffectRunning) {
		return
	}
	d.show(c)
	if effect(c, transition.EventMap) {
		d.mapped[c.ID()] = true
	}
}

func (d *demo) show(c *memhost.Client) {
	a := c.Actor()
	if a.Parent() == nil {
		d.host.UI.RenderGroup().Add(a)
	}
	a.Show()
	a.RaiseTop()
}

func (d *demo) addApp() {
	d.nextApp++
	w, h := d.host.Stage.Size()
	id := fmt.Sprintf("app-%d", d.nextApp)
	app := d.host.AddApp(id, scene.Geometry{Width: w, Height: h})
	d.view.SetColor(id, appColor(d.nextApp))
	d.apps = append(d.apps, app)
}

func (d *demo) topApp() *memhost.Client {
	if len(d.apps) == 0 {
		return nil
	}
	return d.apps[len(d.apps)-1]
}

func (d *demo) dropApp(app *memhost.Client) {
	for i, c := range d.apps {
		if c == app {
			d.apps = append(d.apps[:i], d.apps[i+1:]...)
			return
		}
	}
}

// reconfigured feeds the rotator the burst of damage that resized
// applications produce.
func (d *demo) reconfigured(bool) {
	d.damaging = 4
	var tick func()
	tick = func() {
		if d.damaging == 0 {
			return
		}
		d.damaging--
		d.rot.IgnoreDamage()
		d.loop.AfterFunc(20*time.Millisecond, tick)
	}
	d.loop.AfterFunc(20*time.Millisecond, tick)
}

func appColor(n int) tcell.Color {
	palette := []tcell.Color{
		tcell.ColorMediumPurple,
		tcell.ColorIndianRed,
		tcell.ColorTeal,
		tcell.ColorSienna,
	}
	return palette[(n-1)%len(palette)]
}
