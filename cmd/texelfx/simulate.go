// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelfx/simulate.go
// Summary: Headless rotation scenarios on a manual clock.
// Usage: texelfx simulate --damage 5 --redirect-at 400ms.
// Notes: Runs instantly; reported times are simulated.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/framegrace/texelfx/clock"
	"github.com/framegrace/texelfx/internal/memhost"
	"github.com/framegrace/texelfx/scene"
	"github.com/framegrace/texelfx/transition"
	"github.com/framegrace/texelfx/wm"
)

type simOptions struct {
	landscape   bool
	closeApp    bool
	damage      int
	damageEvery time.Duration
	redirectAt  time.Duration
	state       string
}

type phaseEvent struct {
	at        time.Duration
	from, to  transition.Phase
	direction transition.Direction
}

type simResult struct {
	events   []phaseEvent
	total    time.Duration
	calls    []bool
	state    string
	portrait bool
}

func newSimulateCommand() *cobra.Command {
	opts := simOptions{damageEvery: 30 * time.Millisecond}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a rotation scenario on a simulated clock",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := simulate(opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(res.events))
			for _, ev := range res.events {
				rows = append(rows, []string{
					fmt.Sprintf("%dms", ev.at.Milliseconds()),
					ev.from.String(),
					ev.to.String(),
					ev.direction.String(),
				})
			}
			fmt.Fprintln(out, renderTable(out, []string{"At", "From", "To", "Direction"}, rows, 0))
			fmt.Fprintf(out, "Finished after %dms in %s orientation, state %s\n",
				res.total.Milliseconds(), orientationName(res.portrait), res.state)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.landscape, "landscape", false, "Start in portrait and rotate to landscape")
	flags.BoolVar(&opts.closeApp, "close", false, "Close the foreground application as part of the rotation")
	flags.IntVar(&opts.damage, "damage", 0, "Damage events produced after the display is reconfigured")
	flags.DurationVar(&opts.damageEvery, "damage-every", opts.damageEvery, "Interval between damage events")
	flags.DurationVar(&opts.redirectAt, "redirect-at", 0, "Request the opposite orientation at this time")
	flags.StringVar(&opts.state, "state", "", "UI state to switch to once the screen is blank (home, app, app-portrait, task-nav, launcher)")
	return cmd
}

func orientationName(portrait bool) string {
	if portrait {
		return "portrait"
	}
	return "landscape"
}

func parseState(name string) (wm.UIState, bool) {
	for s := memhost.StateHome; s <= memhost.StateLauncher; s++ {
		if memhost.StateName(s) == name {
			return s, true
		}
	}
	return 0, false
}

// simulate performs one rotation on an in-memory compositor and records every
// phase change.
func simulate(opts simOptions) (simResult, error) {
	var res simResult

	width, height := transition.LandscapeWidth, transition.LandscapeHeight
	if opts.landscape {
		width, height = height, width
	}
	host := memhost.New(width, height)
	host.UI.SetState(memhost.StateApp)
	if opts.landscape {
		host.Display.ChangeOrientation(true)
		host.UI.SetState(memhost.StateAppPortrait)
	}

	setup := len(host.Display.Calls())

	start := time.Unix(0, 0)
	clk := clock.NewManual(start)
	mgr := transition.NewManager(transition.Host{Stage: host.Stage, UI: host.UI, Clock: clk})
	rot := transition.NewRotator(mgr, host.Display, transition.OnPhase(func(from, to transition.Phase, dir transition.Direction) {
		res.events = append(res.events, phaseEvent{at: clk.Now().Sub(start), from: from, to: to, direction: dir})
	}))

	host.Display.OnChange = func(bool) {
		for i := 1; i <= opts.damage; i++ {
			clk.AfterFunc(time.Duration(i)*opts.damageEvery, func() { rot.IgnoreDamage() })
		}
	}

	target := !opts.landscape
	if opts.state != "" {
		s, ok := parseState(opts.state)
		if !ok {
			return res, fmt.Errorf("unknown state %q", opts.state)
		}
		rot.ChangeStateAfterRotate(s)
	}

	accepted := false
	if opts.closeApp {
		app := host.AddApp("app", scene.Geometry{Width: width, Height: height})
		accepted = rot.CloseAppAndRotate(app, target)
	} else {
		accepted = rot.RotateScreen(target)
	}
	if !accepted {
		return res, fmt.Errorf("rotation to %s rejected", orientationName(target))
	}
	if opts.redirectAt > 0 {
		clk.AfterFunc(opts.redirectAt, func() { rot.RotateScreen(!target) })
	}

	res.total = clk.RunUntilIdle(time.Minute)
	if st := rot.State(); st.Phase != transition.PhaseIdle {
		return res, fmt.Errorf("rotation stuck in %s", st.Phase)
	}
	if mgr.Running() != 0 {
		return res, fmt.Errorf("%d effects still running", mgr.Running())
	}
	if leaked := host.Stage.Leaked(); len(leaked) != 0 {
		return res, fmt.Errorf("%d decorations leaked", len(leaked))
	}
	res.calls = host.Display.Calls()[setup:]
	res.portrait = host.UI.InPortrait()
	res.state = memhost.StateName(host.UI.State())
	return res, nil
}
