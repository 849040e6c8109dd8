// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelslider/simulate.go
// Summary: Headless replay of scripted gesture and push events.
// Usage: texelslider simulate --script "push:5 down move:125 push:12 up:130"

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/framegrace/texelslider/logger"
	"github.com/framegrace/texelslider/slider"
)

// defaultScript drags from 5 to 18 while the driver keeps pushing.
const defaultScript = "push:5 down move:125 push:12 move:130 push:13 up:130 push:19"

type stepKind string

const (
	stepPush   stepKind = "push"
	stepDown   stepKind = "down"
	stepMove   stepKind = "move"
	stepUp     stepKind = "up"
	stepCancel stepKind = "cancel"
	stepTap    stepKind = "tap"
	stepStep   stepKind = "step"
	stepResize stepKind = "resize"
)

type step struct {
	kind  stepKind
	value float64
}

// parseScript reads whitespace- or comma-separated "kind[:value]" tokens.
// Values are optional for down and default to 0 for up and cancel.
func parseScript(script string) ([]step, error) {
	fields := strings.FieldsFunc(script, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	steps := make([]step, 0, len(fields))
	for _, f := range fields {
		name, arg, hasArg := strings.Cut(f, ":")
		s := step{kind: stepKind(strings.ToLower(name))}
		switch s.kind {
		case stepDown:
			if hasArg {
				return nil, fmt.Errorf("step %q: down takes no value", f)
			}
		case stepUp, stepCancel:
		case stepPush, stepMove, stepTap, stepStep, stepResize:
			if !hasArg {
				return nil, fmt.Errorf("step %q: missing value", f)
			}
		default:
			return nil, fmt.Errorf("step %q: unknown event", f)
		}
		if hasArg {
			v, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return nil, fmt.Errorf("step %q: %w", f, err)
			}
			s.value = v
		}
		steps = append(steps, s)
	}
	return steps, nil
}

type simulateOptions struct {
	total   int
	current int
	width   float64
	script  string
	verbose bool
}

func newSimulateCmd() *cobra.Command {
	opts := &simulateOptions{}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay a gesture script without a terminal",
		Long: `Simulate feeds a script of events to a slider and prints every frame and
commit. Events: push:N, down, move:D, up[:D], cancel[:D], tap:PX, step:N,
resize:W. Deltas are cumulative since down, in pixels.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			s := cfg.Slider()
			f := cmd.Flags()
			if !f.Changed("total") {
				opts.total = s.TotalDuration
			}
			if !f.Changed("current") {
				opts.current = s.CurrentPosition
			}
			steps, err := parseScript(opts.script)
			if err != nil {
				return err
			}
			level := "info"
			if opts.verbose {
				level = "debug"
			}
			log, closeLog, err := logger.New(logger.Config{Level: level, Console: cmd.ErrOrStderr()})
			if err != nil {
				return err
			}
			defer func() { _ = closeLog() }()
			return simulate(cmd.OutOrStdout(), log, slider.Config{
				Current:    opts.current,
				Total:      opts.total,
				TrackWidth: opts.width,
			}, steps)
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.total, "total", 0, "total duration")
	f.IntVar(&opts.current, "current", 0, "starting position")
	f.Float64Var(&opts.width, "width", 300, "track width in pixels")
	f.StringVar(&opts.script, "script", defaultScript, "events to replay")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log ignored events to stderr")
	return cmd
}

// simulate replays steps against a fresh reconciler, writing one line per
// event, frame and commit to out.
func simulate(out io.Writer, log *zap.Logger, cfg slider.Config, steps []step) error {
	rec, err := slider.New(cfg,
		slider.WithLogger(log),
		slider.WithCommitHandler(func(logical int) {
			fmt.Fprintf(out, "  commit %d\n", logical)
		}))
	if err != nil {
		return err
	}
	unsubscribe := rec.Subscribe(func(f slider.Frame) {
		fmt.Fprintf(out, "  frame thumb=%.1f trailing=%.1f logical=%d dragging=%t\n",
			f.ThumbX, f.TrailingWidth, f.Logical, f.Dragging)
	})
	defer unsubscribe()

	const pointer slider.PointerID = 0
	for _, s := range steps {
		fmt.Fprintf(out, "%s", s.kind)
		if s.kind != stepDown {
			fmt.Fprintf(out, " %g", s.value)
		}
		fmt.Fprintln(out)

		var ok bool
		switch s.kind {
		case stepPush:
			ok = rec.PushExternal(int(s.value))
		case stepDown:
			ok = rec.Down(pointer)
		case stepMove:
			ok = rec.Move(pointer, s.value)
		case stepUp:
			_, ok = rec.Up(pointer, s.value)
		case stepCancel:
			_, ok = rec.Cancel(pointer, s.value)
		case stepTap:
			_, ok = rec.Tap(s.value)
		case stepStep:
			_, ok = rec.Step(int(s.value))
		case stepResize:
			if err := rec.Resize(s.value); err != nil {
				fmt.Fprintf(out, "  error %v\n", err)
				continue
			}
			ok = true
		}
		if !ok {
			fmt.Fprintln(out, "  ignored")
		}
	}
	fmt.Fprintf(out, "final %d\n", rec.Committed())
	return nil
}
