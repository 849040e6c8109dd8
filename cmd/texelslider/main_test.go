package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/framegrace/texelslider/config"
	"github.com/framegrace/texelslider/slider"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestParseScript(t *testing.T) {
	steps, err := parseScript("push:5, down move:12.5\tup cancel:3 tap:40 step:-2 resize:120")
	if err != nil {
		t.Fatalf("parseScript: %v", err)
	}
	want := []step{
		{stepPush, 5}, {stepDown, 0}, {stepMove, 12.5}, {stepUp, 0},
		{stepCancel, 3}, {stepTap, 40}, {stepStep, -2}, {stepResize, 120},
	}
	if len(steps) != len(want) {
		t.Fatalf("expected %d steps, got %d", len(want), len(steps))
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Fatalf("step %d: expected %+v, got %+v", i, want[i], steps[i])
		}
	}
}

func TestParseScriptRejectsBadSteps(t *testing.T) {
	for _, script := range []string{"jump:3", "push", "move:abc", "down:4"} {
		if _, err := parseScript(script); err == nil {
			t.Fatalf("expected error for %q", script)
		}
	}
}

func TestSimulateDefaultScript(t *testing.T) {
	out, err := execute(t, "simulate", "--total", "30", "--current", "0")
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if strings.Count(out, "commit ") != 1 || !strings.Contains(out, "  commit 18\n") {
		t.Fatalf("expected a single commit of 18, got:\n%s", out)
	}
	if strings.Count(out, "ignored") != 2 {
		t.Fatalf("expected both mid-drag pushes ignored, got:\n%s", out)
	}
	if !strings.HasSuffix(out, "final 19\n") {
		t.Fatalf("expected final position 19, got:\n%s", out)
	}
}

func TestSimulateCancelCommits(t *testing.T) {
	var out bytes.Buffer
	steps, err := parseScript("down move:40 cancel:40 move:10")
	if err != nil {
		t.Fatalf("parseScript: %v", err)
	}
	if err := simulate(&out, zap.NewNop(), slider.Config{Total: 30, TrackWidth: 300}, steps); err != nil {
		t.Fatalf("simulate: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "  commit 4\n") {
		t.Fatalf("expected cancel to commit 4, got:\n%s", got)
	}
	if !strings.Contains(got, "move 10\n  ignored\n") {
		t.Fatalf("expected move after cancel to be ignored, got:\n%s", got)
	}
}

func TestSimulateInvalidGeometry(t *testing.T) {
	_, err := execute(t, "simulate", "--total", "0")
	if !errors.Is(err, slider.ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if out != "texelslider dev\n" {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestRunFlagsOverrideConfig(t *testing.T) {
	opts := &runOptions{}
	var cmd *cobra.Command
	for _, c := range newRootCmd().Commands() {
		if c.Name() == "run" {
			cmd = c
		}
	}
	if cmd == nil {
		t.Fatalf("run command missing")
	}
	if err := cmd.ParseFlags([]string{"--total", "90", "--log-level", "debug"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}
	opts.total, opts.logLevel = 90, "debug"

	cfg := make(config.Config)
	config.SetSystem(cfg)
	s := config.System().Slider()
	l := config.System().Log()
	opts.applyFlags(cmd, &s, &l)
	if s.TotalDuration != 90 || l.Level != "debug" {
		t.Fatalf("flags not applied: total=%d level=%q", s.TotalDuration, l.Level)
	}
	if s.CurrentPosition != 0 || s.Interval.Seconds() != 1 {
		t.Fatalf("unset flags changed settings: %+v", s)
	}
}
