// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelslider/run.go
// Summary: Interactive timer with a seek slider in the current terminal.

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/framegrace/texelslider/apps/timer"
	"github.com/framegrace/texelslider/config"
	"github.com/framegrace/texelslider/internal/devshell"
	"github.com/framegrace/texelslider/logger"
	"github.com/framegrace/texelslider/texel"
)

var errNotTerminal = errors.New("stdout is not a terminal")

type runOptions struct {
	total    int
	current  int
	interval time.Duration
	width    int
	logFile  string
	logLevel string
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the timer with an interactive seek slider",
		Long: `Run opens a full-screen timer. Drag the thumb to seek; the timer keeps
ticking underneath but the thumb follows your pointer until release.
Click the track to jump, use Left/Right/Home/End when the slider is focused,
Tab to reach the pause toggle, Ctrl-C to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errNotTerminal
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runTimer(cmd, cfg, opts)
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.total, "total", 0, "total duration in seconds")
	f.IntVar(&opts.current, "current", 0, "starting position in seconds")
	f.DurationVar(&opts.interval, "interval", 0, "tick interval")
	f.IntVar(&opts.width, "width", 0, "track width in cells (0 fills the screen)")
	f.StringVar(&opts.logFile, "log-file", "", "log file path")
	f.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	return cmd
}

// applyFlags overrides settings with every flag the user set explicitly.
func (o *runOptions) applyFlags(cmd *cobra.Command, s *config.SliderSettings, l *config.LogSettings) {
	f := cmd.Flags()
	if f.Changed("total") {
		s.TotalDuration = o.total
	}
	if f.Changed("current") {
		s.CurrentPosition = o.current
	}
	if f.Changed("interval") {
		s.Interval = o.interval
	}
	if f.Changed("width") {
		s.TrackWidth = o.width
	}
	if f.Changed("log-file") {
		l.Path = o.logFile
	}
	if f.Changed("log-level") {
		l.Level = o.logLevel
	}
}

func runTimer(cmd *cobra.Command, cfg config.Config, opts *runOptions) error {
	settings := cfg.Slider()
	logSettings := cfg.Log()
	opts.applyFlags(cmd, &settings, &logSettings)
	if logSettings.Path == "" {
		logSettings.Path = config.DefaultLogPath()
	}

	log, closeLog, err := logger.New(logger.Config{
		Level:      logSettings.Level,
		OutputPath: logSettings.Path,
		MaxSize:    logSettings.MaxSizeMB,
		MaxBackups: logSettings.MaxBackups,
		MaxAge:     logSettings.MaxAgeDays,
		Compress:   logSettings.Compress,
	})
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()
	undo := zap.ReplaceGlobals(log)
	defer undo()
	devshell.SetLogger(log)

	if err := config.Err(); err != nil {
		log.Warn("config not loaded, using defaults", zap.String("path", config.Path()), zap.Error(err))
	}
	log.Info("starting timer",
		zap.Int("total", settings.TotalDuration),
		zap.Int("current", settings.CurrentPosition),
		zap.Duration("interval", settings.Interval))

	// Fail before the screen takes over the terminal.
	if _, err := timer.New(settings, zap.NewNop()); err != nil {
		return err
	}
	devshell.Register("timer", func([]string) (texel.App, error) {
		return timer.New(settings, log)
	})
	if err := devshell.RunApp("timer", nil); err != nil {
		log.Error("timer exited", zap.Error(err))
		return fmt.Errorf("run timer: %w", err)
	}
	return nil
}
