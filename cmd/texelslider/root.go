// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelslider/root.go
// Summary: Root command and shared configuration loading.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/framegrace/texelslider/config"
)

var (
	configFile string
	envFiles   []string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "texelslider",
		Short:         "Seek slider with drag reconciliation for the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default $XDG_CONFIG_HOME/texelslider/texelslider.json)")
	root.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files loaded before config (default .env)")

	root.AddCommand(newRunCmd(), newSimulateCmd(), newVersionCmd())
	return root
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig applies dotenv files, then reads the selected config file. A
// malformed file still yields defaults; callers report it through
// config.Err once logging is up.
func loadConfig() (config.Config, error) {
	if err := config.LoadDotEnv(envFiles...); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}
	if configFile != "" {
		_ = config.UseFile(configFile)
	} else {
		_ = config.Reload()
	}
	return config.System(), nil
}
