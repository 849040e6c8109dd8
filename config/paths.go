// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Path helpers for texelslider configuration.

package config

import (
	"os"
	"path/filepath"
)

func configRoot() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "texelslider"), nil
}

func defaultConfigPath() (string, error) {
	root, err := configRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, configName), nil
}

// DefaultLogPath is where the TUI writes its log when none is configured.
func DefaultLogPath() string {
	root, err := configRoot()
	if err != nil {
		return filepath.Join(os.TempDir(), "texelslider.log")
	}
	return filepath.Join(root, "texelslider.log")
}
