// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/env.go
// Summary: Environment and .env overrides for known config keys.

package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every override variable, e.g.
// TEXELSLIDER_SLIDER_TOTAL_DURATION=60.
const EnvPrefix = "TEXELSLIDER"

// EnvName returns the variable that overrides section.key.
func EnvName(section, key string) string {
	return strings.ToUpper(EnvPrefix + "_" + section + "_" + key)
}

// LoadDotEnv loads variables from the given .env files without replacing
// variables already set. Missing files are skipped.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

// applyEnv overrides every defaulted key that has a matching variable.
// Values stay strings; the typed getters parse them.
func applyEnv(cfg Config, lookup func(string) (string, bool)) {
	for name, defaults := range defaultSections() {
		section := cfg.Section(name)
		if section == nil {
			continue
		}
		for key := range defaults {
			if v, ok := lookup(EnvName(name, key)); ok {
				section[key] = v
			}
		}
	}
}
