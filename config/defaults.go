// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values for the configuration file.

package config

// Section and key names.
const (
	SectionSlider = "slider"
	SectionLog    = "log"
)

func defaultSections() map[string]Section {
	return map[string]Section{
		SectionSlider: {
			"total_duration":   30,
			"current_position": 0,
			"interval_ms":      1000,
			"track_width":      0,
			"orientation":      "horizontal",
			"primary_color":    "#ff0066",
			"secondary_color":  "#ffffff",
			"thumb_rune":       "●",
		},
		SectionLog: {
			"level":        "info",
			"path":         "",
			"max_size_mb":  10,
			"max_backups":  3,
			"max_age_days": 7,
			"compress":     false,
		},
	}
}

func applyDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	for name, defaults := range defaultSections() {
		cfg.RegisterDefaults(name, defaults)
	}
}
