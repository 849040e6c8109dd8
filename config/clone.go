// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/clone.go
// Summary: Clone helpers for config maps.

package config

// Clone returns a copy of the config with each section copied one level deep.
func Clone(cfg Config) Config {
	if cfg == nil {
		return nil
	}
	clone := make(Config, len(cfg))
	for name := range cfg {
		section := cfg.Section(name)
		if section == nil {
			clone[name] = cfg[name]
			continue
		}
		out := make(Section, len(section))
		for key, value := range section {
			out[key] = value
		}
		clone[name] = out
	}
	return clone
}
