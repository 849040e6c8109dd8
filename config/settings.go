// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/settings.go
// Summary: Typed views over the slider and log sections.

package config

import "time"

// Orientation of the slider track. Only horizontal tracks are rendered.
type Orientation string

const (
	Horizontal Orientation = "horizontal"
	Vertical   Orientation = "vertical"
)

// SliderSettings mirrors the "slider" section.
type SliderSettings struct {
	TotalDuration   int
	CurrentPosition int
	Interval        time.Duration
	TrackWidth      int // 0 fills the available width
	Orientation     Orientation
	PrimaryColor    string
	SecondaryColor  string
	ThumbRune       rune
}

// Slider returns the slider section as typed settings.
func (c Config) Slider() SliderSettings {
	return SliderSettings{
		TotalDuration:   c.GetInt(SectionSlider, "total_duration", 30),
		CurrentPosition: c.GetInt(SectionSlider, "current_position", 0),
		Interval:        c.GetDurationMS(SectionSlider, "interval_ms", time.Second),
		TrackWidth:      c.GetInt(SectionSlider, "track_width", 0),
		Orientation:     Orientation(c.GetString(SectionSlider, "orientation", string(Horizontal))),
		PrimaryColor:    c.GetString(SectionSlider, "primary_color", "#ff0066"),
		SecondaryColor:  c.GetString(SectionSlider, "secondary_color", "#ffffff"),
		ThumbRune:       c.GetRune(SectionSlider, "thumb_rune", '●'),
	}
}

// LogSettings mirrors the "log" section.
type LogSettings struct {
	Level      string
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Log returns the log section as typed settings.
func (c Config) Log() LogSettings {
	return LogSettings{
		Level:      c.GetString(SectionLog, "level", "info"),
		Path:       c.GetString(SectionLog, "path", ""),
		MaxSizeMB:  c.GetInt(SectionLog, "max_size_mb", 10),
		MaxBackups: c.GetInt(SectionLog, "max_backups", 3),
		MaxAgeDays: c.GetInt(SectionLog, "max_age_days", 7),
		Compress:   c.GetBool(SectionLog, "compress", false),
	}
}
