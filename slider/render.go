// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: slider/render.go
// Summary: Pure mapping from pixel position to render values.

package slider

// Frame holds the values a renderer needs to place the thumb and tracks.
type Frame struct {
	ThumbX        float64 // thumb translation along the track
	TrailingWidth float64 // width of the track after the thumb
	TrackWidth    float64
	Logical       int
	Dragging      bool
	Seq           uint64 // orders frames from one Reconciler; 0 when unstamped
}

// Render maps a pixel position to its frame. pixel must already be clamped.
func Render(pixel, trackWidth float64) Frame {
	return Frame{
		ThumbX:        pixel,
		TrailingWidth: trackWidth - pixel,
		TrackWidth:    trackWidth,
	}
}

func (s *State) frame() Frame {
	f := Render(s.pixel, s.trackWidth)
	f.Logical = s.Logical()
	f.Dragging = s.dragging
	return f
}
