// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: slider/state.go
// Summary: Position state shared by external pushes and drag sessions.
// Usage: Owned by Reconciler; also usable directly by single-threaded hosts.

package slider

import (
	"fmt"
	"math"
)

// State is the single source of truth for where the thumb is. It stores the
// pixel position, the anchor for the next drag and the drag ownership flag.
//
// State is not safe for concurrent use; Reconciler serializes access to it.
type State struct {
	total      int
	trackWidth float64
	unitSize   float64

	pixel     float64
	anchor    float64
	committed int
	dragging  bool
}

// NewState validates the track geometry and places the thumb at current.
func NewState(current, total int, trackWidth float64) (*State, error) {
	if err := validate(total, trackWidth); err != nil {
		return nil, err
	}
	s := &State{
		total:      total,
		trackWidth: trackWidth,
		unitSize:   trackWidth / float64(total),
	}
	s.ApplyExternal(current)
	return s, nil
}

func validate(total int, trackWidth float64) error {
	if total <= 0 {
		return fmt.Errorf("%w: total duration %d must be positive", ErrInvalidConfiguration, total)
	}
	if !isFinite(trackWidth) || trackWidth <= 0 {
		return fmt.Errorf("%w: track width %v must be a positive finite number", ErrInvalidConfiguration, trackWidth)
	}
	return nil
}

// ApplyExternal moves the thumb to logical unless a drag owns the position.
// A push during a drag is dropped, not queued. It reports whether the push
// was applied.
func (s *State) ApplyExternal(logical int) bool {
	if s.dragging {
		return false
	}
	s.pixel = s.clamp(float64(logical) * s.unitSize)
	s.anchor = s.pixel
	s.committed = s.toLogical(s.pixel)
	return true
}

// BeginDrag hands ownership of the pixel position to a drag session.
func (s *State) BeginDrag(anchor float64) {
	s.dragging = true
	s.anchor = s.clamp(anchor)
}

// UpdateDrag moves the thumb to anchor+delta, clamped to the track. A
// non-finite delta leaves the thumb where it is.
func (s *State) UpdateDrag(delta float64) {
	if !isFinite(delta) {
		return
	}
	s.pixel = s.clamp(s.anchor + delta)
}

// EndDrag finishes the session at anchor+delta and returns the committed
// logical position. The clamped pixel becomes the anchor of the next drag.
// A non-finite delta ends the session at the last valid pixel.
func (s *State) EndDrag(delta float64) int {
	if isFinite(delta) {
		s.pixel = s.clamp(s.anchor + delta)
	}
	s.anchor = s.pixel
	s.dragging = false
	s.committed = s.toLogical(s.pixel)
	return s.committed
}

// Resize changes the track width. Idle thumbs are re-derived from the last
// committed logical value; an in-flight drag is rescaled in place.
func (s *State) Resize(trackWidth float64) error {
	if err := validate(s.total, trackWidth); err != nil {
		return err
	}
	ratio := trackWidth / s.trackWidth
	s.trackWidth = trackWidth
	s.unitSize = trackWidth / float64(s.total)
	if s.dragging {
		s.anchor = s.clamp(s.anchor * ratio)
		s.pixel = s.clamp(s.pixel * ratio)
		return nil
	}
	s.pixel = s.clamp(float64(s.committed) * s.unitSize)
	s.anchor = s.pixel
	return nil
}

func (s *State) Pixel() float64      { return s.pixel }
func (s *State) Anchor() float64     { return s.anchor }
func (s *State) Dragging() bool      { return s.dragging }
func (s *State) UnitSize() float64   { return s.unitSize }
func (s *State) TrackWidth() float64 { return s.trackWidth }
func (s *State) Total() int          { return s.total }

// Logical returns the logical value the thumb currently shows.
func (s *State) Logical() int { return s.toLogical(s.pixel) }

// Committed returns the last value set by an external push or a drag end.
func (s *State) Committed() int { return s.committed }

func (s *State) clamp(p float64) float64 {
	return Clamp(p, 0, s.trackWidth)
}

func (s *State) toLogical(p float64) int {
	// -0 or a tiny negative from float error must never round to -1.
	if p <= 0 {
		return 0
	}
	v := int(math.Round(p / s.unitSize))
	if v > s.total {
		return s.total
	}
	if v < 0 {
		return 0
	}
	return v
}

// Clamp bounds p to [lo, hi]. NaN maps to lo.
func Clamp(p, lo, hi float64) float64 {
	if p != p || p < lo {
		return lo
	}
	if p > hi {
		return hi
	}
	return p
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
