// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: slider/errors.go
// Summary: Error taxonomy for the slider position core.

package slider

import "errors"

var (
	// ErrInvalidConfiguration is returned when the track cannot define a unit
	// size (non-positive duration or width).
	ErrInvalidConfiguration = errors.New("slider: invalid configuration")

	// ErrMalformedSample marks a gesture sample with a non-finite translation.
	// It is logged and dropped, never returned to callers.
	ErrMalformedSample = errors.New("slider: malformed gesture sample")

	// ErrOutOfOrderEvent marks a move/up/cancel without a matching session.
	// It is logged and dropped, never returned to callers.
	ErrOutOfOrderEvent = errors.New("slider: out of order event")
)
