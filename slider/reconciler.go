// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: slider/reconciler.go
// Summary: Gesture reconciler arbitrating drag input and external pushes.
// Usage: Hosts feed pointer events and driver ticks; commits come back through
// the commit handler, render frames through Subscribe.

package slider

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PointerID identifies one contact point as reported by the capture layer.
type PointerID int

// Config describes the initial position and track geometry.
type Config struct {
	Current    int
	Total      int
	TrackWidth float64
}

// Session describes the live drag session. It exists only between Down and
// Up/Cancel.
type Session struct {
	ID      string
	Pointer PointerID
	Anchor  float64
	Delta   float64 // last valid cumulative translation
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the logger used for dropped samples and lifecycle events.
func WithLogger(l *zap.Logger) Option {
	return func(r *Reconciler) {
		if l != nil {
			r.log = l.Named("slider")
		}
	}
}

// WithCommitHandler sets the callback fired once per completed drag.
func WithCommitHandler(fn func(logical int)) Option {
	return func(r *Reconciler) { r.onCommit = fn }
}

type listener struct {
	id uint64
	fn func(Frame)

	mu   sync.Mutex
	last uint64 // Seq of the newest frame handed to fn
}

// Reconciler turns a single-pointer drag gesture into State updates and a
// terminal commit, and gates external pushes on drag ownership.
//
// Every event runs as one critical section, so the idle check and the write
// in PushExternal can never interleave with a drag starting or ending. The
// commit handler and observers run after the lock is released; the commit
// handler may call back into the Reconciler.
type Reconciler struct {
	mu        sync.Mutex
	state     *State
	session   *Session
	onCommit  func(int)
	listeners []*listener // copy-on-write
	nextID    uint64
	seq       uint64 // stamped into every frame
	log       *zap.Logger
}

// New validates cfg and returns an idle reconciler.
func New(cfg Config, opts ...Option) (*Reconciler, error) {
	st, err := NewState(cfg.Current, cfg.Total, cfg.TrackWidth)
	if err != nil {
		return nil, err
	}
	r := &Reconciler{state: st, log: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	r.log.Debug("slider initialized",
		zap.Int("current", st.Committed()),
		zap.Int("total", cfg.Total),
		zap.Float64("track_width", cfg.TrackWidth),
		zap.Float64("unit_size", st.UnitSize()))
	return r, nil
}

// SetCommitHandler replaces the commit callback.
func (r *Reconciler) SetCommitHandler(fn func(logical int)) {
	r.mu.Lock()
	r.onCommit = fn
	r.mu.Unlock()
}

// Subscribe registers fn to receive a frame after every pixel change. The
// returned func removes the subscription.
//
// Events may arrive on several goroutines. Each subscriber sees frames one
// at a time in Seq order; a frame older than one already delivered is
// dropped. fn must not call back into the Reconciler.
func (r *Reconciler) Subscribe(fn func(Frame)) func() {
	if fn == nil {
		return func() {}
	}
	r.mu.Lock()
	r.nextID++
	id := r.nextID
	next := make([]*listener, len(r.listeners), len(r.listeners)+1)
	copy(next, r.listeners)
	r.listeners = append(next, &listener{id: id, fn: fn, last: r.seq})
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		next := make([]*listener, 0, len(r.listeners))
		for _, l := range r.listeners {
			if l.id != id {
				next = append(next, l)
			}
		}
		r.listeners = next
	}
}

// PushExternal applies a driver-supplied logical position when no drag is
// active. Pushes during a drag are dropped.
func (r *Reconciler) PushExternal(logical int) bool {
	r.mu.Lock()
	if !r.state.ApplyExternal(logical) {
		r.mu.Unlock()
		r.log.Debug("external push dropped during drag", zap.Int("logical", logical))
		return false
	}
	f, ls := r.frameLocked(), r.listeners
	r.mu.Unlock()
	notify(ls, f)
	return true
}

// Down starts a drag session anchored at the current thumb position. A
// second contact while a session is alive is ignored.
func (r *Reconciler) Down(pointer PointerID) bool {
	r.mu.Lock()
	if r.session != nil {
		active := r.session.ID
		r.mu.Unlock()
		r.log.Debug("secondary pointer ignored",
			zap.Int("pointer", int(pointer)), zap.String("session", active))
		return false
	}
	anchor := r.state.Pixel()
	r.state.BeginDrag(anchor)
	r.session = &Session{ID: uuid.NewString(), Pointer: pointer, Anchor: anchor}
	id := r.session.ID
	f, ls := r.frameLocked(), r.listeners
	r.mu.Unlock()

	r.log.Debug("drag started", zap.String("session", id), zap.Float64("anchor", anchor))
	notify(ls, f)
	return true
}

// Move applies the cumulative translation since Down. Non-finite samples
// and moves without a session are ignored.
func (r *Reconciler) Move(pointer PointerID, cumulativeDelta float64) bool {
	r.mu.Lock()
	if r.session == nil || r.session.Pointer != pointer {
		r.mu.Unlock()
		r.dropped(ErrOutOfOrderEvent, "move", pointer, cumulativeDelta)
		return false
	}
	if !isFinite(cumulativeDelta) {
		r.mu.Unlock()
		r.dropped(ErrMalformedSample, "move", pointer, cumulativeDelta)
		return false
	}
	r.state.UpdateDrag(cumulativeDelta)
	r.session.Delta = cumulativeDelta
	f, ls := r.frameLocked(), r.listeners
	r.mu.Unlock()
	notify(ls, f)
	return true
}

// Up ends the session and fires the commit handler with the committed
// logical position.
func (r *Reconciler) Up(pointer PointerID, cumulativeDelta float64) (int, bool) {
	return r.end(pointer, cumulativeDelta, "up")
}

// Cancel ends a system-interrupted session. It commits exactly like Up.
func (r *Reconciler) Cancel(pointer PointerID, cumulativeDelta float64) (int, bool) {
	return r.end(pointer, cumulativeDelta, "cancel")
}

func (r *Reconciler) end(pointer PointerID, delta float64, kind string) (int, bool) {
	r.mu.Lock()
	if r.session == nil || r.session.Pointer != pointer {
		r.mu.Unlock()
		r.dropped(ErrOutOfOrderEvent, kind, pointer, delta)
		return 0, false
	}
	sess := r.session
	if !isFinite(delta) {
		r.log.Debug("final sample malformed, committing last valid position",
			zap.String("session", sess.ID), zap.Float64("last_delta", sess.Delta))
		delta = sess.Delta
	}
	logical := r.state.EndDrag(delta)
	r.session = nil
	f, ls, commit := r.frameLocked(), r.listeners, r.onCommit
	r.mu.Unlock()

	r.log.Debug("drag committed",
		zap.String("session", sess.ID), zap.String("via", kind), zap.Int("logical", logical))
	notify(ls, f)
	if commit != nil {
		commit(logical)
	}
	return logical, true
}

// Tap commits a discrete jump to pixel, as if a zero-length drag had been
// dropped there. It is ignored while a drag is active.
func (r *Reconciler) Tap(pixel float64) (int, bool) {
	if !isFinite(pixel) {
		r.log.Debug("tap dropped", zap.Error(ErrMalformedSample))
		return 0, false
	}
	r.mu.Lock()
	return r.jumpLocked(pixel, "tap")
}

// Step nudges the committed position by units and commits the result. It is
// ignored while a drag is active.
func (r *Reconciler) Step(units int) (int, bool) {
	r.mu.Lock()
	target := r.state.Committed() + units
	if target < 0 {
		target = 0
	} else if target > r.state.Total() {
		target = r.state.Total()
	}
	return r.jumpLocked(float64(target)*r.state.UnitSize(), "step")
}

// jumpLocked runs a whole session in one critical section. r.mu must be
// held; it is released before returning.
func (r *Reconciler) jumpLocked(pixel float64, kind string) (int, bool) {
	if r.session != nil {
		r.mu.Unlock()
		r.log.Debug(kind+" ignored during drag", zap.Float64("pixel", pixel))
		return 0, false
	}
	anchor := r.state.Pixel()
	r.state.BeginDrag(anchor)
	logical := r.state.EndDrag(pixel - anchor)
	f, ls, commit := r.frameLocked(), r.listeners, r.onCommit
	r.mu.Unlock()

	r.log.Debug("position committed", zap.String("via", kind), zap.Int("logical", logical))
	notify(ls, f)
	if commit != nil {
		commit(logical)
	}
	return logical, true
}

// Resize changes the track width, keeping the logical position.
func (r *Reconciler) Resize(trackWidth float64) error {
	r.mu.Lock()
	if err := r.state.Resize(trackWidth); err != nil {
		r.mu.Unlock()
		r.log.Warn("resize rejected, keeping previous track width", zap.Error(err))
		return err
	}
	f, ls := r.frameLocked(), r.listeners
	r.mu.Unlock()
	notify(ls, f)
	return nil
}

// Snapshot returns the current frame.
func (r *Reconciler) Snapshot() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	f := r.state.frame()
	f.Seq = r.seq
	return f
}

// Dragging reports whether a drag session is alive.
func (r *Reconciler) Dragging() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session != nil
}

// ActiveSession returns a copy of the live session, if any.
func (r *Reconciler) ActiveSession() (Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == nil {
		return Session{}, false
	}
	return *r.session, true
}

// Total returns the logical upper bound.
func (r *Reconciler) Total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Total()
}

// Committed returns the last committed or externally pushed logical value.
func (r *Reconciler) Committed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.Committed()
}

func (r *Reconciler) dropped(reason error, kind string, pointer PointerID, delta float64) {
	r.log.Debug("gesture sample ignored",
		zap.Error(reason),
		zap.String("event", kind),
		zap.Int("pointer", int(pointer)),
		zap.Float64("delta", delta))
}

// frameLocked stamps the current state with the next sequence number.
// r.mu must be held.
func (r *Reconciler) frameLocked() Frame {
	r.seq++
	f := r.state.frame()
	f.Seq = r.seq
	return f
}

func notify(ls []*listener, f Frame) {
	for _, l := range ls {
		l.deliver(f)
	}
}

// deliver drops f if a newer frame already reached this listener. The check
// and the call happen under l.mu so a stale frame cannot overtake a newer
// one mid-delivery.
func (l *listener) deliver(f Frame) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if f.Seq <= l.last {
		return
	}
	l.last = f.Seq
	l.fn(f)
}
