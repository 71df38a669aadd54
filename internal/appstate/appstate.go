// Package appstate holds the application-facing state published by the
// core managers. The managers receive the narrow Sink capability instead of
// reaching into a global store, so they can be tested in isolation.
package appstate

import "xrplace/internal/xr"

// Sink receives state published by the managers. Calls are fire-and-forget;
// no return value is consumed. A UID of 0 means "none".
type Sink interface {
	SetReticleVisible(visible bool)
	SetHitResults(results []xr.HitResult)
	SetHovered(uid uint64)
	SetSelected(uid uint64)
	SetError(msg string)
}

// Store is the default Sink: a plain snapshot read by the HUD each frame.
// All writes happen on the render thread.
type Store struct {
	ReticleVisible bool
	HitResults     []xr.HitResult
	HoveredUID     uint64
	SelectedUID    uint64
	LastError      string
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) SetReticleVisible(visible bool)        { s.ReticleVisible = visible }
func (s *Store) SetHitResults(results []xr.HitResult)  { s.HitResults = results }
func (s *Store) SetHovered(uid uint64)                 { s.HoveredUID = uid }
func (s *Store) SetSelected(uid uint64)                { s.SelectedUID = uid }
func (s *Store) SetError(msg string)                   { s.LastError = msg }
