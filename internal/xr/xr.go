// Package xr defines the boundary to the XR runtime: session, per-frame
// hit testing, reference frames, and input devices. The core managers only
// see these interfaces; a simulated runtime backs them in the desktop demo.
package xr

import (
	"errors"

	"xrplace/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
)

// ErrNotSupported is returned when the runtime cannot provide hit testing
// or a requested reference frame.
var ErrNotSupported = errors.New("xr: not supported by runtime")

type ReferenceFrameKind string

const (
	FrameFloor  ReferenceFrameKind = "floor"
	FrameLocal  ReferenceFrameKind = "local"
	FrameViewer ReferenceFrameKind = "viewer"
)

// ReferenceFrame is a named coordinate space resolved once per session.
type ReferenceFrame interface {
	Kind() ReferenceFrameKind
}

// Pose is a position and orientation expressed in a reference frame.
type Pose struct {
	Position    rl.Vector3
	Orientation rl.Quaternion
}

// HitResult is one ray/surface intersection candidate.
type HitResult interface {
	// PoseIn resolves the result against a reference frame. Reports false
	// when the pose cannot be expressed in that frame this frame.
	PoseIn(ref ReferenceFrame) (Pose, bool)
}

type SourceKind string

const (
	SourceGaze      SourceKind = "gaze"
	SourceHandRight SourceKind = "right-hand"
	SourceHandLeft  SourceKind = "left-hand"
)

type Handedness string

const (
	HandNone  Handedness = "none"
	HandLeft  Handedness = "left"
	HandRight Handedness = "right"
)

// InputDevice identifies a tracked input device for the session.
type InputDevice struct {
	ID         uuid.UUID
	Handedness Handedness
}

type HitSourceOptions struct {
	Kind SourceKind
	// Device is set for hand sources so disconnects can be matched.
	Device InputDevice
}

// HitSource is a live subscription yielding intersection candidates each
// frame for one tracked ray origin.
type HitSource interface {
	Kind() SourceKind
	Device() InputDevice
	Cancel()
}

// Session is the active XR session.
type Session interface {
	ID() uuid.UUID
	RequestReferenceFrame(kind ReferenceFrameKind) (ReferenceFrame, error)
	RequestHitSource(opts HitSourceOptions) (HitSource, error)
	InputDevices() []InputDevice
}

// Frame carries one render tick's hit-test query capability.
type Frame interface {
	HitTestResults(src HitSource) ([]HitResult, error)
	DeltaTime() float32
}

// Notifier delivers session lifecycle and discrete input events. Handlers
// run synchronously on the render thread.
type Notifier struct {
	SessionStarted engine.EventWithArg[Session]
	SessionEnded   engine.Event
	DeviceAdded    engine.EventWithArg[InputDevice]
	DeviceRemoved  engine.EventWithArg[InputDevice]
	Select         engine.Event
}
