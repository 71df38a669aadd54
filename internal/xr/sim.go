package xr

import (
	"xrplace/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
)

// SimSession is a desktop stand-in for an XR runtime. Hit testing is a
// ray/plane intersection against a bounded floor at y = FloorY.
type SimSession struct {
	id          uuid.UUID
	HitTesting  bool // false simulates a runtime without the capability
	FloorY      float32
	FloorExtent float32
	devices     []InputDevice
}

func NewSimSession(floorExtent float32) *SimSession {
	return &SimSession{
		id:          uuid.New(),
		HitTesting:  true,
		FloorExtent: floorExtent,
	}
}

func (s *SimSession) ID() uuid.UUID { return s.id }

func (s *SimSession) RequestReferenceFrame(kind ReferenceFrameKind) (ReferenceFrame, error) {
	switch kind {
	case FrameFloor, FrameLocal, FrameViewer:
		return simReferenceFrame{kind: kind}, nil
	default:
		return nil, ErrNotSupported
	}
}

func (s *SimSession) RequestHitSource(opts HitSourceOptions) (HitSource, error) {
	if !s.HitTesting {
		return nil, ErrNotSupported
	}
	return &SimHitSource{session: s, kind: opts.Kind, device: opts.Device}, nil
}

func (s *SimSession) InputDevices() []InputDevice {
	return s.devices
}

// AddDevice registers a connected input device with the session. The caller
// is responsible for also invoking the notifier's DeviceAdded event.
func (s *SimSession) AddDevice(d InputDevice) {
	s.devices = append(s.devices, d)
}

func (s *SimSession) RemoveDevice(d InputDevice) {
	for i, dev := range s.devices {
		if dev.ID == d.ID {
			s.devices = append(s.devices[:i], s.devices[i+1:]...)
			return
		}
	}
}

type simReferenceFrame struct {
	kind ReferenceFrameKind
}

func (f simReferenceFrame) Kind() ReferenceFrameKind { return f.kind }

type SimHitSource struct {
	session   *SimSession
	kind      SourceKind
	device    InputDevice
	cancelled bool
}

func (h *SimHitSource) Kind() SourceKind    { return h.kind }
func (h *SimHitSource) Device() InputDevice { return h.device }
func (h *SimHitSource) Cancel()             { h.cancelled = true }
func (h *SimHitSource) Cancelled() bool     { return h.cancelled }

// SimFrame is one simulated render tick. Rays are set by the frame driver;
// a nil hand ray means the hand is not pointing anywhere this tick.
type SimFrame struct {
	Session *SimSession
	Dt      float32
	GazeRay rl.Ray
	HandRay *rl.Ray
}

func (f *SimFrame) DeltaTime() float32 { return f.Dt }

func (f *SimFrame) HitTestResults(src HitSource) ([]HitResult, error) {
	sim, ok := src.(*SimHitSource)
	if !ok || sim.cancelled {
		return nil, nil
	}

	var ray rl.Ray
	switch sim.kind {
	case SourceGaze:
		ray = f.GazeRay
	case SourceHandRight, SourceHandLeft:
		if f.HandRay == nil {
			return nil, nil
		}
		ray = *f.HandRay
	default:
		return nil, nil
	}

	floorPoint := rl.Vector3{Y: f.Session.FloorY}
	up := rl.Vector3{Y: 1}
	point, hit := physics.RayPlane(ray.Position, ray.Direction, floorPoint, up)
	if !hit {
		return nil, nil
	}
	ext := f.Session.FloorExtent
	if ext > 0 && (point.X < -ext || point.X > ext || point.Z < -ext || point.Z > ext) {
		return nil, nil
	}

	return []HitResult{simHitResult{position: point, normal: up}}, nil
}

type simHitResult struct {
	position rl.Vector3
	normal   rl.Vector3
}

func (r simHitResult) PoseIn(ref ReferenceFrame) (Pose, bool) {
	if ref == nil {
		return Pose{}, false
	}
	return Pose{
		Position:    r.position,
		Orientation: rl.QuaternionFromVector3ToVector3(rl.Vector3{Y: 1}, r.normal),
	}, true
}
