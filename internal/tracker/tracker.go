// Package tracker owns surface detection: it polls hit-test sources once
// per frame, drives the reticle, and spawns primitives on select events.
package tracker

import (
	"errors"

	"xrplace/internal/appstate"
	"xrplace/internal/components"
	"xrplace/internal/engine"
	"xrplace/internal/metrics"
	"xrplace/internal/xr"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type ShapeKind int

const (
	ShapeCube ShapeKind = iota
	ShapeSphere
	// ShapeCylinder renders as an elongated box, not a true cylinder.
	ShapeCylinder
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeCube:
		return "cube"
	case ShapeSphere:
		return "sphere"
	case ShapeCylinder:
		return "cylinder"
	}
	return "unknown"
}

// ObjectFactory builds and releases render-side resources for the objects
// the tracker owns. The raylib implementation lives in internal/world.
type ObjectFactory interface {
	NewReticle() *engine.GameObject
	NewShape(kind ShapeKind, position rl.Vector3) *engine.GameObject
	Release(g *engine.GameObject)
}

type Config struct {
	// SpawnNudge lifts spawned objects off the surface to avoid z-fighting.
	SpawnNudge float32
	// PulseSeconds is how long the reticle shows the attention tint after a
	// spawn before reverting to the nominal color.
	PulseSeconds float32
	ReticleColor rl.Color
	PulseColor   rl.Color
}

func DefaultConfig() Config {
	return Config{
		SpawnNudge:   0.01,
		PulseSeconds: 0.3,
		ReticleColor: rl.Green,
		PulseColor:   rl.Yellow,
	}
}

// SurfaceTracker polls one or two hit-test sources against a reference
// frame and publishes a single best-effort hit pose per frame. All methods
// run on the render thread.
type SurfaceTracker struct {
	scene    *engine.Scene
	factory  ObjectFactory
	sink     appstate.Sink
	notifier *xr.Notifier
	cfg      Config
	log      zerolog.Logger
	met      *metrics.Metrics

	session    xr.Session
	refFrame   xr.ReferenceFrame
	gazeSource xr.HitSource
	handSource xr.HitSource
	handDevice uuid.UUID

	reticle         *engine.GameObject
	visible         bool
	lastHitPosition rl.Vector3
	pulseRemaining  float32

	spawnCount int
	placed     []*engine.GameObject

	listenerIDs struct {
		started, ended, added, removed, sel int
	}
	disposed bool
}

func New(scene *engine.Scene, factory ObjectFactory, sink appstate.Sink, notifier *xr.Notifier, cfg Config, log zerolog.Logger) *SurfaceTracker {
	t := &SurfaceTracker{
		scene:    scene,
		factory:  factory,
		sink:     sink,
		notifier: notifier,
		cfg:      cfg,
		log:      log.With().Str("component", "tracker").Logger(),
	}
	t.listenerIDs.started = notifier.SessionStarted.AddListener(t.HandleSessionStart)
	t.listenerIDs.ended = notifier.SessionEnded.AddListener(t.handleSessionEnd)
	t.listenerIDs.added = notifier.DeviceAdded.AddListener(t.handleDeviceAdded)
	t.listenerIDs.removed = notifier.DeviceRemoved.AddListener(t.handleDeviceRemoved)
	t.listenerIDs.sel = notifier.Select.AddListener(t.HandleSelect)
	return t
}

// SetMetrics attaches optional frame metrics. Nil disables instrumentation.
func (t *SurfaceTracker) SetMetrics(m *metrics.Metrics) {
	t.met = m
}

// Visible reports whether the most recent poll produced a usable hit pose.
func (t *SurfaceTracker) Visible() bool {
	return t.visible
}

// LastHitPosition is the world position of the most recent usable hit.
func (t *SurfaceTracker) LastHitPosition() rl.Vector3 {
	return t.lastHitPosition
}

// SpawnCount is the number of objects spawned this session.
func (t *SurfaceTracker) SpawnCount() int {
	return t.spawnCount
}

// Placed returns the objects the tracker has spawned and still owns.
func (t *SurfaceTracker) Placed() []*engine.GameObject {
	return t.placed
}

// Reticle exposes the reticle object, nil before session start.
func (t *SurfaceTracker) Reticle() *engine.GameObject {
	return t.reticle
}

// HandleSessionStart resolves the reference frame (floor, then local, then
// viewer; first success wins) and requests the gaze hit source. A runtime
// without hit testing leaves the tracker inert but does not crash anything
// else; the failure is surfaced through the error sink.
func (t *SurfaceTracker) HandleSessionStart(session xr.Session) {
	if t.disposed {
		return
	}
	t.session = session

	for _, kind := range []xr.ReferenceFrameKind{xr.FrameFloor, xr.FrameLocal, xr.FrameViewer} {
		rf, err := session.RequestReferenceFrame(kind)
		if err != nil {
			t.log.Debug().Str("frame", string(kind)).Err(err).Msg("reference frame unavailable")
			continue
		}
		t.refFrame = rf
		break
	}
	if t.refFrame == nil {
		t.log.Error().Msg("no usable reference frame")
		t.sink.SetError("no usable reference frame")
		return
	}
	if t.disposed {
		// Teardown ran while setup was in flight; discard silently.
		return
	}

	gaze, err := session.RequestHitSource(xr.HitSourceOptions{Kind: xr.SourceGaze})
	if err != nil {
		if errors.Is(err, xr.ErrNotSupported) {
			t.log.Error().Err(err).Msg("hit testing not supported")
			t.sink.SetError("hit testing is not supported on this device")
		} else {
			t.log.Error().Err(err).Msg("gaze hit source request failed")
			t.sink.SetError("surface detection failed to start")
		}
		return
	}
	if t.disposed {
		gaze.Cancel()
		return
	}
	t.gazeSource = gaze

	t.reticle = t.factory.NewReticle()
	t.reticle.Active = false
	t.setReticleColor(t.cfg.ReticleColor)
	t.scene.AddGameObject(t.reticle)

	for _, d := range session.InputDevices() {
		if d.Handedness == xr.HandRight {
			t.attachHandSource(d)
		}
	}
	t.log.Info().Str("frame", string(t.refFrame.Kind())).Msg("surface tracking started")
}

func (t *SurfaceTracker) handleDeviceAdded(d xr.InputDevice) {
	if t.disposed || t.session == nil || d.Handedness != xr.HandRight {
		return
	}
	t.attachHandSource(d)
}

func (t *SurfaceTracker) handleDeviceRemoved(d xr.InputDevice) {
	if t.handSource == nil || t.handDevice != d.ID {
		return
	}
	t.handSource.Cancel()
	t.handSource = nil
	t.handDevice = uuid.Nil
	t.log.Debug().Str("device", d.ID.String()).Msg("hand hit source removed")
}

// attachHandSource replaces any existing hand source; only one is tracked
// at a time.
func (t *SurfaceTracker) attachHandSource(d xr.InputDevice) {
	if t.handSource != nil {
		t.handSource.Cancel()
		t.handSource = nil
	}
	src, err := t.session.RequestHitSource(xr.HitSourceOptions{Kind: xr.SourceHandRight, Device: d})
	if err != nil {
		t.log.Warn().Err(err).Msg("hand hit source request failed")
		return
	}
	if t.disposed {
		src.Cancel()
		return
	}
	t.handSource = src
	t.handDevice = d.ID
	t.log.Debug().Str("device", d.ID.String()).Msg("hand hit source added")
}

// Update polls the hit sources once for the given frame. The hand source
// wins when it returns any results; otherwise the gaze source is queried.
// Only the first result is used, in provider order. Errors degrade to "no
// hit this frame" and never reach the frame driver.
func (t *SurfaceTracker) Update(frame xr.Frame) {
	if t.disposed || frame == nil || t.refFrame == nil || t.reticle == nil {
		return
	}
	if t.met != nil {
		timer := t.met.PollTimer()
		defer timer.ObserveDuration()
	}

	if t.pulseRemaining > 0 {
		t.pulseRemaining -= frame.DeltaTime()
		if t.pulseRemaining <= 0 {
			t.pulseRemaining = 0
			t.setReticleColor(t.cfg.ReticleColor)
		}
	}

	results := t.poll(frame)

	visible := false
	if len(results) > 0 {
		if pose, ok := results[0].PoseIn(t.refFrame); ok {
			t.reticle.Transform.Position = pose.Position
			euler := rl.QuaternionToEuler(pose.Orientation)
			t.reticle.Transform.Rotation = rl.Vector3Scale(euler, rl.Rad2deg)
			t.lastHitPosition = pose.Position
			visible = true
		}
	}

	t.visible = visible
	t.reticle.Active = visible
	t.sink.SetHitResults(results)
	t.sink.SetReticleVisible(visible)
	if t.met != nil {
		t.met.SetReticleVisible(visible)
	}
}

func (t *SurfaceTracker) poll(frame xr.Frame) []xr.HitResult {
	if t.handSource != nil {
		results, err := frame.HitTestResults(t.handSource)
		if err != nil {
			t.log.Warn().Err(err).Msg("hand hit test failed this frame")
		} else if len(results) > 0 {
			return results
		}
	}
	if t.gazeSource == nil {
		return nil
	}
	results, err := frame.HitTestResults(t.gazeSource)
	if err != nil {
		t.log.Warn().Err(err).Msg("gaze hit test failed this frame")
		return nil
	}
	return results
}

// HandleSelect spawns a primitive at the last hit position. A select event
// while no surface is indicated is a no-op.
func (t *SurfaceTracker) HandleSelect() {
	if t.disposed || !t.visible {
		return
	}

	t.spawnCount++
	kind := ShapeKind(t.spawnCount % 3)

	pos := t.lastHitPosition
	pos.Y += t.cfg.SpawnNudge

	obj := t.factory.NewShape(kind, pos)
	obj.Interactive = true
	obj.Start()
	t.scene.AddGameObject(obj)
	t.placed = append(t.placed, obj)

	t.setReticleColor(t.cfg.PulseColor)
	t.pulseRemaining = t.cfg.PulseSeconds

	if t.met != nil {
		t.met.SpawnsTotal.Inc()
	}
	t.log.Info().Int("n", t.spawnCount).Str("kind", kind.String()).Msg("spawned object")
}

func (t *SurfaceTracker) handleSessionEnd() {
	t.cancelSources()
	t.session = nil
	t.refFrame = nil
	t.visible = false
	if t.reticle != nil {
		// Released here rather than kept inactive; a later session start
		// builds a fresh one, so holding this one would leak it.
		t.scene.RemoveGameObject(t.reticle)
		t.factory.Release(t.reticle)
		t.reticle = nil
	}
	t.sink.SetReticleVisible(false)
}

func (t *SurfaceTracker) cancelSources() {
	if t.handSource != nil {
		t.handSource.Cancel()
		t.handSource = nil
		t.handDevice = uuid.Nil
	}
	if t.gazeSource != nil {
		t.gazeSource.Cancel()
		t.gazeSource = nil
	}
}

// Dispose cancels hit sources, detaches lifecycle listeners, cancels any
// pending reticle pulse, and releases owned render resources. Idempotent.
func (t *SurfaceTracker) Dispose() {
	if t.disposed {
		return
	}
	t.disposed = true

	t.cancelSources()
	t.pulseRemaining = 0

	t.notifier.SessionStarted.RemoveListener(t.listenerIDs.started)
	t.notifier.SessionEnded.RemoveListener(t.listenerIDs.ended)
	t.notifier.DeviceAdded.RemoveListener(t.listenerIDs.added)
	t.notifier.DeviceRemoved.RemoveListener(t.listenerIDs.removed)
	t.notifier.Select.RemoveListener(t.listenerIDs.sel)

	if t.reticle != nil {
		t.scene.RemoveGameObject(t.reticle)
		t.factory.Release(t.reticle)
		t.reticle = nil
	}
	for _, obj := range t.placed {
		t.scene.RemoveGameObject(obj)
		t.factory.Release(obj)
	}
	t.placed = nil
	t.visible = false
}

func (t *SurfaceTracker) setReticleColor(c rl.Color) {
	if t.reticle == nil {
		return
	}
	if mr := engine.GetComponent[*components.ModelRenderer](t.reticle); mr != nil {
		mr.Color = c
	}
}
