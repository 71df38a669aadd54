package components

import (
	"math"

	"xrplace/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Camera struct {
	engine.BaseComponent
	FOV        float32
	Near       float32
	Far        float32
	Projection rl.CameraProjection
}

func NewCamera() *Camera {
	return &Camera{
		FOV:        45.0,
		Near:       0.1,
		Far:        1000.0,
		Projection: rl.CameraPerspective,
	}
}

func (c *Camera) GetRaylibCamera() rl.Camera3D {
	g := c.GetGameObject()
	if g == nil {
		return rl.Camera3D{}
	}

	eyePos := g.WorldPosition()

	// Look forward based on the object's yaw/pitch.
	rot := g.Transform.Rotation
	yawRad := float64(rot.Y) * math.Pi / 180
	pitchRad := float64(rot.X) * math.Pi / 180
	forward := rl.Vector3{
		X: float32(math.Cos(yawRad) * math.Cos(pitchRad)),
		Y: float32(math.Sin(pitchRad)),
		Z: float32(math.Sin(yawRad) * math.Cos(pitchRad)),
	}
	target := rl.Vector3Add(eyePos, forward)

	return rl.Camera3D{
		Position:   eyePos,
		Target:     target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       c.FOV,
		Projection: c.Projection,
	}
}

// ScreenRay projects a ray from the camera through a screen position.
func (c *Camera) ScreenRay(screenPos rl.Vector2) rl.Ray {
	return rl.GetScreenToWorldRay(screenPos, c.GetRaylibCamera())
}
