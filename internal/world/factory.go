package world

import (
	"fmt"

	"xrplace/internal/components"
	"xrplace/internal/engine"
	"xrplace/internal/tracker"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Shape sizes and colors for spawned primitives.
const (
	cubeSide     float32 = 0.25
	sphereRadius float32 = 0.15
	pillarWidth  float32 = 0.1
	pillarHeight float32 = 0.35
	reticleSize  float32 = 0.15
)

var shapeColors = map[tracker.ShapeKind]rl.Color{
	tracker.ShapeCube:     rl.SkyBlue,
	tracker.ShapeSphere:   rl.Maroon,
	tracker.ShapeCylinder: rl.Gold,
}

// Factory builds raylib-backed scene objects for the surface tracker.
type Factory struct {
	spawned int
}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) NewReticle() *engine.GameObject {
	g := engine.NewGameObject("Reticle")
	mesh := rl.GenMeshCylinder(reticleSize, 0.01, 24)
	model := rl.LoadModelFromMesh(mesh)
	g.AddComponent(components.NewModelRenderer(model, rl.Green))
	return g
}

func (f *Factory) NewShape(kind tracker.ShapeKind, position rl.Vector3) *engine.GameObject {
	f.spawned++
	g := engine.NewGameObject(fmt.Sprintf("Placed_%d_%s", f.spawned, kind))
	g.Transform.Position = position

	color := shapeColors[kind]
	var mesh rl.Mesh
	switch kind {
	case tracker.ShapeSphere:
		mesh = rl.GenMeshSphere(sphereRadius, 16, 16)
		g.AddComponent(components.NewSphereCollider(sphereRadius))
	case tracker.ShapeCylinder:
		// Elongated box stand-in for a cylinder.
		mesh = rl.GenMeshCube(pillarWidth, pillarHeight, pillarWidth)
		g.AddComponent(components.NewBoxCollider(rl.Vector3{X: pillarWidth, Y: pillarHeight, Z: pillarWidth}))
	default:
		mesh = rl.GenMeshCube(cubeSide, cubeSide, cubeSide)
		g.AddComponent(components.NewBoxCollider(rl.Vector3{X: cubeSide, Y: cubeSide, Z: cubeSide}))
	}

	model := rl.LoadModelFromMesh(mesh)
	g.AddComponent(components.NewModelRenderer(model, color))
	return g
}

func (f *Factory) Release(g *engine.GameObject) {
	if g == nil {
		return
	}
	if mr := engine.GetComponent[*components.ModelRenderer](g); mr != nil {
		mr.Unload()
	}
	for _, child := range g.Children {
		f.Release(child)
	}
}
