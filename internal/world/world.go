// Package world assembles the demo scene and draws it each frame.
package world

import (
	"xrplace/internal/components"
	"xrplace/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type World struct {
	Scene       *engine.Scene
	CameraObj   *engine.GameObject
	FloorModel  rl.Model
	FloorExtent float32
}

func New(floorExtent float32) *World {
	return &World{
		Scene:       engine.NewScene("Main"),
		FloorExtent: floorExtent,
	}
}

// Initialize creates render resources. Call after the OpenGL context
// exists.
func (w *World) Initialize() {
	floorMesh := rl.GenMeshPlane(w.FloorExtent*2, w.FloorExtent*2, 1, 1)
	w.FloorModel = rl.LoadModelFromMesh(floorMesh)
	w.FloorModel.Materials.Maps.Color = rl.LightGray

	w.createCamera()
	w.Scene.Start()
}

func (w *World) createCamera() {
	cam := engine.NewGameObject("Camera")
	cam.Transform.Position = rl.Vector3{X: 8, Y: 6, Z: 8}
	// Pitch/yaw aiming the camera at the scene origin.
	cam.Transform.Rotation = rl.Vector3{X: -28, Y: 225}
	cam.AddComponent(components.NewCamera())
	w.Scene.AddGameObject(cam)
	w.CameraObj = cam
}

// Camera returns the scene camera component.
func (w *World) Camera() *components.Camera {
	return engine.GetComponent[*components.Camera](w.CameraObj)
}

func (w *World) Update(deltaTime float32) {
	w.Scene.Update(deltaTime)
}

// Draw renders the floor and every object with a ModelRenderer. Call
// inside BeginMode3D/EndMode3D.
func (w *World) Draw() {
	rl.DrawModel(w.FloorModel, rl.Vector3Zero(), 1.0, rl.White)
	rl.DrawGrid(int32(w.FloorExtent), 1.0)

	for _, g := range w.Scene.GameObjects {
		if renderer := engine.GetComponent[*components.ModelRenderer](g); renderer != nil {
			renderer.Draw()
		}
	}
}

func (w *World) Unload() {
	for _, g := range w.Scene.GameObjects {
		if renderer := engine.GetComponent[*components.ModelRenderer](g); renderer != nil {
			renderer.Unload()
		}
	}
	rl.UnloadModel(w.FloorModel)
}
