package physics

import (
	"testing"

	"xrplace/internal/components"
	"xrplace/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func boxObject(name string, pos rl.Vector3, size float32) *engine.GameObject {
	g := engine.NewGameObject(name)
	g.Transform.Position = pos
	g.AddComponent(components.NewBoxCollider(rl.Vector3{X: size, Y: size, Z: size}))
	return g
}

func sphereObject(name string, pos rl.Vector3, radius float32) *engine.GameObject {
	g := engine.NewGameObject(name)
	g.Transform.Position = pos
	g.AddComponent(components.NewSphereCollider(radius))
	return g
}

func TestRaycastHitsBox(t *testing.T) {
	obj := boxObject("Box", rl.Vector3{X: 0, Y: 0, Z: 0}, 2)

	origin := rl.Vector3{X: 0, Y: 5, Z: 0}
	dir := rl.Vector3{X: 0, Y: -1, Z: 0}

	hit, ok := Raycast([]*engine.GameObject{obj}, origin, dir, 100)
	if !ok {
		t.Fatal("Expected ray to hit box")
	}
	if hit.GameObject != obj {
		t.Error("Hit wrong object")
	}
	if hit.Point.Y < 0.9 || hit.Point.Y > 1.1 {
		t.Errorf("Expected hit near top face y=1, got %f", hit.Point.Y)
	}
	if hit.Normal.Y != 1 {
		t.Errorf("Expected top face normal, got %v", hit.Normal)
	}
}

func TestRaycastHitsSphere(t *testing.T) {
	obj := sphereObject("Sphere", rl.Vector3{X: 3, Y: 0, Z: 0}, 1)

	origin := rl.Vector3{X: -5, Y: 0, Z: 0}
	dir := rl.Vector3{X: 1, Y: 0, Z: 0}

	hit, ok := Raycast([]*engine.GameObject{obj}, origin, dir, 100)
	if !ok {
		t.Fatal("Expected ray to hit sphere")
	}
	if hit.GameObject != obj {
		t.Error("Hit wrong object")
	}
	if hit.Point.X < 1.9 || hit.Point.X > 2.1 {
		t.Errorf("Expected entry point near x=2, got %f", hit.Point.X)
	}
}

func TestRaycastNearestWins(t *testing.T) {
	near := boxObject("Near", rl.Vector3{X: 2, Y: 0, Z: 0}, 1)
	far := boxObject("Far", rl.Vector3{X: 6, Y: 0, Z: 0}, 1)

	origin := rl.Vector3{X: -5, Y: 0, Z: 0}
	dir := rl.Vector3{X: 1, Y: 0, Z: 0}

	hit, ok := Raycast([]*engine.GameObject{far, near}, origin, dir, 100)
	if !ok {
		t.Fatal("Expected a hit")
	}
	if hit.GameObject != near {
		t.Errorf("Expected nearest object, got %s", hit.GameObject.Name)
	}
}

func TestRaycastMiss(t *testing.T) {
	obj := boxObject("Box", rl.Vector3{X: 0, Y: 0, Z: 0}, 1)

	origin := rl.Vector3{X: 10, Y: 10, Z: 10}
	dir := rl.Vector3{X: 1, Y: 0, Z: 0}

	if _, ok := Raycast([]*engine.GameObject{obj}, origin, dir, 100); ok {
		t.Error("Expected miss")
	}
}

func TestRaycastMaxDistance(t *testing.T) {
	obj := boxObject("Box", rl.Vector3{X: 50, Y: 0, Z: 0}, 1)

	origin := rl.Vector3{}
	dir := rl.Vector3{X: 1, Y: 0, Z: 0}

	if _, ok := Raycast([]*engine.GameObject{obj}, origin, dir, 10); ok {
		t.Error("Hit beyond max distance should be ignored")
	}
}

func TestRayPlane(t *testing.T) {
	origin := rl.Vector3{X: 1, Y: 5, Z: 2}
	dir := rl.Vector3{X: 0, Y: -1, Z: 0}

	pt, ok := RayPlane(origin, dir, rl.Vector3{}, rl.Vector3{Y: 1})
	if !ok {
		t.Fatal("Expected plane hit")
	}
	if pt.X != 1 || pt.Y != 0 || pt.Z != 2 {
		t.Errorf("Expected (1,0,2), got %v", pt)
	}

	// Ray pointing away from the plane
	if _, ok := RayPlane(origin, rl.Vector3{Y: 1}, rl.Vector3{}, rl.Vector3{Y: 1}); ok {
		t.Error("Ray pointing away should miss")
	}

	// Ray parallel to the plane
	if _, ok := RayPlane(origin, rl.Vector3{X: 1}, rl.Vector3{}, rl.Vector3{Y: 1}); ok {
		t.Error("Parallel ray should miss")
	}
}
