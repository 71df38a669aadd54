package interaction

import (
	"testing"

	"xrplace/internal/appstate"
	"xrplace/internal/components"
	"xrplace/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
)

// topDownRay maps pointer coordinates straight onto the floor plane so tests
// can aim at objects by position.
func topDownRay(p rl.Vector2) rl.Ray {
	return rl.Ray{
		Position:  rl.Vector3{X: p.X, Y: 5, Z: p.Y},
		Direction: rl.Vector3{Y: -1},
	}
}

type selRig struct {
	ctrl  *SelectionController
	scene *engine.Scene
	store *appstate.Store
}

func newSelRig() *selRig {
	r := &selRig{
		scene: engine.NewScene("Test"),
		store: appstate.NewStore(),
	}
	r.ctrl = New(r.scene, topDownRay, r.store, DefaultConfig(), zerolog.Nop())
	return r
}

func (r *selRig) addBox(name string, x, z float32) *engine.GameObject {
	g := engine.NewGameObject(name)
	g.Transform.Position = rl.Vector3{X: x, Z: z}
	g.Interactive = true
	g.AddComponent(components.NewModelRenderer(rl.Model{}, rl.SkyBlue))
	g.AddComponent(components.NewBoxCollider(rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}))
	r.scene.AddGameObject(g)
	return g
}

func (r *selRig) pointAt(x, z float32) {
	r.ctrl.SetPointer(rl.Vector2{X: x, Y: z})
}

func colorOf(t *testing.T, g *engine.GameObject) rl.Color {
	t.Helper()
	mr := engine.GetComponent[*components.ModelRenderer](g)
	if mr == nil {
		t.Fatal("object has no ModelRenderer")
	}
	return mr.Color
}

func TestHoverHighlightsObject(t *testing.T) {
	r := newSelRig()
	box := r.addBox("Box", 0, 0)

	r.pointAt(0, 0)
	r.ctrl.Update()

	if r.ctrl.Hovered() != box {
		t.Fatal("Expected box hovered")
	}
	if colorOf(t, box) != DefaultConfig().HoverColor {
		t.Error("Hover color not applied")
	}
	mr := engine.GetComponent[*components.ModelRenderer](box)
	if mr.EmissiveIntensity != DefaultConfig().EmissiveIntensity {
		t.Error("Emissive highlight not applied")
	}
	if r.store.HoveredUID != box.UID {
		t.Error("Hover not published")
	}
}

func TestUnhoverRestoresColor(t *testing.T) {
	r := newSelRig()
	box := r.addBox("Box", 0, 0)

	r.pointAt(0, 0)
	r.ctrl.Update()
	r.pointAt(5, 5) // empty space
	r.ctrl.Update()

	if r.ctrl.Hovered() != nil {
		t.Error("Expected nothing hovered")
	}
	if colorOf(t, box) != rl.SkyBlue {
		t.Error("Original color not restored on unhover")
	}
	mr := engine.GetComponent[*components.ModelRenderer](box)
	if mr.EmissiveIntensity != 0 {
		t.Error("Emissive highlight not cleared")
	}
	if r.store.HoveredUID != 0 {
		t.Error("Hover clear not published")
	}
}

func TestHoverMovesBetweenObjects(t *testing.T) {
	r := newSelRig()
	a := r.addBox("A", 0, 0)
	b := r.addBox("B", 3, 0)

	r.pointAt(0, 0)
	r.ctrl.Update()
	r.pointAt(3, 0)
	r.ctrl.Update()

	if r.ctrl.Hovered() != b {
		t.Fatal("Expected hover to move to B")
	}
	if colorOf(t, a) != rl.SkyBlue {
		t.Error("A should be restored")
	}
	if colorOf(t, b) != DefaultConfig().HoverColor {
		t.Error("B should show hover color")
	}
}

func TestHoverStableWhenUnchanged(t *testing.T) {
	r := newSelRig()
	box := r.addBox("Box", 0, 0)

	r.pointAt(0, 0)
	r.ctrl.Update()
	r.store.HoveredUID = 42 // sentinel: Update must not republish
	r.ctrl.Update()

	if r.store.HoveredUID != 42 {
		t.Error("Unchanged hover should not republish")
	}
	if r.ctrl.Hovered() != box {
		t.Error("Hover should be stable")
	}
}

func TestSelectToggle(t *testing.T) {
	r := newSelRig()
	box := r.addBox("Box", 0, 0)

	r.pointAt(0, 0)
	r.ctrl.HandleClick()

	if r.ctrl.Selected() != box {
		t.Fatal("Expected box selected")
	}
	if colorOf(t, box) != DefaultConfig().SelectColor {
		t.Error("Select color not applied")
	}
	if r.store.SelectedUID != box.UID {
		t.Error("Selection not published")
	}

	r.ctrl.HandleClick() // same object toggles off

	if r.ctrl.Selected() != nil {
		t.Fatal("Expected selection cleared")
	}
	if colorOf(t, box) != rl.SkyBlue {
		t.Error("Original color not restored on deselect")
	}
	if r.store.SelectedUID != 0 {
		t.Error("Deselection not published")
	}
}

func TestSelectMovesBetweenObjects(t *testing.T) {
	r := newSelRig()
	a := r.addBox("A", 0, 0)
	b := r.addBox("B", 3, 0)

	r.pointAt(0, 0)
	r.ctrl.HandleClick()
	r.pointAt(3, 0)
	r.ctrl.HandleClick()

	if r.ctrl.Selected() != b {
		t.Fatal("Expected selection to move to B")
	}
	if colorOf(t, a) != rl.SkyBlue {
		t.Error("A should be restored")
	}
	if colorOf(t, b) != DefaultConfig().SelectColor {
		t.Error("B should show select color")
	}
}

func TestClickNothingDeselects(t *testing.T) {
	r := newSelRig()
	box := r.addBox("Box", 0, 0)

	r.pointAt(0, 0)
	r.ctrl.HandleClick()
	r.pointAt(5, 5)
	r.ctrl.HandleClick()

	if r.ctrl.Selected() != nil {
		t.Error("Click on empty space should deselect")
	}
	if colorOf(t, box) != rl.SkyBlue {
		t.Error("Original color not restored")
	}
}

func TestHoverAndSelectionIndependent(t *testing.T) {
	r := newSelRig()
	a := r.addBox("A", 0, 0)
	b := r.addBox("B", 3, 0)

	r.pointAt(3, 0)
	r.ctrl.Update()      // hover B
	r.ctrl.HandleClick() // select B
	r.pointAt(0, 0)
	r.ctrl.Update() // hover A, B stays selected

	if r.ctrl.Hovered() != a {
		t.Error("Expected A hovered")
	}
	if r.ctrl.Selected() != b {
		t.Error("Expected B still selected")
	}
	if colorOf(t, a) != DefaultConfig().HoverColor {
		t.Error("A should show hover color")
	}
	if colorOf(t, b) != DefaultConfig().SelectColor {
		t.Error("Unhovering a selected object should keep the select color")
	}
	if r.store.HoveredUID != a.UID || r.store.SelectedUID != b.UID {
		t.Error("Store should carry both states at once")
	}
}

func TestDeselectWhileHoveredKeepsHoverColor(t *testing.T) {
	r := newSelRig()
	box := r.addBox("Box", 0, 0)

	r.pointAt(0, 0)
	r.ctrl.Update()      // hover
	r.ctrl.HandleClick() // select
	r.ctrl.HandleClick() // deselect, still hovered

	if colorOf(t, box) != DefaultConfig().HoverColor {
		t.Error("Deselecting a hovered object should fall back to hover color")
	}
}

func TestOriginalColorSurvivesCycles(t *testing.T) {
	r := newSelRig()
	box := r.addBox("Box", 0, 0)

	for i := 0; i < 3; i++ {
		r.pointAt(0, 0)
		r.ctrl.Update()      // hover
		r.ctrl.HandleClick() // select
		r.ctrl.HandleClick() // deselect
		r.pointAt(5, 5)
		r.ctrl.Update() // unhover
	}

	if colorOf(t, box) != rl.SkyBlue {
		t.Error("Highlight cycles must not corrupt the recorded original color")
	}
	if r.ctrl.originalColors[box.UID] != rl.SkyBlue {
		t.Error("Ledger should keep the first recorded color")
	}
}

func TestHighlightRecursesIntoChildren(t *testing.T) {
	r := newSelRig()
	box := r.addBox("Box", 0, 0)
	child := engine.NewGameObject("Part")
	child.AddComponent(components.NewModelRenderer(rl.Model{}, rl.Maroon))
	box.AddChild(child)

	r.pointAt(0, 0)
	r.ctrl.Update()
	if colorOf(t, child) != DefaultConfig().HoverColor {
		t.Error("Child part should be highlighted with the parent")
	}

	r.pointAt(5, 5)
	r.ctrl.Update()
	if colorOf(t, child) != rl.Maroon {
		t.Error("Child part should be restored with the parent")
	}
}

func TestImmersiveSuppressesPicking(t *testing.T) {
	r := newSelRig()
	box := r.addBox("Box", 0, 0)

	r.ctrl.SetImmersive(true)
	r.pointAt(0, 0)
	r.ctrl.Update()
	r.ctrl.HandleClick()

	if r.ctrl.Hovered() != nil || r.ctrl.Selected() != nil {
		t.Error("Picking must be suppressed while immersive")
	}
	if colorOf(t, box) != rl.SkyBlue {
		t.Error("No highlight should be applied while immersive")
	}
}

func TestNoPointerNoPick(t *testing.T) {
	r := newSelRig()
	r.addBox("Box", 0, 0)

	r.ctrl.Update()
	r.ctrl.HandleClick()

	if r.ctrl.Hovered() != nil || r.ctrl.Selected() != nil {
		t.Error("Nothing should be picked before the pointer is known")
	}
}

func TestNonInteractiveObjectsIgnored(t *testing.T) {
	r := newSelRig()
	box := r.addBox("Box", 0, 0)
	box.Interactive = false

	r.pointAt(0, 0)
	r.ctrl.Update()

	if r.ctrl.Hovered() != nil {
		t.Error("Non-interactive objects must not be hovered")
	}
}

func TestDisposeRestoresAndDisables(t *testing.T) {
	r := newSelRig()
	a := r.addBox("A", 0, 0)
	b := r.addBox("B", 3, 0)

	r.pointAt(3, 0)
	r.ctrl.HandleClick() // select B
	r.pointAt(0, 0)
	r.ctrl.Update() // hover A

	r.ctrl.Dispose()
	r.ctrl.Dispose() // idempotent

	if colorOf(t, a) != rl.SkyBlue || colorOf(t, b) != rl.SkyBlue {
		t.Error("Dispose should restore all highlighted objects")
	}
	if r.ctrl.Hovered() != nil || r.ctrl.Selected() != nil {
		t.Error("Dispose should clear hover and selection")
	}
	if len(r.ctrl.originalColors) != 0 {
		t.Error("Dispose should clear the color ledger")
	}

	r.pointAt(0, 0)
	r.ctrl.Update()
	r.ctrl.HandleClick()
	if r.ctrl.Hovered() != nil || r.ctrl.Selected() != nil {
		t.Error("Disposed controller must stay inert")
	}
}
