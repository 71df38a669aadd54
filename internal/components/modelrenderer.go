package components

import (
	"xrplace/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ModelRenderer draws a raylib model tinted with the component's current
// color. Color and emissive state live on the component so interaction code
// can recolor objects without touching GPU resources; the material is only
// updated inside Draw.
type ModelRenderer struct {
	engine.BaseComponent
	Model             rl.Model
	Color             rl.Color
	Emissive          rl.Color
	EmissiveIntensity float32
	shader            rl.Shader
}

func NewModelRenderer(model rl.Model, color rl.Color) *ModelRenderer {
	return &ModelRenderer{
		Model: model,
		Color: color,
	}
}

func (m *ModelRenderer) SetShader(shader rl.Shader) {
	m.shader = shader
	m.Model.Materials.Shader = shader
}

// tint folds the emissive term into the draw color. Raylib's default
// material has no emission channel, so emissive highlights brighten the
// tint toward the emissive color instead.
func (m *ModelRenderer) tint() rl.Color {
	if m.EmissiveIntensity <= 0 {
		return m.Color
	}
	t := m.EmissiveIntensity
	if t > 1 {
		t = 1
	}
	lerp := func(a, b uint8) uint8 {
		return uint8(float32(a) + (float32(b)-float32(a))*t)
	}
	return rl.Color{
		R: lerp(m.Color.R, m.Emissive.R),
		G: lerp(m.Color.G, m.Emissive.G),
		B: lerp(m.Color.B, m.Emissive.B),
		A: m.Color.A,
	}
}

func (m *ModelRenderer) Draw() {
	g := m.GetGameObject()
	if g == nil || !g.Active {
		return
	}

	scale := g.Transform.Scale
	scaleMatrix := rl.MatrixScale(scale.X, scale.Y, scale.Z)

	rot := g.Transform.Rotation
	rotX := rl.MatrixRotateX(rot.X * rl.Deg2rad)
	rotY := rl.MatrixRotateY(rot.Y * rl.Deg2rad)
	rotZ := rl.MatrixRotateZ(rot.Z * rl.Deg2rad)
	rotMatrix := rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)

	pos := g.WorldPosition()
	transMatrix := rl.MatrixTranslate(pos.X, pos.Y, pos.Z)

	// scale -> rotate -> translate
	m.Model.Transform = rl.MatrixMultiply(rl.MatrixMultiply(scaleMatrix, rotMatrix), transMatrix)

	rl.DrawModel(m.Model, rl.Vector3Zero(), 1.0, m.tint())
}

func (m *ModelRenderer) Unload() {
	rl.UnloadModel(m.Model)
}
