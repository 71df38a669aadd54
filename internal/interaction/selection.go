// Package interaction owns pointer picking, hover and selection state, and
// reversible highlight recoloring.
package interaction

import (
	"xrplace/internal/appstate"
	"xrplace/internal/components"
	"xrplace/internal/engine"
	"xrplace/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/rs/zerolog"
)

// RayProvider projects a ray from the camera through a screen position.
type RayProvider func(pointer rl.Vector2) rl.Ray

type Config struct {
	HoverColor rl.Color
	// SelectColor doubles as the grab color; selection and grab share a
	// tint by design.
	SelectColor       rl.Color
	EmissiveIntensity float32
	MaxDistance       float32
}

func DefaultConfig() Config {
	return Config{
		HoverColor:        rl.Green,
		SelectColor:       rl.Magenta,
		EmissiveIntensity: 0.5,
		MaxDistance:       100,
	}
}

// SelectionController picks interactive scene objects under the pointer and
// maintains hover and selection state. Hover and selection are independent;
// both can be active on different objects at once. All methods run on the
// render thread.
type SelectionController struct {
	scene  *engine.Scene
	rayFor RayProvider
	sink   appstate.Sink
	cfg    Config
	log    zerolog.Logger

	pointer    rl.Vector2
	hasPointer bool
	immersive  bool

	hovered  *engine.GameObject
	selected *engine.GameObject

	// originalColors maps a sub-part UID to its pre-highlight color. First
	// write wins so repeated hover/select cycles cannot compound; entries
	// are never evicted within a session.
	originalColors map[uint64]rl.Color

	disposed bool
}

func New(scene *engine.Scene, rayFor RayProvider, sink appstate.Sink, cfg Config, log zerolog.Logger) *SelectionController {
	return &SelectionController{
		scene:          scene,
		rayFor:         rayFor,
		sink:           sink,
		cfg:            cfg,
		log:            log.With().Str("component", "selection").Logger(),
		originalColors: make(map[uint64]rl.Color),
	}
}

// SetImmersive suppresses pointer picking while an immersive session is
// active; immersive selection goes through the tracker's select path.
func (c *SelectionController) SetImmersive(immersive bool) {
	c.immersive = immersive
}

// SetPointer records the current pointer position in screen coordinates.
func (c *SelectionController) SetPointer(pointer rl.Vector2) {
	if c.disposed {
		return
	}
	c.pointer = pointer
	c.hasPointer = true
}

func (c *SelectionController) Hovered() *engine.GameObject  { return c.hovered }
func (c *SelectionController) Selected() *engine.GameObject { return c.selected }

// Update runs the hover state machine for this frame.
func (c *SelectionController) Update() {
	if c.disposed || c.immersive || !c.hasPointer {
		return
	}

	picked := c.pick()
	if picked == c.hovered {
		return
	}

	if c.hovered != nil {
		c.unhover(c.hovered)
	}
	c.hovered = picked
	if picked != nil {
		c.applyHighlight(picked, c.cfg.HoverColor)
	}
	c.sink.SetHovered(uidOf(picked))
}

// HandleClick runs the selection state machine: clicking the selected
// object again deselects it, clicking another object moves the selection,
// clicking nothing clears it.
func (c *SelectionController) HandleClick() {
	if c.disposed || c.immersive || !c.hasPointer {
		return
	}

	picked := c.pick()
	if picked == nil {
		if c.selected != nil {
			c.deselect()
			c.sink.SetSelected(0)
		}
		return
	}

	if picked == c.selected {
		c.deselect()
		c.sink.SetSelected(0)
		c.log.Debug().Uint64("uid", picked.UID).Msg("selection toggled off")
		return
	}

	if c.selected != nil {
		c.deselect()
	}
	c.selected = picked
	c.applyHighlight(picked, c.cfg.SelectColor)
	c.sink.SetSelected(picked.UID)
	c.log.Debug().Uint64("uid", picked.UID).Str("name", picked.Name).Msg("object selected")
}

// Dispose clears the color ledger and resets hover and selection, restoring
// any active highlights first. Idempotent.
func (c *SelectionController) Dispose() {
	if c.disposed {
		return
	}
	if c.hovered != nil {
		c.restore(c.hovered)
	}
	if c.selected != nil {
		c.restore(c.selected)
	}
	c.hovered = nil
	c.selected = nil
	c.originalColors = make(map[uint64]rl.Color)
	c.hasPointer = false
	c.disposed = true
}

func (c *SelectionController) pick() *engine.GameObject {
	ray := c.rayFor(c.pointer)
	hit, ok := physics.Raycast(c.scene.Interactive(), ray.Position, ray.Direction, c.cfg.MaxDistance)
	if !ok {
		return nil
	}
	return hit.GameObject
}

func (c *SelectionController) unhover(obj *engine.GameObject) {
	c.restore(obj)
	if obj == c.selected {
		c.applyHighlight(obj, c.cfg.SelectColor)
	}
}

func (c *SelectionController) deselect() {
	obj := c.selected
	c.selected = nil
	c.restore(obj)
	if obj == c.hovered {
		c.applyHighlight(obj, c.cfg.HoverColor)
	}
}

// applyHighlight recolors the object and its renderable sub-parts. A part's
// original color is recorded on first touch only.
func (c *SelectionController) applyHighlight(obj *engine.GameObject, color rl.Color) {
	if mr := engine.GetComponent[*components.ModelRenderer](obj); mr != nil {
		if _, ok := c.originalColors[obj.UID]; !ok {
			c.originalColors[obj.UID] = mr.Color
		}
		mr.Color = color
		mr.Emissive = color
		mr.EmissiveIntensity = c.cfg.EmissiveIntensity
	}
	for _, child := range obj.Children {
		c.applyHighlight(child, color)
	}
}

func (c *SelectionController) restore(obj *engine.GameObject) {
	if mr := engine.GetComponent[*components.ModelRenderer](obj); mr != nil {
		if orig, ok := c.originalColors[obj.UID]; ok {
			mr.Color = orig
		}
		mr.EmissiveIntensity = 0
	}
	for _, child := range obj.Children {
		c.restore(child)
	}
}

func uidOf(obj *engine.GameObject) uint64 {
	if obj == nil {
		return 0
	}
	return obj.UID
}
