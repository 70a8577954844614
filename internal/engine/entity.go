// Package engine implements the frame-driven simulation: entities with an
// activation lifecycle, a deferred callback queue drained once per frame,
// and the per-frame tick/draw/prune loop.
package engine

import (
	"fmt"
	"image"
	"image/color"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lanerush/internal/core"
)

// Events emitted by entities and the simulation.
const (
	EventSpriteLoaded core.Event = "spriteLoaded"
	EventSpriteFailed core.Event = "spriteFailed"
	EventDelete       core.Event = "delete"
	EventKeyDown      core.Event = "keydown"
	EventKeyUp        core.Event = "keyup"
	EventLose         core.Event = "lose"
	EventScore        core.Event = "score"
)

// EntityID identifies an entity within its simulation. IDs start at 1.
type EntityID uint64

// State is the activation state of an entity.
type State int

const (
	// StateInactive entities are neither ticked nor drawn.
	StateInactive State = iota
	// StateArmed entities were activated but still wait for their sprite.
	StateArmed
	// StateActive entities are ticked and drawn every frame.
	StateActive
	// StateDeleted is terminal; the entity is pruned at the end of the frame.
	StateDeleted
)

func (s State) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateArmed:
		return "armed"
	case StateActive:
		return "active"
	case StateDeleted:
		return "deleted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Node is anything the simulation can hold. Concrete entities embed
// *Entity, which supplies defaults for every method, and override the hooks
// they need.
type Node interface {
	Base() *Entity

	Tick(dt float64)
	Draw(s Surface, dt float64)

	// Activate runs once per activation, when size and sprite are final.
	Activate()
	OnSpriteLoaded()
	OnSpriteFailed(err error)
	OnDelete()
}

// EntityOptions configures NewEntity.
// A zero W or H turns on auto-sizing to the sprite.
type EntityOptions struct {
	X, Y   float64
	W, H   float64
	Scale  float64
	Sprite string
}

// Entity is a positioned, sized simulation object.
type Entity struct {
	core.Hub

	ID   EntityID
	Pos  core.Vector2
	Size core.Rect

	sprite      *Sprite
	spriteFail  bool
	pendingLoad bool
	loadTicket  *Ticket
	autoSize    bool
	scale       float64

	state     State
	requested bool
	deleted   bool

	sim  *Simulation
	self Node
}

// NewEntity creates an inactive entity. If opts names a sprite, its load
// starts as soon as the entity joins a simulation.
func NewEntity(opts EntityOptions) *Entity {
	e := &Entity{
		Pos:   core.Vec(opts.X, opts.Y),
		scale: opts.Scale,
	}
	if e.scale <= 0 {
		e.scale = 1
	}
	e.Size = core.NewRect(opts.W, opts.H, &e.Pos)
	e.self = e
	e.Bind(e)

	if opts.W <= 0 || opts.H <= 0 {
		e.autoSize = true
	}
	if opts.Sprite != "" {
		e.LoadSprite(opts.Sprite)
	}
	return e
}

// Base returns the entity itself.
func (e *Entity) Base() *Entity { return e }

// Tick does nothing by default.
func (e *Entity) Tick(dt float64) {}

// Draw draws the sprite over the entity box. An entity whose sprite failed
// to load is drawn as a filled box.
func (e *Entity) Draw(s Surface, dt float64) {
	switch {
	case e.sprite.Loaded():
		s.DrawImage(e.sprite, e.Pos.X, e.Pos.Y, e.Size.W, e.Size.H)
	case e.spriteFail:
		s.SetFillStyle(color.Gray{Y: 0x80})
		s.FillRect(e.Pos.X, e.Pos.Y, e.Size.W, e.Size.H)
	}
}

// Activate does nothing by default.
func (e *Entity) Activate() {}

// OnSpriteLoaded sizes the entity to its sprite and completes a pending
// activation.
func (e *Entity) OnSpriteLoaded() {
	e.SizeToImage(false)
	if e.state == StateArmed {
		e.SetActive(true)
	}
}

// OnSpriteFailed drops the sprite and completes a pending activation
// without it.
func (e *Entity) OnSpriteFailed(err error) {
	src := ""
	if e.sprite != nil {
		src = e.sprite.Src
	}
	e.logger().Warn("sprite failed to load", "entity", e.ID, "src", src, "err", err)

	e.sprite = nil
	e.spriteFail = true
	if e.state == StateArmed {
		e.SetActive(true)
	}
}

// OnDelete does nothing by default.
func (e *Entity) OnDelete() {}

// HandleEvent routes the entity's own events to its hooks. It runs before
// any listener registered on the entity.
func (e *Entity) HandleEvent(ev core.Event, args ...any) {
	switch ev {
	case EventSpriteLoaded:
		e.self.OnSpriteLoaded()
	case EventSpriteFailed:
		var err error
		if len(args) > 0 {
			err, _ = args[0].(error)
		}
		e.self.OnSpriteFailed(err)
	case EventDelete:
		e.self.OnDelete()
	}
}

// State returns the activation state.
func (e *Entity) State() State { return e.state }

// IsActive reports whether the entity is ticked and drawn.
func (e *Entity) IsActive() bool { return e.state == StateActive }

// Requested reports whether activation was asked for.
func (e *Entity) Requested() bool { return e.requested }

// PendingDeletion reports whether the entity will be pruned.
func (e *Entity) PendingDeletion() bool { return e.deleted }

// Sim returns the owning simulation, or nil before Add.
func (e *Entity) Sim() *Simulation { return e.sim }

// Sprite returns the current sprite, or nil.
func (e *Entity) Sprite() *Sprite { return e.sprite }

// SetActive requests or cancels activation. Activation completes at once if
// the entity has no sprite or its sprite is loaded; otherwise the entity
// stays armed until the sprite arrives. Deleted entities ignore this.
func (e *Entity) SetActive(active bool) {
	if e.state == StateDeleted {
		return
	}
	if !active {
		e.requested = false
		e.state = StateInactive
		return
	}

	e.requested = true
	if e.state == StateActive {
		return
	}
	if e.sprite == nil || e.sprite.Loaded() {
		e.state = StateActive
		e.self.Activate()
		return
	}
	e.state = StateArmed
}

// Delete marks the entity for removal and emits EventDelete. Only the first
// call has any effect.
func (e *Entity) Delete() {
	if e.deleted {
		return
	}
	e.deleted = true
	e.state = StateDeleted
	e.emit(EventDelete)
}

// LoadSprite replaces the sprite and starts loading src. The load result
// reaches the entity through the deferred queue as EventSpriteLoaded or
// EventSpriteFailed.
func (e *Entity) LoadSprite(src string) {
	e.sprite = &Sprite{Src: src}
	e.spriteFail = false
	if e.sim == nil {
		e.pendingLoad = true
		return
	}
	e.startLoad()
}

func (e *Entity) startLoad() {
	sim := e.sim
	sp := e.sprite
	ticket := sim.deferred.Reserve()
	e.loadTicket = ticket
	if sim.assets == nil {
		ticket.Fulfill(func() {
			e.emit(EventSpriteFailed, fmt.Errorf("engine: cannot load %q: no asset loader", sp.Src))
		})
		return
	}

	sim.assets.Load(sim.ctx, sp.Src, func(img image.Image, err error) {
		ticket.Fulfill(func() {
			if e.sprite != sp {
				return
			}
			if err == nil && img == nil {
				err = fmt.Errorf("engine: cannot load %q: empty image", sp.Src)
			}
			if err != nil {
				e.emit(EventSpriteFailed, err)
				return
			}
			sp.img = img
			sp.loaded = true
			e.emit(EventSpriteLoaded)
		})
	})
}

// resumeLoad restarts a sprite load whose result was dropped by a flush.
func (e *Entity) resumeLoad() {
	if e.deleted || e.sprite == nil || e.sprite.Loaded() || e.spriteFail {
		return
	}
	if e.loadTicket.Dropped() {
		e.startLoad()
	}
}

// SetPos moves the entity.
func (e *Entity) SetPos(x, y float64) {
	e.Pos.X = x
	e.Pos.Y = y
}

// SetPosVec moves the entity to v.
func (e *Entity) SetPosVec(v core.Vector2) {
	e.SetPos(v.X, v.Y)
}

// SetSize changes the dimensions.
func (e *Entity) SetSize(w, h float64) {
	e.Size.Set(w, h)
}

// Scale returns the sprite scale factor.
func (e *Entity) Scale() float64 { return e.scale }

// SetScale changes the sprite scale and re-sizes an auto-sized entity.
func (e *Entity) SetScale(scale float64) {
	e.scale = scale
	e.SizeToImage(false)
}

// AutoSize reports whether the entity sizes itself to its sprite.
func (e *Entity) AutoSize() bool { return e.autoSize }

// SetAutoSize toggles sizing to the sprite.
func (e *Entity) SetAutoSize(autoSize bool) {
	e.autoSize = autoSize
	e.SizeToImage(false)
}

// SizeToImage sets the size to the sprite's natural size times the scale,
// if auto-sizing is on or force is set. It does nothing before the sprite
// has loaded.
func (e *Entity) SizeToImage(force bool) {
	if !e.sprite.Loaded() {
		return
	}
	if force || e.autoSize {
		e.SetSize(e.sprite.Width()*e.scale, e.sprite.Height()*e.scale)
	}
}

// TopLeft returns a copy of the top-left corner.
func (e *Entity) TopLeft() core.Vector2 {
	return e.Pos.Copy()
}

// TopRight returns a copy of the top-right corner.
func (e *Entity) TopRight() core.Vector2 {
	v := e.Pos.Copy()
	v.Add(e.Size.W, 0)
	return v
}

// BottomRight returns a copy of the bottom-right corner.
func (e *Entity) BottomRight() core.Vector2 {
	v := e.Pos.Copy()
	v.Add(e.Size.W, e.Size.H)
	return v
}

// BottomLeft returns a copy of the bottom-left corner.
func (e *Entity) BottomLeft() core.Vector2 {
	v := e.Pos.Copy()
	v.Add(0, e.Size.H)
	return v
}

// Center returns a copy of the centre point.
func (e *Entity) Center() core.Vector2 {
	v := e.Pos.Copy()
	half := e.Size.Size()
	v.AddVec(*half.DivScalar(2))
	return v
}

func (e *Entity) emit(ev core.Event, args ...any) {
	if err := e.Emit(ev, args...); err != nil {
		e.logger().Error("entity event failed", "entity", e.ID, "event", ev, "err", err)
	}
}

func (e *Entity) logger() *log.Logger {
	if e.sim == nil {
		return discardLogger
	}
	return e.sim.logger
}
