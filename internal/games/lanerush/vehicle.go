package lanerush

import (
	"github.com/vovakirdan/lanerush/internal/config"
	"github.com/vovakirdan/lanerush/internal/core"
	"github.com/vovakirdan/lanerush/internal/engine"
)

type binding struct {
	key string
	dir core.Vector2
}

// Vehicle is the player's car. Held direction keys move it at a fixed
// speed; it never leaves the backdrop.
type Vehicle struct {
	*engine.Entity
	run      *Run
	speed    float64
	hitbox   float64
	controls []binding
}

// NewVehicle creates the car. It sizes itself to its sprite.
func NewVehicle(run *Run, cfg config.VehicleConfig, keys config.ControlsConfig) *Vehicle {
	return &Vehicle{
		Entity: engine.NewEntity(engine.EntityOptions{
			Sprite: cfg.Sprite,
			Scale:  cfg.Scale,
		}),
		run:    run,
		speed:  cfg.Speed,
		hitbox: cfg.Hitbox,
		controls: []binding{
			{keys.Up, core.Vec(0, -1)},
			{keys.Left, core.Vec(-1, 0)},
			{keys.Down, core.Vec(0, 1)},
			{keys.Right, core.Vec(1, 0)},
		},
	}
}

// Activate centres the car on the backdrop.
func (v *Vehicle) Activate() {
	c := v.run.Backdrop.Center()
	c.Sub(v.Size.W/2, v.Size.H/2)
	v.SetPosVec(c)
}

// Tick moves the car by the held directions and keeps it on the road.
func (v *Vehicle) Tick(dt float64) {
	sim := v.Sim()
	var vel core.Vector2
	for _, b := range v.controls {
		if sim.IsKeyDown(b.key) {
			vel.AddVec(b.dir)
		}
	}
	vel.Scale(v.speed * dt)

	bg := v.run.Backdrop
	limit := bg.BottomRight()
	limit.SubVec(v.Size.Size())
	v.Pos.AddVec(vel).Clamp(bg.TopLeft(), limit)
}

// Hitbox returns the collision box: the drawn box shrunk about its centre.
func (v *Vehicle) Hitbox() core.Rect {
	return v.Size.ScaledAboutCenter(v.hitbox)
}
