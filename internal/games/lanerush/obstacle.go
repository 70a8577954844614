package lanerush

import (
	"math"

	"github.com/vovakirdan/lanerush/internal/engine"
)

// Jitter maps a uniform u in [0, 1) to a factor in [1-bound, 1+bound].
func Jitter(bound, u float64) float64 {
	return 1 + bound*math.Sin(2*math.Pi*u)
}

// Obstacle falls straight down. Hitting the car ends the run; leaving the
// bottom of the road scores the obstacle's width.
type Obstacle struct {
	*engine.Entity
	run   *Run
	speed float64
}

// NewObstacle creates an obstacle that sizes itself to its sprite.
func NewObstacle(run *Run, sprite string, scale, speed float64) *Obstacle {
	return &Obstacle{
		Entity: engine.NewEntity(engine.EntityOptions{
			Sprite: sprite,
			Scale:  scale,
		}),
		run:   run,
		speed: speed,
	}
}

// Speed returns the fall speed in units per second.
func (o *Obstacle) Speed() float64 {
	return o.speed
}

// Activate places the obstacle at a random column just above the road.
func (o *Obstacle) Activate() {
	bg := o.run.Backdrop
	span := math.Max(0, bg.Size.W-o.Size.W)
	o.SetPos(bg.Pos.X+o.run.rng.Float64()*span, bg.Pos.Y-o.Size.H)
}

// Tick moves the obstacle and checks it against the car.
func (o *Obstacle) Tick(dt float64) {
	sim := o.Sim()
	if sim.Lost() {
		return
	}

	o.Pos.Add(0, o.speed*dt)

	if o.Size.Intersects(o.run.Vehicle.Hitbox()) {
		sim.Lose()
		return
	}
	if o.Pos.Y > o.run.Backdrop.Size.Bottom() {
		o.Delete()
	}
}

// OnDelete scores the obstacle's width.
func (o *Obstacle) OnDelete() {
	o.Sim().AddScore(o.Size.W)
}
