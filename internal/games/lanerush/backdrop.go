package lanerush

import (
	"image/color"
	"math"

	"github.com/vovakirdan/lanerush/internal/config"
	"github.com/vovakirdan/lanerush/internal/engine"
)

var roadFallback = color.RGBA{R: 0x60, G: 0x60, B: 0x66, A: 0xff}

// Backdrop is the scrolling road that fills the playfield. Its box is the
// area the vehicle is kept inside.
type Backdrop struct {
	*engine.Entity
	speed  float64
	offset float64 // scroll in world units, in [0, H)
}

// NewBackdrop creates a backdrop the size of the world.
func NewBackdrop(cfg config.WorldConfig) *Backdrop {
	return &Backdrop{
		Entity: engine.NewEntity(engine.EntityOptions{
			W:      cfg.Width,
			H:      cfg.Height,
			Sprite: cfg.Road,
		}),
		speed: cfg.ScrollSpeed,
	}
}

// Tick scrolls the road.
func (b *Backdrop) Tick(dt float64) {
	if b.Size.H <= 0 {
		return
	}
	b.offset = math.Mod(b.offset+b.speed*dt, b.Size.H)
}

// Draw tiles the road sprite vertically: the part scrolled off the bottom
// reappears at the top.
func (b *Backdrop) Draw(s engine.Surface, dt float64) {
	sp := b.Sprite()
	if !sp.Loaded() {
		s.SetFillStyle(roadFallback)
		s.FillRect(b.Pos.X, b.Pos.Y, b.Size.W, b.Size.H)
		return
	}

	imgW, imgH := sp.Width(), sp.Height()
	ratio := imgH / b.Size.H
	split := imgH - b.offset*ratio // source row drawn at the top of the screen

	if b.offset > 0 {
		s.DrawImageRegion(sp, 0, split, imgW, imgH-split, b.Pos.X, b.Pos.Y, b.Size.W, b.offset)
	}
	s.DrawImageRegion(sp, 0, 0, imgW, split, b.Pos.X, b.Pos.Y+b.offset, b.Size.W, b.Size.H-b.offset)
}

// Resize changes the playfield size.
func (b *Backdrop) Resize(w, h float64) {
	b.SetSize(w, h)
	if h > 0 {
		b.offset = math.Mod(b.offset, h)
	}
}

// Offset returns the current scroll offset in world units.
func (b *Backdrop) Offset() float64 {
	return b.offset
}
