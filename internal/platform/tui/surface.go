package tui

import (
	"fmt"
	"image/color"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/lanerush/internal/core"
	"github.com/vovakirdan/lanerush/internal/engine"
)

const (
	blockRune = '█'
	// Pixels below this alpha are treated as transparent.
	alphaCutoff = 0x80
)

// CellSurface draws world coordinates onto a terminal cell buffer.
// The whole world is stretched over the screen; sprites are sampled once
// per cell and keep their exact color next to the nearest palette color.
type CellSurface struct {
	screen *core.Screen
	w, h   float64

	align engine.TextAlign
	fill  color.Color
}

// NewCellSurface creates a surface of world size w x h over screen.
func NewCellSurface(screen *core.Screen, w, h float64) *CellSurface {
	return &CellSurface{
		screen: screen,
		w:      w,
		h:      h,
		align:  engine.AlignLeft,
		fill:   color.White,
	}
}

// SetWorldSize changes the world area mapped onto the screen.
func (s *CellSurface) SetWorldSize(w, h float64) {
	s.w = w
	s.h = h
}

// Screen returns the underlying cell buffer.
func (s *CellSurface) Screen() *core.Screen {
	return s.screen
}

func (s *CellSurface) Width() float64  { return s.w }
func (s *CellSurface) Height() float64 { return s.h }

// cellX maps a world x coordinate to a column.
func (s *CellSurface) cellX(x float64) int {
	if s.w <= 0 {
		return 0
	}
	return int(math.Floor(x * float64(s.screen.Width()) / s.w))
}

// cellY maps a world y coordinate to a row.
func (s *CellSurface) cellY(y float64) int {
	if s.h <= 0 {
		return 0
	}
	return int(math.Floor(y * float64(s.screen.Height()) / s.h))
}

// cellRect returns the cells covered by a world rect, clipped to the
// screen.
func (s *CellSurface) cellRect(x, y, w, h float64) core.CellRect {
	x0 := core.Clamp(s.cellX(x), 0, s.screen.Width())
	y0 := core.Clamp(s.cellY(y), 0, s.screen.Height())
	x1 := core.Clamp(s.cellX(x+w), 0, s.screen.Width())
	y1 := core.Clamp(s.cellY(y+h), 0, s.screen.Height())
	return core.NewCellRect(x0, y0, x1-x0, y1-y0)
}

func (s *CellSurface) ClearRect(x, y, w, h float64) {
	s.screen.FillRect(s.cellRect(x, y, w, h), ' ', core.ColorDefault)
}

func (s *CellSurface) DrawImage(sp *engine.Sprite, dx, dy, dw, dh float64) {
	s.DrawImageRegion(sp, 0, 0, sp.Width(), sp.Height(), dx, dy, dw, dh)
}

// DrawImageRegion samples the source region at the centre of every
// destination cell.
func (s *CellSurface) DrawImageRegion(sp *engine.Sprite, sx, sy, sw, sh, dx, dy, dw, dh float64) {
	img := sp.Image()
	if img == nil || dw <= 0 || dh <= 0 {
		return
	}
	bounds := img.Bounds()
	r := s.cellRect(dx, dy, dw, dh)
	cols, rows := float64(s.screen.Width()), float64(s.screen.Height())

	for cy := r.Y; cy < r.Bottom(); cy++ {
		wy := (float64(cy) + 0.5) * s.h / rows
		py := sy + (wy-dy)/dh*sh
		for cx := r.X; cx < r.Right(); cx++ {
			wx := (float64(cx) + 0.5) * s.w / cols
			px := sx + (wx-dx)/dw*sw

			ix := bounds.Min.X + int(px)
			iy := bounds.Min.Y + int(py)
			if ix < bounds.Min.X || ix >= bounds.Max.X || iy < bounds.Min.Y || iy >= bounds.Max.Y {
				continue
			}
			r, g, b, ok := straightRGB(img.At(ix, iy))
			if !ok {
				continue
			}
			s.screen.SetRGB(cx, cy, blockRune, core.NearestColor(r, g, b), hexColor(r, g, b))
		}
	}
}

// FillRect paints opaque fills as solid blocks. Translucent fills dim the
// covered cells instead.
func (s *CellSurface) FillRect(x, y, w, h float64) {
	r := s.cellRect(x, y, w, h)
	_, _, _, a := s.fill.RGBA()
	if a>>8 == 0xff {
		c, _ := paletteColor(s.fill)
		s.screen.FillRect(r, blockRune, c)
		return
	}
	if a>>8 < 0x20 {
		return
	}
	for cy := r.Y; cy < r.Bottom(); cy++ {
		for cx := r.X; cx < r.Right(); cx++ {
			cell := s.screen.GetCell(cx, cy)
			s.screen.SetColored(cx, cy, cell.Rune, core.ColorGray)
		}
	}
}

// SetFont is a no-op: terminals have one font.
func (s *CellSurface) SetFont(string) {}

func (s *CellSurface) SetTextAlign(align engine.TextAlign) {
	s.align = align
}

func (s *CellSurface) SetFillStyle(c color.Color) {
	s.fill = c
}

// FillText writes text on the row containing y, anchored by the current
// alignment.
func (s *CellSurface) FillText(text string, x, y float64) {
	n := utf8.RuneCountInString(text)
	cx := s.cellX(x)
	switch s.align {
	case engine.AlignCenter:
		cx -= n / 2
	case engine.AlignRight:
		cx -= n
	}
	c, ok := paletteColor(s.fill)
	if !ok {
		c = core.ColorDefault
	}
	s.screen.DrawText(cx, s.cellY(y), text, c)
}

// paletteColor maps c to the nearest terminal color. ok is false for
// transparent colors.
func paletteColor(c color.Color) (core.Color, bool) {
	r, g, b, ok := straightRGB(c)
	if !ok {
		return core.ColorDefault, false
	}
	return core.NearestColor(r, g, b), true
}

// straightRGB returns the 8-bit channels of c with premultiplication
// undone. ok is false for transparent colors.
func straightRGB(c color.Color) (r, g, b uint8, ok bool) {
	r32, g32, b32, a := c.RGBA()
	if a>>8 < alphaCutoff {
		return 0, 0, 0, false
	}
	r32 = r32 * 0xffff / a
	g32 = g32 * 0xffff / a
	b32 = b32 * 0xffff / a
	return uint8(r32 >> 8), uint8(g32 >> 8), uint8(b32 >> 8), true
}

func hexColor(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
