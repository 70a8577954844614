package window

import (
	"image"
	"image/color"
	"math"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/lanerush/internal/engine"
)

// Metrics of the ebitenutil debug font.
const (
	glyphW   = 6
	baseline = 12
)

// Surface draws onto the ebiten screen image. World units are pixels.
type Surface struct {
	target *ebiten.Image
	w, h   float64

	fill  color.Color
	align engine.TextAlign

	// Uploaded sprite images, keyed by sprite.
	images map[*engine.Sprite]*ebiten.Image
}

// NewSurface creates a surface of the given size. It draws nothing until
// a target is set.
func NewSurface(w, h float64) *Surface {
	return &Surface{
		w:      w,
		h:      h,
		fill:   color.White,
		align:  engine.AlignLeft,
		images: make(map[*engine.Sprite]*ebiten.Image),
	}
}

// SetTarget sets the image drawn into, usually the screen passed to Draw.
func (s *Surface) SetTarget(img *ebiten.Image) {
	s.target = img
}

// SetSize changes the reported size.
func (s *Surface) SetSize(w, h float64) {
	s.w = w
	s.h = h
}

func (s *Surface) Width() float64  { return s.w }
func (s *Surface) Height() float64 { return s.h }

func (s *Surface) ClearRect(x, y, w, h float64) {
	if s.target == nil {
		return
	}
	r := image.Rect(int(x), int(y), int(math.Ceil(x+w)), int(math.Ceil(y+h)))
	if sub, ok := s.target.SubImage(r).(*ebiten.Image); ok {
		sub.Clear()
	}
}

func (s *Surface) DrawImage(sp *engine.Sprite, dx, dy, dw, dh float64) {
	s.DrawImageRegion(sp, 0, 0, sp.Width(), sp.Height(), dx, dy, dw, dh)
}

func (s *Surface) DrawImageRegion(sp *engine.Sprite, sx, sy, sw, sh, dx, dy, dw, dh float64) {
	img := s.image(sp)
	if s.target == nil || img == nil || sw <= 0 || sh <= 0 {
		return
	}
	r := image.Rect(int(sx), int(sy), int(math.Ceil(sx+sw)), int(math.Ceil(sy+sh)))
	sub, ok := img.SubImage(r).(*ebiten.Image)
	if !ok {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(dw/sw, dh/sh)
	op.GeoM.Translate(dx, dy)
	op.Filter = ebiten.FilterLinear
	s.target.DrawImage(sub, op)
}

// image returns the GPU copy of a loaded sprite, uploading it once.
func (s *Surface) image(sp *engine.Sprite) *ebiten.Image {
	if !sp.Loaded() {
		return nil
	}
	if img, ok := s.images[sp]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(sp.Image())
	s.images[sp] = img
	return img
}

func (s *Surface) FillRect(x, y, w, h float64) {
	if s.target == nil {
		return
	}
	vector.DrawFilledRect(s.target, float32(x), float32(y), float32(w), float32(h), s.fill, false)
}

// SetFont is a no-op: text uses the debug font.
func (s *Surface) SetFont(string) {}

func (s *Surface) SetTextAlign(align engine.TextAlign) {
	s.align = align
}

func (s *Surface) SetFillStyle(c color.Color) {
	s.fill = c
}

// FillText prints text with its baseline at y. The debug font is always
// white.
func (s *Surface) FillText(text string, x, y float64) {
	if s.target == nil {
		return
	}
	ebitenutil.DebugPrintAt(s.target, text, textX(text, x, s.align), int(y)-baseline)
}

// textX returns the left edge of text anchored at x.
func textX(text string, x float64, align engine.TextAlign) int {
	w := utf8.RuneCountInString(text) * glyphW
	switch align {
	case engine.AlignCenter:
		return int(x) - w/2
	case engine.AlignRight:
		return int(x) - w
	}
	return int(x)
}

// Forget drops uploaded images for sprites no longer in use.
func (s *Surface) Forget() {
	for sp, img := range s.images {
		img.Deallocate()
		delete(s.images, sp)
	}
}
