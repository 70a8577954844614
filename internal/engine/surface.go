package engine

import (
	"context"
	"image"
	"image/color"
)

// TextAlign selects the horizontal anchor of FillText.
type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

// Surface is the 2D drawing target handed to the simulation by its host.
// Coordinates are world units; the host decides how they map to pixels or
// terminal cells.
type Surface interface {
	Width() float64
	Height() float64

	ClearRect(x, y, w, h float64)
	// DrawImage draws the whole sprite into the destination rect.
	DrawImage(sp *Sprite, dx, dy, dw, dh float64)
	// DrawImageRegion draws the source rect of the sprite, in image pixels,
	// into the destination rect.
	DrawImageRegion(sp *Sprite, sx, sy, sw, sh, dx, dy, dw, dh float64)
	FillRect(x, y, w, h float64)

	SetFont(font string)
	SetTextAlign(align TextAlign)
	SetFillStyle(c color.Color)
	FillText(text string, x, y float64)
}

// AssetLoader decodes images by source path.
// Load must not block; done is called exactly once, from any goroutine.
type AssetLoader interface {
	Load(ctx context.Context, src string, done func(image.Image, error))
}

// FrameScheduler delivers the next frame pulse when asked.
// Hosts guarantee at most one pulse is in flight.
type FrameScheduler interface {
	RequestFrame()
}

// Sprite is an image handle owned by an entity.
// Its pixels are only available once the load has completed.
type Sprite struct {
	Src string

	img    image.Image
	loaded bool
}

// Loaded reports whether the image has been decoded.
func (sp *Sprite) Loaded() bool {
	return sp != nil && sp.loaded
}

// Image returns the decoded image, or nil while loading.
func (sp *Sprite) Image() image.Image {
	if !sp.Loaded() {
		return nil
	}
	return sp.img
}

// Width returns the natural width in pixels, or 0 while loading.
func (sp *Sprite) Width() float64 {
	if !sp.Loaded() {
		return 0
	}
	return float64(sp.img.Bounds().Dx())
}

// Height returns the natural height in pixels, or 0 while loading.
func (sp *Sprite) Height() float64 {
	if !sp.Loaded() {
		return 0
	}
	return float64(sp.img.Bounds().Dy())
}

// NewLoadedSprite wraps an already decoded image.
func NewLoadedSprite(src string, img image.Image) *Sprite {
	return &Sprite{Src: src, img: img, loaded: true}
}
