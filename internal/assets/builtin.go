package assets

import (
	"image"
	"image/color"
	"image/draw"
)

var builtins = map[string]func() image.Image{
	"car.png":     carSprite,
	"road.png":    roadSprite,
	"rock.png":    rockSprite,
	"cone.png":    coneSprite,
	"barrier.png": barrierSprite,
	"crate.png":   crateSprite,
}

var (
	carRed    = color.RGBA{200, 10, 10, 255}
	glass     = color.RGBA{40, 60, 90, 255}
	tyre      = color.RGBA{20, 20, 20, 255}
	asphalt   = color.RGBA{130, 130, 135, 255}
	lineWhite = color.RGBA{250, 250, 250, 255}
	kerb      = color.RGBA{230, 200, 40, 255}
	stone     = color.RGBA{110, 100, 95, 255}
	coneOrng  = color.RGBA{250, 130, 10, 255}
	wood      = color.RGBA{150, 100, 50, 255}
	woodDark  = color.RGBA{100, 65, 30, 255}
)

func fill(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// carSprite is a top-down car facing up.
func carSprite() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 80, 140))
	// Wheels
	fill(img, image.Rect(0, 20, 10, 50), tyre)
	fill(img, image.Rect(70, 20, 80, 50), tyre)
	fill(img, image.Rect(0, 95, 10, 125), tyre)
	fill(img, image.Rect(70, 95, 80, 125), tyre)
	// Body
	fill(img, image.Rect(8, 5, 72, 135), carRed)
	// Windscreen and rear window
	fill(img, image.Rect(16, 35, 64, 55), glass)
	fill(img, image.Rect(18, 100, 62, 115), glass)
	return img
}

// roadSprite is one tile of lane with kerbs and a dashed centre line.
func roadSprite() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 160, 120))
	fill(img, img.Bounds(), asphalt)
	fill(img, image.Rect(0, 0, 6, 120), kerb)
	fill(img, image.Rect(154, 0, 160, 120), kerb)
	fill(img, image.Rect(77, 10, 83, 50), lineWhite)
	fill(img, image.Rect(77, 70, 83, 110), lineWhite)
	return img
}

// rockSprite is a rough disc.
func rockSprite() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 80, 80))
	const r = 38
	for y := 0; y < 80; y++ {
		for x := 0; x < 80; x++ {
			dx, dy := x-40, y-40
			if dx*dx+dy*dy <= r*r {
				img.Set(x, y, stone)
			}
		}
	}
	return img
}

// coneSprite is a traffic cone seen from above: a triangle on a base.
func coneSprite() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 60, 80))
	for y := 0; y < 70; y++ {
		half := y * 30 / 70
		fill(img, image.Rect(30-half, y, 30+half+1, y+1), coneOrng)
	}
	fill(img, image.Rect(0, 70, 60, 80), coneOrng)
	fill(img, image.Rect(18, 40, 42, 46), lineWhite)
	return img
}

// barrierSprite is a wide striped barrier.
func barrierSprite() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 160, 50))
	for x := 0; x < 160; x += 20 {
		c := color.Color(carRed)
		if (x/20)%2 == 1 {
			c = lineWhite
		}
		fill(img, image.Rect(x, 0, x+20, 50), c)
	}
	return img
}

// crateSprite is a wooden crate with a cross brace.
func crateSprite() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 80, 80))
	fill(img, img.Bounds(), wood)
	fill(img, image.Rect(0, 0, 80, 6), woodDark)
	fill(img, image.Rect(0, 74, 80, 80), woodDark)
	fill(img, image.Rect(0, 0, 6, 80), woodDark)
	fill(img, image.Rect(74, 0, 80, 80), woodDark)
	for i := 6; i < 74; i++ {
		fill(img, image.Rect(i-2, i-2, i+2, i+2), woodDark)
	}
	return img
}
