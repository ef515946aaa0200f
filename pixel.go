package seamcarve

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// Pixel holds the three 8 bit color channels of an image point.
type Pixel struct {
	R, G, B uint8
}

// Average returns the channel-wise mean of two pixels, rounded to nearest.
func (p Pixel) Average(q Pixel) Pixel {
	avg := func(a, b uint8) uint8 {
		return uint8((uint16(a) + uint16(b) + 1) / 2)
	}
	return Pixel{
		R: avg(p.R, q.R),
		G: avg(p.G, q.G),
		B: avg(p.B, q.B),
	}
}

// FromImage converts any decoded image into a pixel grid. The alpha channel is dropped.
func FromImage(img image.Image) (*Grid[Pixel], error) {
	src := imaging.Clone(img)
	width, height := src.Bounds().Dx(), src.Bounds().Dy()
	if width == 0 || height == 0 {
		return nil, errors.Wrapf(ErrConstruction, "empty image %dx%d", width, height)
	}

	data := make([]Pixel, 0, width*height)
	for i := 0; i < len(src.Pix); i += 4 {
		data = append(data, Pixel{
			R: src.Pix[i],
			G: src.Pix[i+1],
			B: src.Pix[i+2],
		})
	}
	return NewGrid(width, data)
}

// ToImage converts a pixel grid back into an opaque image.
func ToImage(g *Grid[Pixel]) *image.NRGBA {
	width, height := g.Dimensions()
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := g.At(x, y)
			idx := dst.PixOffset(x, y)
			dst.Pix[idx+0] = p.R
			dst.Pix[idx+1] = p.G
			dst.Pix[idx+2] = p.B
			dst.Pix[idx+3] = 0xff
		}
	}
	return dst
}
