package seamcarve

import (
	"image"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/esimov/seamcarve/utils"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	// Register the WebP decoder next to the formats supported by imaging.
	_ "golang.org/x/image/webp"
)

// SeamCarver is the interface implemented by the image level resizers.
type SeamCarver interface {
	Resize(image.Image) (image.Image, error)
}

var _ SeamCarver = (*Processor)(nil)

// Processor options
type Processor struct {
	// NewWidth and NewHeight are the requested dimensions, zero keeps the source dimension.
	NewWidth  int
	NewHeight int
	// Percentage interprets NewWidth and NewHeight as the percentage to cut from the source.
	Percentage bool
	// Square resizes the image to a square having the smaller of NewWidth and NewHeight as edge.
	Square bool
	// Scale rescales the image proportionally before carving when both dimensions shrink,
	// so that only the remaining difference is carved.
	Scale bool
	// Strict refuses to enlarge the image.
	Strict bool
	Logger *zap.Logger
}

// Process decodes the image read from r, resizes it and encodes the result into w.
// When w is a file its extension selects the output format, otherwise JPEG is used.
func (p *Processor) Process(r io.Reader, w io.Writer) error {
	return Process(p, r, w)
}

// Process runs the decode, resize, encode pipeline with the given resizer.
func Process(s SeamCarver, r io.Reader, w io.Writer) error {
	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return errors.Wrap(err, "could not decode the source image")
	}

	res, err := s.Resize(src)
	if err != nil {
		return err
	}

	format := imaging.JPEG
	if f, ok := w.(*os.File); ok && filepath.Ext(f.Name()) != "" {
		format, err = imaging.FormatFromFilename(f.Name())
		if err != nil {
			return errors.Wrapf(err, "unsupported output file %s", filepath.Base(f.Name()))
		}
	}
	if err := imaging.Encode(w, res, format, imaging.JPEGQuality(100)); err != nil {
		return errors.Wrap(err, "could not encode the resized image")
	}
	return nil
}

// Resize carves the image to the dimensions derived from the processor options.
func (p *Processor) Resize(img image.Image) (image.Image, error) {
	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	newWidth, newHeight, err := p.targetSize(width, height)
	if err != nil {
		return nil, err
	}

	if p.Scale && newWidth < width && newHeight < height {
		img = p.rescale(img, newWidth, newHeight)
	}

	pix, err := FromImage(img)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	c := &Carver{Strict: p.Strict, Logger: p.logger()}
	res, err := c.Resize(pix, newWidth, newHeight)
	if err != nil {
		return nil, err
	}
	p.logger().Info("image resized",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("newWidth", newWidth),
		zap.Int("newHeight", newHeight),
		zap.Duration("elapsed", time.Since(now)),
	)
	return ToImage(res), nil
}

// targetSize resolves the processor options against the source dimensions.
func (p *Processor) targetSize(width, height int) (int, int, error) {
	newWidth, newHeight := p.NewWidth, p.NewHeight
	if newWidth < 0 || newHeight < 0 {
		return 0, 0, errors.Wrapf(ErrBounds, "negative size %dx%d", newWidth, newHeight)
	}

	if p.Percentage {
		if newWidth >= 100 || newHeight >= 100 {
			return 0, 0, errors.Wrap(ErrBounds, "cannot use the percentage flag for image enlargement")
		}
		newWidth = width - int(float64(width)*float64(newWidth)/100)
		newHeight = height - int(float64(height)*float64(newHeight)/100)
	}
	if newWidth == 0 {
		newWidth = width
	}
	if newHeight == 0 {
		newHeight = height
	}

	if p.Square {
		if p.NewWidth == 0 || p.NewHeight == 0 {
			return 0, 0, errors.New("please provide a new width and height when using the square option")
		}
		newWidth = utils.Min(newWidth, newHeight)
		newHeight = newWidth
	}
	return newWidth, newHeight, nil
}

// rescale shrinks the image proportionally, by the smaller scale factor, so that
// neither dimension drops below the requested one.
// Example: input 5000x2500, target 1920x1080 is first scaled to 2160x1080.
func (p *Processor) rescale(img image.Image, newWidth, newHeight int) image.Image {
	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	factor := math.Max(
		float64(newWidth)/float64(width),
		float64(newHeight)/float64(height),
	)
	sw := utils.Max(newWidth, int(math.Round(float64(width)*factor)))
	sh := utils.Max(newHeight, int(math.Round(float64(height)*factor)))

	p.logger().Debug("rescaling",
		zap.Int("width", sw),
		zap.Int("height", sh),
	)
	return imaging.Resize(img, sw, sh, imaging.Lanczos)
}

func (p *Processor) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}
