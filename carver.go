package seamcarve

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Position is the coordinate a pixel had when the current pass started.
type Position struct {
	X, Y int
}

// Carver resizes pixel grids by removing or inserting low energy seams.
// The zero value is ready to use.
type Carver struct {
	// Strict rejects any enlargement, the carver will only shrink images.
	Strict bool
	// Logger receives the pass by pass progress. Nil disables logging.
	Logger *zap.Logger
}

// Resize carves img to the requested dimensions with a default Carver.
func Resize(img *Grid[Pixel], width, height int) (*Grid[Pixel], error) {
	var c Carver
	return c.Resize(img, width, height)
}

// pass holds the grids a resize works on. The energy map is kept only while
// it matches the pixel grid, i.e. after a shrink pass.
type pass struct {
	pix    *Grid[Pixel]
	energy *Grid[uint32]
}

// Resize returns img carved to width x height.
//
// The width is adjusted first, then the height, on the intermediate result.
// The height is processed with the same vertical seam machinery by
// transposing the grids before and after the pass. When the requested size
// matches the current one img is returned as is, otherwise img is never modified.
func (c *Carver) Resize(img *Grid[Pixel], width, height int) (*Grid[Pixel], error) {
	if width < 1 || height < 1 {
		return nil, errors.Wrapf(ErrBounds, "target size %dx%d", width, height)
	}
	srcWidth, srcHeight := img.Dimensions()
	if srcWidth < 1 || srcHeight < 1 {
		return nil, errors.Wrapf(ErrBounds, "source size %dx%d", srcWidth, srcHeight)
	}
	if width == srcWidth && height == srcHeight {
		return img, nil
	}
	if c.Strict {
		if width > srcWidth {
			return nil, errors.Wrapf(ErrBounds, "target dimension exceeds source dimension: width %d > %d", width, srcWidth)
		}
		if height > srcHeight {
			return nil, errors.Wrapf(ErrBounds, "target dimension exceeds source dimension: height %d > %d", height, srcHeight)
		}
	}

	p := &pass{pix: img.Clone()}
	if err := c.carve(p, "width", width); err != nil {
		return nil, err
	}

	if height != srcHeight {
		p.pix.Transpose()
		if p.energy != nil {
			p.energy.Transpose()
		}
		if err := c.carve(p, "height", height); err != nil {
			return nil, err
		}
		p.pix.Transpose()
	}
	return p.pix, nil
}

// carve brings the width of the pass grids to target.
func (c *Carver) carve(p *pass, axis string, target int) error {
	current := p.pix.Width()
	switch {
	case target < current:
		c.logger().Debug("shrinking",
			zap.String("axis", axis),
			zap.Int("from", current),
			zap.Int("to", target),
		)
		return c.shrink(p, current-target)
	case target > current:
		c.logger().Debug("enlarging",
			zap.String("axis", axis),
			zap.Int("from", current),
			zap.Int("to", target),
		)
		return c.enlarge(p, axis, target-current)
	}
	return nil
}

// shrink removes n seams from the pass grids, keeping the energy map up to date.
func (c *Carver) shrink(p *pass, n int) error {
	if p.energy == nil {
		p.energy = ComputeEnergy(p.pix)
	}
	for i := 0; i < n; i++ {
		seam := FindVerticalSeam(p.energy)
		if ce := c.logger().Check(zap.DebugLevel, "seam removed"); ce != nil {
			ce.Write(zap.Int("seam", i), zap.Uint64("cost", SeamCost(p.energy, seam)))
		}
		if err := removeSeam(seam, p.pix, p.energy); err != nil {
			return err
		}
		if err := UpdateEnergy(p.energy, p.pix, seam); err != nil {
			return err
		}
	}
	return nil
}

// enlarge inserts n seams. The n cheapest seams are found one after the other
// on a working copy from which each of them is removed, while a position map
// records where every carved pixel sits in the uncarved grid. The recorded
// columns are then duplicated in the uncarved grid in a single pass.
func (c *Carver) enlarge(p *pass, axis string, n int) error {
	width, height := p.pix.Dimensions()
	if n > width {
		return errors.Wrapf(ErrCapacity, "%s: %d seams requested, %d available", axis, n, width)
	}

	work := &pass{pix: p.pix.Clone()}
	positions := newPositionMap(width, height)
	work.energy = ComputeEnergy(work.pix)

	cols := make([][]int, height)
	for y := range cols {
		cols[y] = make([]int, 0, n)
	}
	for i := 0; i < n; i++ {
		seam := FindVerticalSeam(work.energy)
		for y, x := range seam {
			cols[y] = append(cols[y], positions.At(x, y).X)
		}
		if i == n-1 {
			// No more seams are needed, the working copy may not even have a column left.
			break
		}
		if err := removeSeam(seam, work.pix, work.energy, positions); err != nil {
			return err
		}
		if err := UpdateEnergy(work.energy, work.pix, seam); err != nil {
			return err
		}
	}

	pix, err := p.pix.InsertSeams(cols, Pixel.Average)
	if err != nil {
		return err
	}
	p.pix = pix
	p.energy = nil

	return nil
}

func (c *Carver) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// newPositionMap returns a grid where every cell holds its own coordinates.
func newPositionMap(width, height int) *Grid[Position] {
	data := make([]Position, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			data = append(data, Position{X: x, Y: y})
		}
	}
	return &Grid[Position]{width: width, data: data}
}

// seamRemover is implemented by every Grid instantiation.
type seamRemover interface {
	RemoveSeam(Seam) error
}

// removeSeam carves the same seam out of grids kept in lockstep.
func removeSeam(seam Seam, grids ...seamRemover) error {
	for _, g := range grids {
		if err := g.RemoveSeam(seam); err != nil {
			return err
		}
	}
	return nil
}
