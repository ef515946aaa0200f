package seamcarve

import "github.com/pkg/errors"

// ComputeEnergy returns the energy map of the pixel grid.
//
// The energy of a pixel is the squared color distance between its upper and
// lower neighbours plus the squared color distance between its left and right
// neighbours. Neighbours wrap around the edges of the grid, so the first row
// sees the last one above it and the first column sees the last one on its left.
//
// The energy grid shares the orientation of the pixel grid, which allows both
// of them to be transposed and carved together.
func ComputeEnergy(pix *Grid[Pixel]) *Grid[uint32] {
	energy := &Grid[uint32]{
		width:       pix.width,
		data:        make([]uint32, len(pix.data)),
		orientation: pix.orientation,
	}
	width, height := pix.Dimensions()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			energy.Set(x, y, pixelEnergy(pix, x, y))
		}
	}
	return energy
}

// UpdateEnergy refreshes the energy map after the same seam has been removed
// from both the pixel grid and the energy grid. Only the cells whose
// neighbourhood could have changed are recomputed.
func UpdateEnergy(energy *Grid[uint32], pix *Grid[Pixel], seam Seam) error {
	width, height := pix.Dimensions()
	if ew, eh := energy.Dimensions(); ew != width || eh != height {
		return errors.Wrapf(ErrSeamLength, "energy grid %dx%d, pixel grid %dx%d", ew, eh, width, height)
	}
	if len(seam) != height {
		return errors.Wrapf(ErrSeamLength, "got %d, grid height %d", len(seam), height)
	}
	if height == 0 {
		return nil
	}

	// The removed column separated seam[y]-1 and seam[y]; both lost a horizontal neighbour.
	// Connected seams move by at most one column per row, so any vertical change
	// between two inner rows falls on one of these two columns as well.
	for y, sx := range seam {
		left := wrap(sx-1, width)
		right := wrap(sx, width)
		energy.Set(left, y, pixelEnergy(pix, left, y))
		energy.Set(right, y, pixelEnergy(pix, right, y))
	}

	// The first and last rows are vertical neighbours through the wrap around,
	// yet their seam columns can be far apart.
	lo, hi := seam[0], seam[0]
	for _, sx := range seam {
		lo = min(lo, sx)
		hi = max(hi, sx)
	}
	lo = max(lo-1, 0)
	hi = min(hi, width-1)
	for _, y := range []int{0, height - 1} {
		for x := lo; x <= hi; x++ {
			energy.Set(x, y, pixelEnergy(pix, x, y))
		}
	}
	return nil
}

func pixelEnergy(pix *Grid[Pixel], x, y int) uint32 {
	width, height := pix.Dimensions()
	above := wrap(y-1, height)
	below := wrap(y+1, height)
	left := wrap(x-1, width)
	right := wrap(x+1, width)

	return squaredDiff(pix.At(x, above), pix.At(x, below)) +
		squaredDiff(pix.At(left, y), pix.At(right, y))
}

func squaredDiff(p, q Pixel) uint32 {
	dr := int32(p.R) - int32(q.R)
	dg := int32(p.G) - int32(q.G)
	db := int32(p.B) - int32(q.B)
	return uint32(dr*dr + dg*dg + db*db)
}

// wrap maps i into [0, n) the toroidal way, i must not be below -n.
func wrap(i, n int) int {
	return (i + n) % n
}
