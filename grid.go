package seamcarve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Orientation tells how the logical coordinates are laid out in the backing buffer.
type Orientation int

const (
	// Vertical stores the rows contiguously: (x, y) lives at x + y*width.
	Vertical Orientation = iota
	// Horizontal stores the columns contiguously: (x, y) lives at y + x*height.
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Grid is a two dimensional view over a flat buffer.
// Transposing a grid only flips its orientation, the buffer is never moved,
// so every accessor works on logical (column, row) coordinates.
type Grid[T any] struct {
	width       int
	data        []T
	orientation Orientation
}

// NewGrid wraps data into a grid with the given width and vertical orientation.
func NewGrid[T any](width int, data []T) (*Grid[T], error) {
	if width < 1 || len(data)%width != 0 {
		return nil, errors.Wrapf(ErrConstruction, "width %d, buffer length %d", width, len(data))
	}
	return &Grid[T]{
		width: width,
		data:  data,
	}, nil
}

// Width returns the number of columns.
func (g *Grid[T]) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid[T]) Height() int { return len(g.data) / g.width }

// Size returns the total number of cells.
func (g *Grid[T]) Size() int { return len(g.data) }

// Dimensions returns the width and height of the grid.
func (g *Grid[T]) Dimensions() (int, int) { return g.width, g.Height() }

// Orientation returns the current buffer layout.
func (g *Grid[T]) Orientation() Orientation { return g.orientation }

func (g *Grid[T]) offset(x, y int) int {
	if g.orientation == Horizontal {
		return y + x*g.Height()
	}
	return x + y*g.width
}

// At returns the cell at column x and row y. The coordinates must be inside the grid.
func (g *Grid[T]) At(x, y int) T {
	return g.data[g.offset(x, y)]
}

// Set replaces the cell at column x and row y.
func (g *Grid[T]) Set(x, y int, v T) {
	g.data[g.offset(x, y)] = v
}

// Transpose swaps the roles of rows and columns in constant time.
func (g *Grid[T]) Transpose() {
	if g.orientation == Vertical {
		g.orientation = Horizontal
	} else {
		g.orientation = Vertical
	}
	g.width = g.Height()
}

// Clone returns a deep copy of the grid.
func (g *Grid[T]) Clone() *Grid[T] {
	data := make([]T, len(g.data))
	copy(data, g.data)

	return &Grid[T]{
		width:       g.width,
		data:        data,
		orientation: g.orientation,
	}
}

func (g *Grid[T]) checkSeam(seam Seam) error {
	width, height := g.Dimensions()
	if len(seam) != height {
		return errors.Wrapf(ErrSeamLength, "got %d, grid height %d", len(seam), height)
	}
	for y, x := range seam {
		if x < 0 || x >= width {
			return errors.Wrapf(ErrSeamRange, "row %d: column %d, grid width %d", y, x, width)
		}
	}
	return nil
}

// RemoveSeam drops one cell per row, at the column given by the seam,
// shifting the remaining cells of the row to the left.
// The grid is left untouched on error.
func (g *Grid[T]) RemoveSeam(seam Seam) error {
	if err := g.checkSeam(seam); err != nil {
		return err
	}
	width, height := g.Dimensions()
	if width < 2 {
		return errors.Wrap(ErrBounds, "cannot remove a seam from a single column grid")
	}

	// Copying into a fresh buffer is considerably faster than shifting in place.
	data := make([]T, len(g.data)-height)
	for y := 0; y < height; y++ {
		skip := seam[y]
		for x := 0; x < width; x++ {
			nx := x
			switch {
			case x == skip:
				continue
			case x > skip:
				nx = x - 1
			}
			if g.orientation == Horizontal {
				data[y+nx*height] = g.At(x, y)
			} else {
				data[nx+y*(width-1)] = g.At(x, y)
			}
		}
	}
	g.data = data
	g.width--

	return nil
}

// InsertSeams returns a new grid where each column listed for a row is followed
// by an extra cell, computed by blend from the listed cell and its right neighbour.
// On the last column the cell is blended with itself. Every row must list the
// same number of distinct columns; they may be given in any order.
func (g *Grid[T]) InsertSeams(cols [][]int, blend func(left, right T) T) (*Grid[T], error) {
	width, height := g.Dimensions()
	if len(cols) != height {
		return nil, errors.Wrapf(ErrSeamLength, "got %d rows, grid height %d", len(cols), height)
	}
	if height == 0 {
		return g.Clone(), nil
	}
	k := len(cols[0])
	newWidth := width + k
	data := make([]T, newWidth*height)
	marks := make([]bool, width)

	for y, row := range cols {
		if len(row) != k {
			return nil, errors.Wrapf(ErrSeamLength, "row %d lists %d columns, expected %d", y, len(row), k)
		}
		sorted := append([]int(nil), row...)
		sort.Ints(sorted)
		for i, x := range sorted {
			if x < 0 || x >= width {
				return nil, errors.Wrapf(ErrSeamRange, "row %d: column %d, grid width %d", y, x, width)
			}
			if i > 0 && sorted[i-1] == x {
				return nil, errors.Wrapf(ErrSeamRange, "row %d: column %d listed twice", y, x)
			}
		}
		for i := range marks {
			marks[i] = false
		}
		for _, x := range sorted {
			marks[x] = true
		}

		nx := y * newWidth
		for x := 0; x < width; x++ {
			cur := g.At(x, y)
			data[nx] = cur
			nx++
			if marks[x] {
				right := cur
				if x+1 < width {
					right = g.At(x+1, y)
				}
				data[nx] = blend(cur, right)
				nx++
			}
		}
	}
	return &Grid[T]{
		width: newWidth,
		data:  data,
	}, nil
}

// String renders the grid row by row, mostly useful in test failures.
func (g *Grid[T]) String() string {
	var sb strings.Builder
	width, height := g.Dimensions()
	fmt.Fprintf(&sb, "%s grid %dx%d {\n", g.orientation, width, height)
	for y := 0; y < height; y++ {
		row := make([]T, width)
		for x := range row {
			row[x] = g.At(x, y)
		}
		fmt.Fprintf(&sb, "%v\n", row)
	}
	sb.WriteString("}")
	return sb.String()
}
