package seamcarve

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridFromRows(t *testing.T, rows [][]Pixel) *Grid[Pixel] {
	t.Helper()
	var data []Pixel
	for _, row := range rows {
		data = append(data, row...)
	}
	g, err := NewGrid(len(rows[0]), data)
	require.NoError(t, err)
	return g
}

func randomGrid(rnd *rand.Rand, width, height int) *Grid[Pixel] {
	data := make([]Pixel, width*height)
	for i := range data {
		// A small palette produces plenty of equal energies and cost ties.
		data[i] = Pixel{
			R: uint8(rnd.Intn(4) * 60),
			G: uint8(rnd.Intn(4) * 60),
			B: uint8(rnd.Intn(4) * 60),
		}
	}
	g, _ := NewGrid(width, data)
	return g
}

// randomSeam returns a connected seam, as produced by the seam finder.
func randomSeam(rnd *rand.Rand, width, height int) Seam {
	seam := make(Seam, height)
	seam[0] = rnd.Intn(width)
	for y := 1; y < height; y++ {
		x := seam[y-1] + rnd.Intn(3) - 1
		seam[y] = min(max(x, 0), width-1)
	}
	return seam
}

func assertSameEnergy(t *testing.T, want, got *Grid[uint32]) {
	t.Helper()
	ww, wh := want.Dimensions()
	gw, gh := got.Dimensions()
	require.Equal(t, ww, gw)
	require.Equal(t, wh, gh)
	for y := 0; y < wh; y++ {
		for x := 0; x < ww; x++ {
			if want.At(x, y) != got.At(x, y) {
				t.Fatalf("energy mismatch at (%d, %d): want %d, got %d", x, y, want.At(x, y), got.At(x, y))
			}
		}
	}
}

func TestEnergy_Compute(t *testing.T) {
	img := gridFromRows(t, [][]Pixel{
		{{255, 101, 51}, {255, 101, 153}, {255, 101, 255}},
		{{255, 153, 51}, {255, 153, 153}, {255, 153, 255}},
		{{255, 203, 51}, {255, 204, 153}, {255, 205, 255}},
		{{255, 255, 51}, {255, 255, 153}, {255, 255, 255}},
	})
	energy := ComputeEnergy(img)

	// Listed column by column.
	want := [][]uint32{
		{20808, 20808, 20809, 20808},
		{52020, 52225, 52024, 52225},
		{20808, 21220, 20809, 21220},
	}
	for x, col := range want {
		for y, v := range col {
			assert.Equal(t, v, energy.At(x, y), "(%d, %d)", x, y)
		}
	}
}

func TestEnergy_WrapsAroundEdges(t *testing.T) {
	img := gridFromRows(t, [][]Pixel{
		{{10, 0, 0}, {0, 0, 0}, {0, 0, 0}},
		{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}},
	})
	energy := ComputeEnergy(img)

	// The top left pixel is the left neighbour of (1, 0) and the right neighbour of (2, 0).
	assert.Equal(t, uint32(100), energy.At(1, 0))
	assert.Equal(t, uint32(100), energy.At(2, 0))
	// With two rows, the pixel below (0, 1) is also the one above it.
	assert.Equal(t, uint32(0), energy.At(0, 1))
	assert.Equal(t, uint32(0), energy.At(0, 0))
}

func TestEnergy_SingleColumn(t *testing.T) {
	img := gridFromRows(t, [][]Pixel{{{1, 2, 3}}, {{4, 5, 6}}, {{7, 8, 9}}})
	energy := ComputeEnergy(img)

	// Only the vertical neighbours contribute: (7-4)^2*3, (7-1)^2*3, (4-1)^2*3.
	assert.Equal(t, uint32(27), energy.At(0, 0))
	assert.Equal(t, uint32(108), energy.At(0, 1))
	assert.Equal(t, uint32(27), energy.At(0, 2))
}

func TestEnergy_TransposedOrientation(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	img := randomGrid(rnd, 5, 4)
	energy := ComputeEnergy(img)

	img.Transpose()
	transposed := ComputeEnergy(img)
	assert.Equal(t, Horizontal, transposed.Orientation())

	energy.Transpose()
	assertSameEnergy(t, energy, transposed)
}

func TestEnergy_UpdateMatchesCompute(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		width, height := 2+rnd.Intn(8), 2+rnd.Intn(7)
		img := randomGrid(rnd, width, height)
		if i%2 == 1 {
			img.Transpose()
			width, height = height, width
		}
		energy := ComputeEnergy(img)

		for w := width; w > 1; w-- {
			var seam Seam
			if rnd.Intn(2) == 0 {
				seam = FindVerticalSeam(energy)
			} else {
				seam = randomSeam(rnd, w, height)
			}
			require.NoError(t, img.RemoveSeam(seam))
			require.NoError(t, energy.RemoveSeam(seam))
			require.NoError(t, UpdateEnergy(energy, img, seam))

			assertSameEnergy(t, ComputeEnergy(img), energy)
		}
	}
}

func TestEnergy_UpdateErrors(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	img := randomGrid(rnd, 4, 3)
	energy := ComputeEnergy(img)

	assert.ErrorIs(t, UpdateEnergy(energy, img, Seam{0, 0}), ErrSeamLength)

	require.NoError(t, img.RemoveSeam(Seam{1, 1, 1}))
	assert.ErrorIs(t, UpdateEnergy(energy, img, Seam{1, 1, 1}), ErrSeamLength)
}
