package seamcarve

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeam_FindVertical(t *testing.T) {
	img := gridFromRows(t, [][]Pixel{
		{{78, 209, 79}, {63, 118, 247}, {92, 175, 95}, {243, 73, 183}, {210, 109, 104}, {252, 101, 119}},
		{{224, 191, 182}, {108, 89, 82}, {80, 196, 230}, {112, 156, 180}, {176, 178, 120}, {142, 151, 142}},
		{{117, 189, 149}, {171, 231, 153}, {149, 164, 168}, {107, 119, 71}, {120, 105, 138}, {163, 174, 196}},
		{{163, 222, 132}, {187, 117, 183}, {92, 145, 69}, {158, 143, 79}, {220, 75, 222}, {189, 73, 214}},
		{{211, 120, 173}, {188, 218, 244}, {214, 103, 68}, {163, 166, 246}, {79, 125, 246}, {211, 201, 98}},
	})
	seam := FindVerticalSeam(ComputeEnergy(img))
	assert.Equal(t, Seam{3, 4, 3, 2, 2}, seam)
}

func energyGrid(t *testing.T, width int, data ...uint32) *Grid[uint32] {
	t.Helper()
	g, err := NewGrid(width, data)
	require.NoError(t, err)
	return g
}

func TestSeam_TieBreaks(t *testing.T) {
	// Uniform energy: the leftmost column, straight down.
	uniform := energyGrid(t, 3,
		1, 1, 1,
		1, 1, 1,
		1, 1, 1,
	)
	assert.Equal(t, Seam{0, 0, 0}, FindVerticalSeam(uniform))

	// From (1, 0) the left and right cells below cost the same, the left one wins.
	leftOverRight := energyGrid(t, 3,
		9, 0, 9,
		0, 5, 0,
	)
	assert.Equal(t, Seam{1, 0}, FindVerticalSeam(leftOverRight))

	// Straight down wins over an equally cheap diagonal.
	straight := energyGrid(t, 3,
		9, 0, 9,
		0, 0, 0,
	)
	assert.Equal(t, Seam{1, 1}, FindVerticalSeam(straight))

	// Only a strictly cheaper right cell is followed.
	right := energyGrid(t, 3,
		9, 0, 9,
		5, 5, 0,
	)
	assert.Equal(t, Seam{1, 2}, FindVerticalSeam(right))
}

func TestSeam_SingleRowAndColumn(t *testing.T) {
	assert.Equal(t, Seam{2}, FindVerticalSeam(energyGrid(t, 4, 5, 3, 1, 1)))
	assert.Equal(t, Seam{0, 0, 0}, FindVerticalSeam(energyGrid(t, 1, 5, 3, 1)))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// bruteForceCost enumerates every connected path and returns the cheapest cost.
func bruteForceCost(energy *Grid[uint32]) uint64 {
	width, height := energy.Dimensions()
	var walk func(x, y int) uint64
	walk = func(x, y int) uint64 {
		cost := uint64(energy.At(x, y))
		if y == height-1 {
			return cost
		}
		best := uint64(math.MaxUint64)
		for dx := -1; dx <= 1; dx++ {
			if nx := x + dx; nx >= 0 && nx < width {
				best = min(best, walk(nx, y+1))
			}
		}
		return cost + best
	}

	best := uint64(math.MaxUint64)
	for x := 0; x < width; x++ {
		best = min(best, walk(x, 0))
	}
	return best
}

func TestSeam_MatchesBruteForce(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	sizes := [][2]int{{3, 3}, {4, 5}, {5, 4}, {1, 4}, {6, 6}, {2, 7}}

	for _, size := range sizes {
		for i := 0; i < 20; i++ {
			energy := ComputeEnergy(randomGrid(rnd, size[0], size[1]))
			seam := FindVerticalSeam(energy)

			width, height := energy.Dimensions()
			require.Len(t, seam, height)
			for y, x := range seam {
				assert.GreaterOrEqual(t, x, 0)
				assert.Less(t, x, width)
				if y > 0 {
					assert.LessOrEqual(t, abs(x-seam[y-1]), 1, "seam %v is not connected", seam)
				}
			}
			assert.Equal(t, bruteForceCost(energy), SeamCost(energy, seam))
		}
	}
}

func TestSeam_TransposedEnergy(t *testing.T) {
	energy := energyGrid(t, 3,
		5, 0, 5,
		0, 5, 5,
		0, 5, 5,
	)
	energy.Transpose()

	// Logical rows are now {5,0,0}, {0,5,5}, {5,5,5}.
	seam := FindVerticalSeam(energy)
	assert.Equal(t, uint64(5), SeamCost(energy, seam))
	assert.Equal(t, Seam{1, 0, 0}, seam)
}
