package seamcarve

// Seam lists, for every row from top to bottom, the column of the pixel to carve.
type Seam []int

// FindVerticalSeam returns the connected top to bottom path of minimum total energy.
//
// The cumulative cost table is filled from the bottom row upwards:
//
//	cost(x, y) = energy(x, y) + min(cost(x-1, y+1), cost(x, y+1), cost(x+1, y+1))
//
// On equal costs the straight down step wins over the left one, which wins over
// the right one. The seam starts from the leftmost cheapest cell of the top row.
// The energy grid must have at least one row and one column.
func FindVerticalSeam(energy *Grid[uint32]) Seam {
	width, height := energy.Dimensions()
	cost := make([]uint64, width*height)
	path := make([]int, width*height)

	last := (height - 1) * width
	for x := 0; x < width; x++ {
		cost[last+x] = uint64(energy.At(x, height-1))
	}

	for y := height - 2; y >= 0; y-- {
		row, next := y*width, (y+1)*width
		for x := 0; x < width; x++ {
			best, minCost := x, cost[next+x]
			if x > 0 && cost[next+x-1] < minCost {
				best, minCost = x-1, cost[next+x-1]
			}
			if x < width-1 && cost[next+x+1] < minCost {
				best, minCost = x+1, cost[next+x+1]
			}
			path[row+x] = best
			cost[row+x] = uint64(energy.At(x, y)) + minCost
		}
	}

	seam := make(Seam, height)
	for x := 1; x < width; x++ {
		if cost[x] < cost[seam[0]] {
			seam[0] = x
		}
	}
	for y := 0; y < height-1; y++ {
		seam[y+1] = path[y*width+seam[y]]
	}
	return seam
}

// SeamCost sums the energy of the cells crossed by the seam.
func SeamCost(energy *Grid[uint32], seam Seam) uint64 {
	var total uint64
	for y, x := range seam {
		total += uint64(energy.At(x, y))
	}
	return total
}
