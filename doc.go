/*
Package seamcarve is a content aware image resize library, which can rescale the source image
both vertically and horizontally by removing or inserting the least important seams of the image.

The importance of a pixel is the squared color gradient between its neighbours, where the
neighbours wrap around the image edges. Seams are found with dynamic programming and carved
one at a time, the energy map being updated only around the removed seam.

The package provides a command line interface as well:

	$ seamcarve /path/to/img new_width new_height
	$ seamcarve -in img.jpg -out small.jpg -width 400

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"github.com/esimov/seamcarve"
	)

	func main() {
		p := &seamcarve.Processor{
			NewWidth:  400,
			NewHeight: 300,
		}

		if err := p.Process(in, out); err != nil {
			fmt.Printf("Error rescaling image: %s", err.Error())
		}
	}

Working directly on pixel grids is also possible:

	grid, err := seamcarve.FromImage(img)
	...
	res, err := seamcarve.Resize(grid, 400, 300)
	...
	out := seamcarve.ToImage(res)
*/
package seamcarve
