package transform

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// gaussianKernel builds a normalized 1-D Gaussian kernel with radius 3*sigma,
// the point where the tail contribution drops below rounding noise.
func gaussianKernel(sigma float64) []float64 {
	radius := int(math.Ceil(3 * sigma))
	if radius < 1 {
		radius = 1
	}
	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+radius] = v
		sum += v
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// separableConvolve2D applies a 1-D kernel along both axes of a row-major
// (height, width) buffer. Borders use clamped (replicated) edge samples.
//
// Rows are processed in parallel across GOMAXPROCS workers. This is internal
// to the stage: the function returns only when the full output is ready, so
// no downstream stage can observe a partial result.
func separableConvolve2D(src []float64, height, width int, kernel []float64) []float64 {
	radius := len(kernel) / 2

	horizontal := make([]float64, len(src))
	parallelRows(height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := src[y*width : (y+1)*width]
			out := horizontal[y*width : (y+1)*width]
			for x := 0; x < width; x++ {
				var sum float64
				for k := -radius; k <= radius; k++ {
					sum += row[clamp(x+k, 0, width-1)] * kernel[k+radius]
				}
				out[x] = sum
			}
		}
	})

	vertical := make([]float64, len(src))
	parallelRows(height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < width; x++ {
				var sum float64
				for k := -radius; k <= radius; k++ {
					sum += horizontal[clamp(y+k, 0, height-1)*width+x] * kernel[k+radius]
				}
				vertical[y*width+x] = sum
			}
		}
	})

	return vertical
}

// parallelRows splits [0, height) into contiguous chunks and runs fn on each
// chunk concurrently.
func parallelRows(height int, fn func(y0, y1 int)) {
	workers := runtime.GOMAXPROCS(0)
	if workers > height {
		workers = height
	}
	if workers <= 1 {
		fn(0, height)
		return
	}

	var g errgroup.Group
	chunk := (height + workers - 1) / workers
	for y0 := 0; y0 < height; y0 += chunk {
		y0, y1 := y0, y0+chunk
		if y1 > height {
			y1 = height
		}
		g.Go(func() error {
			fn(y0, y1)
			return nil
		})
	}
	// The workers are pure computations; Wait only synchronizes completion.
	_ = g.Wait()
}

// clamp limits an index to [lo, hi]; convolution borders read the replicated
// edge sample through it.
func clamp(v, lo, hi int) int {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}
