package imgio

import (
	"fmt"
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ahojnnes/imagepipe/array"
)

// LabelOverlay renders a 2-D label array as a color image for inspection.
//
// Background (label 0) is black; each positive label up to count receives a
// distinct color from a go-colorful happy palette, so neighboring regions are
// visually separable. Labels above count fall back to white.
func LabelOverlay(labels *array.Image, count int) (*image.RGBA, error) {
	if labels.NDim() != 2 {
		return nil, fmt.Errorf("want a 2-d label image, got %d axes", labels.NDim())
	}
	if count < 0 {
		return nil, fmt.Errorf("negative region count %d", count)
	}

	var palette []colorful.Color
	if count > 0 {
		palette = colorful.FastHappyPalette(count)
	}

	shape := labels.Shape()
	height, width := shape[0], shape[1]
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			label := int(labels.At(y*width + x))
			switch {
			case label == 0:
				out.SetRGBA(x, y, color.RGBA{A: 255})
			case label <= count:
				r, g, b := palette[label-1].RGB255()
				out.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
			default:
				out.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
			}
		}
	}
	return out, nil
}
