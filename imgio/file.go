package imgio

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ahojnnes/imagepipe/array"
)

// Load decodes an image file into an array Image. The format is detected
// from the file contents by the imaging library.
func Load(path string) (*array.Image, error) {
	m, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return FromImage(m), nil
}

// LoadGray decodes an image file directly into a 2-D Uint8 luminance array.
func LoadGray(path string) (*array.Image, error) {
	m, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return GrayFromImage(m), nil
}

// Save encodes a 2-D or (H, W, 3) array to a file. The format is chosen from
// the file extension by the imaging library.
func Save(img *array.Image, path string) error {
	var m image.Image
	var err error
	if img.NDim() == 2 {
		m, err = ToGray(img)
	} else {
		m, err = ToRGBA(img)
	}
	if err != nil {
		return err
	}
	if err := imaging.Save(m, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
