package image

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/transform"
)

// DefaultMaxDimension is the longest side kept before extraction.
const DefaultMaxDimension = 512

// PrepareOptions controls pre-processing before palette extraction.
type PrepareOptions struct {
	// Blur applies a Gaussian blur of BlurRadius pixels, merging fine
	// texture into the surrounding colour.
	Blur       bool
	BlurRadius float64

	// MaxDimension downscales images whose longer side exceeds it.
	// Zero disables scaling.
	MaxDimension int
}

// Prepare downscales and optionally blurs img.
func Prepare(img image.Image, opts PrepareOptions) (image.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("image cannot be nil")
	}
	if opts.Blur && opts.BlurRadius < 0 {
		return nil, fmt.Errorf("blur radius must not be negative, got %.1f", opts.BlurRadius)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("image has no pixels")
	}

	if opts.MaxDimension > 0 && max(w, h) > opts.MaxDimension {
		nw, nh := scaledSize(w, h, opts.MaxDimension)
		img = transform.Resize(img, nw, nh, transform.Linear)
	}

	if opts.Blur && opts.BlurRadius > 0 {
		img = blur.Gaussian(img, opts.BlurRadius)
	}
	return img, nil
}

// scaledSize fits w x h inside limit x limit, keeping the aspect ratio.
func scaledSize(w, h, limit int) (int, int) {
	if w >= h {
		return limit, max(1, h*limit/w)
	}
	return max(1, w*limit/h), limit
}
