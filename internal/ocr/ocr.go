// Package ocr wraps the OCR collaborator behind a narrow engine contract so
// the extraction pipeline can run against fakes in tests.
package ocr

import (
	"context"
	"image"
)

// Region describes a rectangular area in pixel coordinates with the origin in
// the upper-left corner of the image.
type Region struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Line is a single recognized line of text with its location and the engine's
// confidence in the range [0, 1].
type Line struct {
	Text       string
	Bounds     Region
	Confidence float64
}

// Result captures engine output for one image. Lines appear in the order the
// engine emitted them.
type Result struct {
	Lines []Line
}

// Engine is the OCR collaborator contract: one decoded image in, an ordered
// list of recognized lines out. A fatal engine fault is returned as an error;
// an image with no recognizable text yields an empty Result and a nil error.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, img image.Image) (Result, error)
}
