// Package inspect reads image dimensions without decoding pixel data.
package inspect

import (
	"fmt"

	"github.com/user/pairshow/pkg/pipeline"
	"github.com/user/pairshow/pkg/ports"
)

// Inspector extracts dimensions from encoded image buffers.
type Inspector struct {
	renderer ports.Renderer
}

// New creates a new Inspector.
func New(renderer ports.Renderer) *Inspector {
	return &Inspector{renderer: renderer}
}

// Inspect returns the dimensions of an encoded image. It fails with
// pipeline.ErrInvalidMetadata when the width or height cannot be
// determined. No side effects.
func (i *Inspector) Inspect(data []byte) (pipeline.Dimension, error) {
	width, height, err := i.renderer.ReadMetadata(data)
	if err != nil {
		return pipeline.Dimension{}, fmt.Errorf("%w: %v", pipeline.ErrInvalidMetadata, err)
	}

	dim := pipeline.Dimension{Width: width, Height: height}
	if !dim.Valid() {
		return pipeline.Dimension{}, fmt.Errorf("%w: got %dx%d", pipeline.ErrInvalidMetadata, width, height)
	}
	return dim, nil
}
