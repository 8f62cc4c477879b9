// Package composite merges an image pair onto a single canvas.
package composite

import (
	"context"
	"fmt"
	"image/color"

	"github.com/user/pairshow/pkg/pipeline"
	"github.com/user/pairshow/pkg/ports"
)

// DefaultJPEGQuality is used when no quality is configured.
const DefaultJPEGQuality = 90

// Stage composes two images into one merged frame.
type Stage struct {
	renderer ports.Renderer
	logger   ports.Logger
	quality  int
}

// NewStage creates a new composite stage. quality <= 0 selects
// DefaultJPEGQuality.
func NewStage(renderer ports.Renderer, logger ports.Logger, quality int) *Stage {
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}
	return &Stage{
		renderer: renderer,
		logger:   logger.WithComponent("composite"),
		quality:  quality,
	}
}

// Plan holds the canvas dimensions and the placement of each source image.
type Plan struct {
	Canvas pipeline.Dimension
	First  pipeline.Placement
	Second pipeline.Placement
}

// PlanCanvas computes the merged canvas size and image placements.
// Horizontal: images side by side, each vertically centered.
// Vertical: images stacked, each horizontally centered.
// Centering offsets truncate toward zero.
func PlanCanvas(a, b pipeline.Dimension, direction pipeline.MergeDirection) Plan {
	if direction == pipeline.Horizontal {
		canvas := pipeline.Dimension{
			Width:  a.Width + b.Width,
			Height: max(a.Height, b.Height),
		}
		return Plan{
			Canvas: canvas,
			First:  pipeline.Placement{X: 0, Y: (canvas.Height - a.Height) / 2},
			Second: pipeline.Placement{X: a.Width, Y: (canvas.Height - b.Height) / 2},
		}
	}

	canvas := pipeline.Dimension{
		Width:  max(a.Width, b.Width),
		Height: a.Height + b.Height,
	}
	return Plan{
		Canvas: canvas,
		First:  pipeline.Placement{X: (canvas.Width - a.Width) / 2, Y: 0},
		Second: pipeline.Placement{X: (canvas.Width - b.Width) / 2, Y: a.Height},
	}
}

// Execute merges the pair into a single JPEG frame on an opaque white canvas.
func (s *Stage) Execute(ctx context.Context, input pipeline.CompositeInput) (pipeline.CompositeResult, error) {
	result := pipeline.CompositeResult{}

	// Dimensions were read by the caller; re-check them inline since the
	// placements below assume they are usable.
	if !input.DimFirst.Valid() || !input.DimSecond.Valid() {
		return result, fmt.Errorf("%w: %dx%d and %dx%d", pipeline.ErrInvalidMetadata,
			input.DimFirst.Width, input.DimFirst.Height,
			input.DimSecond.Width, input.DimSecond.Height)
	}

	plan := PlanCanvas(input.DimFirst, input.DimSecond, input.Direction)
	s.logger.Debug("Merging %s: canvas %dx%d", input.Direction, plan.Canvas.Width, plan.Canvas.Height)

	first, err := s.renderer.DecodeImage(input.Pair.First)
	if err != nil {
		return result, fmt.Errorf("%w: decode first image: %v", pipeline.ErrComposition, err)
	}
	second, err := s.renderer.DecodeImage(input.Pair.Second)
	if err != nil {
		return result, fmt.Errorf("%w: decode second image: %v", pipeline.ErrComposition, err)
	}

	canvas := s.renderer.CreateCanvas(plan.Canvas.Width, plan.Canvas.Height, color.White)
	canvas.DrawImage(first, plan.First.X, plan.First.Y)
	canvas.DrawImage(second, plan.Second.X, plan.Second.Y)

	data, err := s.renderer.EncodeImage(canvas.ToImage(), ports.FormatJPEG, s.quality)
	if err != nil {
		return result, fmt.Errorf("%w: encode merged frame: %v", pipeline.ErrComposition, err)
	}

	result.JPEG = data
	result.Canvas = plan.Canvas
	return result, nil
}
