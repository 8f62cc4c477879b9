package pipeline

import (
	"github.com/user/pairshow/pkg/ports"
)

// =============================================================================
// Common Types
// =============================================================================

// Dimension represents the width and height of an image.
type Dimension struct {
	Width  int
	Height int
}

// AspectRatio returns width divided by height.
func (d Dimension) AspectRatio() float64 {
	return float64(d.Width) / float64(d.Height)
}

// Valid reports whether both width and height are positive.
func (d Dimension) Valid() bool {
	return d.Width > 0 && d.Height > 0
}

// MergeDirection is the compositing arrangement chosen for an image pair.
type MergeDirection int

const (
	// Horizontal places the two images side by side.
	Horizontal MergeDirection = iota
	// Vertical stacks the two images.
	Vertical
)

// String returns the string representation of the merge direction.
func (d MergeDirection) String() string {
	switch d {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// ImagePair holds the two encoded image buffers that become one frame.
// Buffers are immutable once handed to the pipeline.
type ImagePair struct {
	First  []byte
	Second []byte
}

// Placement is the top-left position of a source image on a canvas.
type Placement struct {
	X int
	Y int
}

// =============================================================================
// Composite Stage Types
// =============================================================================

// CompositeInput contains one pair, its pre-read dimensions, and the
// chosen merge direction. Dimensions are read once and shared between
// layout selection and compositing to avoid a redundant metadata decode.
type CompositeInput struct {
	Pair      ImagePair
	DimFirst  Dimension
	DimSecond Dimension
	Direction MergeDirection
}

// CompositeResult contains the merged frame as an encoded JPEG buffer.
type CompositeResult struct {
	JPEG   []byte
	Canvas Dimension
}

// =============================================================================
// Sequence Stage Types
// =============================================================================

// SequenceInput contains the ordered pairs and the frame output directory.
type SequenceInput struct {
	Pairs     []ImagePair
	OutputDir string
}

// SequenceResult reports the number of frames written.
type SequenceResult struct {
	FrameCount int
}

// =============================================================================
// Encode Stage Types
// =============================================================================

// DefaultFPS is the input frame rate used when none is configured.
const DefaultFPS = 24

// EncodeInput contains parameters for starting the streaming encode.
type EncodeInput struct {
	FramesDir string
	FPS       int
}

// EncodeResult contains the live video stream. Encoding continues in the
// background after the stage returns.
type EncodeResult struct {
	Stream ports.VideoStream
}
