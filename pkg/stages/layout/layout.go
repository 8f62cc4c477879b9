// Package layout decides how an image pair is arranged on the merged canvas.
package layout

import (
	"math"

	"github.com/user/pairshow/pkg/pipeline"
)

// TargetRatio is the aspect ratio the merged frame should approach.
// Deliberately 9/16 (≈0.5625), not 16/9. Do not invert without a product
// decision; downstream framing depends on the portrait-oriented value.
const TargetRatio = 9.0 / 16.0

// Select returns the merge direction whose combined aspect ratio lies
// strictly closer to TargetRatio. Ties resolve to Vertical.
// Pure function; callers guarantee valid (positive) dimensions.
func Select(a, b pipeline.Dimension) pipeline.MergeDirection {
	horizontal := float64(a.Width+b.Width) / float64(max(a.Height, b.Height))
	vertical := float64(max(a.Width, b.Width)) / float64(a.Height+b.Height)

	if math.Abs(horizontal-TargetRatio) < math.Abs(vertical-TargetRatio) {
		return pipeline.Horizontal
	}
	return pipeline.Vertical
}
