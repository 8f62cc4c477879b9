// Package encode starts the streaming video encode of a frame sequence.
package encode

import (
	"context"
	"fmt"

	"github.com/user/pairshow/pkg/pipeline"
	"github.com/user/pairshow/pkg/ports"
)

// Stage launches the external encoder against a numbered frame directory
// and hands back the live stream. It returns as soon as encoding has been
// initiated; completion or failure arrives on the stream itself.
type Stage struct {
	encoder ports.StreamEncoder
	logger  ports.Logger
}

// NewStage creates a new encode stage.
func NewStage(encoder ports.StreamEncoder, logger ports.Logger) *Stage {
	return &Stage{
		encoder: encoder,
		logger:  logger.WithComponent("encode"),
	}
}

// Execute starts the encoder. Errors only cover initiation; runtime
// failures are delivered through the returned stream.
func (s *Stage) Execute(ctx context.Context, input pipeline.EncodeInput) (pipeline.EncodeResult, error) {
	result := pipeline.EncodeResult{}

	fps := input.FPS
	if fps <= 0 {
		fps = pipeline.DefaultFPS
	}

	s.logger.Debug("Starting encoder on %s at %d fps", input.FramesDir, fps)

	stream, err := s.encoder.Start(ctx, input.FramesDir, fps)
	if err != nil {
		return result, fmt.Errorf("start encoder: %w", err)
	}

	result.Stream = stream
	return result, nil
}
