// Package orchestrator coordinates frame sequencing and streaming encode.
package orchestrator

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/ideamans/go-l10n"

	"github.com/user/pairshow/pkg/pipeline"
	"github.com/user/pairshow/pkg/ports"
)

// JobConfig contains per-job configuration.
type JobConfig struct {
	// OutputDir is the base directory under which the job's frame folder
	// is created.
	OutputDir string

	// JobName is the frame subfolder name. Empty selects a random UUID,
	// which keeps concurrent jobs on disjoint paths.
	JobName string

	// FPS is the input frame rate. Non-positive selects pipeline.DefaultFPS.
	FPS int

	// Cleanup removes the frame directory once the stream has settled.
	Cleanup bool
}

// DefaultJobConfig returns a JobConfig with default values.
func DefaultJobConfig() JobConfig {
	return JobConfig{
		OutputDir: "frames",
		FPS:       pipeline.DefaultFPS,
	}
}

// Orchestrator coordinates the execution of the pipeline stages.
type Orchestrator struct {
	sequenceStage pipeline.Stage[pipeline.SequenceInput, pipeline.SequenceResult]
	encodeStage   pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult]
	fs            ports.FileSystem
	logger        ports.Logger
}

// New creates a new Orchestrator.
func New(
	sequenceStage pipeline.Stage[pipeline.SequenceInput, pipeline.SequenceResult],
	encodeStage pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult],
	fs ports.FileSystem,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		sequenceStage: sequenceStage,
		encodeStage:   encodeStage,
		fs:            fs,
		logger:        logger,
	}
}

// ProcessImagesAndCreateVideo merges every pair into a numbered frame and
// returns the live video stream. It resolves once all frames are durably
// written and encoding has been initiated; the stream's Done channel
// carries the encode outcome. Zero pairs are rejected explicitly.
func (o *Orchestrator) ProcessImagesAndCreateVideo(ctx context.Context, config JobConfig, pairs []pipeline.ImagePair) (ports.VideoStream, error) {
	if len(pairs) == 0 {
		return nil, pipeline.ErrNoPairs
	}

	jobName := config.JobName
	if jobName == "" {
		jobName = uuid.NewString()
	}
	framesDir := filepath.Join(config.OutputDir, jobName)

	// Frame numbering assumes the directory is this job's alone; a leftover
	// or concurrent job folder would interleave its frames into the video.
	occupied, err := o.fs.Exists(framesDir)
	if err != nil {
		return nil, fmt.Errorf("check %s: %w", framesDir, err)
	}
	if occupied {
		return nil, fmt.Errorf("%w: %s", pipeline.ErrJobConflict, framesDir)
	}

	o.logger.Info(l10n.F("Sequencing %d frames into %s", len(pairs), framesDir))
	seq, err := o.sequenceStage.Execute(ctx, pipeline.SequenceInput{
		Pairs:     pairs,
		OutputDir: framesDir,
	})
	if err != nil {
		o.logger.Error(l10n.F("Failed to sequence frames: %s", err))
		return nil, fmt.Errorf("sequence stage: %w", err)
	}
	o.logger.Info(l10n.F("Wrote %d frames", seq.FrameCount))

	fps := config.FPS
	if fps <= 0 {
		fps = pipeline.DefaultFPS
	}

	o.logger.Info(l10n.F("Starting encode at %d fps", fps))
	encoded, err := o.encodeStage.Execute(ctx, pipeline.EncodeInput{
		FramesDir: framesDir,
		FPS:       fps,
	})
	if err != nil {
		o.logger.Error(l10n.F("Failed to start encoder: %s", err))
		return nil, fmt.Errorf("encode stage: %w", err)
	}

	stream := encoded.Stream
	if config.Cleanup {
		stream = o.cleanupOnSettle(stream, framesDir)
	}
	return stream, nil
}

// cleanupOnSettle wraps the stream so the frame directory is removed once
// the encode reaches a terminal state, success or failure alike.
func (o *Orchestrator) cleanupOnSettle(stream ports.VideoStream, framesDir string) ports.VideoStream {
	cs := &cleanupStream{
		VideoStream: stream,
		done:        make(chan error, 1),
	}

	go func() {
		err := <-stream.Done()
		if rmErr := o.fs.RemoveAll(framesDir); rmErr != nil {
			o.logger.Warn(l10n.F("Failed to clean up %s: %s", framesDir, rmErr))
		} else {
			o.logger.Debug("Removed frame directory %s", framesDir)
		}
		cs.done <- err
		close(cs.done)
	}()

	return cs
}

// cleanupStream forwards the underlying stream but defers the Done signal
// until cleanup has run.
type cleanupStream struct {
	ports.VideoStream
	done chan error
}

// Done delivers the underlying terminal result after cleanup.
func (cs *cleanupStream) Done() <-chan error {
	return cs.done
}
