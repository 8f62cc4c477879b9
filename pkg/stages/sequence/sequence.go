// Package sequence drives per-pair compositing and writes numbered frames.
package sequence

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"

	"github.com/user/pairshow/pkg/pipeline"
	"github.com/user/pairshow/pkg/ports"
	"github.com/user/pairshow/pkg/stages/inspect"
	"github.com/user/pairshow/pkg/stages/layout"
)

// Stage turns an ordered list of image pairs into frame files 1.jpg..N.jpg.
// Pairs are processed concurrently by a bounded worker pool; the frame
// number is the pair's input position, never its completion order.
type Stage struct {
	inspector  *inspect.Inspector
	composite  pipeline.Stage[pipeline.CompositeInput, pipeline.CompositeResult]
	fs         ports.FileSystem
	logger     ports.Logger
	numWorkers int
}

// NewStage creates a new sequence stage. numWorkers <= 0 selects
// runtime.NumCPU().
func NewStage(
	inspector *inspect.Inspector,
	composite pipeline.Stage[pipeline.CompositeInput, pipeline.CompositeResult],
	fs ports.FileSystem,
	logger ports.Logger,
	numWorkers int,
) *Stage {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Stage{
		inspector:  inspector,
		composite:  composite,
		fs:         fs,
		logger:     logger.WithComponent("sequence"),
		numWorkers: numWorkers,
	}
}

// Execute writes one merged frame per pair. The whole operation fails if
// any pair fails; frames already written keep their final numbering, so a
// failed job never leaves misnumbered files behind.
func (s *Stage) Execute(ctx context.Context, input pipeline.SequenceInput) (pipeline.SequenceResult, error) {
	result := pipeline.SequenceResult{}

	if len(input.Pairs) == 0 {
		return result, pipeline.ErrNoPairs
	}

	if err := s.fs.MkdirAll(input.OutputDir); err != nil {
		return result, fmt.Errorf("%w: create %s: %v", pipeline.ErrFrameWrite, input.OutputDir, err)
	}

	s.logger.Debug("Sequencing %d pairs with %d workers", len(input.Pairs), s.numWorkers)

	jobs := make(chan int, len(input.Pairs))
	errChan := make(chan error, s.numWorkers)

	var wg sync.WaitGroup
	for w := 0; w < s.numWorkers; w++ {
		wg.Add(1)
		go s.worker(ctx, &wg, input, jobs, errChan)
	}

	for i := range input.Pairs {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	close(errChan)

	if err := <-errChan; err != nil {
		return result, err
	}

	result.FrameCount = len(input.Pairs)
	return result, nil
}

// worker processes pair indices until the jobs channel drains or an error
// occurs. Each worker sends at most one error.
func (s *Stage) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	input pipeline.SequenceInput,
	jobs <-chan int,
	errChan chan<- error,
) {
	defer wg.Done()

	for idx := range jobs {
		select {
		case <-ctx.Done():
			errChan <- ctx.Err()
			return
		default:
		}

		if err := s.processPair(ctx, input, idx); err != nil {
			errChan <- fmt.Errorf("frame %d: %w", idx+1, err)
			return
		}
	}
}

// processPair inspects, lays out, composites, and persists one frame.
func (s *Stage) processPair(ctx context.Context, input pipeline.SequenceInput, idx int) error {
	pair := input.Pairs[idx]

	dimFirst, err := s.inspector.Inspect(pair.First)
	if err != nil {
		return fmt.Errorf("first image: %w", err)
	}
	dimSecond, err := s.inspector.Inspect(pair.Second)
	if err != nil {
		return fmt.Errorf("second image: %w", err)
	}

	direction := layout.Select(dimFirst, dimSecond)

	merged, err := s.composite.Execute(ctx, pipeline.CompositeInput{
		Pair:      pair,
		DimFirst:  dimFirst,
		DimSecond: dimSecond,
		Direction: direction,
	})
	if err != nil {
		return err
	}

	path := filepath.Join(input.OutputDir, strconv.Itoa(idx+1)+".jpg")
	if err := s.fs.WriteFile(path, merged.JPEG); err != nil {
		return fmt.Errorf("%w: %s: %v", pipeline.ErrFrameWrite, path, err)
	}

	s.logger.Debug("Wrote frame %d (%s, %dx%d)", idx+1, direction, merged.Canvas.Width, merged.Canvas.Height)
	return nil
}
