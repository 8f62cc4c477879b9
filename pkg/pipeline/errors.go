package pipeline

import "errors"

var (
	// ErrInvalidMetadata is returned when an image's width or height
	// cannot be determined (corrupt or unsupported format).
	ErrInvalidMetadata = errors.New("pipeline: image dimensions unreadable")

	// ErrComposition is returned when the compositor capability fails for
	// reasons other than unreadable metadata.
	ErrComposition = errors.New("pipeline: frame composition failed")

	// ErrFrameWrite is returned when a merged frame cannot be persisted.
	ErrFrameWrite = errors.New("pipeline: frame write failed")

	// ErrEncodeInitiation is returned when the encoder process cannot be spawned.
	ErrEncodeInitiation = errors.New("pipeline: encoder could not be started")

	// ErrEncodeRuntime is delivered through the stream when the encoder
	// exits abnormally after streaming has begun.
	ErrEncodeRuntime = errors.New("pipeline: encoder exited abnormally")

	// ErrNoPairs is returned when a job is started with zero image pairs.
	ErrNoPairs = errors.New("pipeline: no image pairs to process")

	// ErrJobConflict is returned when the job's frame directory already
	// exists. Each job owns its frame directory exclusively.
	ErrJobConflict = errors.New("pipeline: job frame directory already in use")
)
