package ports

import (
	"context"
	"io"
)

// StreamState represents the lifecycle state of a video stream.
// Transitions are one-way: NotStarted → Started → Streaming → Ended or
// Failed. A failed stream is never reused.
type StreamState int32

const (
	StateNotStarted StreamState = iota
	// StateStarted means the encoder process has been spawned but no
	// video bytes have been produced yet.
	StateStarted
	// StateStreaming means at least one byte of video data has been emitted.
	StateStreaming
	StateEnded
	StateFailed
)

// String returns the string representation of the stream state.
func (s StreamState) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateStarted:
		return "started"
	case StateStreaming:
		return "streaming"
	case StateEnded:
		return "ended"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// VideoStream is a live byte stream of container-formatted video.
// Bytes become readable while the encoder is still running; the terminal
// outcome arrives asynchronously on Done.
type VideoStream interface {
	io.ReadCloser

	// Done delivers exactly one value when the stream settles: nil for a
	// clean end-of-stream, or the encode failure otherwise. The channel is
	// closed after the value is sent.
	Done() <-chan error

	// State reports the current lifecycle state.
	State() StreamState
}

// StreamEncoder abstracts the external video encoder. It consumes a
// directory of frames named 1.jpg..N.jpg and produces a streamable video.
type StreamEncoder interface {
	// Start launches the encoder against the frame sequence and returns
	// the live output stream without waiting for encoding to complete.
	Start(ctx context.Context, framesDir string, fps int) (VideoStream, error)
}
