package mocks

import (
	"bytes"
	"context"
	"io"

	"github.com/user/pairshow/pkg/ports"
)

// StreamEncoder is a mock implementation of ports.StreamEncoder.
type StreamEncoder struct {
	StartFunc func(ctx context.Context, framesDir string, fps int) (ports.VideoStream, error)

	// Recorded calls for verification
	StartCalls []StartCall
}

// StartCall records a call to Start.
type StartCall struct {
	FramesDir string
	FPS       int
}

func (m *StreamEncoder) Start(ctx context.Context, framesDir string, fps int) (ports.VideoStream, error) {
	m.StartCalls = append(m.StartCalls, StartCall{FramesDir: framesDir, FPS: fps})
	if m.StartFunc != nil {
		return m.StartFunc(ctx, framesDir, fps)
	}
	return NewVideoStream([]byte("ftyp"), nil), nil
}

var _ ports.StreamEncoder = (*StreamEncoder)(nil)

// VideoStream is a scripted implementation of ports.VideoStream: it serves
// fixed data and settles with the given terminal error (nil for success).
type VideoStream struct {
	reader *bytes.Reader
	err    error
	done   chan error
	state  ports.StreamState
	closed bool
}

// NewVideoStream creates a scripted stream. The done channel is
// pre-settled so consumers never block.
func NewVideoStream(data []byte, err error) *VideoStream {
	state := ports.StateEnded
	if err != nil {
		state = ports.StateFailed
	}
	done := make(chan error, 1)
	done <- err
	close(done)
	return &VideoStream{
		reader: bytes.NewReader(data),
		err:    err,
		done:   done,
		state:  state,
	}
}

func (m *VideoStream) Read(p []byte) (int, error) {
	n, err := m.reader.Read(p)
	if err == io.EOF && m.err != nil {
		return n, m.err
	}
	return n, err
}

func (m *VideoStream) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called (for test verification).
func (m *VideoStream) Closed() bool {
	return m.closed
}

func (m *VideoStream) Done() <-chan error {
	return m.done
}

func (m *VideoStream) State() ports.StreamState {
	return m.state
}

var _ ports.VideoStream = (*VideoStream)(nil)
