package ffmpegencoder

import (
	"io"
	"sync/atomic"

	"github.com/user/pairshow/pkg/ports"
)

// videoStream implements ports.VideoStream over an io.Pipe fed by the
// encoder process.
type videoStream struct {
	r     *io.PipeReader
	done  chan error
	state atomic.Int32
}

func newVideoStream(r *io.PipeReader) *videoStream {
	s := &videoStream{
		r:    r,
		done: make(chan error, 1),
	}
	s.state.Store(int32(ports.StateNotStarted))
	return s
}

// Read returns video bytes as the encoder produces them. After an abnormal
// encoder exit it returns the encode failure.
func (s *videoStream) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

// Close releases the read side. Closing does not stop the encoder; cancel
// the Start context for that.
func (s *videoStream) Close() error {
	return s.r.Close()
}

// Done delivers the terminal result exactly once, then the channel closes.
func (s *videoStream) Done() <-chan error {
	return s.done
}

// State reports the current lifecycle state.
func (s *videoStream) State() ports.StreamState {
	return ports.StreamState(s.state.Load())
}

// transition moves from one state to the next if the stream is still in
// the expected state. Terminal states win races with the byte-count path.
func (s *videoStream) transition(from, to ports.StreamState) bool {
	return s.state.CompareAndSwap(int32(from), int32(to))
}

func (s *videoStream) fail() {
	s.state.Store(int32(ports.StateFailed))
}

func (s *videoStream) end() {
	s.state.Store(int32(ports.StateEnded))
}

// settle publishes the terminal result on the done channel.
func (s *videoStream) settle(err error) {
	s.done <- err
	close(s.done)
}

var _ ports.VideoStream = (*videoStream)(nil)
