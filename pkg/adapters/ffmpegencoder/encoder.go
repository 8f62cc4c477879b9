// Package ffmpegencoder streams a numbered JPEG sequence through ffmpeg
// as a fragmented MP4 suitable for consumption before encoding completes.
package ffmpegencoder

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/user/pairshow/pkg/pipeline"
	"github.com/user/pairshow/pkg/ports"
)

// Encoder implements ports.StreamEncoder by spawning ffmpeg. The binary
// path is explicit per-encoder configuration, set once at construction and
// never mutated.
type Encoder struct {
	binaryPath string
	logger     ports.Logger
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithBinary sets an explicit ffmpeg binary path. When unset, the binary
// is resolved from PATH and common install locations at Start.
func WithBinary(path string) Option {
	return func(e *Encoder) {
		e.binaryPath = path
	}
}

// New creates a new Encoder.
func New(logger ports.Logger, opts ...Option) *Encoder {
	e := &Encoder{
		logger: logger.WithComponent("ffmpeg"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start spawns ffmpeg against the frame sequence and returns the live
// fragmented-MP4 stream. It does not wait for encoding to finish: the
// process outcome is delivered on the stream's Done channel, and an
// abnormal exit also fails the read side. One encode per call; a failed
// stream is never reused.
func (e *Encoder) Start(ctx context.Context, framesDir string, fps int) (ports.VideoStream, error) {
	bin := e.binaryPath
	if bin == "" {
		found, err := FindFFmpeg()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", pipeline.ErrEncodeInitiation, err)
		}
		bin = found
	}

	args := BuildArgs(framesDir, fps)
	cmd := exec.CommandContext(ctx, bin, args...)

	pr, pw := io.Pipe()
	stream := newVideoStream(pr)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.Stdout = &streamingWriter{w: pw, stream: stream}

	if err := cmd.Start(); err != nil {
		pw.Close()
		return nil, fmt.Errorf("%w: %s: %v", pipeline.ErrEncodeInitiation, bin, err)
	}
	stream.transition(ports.StateNotStarted, ports.StateStarted)

	e.logger.Debug("Spawned %s for %s at %d fps", bin, framesDir, fps)

	go func() {
		err := cmd.Wait()
		if err != nil {
			diag := strings.TrimSpace(stderr.String())
			failure := fmt.Errorf("%w: %v (stderr: %s)", pipeline.ErrEncodeRuntime, err, diag)
			e.logger.Error("Encoder failed: %s", failure)
			stream.fail()
			pw.CloseWithError(failure)
			stream.settle(failure)
			return
		}
		stream.end()
		pw.Close()
		stream.settle(nil)
	}()

	return stream, nil
}

// BuildArgs constructs the ffmpeg argument list: consume <dir>/%d.jpg
// starting at 1 at the given input frame rate, emit H.264 in a fragmented
// MP4 (keyframe fragmentation, empty initial index) on stdout.
func BuildArgs(framesDir string, fps int) []string {
	pattern := filepath.Join(framesDir, "%d.jpg")
	return []string{
		"-hide_banner",
		"-loglevel", "error",
		"-f", "image2",
		"-framerate", strconv.Itoa(fps),
		"-start_number", "1",
		"-i", pattern,
		"-c:v", "libx264",
		"-preset", "fast",
		"-pix_fmt", "yuv420p",
		"-movflags", "frag_keyframe+empty_moov",
		"-f", "mp4",
		"pipe:1",
	}
}

// streamingWriter forwards encoder output to the pipe and flips the stream
// to the streaming state on the first byte.
type streamingWriter struct {
	w      *io.PipeWriter
	stream *videoStream
}

func (sw *streamingWriter) Write(p []byte) (int, error) {
	if len(p) > 0 {
		sw.stream.transition(ports.StateStarted, ports.StateStreaming)
	}
	return sw.w.Write(p)
}

var _ ports.StreamEncoder = (*Encoder)(nil)
