package ffmpegencoder

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/user/pairshow/pkg/adapters/logger"
	"github.com/user/pairshow/pkg/adapters/mp4probe"
	"github.com/user/pairshow/pkg/pipeline"
	"github.com/user/pairshow/pkg/ports"
)

func TestBuildArgs(t *testing.T) {
	args := BuildArgs("out/job", 24)

	joined := strings.Join(args, " ")
	for _, want := range []string{
		"-framerate 24",
		"-start_number 1",
		"-i " + filepath.Join("out/job", "%d.jpg"),
		"-c:v libx264",
		"-pix_fmt yuv420p",
		"-movflags frag_keyframe+empty_moov",
		"-f mp4",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q: %s", want, joined)
		}
	}
	if args[len(args)-1] != "pipe:1" {
		t.Errorf("last arg = %q, want pipe:1", args[len(args)-1])
	}
}

func TestStart_MissingBinary(t *testing.T) {
	enc := New(&logger.NoopLogger{}, WithBinary("/nonexistent/ffmpeg"))

	_, err := enc.Start(context.Background(), t.TempDir(), 24)
	if !errors.Is(err, pipeline.ErrEncodeInitiation) {
		t.Errorf("Start error = %v, want ErrEncodeInitiation", err)
	}
}

// fakeEncoder writes a shell script that stands in for ffmpeg.
func fakeEncoder(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script binaries are not runnable on windows")
	}
	path := filepath.Join(t.TempDir(), "ffmpeg")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestStart_StreamsOutput(t *testing.T) {
	bin := fakeEncoder(t, "printf 'videobytes'\n")
	enc := New(&logger.NoopLogger{}, WithBinary(bin))

	stream, err := enc.Start(context.Background(), t.TempDir(), 24)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	data, err := io.ReadAll(stream)
	if err != nil {
		t.Fatalf("reading stream failed: %v", err)
	}
	if string(data) != "videobytes" {
		t.Errorf("stream data = %q, want %q", data, "videobytes")
	}

	select {
	case err := <-stream.Done():
		if err != nil {
			t.Errorf("Done delivered %v, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Done never settled")
	}
	if got := stream.State(); got != ports.StateEnded {
		t.Errorf("State = %v, want StateEnded", got)
	}
}

func TestStart_EncoderFailure(t *testing.T) {
	bin := fakeEncoder(t, "echo 'boom: no such file' >&2\nexit 3\n")
	enc := New(&logger.NoopLogger{}, WithBinary(bin))

	stream, err := enc.Start(context.Background(), t.TempDir(), 24)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	_, readErr := io.ReadAll(stream)
	if !errors.Is(readErr, pipeline.ErrEncodeRuntime) {
		t.Errorf("read error = %v, want ErrEncodeRuntime", readErr)
	}

	select {
	case doneErr := <-stream.Done():
		if !errors.Is(doneErr, pipeline.ErrEncodeRuntime) {
			t.Errorf("Done delivered %v, want ErrEncodeRuntime", doneErr)
		}
		if !strings.Contains(doneErr.Error(), "boom") {
			t.Errorf("Done error lacks stderr diagnostics: %v", doneErr)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Done never settled")
	}
	if got := stream.State(); got != ports.StateFailed {
		t.Errorf("State = %v, want StateFailed", got)
	}
}

// Consumers that stop draining mid-stream (a failed output write, say)
// must be able to close the stream and still see Done settle instead of
// waiting on an encoder that is blocked writing into the pipe.
func TestClose_SettlesDoneMidStream(t *testing.T) {
	// Far more output than the pipe buffers hold, so the encoder is
	// guaranteed to be blocked mid-write when the consumer walks away.
	bin := fakeEncoder(t, "head -c 1048576 /dev/zero\n")
	enc := New(&logger.NoopLogger{}, WithBinary(bin))

	stream, err := enc.Start(context.Background(), t.TempDir(), 24)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	buf := make([]byte, 16)
	if _, err := io.ReadFull(stream, buf); err != nil {
		t.Fatalf("initial read failed: %v", err)
	}

	if err := stream.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	select {
	case err := <-stream.Done():
		if err == nil {
			t.Error("Done delivered nil, want a failure for an aborted encode")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Done never settled after Close")
	}
}

func TestStart_DoneSettlesOnce(t *testing.T) {
	bin := fakeEncoder(t, "printf 'x'\n")
	enc := New(&logger.NoopLogger{}, WithBinary(bin))

	stream, err := enc.Start(context.Background(), t.TempDir(), 24)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := io.ReadAll(stream); err != nil {
		t.Fatalf("reading stream failed: %v", err)
	}

	if err := <-stream.Done(); err != nil {
		t.Errorf("first receive = %v, want nil", err)
	}
	// Closed channel: further receives return immediately with nil.
	if err, ok := <-stream.Done(); ok || err != nil {
		t.Errorf("second receive = (%v, %v), want closed channel", err, ok)
	}
}

func writeTestFrames(t *testing.T, dir string, count int) {
	t.Helper()
	for i := 1; i <= count; i++ {
		img := image.NewRGBA(image.Rect(0, 0, 64, 64))
		for y := 0; y < 64; y++ {
			for x := 0; x < 64; x++ {
				img.Set(x, y, color.RGBA{R: uint8(i * 40), G: 0x40, B: 0x80, A: 0xFF})
			}
		}
		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, img, nil); err != nil {
			t.Fatal(err)
		}
		path := filepath.Join(dir, strconv.Itoa(i)+".jpg")
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// TestStart_RealFFmpeg runs the actual encoder when one is installed.
func TestStart_RealFFmpeg(t *testing.T) {
	if _, err := FindFFmpeg(); err != nil {
		t.Skipf("ffmpeg not available: %v", err)
	}

	framesDir := t.TempDir()
	writeTestFrames(t, framesDir, 3)

	enc := New(&logger.NoopLogger{})
	stream, err := enc.Start(context.Background(), framesDir, 24)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	data, err := io.ReadAll(stream)
	if err != nil {
		t.Fatalf("reading stream failed: %v", err)
	}
	if err := <-stream.Done(); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("no video data produced")
	}

	summary, err := mp4probe.Probe(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("probing output failed: %v", err)
	}
	if !summary.Fragmented {
		t.Error("output is not a fragmented MP4")
	}
}
