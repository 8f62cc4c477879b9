// Package main provides the CLI entry point for pairshow.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/user/pairshow/pkg/adapters/ffmpegencoder"
	"github.com/user/pairshow/pkg/adapters/ggrenderer"
	"github.com/user/pairshow/pkg/adapters/logger"
	"github.com/user/pairshow/pkg/adapters/mp4probe"
	"github.com/user/pairshow/pkg/adapters/osfilesystem"
	"github.com/user/pairshow/pkg/config"
	"github.com/user/pairshow/pkg/orchestrator"
	"github.com/user/pairshow/pkg/pipeline"
	"github.com/user/pairshow/pkg/ports"
	"github.com/user/pairshow/pkg/stages/composite"
	"github.com/user/pairshow/pkg/stages/encode"
	"github.com/user/pairshow/pkg/stages/inspect"
	"github.com/user/pairshow/pkg/stages/sequence"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Merge   MergeCmd   `cmd:"" help:"Merge image pairs into a streaming MP4 video."`
	Probe   ProbeCmd   `cmd:"" help:"Summarize the box structure of an MP4 file."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// MergeCmd defines the merge subcommand.
type MergeCmd struct {
	// Required arguments
	Pairs  string `arg:"" help:"Manifest file listing two image paths per line."`
	Output string `short:"o" required:"" help:"Output MP4 file path (use - for stdout)."`

	// Config file
	Config string `short:"c" help:"YAML configuration file."`

	// Frame options (override config)
	OutputDir *string `help:"Base directory for job frame folders."`
	Job       *string `help:"Frame subfolder name (default: random)."`
	Cleanup   bool    `help:"Remove the frame folder after encoding."`
	Workers   *int    `help:"Concurrent compositing workers (default: CPU count)."`
	Quality   *int    `short:"q" help:"JPEG quality for merged frames (1-100)."`

	// Encoding options
	FPS        *int   `help:"Input frame rate (default: 24)."`
	FFmpegPath string `help:"Path to ffmpeg binary (default: search PATH)."`

	// Logging options
	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// ProbeCmd defines the probe subcommand.
type ProbeCmd struct {
	Input string `arg:"" help:"MP4 file to inspect (use - for stdin)."`
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("pairshow"),
		kong.Description("Merge ordered image pairs into a streamable MP4 video."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// Run executes the merge command.
func (cmd *MergeCmd) Run() error {
	cfg, err := cmd.buildConfig()
	if err != nil {
		return err
	}

	toStdout := cmd.Output == "-"

	var log ports.Logger
	switch {
	case cmd.Quiet:
		log = logger.NewNoop()
	case toStdout:
		log = logger.NewConsoleStderr(ports.ParseLogLevel(cfg.LogLevel))
	default:
		log = logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	// Create adapters
	fs := osfilesystem.New()
	renderer := ggrenderer.New()

	var encOpts []ffmpegencoder.Option
	if cfg.FFmpegPath != "" {
		encOpts = append(encOpts, ffmpegencoder.WithBinary(cfg.FFmpegPath))
	}
	encoder := ffmpegencoder.New(log, encOpts...)

	// Create stages
	inspector := inspect.New(renderer)
	compositeStage := composite.NewStage(renderer, log, cfg.JPEGQuality)
	sequenceStage := sequence.NewStage(inspector, compositeStage, fs, log, cfg.Workers)
	encodeStage := encode.NewStage(encoder, log)

	orch := orchestrator.New(sequenceStage, encodeStage, fs, log)

	pairs, err := readPairs(fs, cmd.Pairs)
	if err != nil {
		return err
	}

	log.Info(l10n.F("Merging %d image pairs...", len(pairs)))

	stream, err := orch.ProcessImagesAndCreateVideo(ctx, cfg.ToJobConfig(), pairs)
	if err != nil {
		return err
	}
	defer stream.Close()

	var out io.Writer
	if toStdout {
		out = os.Stdout
	} else {
		f, err := os.Create(cmd.Output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	written, copyErr := io.Copy(out, stream)
	if copyErr != nil {
		// A write-side failure leaves the encoder blocked on the pipe;
		// release it before waiting for Done to settle.
		stream.Close()
		<-stream.Done()
		if errors.Is(copyErr, pipeline.ErrEncodeRuntime) {
			return copyErr
		}
		return fmt.Errorf("write output: %w", copyErr)
	}
	if err := <-stream.Done(); err != nil {
		return err
	}

	dest := cmd.Output
	if toStdout {
		dest = "stdout"
	}
	log.Info(l10n.F("Wrote %d bytes to %s", written, dest))
	return nil
}

// buildConfig loads the config file (when given) and applies CLI overrides.
func (cmd *MergeCmd) buildConfig() (config.Config, error) {
	cfg := config.Defaults()
	if cmd.Config != "" {
		loaded, err := config.LoadFromFile(cmd.Config)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.OutputDir != nil {
		cfg.OutputDir = *cmd.OutputDir
	}
	if cmd.Job != nil {
		cfg.JobName = *cmd.Job
	}
	if cmd.Cleanup {
		cfg.Cleanup = true
	}
	if cmd.Workers != nil {
		cfg.Workers = *cmd.Workers
	}
	if cmd.Quality != nil {
		cfg.JPEGQuality = *cmd.Quality
	}
	if cmd.FPS != nil {
		cfg.FPS = *cmd.FPS
	}
	if cmd.FFmpegPath != "" {
		cfg.FFmpegPath = cmd.FFmpegPath
	}
	if cmd.LogLevel != "" {
		cfg.LogLevel = cmd.LogLevel
	}

	return cfg, nil
}

// readPairs parses a manifest file with two whitespace-separated image
// paths per line. Blank lines and lines starting with # are skipped.
func readPairs(fs ports.FileSystem, path string) ([]pipeline.ImagePair, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var pairs []pipeline.ImagePair
	for n, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("manifest line %d: expected two image paths, got %d", n+1, len(fields))
		}
		first, err := fs.ReadFile(fields[0])
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", fields[0], err)
		}
		second, err := fs.ReadFile(fields[1])
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", fields[1], err)
		}
		pairs = append(pairs, pipeline.ImagePair{First: first, Second: second})
	}

	if len(pairs) == 0 {
		return nil, errors.New("manifest lists no image pairs")
	}
	return pairs, nil
}

// Run executes the probe command.
func (cmd *ProbeCmd) Run() error {
	var in io.Reader
	if cmd.Input == "-" {
		in = os.Stdin
	} else {
		f, err := os.Open(cmd.Input)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	summary, err := mp4probe.Probe(in)
	if err != nil {
		return err
	}

	fmt.Println(summary)
	return nil
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("pairshow version %s", version))
	return nil
}
