package composite

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/user/pairshow/pkg/mocks"
	"github.com/user/pairshow/pkg/pipeline"
	"github.com/user/pairshow/pkg/ports"
)

func TestPlanCanvas(t *testing.T) {
	tests := []struct {
		name      string
		a, b      pipeline.Dimension
		direction pipeline.MergeDirection
		want      Plan
	}{
		{
			name:      "horizontal equal heights",
			a:         pipeline.Dimension{Width: 100, Height: 200},
			b:         pipeline.Dimension{Width: 150, Height: 200},
			direction: pipeline.Horizontal,
			want: Plan{
				Canvas: pipeline.Dimension{Width: 250, Height: 200},
				First:  pipeline.Placement{X: 0, Y: 0},
				Second: pipeline.Placement{X: 100, Y: 0},
			},
		},
		{
			name:      "horizontal centers the shorter image",
			a:         pipeline.Dimension{Width: 100, Height: 100},
			b:         pipeline.Dimension{Width: 100, Height: 200},
			direction: pipeline.Horizontal,
			want: Plan{
				Canvas: pipeline.Dimension{Width: 200, Height: 200},
				First:  pipeline.Placement{X: 0, Y: 50},
				Second: pipeline.Placement{X: 100, Y: 0},
			},
		},
		{
			name:      "horizontal odd offset truncates",
			a:         pipeline.Dimension{Width: 60, Height: 95},
			b:         pipeline.Dimension{Width: 40, Height: 100},
			direction: pipeline.Horizontal,
			want: Plan{
				Canvas: pipeline.Dimension{Width: 100, Height: 100},
				First:  pipeline.Placement{X: 0, Y: 2},
				Second: pipeline.Placement{X: 60, Y: 0},
			},
		},
		{
			name:      "vertical equal widths",
			a:         pipeline.Dimension{Width: 100, Height: 200},
			b:         pipeline.Dimension{Width: 100, Height: 150},
			direction: pipeline.Vertical,
			want: Plan{
				Canvas: pipeline.Dimension{Width: 100, Height: 350},
				First:  pipeline.Placement{X: 0, Y: 0},
				Second: pipeline.Placement{X: 0, Y: 200},
			},
		},
		{
			name:      "vertical centers the narrower image",
			a:         pipeline.Dimension{Width: 100, Height: 200},
			b:         pipeline.Dimension{Width: 200, Height: 100},
			direction: pipeline.Vertical,
			want: Plan{
				Canvas: pipeline.Dimension{Width: 200, Height: 300},
				First:  pipeline.Placement{X: 50, Y: 0},
				Second: pipeline.Placement{X: 0, Y: 200},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlanCanvas(tt.a, tt.b, tt.direction)
			if got != tt.want {
				t.Errorf("PlanCanvas(%v, %v, %v) = %+v, want %+v", tt.a, tt.b, tt.direction, got, tt.want)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	first := image.NewRGBA(image.Rect(0, 0, 100, 200))
	second := image.NewRGBA(image.Rect(0, 0, 200, 100))

	var encodedFormat ports.ImageFormat
	var encodedQuality int
	renderer := &mocks.Renderer{
		DecodeImageFunc: func(data []byte) (image.Image, error) {
			if string(data) == "first" {
				return first, nil
			}
			return second, nil
		},
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
			encodedFormat = format
			encodedQuality = quality
			return []byte{0xFF, 0xD8, 0xFF}, nil
		},
	}

	stage := NewStage(renderer, &mocks.Logger{}, 85)
	result, err := stage.Execute(context.Background(), pipeline.CompositeInput{
		Pair:      pipeline.ImagePair{First: []byte("first"), Second: []byte("second")},
		DimFirst:  pipeline.Dimension{Width: 100, Height: 200},
		DimSecond: pipeline.Dimension{Width: 200, Height: 100},
		Direction: pipeline.Vertical,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if result.Canvas.Width != 200 || result.Canvas.Height != 300 {
		t.Errorf("canvas = %dx%d, want 200x300", result.Canvas.Width, result.Canvas.Height)
	}
	if len(result.JPEG) == 0 {
		t.Error("expected encoded frame data")
	}
	if encodedFormat != ports.FormatJPEG {
		t.Errorf("encoded format = %v, want FormatJPEG", encodedFormat)
	}
	if encodedQuality != 85 {
		t.Errorf("encoded quality = %d, want 85", encodedQuality)
	}

	if len(renderer.Canvases) != 1 {
		t.Fatalf("created %d canvases, want 1", len(renderer.Canvases))
	}
	canvas := renderer.Canvases[0]
	if canvas.Width != 200 || canvas.Height != 300 {
		t.Errorf("canvas size = %dx%d, want 200x300", canvas.Width, canvas.Height)
	}
	if canvas.Background != color.White {
		t.Errorf("canvas background = %v, want white", canvas.Background)
	}

	if len(canvas.Draws) != 2 {
		t.Fatalf("drew %d images, want 2", len(canvas.Draws))
	}
	if canvas.Draws[0].Image != first || canvas.Draws[0].X != 50 || canvas.Draws[0].Y != 0 {
		t.Errorf("first draw = (%d, %d), want (50, 0)", canvas.Draws[0].X, canvas.Draws[0].Y)
	}
	if canvas.Draws[1].Image != second || canvas.Draws[1].X != 0 || canvas.Draws[1].Y != 200 {
		t.Errorf("second draw = (%d, %d), want (0, 200)", canvas.Draws[1].X, canvas.Draws[1].Y)
	}
}

func TestExecute_InvalidDimensions(t *testing.T) {
	stage := NewStage(&mocks.Renderer{}, &mocks.Logger{}, 0)

	_, err := stage.Execute(context.Background(), pipeline.CompositeInput{
		Pair:      pipeline.ImagePair{First: []byte("a"), Second: []byte("b")},
		DimFirst:  pipeline.Dimension{Width: 0, Height: 100},
		DimSecond: pipeline.Dimension{Width: 100, Height: 100},
	})
	if !errors.Is(err, pipeline.ErrInvalidMetadata) {
		t.Errorf("Execute error = %v, want ErrInvalidMetadata", err)
	}
}

func TestExecute_DecodeFailure(t *testing.T) {
	renderer := &mocks.Renderer{
		DecodeImageFunc: func(data []byte) (image.Image, error) {
			return nil, errors.New("truncated data")
		},
	}
	stage := NewStage(renderer, &mocks.Logger{}, 0)

	_, err := stage.Execute(context.Background(), pipeline.CompositeInput{
		Pair:      pipeline.ImagePair{First: []byte("a"), Second: []byte("b")},
		DimFirst:  pipeline.Dimension{Width: 100, Height: 100},
		DimSecond: pipeline.Dimension{Width: 100, Height: 100},
		Direction: pipeline.Horizontal,
	})
	if !errors.Is(err, pipeline.ErrComposition) {
		t.Errorf("Execute error = %v, want ErrComposition", err)
	}
}

func TestNewStage_DefaultQuality(t *testing.T) {
	var gotQuality int
	renderer := &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
			gotQuality = quality
			return []byte{1}, nil
		},
	}
	stage := NewStage(renderer, &mocks.Logger{}, 0)

	_, err := stage.Execute(context.Background(), pipeline.CompositeInput{
		Pair:      pipeline.ImagePair{First: []byte("a"), Second: []byte("b")},
		DimFirst:  pipeline.Dimension{Width: 10, Height: 10},
		DimSecond: pipeline.Dimension{Width: 10, Height: 10},
		Direction: pipeline.Horizontal,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if gotQuality != DefaultJPEGQuality {
		t.Errorf("quality = %d, want %d", gotQuality, DefaultJPEGQuality)
	}
}
