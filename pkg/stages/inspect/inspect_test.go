package inspect

import (
	"errors"
	"testing"

	"github.com/user/pairshow/pkg/mocks"
	"github.com/user/pairshow/pkg/pipeline"
)

func TestInspect(t *testing.T) {
	renderer := &mocks.Renderer{
		ReadMetadataFunc: func(data []byte) (int, int, error) {
			return 640, 480, nil
		},
	}
	inspector := New(renderer)

	dim, err := inspector.Inspect([]byte{0xFF, 0xD8})
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if dim.Width != 640 || dim.Height != 480 {
		t.Errorf("Inspect returned %dx%d, want 640x480", dim.Width, dim.Height)
	}
}

func TestInspect_Errors(t *testing.T) {
	tests := []struct {
		name     string
		metadata func(data []byte) (int, int, error)
	}{
		{
			name: "decoder failure",
			metadata: func(data []byte) (int, int, error) {
				return 0, 0, errors.New("unknown format")
			},
		},
		{
			name: "zero width",
			metadata: func(data []byte) (int, int, error) {
				return 0, 480, nil
			},
		},
		{
			name: "negative height",
			metadata: func(data []byte) (int, int, error) {
				return 640, -1, nil
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inspector := New(&mocks.Renderer{ReadMetadataFunc: tt.metadata})

			_, err := inspector.Inspect([]byte("bogus"))
			if !errors.Is(err, pipeline.ErrInvalidMetadata) {
				t.Errorf("Inspect error = %v, want ErrInvalidMetadata", err)
			}
		})
	}
}
