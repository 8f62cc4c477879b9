// Package mocks provides hand-rolled port implementations for tests.
package mocks

import (
	"image"
	"image/color"

	"github.com/user/pairshow/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	ReadMetadataFunc func(data []byte) (int, int, error)
	DecodeImageFunc  func(data []byte) (image.Image, error)
	EncodeImageFunc  func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas

	// Canvases records every canvas handed out, for draw-call verification.
	Canvases []*Canvas
}

func (m *Renderer) ReadMetadata(data []byte) (int, int, error) {
	if m.ReadMetadataFunc != nil {
		return m.ReadMetadataFunc(data)
	}
	return 100, 100, nil
}

func (m *Renderer) DecodeImage(data []byte) (image.Image, error) {
	if m.DecodeImageFunc != nil {
		return m.DecodeImageFunc(data)
	}
	return image.NewRGBA(image.Rect(0, 0, 100, 100)), nil
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{0xFF, 0xD8}, nil
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	c := &Canvas{Width: width, Height: height, Background: bg}
	m.Canvases = append(m.Canvases, c)
	return c
}

var _ ports.Renderer = (*Renderer)(nil)

// Canvas is a mock implementation of ports.Canvas that records draw calls.
type Canvas struct {
	Width      int
	Height     int
	Background color.Color
	Draws      []DrawCall
}

// DrawCall records a single DrawImage invocation.
type DrawCall struct {
	Image image.Image
	X     int
	Y     int
}

func (m *Canvas) DrawImage(img image.Image, x, y int) {
	m.Draws = append(m.Draws, DrawCall{Image: img, X: x, Y: y})
}

func (m *Canvas) ToImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, m.Width, m.Height))
}

var _ ports.Canvas = (*Canvas)(nil)
