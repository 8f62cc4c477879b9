package ports

import (
	"image"
	"image/color"
)

// Renderer abstracts the image compositing capability: metadata reads,
// pixel decode/encode, and canvas drawing.
type Renderer interface {
	// ReadMetadata extracts the width and height of an encoded image
	// without decoding its pixel data.
	ReadMetadata(data []byte) (width, height int, err error)

	// DecodeImage decodes encoded image data into an image.Image.
	DecodeImage(data []byte) (image.Image, error)

	// EncodeImage encodes an image to the specified format.
	// Quality applies to lossy formats (JPEG).
	EncodeImage(img image.Image, format ImageFormat, quality int) ([]byte, error)

	// CreateCanvas creates a new drawing canvas filled with the background color.
	CreateCanvas(width, height int, bg color.Color) Canvas
}

// Canvas provides drawing operations for compositing images.
type Canvas interface {
	// DrawImage draws an image with its top-left corner at the specified position.
	DrawImage(img image.Image, x, y int)

	// ToImage returns the canvas as an image.Image.
	ToImage() image.Image
}

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatJPEG ImageFormat = iota
	FormatPNG
)
