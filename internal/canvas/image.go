// Package canvas holds the 24-bit render target and its BMP encoding.
package canvas

import "errors"

// ErrOutOfMemory is returned when a requested buffer exceeds the sanity
// bound. The CLI maps it to exit code 100.
var ErrOutOfMemory = errors.New("canvas: image too large")

// MaxPixels bounds a single allocation. Beyond this the render is treated as
// out of memory rather than letting the runtime abort.
const MaxPixels = 1 << 26

// RGB is an 8-bit color triple.
type RGB struct {
	R, G, B uint8
}

// Image is a fixed-size 24-bit RGB raster. Row 0 is the bottom row, matching
// the BMP pixel array, so no flip is needed when encoding.
type Image struct {
	width  int
	height int
	pix    []byte // 3 bytes per pixel, row-major from the bottom
}

// New allocates an image filled with the background color.
// A zero-area image is valid and encodes to an empty raster.
func New(width, height int, background RGB) (*Image, error) {
	if width < 0 || height < 0 || width*height > MaxPixels {
		return nil, ErrOutOfMemory
	}
	img := &Image{
		width:  width,
		height: height,
		pix:    make([]byte, width*height*3),
	}
	img.Clear(background)
	return img, nil
}

func (img *Image) Width() int  { return img.width }
func (img *Image) Height() int { return img.height }

// Empty reports whether the image has no pixels.
func (img *Image) Empty() bool { return img.width == 0 || img.height == 0 }

// Clear fills the whole image with one color.
func (img *Image) Clear(c RGB) {
	for i := 0; i < len(img.pix); i += 3 {
		img.pix[i] = c.R
		img.pix[i+1] = c.G
		img.pix[i+2] = c.B
	}
}

// Set writes a pixel. (0,0) is the bottom-left corner.
func (img *Image) Set(x, y int, c RGB) {
	if x < 0 || x >= img.width || y < 0 || y >= img.height {
		return
	}
	i := (y*img.width + x) * 3
	img.pix[i] = c.R
	img.pix[i+1] = c.G
	img.pix[i+2] = c.B
}

// At reads a pixel. Out-of-bounds reads return black.
func (img *Image) At(x, y int) RGB {
	if x < 0 || x >= img.width || y < 0 || y >= img.height {
		return RGB{}
	}
	i := (y*img.width + x) * 3
	return RGB{img.pix[i], img.pix[i+1], img.pix[i+2]}
}
