package canvas

import (
	"encoding/binary"
	"fmt"
	"image"
	"io"
)

// BMP constants: 14-byte file header + 40-byte BITMAPINFOHEADER, 24bpp,
// uncompressed, 300 dpi (11811 pixels/meter).
const (
	bmpFileHeaderSize = 14
	bmpInfoHeaderSize = 40
	bmpResolution     = 11811
)

func bmpRowSize(width int) int {
	return (width*3 + 3) &^ 3
}

// EncodeBMP writes the image as a 24-bit bottom-up BMP.
func EncodeBMP(w io.Writer, img *Image) error {
	rowSize := bmpRowSize(img.width)
	pixelSize := rowSize * img.height
	fileSize := bmpFileHeaderSize + bmpInfoHeaderSize + pixelSize

	var hdr [bmpFileHeaderSize + bmpInfoHeaderSize]byte
	hdr[0], hdr[1] = 'B', 'M'
	binary.LittleEndian.PutUint32(hdr[2:], uint32(fileSize))
	binary.LittleEndian.PutUint32(hdr[10:], bmpFileHeaderSize+bmpInfoHeaderSize)
	binary.LittleEndian.PutUint32(hdr[14:], bmpInfoHeaderSize)
	binary.LittleEndian.PutUint32(hdr[18:], uint32(img.width))
	binary.LittleEndian.PutUint32(hdr[22:], uint32(img.height))
	binary.LittleEndian.PutUint16(hdr[26:], 1)  // planes
	binary.LittleEndian.PutUint16(hdr[28:], 24) // bits per pixel
	binary.LittleEndian.PutUint32(hdr[30:], 0)  // no compression
	binary.LittleEndian.PutUint32(hdr[34:], uint32(pixelSize))
	binary.LittleEndian.PutUint32(hdr[38:], bmpResolution)
	binary.LittleEndian.PutUint32(hdr[42:], bmpResolution)

	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}

	row := make([]byte, rowSize)
	for y := 0; y < img.height; y++ {
		src := img.pix[y*img.width*3 : (y+1)*img.width*3]
		for x := 0; x < img.width; x++ {
			// BGR on the wire
			row[x*3] = src[x*3+2]
			row[x*3+1] = src[x*3+1]
			row[x*3+2] = src[x*3]
		}
		for i := img.width * 3; i < rowSize; i++ {
			row[i] = 0
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// DecodeBMP reads a 24-bit uncompressed BMP written by EncodeBMP.
func DecodeBMP(r io.Reader) (*Image, error) {
	var hdr [bmpFileHeaderSize + bmpInfoHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("bmp: header: %w", err)
	}
	if hdr[0] != 'B' || hdr[1] != 'M' {
		return nil, fmt.Errorf("bmp: bad magic")
	}
	width := int(int32(binary.LittleEndian.Uint32(hdr[18:])))
	height := int(int32(binary.LittleEndian.Uint32(hdr[22:])))
	bpp := binary.LittleEndian.Uint16(hdr[28:])
	compress := binary.LittleEndian.Uint32(hdr[30:])
	if bpp != 24 || compress != 0 {
		return nil, fmt.Errorf("bmp: unsupported format (%d bpp, compression %d)", bpp, compress)
	}
	offset := int(binary.LittleEndian.Uint32(hdr[10:]))
	if skip := offset - len(hdr); skip > 0 {
		if _, err := io.CopyN(io.Discard, r, int64(skip)); err != nil {
			return nil, fmt.Errorf("bmp: pixel offset: %w", err)
		}
	}

	img, err := New(width, height, RGB{})
	if err != nil {
		return nil, err
	}
	rowSize := bmpRowSize(width)
	row := make([]byte, rowSize)
	for y := 0; y < height; y++ {
		if _, err := io.ReadFull(r, row); err != nil {
			return nil, fmt.Errorf("bmp: row %d: %w", y, err)
		}
		dst := img.pix[y*width*3 : (y+1)*width*3]
		for x := 0; x < width; x++ {
			dst[x*3] = row[x*3+2]
			dst[x*3+1] = row[x*3+1]
			dst[x*3+2] = row[x*3]
		}
	}
	return img, nil
}

// ToNRGBA converts the image to a standard library image with the usual
// top-left origin, for encoders that expect image.Image.
func (img *Image) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.width, img.height))
	for y := 0; y < img.height; y++ {
		srcRow := img.pix[y*img.width*3:]
		dstRow := out.Pix[(img.height-1-y)*out.Stride:]
		for x := 0; x < img.width; x++ {
			dstRow[x*4] = srcRow[x*3]
			dstRow[x*4+1] = srcRow[x*3+1]
			dstRow[x*4+2] = srcRow[x*3+2]
			dstRow[x*4+3] = 255
		}
	}
	return out
}
