package filter
// Provides the pixel buffer all filters operate on.

import (
  "fmt"
  "image"
  "image/draw"
)

// PixelBuffer is a mutable RGBA raster with row-major, channel-interleaved storage.
// Data always contains Width*Height*4 bytes in R, G, B, A order.
type PixelBuffer struct {
  Width   int
  Height  int
  Data    []byte
}


// NewPixelBuffer creates a zero-initialized buffer of the given dimensions.
func NewPixelBuffer(width, height int) *PixelBuffer {
  if width < 0 { width = 0 }
  if height < 0 { height = 0 }
  return &PixelBuffer{Width: width, Height: height, Data: make([]byte, width * height * 4)}
}

// NewPixelBufferFrom wraps the given data without copying. Returns an error if the data length doesn't match the
// dimensions.
func NewPixelBufferFrom(width, height int, data []byte) (*PixelBuffer, error) {
  if width < 0 || height < 0 { return nil, fmt.Errorf("invalid dimensions: %dx%d", width, height) }
  if len(data) != width * height * 4 {
    return nil, fmt.Errorf("data length %d does not match dimensions %dx%d", len(data), width, height)
  }
  return &PixelBuffer{Width: width, Height: height, Data: data}, nil
}

// FromImage creates a buffer from the given image. Colors are stored non-premultiplied. Returns nil for a nil image.
func FromImage(img image.Image) *PixelBuffer {
  if img == nil { return nil }
  b := img.Bounds()
  nrgba, ok := img.(*image.NRGBA)
  if !ok || nrgba.Stride != b.Dx() * 4 {
    nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
    draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
  }
  buf := NewPixelBuffer(b.Dx(), b.Dy())
  copy(buf.Data, nrgba.Pix)
  return buf
}


// Copy returns a new buffer with identical dimensions and a fresh copy of the pixel data.
func (p *PixelBuffer) Copy() *PixelBuffer {
  if p == nil { return nil }
  out := &PixelBuffer{Width: p.Width, Height: p.Height, Data: make([]byte, len(p.Data))}
  copy(out.Data, p.Data)
  return out
}

// Create returns a zero-initialized buffer of identical dimensions.
func (p *PixelBuffer) Create() *PixelBuffer {
  if p == nil { return nil }
  return &PixelBuffer{Width: p.Width, Height: p.Height, Data: make([]byte, len(p.Data))}
}

// Equal returns whether both buffers have the same dimensions and pixel data.
func (p *PixelBuffer) Equal(other *PixelBuffer) bool {
  if p == nil || other == nil { return p == other }
  if p.Width != other.Width || p.Height != other.Height || len(p.Data) != len(other.Data) { return false }
  for i := range p.Data {
    if p.Data[i] != other.Data[i] { return false }
  }
  return true
}

// Offset returns the index of channel c of the pixel at (x, y).
func (p *PixelBuffer) Offset(x, y, c int) int {
  return (y * p.Width + x) * 4 + c
}

// ToImage returns the buffer content as a new NRGBA image.
func (p *PixelBuffer) ToImage() *image.NRGBA {
  if p == nil { return nil }
  img := image.NewNRGBA(image.Rect(0, 0, p.Width, p.Height))
  copy(img.Pix, p.Data)
  return img
}
