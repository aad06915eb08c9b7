package filter
/*
Implements filter "EmbossImageDataFilterType":
Option: snapshot: bool (false)
Applies the emboss kernel [[0,0,0],[0,2,-1],[0,-1,0]] with a mid-gray bias, followed by a luminosity pass.

By default the kernel runs in place in a single pass, so neighbors to the right and below may already hold
processed values when they are read. The result depends on the iteration order and is kept that way for
compatibility with existing output. Enable snapshot to read neighbors from an unmodified copy of the source.
*/

import (
  "fmt"
  "strings"
)

const (
  FilterTypeEmboss FilterType = "EmbossImageDataFilterType"
)

const embossBias = 255 / 2

// EmbossFilter is a convolution filter that creates a gray relief effect.
type EmbossFilter struct {
  baseFilter
  snapshot  bool
}


// NewEmbossFilter creates a new Emboss filter in compatibility mode.
func NewEmbossFilter() *EmbossFilter {
  return &EmbossFilter{baseFilter: newBaseFilter(FilterTypeEmboss, VariantConvolution)}
}

func newEmbossFactory() *Factory {
  attrs := []Attribute{{Name: OPTION_SNAPSHOT, Kind: AttributeBool}}
  return newFactory(FilterTypeEmboss, attrs, func(doc Document, ctx *ValidationContext) (Filter, error) {
    f := NewEmbossFilter()
    if v, ok := doc[OPTION_SNAPSHOT]; ok && !isEmpty(v) {
      b, err := toBool(v)
      if err != nil { return nil, err }
      f.snapshot = b
    }
    return f, nil
  })
}

// IsSnapshot returns whether neighbors are read from an unmodified copy of the source.
func (f *EmbossFilter) IsSnapshot() bool { return f.snapshot }

// SetSnapshot selects between the in-place (false) and the snapshot (true) kernel.
func (f *EmbossFilter) SetSnapshot(set bool) { f.snapshot = set }

// GetOption returns the option of given name.
func (f *EmbossFilter) GetOption(key string) interface{} {
  if strings.ToLower(key) == OPTION_SNAPSHOT { return f.snapshot }
  return f.baseFilter.GetOption(key)
}

// SetOption updates the option of the given key.
func (f *EmbossFilter) SetOption(key, value string) error {
  if strings.ToLower(key) == OPTION_SNAPSHOT {
    v, err := parseBool(value)
    if err != nil { return fmt.Errorf("Option %s: %v", OPTION_SNAPSHOT, err) }
    f.snapshot = v
    return nil
  }
  return f.baseFilter.SetOption(key, value)
}

// Apply embosses the pixel data in place. Set copy to process a duplicate of buf instead.
func (f *EmbossFilter) Apply(buf *PixelBuffer, copy bool) *PixelBuffer {
  buf, ok := f.prepare(buf, copy)
  if !ok { return buf }
  length := Length(buf)
  if length > len(buf.Data) { length = len(buf.Data) }
  if f.snapshot {
    embossSnapshot(buf.Data, length, buf.Width)
  } else {
    embossInPlace(buf.Data, length, buf.Width)
  }
  FilterLuminosity(buf.Data, length)
  return buf
}


// Used internally. Single pass over data that reads neighbors which may have been overwritten already.
// Reads outside of data evaluate to 0.
func embossInPlace(data []byte, length, width int) {
  at := func(i int) int {
    if i < 0 || i >= length { return 0 }
    return int(data[i])
  }
  stride := width * 4
  for i := 0; i < length; i++ {
    if (i + 1) % 4 == 0 { continue }   // alpha
    if i >= length - stride {
      // last row
      data[i] = clampByte(at(i - stride))
    } else if (i + 4) % stride == 0 {
      data[i] = clampByte(at(i - 4))
      data[i+1] = clampByte(at(i - 3))
      data[i+2] = clampByte(at(i - 2))
      data[i+3] = clampByte(at(i - 1))
    } else {
      data[i] = clampByte(embossBias + 2 * int(data[i]) - at(i + 4) - at(i + stride))
    }
  }
}

// Used internally. Applies the kernel with neighbors taken from a copy of the source. The last column and the
// last row repeat the processed pixel to the left and above respectively, missing neighbors yield mid-gray.
func embossSnapshot(data []byte, length, width int) {
  if width <= 0 { return }
  height := length / (width * 4)
  stride := width * 4
  src := make([]byte, length)
  copy(src, data[:length])

  for y := 0; y < height; y++ {
    for x := 0; x < width; x++ {
      ofs := y * stride + x * 4
      for c := 0; c < 3; c++ {
        i := ofs + c
        switch {
          case y == height - 1:
            if y > 0 {
              data[i] = data[i - stride]
            } else {
              data[i] = embossBias
            }
          case x == width - 1:
            if x > 0 {
              data[i] = data[i - 4]
            } else {
              data[i] = embossBias
            }
          default:
            data[i] = clampByte(embossBias + 2 * int(src[i]) - int(src[i + 4]) - int(src[i + stride]))
        }
      }
    }
  }
}
