package filter
// Provides numeric primitives shared by the filters.

// TransformFunc maps a source channel value at the given data index to an output channel value.
// Results are clamped to [0, 255] by the caller.
type TransformFunc func(value byte, position int) int


// Length returns the number of channel entries in the buffer.
func Length(buf *PixelBuffer) int {
  if buf == nil { return 0 }
  return buf.Width * buf.Height * 4
}

// FilterLuminosity replaces the color channels of each pixel by its weighted luminosity. Alpha is not modified.
func FilterLuminosity(data []byte, length int) {
  if length > len(data) { length = len(data) }
  for i := 0; i + 3 < length; i += 4 {
    v := clampByte(int(0.21 * float64(data[i]) + 0.72 * float64(data[i+1]) + 0.07 * float64(data[i+2]) + 0.5))
    data[i], data[i+1], data[i+2] = v, v, v
  }
}

// ApplyTransform writes fn(src) for each color channel into dst. Alpha is passed through unchanged.
func ApplyTransform(src, dst []byte, fn TransformFunc, width, height int) {
  if len(src) == 0 || fn == nil { return }
  length := width * height * 4
  if length > len(src) { length = len(src) }
  if length > len(dst) { length = len(dst) }
  for y := 0; y < height; y++ {
    for x := 0; x < width; x++ {
      ofs := (y * width + x) * 4
      if ofs + 3 >= length { return }
      dst[ofs] = clampByte(fn(src[ofs], ofs))
      dst[ofs+1] = clampByte(fn(src[ofs+1], ofs+1))
      dst[ofs+2] = clampByte(fn(src[ofs+2], ofs+2))
      dst[ofs+3] = src[ofs+3]
    }
  }
}

// ApplyTable remaps each color channel in place through the given table. Alpha is not modified.
func ApplyTable(data []byte, table *FilterTable, length int) {
  if len(data) == 0 || table == nil { return }
  if length > len(data) { length = len(data) }
  for i := 0; i + 3 < length; i += 4 {
    data[i] = clampByte(table.entries[data[i]])
    data[i+1] = clampByte(table.entries[data[i+1]])
    data[i+2] = clampByte(table.entries[data[i+2]])
  }
}
