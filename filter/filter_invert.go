package filter
/*
Implements filter "InvertColorsImageDataFilterType": Inverts the color channels. Alpha is preserved.
*/

const (
  FilterTypeInvert FilterType = "InvertColorsImageDataFilterType"
)


// NewInvertFilter creates a new Invert filter.
func NewInvertFilter() *PixelFilter {
  return newPixelFilter(FilterTypeInvert, invertColors)
}

func newInvertFactory() *Factory {
  return newFactory(FilterTypeInvert, nil, func(doc Document, ctx *ValidationContext) (Filter, error) {
    return NewInvertFilter(), nil
  })
}

func invertColors(data []byte, length int) {
  if length > len(data) { length = len(data) }
  for i := 0; i + 3 < length; i += 4 {
    data[i] = 255 - data[i]
    data[i+1] = 255 - data[i+1]
    data[i+2] = 255 - data[i+2]
  }
}
