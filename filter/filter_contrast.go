package filter
/*
Implements filter "ContrastImageDataFilterType":
Value: float [-255, 255] (0)
Scales the distance of each color channel from mid-gray.
*/

import (
  "math"
)

const (
  FilterTypeContrast FilterType = "ContrastImageDataFilterType"
)

var contrastRange = valueRange{min: -255, max: 255, ref: 0}


// NewContrastFilter creates a new Contrast filter with the given value.
func NewContrastFilter(value float64) (*ValueTransformFilter, error) {
  return newValueTransformFilter(FilterTypeContrast, contrastRange, contrastTransform, value)
}

func newContrastFactory() *Factory {
  return newValueFactory(FilterTypeContrast, contrastRange, func(value float64) (Filter, error) {
    return NewContrastFilter(value)
  })
}

func contrastTransform(value float64) TransformFunc {
  factor := (259.0 * (value + 255.0)) / (255.0 * (259.0 - value))
  return func(v byte, _ int) int {
    return int(math.Round((float64(v) - 128.0) * factor + 128.0))
  }
}
