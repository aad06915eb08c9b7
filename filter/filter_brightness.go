package filter
/*
Implements filter "BrightnessImageDataFilterType":
Value: float [-255, 255] (0)
Adds the value to each color channel.
*/

import (
  "math"
)

const (
  FilterTypeBrightness FilterType = "BrightnessImageDataFilterType"
)

var brightnessRange = valueRange{min: -255, max: 255, ref: 0}


// NewBrightnessFilter creates a new Brightness filter with the given value.
func NewBrightnessFilter(value float64) (*ValueTransformFilter, error) {
  return newValueTransformFilter(FilterTypeBrightness, brightnessRange, brightnessTransform, value)
}

func newBrightnessFactory() *Factory {
  return newValueFactory(FilterTypeBrightness, brightnessRange, func(value float64) (Filter, error) {
    return NewBrightnessFilter(value)
  })
}

func brightnessTransform(value float64) TransformFunc {
  delta := int(math.Round(value))
  return func(v byte, _ int) int {
    return int(v) + delta
  }
}
