package filter
/*
Implements filter "GammaImageDataFilterType":
Value: float [0.0001, 5.0] (1.0)
Values greater than 1 brighten midtones, values less than 1 darken them.
*/

import (
  "math"
)

const (
  FilterTypeGamma FilterType = "GammaImageDataFilterType"
)

var gammaRange = valueRange{min: 0.0001, max: 5, ref: 1}


// NewGammaFilter creates a new Gamma filter with the given value.
func NewGammaFilter(value float64) (*TableFilter, error) {
  return newTableFilter(FilterTypeGamma, gammaRange, gammaTable, value)
}

func newGammaFactory() *Factory {
  return newValueFactory(FilterTypeGamma, gammaRange, func(value float64) (Filter, error) {
    return NewGammaFilter(value)
  })
}

func gammaTable(value float64) *FilterTable {
  var table [256]int
  exp := 1.0 / value
  for i := 0; i < 256; i++ {
    table[i] = int(255.0 * math.Pow(float64(i) / 255.0, exp) + 0.5)
  }
  return NewFilterTable(table)
}
