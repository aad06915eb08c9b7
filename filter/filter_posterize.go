package filter
/*
Implements filter "PosterizeImageDataFilterType":
Value: float [2, 30] (6)
Reduces each color channel to the given number of levels.
*/

const (
  FilterTypePosterize FilterType = "PosterizeImageDataFilterType"
)

// Lower bound must stay above 1, the table divides by (value - 1).
var posterizeRange = valueRange{min: 2, max: 30, ref: 6}


// NewPosterizeFilter creates a new Posterize filter with the given number of levels.
func NewPosterizeFilter(value float64) (*TableFilter, error) {
  return newTableFilter(FilterTypePosterize, posterizeRange, posterizeTable, value)
}

func newPosterizeFactory() *Factory {
  return newValueFactory(FilterTypePosterize, posterizeRange, func(value float64) (Filter, error) {
    return NewPosterizeFilter(value)
  })
}

func posterizeTable(value float64) *FilterTable {
  var table [256]int
  for i := 0; i < 256; i++ {
    step := int(float64(i) * value / 256.0)
    table[i] = int(255.0 * float64(step) / (value - 1.0))
  }
  return NewFilterTable(table)
}
