package filter
/*
Implements filter "LuminosityGrayScaleImageDataFilterType": Converts colors to gray by weighted luminosity.
*/

const (
  FilterTypeLuminosityGrayScale FilterType = "LuminosityGrayScaleImageDataFilterType"
)


// NewLuminosityGrayScaleFilter creates a new luminosity grayscale filter.
func NewLuminosityGrayScaleFilter() *PixelFilter {
  return newPixelFilter(FilterTypeLuminosityGrayScale, FilterLuminosity)
}

func newLuminosityGrayScaleFactory() *Factory {
  return newFactory(FilterTypeLuminosityGrayScale, nil, func(doc Document, ctx *ValidationContext) (Filter, error) {
    return NewLuminosityGrayScaleFilter(), nil
  })
}
