package filter
// Provides the base implementations of value-parameterized filters.

import (
  "fmt"
  "math"
  "strings"
)

// valueRange defines the accepted filter values and the default value.
type valueRange struct {
  min, max, ref float64
}

// check returns a validation error if value lies outside of the range.
func (r valueRange) check(value float64) error {
  if math.IsNaN(value) || value < r.min || value > r.max {
    return &ValidationError{
      Attribute:  OPTION_VALUE,
      Constraint: fmt.Sprintf("not in range [%v, %v]: %v", r.min, r.max, value),
      Err:        ErrOutOfRange,
    }
  }
  return nil
}


// valueFilter adds a validated scalar value to baseFilter.
type valueFilter struct {
  baseFilter
  rng     valueRange
  value   float64
}

func newValueFilter(ftype FilterType, variant Variant, rng valueRange, value float64) (valueFilter, error) {
  f := valueFilter{baseFilter: newBaseFilter(ftype, variant), rng: rng, value: rng.ref}
  if err := rng.check(value); err != nil { return f, err }
  f.value = value
  return f, nil
}

// GetValue returns the current filter value.
func (f *valueFilter) GetValue() float64 { return f.value }

// SetValue updates the filter value. Values outside of the accepted range are rejected.
func (f *valueFilter) SetValue(value float64) error {
  if err := f.rng.check(value); err != nil { return err }
  f.value = value
  return nil
}

// GetMinValue returns the lowest accepted filter value.
func (f *valueFilter) GetMinValue() float64 { return f.rng.min }

// GetMaxValue returns the highest accepted filter value.
func (f *valueFilter) GetMaxValue() float64 { return f.rng.max }

// GetRefValue returns the default filter value.
func (f *valueFilter) GetRefValue() float64 { return f.rng.ref }

// GetOption returns the option of given name.
func (f *valueFilter) GetOption(key string) interface{} {
  if strings.ToLower(key) == OPTION_VALUE { return f.value }
  return f.baseFilter.GetOption(key)
}

// SetOption updates the option of the given key.
func (f *valueFilter) SetOption(key, value string) error {
  if strings.ToLower(key) == OPTION_VALUE {
    v, err := parseFloatRange(value, f.rng.min, f.rng.max)
    if err != nil { return fmt.Errorf("Option %s: %v", OPTION_VALUE, err) }
    f.value = v
    return nil
  }
  return f.baseFilter.SetOption(key, value)
}


// ValueTransformFilter applies a per-channel function of the filter value. The result is written into a newly
// allocated buffer.
type ValueTransformFilter struct {
  valueFilter
  transform func(value float64) TransformFunc
}

func newValueTransformFilter(ftype FilterType, rng valueRange, transform func(float64) TransformFunc,
                             value float64) (*ValueTransformFilter, error) {
  vf, err := newValueFilter(ftype, VariantValueTransform, rng, value)
  if err != nil { return nil, err }
  return &ValueTransformFilter{valueFilter: vf, transform: transform}, nil
}

// Transform returns the channel function for the current filter value.
func (f *ValueTransformFilter) Transform() TransformFunc {
  return f.transform(f.value)
}

// Apply returns a new buffer with the transformed pixel data. Inactive filters return the input buffer or its copy.
func (f *ValueTransformFilter) Apply(buf *PixelBuffer, copy bool) *PixelBuffer {
  buf, ok := f.prepare(buf, copy)
  if !ok { return buf }
  result := buf.Create()
  ApplyTransform(buf.Data, result.Data, f.Transform(), buf.Width, buf.Height)
  return result
}


// TableFilter remaps color channels through a lookup table derived from the filter value. The table is rebuilt
// only when the value changes.
type TableFilter struct {
  valueFilter
  build   func(value float64) *FilterTable
  cache   tableCache
}

func newTableFilter(ftype FilterType, rng valueRange, build func(float64) *FilterTable,
                    value float64) (*TableFilter, error) {
  vf, err := newValueFilter(ftype, VariantTable, rng, value)
  if err != nil { return nil, err }
  return &TableFilter{valueFilter: vf, build: build}, nil
}

// Table returns the lookup table for the current filter value.
func (f *TableFilter) Table() *FilterTable {
  return f.cache.get(f.value, f.build)
}

// Apply remaps the pixel data in place. Set copy to process a duplicate of buf instead.
func (f *TableFilter) Apply(buf *PixelBuffer, copy bool) *PixelBuffer {
  buf, ok := f.prepare(buf, copy)
  if !ok { return buf }
  ApplyTable(buf.Data, f.Table(), Length(buf))
  return buf
}


// PixelFilter applies a parameterless per-pixel operation in place.
type PixelFilter struct {
  baseFilter
  fn func(data []byte, length int)
}

func newPixelFilter(ftype FilterType, fn func(data []byte, length int)) *PixelFilter {
  return &PixelFilter{baseFilter: newBaseFilter(ftype, VariantPixel), fn: fn}
}

// Apply processes the pixel data in place. Set copy to process a duplicate of buf instead.
func (f *PixelFilter) Apply(buf *PixelBuffer, copy bool) *PixelBuffer {
  buf, ok := f.prepare(buf, copy)
  if !ok { return buf }
  f.fn(buf.Data, Length(buf))
  return buf
}
