/*
Package filter applies value-parameterized transformations to RGBA pixel buffers and translates filter
configurations from and into structured documents.

PixFilter is released under the BSD 2-clause license. See LICENSE in the project's root folder for more details.
*/
package filter

import (
  "fmt"
  "strconv"
  "strings"
)

// FilterType is the type tag that identifies a filter kind in persisted documents.
type FilterType string

// Variant describes how a filter processes pixel data.
type Variant int

const (
  // VariantPixel filters remap each pixel in place without a parameter.
  VariantPixel Variant = iota
  // VariantValueTransform filters apply a closed-form per-channel function of a single scalar value.
  VariantValueTransform
  // VariantTable filters apply a 256-entry lookup table derived from a single scalar value.
  VariantTable
  // VariantConvolution filters read a neighborhood of pixels.
  VariantConvolution
)

func (v Variant) String() string {
  switch v {
    case VariantPixel:          return "pixel"
    case VariantValueTransform: return "value-transform"
    case VariantTable:          return "table"
    case VariantConvolution:    return "convolution"
    default:                    return "unknown"
  }
}

// Option names recognized by SetOption and GetOption.
const (
  OPTION_ACTIVE   = "active"
  OPTION_VALUE    = "value"
  OPTION_SNAPSHOT = "snapshot"
)

// Filter provides functions for applying color or neighborhood effects to pixel buffers.
type Filter interface {
  // GetType returns the type tag of the filter.
  GetType() FilterType
  // GetVariant returns the processing variant of the filter.
  GetVariant() Variant
  // IsActive returns whether Apply modifies pixel data.
  IsActive() bool
  // SetActive enables or disables the filter.
  SetActive(active bool)
  // IsTransforming returns whether the filter changes pixel values rather than just inspecting them.
  IsTransforming() bool
  // GetOption returns the option of given name. Returns nil if the option doesn't exist.
  GetOption(key string) interface{}
  // SetOption updates the option of the given key from its textual representation.
  SetOption(key, value string) error
  // Apply processes buf and returns the result. A nil buffer always results in nil.
  // Set copy to leave the content of buf untouched.
  Apply(buf *PixelBuffer, copy bool) *PixelBuffer
}

// ValueFilter is a Filter whose behavior is governed by a single scalar value.
type ValueFilter interface {
  Filter
  // GetValue returns the current filter value.
  GetValue() float64
  // SetValue updates the filter value. Values outside of [GetMinValue(), GetMaxValue()] are rejected.
  SetValue(value float64) error
  GetMinValue() float64
  GetMaxValue() float64
  // GetRefValue returns the default value of the filter.
  GetRefValue() float64
}


// baseFilter provides the state shared by all filter kinds.
type baseFilter struct {
  ftype   FilterType
  variant Variant
  active  bool
}

func newBaseFilter(ftype FilterType, variant Variant) baseFilter {
  return baseFilter{ftype: ftype, variant: variant, active: true}
}

// GetType returns the type tag of the filter.
func (f *baseFilter) GetType() FilterType { return f.ftype }

// GetVariant returns the processing variant of the filter.
func (f *baseFilter) GetVariant() Variant { return f.variant }

// IsActive returns whether Apply modifies pixel data.
func (f *baseFilter) IsActive() bool { return f.active }

// SetActive enables or disables the filter.
func (f *baseFilter) SetActive(active bool) { f.active = active }

// IsTransforming returns true for all built-in filters.
func (f *baseFilter) IsTransforming() bool { return true }

// GetOption returns the option of given name.
func (f *baseFilter) GetOption(key string) interface{} {
  if strings.ToLower(key) == OPTION_ACTIVE { return f.active }
  return nil
}

// SetOption updates the option of the given key. Unknown keys are ignored.
func (f *baseFilter) SetOption(key, value string) error {
  key = strings.ToLower(key)
  if key == OPTION_ACTIVE {
    v, err := parseBool(value)
    if err != nil { return fmt.Errorf("Option %s: %v", key, err) }
    f.active = v
  }
  return nil
}

// prepare performs the steps shared by every Apply implementation. It returns the buffer to work on and whether
// processing should continue.
func (f *baseFilter) prepare(buf *PixelBuffer, copy bool) (*PixelBuffer, bool) {
  if buf == nil { return nil, false }
  if copy { buf = buf.Copy() }
  if !f.active { return buf, false }
  if len(buf.Data) == 0 { return buf, false }
  return buf, true
}


// Converts string into float in range [min, max] (both inclusive).
func parseFloatRange(value string, min, max float64) (float64, error) {
  if max < min { min, max = max, min }
  ret, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
  if err != nil { return 0, fmt.Errorf("not a float: %s", value) }
  if ret < min || ret > max { return 0, fmt.Errorf("not in range [%v, %v]: %s", min, max, value) }
  return ret, nil
}

// Converts string into float without range restrictions.
func parseFloat(value string) (float64, error) {
  ret, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
  if err != nil { return 0, fmt.Errorf("not a float: %s", value) }
  return ret, nil
}

// Converts string into bool. Numeric values are accepted as well.
func parseBool(value string) (bool, error) {
  value = strings.TrimSpace(value)
  ret, err := strconv.ParseBool(value)
  if err != nil {
    n, err := strconv.ParseInt(value, 0, 0)
    if err != nil { return false, fmt.Errorf("not a boolean: %s", value) }
    ret = n != 0
  }
  return ret, nil
}

// clampByte limits v to the range of a color channel.
func clampByte(v int) byte {
  if v < 0 { return 0 }
  if v > 255 { return 255 }
  return byte(v)
}
