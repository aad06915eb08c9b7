package filter

import (
  "bytes"
  "errors"
  "testing"
)

// allFilters returns one instance of every built-in filter kind.
func allFilters(t *testing.T) []Filter {
  t.Helper()
  brightness, err := NewBrightnessFilter(10)
  if err != nil { t.Fatal(err) }
  contrast, err := NewContrastFilter(40)
  if err != nil { t.Fatal(err) }
  gamma, err := NewGammaFilter(1.8)
  if err != nil { t.Fatal(err) }
  posterize, err := NewPosterizeFilter(6)
  if err != nil { t.Fatal(err) }
  return []Filter{brightness, contrast, gamma, posterize, NewInvertFilter(), NewLuminosityGrayScaleFilter(),
                  NewEmbossFilter()}
}

func testBuffer() *PixelBuffer {
  buf := NewPixelBuffer(3, 3)
  for i := range buf.Data {
    if (i + 1) % 4 == 0 {
      buf.Data[i] = 255
    } else {
      buf.Data[i] = byte(i * 23 % 256)
    }
  }
  return buf
}

func TestApplyNilBuffer(t *testing.T) {
  for _, f := range allFilters(t) {
    for _, cp := range []bool{false, true} {
      if out := f.Apply(nil, cp); out != nil {
        t.Errorf("%s: Apply(nil, %v) = %v, want nil", f.GetType(), cp, out)
      }
    }
  }
}

func TestApplyInactiveCopy(t *testing.T) {
  for _, f := range allFilters(t) {
    t.Run(string(f.GetType()), func(t *testing.T) {
      f.SetActive(false)
      in := testBuffer()
      out := f.Apply(in, true)
      if out == in {
        t.Fatal("expected a fresh buffer")
      }
      if !out.Equal(in) {
        t.Errorf("pixel data changed: got %v, want %v", out.Data, in.Data)
      }
      if &out.Data[0] == &in.Data[0] {
        t.Error("output shares storage with input")
      }
    })
  }
}

func TestApplyInactiveNoCopy(t *testing.T) {
  for _, f := range allFilters(t) {
    f.SetActive(false)
    in := testBuffer()
    if out := f.Apply(in, false); out != in {
      t.Errorf("%s: expected the input buffer", f.GetType())
    }
  }
}

func TestApplyCopyKeepsSource(t *testing.T) {
  for _, f := range allFilters(t) {
    in := testBuffer()
    orig := in.Copy()
    f.Apply(in, true)
    if !in.Equal(orig) {
      t.Errorf("%s: source modified despite copy", f.GetType())
    }
  }
}

func TestApplyEmptyBuffer(t *testing.T) {
  for _, f := range allFilters(t) {
    in := &PixelBuffer{}
    if out := f.Apply(in, false); out != in {
      t.Errorf("%s: expected empty buffer to pass through", f.GetType())
    }
  }
}

func TestBrightness(t *testing.T) {
  in, err := NewPixelBufferFrom(2, 1, []byte{10, 10, 10, 255, 20, 20, 20, 255})
  if err != nil { t.Fatal(err) }
  f, err := NewBrightnessFilter(10)
  if err != nil { t.Fatal(err) }
  out := f.Apply(in, false)
  want := []byte{20, 20, 20, 255, 30, 30, 30, 255}
  if !bytes.Equal(out.Data, want) {
    t.Errorf("got %v, want %v", out.Data, want)
  }
  if out == in {
    t.Error("value transform filters must return a new buffer")
  }
}

func TestBrightnessClamp(t *testing.T) {
  tests := []struct {
    value float64
    in    byte
    want  byte
  }{
    {255, 200, 255},
    {-255, 40, 0},
    {-10, 5, 0},
    {10, 250, 255},
    {0, 77, 77},
  }
  for _, tt := range tests {
    f, err := NewBrightnessFilter(tt.value)
    if err != nil { t.Fatal(err) }
    out := f.Apply(&PixelBuffer{Width: 1, Height: 1, Data: []byte{tt.in, tt.in, tt.in, 17}}, false)
    want := []byte{tt.want, tt.want, tt.want, 17}
    if !bytes.Equal(out.Data, want) {
      t.Errorf("brightness %v on %d: got %v, want %v", tt.value, tt.in, out.Data, want)
    }
  }
}

func TestContrast(t *testing.T) {
  f, err := NewContrastFilter(0)
  if err != nil { t.Fatal(err) }
  in := testBuffer()
  if out := f.Apply(in, true); !out.Equal(in) {
    t.Errorf("contrast 0 changed pixel data")
  }

  f, err = NewContrastFilter(255)
  if err != nil { t.Fatal(err) }
  out := f.Apply(&PixelBuffer{Width: 1, Height: 1, Data: []byte{100, 128, 160, 255}}, false)
  want := []byte{0, 128, 255, 255}
  if !bytes.Equal(out.Data, want) {
    t.Errorf("got %v, want %v", out.Data, want)
  }
}

func TestInvert(t *testing.T) {
  f := NewInvertFilter()
  out := f.Apply(&PixelBuffer{Width: 1, Height: 1, Data: []byte{0, 100, 255, 50}}, false)
  want := []byte{255, 155, 0, 50}
  if !bytes.Equal(out.Data, want) {
    t.Errorf("got %v, want %v", out.Data, want)
  }
}

func TestLuminosityGrayScale(t *testing.T) {
  f := NewLuminosityGrayScaleFilter()
  out := f.Apply(&PixelBuffer{Width: 2, Height: 1, Data: []byte{255, 255, 255, 9, 100, 0, 0, 255}}, false)
  want := []byte{255, 255, 255, 9, 21, 21, 21, 255}
  if !bytes.Equal(out.Data, want) {
    t.Errorf("got %v, want %v", out.Data, want)
  }
}

func TestValueRange(t *testing.T) {
  tests := []struct {
    name  string
    ctor  func(float64) error
    value float64
    ok    bool
  }{
    {"posterize-1", func(v float64) error { _, err := NewPosterizeFilter(v); return err }, 1, false},
    {"posterize-35", func(v float64) error { _, err := NewPosterizeFilter(v); return err }, 35, false},
    {"posterize-2", func(v float64) error { _, err := NewPosterizeFilter(v); return err }, 2, true},
    {"posterize-30", func(v float64) error { _, err := NewPosterizeFilter(v); return err }, 30, true},
    {"brightness-256", func(v float64) error { _, err := NewBrightnessFilter(v); return err }, 256, false},
    {"contrast--255", func(v float64) error { _, err := NewContrastFilter(v); return err }, -255, true},
    {"gamma-0", func(v float64) error { _, err := NewGammaFilter(v); return err }, 0, false},
  }
  for _, tt := range tests {
    t.Run(tt.name, func(t *testing.T) {
      err := tt.ctor(tt.value)
      if tt.ok {
        if err != nil { t.Fatalf("unexpected error: %v", err) }
        return
      }
      var ve *ValidationError
      if !errors.As(err, &ve) {
        t.Fatalf("expected ValidationError, got %v", err)
      }
      if ve.Attribute != ATTR_VALUE || !errors.Is(err, ErrOutOfRange) {
        t.Errorf("unexpected error details: %+v", ve)
      }
    })
  }
}

func TestSetValueKeepsOldValue(t *testing.T) {
  f, err := NewPosterizeFilter(8)
  if err != nil { t.Fatal(err) }
  if err := f.SetValue(1); err == nil {
    t.Fatal("expected error")
  }
  if f.GetValue() != 8 {
    t.Errorf("value = %v, want 8", f.GetValue())
  }
}

func TestOptions(t *testing.T) {
  f, err := NewBrightnessFilter(0)
  if err != nil { t.Fatal(err) }
  if err := f.SetOption("Value", "42"); err != nil { t.Fatal(err) }
  if v := f.GetOption("value"); v != 42.0 {
    t.Errorf("value = %v, want 42", v)
  }
  if err := f.SetOption("value", "300"); err == nil {
    t.Error("expected range error")
  }
  if err := f.SetOption("active", "0"); err != nil { t.Fatal(err) }
  if f.IsActive() {
    t.Error("filter still active")
  }
  if v := f.GetOption("unknown"); v != nil {
    t.Errorf("unknown option = %v, want nil", v)
  }

  e := NewEmbossFilter()
  if err := e.SetOption("snapshot", "true"); err != nil { t.Fatal(err) }
  if !e.IsSnapshot() {
    t.Error("snapshot not set")
  }
  if err := e.SetOption("snapshot", "maybe"); err == nil {
    t.Error("expected boolean error")
  }
}

func TestVariants(t *testing.T) {
  want := map[FilterType]Variant{
    FilterTypeBrightness:          VariantValueTransform,
    FilterTypeContrast:            VariantValueTransform,
    FilterTypeGamma:               VariantTable,
    FilterTypePosterize:           VariantTable,
    FilterTypeInvert:              VariantPixel,
    FilterTypeLuminosityGrayScale: VariantPixel,
    FilterTypeEmboss:              VariantConvolution,
  }
  for _, f := range allFilters(t) {
    if v := f.GetVariant(); v != want[f.GetType()] {
      t.Errorf("%s: variant = %v, want %v", f.GetType(), v, want[f.GetType()])
    }
    if !f.IsTransforming() {
      t.Errorf("%s: expected transforming filter", f.GetType())
    }
  }
}
