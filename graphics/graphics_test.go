package graphics

import (
  "bytes"
  "image"
  "image/color"
  "image/gif"
  "testing"

  "github.com/InfinityTools/pixfilter/filter"
  "github.com/InfinityTools/pixfilter/palette"
)

// closeTo returns whether both buffers have equal dimensions and all channels differ by at most tolerance.
func closeTo(a, b *filter.PixelBuffer, tolerance int) bool {
  if a == nil || b == nil || a.Width != b.Width || a.Height != b.Height || len(a.Data) != len(b.Data) { return false }
  for i := range a.Data {
    d := int(a.Data[i]) - int(b.Data[i])
    if d < -tolerance || d > tolerance { return false }
  }
  return true
}

// testFrame returns a small opaque buffer that uses only colors of the web-safe palette.
func testFrame(seed int) *filter.PixelBuffer {
  buf := filter.NewPixelBuffer(4, 3)
  for i := 0; i < len(buf.Data); i += 4 {
    buf.Data[i] = byte(((i / 4 + seed) % 6) * 51)
    buf.Data[i+1] = byte(((i / 4 + 2 * seed) % 6) * 51)
    buf.Data[i+2] = byte(((i / 4) % 3) * 102)
    buf.Data[i+3] = 255
  }
  return buf
}

func TestExportImportRoundTrip(t *testing.T) {
  tests := []struct {
    name    string
    format  int
  }{
    {"bmp", TYPE_BMP},
    {"png", TYPE_PNG},
  }
  for _, tt := range tests {
    t.Run(tt.name, func(t *testing.T) {
      frame := testFrame(1)
      var out bytes.Buffer
      g := New([]*filter.PixelBuffer{frame}, nil)
      g.Export(&out, tt.format, 0)
      if g.Error() != nil { t.Fatal(g.Error()) }

      in := Import(bytes.NewReader(out.Bytes()))
      if in.Error() != nil { t.Fatal(in.Error()) }
      if in.GetImageType() != tt.format {
        t.Errorf("type = %d, want %d", in.GetImageType(), tt.format)
      }
      if in.GetImageLength() != 1 {
        t.Fatalf("got %d frames", in.GetImageLength())
      }
      if got := in.GetBuffer(0); !got.Equal(frame) {
        t.Errorf("pixel data differs:\ngot  %v\nwant %v", got.Data, frame.Data)
      }
    })
  }
}

func TestExportJpeg(t *testing.T) {
  var out bytes.Buffer
  g := New([]*filter.PixelBuffer{testFrame(2)}, nil)
  g.Export(&out, TYPE_JPG, 0)
  if g.Error() != nil { t.Fatal(g.Error()) }
  in := Import(bytes.NewReader(out.Bytes()))
  if in.Error() != nil { t.Fatal(in.Error()) }
  if buf := in.GetBuffer(0); in.GetImageType() != TYPE_JPG || buf.Width != 4 || buf.Height != 3 {
    t.Errorf("unexpected result: type=%d buffer=%dx%d", in.GetImageType(), buf.Width, buf.Height)
  }
}

func TestAnimatedGif(t *testing.T) {
  frames := []*filter.PixelBuffer{testFrame(0), testFrame(1), testFrame(2)}
  var out bytes.Buffer
  g := New(frames, []int{5, 20, 40})
  opts := palette.DefaultOptions()
  opts.SortFlags = palette.SORT_LIGHTNESS
  g.SetQuantization(opts)
  g.Export(&out, TYPE_GIF, 0)
  if g.Error() != nil { t.Fatal(g.Error()) }

  in := Import(bytes.NewReader(out.Bytes()))
  if in.Error() != nil { t.Fatal(in.Error()) }
  if in.GetImageLength() != len(frames) {
    t.Fatalf("got %d frames, want %d", in.GetImageLength(), len(frames))
  }
  for idx, frame := range frames {
    if !closeTo(in.GetBuffer(idx), frame, 8) {
      t.Errorf("frame %d differs:\ngot  %v\nwant %v", idx, in.GetBuffer(idx).Data, frame.Data)
    }
  }
  if in.GetDelay(1) != 20 || in.GetDelay(5) != DEFAULT_DELAY {
    t.Errorf("unexpected delays: %d, %d", in.GetDelay(1), in.GetDelay(5))
  }
}

func TestGifFixedPalette(t *testing.T) {
  frame := testFrame(1)
  pal := make(color.Palette, 0, 216)
  for r := 0; r < 6; r++ {
    for gr := 0; gr < 6; gr++ {
      for b := 0; b < 6; b++ {
        pal = append(pal, color.NRGBA{byte(r * 51), byte(gr * 51), byte(b * 51), 255})
      }
    }
  }
  g := New([]*filter.PixelBuffer{frame}, nil)
  g.SetPalette(pal)
  var out bytes.Buffer
  g.Export(&out, TYPE_GIF, 0)
  if g.Error() != nil { t.Fatal(g.Error()) }

  in := Import(bytes.NewReader(out.Bytes()))
  if in.Error() != nil { t.Fatal(in.Error()) }
  if in.GetImageType() != TYPE_GIF || !closeTo(in.GetBuffer(0), frame, 8) {
    t.Errorf("got %v, want %v", in.GetBuffer(0).Data, frame.Data)
  }

  g.SetPalette(make(color.Palette, 300))
  if g.Error() == nil {
    t.Error("expected error for oversized palette")
  }
}

func TestGifDisposal(t *testing.T) {
  pal := color.Palette{color.Transparent, color.NRGBA{255, 0, 0, 255}, color.NRGBA{0, 0, 255, 255}}
  full := image.NewPaletted(image.Rect(0, 0, 2, 1), pal)
  full.Pix[0], full.Pix[1] = 1, 1
  part := image.NewPaletted(image.Rect(1, 0, 2, 1), pal)
  part.Pix[0] = 2
  clear := image.NewPaletted(image.Rect(1, 0, 2, 1), pal)
  anim := gif.GIF{
    Image:    []*image.Paletted{full, part, clear},
    Delay:    []int{0, 0, 0},
    Disposal: []byte{gif.DisposalNone, gif.DisposalBackground, gif.DisposalNone},
    Config:   image.Config{ColorModel: pal, Width: 2, Height: 1},
  }
  var out bytes.Buffer
  if err := gif.EncodeAll(&out, &anim); err != nil { t.Fatal(err) }

  g := Import(bytes.NewReader(out.Bytes()))
  if g.Error() != nil { t.Fatal(g.Error()) }
  want := [][]byte{
    {255, 0, 0, 255, 255, 0, 0, 255},
    {255, 0, 0, 255, 0, 0, 255, 255},
    // second frame region was cleared before drawing the transparent third frame
    {255, 0, 0, 255, 0, 0, 0, 0},
  }
  for idx := range want {
    if got := g.GetBuffer(idx).Data; !bytes.Equal(got, want[idx]) {
      t.Errorf("frame %d: got %v, want %v", idx, got, want[idx])
    }
  }
}

func TestImportErrors(t *testing.T) {
  if g := Import(nil); g.Error() == nil || g.GetImageLength() != 0 || g.GetImageType() != TYPE_UNKNOWN {
    t.Error("expected error for missing source")
  }
  if g := Import(bytes.NewReader([]byte("RIFF0000WEBP"))); g.Error() == nil {
    t.Error("expected error for unsupported format")
  }
  if g := Import(bytes.NewReader([]byte("BM"))); g.Error() == nil {
    t.Error("expected error for truncated data")
  }
}

func TestExportErrors(t *testing.T) {
  var out bytes.Buffer
  g := New([]*filter.PixelBuffer{testFrame(0)}, nil)
  g.Export(&out, TYPE_PNG, 1)
  if g.Error() == nil { t.Error("expected index error") }
  g.ClearError()
  g.Export(&out, TYPE_UNKNOWN, 0)
  if g.Error() == nil { t.Error("expected format error") }
  if g := New(nil, nil); g.Error() == nil {
    t.Error("expected error for empty frame list")
  }
}

func TestSetBuffers(t *testing.T) {
  g := New([]*filter.PixelBuffer{testFrame(0), testFrame(1)}, nil)
  if err := g.SetBuffers([]*filter.PixelBuffer{testFrame(2)}); err == nil {
    t.Error("expected count mismatch")
  }
  if err := g.SetBuffers([]*filter.PixelBuffer{testFrame(2), nil}); err == nil {
    t.Error("expected error for nil buffer")
  }
  repl := []*filter.PixelBuffer{testFrame(3), testFrame(4)}
  if err := g.SetBuffers(repl); err != nil { t.Fatal(err) }
  if g.GetBuffers()[1] != repl[1] {
    t.Error("buffers not replaced")
  }
}

func TestParseType(t *testing.T) {
  tests := map[string]int{"png": TYPE_PNG, ".BMP": TYPE_BMP, " gif ": TYPE_GIF, "jpeg": TYPE_JPG, "tga": TYPE_UNKNOWN}
  for name, want := range tests {
    if got := ParseType(name); got != want {
      t.Errorf("ParseType(%q) = %d, want %d", name, got, want)
    }
  }
  if TypeExtension(TYPE_JPG) != "jpg" || TypeExtension(TYPE_UNKNOWN) != "" {
    t.Error("unexpected extensions")
  }
}

func TestSetQuantization(t *testing.T) {
  g := New([]*filter.PixelBuffer{testFrame(0)}, nil)
  g.SetQuantization(palette.Options{QualityMin: 0, QualityMax: 100, Speed: 11})
  if g.Error() == nil {
    t.Error("expected error for invalid speed")
  }
}
