package filter

import (
  "bytes"
  "testing"
)

func TestChainApply(t *testing.T) {
  b1, err := NewBrightnessFilter(10)
  if err != nil { t.Fatal(err) }
  b2, err := NewBrightnessFilter(100)
  if err != nil { t.Fatal(err) }
  b2.SetActive(false)
  inv := NewInvertFilter()
  chain := NewChain(b1, b2, inv)

  in := &PixelBuffer{Width: 2, Height: 1, Data: []byte{10, 10, 10, 255, 20, 20, 20, 255}}
  out := chain.Apply(in, true)
  want := []byte{235, 235, 235, 255, 225, 225, 225, 255}
  if !bytes.Equal(out.Data, want) {
    t.Errorf("got %v, want %v", out.Data, want)
  }
  if !bytes.Equal(in.Data, []byte{10, 10, 10, 255, 20, 20, 20, 255}) {
    t.Error("source modified")
  }
  if chain.Apply(nil, true) != nil {
    t.Error("Apply(nil) should be nil")
  }
}

func TestChainApplyAllInactive(t *testing.T) {
  f := NewInvertFilter()
  f.SetActive(false)
  chain := NewChain(f)
  in := testBuffer()
  out := chain.Apply(in, true)
  if out == in || !out.Equal(in) {
    t.Error("expected an identical copy")
  }
  if out := chain.Apply(in, false); out != in {
    t.Error("expected the input buffer")
  }
}

func TestChainOrder(t *testing.T) {
  p, err := NewPosterizeFilter(2)
  if err != nil { t.Fatal(err) }
  b, err := NewBrightnessFilter(100)
  if err != nil { t.Fatal(err) }
  in := &PixelBuffer{Width: 1, Height: 1, Data: []byte{60, 60, 60, 255}}

  // posterize first: 60 -> 0 -> 100
  out := NewChain(p, b).Apply(in, true)
  if out.Data[0] != 100 {
    t.Errorf("posterize, brightness: got %d, want 100", out.Data[0])
  }
  // brightness first: 60 -> 160 -> 255
  out = NewChain(b, p).Apply(in, true)
  if out.Data[0] != 255 {
    t.Errorf("brightness, posterize: got %d, want 255", out.Data[0])
  }
}

func TestChainEditing(t *testing.T) {
  chain := NewChain()
  if idx := chain.Add(NewInvertFilter()); idx != 0 {
    t.Errorf("Add returned %d", idx)
  }
  if idx := chain.Add(nil); idx != -1 {
    t.Errorf("Add(nil) returned %d", idx)
  }
  if err := chain.Insert(0, NewEmbossFilter()); err != nil { t.Fatal(err) }
  if err := chain.Insert(2, NewLuminosityGrayScaleFilter()); err != nil { t.Fatal(err) }
  if err := chain.Insert(5, NewInvertFilter()); err == nil {
    t.Error("expected out of bounds error")
  }
  want := []FilterType{FilterTypeEmboss, FilterTypeInvert, FilterTypeLuminosityGrayScale}
  for i, ft := range want {
    if chain.Get(i).GetType() != ft {
      t.Errorf("filter %d: %s, want %s", i, chain.Get(i).GetType(), ft)
    }
  }
  if err := chain.Delete(1); err != nil { t.Fatal(err) }
  if err := chain.Set(0, NewInvertFilter()); err != nil { t.Fatal(err) }
  if chain.Len() != 2 || chain.Get(0).GetType() != FilterTypeInvert || chain.Get(2) != nil {
    t.Errorf("unexpected chain: %v", chain.Filters())
  }
  if err := chain.Delete(2); err == nil {
    t.Error("expected out of bounds error")
  }
}

func TestChainApplyAll(t *testing.T) {
  p, err := NewPosterizeFilter(6)
  if err != nil { t.Fatal(err) }
  b, err := NewBrightnessFilter(-20)
  if err != nil { t.Fatal(err) }
  chain := NewChain(b, p, NewEmbossFilter())

  bufs := make([]*PixelBuffer, 8)
  for i := range bufs {
    bufs[i] = testBuffer()
    bufs[i].Data[0] = byte(i * 30)
  }
  want := make([]*PixelBuffer, len(bufs))
  for i := range bufs {
    want[i] = chain.Apply(bufs[i], true)
  }

  for _, threaded := range []bool{false, true} {
    old := GetMultiThreaded()
    SetMultiThreaded(threaded)
    out, err := chain.ApplyAll(bufs, true)
    SetMultiThreaded(old)
    if err != nil { t.Fatal(err) }
    if len(out) != len(bufs) {
      t.Fatalf("got %d results", len(out))
    }
    for i := range out {
      if !out[i].Equal(want[i]) {
        t.Errorf("threaded=%v, buffer %d: got %v, want %v", threaded, i, out[i].Data, want[i].Data)
      }
    }
  }
}
