package filter

import (
  "testing"
)

func TestPosterizeTable(t *testing.T) {
  f, err := NewPosterizeFilter(6)
  if err != nil { t.Fatal(err) }
  table := f.Table()
  if v := table.At(0); v != 0 {
    t.Errorf("table[0] = %d, want 0", v)
  }
  if v := table.At(255); v != 255 {
    t.Errorf("table[255] = %d, want 255", v)
  }
  entries := table.Entries()
  for i := 1; i < 256; i++ {
    if entries[i] < entries[i-1] {
      t.Fatalf("table not monotonic at %d: %d < %d", i, entries[i], entries[i-1])
    }
  }
  if entries[42] != 0 || entries[43] != 51 {
    t.Errorf("unexpected step boundary: table[42] = %d, table[43] = %d", entries[42], entries[43])
  }

  levels := make(map[int]bool)
  for _, v := range entries { levels[v] = true }
  if len(levels) != 6 {
    t.Errorf("got %d distinct levels, want 6", len(levels))
  }
}

func TestPosterizeBoundaries(t *testing.T) {
  for _, value := range []float64{2, 3, 6, 16, 30} {
    f, err := NewPosterizeFilter(value)
    if err != nil { t.Fatal(err) }
    entries := f.Table().Entries()
    if entries[0] != 0 || entries[255] != 255 {
      t.Errorf("value %v: table[0] = %d, table[255] = %d", value, entries[0], entries[255])
    }
  }
}

func TestTableMemoization(t *testing.T) {
  f, err := NewPosterizeFilter(6)
  if err != nil { t.Fatal(err) }
  in := testBuffer()
  out1 := f.Apply(in, true)
  out2 := f.Apply(in, true)
  if f.cache.builds != 1 {
    t.Errorf("table built %d times, want 1", f.cache.builds)
  }
  if !out1.Equal(out2) {
    t.Error("outputs differ for identical input")
  }

  if err := f.SetValue(6); err != nil { t.Fatal(err) }
  f.Apply(in, true)
  if f.cache.builds != 1 {
    t.Errorf("table rebuilt for unchanged value: %d builds", f.cache.builds)
  }

  if err := f.SetValue(4); err != nil { t.Fatal(err) }
  f.Apply(in, true)
  if f.cache.builds != 2 {
    t.Errorf("table built %d times after value change, want 2", f.cache.builds)
  }
}

func TestTableApplyInPlace(t *testing.T) {
  f, err := NewPosterizeFilter(2)
  if err != nil { t.Fatal(err) }
  in := &PixelBuffer{Width: 2, Height: 1, Data: []byte{10, 127, 128, 40, 250, 0, 255, 255}}
  out := f.Apply(in, false)
  if out != in {
    t.Fatal("table filters operate in place")
  }
  want := []byte{0, 0, 255, 40, 255, 0, 255, 255}
  for i := range want {
    if out.Data[i] != want[i] {
      t.Fatalf("got %v, want %v", out.Data, want)
    }
  }
}

func TestGammaIdentity(t *testing.T) {
  f, err := NewGammaFilter(1)
  if err != nil { t.Fatal(err) }
  entries := f.Table().Entries()
  for i, v := range entries {
    if v != i {
      t.Fatalf("table[%d] = %d, want %d", i, v, i)
    }
  }

  f, err = NewGammaFilter(2.2)
  if err != nil { t.Fatal(err) }
  entries = f.Table().Entries()
  if entries[0] != 0 || entries[255] != 255 || entries[128] <= 128 {
    t.Errorf("unexpected gamma table: [0]=%d [128]=%d [255]=%d", entries[0], entries[128], entries[255])
  }
}

func TestApplyTableClamps(t *testing.T) {
  var e [256]int
  for i := range e { e[i] = i * 2 - 100 }
  data := []byte{0, 100, 200, 7}
  ApplyTable(data, NewFilterTable(e), len(data))
  want := []byte{0, 100, 255, 7}
  for i := range want {
    if data[i] != want[i] {
      t.Fatalf("got %v, want %v", data, want)
    }
  }
}
