package palette
// Color reduction of true color frames.

import (
  "errors"
  "fmt"
  "image"
  "image/color"
  "image/draw"

  "github.com/InfinityTools/go-imagequant"
  "github.com/InfinityTools/go-logging"
)

// Options controls the color reduction of true color frames.
type Options struct {
  QualityMin  int     // minimum quality [0, 100]
  QualityMax  int     // maximum quality [0, 100]
  Speed       int     // [1, 10], where 1 is slowest and best
  Dither      float32 // [0.0, 1.0], where 0.0 disables dithering
  SortFlags   int     // see SORT_xxx constants
}

// DefaultOptions returns the default color reduction settings.
func DefaultOptions() Options {
  return Options{QualityMin: 80, QualityMax: 100, Speed: 3, Dither: 0.0, SortFlags: SORT_NONE}
}

// Validate checks whether all settings are within their allowed ranges.
func (o Options) Validate() error {
  if o.QualityMin < 0 || o.QualityMax > 100 || o.QualityMin > o.QualityMax {
    return fmt.Errorf("Quality out of range: %d-%d", o.QualityMin, o.QualityMax)
  }
  if o.Speed < 1 || o.Speed > 10 { return fmt.Errorf("Speed out of range: %d", o.Speed) }
  if o.Dither < 0.0 || o.Dither > 1.0 { return fmt.Errorf("Dither out of range: %v", o.Dither) }
  return nil
}


// Quantize reduces the frames to a shared color table of up to 256 colors. Index 0 of the resulting palette is
// reserved for fully transparent pixels.
func Quantize(frames []image.Image, opts Options) (imgList []*image.Paletted, pal color.Palette, err error) {
  if len(frames) == 0 { return nil, nil, errors.New("No frames specified") }
  if err = opts.Validate(); err != nil { return }

  att := imagequant.CreateAttributes()
  defer att.Release()

  // Initial quantization settings
  err = att.SetMaxColors(MAX_COLORS)
  if err != nil { return }
  err = att.SetQuality(opts.QualityMin, opts.QualityMax)
  if err != nil { return }
  err = att.SetSpeed(opts.Speed)
  if err != nil { return }

  create := func(img image.Image) *imagequant.Image { return att.CreateImage(img, 0.0) }

  // Quantization may fail if minimum quality is too high. Retrying with updated quality settings if needed.
  var qimgList []*imagequant.Image = nil
  var res *imagequant.Result = nil
  for {
    hist := att.CreateHistogram()
    att.AddColorsToHistogram(hist, []imagequant.HistogramEntry{ imagequant.HistogramEntry{Color: color.RGBA{0, 0, 0, 0}, Count: 256} }, 0.0)

    qimgList, err = prepareFrames(frames, create)
    if err != nil { return }
    for _, qimg := range qimgList {
      err = att.AddImageToHistogram(hist, qimg)
      if err != nil { return }
    }

    logging.Logf("Calculating output palette%s\n", logging.ProgressDot(0, 1, 79 - 26))
    res, err = att.QuantizeHistogram(hist)
    if qmin, qmax := att.GetQuality(); err == imagequant.ErrQualityTooLow && qmin > 0 {
      if qspeed := att.GetSpeed(); qspeed > 1 {
        att.SetSpeed(qspeed / 2)
      }
      if qmin >= 5 {
        qmin -= 5
      } else {
        qmin = 0
      }
      att.SetQuality(qmin, qmax)
      logging.Warnf("Quantization failed. Trying again with reduced quality: %d\n", qmin)
    } else {
      break
    }
  }
  if err != nil { return }

  err = att.SetDitheringLevel(res, opts.Dither)
  if err != nil { return }
  palSrc := att.GetPalette(res)
  if len(palSrc) == 0 { return nil, nil, errors.New("Error generating output palette") }

  // transparent entry first, remaining entries sorted
  pal, remap := Sort(palSrc, SORT_NONE, 0)
  if idx := pal.Index(color.RGBA{0, 0, 0, 0}); idx > 0 {
    pal[0], pal[idx] = pal[idx], pal[0]
    remap[0], remap[idx] = idx, 0
  }
  pal, remap = sortRemapped(pal, remap, opts.SortFlags)

  imgList, err = writeFrames(qimgList, func(qimg *imagequant.Image) (image.Image, error) {
    return att.WriteRemappedImage(res, qimg)
  }, pal, remap)
  return
}


// Remap maps the frames to the given color table.
func Remap(frames []image.Image, pal color.Palette, opts Options) (imgList []*image.Paletted, err error) {
  if len(frames) == 0 { return nil, errors.New("No frames specified") }
  if len(pal) == 0 || len(pal) > MAX_COLORS { return nil, fmt.Errorf("Invalid palette size: %d", len(pal)) }
  if opts.Dither < 0.0 || opts.Dither > 1.0 { return nil, fmt.Errorf("Dither out of range: %v", opts.Dither) }

  att := imagequant.CreateAttributes()
  defer att.Release()

  err = att.SetMaxColors(len(pal))
  if err != nil { return }
  err = att.SetQuality(0, 100)  // Setting minquality to 0 to ensure a successful quantization
  if err != nil { return }

  hist := att.CreateHistogram()
  histEntries := make([]imagequant.HistogramEntry, len(pal))
  for i := range pal {
    histEntries[i] = imagequant.HistogramEntry{Color: pal[i], Count: 256}
  }
  att.AddColorsToHistogram(hist, histEntries, 0.0)

  qimgList, err := prepareFrames(frames, func(img image.Image) *imagequant.Image { return att.CreateImage(img, 0.0) })
  if err != nil { return }

  res, err := att.QuantizeHistogram(hist)
  if err != nil { return }
  err = att.SetDitheringLevel(res, opts.Dither)
  if err != nil { return }

  // Reordering generated palette to match external palette
  palSrc := att.GetPalette(res)
  if len(palSrc) == 0 { return nil, errors.New("Error generating output palette") }
  remap := make([]int, len(palSrc))
  for i, col := range palSrc {
    remap[i] = pal.Index(col)
  }

  palOut := make(color.Palette, len(pal))
  copy(palOut, pal)
  return writeFrames(qimgList, func(qimg *imagequant.Image) (image.Image, error) {
    return att.WriteRemappedImage(res, qimg)
  }, palOut, remap)
}


// Used internally. Creates quantization images for all frames.
func prepareFrames(frames []image.Image, create func(img image.Image) *imagequant.Image) ([]*imagequant.Image, error) {
  logging.Log("Preparing input frames")
  qimgList := make([]*imagequant.Image, len(frames))
  for i, img := range frames {
    logging.LogProgressDot(i, len(frames), 79-22)  // 22 is length of prefixed string
    if img == nil { logging.Logln(""); return nil, fmt.Errorf("Input frame #%d: no pixel data", i) }
    qimgList[i] = create(img)
    if qimgList[i] == nil { logging.Logln(""); return nil, fmt.Errorf("Unable to process input frame #%d", i) }
  }
  logging.OverridePrefix(false, false, false).Logln("")
  return qimgList, nil
}

// Used internally. Writes the remapped output frames with palette indices translated by remap.
func writeFrames(qimgList []*imagequant.Image, write func(qimg *imagequant.Image) (image.Image, error),
                 pal color.Palette, remap []int) ([]*image.Paletted, error) {
  logging.Log("Generating output frames")
  imgList := make([]*image.Paletted, len(qimgList))
  for i, qimg := range qimgList {
    logging.LogProgressDot(i, len(qimgList), 79-24)  // 24 is length of prefixed string
    img, err := write(qimg)
    if err != nil { logging.Logln(""); return nil, err }
    imgList[i] = remapImage(img, pal, remap)
  }
  logging.OverridePrefix(false, false, false).Logln("")
  return imgList, nil
}

// Used internally. Translates the palette indices of img and assigns the palette.
func remapImage(img image.Image, pal color.Palette, remap []int) *image.Paletted {
  imgPal, ok := img.(*image.Paletted)
  if !ok {
    // not expected, but the colors can still be matched directly
    out := image.NewPaletted(img.Bounds(), pal)
    draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
    return out
  }

  for i, px := range imgPal.Pix {
    if int(px) < len(remap) && remap[px] >= 0 { imgPal.Pix[i] = byte(remap[px]) }
  }
  imgPal.Palette = pal
  return imgPal
}

// Used internally. Sorts the palette, leaving the transparent entry at index 0 in place, and updates remap.
func sortRemapped(pal color.Palette, remap []int, sortFlags int) (color.Palette, []int) {
  if sortFlags & 0xff == SORT_NONE { return pal, remap }
  palOut, order := Sort(pal, sortFlags, 1)
  for i := range remap {
    remap[i] = order[remap[i]]
  }
  return palOut, remap
}
