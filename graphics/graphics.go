/*
Package graphics loads single- or multi-image graphics resources into pixel buffers and writes pixel buffers back
as image files.

PixFilter is released under the BSD 2-clause license. See LICENSE in the project's root folder for more details.
*/
package graphics

import (
  "bytes"
  "errors"
  "fmt"
  "image"
  "image/color"
  "image/draw"
  "image/gif"
  "image/jpeg"
  "image/png"
  "io"
  "strings"

  "github.com/InfinityTools/go-logging"
  "github.com/InfinityTools/pixfilter/filter"
  "github.com/InfinityTools/pixfilter/palette"
  "golang.org/x/image/bmp"
)

// Can be used to identifiy the imported or exported image format
const (
  TYPE_UNKNOWN = -1
  TYPE_BMP  = iota
  TYPE_GIF
  TYPE_JPG
  TYPE_PNG
)

// Default frame delay for animated GIF output, in 100ths of a second.
const DEFAULT_DELAY = 10

// The main graphics structure.
type Graphics struct {
  frames  []*filter.PixelBuffer // one or more frames imported from the graphics resource
  delays  []int                 // GIF frame delays, in 100ths of a second
  format  int                   // see TYPE_xxx constants
  quant   palette.Options       // color reduction for GIF output
  pal     color.Palette         // optional fixed color table for GIF output
  err     error
}


// Import imports a graphics resources pointed to by the ReadSeeker interface.
//
// Use function Error() to check if Import returned successfully.
func Import(rs io.ReadSeeker) *Graphics {
  g := Graphics{frames: make([]*filter.PixelBuffer, 0), format: TYPE_UNKNOWN, quant: palette.DefaultOptions(), err: nil}
  if rs == nil { g.err = errors.New("No source specified"); return &g }

  (&g).importImage(rs)

  return &g
}

// New creates a Graphics object from the given pixel buffers. delays is optional and only used for GIF output.
func New(frames []*filter.PixelBuffer, delays []int) *Graphics {
  g := Graphics{frames: make([]*filter.PixelBuffer, 0, len(frames)), format: TYPE_UNKNOWN, quant: palette.DefaultOptions(),
                err: nil}
  for _, buf := range frames {
    if buf != nil { g.frames = append(g.frames, buf) }
  }
  if len(g.frames) == 0 { g.err = errors.New("No frames specified") }
  if delays != nil { g.delays = append(g.delays, delays...) }
  return &g
}


// Error returns the error state of the most recent operation on the Graphics. Use ClearError() function to clear the
// current error state.
func (g *Graphics) Error() error {
  return g.err
}


// ClearError clears the error state from the last Graphics operation. This function must be called for subsequent
// operations to work correctly.
func (g *Graphics) ClearError() {
  g.err = nil
}


// GetImageLength returns the number of available images.
func (g *Graphics) GetImageLength() int {
  if g.err != nil { return 0 }

  return len(g.frames)
}


// GetImageType returns the format of the imported image. See TYPE_xxx constants.
func (g *Graphics) GetImageType() int {
  if g.err != nil { return TYPE_UNKNOWN }
  return g.format
}


// GetBuffer returns the pixel buffer at the specified index.
//
// For BMP, JPG and PNG only index=0 is valid. GIF may contain multiple images.
func (g *Graphics) GetBuffer(index int) *filter.PixelBuffer {
  if g.err != nil { return nil }
  if index < 0 || index >= g.GetImageLength() { return nil }
  return g.frames[index]
}

// GetBuffers returns all pixel buffers.
func (g *Graphics) GetBuffers() []*filter.PixelBuffer {
  if g.err != nil { return nil }
  ret := make([]*filter.PixelBuffer, len(g.frames))
  copy(ret, g.frames)
  return ret
}

// SetBuffers replaces the pixel buffers by the given list, which must contain the same number of buffers.
func (g *Graphics) SetBuffers(frames []*filter.PixelBuffer) error {
  if g.err != nil { return g.err }
  if len(frames) != len(g.frames) {
    return fmt.Errorf("Frame count mismatch: %d, expected %d", len(frames), len(g.frames))
  }
  for idx, buf := range frames {
    if buf == nil { return fmt.Errorf("Frame %d: no pixel data", idx) }
  }
  copy(g.frames, frames)
  return nil
}

// GetDelay returns the delay of the specified frame in 100ths of a second. Only meaningful for animated GIFs.
func (g *Graphics) GetDelay(index int) int {
  if index < 0 || index >= len(g.delays) { return DEFAULT_DELAY }
  return g.delays[index]
}


// SetQuantization defines how true color frames are reduced to 256 colors for GIF output.
func (g *Graphics) SetQuantization(opts palette.Options) {
  if g.err != nil { return }
  if err := opts.Validate(); err != nil { g.err = err; return }
  g.quant = opts
}

// SetPalette defines a fixed color table for GIF output. Specify nil to generate an optimized color table instead.
func (g *Graphics) SetPalette(pal color.Palette) {
  if g.err != nil { return }
  if len(pal) > palette.MAX_COLORS { g.err = fmt.Errorf("Too many palette entries: %d", len(pal)); return }
  if len(pal) == 0 { g.pal = nil; return }
  g.pal = make(color.Palette, len(pal))
  copy(g.pal, pal)
}


// Export writes the graphics in the specified format to the Writer. Formats other than GIF can store only a single
// image, which is specified by index.
//
// Use function Error() to check if Export returned successfully.
func (g *Graphics) Export(w io.Writer, format, index int) {
  if g.err != nil { return }
  if w == nil { g.err = errors.New("No target specified"); return }

  switch format {
    case TYPE_GIF:
      g.exportImageGIF(w)
    case TYPE_BMP, TYPE_JPG, TYPE_PNG:
      buf := g.GetBuffer(index)
      if buf == nil { g.err = fmt.Errorf("Frame index out of range: %d", index); return }
      img := buf.ToImage()
      if format == TYPE_BMP {
        g.err = bmp.Encode(w, img)
      } else if format == TYPE_JPG {
        g.err = jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
      } else {
        g.err = png.Encode(w, img)
      }
    default:
      g.err = fmt.Errorf("Unsupported output format: %d", format)
  }
}


// ParseType returns the TYPE_xxx constant for the given format name or file extension. Returns TYPE_UNKNOWN if the
// format is not supported.
func ParseType(name string) int {
  switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), ".") {
    case "bmp":         return TYPE_BMP
    case "gif":         return TYPE_GIF
    case "jpg", "jpeg": return TYPE_JPG
    case "png":         return TYPE_PNG
    default:            return TYPE_UNKNOWN
  }
}

// TypeExtension returns the default file extension of the given format type, without dot.
func TypeExtension(format int) string {
  switch format {
    case TYPE_BMP:  return "bmp"
    case TYPE_GIF:  return "gif"
    case TYPE_JPG:  return "jpg"
    case TYPE_PNG:  return "png"
    default:        return ""
  }
}


// Used internally. Delegates import to more specialized functions.
func (g *Graphics) importImage(rs io.ReadSeeker) {
  hdr := make([]byte, 4)
  _, err := io.ReadFull(rs, hdr)
  if err != nil { g.err = err; return }
  _, err = rs.Seek(0, io.SeekStart)
  if err != nil { g.err = err; return }

  if string(hdr[:2]) == "BM" {
    g.importSingle(rs, bmp.Decode, TYPE_BMP)
  } else if string(hdr[:3]) == "GIF" {
    g.importImageGIF(rs)
  } else if bytes.Equal(hdr[:3], []byte{0xff, 0xd8, 0xff}) {
    g.importSingle(rs, jpeg.Decode, TYPE_JPG)
  } else if string(hdr[1:4]) == "PNG" {
    g.importSingle(rs, png.Decode, TYPE_PNG)
  } else {
    // unsupported
    g.err = errors.New("Unrecognized input format")
  }
}


// Used internally. Imports a single-image resource with the given decoder.
func (g *Graphics) importSingle(r io.Reader, decode func(io.Reader) (image.Image, error), format int) {
  img, err := decode(r)
  if err != nil { g.err = err; return }
  g.frames = []*filter.PixelBuffer{filter.FromImage(img)}
  g.format = format
}


// Used internally. Imports a GIF resource. Frames are rendered onto the global canvas as a viewer would display them.
func (g *Graphics) importImageGIF(r io.Reader) {
  data, err := gif.DecodeAll(r)
  if err != nil { g.err = err; return }

  isAnim := len(data.Image) > 1
  if isAnim { logging.Log("Decoding GIF frames") }
  numFrames := len(data.Image)
  g.frames = make([]*filter.PixelBuffer, numFrames)
  g.delays = make([]int, numFrames)
  copy(g.delays, data.Delay)

  // Creating master image with global canvas size for all frames
  imgMain := image.NewNRGBA(image.Rect(0, 0, data.Config.Width, data.Config.Height))

  for idx := 0; idx < numFrames; idx++ {
    imgCur := data.Image[idx]
    mode := byte(0)
    if idx < len(data.Disposal) { mode = data.Disposal[idx] }

    // Backing up current frame content for later
    var imgBackup *image.NRGBA = nil
    if mode == gif.DisposalPrevious {
      imgBackup = image.NewNRGBA(imgMain.Bounds())
      draw.Draw(imgBackup, imgBackup.Bounds(), imgMain, image.Point{}, draw.Src)
    }

    // Rendering frame
    draw.Draw(imgMain, imgCur.Bounds(), imgCur, imgCur.Bounds().Min, draw.Over)
    g.frames[idx] = filter.FromImage(imgMain)

    // Cleaning up frame
    switch mode {
      case gif.DisposalBackground:
        // Restore current frame region to background color
        draw.Draw(imgMain, imgCur.Bounds(), image.Transparent, image.Point{}, draw.Src)
      case gif.DisposalPrevious:
        // Restore content of previous frame
        draw.Draw(imgMain, imgMain.Bounds(), imgBackup, image.Point{}, draw.Src)
      default:  // Don't clear content from previous frame(s)
    }

    if isAnim { logging.LogProgressDot(idx, numFrames, 79 - 19) }  // 19 is length of prefixed string
  }
  if isAnim { logging.OverridePrefix(false, false, false).Logln("") }

  g.format = TYPE_GIF
}


// Used internally. Exports all frames as GIF. Frames are reduced to a shared color table.
func (g *Graphics) exportImageGIF(w io.Writer) {
  imgList := make([]image.Image, len(g.frames))
  for idx, buf := range g.frames {
    imgList[idx] = buf.ToImage()
  }

  var frames []*image.Paletted
  var err error
  if g.pal != nil {
    frames, err = palette.Remap(imgList, g.pal, g.quant)
  } else {
    frames, _, err = palette.Quantize(imgList, g.quant)
  }
  if err != nil { g.err = err; return }

  anim := gif.GIF{Image: frames, Delay: make([]int, len(frames))}
  if len(frames) > 1 {
    anim.Disposal = make([]byte, len(frames))
    for idx := range frames {
      anim.Delay[idx] = g.GetDelay(idx)
      anim.Disposal[idx] = gif.DisposalBackground
    }
  }
  g.err = gif.EncodeAll(w, &anim)
}
