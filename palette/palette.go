/*
Package palette loads color tables from graphics or palette files and reduces true color frames to a shared color
table for paletted output formats.

PixFilter is released under the BSD 2-clause license. See LICENSE in the project's root folder for more details.
*/
package palette

import (
  "encoding/binary"
  "errors"
  "image"
  "image/color"
  "image/gif"
  "image/png"
  "io"

  "golang.org/x/image/bmp"
)

// Maximum number of entries in a color table.
const MAX_COLORS = 256


// Import imports the color table from the graphics or palette file pointed to by the ReadSeeker parameter.
// Supported are paletted BMP, GIF and PNG files, Windows Palette (RIFF) and Adobe Color Table files.
//
// Returns a palette on success, or a non-nil error value otherwise.
func Import(rs io.ReadSeeker) (color.Palette, error) {
  if rs == nil { return nil, errors.New("No source specified") }

  hdr := make([]byte, 4)
  _, err := io.ReadFull(rs, hdr)
  if err != nil { return nil, err }
  _, err = rs.Seek(0, io.SeekStart)
  if err != nil { return nil, err }

  switch {
    case string(hdr[:2]) == "BM":
      return importImagePalette(rs, bmp.DecodeConfig, bmp.Decode)
    case string(hdr[:3]) == "GIF":
      return importImagePalette(rs, gif.DecodeConfig, gif.Decode)
    case string(hdr[1:4]) == "PNG":
      return importImagePalette(rs, png.DecodeConfig, png.Decode)
    case string(hdr) == "RIFF":
      return importPalettePAL(rs)
    default:
      // assume Adobe Color Table
      return importPaletteACT(rs)
  }
}


// Used internally. Returns the global color table of a graphics file, or the palette of its first image.
func importImagePalette(rs io.ReadSeeker, decodeConfig func(io.Reader) (image.Config, error),
                        decode func(io.Reader) (image.Image, error)) (color.Palette, error) {
  cfg, err := decodeConfig(rs)
  if err != nil { return nil, err }
  if pal, ok := cfg.ColorModel.(color.Palette); ok && len(pal) > 0 {
    return clonePalette(pal), nil
  }

  _, err = rs.Seek(0, io.SeekStart)
  if err != nil { return nil, err }
  img, err := decode(rs)
  if err != nil { return nil, err }
  if imgPal, ok := img.(*image.Paletted); ok && len(imgPal.Palette) > 0 {
    return clonePalette(imgPal.Palette), nil
  }
  return nil, errors.New("No palette data available")
}

// Used internally. Imports a Windows Palette.
func importPalettePAL(rs io.ReadSeeker) (color.Palette, error) {
  hdr := make([]byte, 12)
  _, err := io.ReadFull(rs, hdr)
  if err != nil { return nil, err }
  if string(hdr[8:]) != "PAL " { return nil, errors.New("Not a Windows Palette file") }

  // looking for palette data chunk
  for {
    _, err = io.ReadFull(rs, hdr[:8])
    if err == io.EOF || err == io.ErrUnexpectedEOF { return nil, errors.New("No palette data found") }
    if err != nil { return nil, err }
    if string(hdr[:4]) == "data" { break }
    size := int64(binary.LittleEndian.Uint32(hdr[4:]))
    _, err := rs.Seek(size + size & 1, io.SeekCurrent)   // chunks are word-aligned
    if err != nil { return nil, err }
  }

  size := int(binary.LittleEndian.Uint32(hdr[4:]))
  if size < 4 { return nil, errors.New("Invalid palette file") }
  _, err = io.ReadFull(rs, hdr[:4])   // version and number of entries
  if err != nil { return nil, err }
  numCols := int(binary.LittleEndian.Uint16(hdr[2:]))
  if numCols > MAX_COLORS { numCols = MAX_COLORS }
  if size - 4 < numCols * 4 { return nil, errors.New("Corrupted palette header") }

  buf := make([]byte, numCols * 4)
  _, err = io.ReadFull(rs, buf)
  if err != nil { return nil, err }

  pal := make(color.Palette, numCols)
  for i := range pal {
    pal[i] = color.NRGBA{buf[i*4], buf[i*4+1], buf[i*4+2], 255}
  }
  return pal, nil
}

// Used internally. Imports an Adobe Color Table. The extended variant defines the number of colors and an optional
// transparent entry.
func importPaletteACT(rs io.ReadSeeker) (color.Palette, error) {
  size, err := rs.Seek(0, io.SeekEnd)
  if err != nil { return nil, err }
  if size != 768 && size != 772 {
    return nil, errors.New("Unrecognized graphics or palette file format")
  }
  _, err = rs.Seek(0, io.SeekStart)
  if err != nil { return nil, err }

  buf := make([]byte, int(size))
  _, err = io.ReadFull(rs, buf)
  if err != nil { return nil, err }

  numCols, transIndex := MAX_COLORS, -1
  if len(buf) == 772 {
    numCols = int(binary.BigEndian.Uint16(buf[768:]))
    if numCols == 0 || numCols > MAX_COLORS { numCols = MAX_COLORS }
    if idx := binary.BigEndian.Uint16(buf[770:]); idx != 0xffff { transIndex = int(idx) }
  }

  pal := make(color.Palette, numCols)
  for i := range pal {
    if i == transIndex {
      pal[i] = color.NRGBA{}
    } else {
      pal[i] = color.NRGBA{buf[i*3], buf[i*3+1], buf[i*3+2], 255}
    }
  }
  return pal, nil
}


// Used internally. Returns a copy of the palette.
func clonePalette(pal color.Palette) color.Palette {
  ret := make(color.Palette, len(pal))
  copy(ret, pal)
  return ret
}
