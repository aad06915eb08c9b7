package palette
// Orders color tables by a color characteristic.

import (
  "fmt"
  "image/color"
  "math"
  "sort"
  "strings"
)

// Available sort types and flags.
const (
  SORT_NONE = iota
  SORT_LIGHTNESS
  SORT_SATURATION
  SORT_HUE
  SORT_RED
  SORT_GREEN
  SORT_BLUE
  SORT_ALPHA

  // Sort colors in reversed order
  SORT_REVERSED = 0x100
)

// Suffix of sort names that reverses the sort order.
const SORT_SUFFIX_REVERSED = "_reversed"

var sortNames = []string{"none", "lightness", "saturation", "hue", "red", "green", "blue", "alpha"}


// ParseSort returns the sort flags for names like "hue" or "lightness_reversed".
func ParseSort(name string) (int, error) {
  name = strings.ToLower(strings.TrimSpace(name))
  flags := 0
  if strings.HasSuffix(name, SORT_SUFFIX_REVERSED) {
    flags |= SORT_REVERSED
    name = strings.TrimSuffix(name, SORT_SUFFIX_REVERSED)
  }
  for idx, s := range sortNames {
    if s == name { return flags | idx, nil }
  }
  return 0, fmt.Errorf("Unknown sort type: %q", name)
}


// Sort returns a copy of pal where entries at startIndex and higher are ordered by the characteristic defined in
// sortFlags. The second return value maps each original palette index to its new position.
func Sort(pal color.Palette, sortFlags, startIndex int) (color.Palette, []int) {
  if startIndex < 0 { startIndex = 0 }
  order := make([]int, len(pal))
  for i := range order { order[i] = i }

  key := sortKey(sortFlags & 0xff)
  if key != nil && startIndex < len(pal) {
    region := order[startIndex:]
    values := make([]float64, len(pal))
    for i, col := range pal { values[i] = key(col) }
    reversed := sortFlags & SORT_REVERSED != 0
    sort.SliceStable(region, func(i, j int) bool {
      if reversed { return values[region[i]] > values[region[j]] }
      return values[region[i]] < values[region[j]]
    })
  }

  palOut := make(color.Palette, len(pal))
  remap := make([]int, len(pal))
  for newIdx, oldIdx := range order {
    palOut[newIdx] = pal[oldIdx]
    remap[oldIdx] = newIdx
  }
  return palOut, remap
}


// Used internally. Returns the function that calculates the sort value of a color, or nil to keep the order.
func sortKey(stype int) func(color.Color) float64 {
  switch stype {
    case SORT_LIGHTNESS:  return lightness
    case SORT_SATURATION: return saturation
    case SORT_HUE:        return hue
    case SORT_RED:        return func(c color.Color) float64 { r, _, _, _ := normalize(c); return r }
    case SORT_GREEN:      return func(c color.Color) float64 { _, g, _, _ := normalize(c); return g }
    case SORT_BLUE:       return func(c color.Color) float64 { _, _, b, _ := normalize(c); return b }
    case SORT_ALPHA:      return func(c color.Color) float64 { _, _, _, a := normalize(c); return a }
    default:              return nil
  }
}

// Perceived lightness in range [0.0, 1.0]
func lightness(col color.Color) float64 {
  r, g, b, _ := normalize(col)
  return math.Sqrt(0.299*r*r + 0.587*g*g + 0.114*b*b)
}

// HSL saturation in range [0.0, 1.0]
func saturation(col color.Color) float64 {
  r, g, b, _ := normalize(col)
  cmin, cmax := math.Min(r, math.Min(g, b)), math.Max(r, math.Max(g, b))
  l := (cmin + cmax) / 2.0
  if cmax == cmin || l <= 0.0 || l >= 1.0 { return 0.0 }
  return (cmax - cmin) / (1.0 - math.Abs(2.0*l - 1.0))
}

// Hue in range [0.0, 1.0)
func hue(col color.Color) float64 {
  r, g, b, _ := normalize(col)
  cmin, cmax := math.Min(r, math.Min(g, b)), math.Max(r, math.Max(g, b))
  delta := cmax - cmin
  if delta == 0.0 { return 0.0 }
  var h float64
  switch cmax {
    case r:   h = math.Mod((g - b) / delta + 6.0, 6.0)
    case g:   h = (b - r) / delta + 2.0
    default:  h = (r - g) / delta + 4.0
  }
  return h / 6.0
}

// Returns non-premultiplied color components in range [0.0, 1.0].
func normalize(col color.Color) (r, g, b, a float64) {
  c := color.NRGBAModel.Convert(col).(color.NRGBA)
  return float64(c.R) / 255.0, float64(c.G) / 255.0, float64(c.B) / 255.0, float64(c.A) / 255.0
}
