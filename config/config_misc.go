package config

import (
  "fmt"
  "path/filepath"
  "strings"
)

// AssembleFilePath assembles the output file path for the given source file. The file is placed in dir, or next to
// the source file if dir is empty, and gets the extension ext. A non-negative index is appended to the base name,
// zero-padded to indexWidth digits.
func AssembleFilePath(dir, source, suffix, ext string, index, indexWidth int) string {
  if len(dir) == 0 { dir = filepath.Dir(source) }
  for len(dir) > 1 && (dir[len(dir)-1:] == "/" || dir[len(dir)-1:] == "\\") { dir = dir[:len(dir)-1] }

  base := filepath.Base(source)
  base = strings.TrimSuffix(base, filepath.Ext(base))
  if len(suffix) > 0 { base += suffix }

  if index >= 0 {
    if indexWidth < 0 { indexWidth = 0 }
    base += fmt.Sprintf("-%0*d", indexWidth, index)
  }
  if len(ext) > 0 && ext[:1] != "." { ext = "." + ext }

  return filepath.Join(dir, base + ext)
}
