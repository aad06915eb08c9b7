package pixfilter

import (
  "bytes"
  "runtime"
  "strings"
  "testing"
)

func TestFprintVersion(t *testing.T) {
  var buf bytes.Buffer
  FprintVersion(&buf, "PixFilter")
  want := "PixFilter version " + Version() + " (binary: " + runtime.GOOS + ", " + runtime.GOARCH + ")\n"
  if buf.String() != want {
    t.Errorf("got %q, want %q", buf.String(), want)
  }
  if strings.Count(Version(), ".") != 2 {
    t.Errorf("unexpected version format: %s", Version())
  }
}
