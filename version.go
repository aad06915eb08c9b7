/*
Package pixfilter provides definitions that are shared by the pixfilter packages and tools.

PixFilter is released under the BSD 2-clause license. See LICENSE in the project's root folder for more details.
*/
package pixfilter

import (
  "fmt"
  "io"
  "os"
  "runtime"
)

// Version number of the whole pixfilter package.
const (
  VERSION_MAJOR = 0
  VERSION_MINOR = 1
  VERSION_PATCH = 0
)

// Version returns the version string of the pixfilter package.
func Version() string {
  return fmt.Sprintf("%d.%d.%d", VERSION_MAJOR, VERSION_MINOR, VERSION_PATCH)
}

// PrintVersion prints the current version of the pixfilter package to standard output,
// prefixed by the specified tool name.
func PrintVersion(toolName string) {
  FprintVersion(os.Stdout, toolName)
}

// FprintVersion writes the version information to w, prefixed by the specified tool name.
func FprintVersion(w io.Writer, toolName string) {
  fmt.Fprintf(w, "%s version %s (binary: %s, %s)\n", toolName, Version(), runtime.GOOS, runtime.GOARCH)
}
