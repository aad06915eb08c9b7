/*
Package config translates filter chain configurations from XML or JSON structures into filter documents and
back.

PixFilter is released under the BSD 2-clause license. See LICENSE in the project's root folder for more details.
*/
package config

import (
  "bytes"
  "errors"
  "fmt"
  "io"
  "strings"

  "github.com/InfinityTools/go-logging"
  "github.com/InfinityTools/pixfilter/filter"
)

// Available configuration formats
const (
  FORMAT_XML  = "xml"
  FORMAT_JSON = "json"
)


// ImportChain reads filter documents from the configuration data provided by the Reader. The format is determined
// by the first non-whitespace character of the data.
func ImportChain(r io.Reader) (docs []filter.Document, err error) {
  if r == nil { return nil, errors.New("Configuration: No source specified") }
  logging.Logln("Loading configuration data")
  buffer, err := io.ReadAll(r)
  if err != nil { return }

  format, err := detectFormat(buffer)
  if err != nil { return }

  // parsing source into filter documents
  if format == FORMAT_XML {
    docs, err = importXml(buffer)
  } else {
    docs, err = importJson(buffer)
  }
  if err != nil { return }

  logging.Logf("Finished loading configuration data: %d filter(s)\n", len(docs))
  return
}

// LoadChain reads configuration data from the Reader and decodes the filter chain it describes.
// Validation problems are recorded in ctx, which may be nil.
func LoadChain(r io.Reader, reg *filter.Registry, ctx *filter.ValidationContext) (*filter.Chain, error) {
  if reg == nil { return nil, errors.New("Configuration: No filter registry specified") }
  docs, err := ImportChain(r)
  if err != nil { return nil, err }
  logging.Logln("Validating filter chain")
  chain, err := reg.DecodeChain(docs, ctx)
  if err != nil { return nil, fmt.Errorf("Configuration: %w", err) }
  return chain, nil
}

// ExportChain writes the filter documents in the specified format. Set compact to omit indentation and line breaks.
func ExportChain(w io.Writer, docs []filter.Document, format string, compact bool) error {
  if w == nil { return errors.New("Configuration: No target specified") }
  switch strings.ToLower(format) {
    case FORMAT_XML:  return exportXml(w, docs, compact)
    case FORMAT_JSON: return exportJson(w, docs, compact)
    default:          return fmt.Errorf("Configuration: Unsupported format %q", format)
  }
}

// SaveChain writes the documents of all filters in the chain in the specified format.
func SaveChain(w io.Writer, chain *filter.Chain, format string, compact bool) error {
  return ExportChain(w, filter.EncodeChain(chain), format, compact)
}


// Used internally. Determines the configuration format of the buffer content.
func detectFormat(buffer []byte) (string, error) {
  whiteSpace := []byte{0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x20}
  for ofs := 0; ofs < len(buffer); ofs++ {
    if bytes.IndexByte(whiteSpace, buffer[ofs]) < 0 {
      switch buffer[ofs] {
        case '<':       return FORMAT_XML, nil
        case '{', '[':  return FORMAT_JSON, nil
        default:        return "", errors.New("Configuration: Unrecognized format")
      }
    }
  }
  return "", errors.New("Configuration: No data found")
}
