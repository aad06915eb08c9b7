package config
// Parse functionality for JSON structures.

import (
  "bytes"
  "encoding/json"
  "io"
  "strings"

  "github.com/InfinityTools/go-logging"
  "github.com/InfinityTools/pixfilter/filter"
)

// Used internally by json.Unmarshal to store the filter chain. Filters are kept as generic maps so that
// malformed attributes are reported by the filter validation rather than by the JSON parser.
type JsonChainInput struct {
  Filters       []map[string]interface{}
}

// Used by json.Marshal to write a single filter definition.
type JsonFilter struct {
  Type          string      `json:"type"`
  Active        bool        `json:"active"`
  Value         *float64    `json:"value,omitempty"`
  Snapshot      *bool       `json:"snapshot,omitempty"`
}

// Used by json.Marshal to write the filter chain.
type JsonChain struct {
  Filters       []JsonFilter  `json:"filters"`
}


// Used internally. Parses JSON source into filter documents. Both {"filters": [...]} and bare arrays are accepted.
func importJson(buffer []byte) (docs []filter.Document, err error) {
  var items []map[string]interface{}
  trimmed := bytes.TrimSpace(buffer)
  if len(trimmed) > 0 && trimmed[0] == '[' {
    err = json.Unmarshal(trimmed, &items)
  } else {
    input := JsonChainInput{}
    err = json.Unmarshal(trimmed, &input)
    items = input.Filters
  }
  if err != nil { return }

  docs = processConfigJson(items)
  return
}

// Used internally. Converts parsed JSON items into filter documents with normalized attribute names.
func processConfigJson(items []map[string]interface{}) []filter.Document {
  logging.Logln("Processing filter settings")
  docs := make([]filter.Document, len(items))
  for idx, item := range items {
    if item == nil { continue }
    doc := make(filter.Document)
    for key, value := range item {
      doc[strings.ToLower(strings.TrimSpace(key))] = value
    }
    docs[idx] = doc
  }
  return docs
}


// Used internally. Writes filter documents as JSON.
func exportJson(w io.Writer, docs []filter.Document, compact bool) error {
  data := JsonChain{Filters: make([]JsonFilter, 0, len(docs))}
  for _, doc := range docs {
    jf := JsonFilter{Active: true}
    jf.Type, _ = doc.GetString(filter.ATTR_TYPE)
    if b, ok := doc.GetBool(filter.ATTR_ACTIVE); ok { jf.Active = b }
    if v, ok := doc.GetFloat(filter.ATTR_VALUE); ok { jf.Value = &v }
    if b, ok := doc.GetBool(filter.ATTR_SNAPSHOT); ok && b { jf.Snapshot = &b }
    data.Filters = append(data.Filters, jf)
  }

  var buf []byte
  var err error
  if compact {
    buf, err = json.Marshal(data)
  } else {
    buf, err = json.MarshalIndent(data, "", "    ")
  }
  if err != nil { return err }
  _, err = w.Write(buf)
  if err != nil { return err }
  _, err = w.Write([]byte("\n"))
  return err
}
