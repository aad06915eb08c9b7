package config
// Parse functionality for XML structures.

import (
  "encoding/xml"
  "io"
  "strconv"
  "strings"

  "github.com/InfinityTools/go-logging"
  "github.com/InfinityTools/pixfilter/filter"
)

// Used internally by xml.Unmarshal to store filter attributes without a dedicated field.
type XmlAttribute struct {
  XMLName       xml.Name
  Value         string      `xml:",chardata"`
}

// Used by xml.Unmarshal and xml.Marshal to store a single filter definition.
type XmlFilter struct {
  Type          string          `xml:"type"`
  Active        string          `xml:"active,omitempty"`
  Value         string          `xml:"value,omitempty"`
  Snapshot      string          `xml:"snapshot,omitempty"`
  Extra         []XmlAttribute  `xml:",any"`
}

// Used by xml.Unmarshal and xml.Marshal to store the filter chain.
type XmlChain struct {
  XMLName       xml.Name        `xml:"chain"`
  Filters       []XmlFilter     `xml:"filter"`
}


// Used internally. Parses XML source into filter documents.
func importXml(buffer []byte) (docs []filter.Document, err error) {
  xmlChain := XmlChain{}
  err = xml.Unmarshal(buffer, &xmlChain)
  if err != nil { return }

  docs = processConfigXml(&xmlChain)
  return
}

// Used internally. Converts parsed XML input into filter documents. Empty elements are treated as omitted.
func processConfigXml(input *XmlChain) []filter.Document {
  logging.Logln("Processing filter settings")
  docs := make([]filter.Document, len(input.Filters))
  for idx, xf := range input.Filters {
    doc := make(filter.Document)
    setText(doc, filter.ATTR_TYPE, xf.Type)
    setText(doc, filter.ATTR_ACTIVE, xf.Active)
    setText(doc, filter.ATTR_VALUE, xf.Value)
    setText(doc, filter.ATTR_SNAPSHOT, xf.Snapshot)
    for _, extra := range xf.Extra {
      setText(doc, strings.ToLower(extra.XMLName.Local), extra.Value)
    }
    docs[idx] = doc
  }
  return docs
}

// Used internally. Writes filter documents as XML.
func exportXml(w io.Writer, docs []filter.Document, compact bool) error {
  data := XmlChain{Filters: make([]XmlFilter, 0, len(docs))}
  for _, doc := range docs {
    xf := XmlFilter{Active: "true"}
    xf.Type, _ = doc.GetString(filter.ATTR_TYPE)
    if b, ok := doc.GetBool(filter.ATTR_ACTIVE); ok { xf.Active = strconv.FormatBool(b) }
    if v, ok := doc.GetFloat(filter.ATTR_VALUE); ok { xf.Value = strconv.FormatFloat(v, 'g', -1, 64) }
    if b, ok := doc.GetBool(filter.ATTR_SNAPSHOT); ok && b { xf.Snapshot = "true" }
    data.Filters = append(data.Filters, xf)
  }

  var buf []byte
  var err error
  if compact {
    buf, err = xml.Marshal(data)
  } else {
    buf, err = xml.MarshalIndent(data, "", "    ")
  }
  if err != nil { return err }

  _, err = w.Write([]byte(xml.Header))
  if err != nil { return err }
  _, err = w.Write(buf)
  if err != nil { return err }
  _, err = w.Write([]byte("\n"))
  return err
}

// Used internally. Adds the trimmed text to the document if it is not empty.
func setText(doc filter.Document, key, value string) {
  value = strings.TrimSpace(value)
  if len(key) > 0 && len(value) > 0 { doc[key] = value }
}
