package filter
// Provides lookup tables for table-based filters.

// FilterTable is an immutable lookup table that maps input channel values to output channel values.
type FilterTable struct {
  entries [256]int
}

// NewFilterTable creates a table from the given entries.
func NewFilterTable(entries [256]int) *FilterTable {
  return &FilterTable{entries: entries}
}

// At returns the table entry for the given channel value.
func (t *FilterTable) At(i byte) int {
  return t.entries[i]
}

// Entries returns a copy of all table entries.
func (t *FilterTable) Entries() [256]int {
  return t.entries
}


// tableCache holds the table built for the most recently seen filter value.
type tableCache struct {
  value   float64
  table   *FilterTable
  builds  int     // number of table constructions
}

// get returns the cached table for value, rebuilding it only if value differs from the last one seen.
func (c *tableCache) get(value float64, build func(value float64) *FilterTable) *FilterTable {
  if c.table == nil || c.value != value {
    c.table = build(value)
    c.value = value
    c.builds++
  }
  return c.table
}
