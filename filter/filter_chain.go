package filter
// Provides ordered filter chains.

import (
  "fmt"
  "runtime"
  "sync"

  "github.com/InfinityTools/go-logging"
  "github.com/pbenner/threadpool"
)

var multithreaded bool = runtime.NumCPU() > 1

// GetMultiThreaded returns whether multithreading should be used for batch operations.
func GetMultiThreaded() bool {
  return multithreaded
}

// SetMultiThreaded sets whether multithreading should be used for batch operations.
func SetMultiThreaded(set bool) {
  multithreaded = set
}


// Chain is an ordered sequence of filters. The same filter type may occur multiple times.
type Chain struct {
  filters []Filter
}

// NewChain creates a chain with the given filters.
func NewChain(filters ...Filter) *Chain {
  c := Chain{filters: make([]Filter, 0, len(filters))}
  for _, f := range filters {
    if f != nil { c.filters = append(c.filters, f) }
  }
  return &c
}

// Len returns the number of filters in the chain.
func (c *Chain) Len() int {
  return len(c.filters)
}

// Get returns the filter at the specified index. Returns nil if index is out of bounds.
func (c *Chain) Get(index int) Filter {
  if index < 0 || index >= len(c.filters) { return nil }
  return c.filters[index]
}

// Set replaces the filter at the specified index.
func (c *Chain) Set(index int, filter Filter) error {
  if index < 0 || index >= len(c.filters) { return fmt.Errorf("filter index out of bounds: %d", index) }
  if filter == nil { return fmt.Errorf("no filter specified") }
  c.filters[index] = filter
  return nil
}

// Insert inserts a filter at the specified index. Use index == Len() to append.
func (c *Chain) Insert(index int, filter Filter) error {
  if index < 0 || index > len(c.filters) { return fmt.Errorf("filter index out of bounds: %d", index) }
  if filter == nil { return fmt.Errorf("no filter specified") }
  c.filters = append(c.filters, nil)
  copy(c.filters[index+1:], c.filters[index:])
  c.filters[index] = filter
  return nil
}

// Delete removes the filter at the specified index.
func (c *Chain) Delete(index int) error {
  if index < 0 || index >= len(c.filters) { return fmt.Errorf("filter index out of bounds: %d", index) }
  c.filters = append(c.filters[:index], c.filters[index+1:]...)
  return nil
}

// Add appends a filter and returns its index. Returns -1 if filter is nil.
func (c *Chain) Add(filter Filter) int {
  if filter == nil { return -1 }
  c.filters = append(c.filters, filter)
  return len(c.filters) - 1
}

// Filters returns a copy of the filter list.
func (c *Chain) Filters() []Filter {
  ret := make([]Filter, len(c.filters))
  copy(ret, c.filters)
  return ret
}

// Apply runs all active filters on buf in order and returns the result. Set copyFirst to leave buf untouched;
// subsequent filters operate on the chain-owned intermediate buffer.
func (c *Chain) Apply(buf *PixelBuffer, copyFirst bool) *PixelBuffer {
  if buf == nil { return nil }
  out := buf
  if copyFirst { out = buf.Copy() }
  for idx, f := range c.filters {
    if !f.IsActive() { continue }
    logging.Logf("Applying filter #%d (%s)\n", idx, f.GetType())
    out = f.Apply(out, false)
  }
  return out
}

// ApplyAll runs the chain on each buffer independently and returns the results in the same order.
// Buffers are distributed over multiple threads if multithreading is enabled.
func (c *Chain) ApplyAll(bufs []*PixelBuffer, copyFirst bool) (out []*PixelBuffer, err error) {
  out = make([]*PixelBuffer, len(bufs))
  if len(bufs) == 0 { return }
  msg := fmt.Sprintf("Applying filter chain to %d buffers", len(bufs))
  logging.Log(msg)

  if GetMultiThreaded() && len(bufs) > 1 {
    // lookup tables are built up front, workers only read them
    c.prime()
    pool := threadpool.NewThreadPool(runtime.NumCPU(), len(bufs))
    g := pool.NewJobGroup()
    var m sync.Mutex
    counter := 0
    for bufIdx, inBuf := range bufs {
      idx := bufIdx
      buf := inBuf
      err = pool.AddJob(g, func(pool threadpool.ThreadPool, erf func() error) error {
        if erf() != nil { return nil }
        res := c.Apply(buf, copyFirst)
        func() {
          m.Lock()
          defer m.Unlock()
          out[idx] = res
          logging.LogProgressDot(counter, len(bufs), 79 - len(msg))
          counter++
        }()
        return nil
      })
      if err != nil { break }
    }
    if err2 := pool.Wait(g); err2 != nil && err == nil { err = err2 }
    pool.Stop()
    logging.OverridePrefix(false, false, false).Logln("")
    if err != nil { err = fmt.Errorf("Filter chain: %v", err) }
    return
  }

  for idx, buf := range bufs {
    out[idx] = c.Apply(buf, copyFirst)
    logging.LogProgressDot(idx, len(bufs), 79 - len(msg))
  }
  logging.OverridePrefix(false, false, false).Logln("")
  return
}

// Used internally. Builds the lookup tables of all active table filters.
func (c *Chain) prime() {
  for _, f := range c.filters {
    if tf, ok := f.(*TableFilter); ok && tf.IsActive() { tf.Table() }
  }
}
