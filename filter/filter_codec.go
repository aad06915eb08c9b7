package filter
// Translates filters from and into structured documents.

import (
  "encoding/json"
  "fmt"
  "sort"
  "strings"

  "github.com/InfinityTools/go-logging"
)

// Attribute names of filter documents.
const (
  ATTR_TYPE     = "type"
  ATTR_ACTIVE   = OPTION_ACTIVE
  ATTR_VALUE    = OPTION_VALUE
  ATTR_SNAPSHOT = OPTION_SNAPSHOT
)

// Common suffix of all built-in filter types.
const TYPE_SUFFIX = "ImageDataFilterType"

// Document is the structured representation of a single filter.
type Document map[string]interface{}

// GetString returns the attribute as string. Returns false if the attribute is missing or not a string.
func (d Document) GetString(key string) (string, bool) {
  switch v := d[key].(type) {
    case string:      return v, len(v) > 0
    case FilterType:  return string(v), len(v) > 0
  }
  return "", false
}

// GetFloat returns the attribute as number. Returns false if the attribute is missing or not numeric.
func (d Document) GetFloat(key string) (float64, bool) {
  v, ok := d[key]
  if !ok || isEmpty(v) { return 0, false }
  f, err := toFloat(v)
  return f, err == nil
}

// GetBool returns the attribute as boolean. Returns false as second value if the attribute is missing or not
// a boolean.
func (d Document) GetBool(key string) (bool, bool) {
  v, ok := d[key]
  if !ok || isEmpty(v) { return false, false }
  b, err := toBool(v)
  return b, err == nil
}

// AttributeKind defines the accepted content of a filter attribute.
type AttributeKind int

const (
  AttributeNumber AttributeKind = iota
  AttributeBool
)

// Attribute declares a filter-specific document attribute.
type Attribute struct {
  Name      string
  Kind      AttributeKind
  Required  bool
  Min, Max  float64   // numeric bounds, ignored if Min == Max
  Ref       float64   // default value
}

// Factory validates filter documents of a single filter type and constructs the filters.
type Factory struct {
  ftype   FilterType
  attrs   []Attribute
  create  func(doc Document, ctx *ValidationContext) (Filter, error)
}

// Registry maps filter types to their factories.
type Registry struct {
  factories map[FilterType]*Factory
  types     []FilterType
}


func newFactory(ftype FilterType, attrs []Attribute,
                create func(doc Document, ctx *ValidationContext) (Filter, error)) *Factory {
  return &Factory{ftype: ftype, attrs: attrs, create: create}
}

// newValueFactory creates a factory for filters with a required numeric "value" attribute.
func newValueFactory(ftype FilterType, rng valueRange, ctor func(value float64) (Filter, error)) *Factory {
  attrs := []Attribute{{Name: ATTR_VALUE, Kind: AttributeNumber, Required: true, Min: rng.min, Max: rng.max, Ref: rng.ref}}
  return newFactory(ftype, attrs, func(doc Document, ctx *ValidationContext) (Filter, error) {
    v, err := toFloat(doc[ATTR_VALUE])
    if err != nil { return nil, err }
    f, err := ctor(v)
    if err != nil { return nil, err }
    return f, nil
  })
}

// GetType returns the filter type handled by the factory.
func (fac *Factory) GetType() FilterType { return fac.ftype }

// Attributes returns the filter-specific attributes declared by the factory.
func (fac *Factory) Attributes() []Attribute {
  ret := make([]Attribute, len(fac.attrs))
  copy(ret, fac.attrs)
  return ret
}

// Create validates the document and constructs a filter from it. All problems are recorded in ctx.
// Returns the first validation error if the document is invalid.
func (fac *Factory) Create(doc Document, ctx *ValidationContext) (Filter, error) {
  if ctx == nil { ctx = NewValidationContext() }
  if doc == nil {
    return nil, ctx.AddError(&ValidationError{Err: ErrMissingAttribute, Attribute: ATTR_TYPE, Constraint: "empty document"})
  }

  errs := make([]*ValidationError, 0)
  active := true
  if v, ok := doc[ATTR_ACTIVE]; ok && !isEmpty(v) {
    b, err := toBool(v)
    if err != nil {
      errs = append(errs, ctx.AddError(&ValidationError{Attribute: ATTR_ACTIVE, Constraint: err.Error(),
                                                         Err: ErrInvalidAttribute}))
    }
    active = b
  }

  known := map[string]bool{ATTR_TYPE: true, ATTR_ACTIVE: true}
  for _, attr := range fac.attrs {
    known[attr.Name] = true
    v, ok := doc[attr.Name]
    if !ok || isEmpty(v) {
      if attr.Required {
        errs = append(errs, ctx.AddError(&ValidationError{Attribute: attr.Name, Err: ErrMissingAttribute}))
      }
      continue
    }
    switch attr.Kind {
      case AttributeNumber:
        n, err := toFloat(v)
        if err != nil {
          errs = append(errs, ctx.AddError(&ValidationError{Attribute: attr.Name, Constraint: err.Error(),
                                                             Err: ErrInvalidAttribute}))
        } else if attr.Min != attr.Max && (n != n || n < attr.Min || n > attr.Max) {
          errs = append(errs, ctx.AddError(&ValidationError{Attribute: attr.Name, Err: ErrOutOfRange,
                                                             Constraint: fmt.Sprintf("not in range [%v, %v]: %v", attr.Min, attr.Max, n)}))
        }
      case AttributeBool:
        if _, err := toBool(v); err != nil {
          errs = append(errs, ctx.AddError(&ValidationError{Attribute: attr.Name, Constraint: err.Error(),
                                                             Err: ErrInvalidAttribute}))
        }
    }
  }
  if len(errs) > 0 { return nil, errs[0] }

  // unknown attributes are ignored to stay compatible with documents from newer versions
  keys := make([]string, 0)
  for key := range doc {
    if !known[key] { keys = append(keys, key) }
  }
  sort.Strings(keys)
  for _, key := range keys {
    w := ctx.AddWarning(&ValidationError{Attribute: key, Constraint: "ignored", Err: ErrInvalidAttribute})
    logging.Warnf("%v\n", w)
  }

  f, err := fac.create(doc, ctx)
  if err != nil { return nil, ctx.AddError(err) }
  f.SetActive(active)
  return f, nil
}


// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
  return &Registry{factories: make(map[FilterType]*Factory), types: make([]FilterType, 0)}
}

// NewDefaultRegistry creates a registry with all built-in filter types.
func NewDefaultRegistry() *Registry {
  r := NewRegistry()
  for _, fac := range []*Factory{
    newBrightnessFactory(),
    newContrastFactory(),
    newGammaFactory(),
    newPosterizeFactory(),
    newInvertFactory(),
    newLuminosityGrayScaleFactory(),
    newEmbossFactory(),
  } {
    if err := r.Register(fac); err != nil { panic(err) }
  }
  return r
}

// Register adds the factory to the registry. Each filter type can be registered only once.
func (r *Registry) Register(fac *Factory) error {
  if fac == nil { return fmt.Errorf("no factory specified") }
  if _, ok := r.factories[fac.ftype]; ok { return fmt.Errorf("filter type already registered: %s", fac.ftype) }
  r.factories[fac.ftype] = fac
  r.types = append(r.types, fac.ftype)
  return nil
}

// Lookup returns the factory of the given filter type.
func (r *Registry) Lookup(ftype FilterType) (*Factory, bool) {
  fac, ok := r.factories[ftype]
  return fac, ok
}

// Len returns the number of registered filter types.
func (r *Registry) Len() int {
  return len(r.types)
}

// Types returns all registered filter types in order of registration.
func (r *Registry) Types() []FilterType {
  ret := make([]FilterType, len(r.types))
  copy(ret, r.types)
  return ret
}

// Resolve returns the registered filter type matching name. Matching is case-insensitive and the common type suffix
// "ImageDataFilterType" may be omitted.
func (r *Registry) Resolve(name string) (FilterType, bool) {
  name = strings.ToLower(strings.TrimSpace(name))
  if len(name) == 0 { return "", false }
  for _, ftype := range r.types {
    full := strings.ToLower(string(ftype))
    if name == full || name == strings.TrimSuffix(full, strings.ToLower(TYPE_SUFFIX)) { return ftype, true }
  }
  return "", false
}

// Create creates a new filter of the given type, initialized with default values.
func (r *Registry) Create(ftype FilterType) (Filter, error) {
  fac, ok := r.Lookup(ftype)
  if !ok { return nil, &ValidationError{Attribute: ATTR_TYPE, Constraint: string(ftype), Err: ErrUnknownFilterType} }
  doc := Document{ATTR_TYPE: string(ftype)}
  for _, attr := range fac.attrs {
    if attr.Required { doc[attr.Name] = attr.Ref }
  }
  return fac.Create(doc, nil)
}

// Decode validates the document and constructs the filter it describes. Problems are recorded in ctx, which may
// be nil.
func (r *Registry) Decode(doc Document, ctx *ValidationContext) (Filter, error) {
  if ctx == nil { ctx = NewValidationContext() }
  ftype, err := documentType(doc)
  if err != nil { return nil, ctx.AddError(err) }
  fac, ok := r.Lookup(ftype)
  if !ok {
    return nil, ctx.AddError(&ValidationError{Attribute: ATTR_TYPE, Constraint: string(ftype), Err: ErrUnknownFilterType})
  }
  return fac.Create(doc, ctx)
}

// DecodeChain decodes a sequence of filter documents in order. Documents of unknown filter types are skipped
// with a warning. Any other validation problem aborts decoding.
func (r *Registry) DecodeChain(docs []Document, ctx *ValidationContext) (*Chain, error) {
  if ctx == nil { ctx = NewValidationContext() }
  chain := NewChain()
  for idx, doc := range docs {
    ctx.Push(fmt.Sprintf("filters[%d]", idx))
    ftype, err := documentType(doc)
    if err == nil {
      if _, ok := r.Lookup(ftype); !ok {
        ctx.AddWarning(&ValidationError{Attribute: ATTR_TYPE, Constraint: string(ftype), Err: ErrUnknownFilterType})
        logging.Warnf("Filter #%d: Unknown filter type %q. Skipping...\n", idx, ftype)
        ctx.Pop()
        continue
      }
    }
    f, err := r.Decode(doc, ctx)
    ctx.Pop()
    if err != nil { return nil, fmt.Errorf("Filter #%d: %w", idx, err) }
    chain.Add(f)
  }
  return chain, nil
}


// Encode returns the document representation of the filter.
func Encode(f Filter) Document {
  if f == nil { return nil }
  doc := Document{ATTR_TYPE: string(f.GetType()), ATTR_ACTIVE: f.IsActive()}
  switch f.GetVariant() {
    case VariantValueTransform, VariantTable:
      if vf, ok := f.(ValueFilter); ok { doc[ATTR_VALUE] = vf.GetValue() }
    case VariantConvolution:
      if ef, ok := f.(*EmbossFilter); ok && ef.IsSnapshot() { doc[ATTR_SNAPSHOT] = true }
  }
  return doc
}

// EncodeChain returns the document representations of all filters in the chain, in order.
func EncodeChain(c *Chain) []Document {
  if c == nil { return nil }
  docs := make([]Document, 0, c.Len())
  for _, f := range c.filters {
    docs = append(docs, Encode(f))
  }
  return docs
}


// Used internally. Returns the filter type of the document.
func documentType(doc Document) (FilterType, error) {
  if doc == nil {
    return "", &ValidationError{Attribute: ATTR_TYPE, Constraint: "empty document", Err: ErrMissingAttribute}
  }
  switch v := doc[ATTR_TYPE].(type) {
    case string:
      if len(v) > 0 { return FilterType(v), nil }
    case FilterType:
      if len(v) > 0 { return v, nil }
    case nil:
    default:
      return "", &ValidationError{Attribute: ATTR_TYPE, Constraint: fmt.Sprintf("not a string: %v", v),
                                  Err: ErrInvalidAttribute}
  }
  return "", &ValidationError{Attribute: ATTR_TYPE, Err: ErrMissingAttribute}
}

// Used internally. Returns whether v represents an omitted attribute.
func isEmpty(v interface{}) bool {
  if v == nil { return true }
  if s, ok := v.(string); ok { return len(s) == 0 }
  return false
}

// Used internally. Converts numeric document values of various types into float64.
func toFloat(v interface{}) (float64, error) {
  switch n := v.(type) {
    case float64:     return n, nil
    case float32:     return float64(n), nil
    case int:         return float64(n), nil
    case int32:       return float64(n), nil
    case int64:       return float64(n), nil
    case uint:        return float64(n), nil
    case uint32:      return float64(n), nil
    case uint64:      return float64(n), nil
    case json.Number: return n.Float64()
    case string:      return parseFloat(n)
    default:          return 0, fmt.Errorf("not a number: %v", v)
  }
}

// Used internally. Converts boolean document values into bool.
func toBool(v interface{}) (bool, error) {
  switch b := v.(type) {
    case bool:    return b, nil
    case string:  return parseBool(b)
    default:      return false, fmt.Errorf("not a boolean: %v", v)
  }
}
