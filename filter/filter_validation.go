package filter
// Provides validation support for decoding filter documents.

import (
  "errors"
  "fmt"
  "strings"
)

var (
  ErrUnknownFilterType  = errors.New("unknown filter type")
  ErrMissingAttribute   = errors.New("missing required attribute")
  ErrInvalidAttribute   = errors.New("invalid attribute")
  ErrOutOfRange         = errors.New("value out of range")
)

// ValidationError describes a configuration problem of a single filter attribute.
type ValidationError struct {
  Path        string    // location of the filter document, e.g. "filters[2]"
  Attribute   string
  Constraint  string
  Err         error     // one of the ErrXxx values
}

func (e *ValidationError) Error() string {
  var sb strings.Builder
  if len(e.Path) > 0 {
    sb.WriteString(e.Path)
    sb.WriteString(": ")
  }
  if len(e.Attribute) > 0 {
    sb.WriteString(fmt.Sprintf("attribute %q: ", e.Attribute))
  }
  if e.Err != nil {
    sb.WriteString(e.Err.Error())
  } else {
    sb.WriteString("validation failed")
  }
  if len(e.Constraint) > 0 {
    sb.WriteString(" (")
    sb.WriteString(e.Constraint)
    sb.WriteString(")")
  }
  return sb.String()
}

func (e *ValidationError) Unwrap() error { return e.Err }


// ValidationContext collects errors and warnings while filter documents are decoded.
type ValidationContext struct {
  path      []string
  errors    []*ValidationError
  warnings  []*ValidationError
}

// NewValidationContext creates an empty context.
func NewValidationContext() *ValidationContext {
  return &ValidationContext{path: make([]string, 0), errors: make([]*ValidationError, 0),
                            warnings: make([]*ValidationError, 0)}
}

// Push enters a nested location.
func (ctx *ValidationContext) Push(name string) {
  ctx.path = append(ctx.path, name)
}

// Pop leaves the current location.
func (ctx *ValidationContext) Pop() {
  if len(ctx.path) > 0 { ctx.path = ctx.path[:len(ctx.path)-1] }
}

// Path returns the current location as a dotted string.
func (ctx *ValidationContext) Path() string {
  return strings.Join(ctx.path, ".")
}

// AddError records the error. Errors that are not ValidationErrors are wrapped. Returns the recorded error.
func (ctx *ValidationContext) AddError(err error) *ValidationError {
  ve := ctx.wrap(err)
  ctx.errors = append(ctx.errors, ve)
  return ve
}

// AddWarning records a problem that did not prevent decoding.
func (ctx *ValidationContext) AddWarning(err error) *ValidationError {
  ve := ctx.wrap(err)
  ctx.warnings = append(ctx.warnings, ve)
  return ve
}

// Errors returns all recorded errors.
func (ctx *ValidationContext) Errors() []*ValidationError { return ctx.errors }

// Warnings returns all recorded warnings.
func (ctx *ValidationContext) Warnings() []*ValidationError { return ctx.warnings }

// HasErrors returns whether at least one error was recorded.
func (ctx *ValidationContext) HasErrors() bool { return len(ctx.errors) > 0 }

// Err returns all recorded errors combined, or nil.
func (ctx *ValidationContext) Err() error {
  if len(ctx.errors) == 0 { return nil }
  errs := make([]error, len(ctx.errors))
  for i, e := range ctx.errors { errs[i] = e }
  return errors.Join(errs...)
}

func (ctx *ValidationContext) wrap(err error) *ValidationError {
  var ve *ValidationError
  if errors.As(err, &ve) {
    if len(ve.Path) == 0 { ve.Path = ctx.Path() }
    return ve
  }
  return &ValidationError{Path: ctx.Path(), Err: err}
}
