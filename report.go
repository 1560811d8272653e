package params

import (
	"errors"
	"fmt"
)

// Warning records a best-effort override that was dropped.
type Warning struct {
	Source Source
	Field  string
	Key    string // environment scope:key or the raw command-line token
	Raw    string
	Err    error
}

func (w Warning) Error() string {
	return fmt.Sprintf("%s override %s ignored: %v", w.Source, w.Key, w.Err)
}

func (w Warning) Unwrap() error {
	return w.Err
}

// Report describes how a resolution pass populated its target.
type Report struct {
	Prefix    string
	Fields    []*Field
	Origins   map[string]Source // field name -> last stage that assigned it
	Warnings  []Warning
	Unmatched []string
}

func newReport(prefix string, fields []*Field) *Report {
	return &Report{
		Prefix:  prefix,
		Fields:  fields,
		Origins: make(map[string]Source, len(fields)),
	}
}

// Origin returns the stage that last assigned the named field.
// The second value is false when no stage touched it. Origins are kept per
// declared field: a binding whose setter writes several struct members (an
// "all" toggle, a composite URI) records only its own name, so the members
// it wrote keep the origin of their own declarations.
func (r *Report) Origin(field string) (Source, bool) {
	s, ok := r.Origins[field]
	return s, ok
}

// Err joins all warnings into one error, or returns nil when resolution was clean.
func (r *Report) Err() error {
	if len(r.Warnings) == 0 {
		return nil
	}
	errs := make([]error, len(r.Warnings))
	for i, w := range r.Warnings {
		errs[i] = w
	}
	return errors.Join(errs...)
}
