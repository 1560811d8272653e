// File: lixenwraith/params/convenience.go
package params

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Quick resolves a fresh *T from os.Args[1:], the process environment and
// every store interface implemented by store (which may be nil).
func Quick[T any, P interface {
	*T
	Parameters
}](store any) (*T, error) {
	b := NewBuilder()
	if store != nil {
		b = b.WithStore(store)
	}
	return New[T, P](b)
}

// MustNew is like New but panics on error
func MustNew[T any, P interface {
	*T
	Parameters
}](b *Builder) *T {
	v, err := New[T, P](b)
	if err != nil {
		panic(fmt.Sprintf("parameter resolution failed: %v", err))
	}
	return v
}

// Debug returns a formatted string showing every field, its bindings and
// the stage its value came from.
func (r *Report) Debug() string {
	var b strings.Builder
	b.WriteString("Parameter Debug Info:\n")
	b.WriteString(fmt.Sprintf("Precedence: %v\n", Precedence))
	b.WriteString(fmt.Sprintf("Value prefix: %q\n", r.Prefix))
	b.WriteString("Fields (sources are tracked per declared field, not per member a setter writes):\n")

	for _, f := range r.Fields {
		b.WriteString(fmt.Sprintf("  %s (%s):\n", f.Name, f.Type))
		if origin, ok := r.Origins[f.Name]; ok {
			b.WriteString(fmt.Sprintf("    Source: %s\n", origin))
		} else {
			b.WriteString("    Source: unset\n")
		}
		if len(f.Aliases) > 0 {
			b.WriteString(fmt.Sprintf("    Aliases: %s\n", strings.Join(f.Aliases, ", ")))
		}
		if f.External != ExternalNone {
			b.WriteString(fmt.Sprintf("    External: %s[%s]\n", f.External, f.ExternalKey))
		}
		if f.EnvKey != "" {
			b.WriteString(fmt.Sprintf("    Env: %s (%s)\n", f.EnvKey, f.EnvScope))
		}
		if f.Description != "" {
			b.WriteString(fmt.Sprintf("    Description: %s\n", f.Description))
		}
	}

	if len(r.Warnings) > 0 {
		b.WriteString("Warnings:\n")
		for _, w := range r.Warnings {
			b.WriteString(fmt.Sprintf("  %s\n", w.Error()))
		}
	}
	if len(r.Unmatched) > 0 {
		b.WriteString(fmt.Sprintf("Unmatched: %s\n", strings.Join(r.Unmatched, " ")))
	}

	return b.String()
}

// Dump writes the report to stdout in TOML format
func (r *Report) Dump() error {
	return r.Encode(os.Stdout)
}

type reportDocument struct {
	Prefix     string            `toml:"prefix"`
	Precedence []string          `toml:"precedence"`
	Unmatched  []string          `toml:"unmatched,omitempty"`
	Fields     []fieldDocument   `toml:"fields"`
	Warnings   []warningDocument `toml:"warnings,omitempty"`
}

type fieldDocument struct {
	Name        string   `toml:"name"`
	Type        string   `toml:"type"`
	Source      string   `toml:"source"`
	Aliases     []string `toml:"aliases,omitempty"`
	External    string   `toml:"external,omitempty"`
	Env         string   `toml:"env,omitempty"`
	Description string   `toml:"description,omitempty"`
}

type warningDocument struct {
	Source string `toml:"source"`
	Field  string `toml:"field"`
	Key    string `toml:"key"`
	Raw    string `toml:"raw"`
	Error  string `toml:"error"`
}

// Encode writes the report to w as a TOML document with one [[fields]]
// table per declared field and one [[warnings]] table per dropped override.
func (r *Report) Encode(w io.Writer) error {
	doc := reportDocument{
		Prefix:    r.Prefix,
		Unmatched: r.Unmatched,
	}
	for _, s := range Precedence {
		doc.Precedence = append(doc.Precedence, string(s))
	}

	for _, f := range r.Fields {
		fd := fieldDocument{
			Name:        f.Name,
			Type:        f.Type,
			Source:      "unset",
			Aliases:     f.Aliases,
			Description: f.Description,
		}
		if origin, ok := r.Origins[f.Name]; ok {
			fd.Source = string(origin)
		}
		if f.External != ExternalNone {
			fd.External = fmt.Sprintf("%s[%s]", f.External, f.ExternalKey)
		}
		if f.EnvKey != "" {
			fd.Env = fmt.Sprintf("%s (%s)", f.EnvKey, f.EnvScope)
		}
		doc.Fields = append(doc.Fields, fd)
	}

	for _, w := range r.Warnings {
		doc.Warnings = append(doc.Warnings, warningDocument{
			Source: string(w.Source),
			Field:  w.Field,
			Key:    w.Key,
			Raw:    w.Raw,
			Error:  w.Err.Error(),
		})
	}

	return toml.NewEncoder(w).Encode(doc)
}
