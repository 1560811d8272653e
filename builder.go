// File: lixenwraith/params/builder.go
package params

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
)

// DefaultTagName is the struct tag used when decoding section documents
const DefaultTagName = "toml"

// ValidatorFunc validates a fully resolved target. It runs after the
// target's own Validate method.
type ValidatorFunc func(target any) error

// Builder provides a fluent interface for configuring resolution
type Builder struct {
	args       []string
	prefix     string
	settings   SettingsStore
	conns      ConnectionStringStore
	sections   SectionStore
	env        EnvironmentAccessor
	tagName    string
	logger     *slog.Logger
	validators []ValidatorFunc
	err        error
}

// NewBuilder creates a builder reading os.Args[1:] with the default prefix
// and the process environment.
func NewBuilder() *Builder {
	return &Builder{
		args:       os.Args[1:],
		prefix:     DefaultPrefix,
		env:        ProcessEnvironment{},
		tagName:    DefaultTagName,
		logger:     slog.New(slog.DiscardHandler),
		validators: make([]ValidatorFunc, 0),
	}
}

// WithArgs sets the command-line tokens. A nil or empty slice is valid.
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithPrefix sets the value argument prefix. An empty prefix makes every
// alias a value alias.
func (b *Builder) WithPrefix(prefix string) *Builder {
	b.prefix = prefix
	return b
}

// WithSettings sets the settings store
func (b *Builder) WithSettings(s SettingsStore) *Builder {
	b.settings = s
	return b
}

// WithConnectionStrings sets the connection string store
func (b *Builder) WithConnectionStrings(s ConnectionStringStore) *Builder {
	b.conns = s
	return b
}

// WithSections sets the section store
func (b *Builder) WithSections(s SectionStore) *Builder {
	b.sections = s
	return b
}

// WithStore wires every store interface that store implements.
// It is an error if it implements none of them.
func (b *Builder) WithStore(store any) *Builder {
	matched := false
	if s, ok := store.(SettingsStore); ok {
		b.settings = s
		matched = true
	}
	if s, ok := store.(ConnectionStringStore); ok {
		b.conns = s
		matched = true
	}
	if s, ok := store.(SectionStore); ok {
		b.sections = s
		matched = true
	}
	if !matched && b.err == nil {
		b.err = fmt.Errorf("store %T implements no configuration store interface", store)
	}
	return b
}

// WithEnvironment sets the environment accessor. nil disables the environment stage.
func (b *Builder) WithEnvironment(env EnvironmentAccessor) *Builder {
	b.env = env
	return b
}

// WithTagName sets the struct tag used to decode section documents
func (b *Builder) WithTagName(tagName string) *Builder {
	switch tagName {
	case "toml", "json", "yaml", "mapstructure":
		b.tagName = tagName
	default:
		if b.err == nil {
			b.err = fmt.Errorf("unsupported tag name %q, must be toml, json, yaml or mapstructure", tagName)
		}
	}
	return b
}

// WithLogger sets the logger receiving warnings and debug traces
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// WithValidator adds a validation function that runs at the end of resolution.
// Multiple validators are executed in the order they are added.
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Resolve populates target: declarations are checked, the four stages run in
// precedence order, then validation. On error target must be discarded.
func (b *Builder) Resolve(target Parameters) (*Report, error) {
	if b.err != nil {
		return nil, b.err
	}
	if target == nil {
		return nil, errors.New("resolve target cannot be nil")
	}
	if rv := reflect.ValueOf(target); rv.Kind() == reflect.Ptr && rv.IsNil() {
		return nil, fmt.Errorf("resolve target cannot be a nil %s", rv.Type())
	}

	d := Declare(target)
	if err := d.validate(b.prefix); err != nil {
		return nil, err
	}

	fields := d.Fields()
	report := newReport(b.prefix, fields)
	r := &resolver{
		fields:   fields,
		table:    newAliasTable(fields, b.prefix),
		settings: b.settings,
		conns:    b.conns,
		sections: b.sections,
		env:      b.env,
		tagName:  b.tagName,
		logger:   b.logger,
		report:   report,
	}

	if err := r.run(b.args); err != nil {
		return nil, err
	}

	if v, ok := target.(Validator); ok {
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}
	for _, validator := range b.validators {
		if err := validator(target); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}

	if len(report.Warnings) > 0 {
		b.logger.Info("Parameters resolved with ignored overrides", "warnings", len(report.Warnings))
	}
	return report, nil
}
