package params

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ExternalSource identifies which external store backs a field.
type ExternalSource int

const (
	// ExternalNone means the field has no external configuration binding
	ExternalNone ExternalSource = iota
	// ExternalSettings reads a string entry from the settings store and coerces it
	ExternalSettings
	// ExternalConnectionString reads a connection string and assigns it verbatim
	ExternalConnectionString
	// ExternalSection reads a named section document and assigns it to the field
	ExternalSection
)

func (s ExternalSource) String() string {
	switch s {
	case ExternalSettings:
		return "settings"
	case ExternalConnectionString:
		return "connection_strings"
	case ExternalSection:
		return "section"
	default:
		return "none"
	}
}

// Scope selects where an environment variable is looked up.
type Scope int

const (
	// ScopeAny searches Process, then User, then Machine; first non-empty value wins
	ScopeAny Scope = iota
	// ScopeProcess is the environment of the running process
	ScopeProcess
	// ScopeUser is the environment configured for the current user
	ScopeUser
	// ScopeMachine is the system-wide environment
	ScopeMachine
)

// anyScopeOrder is the lookup order used by ScopeAny.
var anyScopeOrder = []Scope{ScopeProcess, ScopeUser, ScopeMachine}

func (s Scope) String() string {
	switch s {
	case ScopeProcess:
		return "process"
	case ScopeUser:
		return "user"
	case ScopeMachine:
		return "machine"
	default:
		return "any"
	}
}

// Field is the descriptor of one bindable field.
// Accessors are bound at declaration time; the resolver never inspects the target type.
type Field struct {
	Name        string
	Aliases     []string
	Description string
	Type        string

	External    ExternalSource
	ExternalKey string

	EnvKey   string
	EnvScope Scope

	hasDefault     bool
	applyDefault   func() error
	coerceAssign   func(raw string) error
	assignString   func(s string) error
	assignDocument func(doc any, tagName string) error
	toggle         func() error
	errs           []error
}

// HasDefault reports whether a default value was declared.
func (f *Field) HasDefault() bool { return f.hasDefault }

// IsToggle reports whether the field can be flipped by a toggle alias.
func (f *Field) IsToggle() bool { return f.toggle != nil }

// Declaration collects the field descriptors of one configuration type.
type Declaration struct {
	fields []*Field
}

func newDeclaration() *Declaration {
	return &Declaration{fields: make([]*Field, 0)}
}

// Fields returns the declared descriptors in declaration order.
func (d *Declaration) Fields() []*Field {
	out := make([]*Field, len(d.fields))
	copy(out, d.fields)
	return out
}

// Lookup returns the descriptor registered under name.
func (d *Declaration) Lookup(name string) (*Field, bool) {
	for _, f := range d.fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// validate checks declaration-wide invariants against the value prefix.
// All problems are reported together so a broken declaration is fixed in one pass.
func (d *Declaration) validate(prefix string) error {
	var errs []error

	names := make(map[string]bool, len(d.fields))
	owners := make(map[string]string)

	for _, f := range d.fields {
		errs = append(errs, f.errs...)

		if names[f.Name] {
			errs = append(errs, fmt.Errorf("%w: %w: %s", ErrDeclaration, ErrDuplicateField, f.Name))
		}
		names[f.Name] = true

		for _, alias := range f.Aliases {
			if owner, exists := owners[alias]; exists {
				errs = append(errs, fmt.Errorf("%w: %w: %q declared by %s and %s",
					ErrDeclaration, ErrDuplicateAlias, alias, owner, f.Name))
				continue
			}
			owners[alias] = f.Name

			if !strings.HasPrefix(alias, prefix) && f.toggle == nil {
				errs = append(errs, declarationError(f.Name, "toggle alias %q requires a boolean field, got %s", alias, f.Type))
			}
		}
	}

	return errors.Join(errs...)
}

// Binding is the fluent, typed handle returned when a field is declared.
type Binding[T any] struct {
	field  *Field
	get    func() T
	set    func(T) error
	coerce Coercer[T]
}

// Var declares a field backed by ptr.
func Var[T any](d *Declaration, name string, ptr *T) *Binding[T] {
	if ptr == nil {
		return Bind[T](d, name, nil, nil)
	}
	return Bind(d, name,
		func() T { return *ptr },
		func(v T) error {
			*ptr = v
			return nil
		})
}

// Bind declares a field through explicit accessors.
// Use it for derived or composite fields whose setter updates more than one value.
func Bind[T any](d *Declaration, name string, get func() T, set func(T) error) *Binding[T] {
	b := &Binding[T]{
		get:    get,
		set:    set,
		coerce: defaultCoercer[T](),
	}
	f := &Field{
		Name: name,
		Type: reflect.TypeFor[T]().String(),
	}
	b.field = f

	if name == "" {
		f.errs = append(f.errs, fmt.Errorf("%w: field name cannot be empty", ErrDeclaration))
	}
	if get == nil || set == nil {
		f.errs = append(f.errs, declarationError(name, "accessors cannot be nil"))
		// Keep the descriptor usable so the remaining declaration can still be validated.
		var zero T
		b.get = func() T { return zero }
		b.set = func(T) error { return nil }
	}

	f.coerceAssign = b.coerceAssign
	f.assignString = b.assignString
	f.assignDocument = b.assignDocument
	if reflect.TypeFor[T]().Kind() == reflect.Bool {
		f.toggle = b.flip
	}

	d.fields = append(d.fields, f)
	return b
}

// Enum declares an enumeration field coerced from member names, case-insensitively.
func Enum[T any](d *Declaration, name string, ptr *T, members EnumMembers[T]) *Binding[T] {
	return Var(d, name, ptr).Coerce(members.Parse)
}

// OptionalEnum declares a nullable enumeration field. A nil value means the
// field was never configured.
func OptionalEnum[T any](d *Declaration, name string, ptr **T, members EnumMembers[T]) *Binding[*T] {
	return Var(d, name, ptr).Coerce(func(raw string) (*T, error) {
		v, err := members.Parse(raw)
		if err != nil {
			return nil, err
		}
		return &v, nil
	})
}

// Section declares a field filled from a named section document.
func Section[T any](d *Declaration, name string, ptr *T, sectionKey string) *Binding[T] {
	return Var(d, name, ptr).FromSection(sectionKey)
}

// Field returns the descriptor being built.
func (b *Binding[T]) Field() *Field {
	return b.field
}

// Alias adds command-line aliases. Aliases starting with the value prefix
// take a value (--alias=value); any other alias toggles a boolean field.
func (b *Binding[T]) Alias(aliases ...string) *Binding[T] {
	for _, a := range aliases {
		if a == "" {
			b.field.errs = append(b.field.errs, declarationError(b.field.Name, "alias cannot be empty"))
			continue
		}
		b.field.Aliases = append(b.field.Aliases, a)
	}
	return b
}

// Default sets the value applied in the first resolution stage.
func (b *Binding[T]) Default(v T) *Binding[T] {
	b.field.hasDefault = true
	b.field.applyDefault = func() error { return b.set(v) }
	return b
}

// Setting binds the field to a settings store key. Stored values are coerced.
func (b *Binding[T]) Setting(key string) *Binding[T] {
	return b.external(ExternalSettings, key)
}

// ConnectionString binds a string field to a connection string entry.
func (b *Binding[T]) ConnectionString(key string) *Binding[T] {
	if reflect.TypeFor[T]().Kind() != reflect.String {
		b.field.errs = append(b.field.errs,
			declarationError(b.field.Name, "connection string binding requires a string field, got %s", b.field.Type))
	}
	return b.external(ExternalConnectionString, key)
}

// FromSection binds the field to a named section document.
func (b *Binding[T]) FromSection(key string) *Binding[T] {
	return b.external(ExternalSection, key)
}

func (b *Binding[T]) external(source ExternalSource, key string) *Binding[T] {
	if key == "" {
		b.field.errs = append(b.field.errs, declarationError(b.field.Name, "%s key cannot be empty", source))
		return b
	}
	b.field.External = source
	b.field.ExternalKey = key
	return b
}

// Env binds the field to an environment variable searched in every scope.
func (b *Binding[T]) Env(key string) *Binding[T] {
	return b.EnvScope(key, ScopeAny)
}

// EnvScope binds the field to an environment variable in a single scope.
func (b *Binding[T]) EnvScope(key string, scope Scope) *Binding[T] {
	if key == "" {
		b.field.errs = append(b.field.errs, declarationError(b.field.Name, "environment key cannot be empty"))
		return b
	}
	b.field.EnvKey = key
	b.field.EnvScope = scope
	return b
}

// Describe attaches a human readable description.
func (b *Binding[T]) Describe(text string) *Binding[T] {
	b.field.Description = text
	return b
}

// Coerce replaces the field's text conversion.
func (b *Binding[T]) Coerce(c Coercer[T]) *Binding[T] {
	if c == nil {
		b.field.errs = append(b.field.errs, declarationError(b.field.Name, "coercer cannot be nil"))
		return b
	}
	b.coerce = c
	return b
}

// coerceAssign converts raw and stores it. A failing setter counts as a
// coercion failure since it rejected the converted input.
func (b *Binding[T]) coerceAssign(raw string) error {
	v, err := b.coerce(raw)
	if err != nil {
		return &CoercionError{Field: b.field.Name, Raw: raw, Type: b.field.Type, Err: err}
	}
	if err := b.set(v); err != nil {
		return &CoercionError{Field: b.field.Name, Raw: raw, Type: b.field.Type, Err: err}
	}
	return nil
}

func (b *Binding[T]) assignString(s string) error {
	var v T
	rv := reflect.ValueOf(&v).Elem()
	if rv.Kind() != reflect.String {
		return fmt.Errorf("field %s is %s, not a string", b.field.Name, b.field.Type)
	}
	rv.SetString(s)
	return b.set(v)
}

func (b *Binding[T]) assignDocument(doc any, tagName string) error {
	switch v := doc.(type) {
	case T:
		return b.set(v)
	case *T:
		if v != nil {
			return b.set(*v)
		}
		return nil
	}

	var v T
	if err := decodeDocument(doc, &v, tagName); err != nil {
		return fmt.Errorf("section document %T does not fit %s: %w", doc, b.field.Type, err)
	}
	return b.set(v)
}

// flip negates the current value of a boolean field.
func (b *Binding[T]) flip() error {
	cur := b.get()
	rv := reflect.ValueOf(&cur).Elem()
	rv.SetBool(!rv.Bool())
	return b.set(cur)
}
