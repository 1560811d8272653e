// FILE: lixenwraith/params/config.go
package params

// Parameters is implemented by configuration types resolved by this package.
// DeclareFields registers every bindable field on d, in a stable order.
type Parameters interface {
	DeclareFields(d *Declaration)
}

// Validator is implemented by configuration types that check themselves once
// every stage has run. A returned error aborts resolution.
type Validator interface {
	Validate() error
}

// New resolves a fresh *T with the builder's sources. On any fatal error the
// partially populated object is discarded and nil is returned.
func New[T any, P interface {
	*T
	Parameters
}](b *Builder) (*T, error) {
	v, _, err := Load[T, P](b)
	return v, err
}

// Load is like New and also returns the resolution report.
func Load[T any, P interface {
	*T
	Parameters
}](b *Builder) (*T, *Report, error) {
	target := P(new(T))
	report, err := b.Resolve(target)
	if err != nil {
		return nil, nil, err
	}
	return (*T)(target), report, nil
}

// Declare collects the field descriptors of target without resolving anything.
func Declare(target Parameters) *Declaration {
	d := newDeclaration()
	target.DeclareFields(d)
	return d
}
