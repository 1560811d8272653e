package params

import (
	"strings"
)

// DefaultPrefix marks value arguments: --alias=value
const DefaultPrefix = "--"

// assignmentMarker separates a value alias from its raw value.
const assignmentMarker = "="

// aliasEntry pairs a normalized alias with the field that owns it.
type aliasEntry struct {
	key   string
	field *Field
}

// aliasTable maps normalized aliases to their fields.
// Value aliases are kept in declaration order for prefix matching; toggles are matched exactly.
type aliasTable struct {
	prefix  string
	values  []aliasEntry
	toggles map[string]*Field
}

// newAliasTable builds the table for one resolution pass.
// Duplicate aliases are rejected earlier by Declaration.validate.
func newAliasTable(fields []*Field, prefix string) *aliasTable {
	t := &aliasTable{
		prefix:  prefix,
		toggles: make(map[string]*Field),
	}
	for _, f := range fields {
		for _, alias := range f.Aliases {
			if strings.HasPrefix(alias, prefix) {
				t.values = append(t.values, aliasEntry{key: alias + assignmentMarker, field: f})
			} else {
				t.toggles[alias] = f
			}
		}
	}
	return t
}

// tokenKind classifies a command-line token.
type tokenKind int

const (
	tokenUnmatched tokenKind = iota
	tokenValue
	tokenToggle
)

// match classifies token and returns the owning field.
// For value tokens the raw value is everything after the matched alias and marker.
// The first value alias in declaration order whose key prefixes the token wins.
func (t *aliasTable) match(token string) (kind tokenKind, field *Field, raw string) {
	if strings.HasPrefix(token, t.prefix) {
		for _, e := range t.values {
			if strings.HasPrefix(token, e.key) {
				return tokenValue, e.field, token[len(e.key):]
			}
		}
		return tokenUnmatched, nil, ""
	}

	if f, ok := t.toggles[token]; ok {
		return tokenToggle, f, ""
	}
	return tokenUnmatched, nil, ""
}
