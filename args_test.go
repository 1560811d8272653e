package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAliasTable(t *testing.T) {
	var (
		name    string
		size    int
		verbose bool
	)
	d := newDeclaration()
	Var(d, "Name", &name).Alias("--n", "--name")
	Var(d, "Size", &size).Alias("--name-size")
	Var(d, "Verbose", &verbose).Alias("v", "verbose")
	fields := d.Fields()

	table := newAliasTable(fields, DefaultPrefix)

	tests := []struct {
		token string
		kind  tokenKind
		field string
		raw   string
	}{
		{token: "--n=alice", kind: tokenValue, field: "Name", raw: "alice"},
		{token: "--name=bob", kind: tokenValue, field: "Name", raw: "bob"},
		{token: "--name-size=3", kind: tokenValue, field: "Size", raw: "3"},
		{token: "--n=a=b", kind: tokenValue, field: "Name", raw: "a=b"},
		{token: "--n=", kind: tokenValue, field: "Name", raw: ""},
		{token: "--n", kind: tokenUnmatched},
		{token: "--nothing=1", kind: tokenUnmatched},
		{token: "v", kind: tokenToggle, field: "Verbose"},
		{token: "verbose", kind: tokenToggle, field: "Verbose"},
		{token: "Verbose", kind: tokenUnmatched},
		{token: "verbose=true", kind: tokenUnmatched},
		{token: "positional", kind: tokenUnmatched},
		{token: "", kind: tokenUnmatched},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			kind, f, raw := table.match(tt.token)
			assert.Equal(t, tt.kind, kind)
			if tt.kind == tokenUnmatched {
				assert.Nil(t, f)
				return
			}
			assert.Equal(t, tt.field, f.Name)
			assert.Equal(t, tt.raw, raw)
		})
	}

	t.Run("DeclarationOrderWins", func(t *testing.T) {
		var first, second string
		d := newDeclaration()
		Var(d, "First", &first).Alias("--a")
		Var(d, "Second", &second).Alias("--a=b")

		table := newAliasTable(d.Fields(), DefaultPrefix)
		_, f, raw := table.match("--a=b=c")
		assert.Equal(t, "First", f.Name)
		assert.Equal(t, "b=c", raw)
	})

	t.Run("EmptyPrefix", func(t *testing.T) {
		table := newAliasTable(fields, "")
		assert.Empty(t, table.toggles)

		kind, f, raw := table.match("v=false")
		assert.Equal(t, tokenValue, kind)
		assert.Equal(t, "Verbose", f.Name)
		assert.Equal(t, "false", raw)

		kind, _, _ = table.match("v")
		assert.Equal(t, tokenUnmatched, kind)
	})
}
