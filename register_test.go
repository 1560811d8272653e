package params

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDeclaration tests field descriptors collected from a declaration
func TestDeclaration(t *testing.T) {
	t.Run("OrderAndLookup", func(t *testing.T) {
		d := Declare(&importParams{})
		fields := d.Fields()
		require.NotEmpty(t, fields)
		assert.Equal(t, "FtpUriString", fields[0].Name)
		assert.Equal(t, "ImportAll", fields[1].Name)

		f, ok := d.Lookup("MaxIteration")
		require.True(t, ok)
		assert.Equal(t, []string{"--mI", "--MaxIteration"}, f.Aliases)
		assert.Equal(t, "int", f.Type)
		assert.True(t, f.HasDefault())
		assert.False(t, f.IsToggle())

		f, ok = d.Lookup("Import1")
		require.True(t, ok)
		assert.True(t, f.IsToggle())
		assert.False(t, f.HasDefault())

		f, ok = d.Lookup("SqlServer")
		require.True(t, ok)
		assert.Equal(t, ExternalConnectionString, f.External)
		assert.Equal(t, "SqlServer", f.ExternalKey)

		_, ok = d.Lookup("Missing")
		assert.False(t, ok)

		assert.NoError(t, d.validate(DefaultPrefix))
	})

	t.Run("FieldsReturnsCopy", func(t *testing.T) {
		d := Declare(&importParams{})
		fields := d.Fields()
		fields[0] = nil
		assert.NotNil(t, d.Fields()[0])
	})

	t.Run("EnvDefaultsToAnyScope", func(t *testing.T) {
		var port int
		d := newDeclaration()
		Var(d, "Port", &port).Env("PORT")
		Var(d, "Other", &port).EnvScope("OTHER", ScopeMachine)

		f, _ := d.Lookup("Port")
		assert.Equal(t, "PORT", f.EnvKey)
		assert.Equal(t, ScopeAny, f.EnvScope)
		f, _ = d.Lookup("Other")
		assert.Equal(t, ScopeMachine, f.EnvScope)
	})

	t.Run("Describe", func(t *testing.T) {
		var name string
		d := newDeclaration()
		Var(d, "Name", &name).Describe("user name")
		f, _ := d.Lookup("Name")
		assert.Equal(t, "user name", f.Description)
	})
}

// TestDeclarationErrors tests misuse reported before any stage runs
func TestDeclarationErrors(t *testing.T) {
	tests := []struct {
		name    string
		declare func(d *Declaration)
		is      error
	}{
		{
			name: "DuplicateAlias",
			declare: func(d *Declaration) {
				var a, b int
				Var(d, "A", &a).Alias("--x")
				Var(d, "B", &b).Alias("--y", "--x")
			},
			is: ErrDuplicateAlias,
		},
		{
			name: "DuplicateToggleAlias",
			declare: func(d *Declaration) {
				var a, b bool
				Var(d, "A", &a).Alias("v")
				Var(d, "B", &b).Alias("v")
			},
			is: ErrDuplicateAlias,
		},
		{
			name: "DuplicateField",
			declare: func(d *Declaration) {
				var a, b int
				Var(d, "A", &a)
				Var(d, "A", &b)
			},
			is: ErrDuplicateField,
		},
		{
			name: "ToggleOnNonBool",
			declare: func(d *Declaration) {
				var n int
				Var(d, "N", &n).Alias("verbose")
			},
			is: ErrDeclaration,
		},
		{
			name: "EmptyAlias",
			declare: func(d *Declaration) {
				var s string
				Var(d, "S", &s).Alias("")
			},
			is: ErrDeclaration,
		},
		{
			name: "NilPointer",
			declare: func(d *Declaration) {
				Var[int](d, "N", nil)
			},
			is: ErrDeclaration,
		},
		{
			name: "NilSetter",
			declare: func(d *Declaration) {
				Bind(d, "N", func() int { return 0 }, nil)
			},
			is: ErrDeclaration,
		},
		{
			name: "EmptyName",
			declare: func(d *Declaration) {
				var s string
				Var(d, "", &s)
			},
			is: ErrDeclaration,
		},
		{
			name: "ConnectionStringOnInt",
			declare: func(d *Declaration) {
				var n int
				Var(d, "N", &n).ConnectionString("db")
			},
			is: ErrDeclaration,
		},
		{
			name: "EmptySettingKey",
			declare: func(d *Declaration) {
				var s string
				Var(d, "S", &s).Setting("")
			},
			is: ErrDeclaration,
		},
		{
			name: "EmptyEnvKey",
			declare: func(d *Declaration) {
				var s string
				Var(d, "S", &s).Env("")
			},
			is: ErrDeclaration,
		},
		{
			name: "NilCoercer",
			declare: func(d *Declaration) {
				var s string
				Var(d, "S", &s).Coerce(nil)
			},
			is: ErrDeclaration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDeclaration()
			tt.declare(d)
			err := d.validate(DefaultPrefix)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.is)
			assert.ErrorIs(t, err, ErrDeclaration)
		})
	}

	t.Run("AllProblemsReported", func(t *testing.T) {
		d := newDeclaration()
		var a, b int
		Var(d, "A", &a).Alias("--x", "")
		Var(d, "B", &b).Alias("--x", "toggle")

		err := d.validate(DefaultPrefix)
		require.Error(t, err)

		var joined interface{ Unwrap() []error }
		require.True(t, errors.As(err, &joined))
		assert.Len(t, joined.Unwrap(), 3)
	})

	t.Run("EmptyPrefixMakesEveryAliasValued", func(t *testing.T) {
		d := newDeclaration()
		var n int
		Var(d, "N", &n).Alias("verbose")
		assert.NoError(t, d.validate(""))
	})

	t.Run("NoStageRunsOnDuplicateAlias", func(t *testing.T) {
		var a, b int
		target := declareFunc(func(d *Declaration) {
			Var(d, "A", &a).Alias("--x").Default(1)
			Var(d, "B", &b).Alias("--x").Default(2)
		})
		report, err := NewBuilder().WithArgs([]string{"--x=5"}).Resolve(target)
		assert.Nil(t, report)
		assert.ErrorIs(t, err, ErrDuplicateAlias)
		assert.Zero(t, a)
		assert.Zero(t, b)
	})
}
