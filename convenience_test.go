// File: lixenwraith/params/convenience_test.go
package params

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestQuick tests the one-call constructor
func TestQuick(t *testing.T) {
	original := os.Args
	defer func() { os.Args = original }()

	os.Args = []string{"app", "--port=7000"}
	t.Setenv("APP_TIMEOUT", "12")

	p, err := Quick[serverParams](SettingsMap{"Port": "9000"})
	require.NoError(t, err)
	assert.Equal(t, 7000, p.Port)
	assert.Equal(t, 12, p.Timeout)

	p, err = Quick[serverParams](nil)
	require.NoError(t, err)
	assert.Equal(t, 7000, p.Port)

	_, err = Quick[serverParams]("not a store")
	assert.Error(t, err)
}

// TestMustNew tests the panicking constructor
func TestMustNew(t *testing.T) {
	p := MustNew[serverParams](NewBuilder().WithArgs(nil).WithEnvironment(nil))
	assert.Equal(t, 8080, p.Port)

	assert.PanicsWithValue(t,
		"parameter resolution failed: parameter validation failed: test error",
		func() {
			MustNew[serverParams](NewBuilder().WithArgs(nil).WithValidator(func(any) error {
				return errTest
			}))
		})
}

var errTest = errors.New("test error")

// TestReport tests the resolution report helpers
func TestReport(t *testing.T) {
	_, report, err := Load[serverParams](NewBuilder().
		WithArgs([]string{"--port=bad", "--host=example", "leftover"}).
		WithSettings(SettingsMap{"Port": "9000"}).
		WithEnvironment(nil))
	require.NoError(t, err)

	t.Run("Origins", func(t *testing.T) {
		origin, ok := report.Origin("Host")
		require.True(t, ok)
		assert.Equal(t, SourceCLI, origin)

		origin, _ = report.Origin("Port")
		assert.Equal(t, SourceExternal, origin)

		_, ok = report.Origin("Timeout")
		assert.False(t, ok)
	})

	t.Run("Err", func(t *testing.T) {
		err := report.Err()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--port=bad")
		assert.ErrorIs(t, err, ErrCoercion)
	})

	t.Run("Debug", func(t *testing.T) {
		info := report.Debug()
		assert.True(t, strings.HasPrefix(info, "Parameter Debug Info:"))
		assert.Contains(t, info, "Port (int):")
		assert.Contains(t, info, "Source: external")
		assert.Contains(t, info, "Source: cli")
		assert.Contains(t, info, "Source: unset")
		assert.Contains(t, info, "External: settings[Port]")
		assert.Contains(t, info, "Env: APP_HOST (user)")
		assert.Contains(t, info, "Warnings:")
		assert.Contains(t, info, "Unmatched: leftover")
	})

	t.Run("Encode", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, report.Encode(&buf))

		var doc reportDocument
		_, err := toml.Decode(buf.String(), &doc)
		require.NoError(t, err)

		assert.Equal(t, DefaultPrefix, doc.Prefix)
		assert.Equal(t, []string{"default", "external", "env", "cli"}, doc.Precedence)
		assert.Equal(t, []string{"leftover"}, doc.Unmatched)

		require.Len(t, doc.Fields, 3)
		assert.Equal(t, fieldDocument{
			Name:     "Port",
			Type:     "int",
			Source:   "external",
			Aliases:  []string{"--port"},
			External: "settings[Port]",
			Env:      "APP_PORT (any)",
		}, doc.Fields[0])
		assert.Equal(t, "cli", doc.Fields[1].Source)
		assert.Equal(t, "unset", doc.Fields[2].Source)

		require.Len(t, doc.Warnings, 1)
		assert.Equal(t, "Port", doc.Warnings[0].Field)
		assert.Equal(t, "--port=bad", doc.Warnings[0].Key)
		assert.Equal(t, "bad", doc.Warnings[0].Raw)
	})

	t.Run("CleanReport", func(t *testing.T) {
		_, clean, err := Load[serverParams](NewBuilder().WithArgs(nil).WithEnvironment(nil))
		require.NoError(t, err)
		assert.NoError(t, clean.Err())
		assert.NotContains(t, clean.Debug(), "Warnings:")
	})
}
