package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pagebind/internal/config"
)

// executeCmd runs the root command with args in an isolated config home and
// returns what it wrote to stdout and stderr.
func executeCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.EnvHome, t.TempDir())
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvLogFormat, "")

	var stdout, stderr bytes.Buffer
	root := NewRootCmd("test")
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SilenceErrors = true
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd("1.2.3")
	assert.Equal(t, "pagebind", root.Use)
	assert.Equal(t, "1.2.3", root.Version)
	assert.NotNil(t, root.PersistentFlags().Lookup("debug"))
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"browse", "simulate", "config"})
}

func TestRoot_BrokenConfigFailsCommands(t *testing.T) {
	path := writeConfig(t, "schema_version: \"2.0.0\"\n")

	_, _, err := executeCmd(t, "--config", path, "simulate")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrUnsupportedSchema)
}

func TestIsExitError(t *testing.T) {
	_, ok := IsExitError(assert.AnError)
	assert.False(t, ok)

	exitErr, ok := IsExitError(&ExitError{Code: 2, Reason: "failed"})
	require.True(t, ok)
	assert.Equal(t, 2, exitErr.Code)
	assert.Equal(t, "failed", exitErr.Error())
}
