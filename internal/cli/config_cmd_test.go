package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pagebind/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, _, err := executeCmd(t, "--config", path, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration file created at "+path)
	assert.FileExists(t, path)

	_, _, err = executeCmd(t, "--config", path, "config", "init")
	require.ErrorIs(t, err, config.ErrConfigExists)
	assert.Contains(t, err.Error(), "--force")

	_, _, err = executeCmd(t, "--config", path, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigInit_IgnoresBrokenExistingFile(t *testing.T) {
	path := writeConfig(t, "schema_version: nope\n")

	_, _, err := executeCmd(t, "--config", path, "config", "init", "--force")
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.SchemaVersion, cfg.SchemaVersion)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		args    []string
		wantErr bool
		want    []string
	}{
		{
			name: "valid",
			body: "pagination:\n  page_size: 8\n",
			want: []string{"Configuration is valid"},
		},
		{
			name: "verbose",
			body: "pagination:\n  page_size: 8\nsource:\n  kind: memory\n  max_items: 30\n  sort: title:desc\n",
			args: []string{"--verbose"},
			want: []string{"page_size:      8", "memory (30 items", "sorted by title:desc"},
		},
		{
			name:    "bad schema",
			body:    "schema_version: \"3.1.0\"\n",
			wantErr: true,
		},
		{
			name:    "bad source",
			body:    "source:\n  kind: postgres\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.body)
			args := append([]string{"--config", path, "config", "validate"}, tt.args...)

			out, _, err := executeCmd(t, args...)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "configuration validation failed")
				return
			}
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}
