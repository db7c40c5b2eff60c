package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("positional path and defaults", func(t *testing.T) {
		var out bytes.Buffer
		cfg, exit, err := Parse([]string{"trees/"}, &out)
		require.NoError(t, err)
		require.False(t, exit)

		assert.Equal(t, "trees/", cfg.TreePath)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, 4, cfg.WorkerCount)
		assert.Equal(t, "json", cfg.ReportFormat)
		assert.Empty(t, cfg.Batch)
		assert.True(t, cfg.ProgramBody)
		assert.Empty(t, out.String())
	})

	t.Run("flags", func(t *testing.T) {
		cfg, exit, err := Parse([]string{
			"-t", "tree.hcl",
			"--log-format", "JSON",
			"--log-level", "debug",
			"--workers", "2",
			"--format", "yaml",
			"--batch", "falling",
			"--no-program-body",
		}, &bytes.Buffer{})
		require.NoError(t, err)
		require.False(t, exit)

		assert.Equal(t, "tree.hcl", cfg.TreePath)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, 2, cfg.WorkerCount)
		assert.Equal(t, "yaml", cfg.ReportFormat)
		assert.Equal(t, "falling", cfg.Batch)
		assert.False(t, cfg.ProgramBody)
	})

	t.Run("tree flag wins over the positional path", func(t *testing.T) {
		cfg, _, err := Parse([]string{"--tree", "a.hcl", "b.hcl"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "a.hcl", cfg.TreePath)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("PARTICLEFN_LOG_LEVEL", "warn")
		t.Setenv("PARTICLEFN_WORKERS", "8")
		t.Setenv("PARTICLEFN_TREE", "env.hcl")

		cfg, _, err := Parse(nil, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "env.hcl", cfg.TreePath)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, 8, cfg.WorkerCount)
	})

	t.Run("flag wins over the environment", func(t *testing.T) {
		t.Setenv("PARTICLEFN_LOG_LEVEL", "warn")

		cfg, _, err := Parse([]string{"--log-level", "error", "tree.hcl"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, "error", cfg.LogLevel)
	})

	t.Run("no path prints usage", func(t *testing.T) {
		var out bytes.Buffer
		cfg, exit, err := Parse(nil, &out)
		require.NoError(t, err)
		assert.True(t, exit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "particlefn [flags] [TREE_PATH]")
	})

	t.Run("help", func(t *testing.T) {
		var out bytes.Buffer
		_, exit, err := Parse([]string{"--help"}, &out)
		require.NoError(t, err)
		assert.True(t, exit)
		assert.Contains(t, out.String(), "--no-program-body")
	})
}

func TestParse_Errors(t *testing.T) {
	for _, tc := range []struct {
		name string
		args []string
		want string
	}{
		{"unknown flag", []string{"--bogus"}, "unknown flag: --bogus"},
		{"too many paths", []string{"a.hcl", "b.hcl"}, "accepts at most 1 arg(s), received 2"},
		{"log format", []string{"--log-format", "xml", "tree.hcl"}, "invalid log-format"},
		{"log level", []string{"--log-level", "trace", "tree.hcl"}, "invalid log-level"},
		{"report format", []string{"--format", "toml", "tree.hcl"}, `invalid report format "toml"`},
		{"workers", []string{"--workers", "0", "tree.hcl"}, "must be at least 1"},
		{"workers not a number", []string{"--workers", "many", "tree.hcl"}, `invalid argument "many"`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, exit, err := Parse(tc.args, &bytes.Buffer{})
			assert.False(t, exit)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.want)
		})
	}
}
