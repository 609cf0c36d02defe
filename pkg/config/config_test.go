// Test Type: Unit Test
// Description: Tests for configuration layering, validation and rendering

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/f2llm/pkg/config"
	"github.com/arthur-debert/f2llm/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points XDG_CONFIG_HOME at an empty directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := config.Load(config.LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.Archive.Format)
	assert.Equal(t, "##F2LLM##", cfg.Archive.Marker)
	assert.Equal(t, config.CompressAuto, cfg.Archive.Compress)
	assert.Equal(t, ".gitignore", cfg.Walk.IgnoreFile)
	assert.Empty(t, cfg.Walk.ExtraIgnore)
	assert.Equal(t, 8, cfg.Walk.ReadWorkers)
	assert.Equal(t, int64(0), cfg.Walk.MaxFileBytes)
	assert.Equal(t, config.ColorAuto, cfg.Output.Color)
}

func TestLoad_Layering(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, "f2llm", "config.toml"), `
[archive]
format = "json"
marker = "USER"

[walk]
read_workers = 2
`)
	explicit := filepath.Join(t.TempDir(), "custom.toml")
	writeFile(t, explicit, `
[archive]
marker = "EXPLICIT"

[walk]
extra_ignore = ["*.tmp"]
`)
	t.Setenv("F2LLM_WALK_READ_WORKERS", "4")
	t.Setenv("F2LLM_WALK_MAX_FILE_BYTES", "1024")

	cfg, err := config.Load(config.LoadOptions{ConfigFile: explicit})
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Archive.Format, "user file overrides defaults")
	assert.Equal(t, "EXPLICIT", cfg.Archive.Marker, "explicit file overrides user file")
	assert.Equal(t, []string{"*.tmp"}, cfg.Walk.ExtraIgnore)
	assert.Equal(t, 4, cfg.Walk.ReadWorkers, "env overrides files")
	assert.Equal(t, int64(1024), cfg.Walk.MaxFileBytes)
}

func TestLoad_SkipUserConfig(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, "f2llm", "config.toml"), "[archive]\nformat = \"json\"\n")

	cfg, err := config.Default()
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Archive.Format)
}

func TestLoad_EnvSliceValue(t *testing.T) {
	isolate(t)
	t.Setenv("F2LLM_WALK_EXTRA_IGNORE", "*.tmp,dist/")

	cfg, err := config.Load(config.LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"*.tmp", "dist/"}, cfg.Walk.ExtraIgnore)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		isolate(t)
		_, err := config.Load(config.LoadOptions{ConfigFile: "/does/not/exist.toml"})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("malformed toml", func(t *testing.T) {
		isolate(t)
		bad := filepath.Join(t.TempDir(), "bad.toml")
		writeFile(t, bad, "[archive\nformat=")
		_, err := config.Load(config.LoadOptions{ConfigFile: bad})
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
	})

	t.Run("invalid values", func(t *testing.T) {
		for key, value := range map[string]string{
			"F2LLM_ARCHIVE_FORMAT":      "xml",
			"F2LLM_ARCHIVE_COMPRESS":    "sometimes",
			"F2LLM_OUTPUT_COLOR":        "purple",
			"F2LLM_WALK_READ_WORKERS":   "0",
			"F2LLM_WALK_MAX_FILE_BYTES": "-1",
		} {
			t.Run(key, func(t *testing.T) {
				isolate(t)
				t.Setenv(key, value)
				_, err := config.Load(config.LoadOptions{})
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse), "got %v", err)
			})
		}
	})
}

func TestToTOML(t *testing.T) {
	isolate(t)
	cfg, err := config.Load(config.LoadOptions{})
	require.NoError(t, err)

	out, err := cfg.ToTOML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "[archive]")
	assert.Contains(t, string(out), "##F2LLM##")
	assert.Contains(t, string(out), "read_workers = 8")
}

func TestUserConfigPath(t *testing.T) {
	home := isolate(t)
	assert.Equal(t, filepath.Join(home, "f2llm", "config.toml"), config.UserConfigPath())
}

func TestLoad_YAMLConfigFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "f2llm.yaml")
	writeFile(t, path, "archive:\n  format: banner\nwalk:\n  extra_ignore:\n    - dist/\n")

	cfg, err := config.Load(config.LoadOptions{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, "banner", cfg.Archive.Format)
	assert.Equal(t, []string{"dist/"}, cfg.Walk.ExtraIgnore)
}

func TestLoad_OverridesWinOverEnv(t *testing.T) {
	isolate(t)
	t.Setenv("F2LLM_OUTPUT_COLOR", "always")

	cfg, err := config.Load(config.LoadOptions{
		Overrides: map[string]interface{}{"output.color": "never"},
	})
	require.NoError(t, err)
	assert.Equal(t, config.ColorNever, cfg.Output.Color)

	_, err = config.Load(config.LoadOptions{
		Overrides: map[string]interface{}{"output.color": "purple"},
	})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}
