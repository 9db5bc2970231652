package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xqrs/cellview"
)

// isolate points the config search and the environment at an empty
// directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Chdir(dir)
	return dir
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "cellview.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("log-level", "info", "")
	cmd.Flags().Int("count", 100, "")
	cmd.Flags().String("orientation", "vertical", "")
	return cmd
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(newCmd(), "")
	require.NoError(t, err)

	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Log.File)
	assert.Equal(t, 100, cfg.Items.Count)
	assert.Equal(t, "vertical", cfg.List.Orientation)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, isolate(t), `
locale: de
log:
  level: debug
  file: /tmp/cellview.log
items:
  count: 5
list:
  empty_text: nothing here
  fixed_cell_length: 2
  orientation: horizontal
`)

	cfg, err := Load(nil, path)
	require.NoError(t, err)

	assert.Equal(t, "de", cfg.Locale)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/cellview.log", cfg.Log.File)
	assert.Equal(t, 5, cfg.Items.Count)
	assert.Equal(t, "nothing here", cfg.List.EmptyText)
	assert.Equal(t, 2, cfg.List.FixedCellLength)

	orientation, err := cfg.Orientation()
	require.NoError(t, err)
	assert.Equal(t, cellview.OrientationHorizontal, orientation)
}

func TestLoadSearchesWorkingDirectory(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, "locale: fr\n")

	cfg, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, "fr", cfg.Locale)
}

func TestLoadPrecedence(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, "log:\n  level: debug\nitems:\n  count: 5\n")
	t.Setenv("CELLVIEW_LOG_LEVEL", "warn")
	t.Setenv("CELLVIEW_ITEMS_COUNT", "7")

	cmd := newCmd()
	require.NoError(t, cmd.Flags().Set("count", "9"))

	cfg, err := Load(cmd, path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level, "environment over file")
	assert.Equal(t, 9, cfg.Items.Count, "flag over environment")
}

func TestLoadErrors(t *testing.T) {
	dir := isolate(t)

	_, err := Load(nil, filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	path := writeConfig(t, dir, "list:\n  orientation: diagonal\n")
	_, err = Load(nil, path)
	require.ErrorContains(t, err, "diagonal")
}

func TestApplyKeys(t *testing.T) {
	t.Parallel()

	cfg := Config{Keys: map[string][]string{
		"select_next": {"n", "ctrl+n"},
		"activate":    {},
	}}
	km := cellview.DefaultListKeyMap()
	cfg.ApplyKeys(&km)

	assert.Equal(t, []string{"n", "ctrl+n"}, km.SelectNext.Keys())
	assert.Equal(t, "n/ctrl+n", km.SelectNext.Help().Key)
	assert.NotEmpty(t, km.SelectNext.Help().Desc)
	assert.False(t, km.Activate.Enabled(), "no keys disable the action")
	assert.Equal(t, []string{"up", "k"}, km.SelectPrevious.Keys(), "unconfigured actions keep their keys")
}
