package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withFlags sets the package flags for one test and restores them after
func withFlags(t *testing.T, configFile string, force bool) {
	t.Helper()
	saved := flags
	flags.ConfigFile = configFile
	flags.Force = force
	t.Cleanup(func() { flags = saved })
}

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestInitConfig_RefusesOverwriteWithoutForce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	withFlags(t, path, false)
	var out bytes.Buffer
	require.NoError(t, initConfig(&out))
	assert.Contains(t, out.String(), path)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(written), "default_filter")

	// Second write without --force leaves the file alone
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  emoji: true\n"), 0644))
	err = initConfig(&out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	kept, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ui:\n  emoji: true\n", string(kept))

	// --force rewrites the defaults
	withFlags(t, path, true)
	require.NoError(t, initConfig(&out))

	rewritten, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(rewritten), "default_filter")
	assert.Contains(t, string(rewritten), "confirm_delete")
}

func TestConfigPathCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	withFlags(t, "", false)

	out, err := executeRoot(t, "config", "path", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, "(none, using defaults)", strings.TrimSpace(out))

	require.NoError(t, os.WriteFile(path, []byte("ui:\n  default_filter: watched\n"), 0644))

	out, err = executeRoot(t, "config", "path", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, path, strings.TrimSpace(out))
}

func TestConfigPathCommand_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  default_filter: starred\n"), 0644))
	withFlags(t, "", false)

	_, err := executeRoot(t, "config", "path", "--config", path)
	assert.Error(t, err)
}

func TestConfigInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	withFlags(t, "", false)

	out, err := executeRoot(t, "config", "init", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)
	assert.FileExists(t, path)

	_, err = executeRoot(t, "config", "init", "--config", path)
	assert.Error(t, err)
}

func TestVersionFlag(t *testing.T) {
	withFlags(t, "", false)

	out, err := executeRoot(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "watchlist version "+Version)
}
