package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "mips", cfg.AsmDialect)
	assert.False(t, cfg.Verbose)
	assert.False(t, cfg.DotHints)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".lilcc.yaml")
	content := "verbose: true\ndot_hints: true\nasm_dialect: custom\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.DotHints)
	assert.Equal(t, "custom", cfg.AsmDialect)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestFindWalksUpToParent(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".lilcc.yaml"), []byte("verbose: true\n"), 0o644))

	sub := filepath.Join(root, "nested", "deeper")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	source := filepath.Join(sub, "main.lilc")
	require.NoError(t, os.WriteFile(source, []byte(""), 0o644))

	found, err := Find(source)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".lilcc.yaml"), found)
}

func TestLoadForSourceFallsBackToDefault(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "main.lilc")
	cfg, err := LoadForSource(source)
	require.NoError(t, err)
	assert.Equal(t, "mips", cfg.AsmDialect)
}
