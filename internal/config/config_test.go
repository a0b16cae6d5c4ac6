package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gocomments/internal/report"
	"gocomments/internal/selector"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New())
	require.NoError(t, err)

	assert.Equal(t, report.FormatText, cfg.Format)
	assert.Equal(t, report.DefaultCommentLimit, cfg.MaxComments)
	assert.Equal(t, selector.DefaultIgnoreFile, cfg.IgnoreFile)
	assert.Equal(t, selector.DefaultIgnoreFile, cfg.EffectiveIgnoreFile())
	assert.Equal(t, 300*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, selector.DefaultRules(), cfg.SelectorRules())
}

func TestReadFileFromDirectory(t *testing.T) {
	dir := t.TempDir()
	content := `format: JSON
max_comments: 3
no_ignore_file: true
rules:
  directories: [vendor]
  extensions: [".min.js"]
languages:
  - name: Haskell
    extensions: [".hs"]
    line_markers: ["--"]
    block_open: "{-"
    block_close: "-}"
watch:
  debounce: 1s
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigName+".yaml"), []byte(content), 0o644))

	v := New()
	used, err := ReadFile(v, "", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultConfigName+".yaml"), used)

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, report.FormatJSON, cfg.Format)
	assert.Equal(t, 3, cfg.MaxComments)
	assert.Empty(t, cfg.EffectiveIgnoreFile())
	assert.Equal(t, time.Second, cfg.Watch.Debounce)

	rules := cfg.SelectorRules()
	assert.True(t, rules.IgnoresDirectory("vendor"))
	assert.True(t, rules.IgnoresFile("app.min.js"))
	assert.True(t, rules.IgnoresFile("icon.svg"))

	registry, err := cfg.Registry()
	require.NoError(t, err)
	syntax, ok := registry.Lookup(".hs")
	require.True(t, ok)
	assert.Equal(t, "{-", syntax.Block.Open)
}

// TestReadFileMissingIsNotError 验证默认位置没有配置文件时不报错。
func TestReadFileMissingIsNotError(t *testing.T) {
	used, err := ReadFile(New(), "", t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, used)
}

func TestReadFileExplicitMissing(t *testing.T) {
	_, err := ReadFile(New(), filepath.Join(t.TempDir(), "nope.yaml"), "")
	assert.Error(t, err)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("GOCOMMENTS_FORMAT", "table")

	v := New()
	v.SetDefault(KeyFormat, report.FormatText)
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, report.FormatTable, cfg.Format)
}

func TestLoadRejectsInvalid(t *testing.T) {
	v := New()
	v.Set(KeyFormat, "xml")
	_, err := Load(v)
	assert.Error(t, err)

	v = New()
	v.Set(KeyMaxComments, -1)
	_, err = Load(v)
	assert.Error(t, err)
}

func TestRegistryRejectsInvalidLanguage(t *testing.T) {
	cfg := &Config{Languages: []LanguageConfig{{Name: "Broken", Extensions: []string{".x"}}}}
	_, err := cfg.Registry()
	assert.Error(t, err)
}
