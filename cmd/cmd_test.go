package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gocomments/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeRoot 是测试辅助函数：执行根命令并返回标准输出与标准错误。
func executeRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	rootCmd := newRootCmd("test")
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeProject 在临时目录生成一个 5 行 1 注释的小项目。
func writeProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	content := strings.Join([]string{
		"package main",
		"",
		"// note",
		"func main() {}",
		"var s = \"// not a comment\"",
	}, "\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte(content), 0o644))
	return dir
}

// TestRootPositionalDirectory 验证根命令直接接收目录参数并输出文本报告。
func TestRootPositionalDirectory(t *testing.T) {
	dir := writeProject(t)

	stdout, stderr, err := executeRoot(t, dir+string(filepath.Separator))
	require.NoError(t, err)

	assert.Equal(t, "--------------------\n"+
		"a.go\n"+
		" note\n"+
		"Total lines: 5\n"+
		"Total comments: 1\n"+
		"Comment percentage: 20.00 %\n", stdout)
	assert.Contains(t, stderr, "no ignore file found")
}

func TestScanJSONExport(t *testing.T) {
	dir := writeProject(t)
	outputPath := filepath.Join(t.TempDir(), "out", "result.json")

	stdout, _, err := executeRoot(t, "scan", dir, "--format", "json", "--output", outputPath)
	require.NoError(t, err)

	assert.Contains(t, stdout, "\"comment_percentage\": 20")
	assert.Contains(t, stdout, "JSON exported to "+outputPath)

	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "\"line_count\": 5")
}

// TestScanWithConfigFile 验证 --config 指定的配置文件生效。
func TestScanWithConfigFile(t *testing.T) {
	dir := writeProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.go"), []byte("// skipped\n"), 0o644))

	configPath := filepath.Join(t.TempDir(), "gocomments.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("format: table\nno_ignore_file: true\nrules:\n  names: [b.go]\n"), 0o644))

	stdout, stderr, err := executeRoot(t, "--config", configPath, "scan", dir)
	require.NoError(t, err)

	assert.Contains(t, stdout, "SCANNED PATH")
	assert.Contains(t, stdout, "a.go")
	assert.NotContains(t, stdout, "b.go")
	assert.NotContains(t, stderr, "no ignore file found")
}

func TestScanFlagOverridesConfig(t *testing.T) {
	dir := writeProject(t)
	configPath := filepath.Join(t.TempDir(), "gocomments.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("format: table\n"), 0o644))

	stdout, _, err := executeRoot(t, "--config", configPath, "scan", dir, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, stdout, "run_id:")
}

func TestScanUnsupportedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, _, err := executeRoot(t, "scan", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file extension")
}

func TestScanInvalidFormat(t *testing.T) {
	_, _, err := executeRoot(t, "scan", writeProject(t), "--format", "xml")
	assert.Error(t, err)
}

func TestLanguageCommand(t *testing.T) {
	stdout, _, err := executeRoot(t, "language")
	require.NoError(t, err)

	assert.Contains(t, stdout, "LANGUAGE")
	assert.Contains(t, stdout, "Lua")
	assert.Contains(t, stdout, "--[[ ]]")
	assert.Contains(t, stdout, ".py")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeRoot(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "gocomments version test\n", stdout)
}

func TestExportFormat(t *testing.T) {
	assert.Equal(t, report.FormatYAML, exportFormat("out.json", report.FormatYAML))
	assert.Equal(t, report.FormatYAML, exportFormat("out.yml", report.FormatText))
	assert.Equal(t, report.FormatJSON, exportFormat("out.txt", report.FormatTable))
}
