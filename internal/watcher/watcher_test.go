package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gocomments/internal/selector"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStop = errors.New("stop")

// runUntilChange 启动事件循环，执行 mutate 后等待第一次回调。
func runUntilChange(t *testing.T, w *Watcher, mutate func()) []string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	go func() {
		time.Sleep(50 * time.Millisecond)
		mutate()
	}()

	var changed []string
	err := w.Run(ctx, func(paths []string) error {
		changed = paths
		return errStop
	})
	require.ErrorIs(t, err, errStop, "expected a change callback before timeout")
	return changed
}

func newTestWatcher(t *testing.T, root string) *Watcher {
	t.Helper()

	filter := func(path string) bool { return strings.HasSuffix(path, ".go") }
	w, err := New(selector.DefaultRules(), filter, 20*time.Millisecond, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, w.AddTree(root))
	return w
}

func TestWatcherDetectsFileChange(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(target, []byte("package main\n"), 0o644))

	w := newTestWatcher(t, dir)
	changed := runUntilChange(t, w, func() {
		_ = os.WriteFile(target, []byte("package main\n// new\n"), 0o644)
	})

	assert.Equal(t, []string{target}, changed)
}

// TestWatcherIgnoresFilteredFiles 验证不相关文件不会触发回调，相关文件会。
func TestWatcherIgnoresFilteredFiles(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, dir)

	target := filepath.Join(dir, "b.go")
	changed := runUntilChange(t, w, func() {
		_ = os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)
		_ = os.WriteFile(filepath.Join(dir, ".hidden.go"), []byte("x"), 0o644)
		_ = os.WriteFile(target, []byte("package b\n"), 0o644)
	})

	assert.Equal(t, []string{target}, changed)
}

// TestWatcherFollowsNewDirectories 验证新建的子目录会被自动加入监听。
func TestWatcherFollowsNewDirectories(t *testing.T) {
	dir := t.TempDir()
	w := newTestWatcher(t, dir)

	subdir := filepath.Join(dir, "pkg")
	target := filepath.Join(subdir, "x.go")
	changed := runUntilChange(t, w, func() {
		_ = os.Mkdir(subdir, 0o755)
		time.Sleep(100 * time.Millisecond)
		_ = os.WriteFile(target, []byte("package pkg\n"), 0o644)
	})

	assert.Contains(t, changed, target)
}

func TestWatcherStopsOnContextCancel(t *testing.T) {
	w := newTestWatcher(t, t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := w.Run(ctx, func([]string) error { return errStop })
	assert.NoError(t, err)
}

func TestCloseTwice(t *testing.T) {
	w, err := New(selector.DefaultRules(), nil, time.Millisecond, nil)
	require.NoError(t, err)

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
