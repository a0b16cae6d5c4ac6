// Package watcher 基于 fsnotify 监听源码目录，在文件变化后触发重新扫描。
//
// 事件循环运行在调用 Run 的 goroutine 上，回调也在同一个 goroutine 中同步执行，
// 因此回调内部的扫描与事件处理不会并发。
package watcher

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gocomments/internal/selector"

	"github.com/fsnotify/fsnotify"
)

// Filter 判断某个文件路径的变化是否需要关注。
type Filter func(path string) bool

// Watcher 递归监听一个目录树。
type Watcher struct {
	fw       *fsnotify.Watcher
	rules    selector.Rules
	filter   Filter
	debounce time.Duration
	logger   *slog.Logger
}

// New 创建监听器。
// rules 决定哪些子目录不需要监听；filter 为 nil 时关注所有文件。
func New(rules selector.Rules, filter Filter, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Watcher{
		fw:       fw,
		rules:    rules.Clone(),
		filter:   filter,
		debounce: debounce,
		logger:   logger,
	}, nil
}

// AddTree 把 root 及其下未被排除的子目录加入监听。
func (w *Watcher) AddTree(root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			return nil
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && w.rules.IgnoresDirectory(entry.Name()) {
			return filepath.SkipDir
		}
		return w.fw.Add(path)
	})
}

// Run 阻塞处理事件，直到 ctx 结束或底层监听器关闭。
//
// 相关文件的变化会被合并：最后一个事件之后 debounce 时间内没有新事件，
// 才以排好序的路径列表调用一次 onChange。onChange 返回错误时 Run 结束并返回该错误。
func (w *Watcher) Run(ctx context.Context, onChange func(paths []string) error) error {
	pending := make(map[string]struct{})

	var timer *time.Timer
	var timerC <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if !w.handleEvent(event) {
				continue
			}
			pending[event.Name] = struct{}{}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			paths := make([]string, 0, len(pending))
			for path := range pending {
				paths = append(paths, path)
			}
			sort.Strings(paths)
			clear(pending)

			w.logger.Debug("files changed", "count", len(paths))
			if err := onChange(paths); err != nil {
				return err
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			// fsnotify 可以自行恢复，只记录不退出。
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// handleEvent 处理新建目录，并返回该事件是否需要触发重新扫描。
func (w *Watcher) handleEvent(event fsnotify.Event) bool {
	if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
		return false
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !w.rules.IgnoresDirectory(info.Name()) {
				if err := w.AddTree(event.Name); err != nil {
					w.logger.Warn("watch new directory failed", "path", event.Name, "error", err)
				}
			}
			return false
		}
	}

	if w.rules.IgnoresFile(filepath.Base(event.Name)) {
		return false
	}
	if w.filter != nil && !w.filter(event.Name) {
		return false
	}
	return true
}

// Close 释放底层监听器，可重复调用。
func (w *Watcher) Close() error {
	if err := w.fw.Close(); err != nil && !errors.Is(err, fsnotify.ErrClosed) {
		return err
	}
	return nil
}
