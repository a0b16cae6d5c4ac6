package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"gocomments/internal/config"
	"gocomments/internal/report"
	"gocomments/internal/watcher"

	"github.com/spf13/cobra"
)

// newWatchCmd 创建 watch 子命令：先完整扫描一次，之后每次相关文件变化都重新扫描并打印总计。
func newWatchCmd(state *appState) *cobra.Command {
	watchCmd := &cobra.Command{
		Use:   "watch [directory]",
		Short: "监听目录变化并持续输出注释统计",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve absolute path: %w", err)
			}
			info, err := os.Stat(root)
			if err != nil {
				return fmt.Errorf("stat path: %w", err)
			}
			if !info.IsDir() {
				return fmt.Errorf("watch target %s is not a directory", root)
			}

			service, err := state.newService(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			result, err := service.ScanPath(root)
			if err != nil {
				return err
			}
			if err := report.PrintSummary(out, result.Total); err != nil {
				return err
			}

			registry := service.Registry()
			filter := func(path string) bool {
				_, ok := registry.LookupFile(path)
				return ok
			}

			w, err := watcher.New(service.EffectiveRules(root), filter, state.cfg.Watch.Debounce, state.logger(cmd))
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer w.Close()

			if err := w.AddTree(root); err != nil {
				return fmt.Errorf("watch %s: %w", root, err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			_, _ = fmt.Fprintf(out, "\nWatching %s (Ctrl+C to stop)\n", root)
			return w.Run(ctx, func(paths []string) error {
				result, err := service.ScanPath(root)
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintf(out, "\n[%s] %d file(s) changed\n", time.Now().Format(time.TimeOnly), len(paths)); err != nil {
					return err
				}
				return report.PrintSummary(out, result.Total)
			})
		},
	}

	watchCmd.Flags().Duration("debounce", 300*time.Millisecond, "合并连续变化的等待时间")
	_ = state.v.BindPFlag(config.KeyWatchDebounce, watchCmd.Flags().Lookup("debounce"))

	return watchCmd
}
