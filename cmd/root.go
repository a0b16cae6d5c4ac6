// Package cmd 提供 gocomments 的命令行入口与子命令编排。
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"gocomments/internal/config"
	"gocomments/internal/scanner"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// appState 在根命令与子命令之间共享配置。
// 每次 newRootCmd 都会创建独立实例，测试之间互不影响。
type appState struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Config
}

// Execute 组装根命令并执行。
// version 参数由 main 包注入，便于在 CI/CD 中打包不同版本。
func Execute(version string) error {
	rootCmd := newRootCmd(version)
	return rootCmd.Execute()
}

// newRootCmd 创建根命令并注册全部子命令。
// 根命令本身接受一个目录参数，等价于 scan 的默认文本输出。
func newRootCmd(version string) *cobra.Command {
	state := &appState{v: config.New()}

	rootCmd := &cobra.Command{
		Use:   "gocomments [directory]",
		Short: "提取源码注释并统计注释占比",
		Long: "gocomments 按文件后缀识别注释语法，逐行提取每个源码文件中的注释，\n" +
			"并输出总行数、注释数以及注释占比。",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return state.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return state.runScan(cmd, args[0])
		},
	}

	rootCmd.PersistentFlags().StringVar(&state.configFile, "config", "", "配置文件路径（默认读取当前目录的 .gocomments.yaml）")
	rootCmd.PersistentFlags().Bool("verbose", false, "输出调试日志")
	_ = state.v.BindPFlag(config.KeyVerbose, rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(newVersionCmd(version))
	rootCmd.AddCommand(newLanguageCmd(state))
	rootCmd.AddCommand(newScanCmd(state))
	rootCmd.AddCommand(newWatchCmd(state))

	return rootCmd
}

// load 读取配置文件并解码，结果缓存在 state.cfg。
func (s *appState) load(cmd *cobra.Command) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	used, err := config.ReadFile(s.v, s.configFile, cwd)
	if err != nil {
		return err
	}

	cfg, err := config.Load(s.v)
	if err != nil {
		return err
	}
	s.cfg = cfg

	if used != "" {
		s.logger(cmd).Debug("using config file", "path", used)
	}
	return nil
}

// logger 创建写往 stderr 的结构化日志，--verbose 时输出 debug 级别。
func (s *appState) logger(cmd *cobra.Command) *slog.Logger {
	return newLogger(cmd.ErrOrStderr(), s.cfg != nil && s.cfg.Verbose)
}

func newLogger(writer io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{Level: level}))
}

// newService 按当前配置构造扫描服务。
func (s *appState) newService(cmd *cobra.Command) (*scanner.Service, error) {
	registry, err := s.cfg.Registry()
	if err != nil {
		return nil, err
	}

	rules := s.cfg.SelectorRules()
	return scanner.NewService(registry, scanner.Options{
		Rules:      &rules,
		IgnoreFile: s.cfg.EffectiveIgnoreFile(),
		Logger:     s.logger(cmd),
	}), nil
}
