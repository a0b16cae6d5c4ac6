package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"gocomments/internal/config"
	"gocomments/internal/report"

	"github.com/spf13/cobra"
)

// newScanCmd 创建 scan 子命令。
// 示例：
//
//	gocomments scan .
//	gocomments scan ./project --format json --output result.json
func newScanCmd(state *appState) *cobra.Command {
	scanCmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "扫描目录或文件并输出注释与统计信息",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return state.runScan(cmd, args[0])
		},
	}

	flags := scanCmd.Flags()
	flags.String("format", report.FormatText, "输出格式: "+strings.Join(report.Formats(), ", "))
	flags.String("output", "", "把结果导出为 json/yaml 文件")
	flags.Int("max-comments", report.DefaultCommentLimit, "text 格式下单个文件最多打印的注释数")
	flags.String("ignore-file", "", "扫描根目录下的排除文件名，默认 .gitignore")
	flags.Bool("no-ignore-file", false, "不读取排除文件")

	_ = state.v.BindPFlag(config.KeyFormat, flags.Lookup("format"))
	_ = state.v.BindPFlag(config.KeyOutput, flags.Lookup("output"))
	_ = state.v.BindPFlag(config.KeyMaxComments, flags.Lookup("max-comments"))
	_ = state.v.BindPFlag(config.KeyIgnoreFile, flags.Lookup("ignore-file"))
	_ = state.v.BindPFlag(config.KeyNoIgnoreFile, flags.Lookup("no-ignore-file"))

	return scanCmd
}

// runScan 执行一次扫描并按配置输出。
func (s *appState) runScan(cmd *cobra.Command, path string) error {
	service, err := s.newService(cmd)
	if err != nil {
		return err
	}

	result, err := service.ScanPath(path)
	if err != nil {
		return err
	}

	if err := report.Print(cmd.OutOrStdout(), s.cfg.Format, result, s.cfg.MaxComments); err != nil {
		return err
	}

	outputPath := strings.TrimSpace(s.cfg.Output)
	if outputPath == "" {
		return nil
	}

	format := exportFormat(outputPath, s.cfg.Format)
	if err := report.WriteFile(outputPath, format, result); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n%s exported to %s\n", strings.ToUpper(format), outputPath)
	return nil
}

// exportFormat 决定导出文件的格式：优先使用 json/yaml 输出格式，否则看文件后缀。
func exportFormat(path string, format string) string {
	if format == report.FormatJSON || format == report.FormatYAML {
		return format
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return report.FormatYAML
	default:
		return report.FormatJSON
	}
}
