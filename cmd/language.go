package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// newLanguageCmd 创建 language 子命令。
// 命令用于展示符号表中的语言、后缀和注释符号（包含配置文件中的自定义语言）。
func newLanguageCmd(state *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "language",
		Short: "展示已支持的语言、后缀及注释符号",
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := state.cfg.Registry()
			if err != nil {
				return err
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			if _, err := fmt.Fprintln(writer, "LANGUAGE\tEXTENSIONS\tLINE\tBLOCK"); err != nil {
				return err
			}

			for _, item := range registry.Languages() {
				block := "-"
				if item.Block != nil {
					block = item.Block.Open + " " + item.Block.Close
				}
				if _, err := fmt.Fprintf(
					writer,
					"%s\t%s\t%s\t%s\n",
					item.Name,
					strings.Join(item.Extensions, ", "),
					strings.Join(item.LineMarkers, " "),
					block,
				); err != nil {
					return err
				}
			}

			return writer.Flush()
		},
	}
}
