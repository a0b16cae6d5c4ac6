// Package report 提供 gocomments 的输出能力。
// 支持逐文件注释文本、表格、JSON、YAML 四种格式，以及文件导出。
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"gocomments/internal/model"

	"gopkg.in/yaml.v3"
)

// 支持的输出格式。
const (
	FormatText  = "text"
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// DefaultCommentLimit 是文本格式下每个文件最多直接打印的注释数量。
const DefaultCommentLimit = 10

const separator = "--------------------"

// Formats 返回全部支持的格式名。
func Formats() []string {
	return []string{FormatText, FormatTable, FormatJSON, FormatYAML}
}

// ParseFormat 规范化并校验格式名。
func ParseFormat(value string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(value))
	for _, known := range Formats() {
		if format == known {
			return format, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q, allowed values: %s", value, strings.Join(Formats(), ", "))
}

// Print 按格式输出扫描结果。
func Print(writer io.Writer, format string, result model.ScanResult, limit int) error {
	switch format {
	case FormatText:
		return PrintText(writer, result, limit)
	case FormatTable:
		return PrintTable(writer, result)
	case FormatJSON:
		return PrintJSON(writer, result)
	case FormatYAML:
		return PrintYAML(writer, result)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// FormatPercentage 把注释占比格式化为 "20.00 %"。
// 总行数为 0 时输出 "0.00 %"。
func FormatPercentage(summary model.Summary) string {
	percentage, _ := summary.Percentage()
	return fmt.Sprintf("%.2f %%", percentage)
}

// PrintText 逐文件打印注释，最后输出总计。
//
// 没有注释的文件不输出；注释数超过 limit 时只打印提示和数量。
// limit <= 0 时使用 DefaultCommentLimit。
func PrintText(writer io.Writer, result model.ScanResult, limit int) error {
	if limit <= 0 {
		limit = DefaultCommentLimit
	}

	for _, file := range result.Files {
		if len(file.Comments) == 0 {
			continue
		}

		if _, err := fmt.Fprintf(writer, "%s\n%s\n", separator, file.Name); err != nil {
			return err
		}

		if len(file.Comments) > limit {
			if _, err := fmt.Fprintf(writer, "Too many comments to print (%d)\n", len(file.Comments)); err != nil {
				return err
			}
			continue
		}

		for _, comment := range file.Comments {
			if _, err := fmt.Fprintln(writer, comment); err != nil {
				return err
			}
		}
	}

	return PrintSummary(writer, result.Total)
}

// PrintSummary 输出总行数、总注释数和注释占比。
func PrintSummary(writer io.Writer, total model.Summary) error {
	_, err := fmt.Fprintf(
		writer,
		"Total lines: %d\nTotal comments: %d\nComment percentage: %s\n",
		total.Lines,
		total.Comments,
		FormatPercentage(total),
	)
	return err
}

// PrintTable 使用表格展示扫描结果。
func PrintTable(writer io.Writer, result model.ScanResult) error {
	tw := tabwriter.NewWriter(writer, 0, 4, 2, ' ', 0)

	if _, err := fmt.Fprintf(tw, "SCANNED PATH\t%s\n\n", result.ScannedPath); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(tw, "FILE\tLANGUAGE\tLINES\tCOMMENTS"); err != nil {
		return err
	}
	for _, item := range result.Files {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", item.DisplayPath, item.Language, item.LineCount, item.CommentCount()); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(tw, "\nLANGUAGE\tFILES\tLINES\tCOMMENTS\tPERCENT"); err != nil {
		return err
	}
	for _, item := range result.Languages {
		if _, err := fmt.Fprintf(
			tw,
			"%s\t%d\t%d\t%d\t%s\n",
			item.Language,
			item.Files,
			item.Lines,
			item.Comments,
			FormatPercentage(item.Summary),
		); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(
		tw,
		"\nTOTAL\t%d\t%d\t%d\t%s\n",
		result.Total.Files,
		result.Total.Lines,
		result.Total.Comments,
		FormatPercentage(result.Total),
	); err != nil {
		return err
	}

	if len(result.Errors) > 0 {
		if _, err := fmt.Fprintln(tw, "\nERROR FILE\tMESSAGE"); err != nil {
			return err
		}
		for _, item := range result.Errors {
			if _, err := fmt.Fprintf(tw, "%s\t%s\n", item.Path, item.Error); err != nil {
				return err
			}
		}
	}

	return tw.Flush()
}

// PrintJSON 把扫描结果按易读 JSON 输出到任意 writer。
func PrintJSON(writer io.Writer, result model.ScanResult) error {
	content, err := marshal(FormatJSON, result)
	if err != nil {
		return err
	}

	if _, err := writer.Write(content); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// PrintYAML 把扫描结果输出为 YAML。
func PrintYAML(writer io.Writer, result model.ScanResult) error {
	content, err := marshal(FormatYAML, result)
	if err != nil {
		return err
	}

	if _, err := writer.Write(content); err != nil {
		return fmt.Errorf("write yaml: %w", err)
	}
	return nil
}

// WriteFile 将结果按格式导出到指定路径，目录不存在时自动创建。
// 只支持 json 与 yaml。
func WriteFile(path string, format string, result model.ScanResult) error {
	content, err := marshal(format, result)
	if err != nil {
		return err
	}

	directory := filepath.Dir(path)
	if directory != "." && directory != "" {
		if mkErr := os.MkdirAll(directory, 0o755); mkErr != nil {
			return fmt.Errorf("create output directory: %w", mkErr)
		}
	}

	if writeErr := os.WriteFile(path, content, 0o644); writeErr != nil {
		return fmt.Errorf("write output file: %w", writeErr)
	}
	return nil
}

func marshal(format string, result model.ScanResult) ([]byte, error) {
	switch format {
	case FormatJSON:
		content, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal json: %w", err)
		}
		return append(content, '\n'), nil
	case FormatYAML:
		var builder strings.Builder
		encoder := yaml.NewEncoder(&builder)
		encoder.SetIndent(2)
		if err := encoder.Encode(result); err != nil {
			return nil, fmt.Errorf("marshal yaml: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return nil, fmt.Errorf("marshal yaml: %w", err)
		}
		return []byte(builder.String()), nil
	default:
		return nil, fmt.Errorf("format %q cannot be exported to a file", format)
	}
}
