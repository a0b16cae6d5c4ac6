// Package model 定义 gocomments 的核心数据模型。
// 这些结构会被扫描器、输出层和命令层共同使用。
package model

import "sort"

// ScannedFile 表示单文件扫描结果。
// 扫描完成后按值返回，调用方不应再修改。
type ScannedFile struct {
	Name        string   `json:"name" yaml:"name"`
	Path        string   `json:"path" yaml:"path"`
	DisplayPath string   `json:"display_path" yaml:"display_path"`
	Language    string   `json:"language" yaml:"language"`
	Comments    []string `json:"comments" yaml:"comments"`
	LineCount   int64    `json:"line_count" yaml:"line_count"`
	// Truncated 为 true 表示读取中途失败，Comments 只包含失败前的内容。
	Truncated bool `json:"truncated,omitempty" yaml:"truncated,omitempty"`
}

// CommentCount 返回提取到的注释片段数量。
func (f ScannedFile) CommentCount() int64 {
	return int64(len(f.Comments))
}

// Summary 是一组文件的累计统计。
type Summary struct {
	Files    int64 `json:"files" yaml:"files"`
	Lines    int64 `json:"lines" yaml:"lines"`
	Comments int64 `json:"comments" yaml:"comments"`
}

// Add 将一个文件的统计叠加到当前对象。
func (s *Summary) Add(file ScannedFile) {
	s.Files++
	s.Lines += file.LineCount
	s.Comments += file.CommentCount()
}

// Merge 将另一个汇总叠加到当前对象。
func (s *Summary) Merge(other Summary) {
	s.Files += other.Files
	s.Lines += other.Lines
	s.Comments += other.Comments
}

// Percentage 返回注释片段占总行数的百分比。
// 总行数为 0 时返回 (0, false)，调用方据此输出哨兵值而不是做除法。
func (s Summary) Percentage() (float64, bool) {
	if s.Lines == 0 {
		return 0, false
	}
	return float64(s.Comments) / float64(s.Lines) * 100, true
}

// LanguageSummary 表示某个语言的聚合结果。
type LanguageSummary struct {
	Language   string   `json:"language" yaml:"language"`
	Extensions []string `json:"extensions" yaml:"extensions"`
	Summary    `yaml:",inline"`
}

// ScanError 记录单文件扫描失败信息。
// 单个文件失败不阻断整体扫描。
type ScanError struct {
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

// ScanResult 是一次扫描的完整输出模型。
type ScanResult struct {
	RunID       string            `json:"run_id" yaml:"run_id"`
	ScannedPath string            `json:"scanned_path" yaml:"scanned_path"`
	Files       []ScannedFile     `json:"files" yaml:"files"`
	Languages   []LanguageSummary `json:"languages" yaml:"languages"`
	Total       Summary           `json:"total" yaml:"total"`
	// CommentPercentage 在 PercentageDefined 为 false 时固定为 0。
	CommentPercentage float64     `json:"comment_percentage" yaml:"comment_percentage"`
	PercentageDefined bool        `json:"percentage_defined" yaml:"percentage_defined"`
	Errors            []ScanError `json:"errors" yaml:"errors"`
}

// Aggregate 计算总计与语言级汇总。
// 结果与文件顺序无关；Languages 按语言名排序。
func Aggregate(files []ScannedFile, extensionsFor func(language string) []string) (Summary, []LanguageSummary) {
	var total Summary
	byLanguage := make(map[string]*LanguageSummary)
	order := make([]string, 0)

	for _, file := range files {
		total.Add(file)

		summary, ok := byLanguage[file.Language]
		if !ok {
			summary = &LanguageSummary{Language: file.Language}
			if extensionsFor != nil {
				summary.Extensions = extensionsFor(file.Language)
			}
			byLanguage[file.Language] = summary
			order = append(order, file.Language)
		}
		summary.Add(file)
	}

	sort.Strings(order)
	languages := make([]LanguageSummary, 0, len(order))
	for _, name := range order {
		languages = append(languages, *byLanguage[name])
	}
	return total, languages
}
