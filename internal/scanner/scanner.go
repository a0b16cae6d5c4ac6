// Package scanner 提供注释提取与扫描调度能力。
// extract.go 是逐行状态机；本文件负责目录遍历、逐文件读取和结果聚合。
package scanner

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gocomments/internal/languages"
	"gocomments/internal/model"
	"gocomments/internal/selector"

	"github.com/google/uuid"
)

// Options 是扫描服务的可配置项。
type Options struct {
	// Rules 是基础排除规则，为 nil 时使用 selector.DefaultRules()。
	Rules *selector.Rules
	// IgnoreFile 是相对扫描根目录的排除文件名，为空表示不读取。
	IgnoreFile string
	Logger     *slog.Logger
}

// Service 是扫描服务对象。
// 扫描严格串行：一个文件读完并关闭后才处理下一个。
type Service struct {
	registry   *languages.Registry
	rules      selector.Rules
	ignoreFile string
	logger     *slog.Logger
}

// scanTask 表示一个待分析文件。
type scanTask struct {
	absolutePath string
	displayPath  string
	syntax       languages.Syntax
}

// NewService 创建扫描服务。
func NewService(registry *languages.Registry, options Options) *Service {
	rules := selector.DefaultRules()
	if options.Rules != nil {
		rules = options.Rules.Clone()
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		registry:   registry,
		rules:      rules,
		ignoreFile: options.IgnoreFile,
		logger:     logger,
	}
}

// ScanPath 扫描目录或单文件。
// 只有目标路径本身不可访问时返回错误；单文件失败记录在 result.Errors 中。
func (s *Service) ScanPath(targetPath string) (model.ScanResult, error) {
	var result model.ScanResult

	trimmedPath := strings.TrimSpace(targetPath)
	if trimmedPath == "" {
		return result, errors.New("scan path is empty")
	}

	absoluteTarget, err := filepath.Abs(trimmedPath)
	if err != nil {
		return result, fmt.Errorf("resolve absolute path: %w", err)
	}

	info, err := os.Stat(absoluteTarget)
	if err != nil {
		return result, fmt.Errorf("stat path: %w", err)
	}

	result.RunID = uuid.NewString()
	result.ScannedPath = absoluteTarget

	var tasks []scanTask
	if info.IsDir() {
		tasks, err = s.directoryTasks(absoluteTarget)
	} else {
		tasks, err = s.singleFileTask(absoluteTarget)
	}
	if err != nil {
		return result, err
	}

	result.Files = make([]model.ScannedFile, 0, len(tasks))
	result.Errors = make([]model.ScanError, 0)

	for _, task := range tasks {
		file, scanErr := s.scanFile(task)
		if file != nil {
			result.Files = append(result.Files, *file)
		}
		if scanErr != nil {
			s.logger.Warn("scan file failed", "path", task.displayPath, "error", scanErr.Error)
			result.Errors = append(result.Errors, *scanErr)
		}
	}

	s.buildSummaries(&result)
	s.logger.Debug("scan finished",
		"path", absoluteTarget,
		"files", result.Total.Files,
		"lines", result.Total.Lines,
		"comments", result.Total.Comments,
	)
	return result, nil
}

// EffectiveRules 返回扫描 root 时实际生效的规则（基础规则加上排除文件）。
func (s *Service) EffectiveRules(root string) selector.Rules {
	rules := s.rules.Clone()
	if s.ignoreFile == "" {
		return rules
	}

	ignorePath := filepath.Join(root, s.ignoreFile)
	extra, found, err := selector.LoadIgnoreFile(ignorePath)
	if err != nil {
		s.logger.Warn("read ignore file failed", "path", ignorePath, "error", err)
		return rules
	}
	if !found {
		s.logger.Info("no ignore file found", "path", ignorePath)
		return rules
	}

	s.logger.Debug("loaded ignore file", "path", ignorePath)
	return rules.Merge(extra)
}

// Registry 返回服务使用的符号表。
func (s *Service) Registry() *languages.Registry {
	return s.registry
}

// directoryTasks 遍历目录并为可识别后缀的文件创建任务。
func (s *Service) directoryTasks(root string) ([]scanTask, error) {
	paths, err := selector.ListEligibleFiles(root, s.registry.Extensions(), s.EffectiveRules(root))
	if err != nil {
		return nil, err
	}

	tasks := make([]scanTask, 0, len(paths))
	for _, path := range paths {
		syntax, ok := s.registry.LookupFile(path)
		if !ok {
			continue
		}

		relativePath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			relativePath = path
		}

		tasks = append(tasks, scanTask{
			absolutePath: path,
			displayPath:  filepath.ToSlash(relativePath),
			syntax:       syntax,
		})
	}
	return tasks, nil
}

// singleFileTask 在用户给定单文件路径时创建任务。
func (s *Service) singleFileTask(filePath string) ([]scanTask, error) {
	syntax, ok := s.registry.LookupFile(filePath)
	if !ok {
		return nil, fmt.Errorf("unsupported file extension: %s", filepath.Ext(filePath))
	}

	return []scanTask{{
		absolutePath: filePath,
		displayPath:  filepath.Base(filePath),
		syntax:       syntax,
	}}, nil
}

// scanFile 打开并读取单个文件。
// 读取中途失败时同时返回部分结果和错误信息。
func (s *Service) scanFile(task scanTask) (*model.ScannedFile, *model.ScanError) {
	file, openErr := os.Open(task.absolutePath)
	if openErr != nil {
		return nil, &model.ScanError{
			Path:  task.displayPath,
			Error: openErr.Error(),
		}
	}
	defer file.Close()

	extraction, extractErr := ExtractComments(file, task.syntax)

	scanned := &model.ScannedFile{
		Name:        filepath.Base(task.absolutePath),
		Path:        task.absolutePath,
		DisplayPath: task.displayPath,
		Language:    task.syntax.Name,
		Comments:    extraction.Comments,
		LineCount:   extraction.Lines,
		Truncated:   extractErr != nil,
	}
	if extractErr != nil {
		return scanned, &model.ScanError{
			Path:  task.displayPath,
			Error: extractErr.Error(),
		}
	}
	return scanned, nil
}

// buildSummaries 计算语言级汇总和总计信息。
func (s *Service) buildSummaries(result *model.ScanResult) {
	sort.SliceStable(result.Files, func(i int, j int) bool {
		return result.Files[i].DisplayPath < result.Files[j].DisplayPath
	})

	sort.Slice(result.Errors, func(i int, j int) bool {
		return result.Errors[i].Path < result.Errors[j].Path
	})

	result.Total, result.Languages = model.Aggregate(result.Files, s.registry.ExtensionsForLanguage)
	result.CommentPercentage, result.PercentageDefined = result.Total.Percentage()
}
