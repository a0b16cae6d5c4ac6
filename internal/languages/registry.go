// Package languages 维护“后缀 -> 注释语法”的符号表。
package languages

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// LanguageDescriptor 用于对外展示语言、后缀及注释符号。
type LanguageDescriptor struct {
	Name        string
	Extensions  []string
	LineMarkers []string
	Block       *BlockMarkers
}

// Registry 管理符号表条目与后缀映射。
type Registry struct {
	syntaxes    []Syntax
	syntaxByExt map[string]int
}

// NewRegistry 创建包含全部内置语言的符号表。
func NewRegistry() *Registry {
	registry := &Registry{
		syntaxByExt: make(map[string]int),
	}
	for _, syntax := range builtinSyntaxes() {
		// 内置条目在测试中保证合法，这里忽略错误。
		_ = registry.Register(syntax)
	}
	return registry
}

// Register 注册一个新条目。
// 与已有条目后缀冲突时，新条目覆盖旧条目对该后缀的归属。
func (r *Registry) Register(syntax Syntax) error {
	if err := validateSyntax(syntax); err != nil {
		return err
	}

	syntax.Extensions = append([]string(nil), syntax.Extensions...)
	syntax.LineMarkers = append([]string(nil), syntax.LineMarkers...)
	if syntax.Block != nil {
		block := *syntax.Block
		syntax.Block = &block
	}

	index := len(r.syntaxes)
	for i, existing := range r.syntaxes {
		if existing.Name == syntax.Name {
			index = i
			break
		}
	}
	if index == len(r.syntaxes) {
		r.syntaxes = append(r.syntaxes, syntax)
	} else {
		for _, ext := range r.syntaxes[index].Extensions {
			delete(r.syntaxByExt, ext)
		}
		r.syntaxes[index] = syntax
	}

	for _, ext := range syntax.Extensions {
		if previous, ok := r.syntaxByExt[ext]; ok && previous != index {
			r.syntaxes[previous].Extensions = removeString(r.syntaxes[previous].Extensions, ext)
		}
		r.syntaxByExt[ext] = index
	}
	return nil
}

func validateSyntax(syntax Syntax) error {
	if strings.TrimSpace(syntax.Name) == "" {
		return errors.New("language name is empty")
	}
	if len(syntax.Extensions) == 0 {
		return fmt.Errorf("language %s: no extensions", syntax.Name)
	}
	for _, ext := range syntax.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("language %s: invalid extension %q", syntax.Name, ext)
		}
	}
	if len(syntax.LineMarkers) == 0 {
		return fmt.Errorf("language %s: no line comment markers", syntax.Name)
	}
	for _, marker := range syntax.LineMarkers {
		if marker == "" {
			return fmt.Errorf("language %s: empty line comment marker", syntax.Name)
		}
	}
	if syntax.Block != nil && (syntax.Block.Open == "" || syntax.Block.Close == "") {
		return fmt.Errorf("language %s: block markers need both open and close", syntax.Name)
	}
	return nil
}

// Lookup 按后缀精确查找（包含点号，大小写敏感）。
// 第二个返回值为 false 表示该后缀不受支持。
func (r *Registry) Lookup(ext string) (Syntax, bool) {
	index, ok := r.syntaxByExt[ext]
	if !ok {
		return Syntax{}, false
	}
	return r.syntaxes[index], true
}

// LookupFile 根据文件路径的后缀查找条目。
func (r *Registry) LookupFile(path string) (Syntax, bool) {
	return r.Lookup(filepath.Ext(path))
}

// Extensions 返回全部已支持后缀，按字典序排序。
func (r *Registry) Extensions() []string {
	result := make([]string, 0, len(r.syntaxByExt))
	for ext := range r.syntaxByExt {
		result = append(result, ext)
	}
	sort.Strings(result)
	return result
}

// Languages 返回已注册语言清单。
func (r *Registry) Languages() []LanguageDescriptor {
	result := make([]LanguageDescriptor, 0, len(r.syntaxes))
	for _, syntax := range r.syntaxes {
		if len(syntax.Extensions) == 0 {
			continue
		}
		extensions := append([]string(nil), syntax.Extensions...)
		sort.Strings(extensions)
		result = append(result, LanguageDescriptor{
			Name:        syntax.Name,
			Extensions:  extensions,
			LineMarkers: append([]string(nil), syntax.LineMarkers...),
			Block:       syntax.Block,
		})
	}

	sort.Slice(result, func(i int, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// ExtensionsForLanguage 返回指定语言对应的全部后缀。
func (r *Registry) ExtensionsForLanguage(language string) []string {
	for _, syntax := range r.syntaxes {
		if syntax.Name == language {
			extensions := append([]string(nil), syntax.Extensions...)
			sort.Strings(extensions)
			return extensions
		}
	}
	return nil
}

func removeString(values []string, target string) []string {
	result := make([]string, 0, len(values))
	for _, value := range values {
		if value != target {
			result = append(result, value)
		}
	}
	return result
}
