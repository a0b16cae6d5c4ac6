// Package selector 负责遍历目录并挑选需要扫描的源码文件。
package selector

import "strings"

// Rules 描述文件排除规则。
// 每个 Rules 值持有自己的切片，Merge/Clone 都会返回新的副本。
type Rules struct {
	// Extensions 按子串匹配文件名，例如 ".g.dart"。
	Extensions []string `mapstructure:"extensions" json:"extensions" yaml:"extensions"`
	// Names 按文件名精确匹配。
	Names []string `mapstructure:"names" json:"names" yaml:"names"`
	// Prefixes 匹配文件名前缀。
	Prefixes []string `mapstructure:"prefixes" json:"prefixes" yaml:"prefixes"`
	// Directories 按目录名精确匹配。
	Directories []string `mapstructure:"directories" json:"directories" yaml:"directories"`
	// DirectoryPrefixes 匹配目录名前缀。
	DirectoryPrefixes []string `mapstructure:"directory_prefixes" json:"directory_prefixes" yaml:"directory_prefixes"`
}

// DefaultRules 返回内置排除规则，每次调用都是全新的切片。
func DefaultRules() Rules {
	return Rules{
		Extensions:        []string{"svg", "png", ".g.dart", "g.part"},
		Names:             []string{"makefile", "untranslated.json", "pubspec.lock", "pubspec.yaml"},
		Prefixes:          []string{".", "_"},
		Directories:       []string{},
		DirectoryPrefixes: []string{".", "_"},
	}
}

// Clone 返回深拷贝。
func (r Rules) Clone() Rules {
	return Rules{
		Extensions:        cloneStrings(r.Extensions),
		Names:             cloneStrings(r.Names),
		Prefixes:          cloneStrings(r.Prefixes),
		Directories:       cloneStrings(r.Directories),
		DirectoryPrefixes: cloneStrings(r.DirectoryPrefixes),
	}
}

// Merge 返回 r 与 other 合并后的新规则，重复项只保留一次。
func (r Rules) Merge(other Rules) Rules {
	return Rules{
		Extensions:        mergeStrings(r.Extensions, other.Extensions),
		Names:             mergeStrings(r.Names, other.Names),
		Prefixes:          mergeStrings(r.Prefixes, other.Prefixes),
		Directories:       mergeStrings(r.Directories, other.Directories),
		DirectoryPrefixes: mergeStrings(r.DirectoryPrefixes, other.DirectoryPrefixes),
	}
}

// IgnoresFile 判断文件名是否命中扩展名、文件名或前缀规则。
// 空规则项会被忽略，避免空串匹配所有文件。
func (r Rules) IgnoresFile(name string) bool {
	for _, ext := range r.Extensions {
		if ext != "" && strings.Contains(name, ext) {
			return true
		}
	}
	for _, ignored := range r.Names {
		if name == ignored {
			return true
		}
	}
	return hasAnyPrefix(name, r.Prefixes)
}

// IgnoresDirectory 判断目录名（路径最内层一段）是否被排除。
func (r Rules) IgnoresDirectory(name string) bool {
	if name == "" {
		return false
	}
	for _, ignored := range r.Directories {
		if name == ignored {
			return true
		}
	}
	return hasAnyPrefix(name, r.DirectoryPrefixes)
}

func hasAnyPrefix(name string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if prefix != "" && strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func cloneStrings(values []string) []string {
	return append(make([]string, 0, len(values)), values...)
}

func mergeStrings(left []string, right []string) []string {
	result := make([]string, 0, len(left)+len(right))
	seen := make(map[string]struct{}, len(left)+len(right))
	for _, values := range [][]string{left, right} {
		for _, value := range values {
			if _, ok := seen[value]; ok {
				continue
			}
			seen[value] = struct{}{}
			result = append(result, value)
		}
	}
	return result
}
