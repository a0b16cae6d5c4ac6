package selector

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ListEligibleFiles 遍历 root，返回满足扩展名要求且未被排除的文件路径。
//
// 返回顺序与 filepath.WalkDir 一致（按字典序）。
// 被排除的目录（根目录除外）会整体跳过，其下文件都不会出现在结果中。
// 只有根目录本身不可访问时才返回错误，子目录的访问错误会被跳过。
func ListEligibleFiles(root string, extensions []string, rules Rules) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", root)
	}

	wanted := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		wanted[ext] = struct{}{}
	}

	paths := make([]string, 0)
	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			if path != root && rules.IgnoresDirectory(entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !entry.Type().IsRegular() {
			return nil
		}

		name := entry.Name()
		if _, ok := wanted[filepath.Ext(name)]; !ok {
			return nil
		}
		if rules.IgnoresFile(name) {
			return nil
		}

		paths = append(paths, path)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk %s: %w", root, walkErr)
	}
	return paths, nil
}
