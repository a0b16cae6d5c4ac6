package selector

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// DefaultIgnoreFile 是项目根目录下默认读取的排除文件名。
const DefaultIgnoreFile = ".gitignore"

// ParseIgnoreFile 逐行解析项目排除文件。
//
// 规则：
// - 以 * 开头的行，去掉 * 后加入扩展名规则
// - 其余非空行同时加入文件名和目录名规则（去掉末尾的 /）
func ParseIgnoreFile(reader io.Reader) (Rules, error) {
	rules := Rules{
		Extensions:  make([]string, 0),
		Names:       make([]string, 0),
		Directories: make([]string, 0),
	}

	lineScanner := bufio.NewScanner(reader)
	for lineScanner.Scan() {
		line := strings.TrimSpace(lineScanner.Text())
		if line == "" {
			continue
		}

		if rest, ok := strings.CutPrefix(line, "*"); ok {
			// 单独一个 * 会变成空串，空串不参与匹配，直接丢弃。
			if rest != "" {
				rules.Extensions = append(rules.Extensions, rest)
			}
			continue
		}

		entry := strings.TrimSuffix(line, "/")
		if entry == "" {
			continue
		}
		rules.Names = append(rules.Names, entry)
		rules.Directories = append(rules.Directories, entry)
	}
	if err := lineScanner.Err(); err != nil {
		return rules, fmt.Errorf("read ignore file: %w", err)
	}
	return rules, nil
}

// LoadIgnoreFile 读取指定路径的排除文件。
// 文件不存在时返回 found=false 且不报错。
func LoadIgnoreFile(path string) (Rules, bool, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Rules{}, false, nil
		}
		return Rules{}, false, fmt.Errorf("open ignore file: %w", err)
	}
	defer file.Close()

	rules, err := ParseIgnoreFile(file)
	if err != nil {
		return Rules{}, true, err
	}
	return rules, true, nil
}
