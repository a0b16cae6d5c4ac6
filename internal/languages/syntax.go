package languages

// BlockMarkers 描述一对块注释符号，例如 /* 与 */。
type BlockMarkers struct {
	Open  string `json:"open" yaml:"open"`
	Close string `json:"close" yaml:"close"`
}

// Syntax 是符号表中的一个条目：某个语言的注释语法。
//
// 约束说明：
// - LineMarkers 不能为空，且按声明顺序匹配
// - Block 可选，最多一对
type Syntax struct {
	Name        string        `json:"name" yaml:"name"`
	Extensions  []string      `json:"extensions" yaml:"extensions"`
	LineMarkers []string      `json:"line_markers" yaml:"line_markers"`
	Block       *BlockMarkers `json:"block,omitempty" yaml:"block,omitempty"`
}

// HasBlock 判断该语言是否配置了块注释符号。
func (s Syntax) HasBlock() bool {
	return s.Block != nil && s.Block.Open != "" && s.Block.Close != ""
}

// cStyle 生成 // 加 /* */ 风格的条目，绝大多数类 C 语言共用。
func cStyle(name string, extensions ...string) Syntax {
	return Syntax{
		Name:        name,
		Extensions:  extensions,
		LineMarkers: []string{"//"},
		Block:       &BlockMarkers{Open: "/*", Close: "*/"},
	}
}

// hashStyle 生成只有 # 行注释的条目。
func hashStyle(name string, extensions ...string) Syntax {
	return Syntax{
		Name:        name,
		Extensions:  extensions,
		LineMarkers: []string{"#"},
	}
}

// builtinSyntaxes 返回内置符号表。
// 每次调用都会构造新的切片，调用方可以放心修改。
func builtinSyntaxes() []Syntax {
	return []Syntax{
		cStyle("C/C++", ".c", ".h", ".cc", ".cpp", ".hpp"),
		cStyle("C#", ".cs"),
		cStyle("Dart", ".dart"),
		cStyle("Go", ".go"),
		cStyle("Java", ".java"),
		cStyle("JavaScript", ".js", ".jsx", ".mjs"),
		cStyle("Kotlin", ".kt", ".kts"),
		{
			Name:        "Lua",
			Extensions:  []string{".lua"},
			LineMarkers: []string{"--"},
			Block:       &BlockMarkers{Open: "--[[", Close: "]]"},
		},
		{
			Name:        "PHP",
			Extensions:  []string{".php"},
			LineMarkers: []string{"//", "#"},
			Block:       &BlockMarkers{Open: "/*", Close: "*/"},
		},
		hashStyle("Python", ".py"),
		{
			Name:        "Ruby",
			Extensions:  []string{".rb"},
			LineMarkers: []string{"#"},
			Block:       &BlockMarkers{Open: "=begin", Close: "=end"},
		},
		cStyle("Rust", ".rs"),
		{
			Name:        "SQL",
			Extensions:  []string{".sql"},
			LineMarkers: []string{"--"},
			Block:       &BlockMarkers{Open: "/*", Close: "*/"},
		},
		hashStyle("Shell", ".sh", ".bash"),
		cStyle("Swift", ".swift"),
		cStyle("TypeScript", ".ts", ".tsx"),
		hashStyle("YAML", ".yaml", ".yml"),
	}
}
