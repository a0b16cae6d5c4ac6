package scanner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"gocomments/internal/languages"
)

// ErrDecode 表示某一行无法按 UTF-8 文本解码。
// 遇到该错误时停止读取当前文件，但保留已经提取的注释。
var ErrDecode = errors.New("line is not valid utf-8 text")

// quoteChars 是掩码时依次处理的引号字符，顺序固定为先双引号后单引号。
var quoteChars = []string{`"`, `'`}

// stateKind 是扫描状态的标签。
type stateKind int

const (
	stateNormal stateKind = iota
	stateInBlockComment
)

// scanState 是单文件扫描的显式状态：
// Normal，或携带待匹配结束符号的 InBlockComment。
type scanState struct {
	kind        stateKind
	closeMarker string
}

func normalState() scanState {
	return scanState{kind: stateNormal}
}

func inBlockComment(closeMarker string) scanState {
	return scanState{kind: stateInBlockComment, closeMarker: closeMarker}
}

// Extraction 是一次提取的原始产物。
type Extraction struct {
	Comments []string
	Lines    int64
}

// ExtractComments 逐行读取 reader，按 syntax 提取注释片段。
//
// 读取失败或遇到非 UTF-8 行时返回错误，同时返回失败前已累计的结果；
// 失败的那一行不计入行数。
func ExtractComments(reader io.Reader, syntax languages.Syntax) (Extraction, error) {
	extractor := newCommentExtractor(syntax)

	bufferedReader := bufio.NewReader(reader)
	for {
		line, err := bufferedReader.ReadString('\n')
		if errors.Is(err, io.EOF) && len(line) == 0 {
			break
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return extractor.result(), fmt.Errorf("read line %d: %w", extractor.lines+1, err)
		}

		currentLine := normalizeLine(line)
		if !utf8.ValidString(currentLine) {
			return extractor.result(), fmt.Errorf("line %d: %w", extractor.lines+1, ErrDecode)
		}
		extractor.processLine(currentLine)

		// 最后一行没有换行符时，处理完即退出。
		if errors.Is(err, io.EOF) {
			break
		}
	}

	return extractor.result(), nil
}

// commentExtractor 持有单个文件的扫描状态，不跨文件复用。
type commentExtractor struct {
	syntax   languages.Syntax
	state    scanState
	comments []string
	lines    int64
}

func newCommentExtractor(syntax languages.Syntax) *commentExtractor {
	return &commentExtractor{
		syntax:   syntax,
		state:    normalState(),
		comments: make([]string, 0),
	}
}

func (e *commentExtractor) result() Extraction {
	return Extraction{
		Comments: e.comments,
		Lines:    e.lines,
	}
}

// processLine 处理一行并推进状态机。每行最多产生一个注释片段。
func (e *commentExtractor) processLine(line string) {
	e.lines++

	// 块注释续行：只找结束符号，本行不再做其他判断。
	if e.state.kind == stateInBlockComment {
		if idx := strings.Index(line, e.state.closeMarker); idx >= 0 {
			e.comments = append(e.comments, line[:idx])
			e.state = normalState()
			return
		}
		e.comments = append(e.comments, line)
		return
	}

	masked := maskQuotedSpans(line)

	if e.syntax.HasBlock() && e.detectBlockComment(masked) {
		return
	}

	e.detectLineComment(masked)
}

// detectBlockComment 处理块注释起始符号，返回本行是否已按块注释处理。
func (e *commentExtractor) detectBlockComment(line string) bool {
	block := e.syntax.Block

	openIdx := strings.Index(line, block.Open)
	if openIdx < 0 {
		return false
	}

	// 行注释符号出现得更早时，整行按行注释处理。
	for _, marker := range e.syntax.LineMarkers {
		if idx := strings.Index(line, marker); idx >= 0 && idx < openIdx {
			return false
		}
	}

	rest := line[openIdx+len(block.Open):]
	if closeIdx := strings.Index(rest, block.Close); closeIdx >= 0 {
		e.comments = append(e.comments, rest[:closeIdx])
		return true
	}

	e.comments = append(e.comments, rest)
	e.state = inBlockComment(block.Close)
	return true
}

// detectLineComment 按声明顺序匹配行注释符号，命中第一个即停止。
func (e *commentExtractor) detectLineComment(line string) {
	for _, marker := range e.syntax.LineMarkers {
		if idx := strings.Index(line, marker); idx >= 0 {
			e.comments = append(e.comments, line[idx+len(marker):])
			return
		}
	}
}

// maskQuotedSpans 去掉成对引号之间的内容，降低字符串内符号的误判。
//
// 对每种引号：按引号切分，只保留偶数下标的片段并以单个空格拼接。
// 这是启发式处理，不识别转义引号。
func maskQuotedSpans(line string) string {
	for _, quote := range quoteChars {
		if !strings.Contains(line, quote) {
			continue
		}
		parts := strings.Split(line, quote)
		kept := make([]string, 0, len(parts)/2+1)
		for i := 0; i < len(parts); i += 2 {
			kept = append(kept, parts[i])
		}
		line = strings.Join(kept, " ")
	}
	return line
}

// normalizeLine 去除行尾换行符，兼容 \r\n 与 \n。
func normalizeLine(line string) string {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line
}
