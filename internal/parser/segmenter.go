package parser

import (
	"strings"

	"resume-insight-go/internal/types"
)

// Extractor 规则驱动的简历结构化引擎
// 持有只读模式库，本身无状态，可被并发解析共享
type Extractor struct {
	lib *PatternLibrary
}

// NewExtractor 创建提取引擎；lib为nil时使用默认模式库
func NewExtractor(lib *PatternLibrary) *Extractor {
	if lib == nil {
		lib = NewPatternLibrary()
	}
	return &Extractor{lib: lib}
}

// Segment 将简历文本按章节关键词切分为章节映射
//
// 逐行扫描，维护当前章节标签（初始为header）和行累加器。
// 某行（小写、去空白后）包含任一章节关键词时视为章节标题行：
// 把累加器写入当前章节，切换到命中的章节，标题行本身不进入任何章节。
// 关键词组按固定声明顺序扫描，组内任意子串命中即成立，不做打分。
func (e *Extractor) Segment(text string) types.SectionMap {
	sections := make(types.SectionMap)
	current := types.SectionHeader
	var block []string

	flush := func() {
		if len(block) == 0 {
			return
		}
		joined := strings.Join(block, "\n")
		if prev, ok := sections[current]; ok {
			// 同名章节出现多次时拼接，保证每行恰好归属一个章节
			sections[current] = prev + "\n" + joined
		} else {
			sections[current] = joined
		}
		block = block[:0]
	}

	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(strings.TrimSpace(line))

		matched := false
		for _, label := range e.lib.SectionOrder {
			for _, keyword := range e.lib.SectionKeywords[label] {
				if strings.Contains(lower, keyword) {
					flush()
					current = label
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}

		if !matched {
			block = append(block, line)
		}
	}
	flush()

	return sections
}
