package parser

import (
	"regexp"
	"strings"

	"resume-insight-go/internal/types"
)

// 无experience章节时全文截取的头部与终止模式
var (
	experienceHeading = regexp.MustCompile(`(?i)(?:experience|employment|work history)[\s:]*\n`)
	capsHeading       = regexp.MustCompile(`\n[A-Z]{2,}`)
)

// 单条经历最多收集的非列表描述行数
const maxLooseDescriptionLines = 5

// ExtractExperience 提取工作经历列表
// 优先使用experience章节；缺失时在全文中按标题词截取到下一个全大写标题
// 或education/skills字样为止。条目在出现职位关键词触发行处切分，触发行归属新条目。
func (e *Extractor) ExtractExperience(text string, sections types.SectionMap) []types.ExperienceEntry {
	expText := sections[types.SectionExperience]
	if expText == "" {
		expText = e.carveExperienceBlock(text)
	}
	if strings.TrimSpace(expText) == "" {
		return nil
	}

	var entries []types.ExperienceEntry
	for _, chunk := range e.splitAtTriggerLines(expText, e.lib.EntrySplit) {
		if entry, ok := e.parseExperienceChunk(chunk); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

// carveExperienceBlock 在全文中截取经历块：从标题行之后到最近的终止位置
func (e *Extractor) carveExperienceBlock(text string) string {
	loc := experienceHeading.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	rest := text[loc[1]:]

	end := len(rest)
	if m := capsHeading.FindStringIndex(rest); m != nil && m[0] < end {
		end = m[0]
	}
	lower := strings.ToLower(rest)
	for _, stop := range []string{"education", "skills"} {
		if idx := strings.Index(lower, stop); idx >= 0 && idx < end {
			end = idx
		}
	}
	return rest[:end]
}

// splitAtTriggerLines 在匹配触发模式的行前切分文本块，触发行属于新块
// 该切分是启发式的：描述行恰好含有职位关键词时会发生过度切分，属已知限制
func (e *Extractor) splitAtTriggerLines(text string, trigger *regexp.Regexp) []string {
	lines := strings.Split(text, "\n")
	var chunks []string
	var current []string

	for i, line := range lines {
		if i > 0 && trigger.MatchString(line) {
			chunks = append(chunks, strings.Join(current, "\n"))
			current = current[:0]
		}
		current = append(current, line)
	}
	chunks = append(chunks, strings.Join(current, "\n"))
	return chunks
}

// parseExperienceChunk 解析单条经历块；职位和公司均未命中时丢弃
func (e *Extractor) parseExperienceChunk(chunk string) (types.ExperienceEntry, bool) {
	chunk = strings.TrimSpace(chunk)
	if chunk == "" {
		return types.ExperienceEntry{}, false
	}

	lines := strings.Split(chunk, "\n")
	firstLine := lines[0]

	entry := types.ExperienceEntry{Description: []string{}}

	// 职位：按关键词优先级扫描首行，首个命中生效
	for _, keyword := range e.lib.RoleKeywords {
		if strings.Contains(firstLine, keyword) {
			if m := e.lib.Positions[keyword].FindString(firstLine); m != "" {
				entry.Position = strings.TrimSpace(m)
			}
			break
		}
	}

	// 公司：首行中 at/@/| 之后的片段
	if m := e.lib.Company.FindStringSubmatch(firstLine); m != nil {
		entry.Company = strings.TrimSpace(m[1])
	}

	// 持续时间：整块范围内的日期区间
	if m := e.lib.Duration.FindString(chunk); m != "" {
		entry.Duration = m
	}

	// 地点：首行中 ", City, ST" 形状的片段
	if m := e.lib.Location.FindStringSubmatch(firstLine); m != nil {
		entry.Location = strings.TrimSpace(m[1])
	}

	// 描述：列表项剥离标记后收集；非列表行在数量上限内兜底收集
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if e.isBulletLine(line) {
			if desc := strings.TrimSpace(e.lib.BulletStrip.ReplaceAllString(line, "")); desc != "" {
				entry.Description = append(entry.Description, desc)
			}
		} else if len(entry.Description) < maxLooseDescriptionLines {
			entry.Description = append(entry.Description, line)
		}
	}

	if entry.Position == "" && entry.Company == "" {
		return types.ExperienceEntry{}, false
	}
	return entry, true
}

// isBulletLine 判断是否为列表项行（•、-、▪、→ 或 "N." 开头）
func (e *Extractor) isBulletLine(line string) bool {
	for _, prefix := range []string{"•", "-", "▪", "→"} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return e.lib.NumberedBullet.MatchString(line)
}
