package parser

import (
	"strconv"
	"strings"
	"time"

	"resume-insight-go/internal/types"
)

const (
	// 学历匹配点前后截取的上下文窗口（字符数）
	educationContextWindow = 200
	// 可信毕业年份下限
	minGraduationYear = 1950
)

// ExtractEducation 提取教育经历
// 优先在education章节内查找，章节缺失时退回全文。
// 四组学历模式相互独立，各自对全文扫描；结果按(degree, institution)去重。
func (e *Extractor) ExtractEducation(text string, sections types.SectionMap) []types.EducationEntry {
	eduText := sections[types.SectionEducation]
	if eduText == "" {
		eduText = text
	}

	var entries []types.EducationEntry
	for _, pattern := range e.lib.Degrees {
		for _, loc := range pattern.FindAllStringIndex(eduText, -1) {
			degree := strings.TrimSpace(eduText[loc[0]:loc[1]])

			start := loc[0] - educationContextWindow
			if start < 0 {
				start = 0
			}
			end := loc[1] + educationContextWindow
			if end > len(eduText) {
				end = len(eduText)
			}
			context := eduText[start:end]

			entry := types.EducationEntry{Degree: degree}

			// 院校：按关键词声明顺序尝试，第一个命中生效
			for _, instPattern := range e.lib.InstitutionKeywords {
				if m := instPattern.FindString(context); m != "" {
					entry.Institution = strings.TrimSpace(m)
					break
				}
			}

			// 毕业年份：取上下文中落在[1950, 当前年份]内的最大年份
			entry.Year = e.latestPlausibleYear(context)

			// GPA：标签式数字模式的第一个捕获组
			if m := e.lib.GPA.FindStringSubmatch(context); m != nil {
				entry.GPA = m[1]
			}

			entries = append(entries, entry)
		}
	}

	return dedupeEducation(entries)
}

// latestPlausibleYear 返回文本中最大的可信年份，未找到时为空串
func (e *Extractor) latestPlausibleYear(text string) string {
	currentYear := time.Now().Year()
	best := 0
	for _, m := range e.lib.Year.FindAllString(text, -1) {
		year, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		if year >= minGraduationYear && year <= currentYear && year > best {
			best = year
		}
	}
	if best == 0 {
		return ""
	}
	return strconv.Itoa(best)
}

// dedupeEducation 按(degree, institution)对去重，保留首次出现的条目
func dedupeEducation(entries []types.EducationEntry) []types.EducationEntry {
	type key struct {
		degree      string
		institution string
	}
	seen := make(map[key]struct{}, len(entries))
	unique := entries[:0]
	for _, entry := range entries {
		k := key{entry.Degree, entry.Institution}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, entry)
	}
	return unique
}
