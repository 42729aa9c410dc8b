package parser

import (
	"sort"
	"strings"
)

// ExtractSkills 在全文中做全词、忽略大小写的技能匹配，返回去重且字典序的规范技能名
// 全词边界用于避免类似 "r" 命中 "professional" 的误报
func (e *Extractor) ExtractSkills(text string) []string {
	lower := strings.ToLower(text)

	found := make(map[string]struct{})
	for skill, matcher := range e.lib.skillMatchers {
		if matcher.MatchString(lower) {
			found[e.lib.skillCanonical[skill]] = struct{}{}
		}
	}

	skills := make([]string, 0, len(found))
	for s := range found {
		skills = append(skills, s)
	}
	sort.Strings(skills)
	return skills
}
