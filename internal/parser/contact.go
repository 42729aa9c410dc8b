package parser

import (
	"strings"
	"unicode"

	"resume-insight-go/internal/types"
)

// 姓名行中不可能出现的简历套话词
var nameSkipWords = []string{"resume", "cv", "curriculum", "vitae", "phone", "email", "address"}

// ExtractContactInfo 提取全部联系方式字段，各字段彼此独立、未命中即为空
func (e *Extractor) ExtractContactInfo(text string) types.ContactInfo {
	return types.ContactInfo{
		Name:     e.ExtractName(text),
		Email:    e.ExtractEmail(text),
		Phone:    e.ExtractPhone(text),
		LinkedIn: e.ExtractLinkedIn(text),
		GitHub:   e.ExtractGitHub(text),
		Website:  e.ExtractWebsite(text),
	}
}

// ExtractName 从前15行中提取候选人姓名
// 接受条件：2-4个词、字母开头的词均以大写开头、整行无数字
func (e *Extractor) ExtractName(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 15 {
		lines = lines[:15]
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, "@") || strings.Contains(line, "http") || strings.Contains(line, "www.") {
			continue
		}

		lower := strings.ToLower(line)
		skip := false
		for _, word := range nameSkipWords {
			if strings.Contains(lower, word) {
				skip = true
				break
			}
		}
		if skip {
			continue
		}

		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		if !allCapitalized(words) {
			continue
		}
		if strings.ContainsFunc(line, unicode.IsDigit) {
			continue
		}
		return line
	}
	return ""
}

// allCapitalized 字母开头的词必须以大写字母开头，其余词不设限制
func allCapitalized(words []string) bool {
	for _, w := range words {
		if w == "" {
			continue
		}
		first := []rune(w)[0]
		if unicode.IsLetter(first) && !unicode.IsUpper(first) {
			return false
		}
	}
	return true
}

// ExtractEmail 返回文本中第一个邮箱地址
func (e *Extractor) ExtractEmail(text string) string {
	return e.lib.Email.FindString(text)
}

// ExtractPhone 按模式优先级尝试电话号码，剥离非数字后位数在[10,15]的首个命中生效
func (e *Extractor) ExtractPhone(text string) string {
	for _, pattern := range e.lib.Phones {
		for _, candidate := range pattern.FindAllString(text, -1) {
			digits := stripNonDigits(candidate)
			if len(digits) >= 10 && len(digits) <= 15 {
				return candidate
			}
		}
	}
	return ""
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ExtractLinkedIn 返回第一个LinkedIn主页链接，统一加https前缀
func (e *Extractor) ExtractLinkedIn(text string) string {
	if m := e.lib.LinkedIn.FindString(text); m != "" {
		return "https://" + m
	}
	return ""
}

// ExtractGitHub 返回第一个GitHub主页链接，统一加https前缀
func (e *Extractor) ExtractGitHub(text string) string {
	if m := e.lib.GitHub.FindString(text); m != "" {
		return "https://" + m
	}
	return ""
}

// ExtractWebsite 返回第一个不属于常见社交平台的URL
func (e *Extractor) ExtractWebsite(text string) string {
	for _, url := range e.lib.URL.FindAllString(text, -1) {
		lower := strings.ToLower(url)
		social := false
		for _, domain := range []string{"linkedin", "github", "facebook", "twitter"} {
			if strings.Contains(lower, domain) {
				social = true
				break
			}
		}
		if !social {
			return url
		}
	}
	return ""
}
