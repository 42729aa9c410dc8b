package parser

import (
	"regexp"
	"sort"
	"strings"

	"resume-insight-go/internal/types"
)

// 技术栈行的引导标记
var techStackMarkers = []string{"technologies:", "tech stack:", "built with:", "using:"}

var certificationHeading = regexp.MustCompile(`(?i)(?:certifications?|certificates?)[\s:]*\n`)

// 证书条目的最小行长，过短的行视为噪声
const minCertificationLineLen = 5

// ExtractProjects 从projects章节提取项目列表；无该章节时不做全文回退
// 条目在项目触发行处切分，首行为项目名，名称为空的条目被丢弃
func (e *Extractor) ExtractProjects(sections types.SectionMap) []types.ProjectEntry {
	projText := sections[types.SectionProjects]
	if strings.TrimSpace(projText) == "" {
		return nil
	}

	var projects []types.ProjectEntry
	for _, chunk := range e.splitAtTriggerLines(projText, e.lib.ProjectSplit) {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}

		lines := strings.Split(chunk, "\n")
		project := types.ProjectEntry{
			Name:         strings.TrimSpace(lines[0]),
			Description:  []string{},
			Technologies: []string{},
		}
		if project.Name == "" {
			continue
		}

		techSet := make(map[string]struct{})
		for _, line := range lines[1:] {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if isTechStackLine(line) {
				// 多个技术栈行的技能合并累积
				for _, tech := range e.scanTechnologies(line) {
					techSet[tech] = struct{}{}
				}
			} else {
				project.Description = append(project.Description, line)
			}
		}
		if len(techSet) > 0 {
			techs := make([]string, 0, len(techSet))
			for t := range techSet {
				techs = append(techs, t)
			}
			sort.Strings(techs)
			project.Technologies = techs
		}

		projects = append(projects, project)
	}
	return projects
}

func isTechStackLine(line string) bool {
	lower := strings.ToLower(line)
	for _, marker := range techStackMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// scanTechnologies 用完整技能词表对技术栈行做子串匹配，返回去重排序后的规范技能名
func (e *Extractor) scanTechnologies(line string) []string {
	lower := strings.ToLower(line)
	found := make(map[string]struct{})
	for skill, canonical := range e.lib.skillCanonical {
		if strings.Contains(lower, skill) {
			found[canonical] = struct{}{}
		}
	}

	techs := make([]string, 0, len(found))
	for t := range found {
		techs = append(techs, t)
	}
	sort.Strings(techs)
	return techs
}

// ExtractCertifications 提取证书列表
// 优先使用certifications章节，缺失时在全文按标题词截取到下一个全大写标题。
// 每个非平凡行成为一条记录；行内年份被剥离单独存放；签发机构按固定词表子串匹配。
func (e *Extractor) ExtractCertifications(text string, sections types.SectionMap) []types.CertificationEntry {
	certText := sections[types.SectionCertifications]
	if certText == "" {
		certText = e.carveCertificationBlock(text)
	}
	if strings.TrimSpace(certText) == "" {
		return nil
	}

	var certs []types.CertificationEntry
	for _, line := range strings.Split(strings.TrimSpace(certText), "\n") {
		line = strings.TrimSpace(line)
		if len(line) < minCertificationLineLen {
			continue
		}

		cert := types.CertificationEntry{Name: line}

		if year := e.lib.Year.FindString(line); year != "" {
			cert.Year = year
			cert.Name = strings.TrimSpace(strings.ReplaceAll(line, year, ""))
		}

		lower := strings.ToLower(line)
		for _, issuer := range e.lib.Issuers {
			if strings.Contains(lower, strings.ToLower(issuer)) {
				cert.Issuer = issuer
				break
			}
		}

		certs = append(certs, cert)
	}
	return certs
}

func (e *Extractor) carveCertificationBlock(text string) string {
	loc := certificationHeading.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	rest := text[loc[1]:]
	if m := capsHeading.FindStringIndex(rest); m != nil {
		rest = rest[:m[0]]
	}
	return rest
}
