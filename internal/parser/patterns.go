package parser

import (
	"regexp"
	"strings"

	"resume-insight-go/internal/types"
)

// PatternLibrary 静态模式库：联系方式正则、学历模式、技能词表、章节关键词表
// 初始化完成后只读，可被并发解析安全共享
type PatternLibrary struct {
	Email    *regexp.Regexp
	Phones   []*regexp.Regexp // 按优先级排列的电话号码模式
	LinkedIn *regexp.Regexp
	GitHub   *regexp.Regexp
	URL      *regexp.Regexp
	Date     *regexp.Regexp // 月份+年份，如 "Jan 2020"
	Year     *regexp.Regexp // 四位年份

	// 学历模式，四组独立扫描：学士/硕士/博士/专科及证书类
	Degrees []*regexp.Regexp
	GPA     *regexp.Regexp

	// 职位关键词锚定的职位提取正则，与RoleKeywords一一对应
	Positions map[string]*regexp.Regexp
	Company   *regexp.Regexp
	Duration  *regexp.Regexp
	Location  *regexp.Regexp

	// 新工作条目的前瞻触发行：首词开头且包含职位关键词
	EntrySplit *regexp.Regexp
	// 新项目条目的触发行
	ProjectSplit *regexp.Regexp
	// 编号列表项，如 "3."
	NumberedBullet *regexp.Regexp
	// 列表项前缀剥离
	BulletStrip *regexp.Regexp

	// 技能词表：原始技能名 -> 全词匹配正则
	skillMatchers map[string]*regexp.Regexp
	// 技能词表：原始技能名 -> 规范展示名
	skillCanonical map[string]string

	// 章节关键词表，按声明顺序扫描
	SectionOrder    []types.SectionType
	SectionKeywords map[types.SectionType][]string

	// 职位关键词，按声明优先级排列
	RoleKeywords []string
	// 院校关键词，按声明顺序尝试
	InstitutionKeywords []*regexp.Regexp
	// 证书签发机构词表
	Issuers []string
}

// SkillTaxonomy 按类别组织的技能词表
// 与章节关键词一样属于静态配置数据，不建模为类型层级
var SkillTaxonomy = map[string][]string{
	"programming_languages": {
		"python", "java", "javascript", "typescript", "c++", "c#", "ruby",
		"go", "rust", "kotlin", "swift", "php", "scala", "r", "matlab",
		"perl", "shell", "bash", "powershell", "sql", "html", "css",
	},
	"web_frameworks": {
		"react", "angular", "vue.js", "node.js", "express.js", "django",
		"flask", "spring", "spring boot", "asp.net", "ruby on rails",
		"laravel", "symfony", "fastapi", "next.js", "nuxt.js",
	},
	"databases": {
		"mysql", "postgresql", "mongodb", "oracle", "sql server", "sqlite",
		"redis", "cassandra", "dynamodb", "elasticsearch", "neo4j", "couchdb",
	},
	"cloud_platforms": {
		"aws", "azure", "google cloud", "gcp", "heroku", "digitalocean",
		"alibaba cloud", "ibm cloud", "oracle cloud",
	},
	"devops_tools": {
		"docker", "kubernetes", "jenkins", "gitlab", "github actions",
		"terraform", "ansible", "puppet", "chef", "circleci", "travis ci",
	},
	"data_science": {
		"machine learning", "deep learning", "tensorflow", "pytorch",
		"scikit-learn", "pandas", "numpy", "keras", "opencv", "nlp",
		"computer vision", "data analysis", "statistics", "tableau", "power bi",
	},
	"mobile": {
		"android", "ios", "react native", "flutter", "xamarin", "ionic",
		"swift", "objective-c", "kotlin", "android studio", "xcode",
	},
	"tools": {
		"git", "svn", "mercurial", "jira", "confluence", "slack",
		"microsoft office", "excel", "powerpoint", "word", "outlook",
	},
	"soft_skills": {
		"leadership", "communication", "teamwork", "problem solving",
		"project management", "agile", "scrum", "kanban", "analytical",
		"critical thinking", "time management", "collaboration",
	},
}

// NewPatternLibrary 编译全部静态模式，进程内调用一次后共享
func NewPatternLibrary() *PatternLibrary {
	lib := &PatternLibrary{
		Email: regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`),
		Phones: []*regexp.Regexp{
			regexp.MustCompile(`[+]?[(]?[0-9]{3}[)]?[-\s.]?[(]?[0-9]{3}[)]?[-\s.]?[0-9]{4,6}`),
			regexp.MustCompile(`[+]?[0-9]{1,3}[-\s]?[(]?[0-9]{1,4}[)]?[-\s]?[0-9]{1,4}[-\s]?[0-9]{1,9}`),
			regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`),
		},
		LinkedIn: regexp.MustCompile(`(?i)linkedin\.com/in/[\w-]+/?`),
		GitHub:   regexp.MustCompile(`(?i)github\.com/[\w-]+/?`),
		URL:      regexp.MustCompile(`https?://[^\s,|]+`),
		Date:     regexp.MustCompile(`(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s*\d{4}`),
		Year:     regexp.MustCompile(`\b(?:19|20)\d{2}\b`),

		Degrees: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:Bachelor|B\.?S\.?|B\.?A\.?|BSc|BA)(?:'s)?(?:\s+(?:of|in))?\s+(?:[\w\s]+)?`),
			regexp.MustCompile(`(?i)(?:Master|M\.?S\.?|M\.?A\.?|MSc|MA|MBA|M\.?Tech)(?:'s)?(?:\s+(?:of|in))?\s+(?:[\w\s]+)?`),
			regexp.MustCompile(`(?i)(?:Ph\.?D\.?|Doctorate)(?:\s+(?:of|in))?\s+(?:[\w\s]+)?`),
			regexp.MustCompile(`(?i)(?:Associate|Diploma|Certificate)(?:\s+(?:of|in))?\s+(?:[\w\s]+)?`),
		},
		GPA: regexp.MustCompile(`(?i)(?:GPA|Grade|Score)[\s:]*(\d+\.?\d*)\s*(?:/\s*(\d+\.?\d*))?`),

		Company:  regexp.MustCompile(`(?i)(?:at|@|\|)\s*([^,\n|]+)`),
		Location: regexp.MustCompile(`(?:,\s*|in\s+)([\w\s]+,\s*\w{2,})`),

		EntrySplit:     regexp.MustCompile(`^\w+.*?(?:Engineer|Developer|Manager|Analyst|Consultant|Designer|Specialist|Director|Lead|Senior|Junior)`),
		ProjectSplit:   regexp.MustCompile(`^\w+.*?(?:Project|App|System|Platform|Tool|Website)`),
		NumberedBullet: regexp.MustCompile(`^\d+\.`),
		BulletStrip:    regexp.MustCompile(`^[•\-▪→\d.)\s]+`),

		SectionOrder: []types.SectionType{
			types.SectionExperience,
			types.SectionEducation,
			types.SectionSkills,
			types.SectionProjects,
			types.SectionCertifications,
			types.SectionSummary,
		},
		SectionKeywords: map[types.SectionType][]string{
			types.SectionExperience:     {"experience", "employment", "work history", "professional experience", "career"},
			types.SectionEducation:      {"education", "academic", "qualifications", "academic background"},
			types.SectionSkills:         {"skills", "technical skills", "competencies", "expertise", "technologies"},
			types.SectionProjects:       {"projects", "portfolio", "personal projects"},
			types.SectionCertifications: {"certifications", "certificates", "licenses"},
			types.SectionSummary:        {"summary", "objective", "profile", "about me", "professional summary"},
		},

		RoleKeywords: []string{
			"Engineer", "Developer", "Manager", "Analyst", "Consultant",
			"Designer", "Specialist", "Director", "Lead", "Architect",
			"Administrator", "Coordinator", "Executive", "Officer",
			"Scientist", "Researcher", "Intern", "Associate",
		},
		Issuers: []string{
			"Microsoft", "Google", "Amazon", "AWS", "Oracle", "Cisco", "CompTIA", "PMI", "Scrum",
		},
	}

	// 持续时间：两个月份年份，或月份年份配Present/Current
	datePart := lib.Date.String()
	lib.Duration = regexp.MustCompile(`(?i)(?:` + datePart + `)\s*[-–—]\s*(?:` + datePart + `|Present|Current)`)

	// 院校关键词模式：关键词前最多50字符、后最多20字符的上下文捕获
	for _, kw := range []string{"University", "College", "Institute", "School", "Academy"} {
		lib.InstitutionKeywords = append(lib.InstitutionKeywords,
			regexp.MustCompile(`(?i)[\w\s]{1,50}`+kw+`[\w\s]{0,20}`))
	}

	// 职位关键词锚定的职位正则
	lib.Positions = make(map[string]*regexp.Regexp, len(lib.RoleKeywords))
	for _, kw := range lib.RoleKeywords {
		lib.Positions[kw] = regexp.MustCompile(`(?i)[\w\s]*` + kw + `[\w\s]*`)
	}

	// 技能全词匹配器与规范名
	lib.skillMatchers = make(map[string]*regexp.Regexp)
	lib.skillCanonical = make(map[string]string)
	for _, skills := range SkillTaxonomy {
		for _, skill := range skills {
			if _, ok := lib.skillMatchers[skill]; ok {
				continue
			}
			lib.skillMatchers[skill] = regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(skill)) + `\b`)
			lib.skillCanonical[skill] = CanonicalSkillName(skill)
		}
	}

	return lib
}

// CanonicalSkillName 技能规范展示名：长度不超过3的全部大写，其余逐词首字母大写
func CanonicalSkillName(skill string) string {
	if len(skill) <= 3 {
		return strings.ToUpper(skill)
	}
	return titleCase(skill)
}

// titleCase 将每个字母序列的首字母大写，其余小写（"node.js" -> "Node.Js"）
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		isLetter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		switch {
		case isLetter && !prevLetter:
			b.WriteRune(upperRune(r))
		case isLetter:
			b.WriteRune(lowerRune(r))
		default:
			b.WriteRune(r)
		}
		prevLetter = isLetter
	}
	return b.String()
}

func upperRune(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}

func lowerRune(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r - 'A' + 'a'
	}
	return r
}
