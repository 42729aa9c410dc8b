package types

import "time"

// SectionType 表示简历章节类型
type SectionType string

const (
	// SectionHeader 文档头部（联系方式所在区域，首个识别章节前的全部内容）
	SectionHeader SectionType = "header"
	// SectionExperience 工作经历章节
	SectionExperience SectionType = "experience"
	// SectionEducation 教育经历章节
	SectionEducation SectionType = "education"
	// SectionSkills 技能章节
	SectionSkills SectionType = "skills"
	// SectionProjects 项目经历章节
	SectionProjects SectionType = "projects"
	// SectionCertifications 证书章节
	SectionCertifications SectionType = "certifications"
	// SectionSummary 个人总结章节
	SectionSummary SectionType = "summary"
)

// SectionMap 章节标签到该章节文本块的映射
// 不变式：除触发章节切换的标题行本身外，原文的每一行恰好归属一个章节
type SectionMap map[SectionType]string

// Labels 返回已识别的章节标签列表（字典序，方便稳定输出）
func (m SectionMap) Labels() []SectionType {
	order := []SectionType{
		SectionHeader,
		SectionExperience,
		SectionEducation,
		SectionSkills,
		SectionProjects,
		SectionCertifications,
		SectionSummary,
	}
	labels := make([]SectionType, 0, len(m))
	for _, label := range order {
		if _, ok := m[label]; ok {
			labels = append(labels, label)
		}
	}
	return labels
}

// ContactInfo 联系方式信息，每个字段独立提取，未命中时为空
type ContactInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

// EducationEntry 一条教育经历
// 去重不变式：最终列表中不存在 (Degree, Institution) 相同的两条记录
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution,omitempty"`
	Year        string `json:"year,omitempty"`
	GPA         string `json:"gpa,omitempty"`
}

// ExperienceEntry 一条工作经历，Position和Company至少一项非空才会被保留
type ExperienceEntry struct {
	Position    string   `json:"position,omitempty"`
	Company     string   `json:"company,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	Location    string   `json:"location,omitempty"`
	Description []string `json:"description"`
}

// ProjectEntry 一条项目经历，Name为空的条目会被丢弃
type ProjectEntry struct {
	Name         string   `json:"name"`
	Description  []string `json:"description"`
	Technologies []string `json:"technologies"`
}

// CertificationEntry 一条证书记录，名称中的年份会被剥离单独存放
type CertificationEntry struct {
	Name   string `json:"name"`
	Year   string `json:"year,omitempty"`
	Issuer string `json:"issuer,omitempty"`
}

// Scores 简历完整度评分，所有分数取值均在[0,100]
type Scores struct {
	ContactInfo float64 `json:"contact_info"`
	Experience  float64 `json:"experience"`
	Education   float64 `json:"education"`
	Skills      float64 `json:"skills"`
	Overall     float64 `json:"overall"`
}

// ErrorKind 解析失败的类别标签
type ErrorKind string

const (
	// ErrKindUnsupportedFormat 不支持的文件扩展名
	ErrKindUnsupportedFormat ErrorKind = "UNSUPPORTED_FORMAT"
	// ErrKindDecodeError 文件损坏或无法解码
	ErrKindDecodeError ErrorKind = "DECODE_ERROR"
	// ErrKindEmptyText 文件解码成功但未提取出任何文本
	ErrKindEmptyText ErrorKind = "EMPTY_TEXT"
)

// ParseResult 单份简历的聚合解析结果
// 构造完成后不可变；失败时仅填充File/Error/ErrorKind
type ParseResult struct {
	File           string               `json:"file"`
	Contact        ContactInfo          `json:"contact"`
	Skills         []string             `json:"skills"`
	Education      []EducationEntry     `json:"education"`
	Experience     []ExperienceEntry    `json:"experience"`
	Projects       []ProjectEntry       `json:"projects"`
	Certifications []CertificationEntry `json:"certifications"`
	Sections       []SectionType        `json:"sections"`
	TextLength     int                  `json:"text_length"`
	ParsedAt       time.Time            `json:"parsed_date"`
	Scores         Scores               `json:"scores"`

	// 增强解析结果，仅在启用增强管线时填充
	Advanced *AdvancedInfo `json:"advanced,omitempty"`

	// 失败信息，成功时为空
	Error     string    `json:"error,omitempty"`
	ErrorKind ErrorKind `json:"error_kind,omitempty"`
}

// IsError 判断该结果是否为失败结果
func (r *ParseResult) IsError() bool {
	return r.Error != ""
}

// NewErrorResult 构造一个携带文件标识和失败原因的错误结果
func NewErrorResult(file string, kind ErrorKind, msg string) *ParseResult {
	return &ParseResult{
		File:      file,
		Error:     msg,
		ErrorKind: kind,
		ParsedAt:  time.Now(),
	}
}

// EntitySet 按类别归组的命名实体
type EntitySet struct {
	Persons     []string `json:"persons"`
	Orgs        []string `json:"organizations"`
	Locations   []string `json:"locations"`
	Dates       []string `json:"dates"`
	Money       []string `json:"money"`
	Percentages []string `json:"percentages"`
}

// AdvancedInfo 增强层输出的附加记录
type AdvancedInfo struct {
	NameNLP         string    `json:"name_nlp,omitempty"`
	Entities        EntitySet `json:"entities"`
	KeyPhrases      []string  `json:"key_phrases"`
	Achievements    []string  `json:"achievements"`
	ExperienceLevel string    `json:"experience_level"`
}
