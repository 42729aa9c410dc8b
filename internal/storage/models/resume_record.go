package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"resume-insight-go/internal/types"
)

// ResumeRecord 简历解析记录表
// 每次上传对应一条记录，解析完成后结构化字段以JSON列落库
type ResumeRecord struct {
	SubmissionUUID   string         `gorm:"type:char(36);primaryKey"`
	OriginalFilename string         `gorm:"type:varchar(255)"`
	OriginalFilePath string         `gorm:"type:varchar(1024)"` // MinIO对象键
	ResultFilePath   string         `gorm:"type:varchar(1024)"` // 解析结果JSON的MinIO对象键
	FileMD5          string         `gorm:"type:char(32);index:idx_rr_file_md5"`
	ProcessingStatus string         `gorm:"type:varchar(50);default:'UPLOADED';index:idx_rr_processing_status"`
	ParserVersion    string         `gorm:"type:varchar(50)"`
	ContactJSON      datatypes.JSON `gorm:"type:json"`
	SkillsJSON       datatypes.JSON `gorm:"type:json"`
	EducationJSON    datatypes.JSON `gorm:"type:json"`
	ExperienceJSON   datatypes.JSON `gorm:"type:json"`
	ProjectsJSON     datatypes.JSON `gorm:"type:json"`
	CertsJSON        datatypes.JSON `gorm:"type:json"`
	AdvancedJSON     datatypes.JSON `gorm:"type:json"`
	ScoresJSON       datatypes.JSON `gorm:"type:json"`
	OverallScore     *float64       `gorm:"type:float;index:idx_rr_overall_score"`
	TextLength       int            `gorm:"type:int"`
	ErrorMessage     string         `gorm:"type:text"`
	ParsedAt         *time.Time     `gorm:"type:datetime(6)"`
	CreatedAt        time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6)"`
	UpdatedAt        time.Time      `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);autoUpdateTime"`
}

func (ResumeRecord) TableName() string {
	return "resume_records"
}

// FillFromParseResult 把解析结果的结构化字段序列化进JSON列
func (r *ResumeRecord) FillFromParseResult(result *types.ParseResult) error {
	fields := []struct {
		name   string
		value  interface{}
		target *datatypes.JSON
	}{
		{"contact", result.Contact, &r.ContactJSON},
		{"skills", result.Skills, &r.SkillsJSON},
		{"education", result.Education, &r.EducationJSON},
		{"experience", result.Experience, &r.ExperienceJSON},
		{"projects", result.Projects, &r.ProjectsJSON},
		{"certifications", result.Certifications, &r.CertsJSON},
		{"scores", result.Scores, &r.ScoresJSON},
	}
	for _, f := range fields {
		data, err := json.Marshal(f.value)
		if err != nil {
			return fmt.Errorf("序列化%s字段失败: %w", f.name, err)
		}
		*f.target = datatypes.JSON(data)
	}

	if result.Advanced != nil {
		data, err := json.Marshal(result.Advanced)
		if err != nil {
			return fmt.Errorf("序列化advanced字段失败: %w", err)
		}
		r.AdvancedJSON = datatypes.JSON(data)
	}

	overall := result.Scores.Overall
	r.OverallScore = &overall
	r.TextLength = result.TextLength
	parsedAt := result.ParsedAt
	r.ParsedAt = &parsedAt
	return nil
}
