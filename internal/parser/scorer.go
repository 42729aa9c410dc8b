package parser

import "resume-insight-go/internal/types"

// 完整度评分的分项权重
const (
	weightContactInfo = 0.2
	weightExperience  = 0.3
	weightEducation   = 0.2
	weightSkills      = 0.3
)

// CalculateScores 根据聚合提取结果计算完整度评分，纯函数、无I/O
// 分项规则：联系方式按name/email/phone命中比例；经历每条25分、
// 教育每条50分、技能每项5分，各自封顶100；总分为加权和。
func CalculateScores(result *types.ParseResult) types.Scores {
	var scores types.Scores

	contactCount := 0
	for _, field := range []string{result.Contact.Name, result.Contact.Email, result.Contact.Phone} {
		if field != "" {
			contactCount++
		}
	}
	scores.ContactInfo = float64(contactCount) / 3.0 * 100

	scores.Experience = capScore(float64(len(result.Experience)) * 25)
	scores.Education = capScore(float64(len(result.Education)) * 50)
	scores.Skills = capScore(float64(len(result.Skills)) * 5)

	scores.Overall = scores.ContactInfo*weightContactInfo +
		scores.Experience*weightExperience +
		scores.Education*weightEducation +
		scores.Skills*weightSkills

	return scores
}

func capScore(v float64) float64 {
	if v > 100 {
		return 100
	}
	return v
}
