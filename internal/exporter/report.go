package exporter

import (
	"fmt"
	"strings"

	"resume-insight-go/internal/types"
)

const (
	reportBanner        = "=================================================="
	reportTopSkills     = 10
	reportTopExperience = 3
)

// SummaryReport 生成固定版式的文本摘要报告
func SummaryReport(result *types.ParseResult) string {
	var b strings.Builder

	b.WriteString(reportBanner + "\n")
	b.WriteString("RESUME SUMMARY REPORT\n")
	b.WriteString(reportBanner + "\n")

	b.WriteString(fmt.Sprintf("\nName: %s\n", orNA(result.Contact.Name)))
	b.WriteString(fmt.Sprintf("Email: %s\n", orNA(result.Contact.Email)))
	b.WriteString(fmt.Sprintf("Phone: %s\n", orNA(result.Contact.Phone)))

	b.WriteString(fmt.Sprintf("\nSkills (%d):\n", len(result.Skills)))
	for i, skill := range result.Skills {
		if i >= reportTopSkills {
			break
		}
		b.WriteString(fmt.Sprintf("  - %s\n", skill))
	}

	b.WriteString(fmt.Sprintf("\nExperience (%d positions):\n", len(result.Experience)))
	for i, exp := range result.Experience {
		if i >= reportTopExperience {
			break
		}
		b.WriteString(fmt.Sprintf("\n  %d. %s\n", i+1, orNA(exp.Position)))
		b.WriteString(fmt.Sprintf("     Company: %s\n", orNA(exp.Company)))
		b.WriteString(fmt.Sprintf("     Duration: %s\n", orNA(exp.Duration)))
	}

	b.WriteString(fmt.Sprintf("\nEducation (%d degrees):\n", len(result.Education)))
	for _, edu := range result.Education {
		b.WriteString(fmt.Sprintf("  - %s\n", orNA(edu.Degree)))
		b.WriteString(fmt.Sprintf("    %s\n", orNA(edu.Institution)))
	}

	b.WriteString("\nCompleteness Scores:\n")
	b.WriteString(fmt.Sprintf("  - Contact Info: %.1f%%\n", result.Scores.ContactInfo))
	b.WriteString(fmt.Sprintf("  - Experience: %.1f%%\n", result.Scores.Experience))
	b.WriteString(fmt.Sprintf("  - Education: %.1f%%\n", result.Scores.Education))
	b.WriteString(fmt.Sprintf("  - Skills: %.1f%%\n", result.Scores.Skills))
	b.WriteString(fmt.Sprintf("  - Overall: %.1f%%", result.Scores.Overall))

	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
