package exporter

import (
	"fmt"
	"strings"

	"resume-insight-go/internal/types"
)

const (
	maxExperienceColumns = 3
	maxEducationColumns  = 2
)

// batchHeader 批量导出的固定表头，CSV与XLSX共用同一行形状
func batchHeader() []string {
	header := []string{
		"Name", "Email", "Phone", "LinkedIn", "Skills",
		"Experience_Count", "Education_Count", "Overall_Score",
	}
	for i := 1; i <= maxExperienceColumns; i++ {
		header = append(header,
			fmt.Sprintf("Experience_%d_Position", i),
			fmt.Sprintf("Experience_%d_Company", i),
		)
	}
	for i := 1; i <= maxEducationColumns; i++ {
		header = append(header,
			fmt.Sprintf("Education_%d_Degree", i),
			fmt.Sprintf("Education_%d_Institution", i),
		)
	}
	return header
}

// flattenRow 把一条成功解析结果压平为一行表格数据
func flattenRow(result *types.ParseResult) []string {
	row := []string{
		result.Contact.Name,
		result.Contact.Email,
		result.Contact.Phone,
		result.Contact.LinkedIn,
		strings.Join(result.Skills, ", "),
		fmt.Sprintf("%d", len(result.Experience)),
		fmt.Sprintf("%d", len(result.Education)),
		fmt.Sprintf("%.1f", result.Scores.Overall),
	}

	for i := 0; i < maxExperienceColumns; i++ {
		if i < len(result.Experience) {
			row = append(row, result.Experience[i].Position, result.Experience[i].Company)
		} else {
			row = append(row, "", "")
		}
	}
	for i := 0; i < maxEducationColumns; i++ {
		if i < len(result.Education) {
			row = append(row, result.Education[i].Degree, result.Education[i].Institution)
		} else {
			row = append(row, "", "")
		}
	}
	return row
}

// successfulResults 过滤掉错误结果，批量导出只包含成功行
func successfulResults(results []*types.ParseResult) []*types.ParseResult {
	out := make([]*types.ParseResult, 0, len(results))
	for _, r := range results {
		if r != nil && !r.IsError() {
			out = append(out, r)
		}
	}
	return out
}
