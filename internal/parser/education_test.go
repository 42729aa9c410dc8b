package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-insight-go/internal/types"
)

func TestExtractEducationBasic(t *testing.T) {
	e := NewExtractor(nil)

	text := "EDUCATION\nBachelor of Science in Computer Science, State University, 2015\nGPA: 3.8/4.0"
	sections := e.Segment(text)
	entries := e.ExtractEducation(text, sections)

	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Degree, "Bachelor"))
	assert.Contains(t, entries[0].Institution, "University")
	assert.Equal(t, "2015", entries[0].Year)
	assert.Equal(t, "3.8", entries[0].GPA)
}

func TestExtractEducationDedupe(t *testing.T) {
	e := NewExtractor(nil)

	// 相同(degree, institution)的两次匹配只保留一条
	text := "Bachelor of Science, State University\nBachelor of Science, State University"
	entries := e.ExtractEducation(text, types.SectionMap{})
	assert.Len(t, entries, 1)
}

func TestExtractEducationMultipleDegrees(t *testing.T) {
	e := NewExtractor(nil)

	text := "Master of Science, Tech Institute, 2019\nBachelor of Arts, City College, 2015"
	entries := e.ExtractEducation(text, types.SectionMap{})

	require.Len(t, entries, 2)
	degrees := []string{entries[0].Degree, entries[1].Degree}
	joined := strings.Join(degrees, " | ")
	assert.Contains(t, joined, "Bachelor")
	assert.Contains(t, joined, "Master")
}

func TestLatestPlausibleYear(t *testing.T) {
	e := NewExtractor(nil)

	// 1950之前与未来年份不可信，取可信范围内的最大值
	assert.Equal(t, "2015", e.latestPlausibleYear("1949 2015 2099 2008"))
	assert.Empty(t, e.latestPlausibleYear("1900 2099"))
	assert.Empty(t, e.latestPlausibleYear("no years"))
}

func TestExtractEducationFallsBackToFullText(t *testing.T) {
	e := NewExtractor(nil)

	// 无education章节时在全文扫描
	entries := e.ExtractEducation("随便一段文字 Bachelor of Engineering, North University", types.SectionMap{})
	require.NotEmpty(t, entries)
	assert.Contains(t, entries[0].Institution, "University")
}

func TestExtractEducationAbbreviatedDegrees(t *testing.T) {
	e := NewExtractor(nil)

	entries := e.ExtractEducation("MBA in Finance, Commerce School, 2018", types.SectionMap{})
	require.NotEmpty(t, entries)

	var degrees []string
	for _, entry := range entries {
		degrees = append(degrees, entry.Degree)
	}
	assert.Contains(t, strings.Join(degrees, " | "), "MBA")
}
