package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-insight-go/internal/types"
)

const segmentSample = `Jane Doe
jane.doe@email.com

EXPERIENCE
Senior Software Engineer at Acme Corp
• Built scalable services

EDUCATION
Bachelor of Science, State University

SKILLS
Python, Docker`

func TestSegmentBasic(t *testing.T) {
	e := NewExtractor(nil)
	sections := e.Segment(segmentSample)

	assert.Contains(t, sections[types.SectionHeader], "Jane Doe")
	assert.Contains(t, sections[types.SectionExperience], "Acme Corp")
	assert.Contains(t, sections[types.SectionEducation], "State University")
	assert.Contains(t, sections[types.SectionSkills], "Python")
	// 标题行本身不进入任何章节
	for _, block := range sections {
		assert.NotContains(t, block, "EXPERIENCE")
		assert.NotContains(t, block, "EDUCATION")
	}
}

// 每个非标题行必须恰好归属一个章节：不丢行、不重复
func TestSegmentPartitionProperty(t *testing.T) {
	e := NewExtractor(nil)
	sections := e.Segment(segmentSample)

	var collected []string
	for _, block := range sections {
		collected = append(collected, strings.Split(block, "\n")...)
	}

	counts := make(map[string]int)
	for _, line := range collected {
		counts[line]++
	}

	triggers := map[string]bool{"EXPERIENCE": true, "EDUCATION": true, "SKILLS": true}
	originalNonTrigger := 0
	for _, line := range strings.Split(segmentSample, "\n") {
		if triggers[strings.TrimSpace(line)] {
			continue
		}
		originalNonTrigger++
		require.GreaterOrEqual(t, counts[line], 1, "行被丢弃: %q", line)
	}
	assert.Equal(t, originalNonTrigger, len(collected), "行总数不一致，存在重复或丢失")
}

func TestSegmentDuplicateLabelsAppend(t *testing.T) {
	e := NewExtractor(nil)
	text := "EXPERIENCE\nfirst block\nEDUCATION\nsome school\nEXPERIENCE\nsecond block"
	sections := e.Segment(text)

	assert.Contains(t, sections[types.SectionExperience], "first block")
	assert.Contains(t, sections[types.SectionExperience], "second block")
	assert.Contains(t, sections[types.SectionEducation], "some school")
}

func TestSegmentNoKeywords(t *testing.T) {
	e := NewExtractor(nil)
	sections := e.Segment("just some text\nwith no headings")

	require.Len(t, sections, 1)
	assert.Equal(t, "just some text\nwith no headings", sections[types.SectionHeader])
}

// 一行同时命中多组关键词时按固定扫描顺序归类，experience优先
func TestSegmentScanOrder(t *testing.T) {
	e := NewExtractor(nil)
	sections := e.Segment("header\nEducation and Experience\ncontent line")

	assert.Contains(t, sections[types.SectionExperience], "content line")
	_, hasEducation := sections[types.SectionEducation]
	assert.False(t, hasEducation)
}
