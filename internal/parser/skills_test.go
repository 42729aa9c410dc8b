package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSkills(t *testing.T) {
	e := NewExtractor(nil)

	text := "Proficient in Python and Docker. Deployed on AWS using Kubernetes. python everywhere."
	skills := e.ExtractSkills(text)

	assert.Contains(t, skills, "Python")
	assert.Contains(t, skills, "Docker")
	assert.Contains(t, skills, "AWS")
	assert.Contains(t, skills, "Kubernetes")
	// 去重且字典序
	assert.Equal(t, []string{"AWS", "Docker", "Kubernetes", "Python"}, skills)
}

func TestExtractSkillsIdempotent(t *testing.T) {
	e := NewExtractor(nil)

	text := "Python, Java, machine learning, React and node.js on GCP"
	first := e.ExtractSkills(text)
	second := e.ExtractSkills(text)
	assert.Equal(t, first, second)
}

// 全词边界：单字母技能"r"不得命中普通单词中的字母
func TestExtractSkillsWholeWordOnly(t *testing.T) {
	e := NewExtractor(nil)

	assert.NotContains(t, e.ExtractSkills("professional programmer"), "R")
	assert.Contains(t, e.ExtractSkills("statistical analysis in R and MATLAB"), "R")
	// "java"不得命中"javascript"
	skills := e.ExtractSkills("pure javascript shop")
	assert.Contains(t, skills, "Javascript")
	assert.NotContains(t, skills, "Java")
}

func TestExtractSkillsMultiWord(t *testing.T) {
	e := NewExtractor(nil)

	skills := e.ExtractSkills("experience with machine learning and spring boot")
	assert.Contains(t, skills, "Machine Learning")
	assert.Contains(t, skills, "Spring Boot")
}

func TestCanonicalSkillName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"aws", "AWS"},
		{"go", "GO"},
		{"sql", "SQL"},
		{"python", "Python"},
		{"machine learning", "Machine Learning"},
		{"node.js", "Node.Js"},
		{"scikit-learn", "Scikit-Learn"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanonicalSkillName(tt.in), "输入: %s", tt.in)
	}
}
