package enhancer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-insight-go/internal/types"
)

const sampleResumeText = `Jane Doe
jane.doe@email.com

EXPERIENCE
Senior Software Engineer at Acme Corp
Jan 2020 - Present
• Increased system throughput by 40% through caching.
• Led a team of 5 engineers.
• Maintained internal tooling.`

func baseResult() *types.ParseResult {
	return &types.ParseResult{
		File:    "jane.txt",
		Contact: types.ContactInfo{Name: "Jane Doe"},
		Experience: []types.ExperienceEntry{
			{Position: "Senior Software Engineer", Company: "Acme Corp", Duration: "Jan 2020 - Jan 2023"},
		},
	}
}

func TestEnhanceWithModel(t *testing.T) {
	mock := &mockChatModel{response: "```json\n" +
		`{"name": "Jane Doe", "entities": {"organizations": ["Acme Corp"], "percentages": ["40%"]}, "key_phrases": ["system throughput", "caching", "system throughput"]}` +
		"\n```"}
	e := New(mock)

	advanced, err := e.Enhance(context.Background(), sampleResumeText, baseResult())
	require.NoError(t, err)
	require.NotNil(t, advanced)

	assert.Equal(t, "Jane Doe", advanced.NameNLP)
	assert.Equal(t, []string{"Acme Corp"}, advanced.Entities.Orgs)
	assert.Equal(t, []string{"40%"}, advanced.Entities.Percentages)
	// 关键短语去重且保序
	assert.Equal(t, []string{"system throughput", "caching"}, advanced.KeyPhrases)
	assert.NotEmpty(t, advanced.Achievements)
	assert.NotEmpty(t, advanced.ExperienceLevel)
	assert.NotEmpty(t, mock.receivedMessages)
}

func TestEnhanceModelErrorDegrades(t *testing.T) {
	e := New(&mockChatModel{err: errors.New("connection refused")})

	advanced, err := e.Enhance(context.Background(), sampleResumeText, baseResult())
	require.NoError(t, err, "模型失败应降级而不是报错")
	require.NotNil(t, advanced)

	assert.Empty(t, advanced.Entities.Orgs)
	assert.Equal(t, "Jane Doe", advanced.NameNLP, "降级时沿用规则提取的姓名")
	assert.NotEmpty(t, advanced.Achievements, "规则部分不受模型失败影响")
}

func TestEnhanceMalformedJSONDegrades(t *testing.T) {
	e := New(&mockChatModel{response: "抱歉，我无法处理这份简历。"})

	advanced, err := e.Enhance(context.Background(), sampleResumeText, baseResult())
	require.NoError(t, err)
	require.NotNil(t, advanced)
	assert.Empty(t, advanced.KeyPhrases)
	assert.Equal(t, "Mid Level", advanced.ExperienceLevel)
}

func TestEnhanceWithoutModel(t *testing.T) {
	e := New(nil)

	advanced, err := e.Enhance(context.Background(), sampleResumeText, baseResult())
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", advanced.NameNLP)
	assert.NotEmpty(t, advanced.Achievements)
}

func TestAnalyzeExperienceLevel(t *testing.T) {
	e := New(nil)

	tests := []struct {
		name      string
		durations []string
		want      string
	}{
		{"无工作经历", nil, "Entry Level"},
		{"不足两年", []string{"Jan 2021 - Jun 2022"}, "Entry Level"},
		{"恰好24个月进入Mid", []string{"Jan 2020 - Jan 2022"}, "Mid Level"},
		{"全称月份", []string{"January 2015 - January 2021"}, "Senior Level"},
		{"多段累计超过十年", []string{"Jan 2005 - Jan 2011", "Jan 2011 - Jan 2017"}, "Expert/Executive Level"},
		{"无法解析的时长计0", []string{"2020 to 2022"}, "Entry Level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var entries []types.ExperienceEntry
			for _, d := range tt.durations {
				entries = append(entries, types.ExperienceEntry{Position: "Engineer", Duration: d})
			}
			assert.Equal(t, tt.want, e.AnalyzeExperienceLevel(entries))
		})
	}
}

func TestDurationMonthsPresent(t *testing.T) {
	now := time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 36, durationMonths("Jan 2020 - Present", now))
	assert.Equal(t, 0, durationMonths("since forever", now))
}

func TestExtractAchievements(t *testing.T) {
	e := New(nil)

	text := "Increased revenue by 40% in one year. Developed internal software. Led a team of 12 engineers. Just a plain sentence."
	achievements := e.ExtractAchievements(text)

	require.Len(t, achievements, 2)
	assert.Contains(t, achievements[0], "Increased revenue")
	assert.Contains(t, achievements[1], "Led a team")
}

func TestValidateNameRejectsInstitutionWords(t *testing.T) {
	assert.Empty(t, validateName("Jane Smith University Program"))
	assert.Empty(t, validateName("jane smith"))
	assert.Empty(t, validateName("Jane"))
	assert.Equal(t, "Jane Smith", validateName("Jane Smith"))
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, extractJSON("```json\n{\"a\": 1}\n```"))
	assert.Equal(t, `{"a": {"b": 2}}`, extractJSON(`前置说明 {"a": {"b": 2}} 后置说明`))
	assert.Empty(t, extractJSON("没有任何JSON"))
}
