package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"resume-insight-go/internal/types"
)

func TestCalculateScoresEmpty(t *testing.T) {
	scores := CalculateScores(&types.ParseResult{})

	assert.Zero(t, scores.ContactInfo)
	assert.Zero(t, scores.Experience)
	assert.Zero(t, scores.Education)
	assert.Zero(t, scores.Skills)
	assert.Zero(t, scores.Overall)
}

func TestCalculateScoresWeights(t *testing.T) {
	result := &types.ParseResult{
		Contact:    types.ContactInfo{Name: "Jane Doe", Email: "j@e.com", Phone: "5551234567"},
		Experience: make([]types.ExperienceEntry, 2),
		Education:  make([]types.EducationEntry, 1),
		Skills:     make([]string, 4),
	}
	scores := CalculateScores(result)

	assert.InDelta(t, 100.0, scores.ContactInfo, 0.001)
	assert.InDelta(t, 50.0, scores.Experience, 0.001)
	assert.InDelta(t, 50.0, scores.Education, 0.001)
	assert.InDelta(t, 20.0, scores.Skills, 0.001)
	// 0.2*100 + 0.3*50 + 0.2*50 + 0.3*20 = 51
	assert.InDelta(t, 51.0, scores.Overall, 0.001)
}

func TestCalculateScoresCapped(t *testing.T) {
	result := &types.ParseResult{
		Contact:    types.ContactInfo{Name: "Jane Doe", Email: "j@e.com", Phone: "5551234567"},
		Experience: make([]types.ExperienceEntry, 50),
		Education:  make([]types.EducationEntry, 50),
		Skills:     make([]string, 500),
	}
	scores := CalculateScores(result)

	assert.Equal(t, 100.0, scores.Experience)
	assert.Equal(t, 100.0, scores.Education)
	assert.Equal(t, 100.0, scores.Skills)
	assert.Equal(t, 100.0, scores.Overall)
}

// 任意条目数量组合下所有分项与总分都落在[0,100]
func TestCalculateScoresBounds(t *testing.T) {
	for _, expCount := range []int{0, 1, 3, 10, 100} {
		for _, eduCount := range []int{0, 1, 2, 40} {
			for _, skillCount := range []int{0, 5, 19, 300} {
				result := &types.ParseResult{
					Experience: make([]types.ExperienceEntry, expCount),
					Education:  make([]types.EducationEntry, eduCount),
					Skills:     make([]string, skillCount),
				}
				scores := CalculateScores(result)
				for _, v := range []float64{scores.ContactInfo, scores.Experience, scores.Education, scores.Skills, scores.Overall} {
					assert.GreaterOrEqual(t, v, 0.0)
					assert.LessOrEqual(t, v, 100.0)
				}
			}
		}
	}
}
