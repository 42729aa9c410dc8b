package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-insight-go/internal/types"
)

func TestExtractProjects(t *testing.T) {
	e := NewExtractor(nil)

	block := "Inventory System\nBuilt a warehouse tracker\nTechnologies: Python, Docker and AWS\nAnalytics Platform\nDashboards for sales\nTech stack: React"
	projects := e.ExtractProjects(types.SectionMap{types.SectionProjects: block})

	require.Len(t, projects, 2)
	assert.Equal(t, "Inventory System", projects[0].Name)
	assert.Equal(t, []string{"Built a warehouse tracker"}, projects[0].Description)
	// 技术栈行是词表子串匹配，单字母技能"R"会被"Docker"等词捎带命中
	assert.Equal(t, []string{"AWS", "Docker", "Python", "R"}, projects[0].Technologies)

	assert.Equal(t, "Analytics Platform", projects[1].Name)
	assert.Equal(t, []string{"R", "React"}, projects[1].Technologies)
}

func TestExtractProjectsAccumulatesTechLines(t *testing.T) {
	e := NewExtractor(nil)

	// 同一项目出现多个技术栈行时技能累积，而不是后行覆盖前行
	block := "Inventory System\nTechnologies: Python\nBuilt with: Docker"
	projects := e.ExtractProjects(types.SectionMap{types.SectionProjects: block})

	require.Len(t, projects, 1)
	assert.Equal(t, []string{"Docker", "Python", "R"}, projects[0].Technologies)
}

func TestExtractProjectsNoSectionNoFallback(t *testing.T) {
	e := NewExtractor(nil)

	// 与经历和证书不同，项目不做全文回退
	assert.Empty(t, e.ExtractProjects(types.SectionMap{}))
}

func TestExtractCertifications(t *testing.T) {
	e := NewExtractor(nil)

	block := "AWS Certified Solutions Architect 2021\nGoogle Cloud Professional\nok\nScrum Master Certification"
	certs := e.ExtractCertifications("", types.SectionMap{types.SectionCertifications: block})

	require.Len(t, certs, 3, "过短的行应被跳过")

	assert.Equal(t, "AWS Certified Solutions Architect", certs[0].Name)
	assert.Equal(t, "2021", certs[0].Year)
	assert.Equal(t, "AWS", certs[0].Issuer, "签发机构按词表顺序首个命中")

	assert.Equal(t, "Google Cloud Professional", certs[1].Name)
	assert.Equal(t, "Google", certs[1].Issuer)
	assert.Empty(t, certs[1].Year)

	assert.Equal(t, "Scrum", certs[2].Issuer)
}

func TestExtractCertificationsStripsRepeatedYear(t *testing.T) {
	e := NewExtractor(nil)

	block := "AWS Certified 2020 Renewal 2020"
	certs := e.ExtractCertifications("", types.SectionMap{types.SectionCertifications: block})

	require.Len(t, certs, 1)
	assert.Equal(t, "2020", certs[0].Year)
	// 年份的每次出现都被剥离，留下的双空格与原始行为一致
	assert.Equal(t, "AWS Certified  Renewal", certs[0].Name)
}

func TestExtractCertificationsCarveOut(t *testing.T) {
	e := NewExtractor(nil)

	text := "intro\nCertifications:\nCompTIA Security Plus 2020\nSUMMARY\nexperienced engineer"
	certs := e.ExtractCertifications(text, types.SectionMap{})

	require.Len(t, certs, 1)
	assert.Equal(t, "CompTIA Security Plus", certs[0].Name)
	assert.Equal(t, "CompTIA", certs[0].Issuer)
	assert.Equal(t, "2020", certs[0].Year)
}
