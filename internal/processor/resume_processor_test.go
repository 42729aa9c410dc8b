package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-insight-go/internal/types"
)

const workedExampleResume = "Jane Doe\njane.doe@email.com\n(555) 123-4567\n\nEXPERIENCE\nSenior Software Engineer at Acme Corp\nJan 2020 - Present\n• Built scalable services\n\nEDUCATION\nBachelor of Science in Computer Science, State University, 2015\nGPA: 3.8"

func newTestParser(t *testing.T, opts ...ProcessorOption) *ResumeParser {
	t.Helper()
	p, err := NewResumeParser(context.Background(), opts...)
	require.NoError(t, err)
	return p
}

func TestParseTextWorkedExample(t *testing.T) {
	p := newTestParser(t)
	result := p.ParseText(context.Background(), "jane_doe.txt", workedExampleResume)

	require.False(t, result.IsError(), "解析不应产出错误结果: %s", result.Error)

	assert.Equal(t, "Jane Doe", result.Contact.Name)
	assert.Equal(t, "jane.doe@email.com", result.Contact.Email)

	digits := 0
	for _, r := range result.Contact.Phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	assert.Equal(t, 10, digits, "电话应规范为10位数字")

	require.Len(t, result.Experience, 1)
	assert.Contains(t, result.Experience[0].Position, "Engineer")
	assert.Equal(t, "Acme Corp", result.Experience[0].Company)
	assert.Contains(t, result.Experience[0].Duration, "Jan 2020")
	assert.Contains(t, result.Experience[0].Duration, "Present")

	require.Len(t, result.Education, 1)
	assert.True(t, strings.HasPrefix(result.Education[0].Degree, "Bachelor"))
	assert.Contains(t, result.Education[0].Institution, "University")
	assert.Equal(t, "2015", result.Education[0].Year)
	assert.Equal(t, "3.8", result.Education[0].GPA)

	assert.Greater(t, result.Scores.Overall, 0.0)
	assert.LessOrEqual(t, result.Scores.Overall, 100.0)
}

func TestParseTextEmpty(t *testing.T) {
	p := newTestParser(t)

	for _, text := range []string{"", "   \n\t  "} {
		result := p.ParseText(context.Background(), "empty.txt", text)
		require.True(t, result.IsError())
		assert.Equal(t, types.ErrKindEmptyText, result.ErrorKind)
		assert.Equal(t, "empty.txt", result.File)
	}
}

func TestParseFileUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "resume.xyz")
	require.NoError(t, os.WriteFile(path, []byte("whatever"), 0644))

	p := newTestParser(t)
	result := p.ParseFile(context.Background(), path)

	require.True(t, result.IsError())
	assert.Equal(t, types.ErrKindUnsupportedFormat, result.ErrorKind)
	assert.Equal(t, "resume.xyz", result.File)
}

func TestParseDirectoryBatch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_jane.txt"), []byte(workedExampleResume), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_broken.xyz"), []byte("junk"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c_john.txt"), []byte("John Roe\njohn@example.com\n\nSKILLS\nPython, Docker"), 0644))

	p := newTestParser(t, WithWorkers(2))
	results, err := p.ParseDirectory(context.Background(), dir)
	require.NoError(t, err)

	// .xyz 不在受支持扩展名内，目录扫描直接跳过
	require.Len(t, results, 2)
	assert.Equal(t, "a_jane.txt", results[0].File)
	assert.Equal(t, "c_john.txt", results[1].File)
	assert.False(t, results[0].IsError())
	assert.False(t, results[1].IsError())
}

func TestParseFilesMixedBatch(t *testing.T) {
	dir := t.TempDir()
	okA := filepath.Join(dir, "a.txt")
	bad := filepath.Join(dir, "b.xyz")
	okC := filepath.Join(dir, "c.txt")
	require.NoError(t, os.WriteFile(okA, []byte(workedExampleResume), 0644))
	require.NoError(t, os.WriteFile(bad, []byte("junk"), 0644))
	require.NoError(t, os.WriteFile(okC, []byte("John Roe\njohn@example.com\n\nSKILLS\nPython, Docker"), 0644))

	p := newTestParser(t, WithWorkers(3))
	results := p.ParseFiles(context.Background(), []string{okA, bad, okC})

	require.Len(t, results, 3)
	assert.False(t, results[0].IsError())
	require.True(t, results[1].IsError())
	assert.Equal(t, "b.xyz", results[1].File)
	assert.Equal(t, types.ErrKindUnsupportedFormat, results[1].ErrorKind)
	assert.False(t, results[2].IsError())
}

func TestParseDirectoryEmpty(t *testing.T) {
	p := newTestParser(t)
	_, err := p.ParseDirectory(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, ErrNoResumesFound)
}

// failingEnhancer 总是失败的增强器，用于验证降级行为
type failingEnhancer struct{}

func (failingEnhancer) Enhance(ctx context.Context, text string, result *types.ParseResult) (*types.AdvancedInfo, error) {
	return nil, errors.New("llm unavailable")
}

func TestEnhancerFailureKeepsBaseResult(t *testing.T) {
	p := newTestParser(t, WithEnhancer(failingEnhancer{}))
	result := p.ParseText(context.Background(), "jane.txt", workedExampleResume)

	require.False(t, result.IsError(), "增强失败不应污染基础解析结果")
	assert.Nil(t, result.Advanced)
	assert.Equal(t, "Jane Doe", result.Contact.Name)
}
