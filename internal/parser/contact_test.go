package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractName(t *testing.T) {
	e := NewExtractor(nil)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"首行姓名", "Jane Doe\njane@email.com", "Jane Doe"},
		{"跳过邮箱行", "jane@email.com\nJane Doe", "Jane Doe"},
		{"跳过链接行", "https://janedoe.dev\nwww.janedoe.dev\nJane Doe", "Jane Doe"},
		{"跳过套话行", "Curriculum Vitae\nJane Doe", "Jane Doe"},
		{"拒绝小写开头", "jane doe\nnothing else here", ""},
		{"拒绝带数字的行", "Jane Doe 2024\nno name", ""},
		{"拒绝单个词", "Jane\nnothing", ""},
		{"拒绝超过四个词", "Jane Marie Anne Louise Doe", ""},
		{"三到四个词可接受", "Jane Marie Doe", "Jane Marie Doe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.ExtractName(tt.text))
		})
	}
}

func TestExtractNameOnlyScansFirstFifteenLines(t *testing.T) {
	e := NewExtractor(nil)

	var text string
	for i := 0; i < 15; i++ {
		text += "filler line lowercase\n"
	}
	text += "Jane Doe\n"
	assert.Empty(t, e.ExtractName(text))
}

func TestExtractEmail(t *testing.T) {
	e := NewExtractor(nil)
	assert.Equal(t, "jane.doe@email.com", e.ExtractEmail("联系方式: jane.doe@email.com 或电话"))
	assert.Empty(t, e.ExtractEmail("没有邮箱"))
}

func TestExtractPhone(t *testing.T) {
	e := NewExtractor(nil)

	tests := []struct {
		name  string
		text  string
		valid bool
	}{
		{"美式括号格式", "(555) 123-4567", true},
		{"点分格式", "555.123.4567", true},
		{"带国家码", "+1 555 123 4567", true},
		{"位数不足被拒绝", "call 12345", false},
		{"无号码", "no digits here", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ExtractPhone(tt.text)
			if tt.valid {
				assert.NotEmpty(t, got)
				digits := stripNonDigits(got)
				assert.GreaterOrEqual(t, len(digits), 10)
				assert.LessOrEqual(t, len(digits), 15)
			} else {
				assert.Empty(t, got)
			}
		})
	}
}

func TestExtractLinkedInAndGitHub(t *testing.T) {
	e := NewExtractor(nil)
	text := "profiles: linkedin.com/in/jane-doe github.com/janedoe"

	assert.Equal(t, "https://linkedin.com/in/jane-doe", e.ExtractLinkedIn(text))
	assert.Equal(t, "https://github.com/janedoe", e.ExtractGitHub(text))
	assert.Empty(t, e.ExtractLinkedIn("no profile"))
}

func TestExtractWebsiteSkipsSocialDomains(t *testing.T) {
	e := NewExtractor(nil)

	text := "https://linkedin.com/in/jane https://github.com/jane https://janedoe.dev"
	assert.Equal(t, "https://janedoe.dev", e.ExtractWebsite(text))
	assert.Empty(t, e.ExtractWebsite("https://twitter.com/jane"))
}

func TestExtractContactInfoIndependentFields(t *testing.T) {
	e := NewExtractor(nil)

	// 只有邮箱时其余字段为空，互不影响
	contact := e.ExtractContactInfo("jane@email.com")
	assert.Empty(t, contact.Name)
	assert.Equal(t, "jane@email.com", contact.Email)
	assert.Empty(t, contact.Phone)
}
