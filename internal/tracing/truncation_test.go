package tracing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeAttributeValueMasksSensitiveNames(t *testing.T) {
	assert.Equal(t, "ja"+strings.Repeat("*", 16)+"om", SafeAttributeValue("user.email", "jane.doe@example.com", DefaultMaxLength))
	assert.Equal(t, "13*******78", SafeAttributeValue("contact_phone", "13812345678", DefaultMaxLength))
	assert.Equal(t, "张*", SafeAttributeValue("姓名", "张三", DefaultMaxLength))
	assert.Equal(t, "王*明", SafeAttributeValue("candidate_name", "王小明", DefaultMaxLength))
	assert.Equal(t, "*", SafeAttributeValue("token", "x", DefaultMaxLength))
}

func TestSafeAttributeValueTruncatesLongValues(t *testing.T) {
	long := strings.Repeat("a", 300)
	got := SafeAttributeValue("resume.filename", long, 20)
	assert.Len(t, []rune(got), 20)
	assert.Contains(t, got, "...")

	short := "resume.pdf"
	assert.Equal(t, short, SafeAttributeValue("resume.filename", short, 20))
}
