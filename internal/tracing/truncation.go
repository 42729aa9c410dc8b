package tracing

import "strings"

// DefaultMaxLength 追踪属性值的默认最大长度
const DefaultMaxLength = 200

// 属性名中出现这些关键字时，属性值视为个人敏感信息
var sensitiveAttributeKeywords = []string{
	"email", "phone", "password", "secret", "token",
	"name", "姓名", "address", "地址", "身份证", "id_card",
}

// SafeAttributeValue 把属性值处理为可安全写入span的形式
// 敏感属性做掩码，其余属性超长时截断
func SafeAttributeValue(name, value string, maxLength int) string {
	lowerName := strings.ToLower(name)
	for _, keyword := range sensitiveAttributeKeywords {
		if strings.Contains(lowerName, keyword) {
			return maskValue(value)
		}
	}
	return truncateMiddle(value, maxLength)
}

// maskValue 保留首尾少量字符，中间以星号替代
func maskValue(value string) string {
	runes := []rune(value)
	switch n := len(runes); {
	case n == 0:
		return ""
	case n <= 1:
		return "*"
	case n == 2:
		return string(runes[:1]) + "*"
	case n <= 4:
		return string(runes[:1]) + strings.Repeat("*", n-2) + string(runes[n-1:])
	default:
		return string(runes[:2]) + strings.Repeat("*", n-4) + string(runes[n-2:])
	}
}

// truncateMiddle 超长时保留首尾两段，中间用...连接
func truncateMiddle(s string, maxLength int) string {
	runes := []rune(s)
	if len(runes) <= maxLength {
		return s
	}
	if maxLength <= 3 {
		return string(runes[:maxLength])
	}
	half := (maxLength - 3) / 2
	if half < 1 {
		half = 1
	}
	return string(runes[:half]) + "..." + string(runes[len(runes)-half:])
}
