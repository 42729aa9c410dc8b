package processor

import (
	"context"

	"resume-insight-go/internal/types"
)

// TextReader 从简历文件解码纯文本
// 未知扩展名与损坏内容分别以 parser.ErrUnsupportedFormat / parser.ErrDecodeFailed 报告
type TextReader interface {
	Read(ctx context.Context, filePath string) (string, error)
	ReadBytes(ctx context.Context, data []byte, uri string) (string, error)
}

// Enhancer 在规则解析结果之上做增强分析（实体、关键短语、成就、经验级别）
// 返回错误时调用方保留规则解析结果，只丢弃增强部分
type Enhancer interface {
	Enhance(ctx context.Context, text string, result *types.ParseResult) (*types.AdvancedInfo, error)
}
