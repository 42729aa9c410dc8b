package processor

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"resume-insight-go/internal/logger"
	"resume-insight-go/internal/parser"
	"resume-insight-go/internal/types"
)

// ResumeParser 简历解析编排器
// 串联 文本解码 -> 分段 -> 字段提取 -> 评分 -> 可选增强 的完整流程
// 单文件解析失败不返回error，而是产出携带错误标记的结果，便于批量处理继续推进
type ResumeParser struct {
	reader    TextReader
	extractor *parser.Extractor
	enhancer  Enhancer
	workers   int
	log       zerolog.Logger
}

// ProcessorOption 解析器选项函数类型
type ProcessorOption func(*ResumeParser)

// WithTextReader 替换文档文本读取器（测试时注入内存实现）
func WithTextReader(reader TextReader) ProcessorOption {
	return func(p *ResumeParser) {
		p.reader = reader
	}
}

// WithExtractor 替换字段提取器
func WithExtractor(extractor *parser.Extractor) ProcessorOption {
	return func(p *ResumeParser) {
		p.extractor = extractor
	}
}

// WithEnhancer 启用增强分析层
func WithEnhancer(enhancer Enhancer) ProcessorOption {
	return func(p *ResumeParser) {
		p.enhancer = enhancer
	}
}

// WithWorkers 设置批量解析的工作协程数
func WithWorkers(n int) ProcessorOption {
	return func(p *ResumeParser) {
		if n > 0 {
			p.workers = n
		}
	}
}

// NewResumeParser 创建解析编排器，未注入的组件使用默认实现
func NewResumeParser(ctx context.Context, opts ...ProcessorOption) (*ResumeParser, error) {
	p := &ResumeParser{
		extractor: parser.NewExtractor(nil),
		workers:   3,
		log:       logger.Logger.With().Str("component", "resume_parser").Logger(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.reader == nil {
		reader, err := parser.NewDocumentReader(ctx)
		if err != nil {
			return nil, err
		}
		p.reader = reader
	}
	return p, nil
}

// ParseFile 解析单个简历文件
func (p *ResumeParser) ParseFile(ctx context.Context, filePath string) *types.ParseResult {
	fileName := filepath.Base(filePath)
	start := time.Now()

	text, err := p.reader.Read(ctx, filePath)
	if err != nil {
		kind := types.ErrKindDecodeError
		if errors.Is(err, parser.ErrUnsupportedFormat) {
			kind = types.ErrKindUnsupportedFormat
		}
		p.log.Warn().Err(err).Str("file", fileName).Msg("简历文件解码失败")
		return types.NewErrorResult(fileName, kind, err.Error())
	}

	result := p.ParseText(ctx, fileName, text)
	p.log.Info().
		Str("file", fileName).
		Int("text_length", result.TextLength).
		Float64("overall_score", result.Scores.Overall).
		Dur("duration", time.Since(start)).
		Msg("简历解析完成")
	return result
}

// ParseBytes 解析内存中的简历内容，uri用于选择解码器与结果标识
func (p *ResumeParser) ParseBytes(ctx context.Context, data []byte, uri string) *types.ParseResult {
	fileName := filepath.Base(uri)

	text, err := p.reader.ReadBytes(ctx, data, uri)
	if err != nil {
		kind := types.ErrKindDecodeError
		if errors.Is(err, parser.ErrUnsupportedFormat) {
			kind = types.ErrKindUnsupportedFormat
		}
		return types.NewErrorResult(fileName, kind, err.Error())
	}
	return p.ParseText(ctx, fileName, text)
}

// ParseText 对已解码的纯文本执行分段、提取与评分
func (p *ResumeParser) ParseText(ctx context.Context, fileName, text string) *types.ParseResult {
	if strings.TrimSpace(text) == "" {
		return types.NewErrorResult(fileName, types.ErrKindEmptyText, ErrEmptyText.Error())
	}

	sections := p.extractor.Segment(text)

	result := &types.ParseResult{
		File:           fileName,
		Contact:        p.extractor.ExtractContactInfo(text),
		Skills:         p.extractor.ExtractSkills(text),
		Education:      p.extractor.ExtractEducation(text, sections),
		Experience:     p.extractor.ExtractExperience(text, sections),
		Projects:       p.extractor.ExtractProjects(sections),
		Certifications: p.extractor.ExtractCertifications(text, sections),
		Sections:       sections.Labels(),
		TextLength:     len(text),
		ParsedAt:       time.Now(),
	}
	result.Scores = parser.CalculateScores(result)

	// 增强层失败时保留规则解析结果，只记录告警
	if p.enhancer != nil {
		advanced, err := p.enhancer.Enhance(ctx, text, result)
		if err != nil {
			p.log.Warn().Err(err).Str("file", fileName).Msg("增强分析失败，保留基础解析结果")
		} else {
			result.Advanced = advanced
		}
	}
	return result
}
