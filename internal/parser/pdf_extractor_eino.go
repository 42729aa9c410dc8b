package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"
	"github.com/rs/zerolog"

	"resume-insight-go/internal/logger"
)

// PDF单文件提取的超时上限
const pdfExtractTimeout = 30 * time.Second

// EinoPDFExtractor 使用 Eino PDF Parser 提取简历全文
type EinoPDFExtractor struct {
	parser *pdf.PDFParser
	log    zerolog.Logger
}

// NewEinoPDFExtractor 初始化PDF文本提取器
// 配置为不按页切分，整份文档作为单个连续文本返回
func NewEinoPDFExtractor(ctx context.Context) (*EinoPDFExtractor, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{ToPages: false})
	if err != nil {
		return nil, fmt.Errorf("创建Eino PDF解析器失败: %w", err)
	}
	return &EinoPDFExtractor{
		parser: p,
		log:    logger.Logger.With().Str("component", "pdf_extractor").Logger(),
	}, nil
}

// ExtractFromFile 从PDF文件路径提取全文与解析元数据
func (e *EinoPDFExtractor) ExtractFromFile(ctx context.Context, filePath string) (string, map[string]interface{}, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", nil, fmt.Errorf("打开PDF文件 %s 失败: %w", filePath, err)
	}
	defer file.Close()

	extraMeta := map[string]interface{}{
		"source_file_path": filePath,
		"extraction_time":  time.Now().Format(time.RFC3339),
	}
	return e.ExtractFromReader(ctx, file, filePath, extraMeta)
}

// ExtractFromReader 从io.Reader提取全文，多文档结果按页拼接
func (e *EinoPDFExtractor) ExtractFromReader(ctx context.Context, reader io.Reader, uri string, extraMeta map[string]interface{}) (string, map[string]interface{}, error) {
	if extraMeta == nil {
		extraMeta = make(map[string]interface{})
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, pdfExtractTimeout)
	defer cancel()

	docs, err := e.parser.Parse(ctx, reader,
		einoParser.WithURI(uri),
		einoParser.WithExtraMeta(extraMeta),
	)
	duration := time.Since(start)
	if err != nil {
		e.log.Error().Err(err).Str("uri", uri).Dur("duration", duration).Msg("PDF文本提取失败")
		return "", extraMeta, fmt.Errorf("eino PDF解析失败 (%s): %w", uri, err)
	}
	if len(docs) == 0 {
		return "", extraMeta, fmt.Errorf("eino PDF解析无输出 (%s)", uri)
	}

	var content bytes.Buffer
	for i, doc := range docs {
		content.WriteString(doc.Content)
		if i < len(docs)-1 {
			content.WriteString("\n")
		}
	}

	metadata := make(map[string]interface{})
	if docs[0].MetaData != nil {
		for k, v := range docs[0].MetaData {
			metadata[k] = v
		}
	}
	for k, v := range extraMeta {
		metadata[k] = v
	}
	metadata["document_count"] = len(docs)
	metadata["text_length"] = content.Len()
	metadata["processing_duration_ms"] = duration.Milliseconds()

	e.log.Debug().Str("uri", uri).Int("chars", content.Len()).Dur("duration", duration).Msg("PDF文本提取完成")
	return content.String(), metadata, nil
}

// ExtractFromBytes 从字节切片提取全文
func (e *EinoPDFExtractor) ExtractFromBytes(ctx context.Context, data []byte, uri string) (string, map[string]interface{}, error) {
	return e.ExtractFromReader(ctx, bytes.NewReader(data), uri, nil)
}
