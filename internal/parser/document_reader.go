package parser

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// 文档读取层的基础错误
var (
	// ErrUnsupportedFormat 文件扩展名不在支持范围内
	ErrUnsupportedFormat = errors.New("不支持的文件格式")
	// ErrDecodeFailed 文件损坏或解码失败
	ErrDecodeFailed = errors.New("文件解码失败")
)

// DocumentReader 按扩展名分发的文档文本读取器
// 支持 .pdf / .docx / .doc / .txt，向上只暴露 Read(path) -> text
type DocumentReader struct {
	pdfExtractor *EinoPDFExtractor
}

// NewDocumentReader 创建文档读取器
func NewDocumentReader(ctx context.Context) (*DocumentReader, error) {
	pdfExtractor, err := NewEinoPDFExtractor(ctx)
	if err != nil {
		return nil, err
	}
	return &DocumentReader{pdfExtractor: pdfExtractor}, nil
}

// SupportedExtension 判断扩展名是否受支持（批量扫描目录时使用）
func SupportedExtension(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".docx", ".doc", ".txt":
		return true
	}
	return false
}

// Read 解码文件并返回纯文本
// 未知扩展名返回ErrUnsupportedFormat；内容损坏返回ErrDecodeFailed
func (r *DocumentReader) Read(ctx context.Context, filePath string) (string, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".pdf":
		text, _, err := r.pdfExtractor.ExtractFromFile(ctx, filePath)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrDecodeFailed, err)
		}
		return text, nil

	case ".docx", ".doc":
		text, err := ExtractDocxText(filePath)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrDecodeFailed, err)
		}
		return text, nil

	case ".txt":
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrDecodeFailed, err)
		}
		return string(data), nil

	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filePath))
	}
}

// ReadBytes 从内存内容解码文本，uri仅用于选择解码器与日志标识
func (r *DocumentReader) ReadBytes(ctx context.Context, data []byte, uri string) (string, error) {
	switch strings.ToLower(filepath.Ext(uri)) {
	case ".pdf":
		text, _, err := r.pdfExtractor.ExtractFromBytes(ctx, data, uri)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrDecodeFailed, err)
		}
		return text, nil

	case ".docx", ".doc":
		text, err := ExtractDocxTextFromBytes(data)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrDecodeFailed, err)
		}
		return text, nil

	case ".txt":
		return string(data), nil

	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(uri))
	}
}
