package processor

import (
	"errors"
	"fmt"
)

// 定义基础错误类型
var (
	ErrReadFileFailed = errors.New("读取简历文件失败")
	ErrEmptyText      = errors.New("简历文本为空")
	ErrEnhanceFailed  = errors.New("简历增强分析失败")
	ErrExportFailed   = errors.New("导出解析结果失败")
	ErrNoResumesFound = errors.New("目录中未找到可解析的简历文件")
)

// ResumeProcessError 包含详细错误信息的自定义错误
type ResumeProcessError struct {
	File    string
	Op      string
	BaseErr error
	Detail  string
}

func (e *ResumeProcessError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (操作:%s, 文件:%s): %s", e.BaseErr, e.Op, e.File, e.Detail)
	}
	return fmt.Sprintf("%s (操作:%s, 文件:%s)", e.BaseErr, e.Op, e.File)
}

func (e *ResumeProcessError) Unwrap() error {
	return e.BaseErr
}

// Is 实现 errors.Is 接口以支持错误比较
func (e *ResumeProcessError) Is(target error) bool {
	return errors.Is(e.BaseErr, target)
}

// 错误构造函数
func NewReadError(file, detail string) error {
	return &ResumeProcessError{
		File:    file,
		Op:      "read",
		BaseErr: ErrReadFileFailed,
		Detail:  detail,
	}
}

func NewEnhanceError(file, detail string) error {
	return &ResumeProcessError{
		File:    file,
		Op:      "enhance",
		BaseErr: ErrEnhanceFailed,
		Detail:  detail,
	}
}

func NewExportError(file, detail string) error {
	return &ResumeProcessError{
		File:    file,
		Op:      "export",
		BaseErr: ErrExportFailed,
		Detail:  detail,
	}
}
