package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"resume-insight-go/internal/types"
)

// SaveJSON 把单条解析结果写成JSON文件，文件名为 {姓名}_{时间戳}.json
// 返回生成的文件路径
func SaveJSON(result *types.ParseResult, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("创建输出目录 %s 失败: %w", outputDir, err)
	}

	name := result.Contact.Name
	if name == "" {
		name = "unknown"
	}
	timestamp := time.Now().Format("20060102_150405")
	fileName := fmt.Sprintf("%s_%s.json", strings.ReplaceAll(name, " ", "_"), timestamp)
	filePath := filepath.Join(outputDir, fileName)

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("序列化解析结果失败: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("写入JSON文件 %s 失败: %w", filePath, err)
	}
	return filePath, nil
}
