package exporter

import (
	"encoding/csv"
	"fmt"
	"os"

	"resume-insight-go/internal/types"
)

// ExportCSV 把一批解析结果压平导出为CSV，错误结果被跳过
func ExportCSV(results []*types.ParseResult, outputFile string) error {
	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("创建CSV文件 %s 失败: %w", outputFile, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(batchHeader()); err != nil {
		return fmt.Errorf("写入CSV表头失败: %w", err)
	}
	for _, result := range successfulResults(results) {
		if err := writer.Write(flattenRow(result)); err != nil {
			return fmt.Errorf("写入CSV行失败 (%s): %w", result.File, err)
		}
	}
	return nil
}
