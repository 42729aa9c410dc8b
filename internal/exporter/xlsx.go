package exporter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"resume-insight-go/internal/types"
)

const resultSheetName = "Parsed Resumes"

// ExportXLSX 把一批解析结果导出为Excel工作簿，行形状与CSV一致
func ExportXLSX(results []*types.ParseResult, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath = outputPath + ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	f.SetSheetName("Sheet1", resultSheetName)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("创建表头样式失败: %w", err)
	}

	header := batchHeader()
	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(resultSheetName, cell, title)
		f.SetCellStyle(resultSheetName, cell, cell, headerStyle)
	}
	f.SetColWidth(resultSheetName, "A", "A", 22)
	f.SetColWidth(resultSheetName, "B", "D", 26)
	f.SetColWidth(resultSheetName, "E", "E", 40)

	rows := successfulResults(results)
	for i, result := range rows {
		for col, value := range flattenRow(result) {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			f.SetCellValue(resultSheetName, cell, value)
		}
	}

	if len(rows) > 0 {
		lastCell, _ := excelize.CoordinatesToCellName(len(header), len(rows)+1)
		f.AutoFilter(resultSheetName, fmt.Sprintf("A1:%s", lastCell), []excelize.AutoFilterOptions{})
	}
	f.SetPanes(resultSheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("保存Excel文件 %s 失败: %w", outputPath, err)
	}
	return nil
}
