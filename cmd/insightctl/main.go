package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"resume-insight-go/internal/agent"
	"resume-insight-go/internal/config"
	"resume-insight-go/internal/enhancer"
	"resume-insight-go/internal/exporter"
	"resume-insight-go/internal/logger"
	"resume-insight-go/internal/processor"
	"resume-insight-go/internal/types"
)

func main() {
	var (
		configPath   string
		outputDir    string
		advanced     bool
		sampleConfig string
	)
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径")
	pflag.StringVarP(&outputDir, "output", "o", "", "结果输出目录，默认取配置中的parser.output_dir")
	pflag.BoolVar(&advanced, "advanced", false, "启用增强解析（配置了LLM密钥时调用模型抽取）")
	pflag.StringVar(&sampleConfig, "init-config", "", "生成示例配置文件到指定路径后退出")
	pflag.Parse()

	if sampleConfig != "" {
		if err := config.CreateSampleConfig(sampleConfig); err != nil {
			fmt.Fprintf(os.Stderr, "生成示例配置失败: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("示例配置已写入 %s\n", sampleConfig)
		return
	}

	if pflag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "用法: insightctl [flags] <简历文件或目录>")
		pflag.PrintDefaults()
		os.Exit(1)
	}
	target := pflag.Arg(0)

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	logger.Init(cfg.Logger)

	if outputDir == "" {
		outputDir = cfg.Parser.OutputDir
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "创建输出目录失败: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	resumeParser, err := buildParser(ctx, cfg, advanced)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化解析器失败: %v\n", err)
		os.Exit(1)
	}

	info, err := os.Stat(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法访问 %s: %v\n", target, err)
		os.Exit(1)
	}

	if info.IsDir() {
		if err := runDirectory(ctx, resumeParser, target, outputDir); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runSingleFile(ctx, resumeParser, target, outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// buildParser 组装解析管线，--advanced时启用增强层
func buildParser(ctx context.Context, cfg *config.Config, advanced bool) (*processor.ResumeParser, error) {
	opts := []processor.ProcessorOption{
		processor.WithWorkers(cfg.Parser.Workers),
	}

	if advanced {
		if cfg.LLM.APIKey != "" {
			qwenModel, err := agent.NewQwenChatModel(&cfg.LLM, logger.Logger)
			if err != nil {
				logger.Warn().Err(err).Msg("初始化LLM模型失败，增强层降级为纯规则分析")
				opts = append(opts, processor.WithEnhancer(enhancer.New(nil)))
			} else {
				opts = append(opts, processor.WithEnhancer(enhancer.New(qwenModel)))
			}
		} else {
			opts = append(opts, processor.WithEnhancer(enhancer.New(nil)))
		}
	}

	return processor.NewResumeParser(ctx, opts...)
}

// runSingleFile 解析单个文件并落盘结果
// 解析失败同样写出带错误标记的JSON，进程退出码保持0，仅路径不存在才算命令失败
func runSingleFile(ctx context.Context, p *processor.ResumeParser, path, outputDir string) error {
	result := p.ParseFile(ctx, path)
	if result.IsError() {
		logger.Warn().Str("file", result.File).Str("error", result.Error).Msg("解析失败")
	}

	jsonPath, err := exporter.SaveJSON(result, outputDir)
	if err != nil {
		return fmt.Errorf("保存解析结果失败: %w", err)
	}

	fmt.Println(exporter.SummaryReport(result))
	fmt.Printf("结果已保存至 %s\n", jsonPath)
	return nil
}

func runDirectory(ctx context.Context, p *processor.ResumeParser, dir, outputDir string) error {
	results, err := p.ParseDirectory(ctx, dir)
	if err != nil {
		return fmt.Errorf("解析目录 %s 失败: %w", dir, err)
	}
	if len(results) == 0 {
		return fmt.Errorf("目录 %s 下未发现可解析的简历文件", dir)
	}

	var succeeded, failed int
	for _, result := range results {
		if result.IsError() {
			failed++
			logger.Warn().Str("file", result.File).Str("error", result.Error).Msg("解析失败")
			continue
		}
		succeeded++
		if _, err := exporter.SaveJSON(result, outputDir); err != nil {
			logger.Warn().Err(err).Str("file", result.File).Msg("保存解析结果失败")
		}
	}

	timestamp := time.Now().Format("20060102_150405")
	csvPath := filepath.Join(outputDir, "batch_summary_"+timestamp+".csv")
	xlsxPath := filepath.Join(outputDir, "batch_summary_"+timestamp+".xlsx")

	if err := exporter.ExportCSV(results, csvPath); err != nil {
		return fmt.Errorf("导出CSV汇总失败: %w", err)
	}
	if err := exporter.ExportXLSX(results, xlsxPath); err != nil {
		return fmt.Errorf("导出XLSX汇总失败: %w", err)
	}

	fmt.Printf("批量解析完成: 成功 %d 份, 失败 %d 份\n", succeeded, failed)
	fmt.Printf("汇总已导出: %s, %s\n", csvPath, xlsxPath)
	printTopCandidates(results)
	return nil
}

// printTopCandidates 按综合得分输出前5名候选人
func printTopCandidates(results []*types.ParseResult) {
	ranked := make([]*types.ParseResult, 0, len(results))
	for _, r := range results {
		if !r.IsError() {
			ranked = append(ranked, r)
		}
	}
	if len(ranked) == 0 {
		return
	}

	for i := 0; i < len(ranked); i++ {
		for j := i + 1; j < len(ranked); j++ {
			if ranked[j].Scores.Overall > ranked[i].Scores.Overall {
				ranked[i], ranked[j] = ranked[j], ranked[i]
			}
		}
	}

	limit := 5
	if len(ranked) < limit {
		limit = len(ranked)
	}
	fmt.Println("综合得分排名:")
	for i := 0; i < limit; i++ {
		name := ranked[i].Contact.Name
		if name == "" {
			name = filepath.Base(ranked[i].File)
		}
		fmt.Printf("  %d. %s (%.1f)\n", i+1, name, ranked[i].Scores.Overall)
	}
}
