package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"resume-insight-go/internal/parser"
	"resume-insight-go/internal/types"
)

// batchJob 批量解析任务，index用于保持结果与输入文件顺序一致
type batchJob struct {
	index int
	path  string
}

// ListResumeFiles 扫描目录下受支持的简历文件（不递归），按文件名排序
func ListResumeFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("读取目录 %s 失败: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if parser.SupportedExtension(entry.Name()) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// ParseDirectory 并发解析目录下的全部简历文件
// 工作协程数由WithWorkers控制，单文件失败产出错误标记结果，不中断整体批次
func (p *ResumeParser) ParseDirectory(ctx context.Context, dir string) ([]*types.ParseResult, error) {
	files, err := ListResumeFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoResumesFound, dir)
	}
	return p.ParseFiles(ctx, files), nil
}

// ParseFiles 并发解析给定文件列表，结果顺序与输入一致
func (p *ResumeParser) ParseFiles(ctx context.Context, files []string) []*types.ParseResult {
	results := make([]*types.ParseResult, len(files))
	jobs := make(chan batchJob)

	workers := p.workers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				results[job.index] = p.ParseFile(ctx, job.path)
			}
		}()
	}

	for i, path := range files {
		jobs <- batchJob{index: i, path: path}
	}
	close(jobs)
	wg.Wait()

	return results
}
