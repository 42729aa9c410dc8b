package constants

import "fmt"

// Redis键统一在此定义，避免各处散落拼写不一致
const (
	// FileMD5SetKey 已处理文件MD5集合，用于上传去重
	FileMD5SetKey = "resume:file_md5_set"

	// ScoreCachePrefix 解析评分缓存键前缀
	ScoreCachePrefix = "resume:scores:"

	// ParseResultCachePrefix 解析结果缓存键前缀
	ParseResultCachePrefix = "resume:parse_result:"
)

// ScoreCacheKey 返回指定简历的评分缓存键
func ScoreCacheKey(resumeID string) string {
	return fmt.Sprintf("%s%s", ScoreCachePrefix, resumeID)
}

// ParseResultCacheKey 返回指定简历的解析结果缓存键
func ParseResultCacheKey(resumeID string) string {
	return fmt.Sprintf("%s%s", ParseResultCachePrefix, resumeID)
}
