package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"resume-insight-go/internal/config"
	"resume-insight-go/internal/constants"
	"resume-insight-go/internal/types"
)

// ErrNotFound 键不存在时返回，包装redis.Nil便于上层判断
var ErrNotFound = redis.Nil

// Redis 封装Redis客户端，承担文件MD5去重与解析结果缓存
type Redis struct {
	Client *redis.Client
	config *config.RedisConfig
}

// NewRedisAdapter 创建Redis客户端连接
func NewRedisAdapter(cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis配置不能为空")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis地址不能为空")
	}

	opt := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,

		// 连接池设置
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,

		// 超时设置
		DialTimeout:  time.Duration(cfg.DialTimeoutSeconds) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
	}

	client := redis.NewClient(opt)

	// 添加OpenTelemetry钩子，记录所有Redis操作
	if err := redisotel.InstrumentTracing(client); err != nil {
		return nil, fmt.Errorf("为Redis注册OpenTelemetry钩子失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("连接Redis (%s) 失败: %w", cfg.Address, err)
	}

	return &Redis{
		Client: client,
		config: cfg,
	}, nil
}

// Close 关闭Redis连接
func (r *Redis) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

// Ping 检查Redis连接
func (r *Redis) Ping(ctx context.Context) error {
	if r.Client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}
	return r.Client.Ping(ctx).Err()
}

// GetMD5ExpireDuration 返回配置的MD5记录过期时间
func (r *Redis) GetMD5ExpireDuration() time.Duration {
	days := r.config.MD5RecordExpireDays
	if days <= 0 {
		days = 365
	}
	return time.Duration(days) * 24 * time.Hour
}

// GetScoreCacheExpireDuration 返回配置的评分缓存过期时间
func (r *Redis) GetScoreCacheExpireDuration() time.Duration {
	hours := r.config.ScoreCacheExpireHours
	if hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

// AddFileMD5 把文件MD5加入去重集合并设置过期时间
// ExpireNX只在集合尚无过期时间时生效，避免每次写入都重置TTL
func (r *Redis) AddFileMD5(ctx context.Context, md5Hex string) error {
	if r.Client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}
	pipe := r.Client.Pipeline()
	pipe.SAdd(ctx, constants.FileMD5SetKey, md5Hex)
	pipe.ExpireNX(ctx, constants.FileMD5SetKey, r.GetMD5ExpireDuration())
	_, err := pipe.Exec(ctx)
	return err
}

// CheckFileMD5Exists 检查文件MD5是否已在去重集合中
func (r *Redis) CheckFileMD5Exists(ctx context.Context, md5Hex string) (bool, error) {
	if r.Client == nil {
		return false, fmt.Errorf("redis客户端未初始化")
	}
	return r.Client.SIsMember(ctx, constants.FileMD5SetKey, md5Hex).Result()
}

// CacheScores 缓存指定简历的完整度评分
func (r *Redis) CacheScores(ctx context.Context, submissionUUID string, scores types.Scores) error {
	data, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("序列化评分失败: %w", err)
	}
	key := constants.ScoreCacheKey(submissionUUID)
	return r.Client.Set(ctx, key, data, r.GetScoreCacheExpireDuration()).Err()
}

// GetCachedScores 读取缓存的评分，未命中时返回ErrNotFound
func (r *Redis) GetCachedScores(ctx context.Context, submissionUUID string) (*types.Scores, error) {
	key := constants.ScoreCacheKey(submissionUUID)
	data, err := r.Client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}
	var scores types.Scores
	if err := json.Unmarshal(data, &scores); err != nil {
		return nil, fmt.Errorf("反序列化评分缓存失败: %w", err)
	}
	return &scores, nil
}

// CacheParseResult 缓存完整解析结果，查询接口优先走缓存
func (r *Redis) CacheParseResult(ctx context.Context, submissionUUID string, result *types.ParseResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("序列化解析结果失败: %w", err)
	}
	key := constants.ParseResultCacheKey(submissionUUID)
	return r.Client.Set(ctx, key, data, r.GetScoreCacheExpireDuration()).Err()
}

// GetCachedParseResult 读取缓存的解析结果，未命中时返回ErrNotFound
func (r *Redis) GetCachedParseResult(ctx context.Context, submissionUUID string) (*types.ParseResult, error) {
	key := constants.ParseResultCacheKey(submissionUUID)
	data, err := r.Client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}
	var result types.ParseResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("反序列化解析结果缓存失败: %w", err)
	}
	return &result, nil
}
