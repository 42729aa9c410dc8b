package storage

import (
	"context"
	"fmt"
	"strings"

	"resume-insight-go/internal/config"
	"resume-insight-go/internal/logger"
)

// Storage 聚合所有存储组件
// 单个非核心组件初始化失败时只记录警告，不阻塞整体启动
type Storage struct {
	MySQL    *MySQL
	Redis    *Redis
	MinIO    *MinIO
	RabbitMQ *RabbitMQ

	initErrors []string
}

// NewStorage 按配置初始化各存储组件
// MySQL为核心依赖，失败直接返回错误；其余组件失败降级为警告
func NewStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	if cfg == nil {
		return nil, fmt.Errorf("配置不能为空")
	}

	s := &Storage{}

	mysqlClient, err := NewMySQL(&cfg.MySQL)
	if err != nil {
		return nil, fmt.Errorf("初始化MySQL失败: %w", err)
	}
	s.MySQL = mysqlClient

	redisClient, err := NewRedisAdapter(&cfg.Redis)
	if err != nil {
		s.recordInitError("Redis", err)
	} else {
		s.Redis = redisClient
	}

	minioClient, err := NewMinIO(&cfg.MinIO, logger.Logger)
	if err != nil {
		s.recordInitError("MinIO", err)
	} else {
		s.MinIO = minioClient
	}

	mqClient, err := NewRabbitMQ(&cfg.RabbitMQ, logger.Logger)
	if err != nil {
		s.recordInitError("RabbitMQ", err)
	} else {
		s.RabbitMQ = mqClient
		if err := mqClient.SetupTopology(); err != nil {
			s.recordInitError("RabbitMQ拓扑", err)
		}
	}

	if len(s.initErrors) > 0 {
		logger.Warn().
			Str("components", strings.Join(s.initErrors, "; ")).
			Msg("部分存储组件初始化失败，相关功能不可用")
	}
	return s, nil
}

func (s *Storage) recordInitError(component string, err error) {
	msg := fmt.Sprintf("%s: %v", component, err)
	s.initErrors = append(s.initErrors, msg)
	logger.Warn().Str("component", component).Err(err).Msg("存储组件初始化失败")
}

// InitWarnings 返回初始化阶段累积的组件级警告
func (s *Storage) InitWarnings() []string {
	return s.initErrors
}

// Close 依次关闭所有已初始化的组件
func (s *Storage) Close() {
	if s.RabbitMQ != nil {
		if err := s.RabbitMQ.Close(); err != nil {
			logger.Warn().Err(err).Msg("关闭RabbitMQ连接失败")
		}
	}
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			logger.Warn().Err(err).Msg("关闭Redis连接失败")
		}
	}
	if s.MySQL != nil {
		if err := s.MySQL.Close(); err != nil {
			logger.Warn().Err(err).Msg("关闭MySQL连接失败")
		}
	}
}
