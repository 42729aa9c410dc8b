package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 3, cfg.Parser.Workers)
	assert.Equal(t, "output", cfg.Parser.OutputDir)
	assert.Equal(t, "resume-originals", cfg.MinIO.OriginalsBucket)
	assert.Equal(t, "resume-results", cfg.MinIO.ResultsBucket)
	assert.Equal(t, "q.resume_parse_jobs", cfg.RabbitMQ.ParseJobsQueue)
	assert.Equal(t, "rule-engine-v1", cfg.ActiveParserVersion)
	assert.NotEmpty(t, cfg.LLM.APIKey, "测试环境应有默认API密钥")
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
server:
  address: ":9090"
parser:
  workers: 8
  output_dir: results
logger:
  level: debug
  format: json
rabbitmq:
  url: "amqp://user:pass@mq:5672/"
  consumer_workers: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, 8, cfg.Parser.Workers)
	assert.Equal(t, "results", cfg.Parser.OutputDir)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 5, cfg.RabbitMQ.ConsumerWorkers)
	// 未指定的字段应有默认值
	assert.Equal(t, "5s", cfg.RabbitMQ.RetryInterval)
	assert.Equal(t, "rule-engine-v1", cfg.ActiveParserVersion)
}

func TestLoadConfigMissingFileInTests(t *testing.T) {
	// 测试环境下找不到文件时返回默认配置而不是报错
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Parser.Workers)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("LLM_API_KEY", "env_key_123")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm:\n  api_key: file_key\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "env_key_123", cfg.LLM.APIKey, "环境变量应覆盖配置文件")
}

func TestCreateSampleConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.yaml")

	require.NoError(t, CreateSampleConfig(path))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Address)

	// 已存在时拒绝覆盖
	assert.Error(t, CreateSampleConfig(path))
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 5*time.Second, GetDuration("5s", time.Minute))
	assert.Equal(t, time.Minute, GetDuration("", time.Minute))
	assert.Equal(t, time.Minute, GetDuration("not-a-duration", time.Minute))
}
