package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/minio/minio-go/v7/pkg/lifecycle"
	"github.com/rs/zerolog"

	"resume-insight-go/internal/config"
	"resume-insight-go/internal/constants"
)

// MinIO 对象存储，原始简历与解析结果JSON分桶存放
type MinIO struct {
	client          *minio.Client
	cfg             *config.MinIOConfig
	originalsBucket string
	resultsBucket   string
	log             zerolog.Logger
}

// NewMinIO 创建MinIO客户端并确保存储桶就绪
func NewMinIO(cfg *config.MinIOConfig, log zerolog.Logger) (*MinIO, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MinIO配置不能为空")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("创建MinIO客户端失败: %w", err)
	}

	m := &MinIO{
		client:          client,
		cfg:             cfg,
		originalsBucket: cfg.OriginalsBucket,
		resultsBucket:   cfg.ResultsBucket,
		log:             log.With().Str("component", "minio").Logger(),
	}

	if err := m.ensureBucketExists(cfg.OriginalsBucket, cfg.Location); err != nil {
		return nil, fmt.Errorf("确保原始简历存储桶 %s 存在失败: %w", cfg.OriginalsBucket, err)
	}
	if err := m.ensureBucketExists(cfg.ResultsBucket, cfg.Location); err != nil {
		return nil, fmt.Errorf("确保解析结果存储桶 %s 存在失败: %w", cfg.ResultsBucket, err)
	}

	if cfg.OriginalFileExpireDays > 0 || cfg.ResultExpireDays > 0 {
		if err := m.setupLifecycleRules(context.Background()); err != nil {
			m.log.Warn().Err(err).Msg("设置对象生命周期规则失败")
		}
	}

	m.log.Info().
		Str("endpoint", cfg.Endpoint).
		Str("originals_bucket", cfg.OriginalsBucket).
		Str("results_bucket", cfg.ResultsBucket).
		Msg("MinIO客户端初始化完成")
	return m, nil
}

// ensureBucketExists 确保存储桶存在，不存在时创建
func (m *MinIO) ensureBucketExists(bucketName, location string) error {
	exists, err := m.client.BucketExists(context.Background(), bucketName)
	if err != nil {
		return fmt.Errorf("检查存储桶 %s 是否存在时出错: %w", bucketName, err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{Region: location}); err != nil {
		return fmt.Errorf("创建存储桶 %s 失败: %w", bucketName, err)
	}
	m.log.Info().Str("bucket", bucketName).Msg("存储桶已创建")
	return nil
}

// setupLifecycleRules 为两个存储桶设置过期规则
func (m *MinIO) setupLifecycleRules(ctx context.Context) error {
	if m.cfg.OriginalFileExpireDays > 0 {
		if err := m.setupBucketLifecycle(ctx, m.originalsBucket, "expire-originals", m.cfg.OriginalFileExpireDays); err != nil {
			return fmt.Errorf("为原始简历存储桶 %s 设置生命周期失败: %w", m.originalsBucket, err)
		}
	}
	if m.cfg.ResultExpireDays > 0 {
		if err := m.setupBucketLifecycle(ctx, m.resultsBucket, "expire-results", m.cfg.ResultExpireDays); err != nil {
			return fmt.Errorf("为解析结果存储桶 %s 设置生命周期失败: %w", m.resultsBucket, err)
		}
	}
	return nil
}

func (m *MinIO) setupBucketLifecycle(ctx context.Context, bucketName, ruleID string, expiryDays int) error {
	lc := lifecycle.NewConfiguration()
	lc.Rules = []lifecycle.Rule{
		{
			ID:     ruleID,
			Status: "Enabled",
			Expiration: lifecycle.Expiration{
				Days: lifecycle.ExpirationDays(expiryDays),
			},
		},
	}
	return m.client.SetBucketLifecycle(ctx, bucketName, lc)
}

// UploadOriginal 上传原始简历文件，返回对象键
func (m *MinIO) UploadOriginal(ctx context.Context, submissionUUID, fileExt string, reader io.Reader, fileSize int64) (string, error) {
	objectKey := fmt.Sprintf("resume/%s/original%s", submissionUUID, fileExt)
	contentType := getContentType(fileExt)

	_, err := m.client.PutObject(ctx, m.originalsBucket, objectKey, reader, fileSize,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("上传对象 %s/%s 失败: %w", m.originalsBucket, objectKey, err)
	}
	return objectKey, nil
}

// GetOriginal 下载原始简历文件
func (m *MinIO) GetOriginal(ctx context.Context, objectKey string) ([]byte, error) {
	return m.getObject(ctx, m.originalsBucket, objectKey)
}

// UploadResultJSON 上传解析结果JSON，返回对象键
func (m *MinIO) UploadResultJSON(ctx context.Context, submissionUUID string, data []byte) (string, error) {
	objectKey := fmt.Sprintf("resume/%s/result.json", submissionUUID)
	_, err := m.client.PutObject(ctx, m.resultsBucket, objectKey, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: constants.MIMETypeJSON})
	if err != nil {
		return "", fmt.Errorf("上传对象 %s/%s 失败: %w", m.resultsBucket, objectKey, err)
	}
	return objectKey, nil
}

// GetResultJSON 下载解析结果JSON
func (m *MinIO) GetResultJSON(ctx context.Context, objectKey string) ([]byte, error) {
	return m.getObject(ctx, m.resultsBucket, objectKey)
}

// GetPresignedOriginalURL 为原始简历生成限时下载链接
func (m *MinIO) GetPresignedOriginalURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	u, err := m.client.PresignedGetObject(ctx, m.originalsBucket, objectKey, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("生成预签名URL失败: %w", err)
	}
	return u.String(), nil
}

func (m *MinIO) getObject(ctx context.Context, bucketName, objectKey string) ([]byte, error) {
	obj, err := m.client.GetObject(ctx, bucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("获取对象 %s/%s 失败: %w", bucketName, objectKey, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("读取对象 %s/%s 失败: %w", bucketName, objectKey, err)
	}
	return data, nil
}

// getContentType 按文件扩展名返回MIME类型
func getContentType(fileExt string) string {
	switch strings.ToLower(strings.TrimPrefix(fileExt, ".")) {
	case constants.FileTypePDF:
		return constants.MIMETypePDF
	case constants.FileTypeDocx:
		return constants.MIMETypeDocx
	case constants.FileTypeTxt:
		return constants.MIMETypeText
	default:
		return "application/octet-stream"
	}
}
