package handler

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"resume-insight-go/internal/config"
	"resume-insight-go/internal/constants"
	"resume-insight-go/internal/logger"
	"resume-insight-go/internal/parser"
	"resume-insight-go/internal/processor"
	"resume-insight-go/internal/storage"
	"resume-insight-go/internal/storage/models"
	"resume-insight-go/internal/tracing"
	"resume-insight-go/internal/types"
)

var handlerTracer = otel.Tracer("resume-insight-go/api/handler")

// ResumeHandler 协调简历上传、解析消费与结果查询
type ResumeHandler struct {
	cfg     *config.Config
	storage *storage.Storage
	parser  *processor.ResumeParser
}

// NewResumeHandler 创建简历处理器
func NewResumeHandler(cfg *config.Config, storage *storage.Storage, resumeParser *processor.ResumeParser) *ResumeHandler {
	return &ResumeHandler{
		cfg:     cfg,
		storage: storage,
		parser:  resumeParser,
	}
}

// ResumeUploadResponse 简历上传响应
type ResumeUploadResponse struct {
	SubmissionUUID string `json:"submission_uuid"`
	Status         string `json:"status"`
}

// ResumeDetailResponse 简历查询响应
type ResumeDetailResponse struct {
	SubmissionUUID string             `json:"submission_uuid"`
	Status         string             `json:"status"`
	ParserVersion  string             `json:"parser_version,omitempty"`
	Result         *types.ParseResult `json:"result,omitempty"`
	DownloadURL    string             `json:"download_url,omitempty"`
	ErrorMessage   string             `json:"error_message,omitempty"`
}

// calculateMD5 计算内容的MD5十六进制摘要
func calculateMD5(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}

// HandleResumeUpload 处理简历上传
// 流程：MD5去重 -> 上传MinIO -> 落库 -> 发布解析任务
func (h *ResumeHandler) HandleResumeUpload(ctx context.Context, reader io.Reader, fileSize int64, filename string) (*ResumeUploadResponse, error) {
	ctx, span := handlerTracer.Start(ctx, "HandleResumeUpload")
	defer span.End()
	span.SetAttributes(attribute.String("resume.filename", tracing.SafeAttributeValue("filename", filename, tracing.DefaultMaxLength)))

	if fileSize > constants.MaxUploadSizeBytes {
		err := fmt.Errorf("文件大小 %d 超过上限 %d", fileSize, int64(constants.MaxUploadSizeBytes))
		tracing.RecordError(span, err, tracing.ErrorTypeValidation)
		return nil, err
	}
	if !parser.SupportedExtension(filename) {
		err := fmt.Errorf("不支持的文件格式: %s", filepath.Ext(filename))
		tracing.RecordError(span, err, tracing.ErrorTypeValidation)
		return nil, err
	}

	// reader只能读一次，先读入内存用于MD5计算与上传
	fileBytes, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("读取上传文件内容失败: %w", err)
	}
	fileMD5Hex := calculateMD5(fileBytes)

	if h.storage.Redis != nil {
		exists, err := h.storage.Redis.CheckFileMD5Exists(ctx, fileMD5Hex)
		if err != nil {
			logger.Error().Err(err).Str("md5", fileMD5Hex).Msg("查询Redis文件MD5集合失败")
			tracing.RecordError(span, err, tracing.ErrorTypeRedis)
			return nil, fmt.Errorf("检查文件重复性失败: %w", err)
		}
		if exists {
			logger.Info().Str("md5", fileMD5Hex).Str("filename", filename).Msg("检测到重复文件，跳过处理")
			return &ResumeUploadResponse{Status: constants.StatusDuplicate}, nil
		}
	}

	uuidV7, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("生成UUIDv7失败: %w", err)
	}
	submissionUUID := uuidV7.String()
	span.SetAttributes(attribute.String("resume.submission_uuid", submissionUUID))

	ext := filepath.Ext(filename)
	objectKey, err := h.storage.MinIO.UploadOriginal(ctx, submissionUUID, ext, bytes.NewReader(fileBytes), int64(len(fileBytes)))
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeStorage)
		return nil, fmt.Errorf("上传简历到MinIO失败: %w", err)
	}

	record := &models.ResumeRecord{
		SubmissionUUID:   submissionUUID,
		OriginalFilename: filename,
		OriginalFilePath: objectKey,
		FileMD5:          fileMD5Hex,
		ProcessingStatus: constants.StatusUploaded,
	}
	if err := h.storage.MySQL.CreateResumeRecord(ctx, record); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return nil, fmt.Errorf("创建简历记录失败: %w", err)
	}

	// MD5写入失败只降级去重能力，不阻塞上传流程
	if h.storage.Redis != nil {
		if err := h.storage.Redis.AddFileMD5(ctx, fileMD5Hex); err != nil {
			logger.Warn().Err(err).Str("md5", fileMD5Hex).Msg("添加文件MD5到Redis集合失败")
		}
	}

	message := storage.ResumeUploadMessage{
		SubmissionUUID:   submissionUUID,
		OriginalFilePath: objectKey,
		OriginalFilename: filename,
		FileExt:          ext,
		FileMD5:          fileMD5Hex,
		SubmitTime:       time.Now(),
	}
	err = h.storage.RabbitMQ.PublishJSON(
		ctx,
		h.cfg.RabbitMQ.ResumeEventsExchange,
		h.cfg.RabbitMQ.UploadedRoutingKey,
		message,
		true, // 持久化
	)
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeRabbitMQ)
		return nil, fmt.Errorf("发布解析任务失败: %w", err)
	}

	return &ResumeUploadResponse{
		SubmissionUUID: submissionUUID,
		Status:         constants.StatusUploaded,
	}, nil
}

// HandleGetResume 查询简历解析结果，优先走Redis缓存
func (h *ResumeHandler) HandleGetResume(ctx context.Context, submissionUUID string) (*ResumeDetailResponse, error) {
	if h.storage.Redis != nil {
		cached, err := h.storage.Redis.GetCachedParseResult(ctx, submissionUUID)
		if err == nil {
			return &ResumeDetailResponse{
				SubmissionUUID: submissionUUID,
				Status:         constants.StatusParsed,
				Result:         cached,
			}, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn().Err(err).Str("submission_uuid", submissionUUID).Msg("读取解析结果缓存失败")
		}
	}

	record, err := h.storage.MySQL.GetResumeRecord(ctx, submissionUUID)
	if err != nil {
		return nil, err
	}

	resp := &ResumeDetailResponse{
		SubmissionUUID: record.SubmissionUUID,
		Status:         record.ProcessingStatus,
		ParserVersion:  record.ParserVersion,
		ErrorMessage:   record.ErrorMessage,
	}

	if record.ProcessingStatus == constants.StatusParsed && record.ResultFilePath != "" {
		data, err := h.storage.MinIO.GetResultJSON(ctx, record.ResultFilePath)
		if err != nil {
			logger.Warn().Err(err).Str("submission_uuid", submissionUUID).Msg("从MinIO获取解析结果失败")
		} else {
			var result types.ParseResult
			if err := json.Unmarshal(data, &result); err == nil {
				resp.Result = &result
				if h.storage.Redis != nil {
					if err := h.storage.Redis.CacheParseResult(ctx, submissionUUID, &result); err != nil {
						logger.Warn().Err(err).Str("submission_uuid", submissionUUID).Msg("回填解析结果缓存失败")
					}
				}
			}
		}
	}

	if record.OriginalFilePath != "" {
		url, err := h.storage.MinIO.GetPresignedOriginalURL(ctx, record.OriginalFilePath, time.Hour)
		if err == nil {
			resp.DownloadURL = url
		}
	}

	return resp, nil
}

// StartParseJobsConsumer 启动解析任务消费者
func (h *ResumeHandler) StartParseJobsConsumer(ctx context.Context) error {
	prefetch := h.cfg.RabbitMQ.PrefetchCount
	if prefetch <= 0 {
		prefetch = 10
	}

	logger.Info().
		Str("queue", h.cfg.RabbitMQ.ParseJobsQueue).
		Int("prefetch", prefetch).
		Msg("解析任务消费者就绪")

	_, err := h.storage.RabbitMQ.StartConsumer(h.cfg.RabbitMQ.ParseJobsQueue, prefetch, func(data []byte) bool {
		var message storage.ResumeUploadMessage
		if err := json.Unmarshal(data, &message); err != nil {
			logger.Error().Err(err).Msg("解析任务消息反序列化失败")
			// 格式错误的消息重试也不会成功，直接确认丢弃
			return true
		}
		return h.processParseJob(ctx, message)
	})
	if err != nil {
		return fmt.Errorf("启动解析任务消费者失败: %w", err)
	}
	return nil
}

// processParseJob 处理单条解析任务
// 返回true表示确认消息；基础设施故障返回false触发重新入队
func (h *ResumeHandler) processParseJob(ctx context.Context, message storage.ResumeUploadMessage) bool {
	ctx, span := handlerTracer.Start(ctx, "processParseJob")
	defer span.End()
	span.SetAttributes(attribute.String("resume.submission_uuid", message.SubmissionUUID))

	log := logger.Logger.With().Str("submission_uuid", message.SubmissionUUID).Logger()

	if err := h.storage.MySQL.UpdateProcessingStatus(ctx, message.SubmissionUUID, constants.StatusParsing); err != nil {
		log.Error().Err(err).Msg("更新状态为解析中失败")
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return false
	}

	fileBytes, err := h.storage.MinIO.GetOriginal(ctx, message.OriginalFilePath)
	if err != nil {
		log.Error().Err(err).Msg("从MinIO下载原始文件失败")
		tracing.RecordError(span, err, tracing.ErrorTypeStorage)
		return false
	}

	result := h.parser.ParseBytes(ctx, fileBytes, message.OriginalFilename)

	record, err := h.storage.MySQL.GetResumeRecord(ctx, message.SubmissionUUID)
	if err != nil {
		log.Error().Err(err).Msg("读取简历记录失败")
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return false
	}

	if result.IsError() {
		// 解析失败是确定性结果，落库后确认消息，不再重试
		record.ProcessingStatus = constants.StatusParseFailed
		record.ErrorMessage = result.Error
		record.ParserVersion = h.cfg.ActiveParserVersion
		if err := h.storage.MySQL.SaveParseOutcome(ctx, record, nil); err != nil {
			log.Error().Err(err).Msg("保存解析失败记录失败")
			return false
		}
		log.Warn().Str("error_kind", string(result.ErrorKind)).Msg("简历解析失败")
		return true
	}

	resultJSON, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("序列化解析结果失败")
		tracing.RecordError(span, err, tracing.ErrorTypeInternal)
		return true
	}

	resultKey, err := h.storage.MinIO.UploadResultJSON(ctx, message.SubmissionUUID, resultJSON)
	if err != nil {
		log.Error().Err(err).Msg("上传解析结果到MinIO失败")
		tracing.RecordError(span, err, tracing.ErrorTypeStorage)
		return false
	}

	record.ResultFilePath = resultKey
	record.ProcessingStatus = constants.StatusParsed
	record.ParserVersion = h.cfg.ActiveParserVersion
	record.ErrorMessage = ""
	if err := record.FillFromParseResult(result); err != nil {
		log.Error().Err(err).Msg("填充解析结果字段失败")
		tracing.RecordError(span, err, tracing.ErrorTypeInternal)
		return true
	}

	event, err := h.buildParsedEvent(record, result)
	if err != nil {
		log.Warn().Err(err).Msg("构建解析完成事件失败，跳过事件发布")
		event = nil
	}

	if err := h.storage.MySQL.SaveParseOutcome(ctx, record, event); err != nil {
		log.Error().Err(err).Msg("保存解析结果失败")
		tracing.RecordError(span, err, tracing.ErrorTypeDB)
		return false
	}

	if h.storage.Redis != nil {
		if err := h.storage.Redis.CacheScores(ctx, message.SubmissionUUID, result.Scores); err != nil {
			log.Warn().Err(err).Msg("缓存评分失败")
		}
		if err := h.storage.Redis.CacheParseResult(ctx, message.SubmissionUUID, result); err != nil {
			log.Warn().Err(err).Msg("缓存解析结果失败")
		}
	}

	log.Info().
		Float64("overall_score", result.Scores.Overall).
		Int("text_length", result.TextLength).
		Msg("简历解析完成")
	return true
}

// buildParsedEvent 构建写入发件箱的解析完成事件
func (h *ResumeHandler) buildParsedEvent(record *models.ResumeRecord, result *types.ParseResult) (*models.OutboxMessage, error) {
	payload, err := json.Marshal(storage.ResumeParsedEvent{
		SubmissionUUID: record.SubmissionUUID,
		ResultFilePath: record.ResultFilePath,
		Status:         constants.StatusParsed,
		OverallScore:   result.Scores.Overall,
		ParsedAt:       result.ParsedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("序列化解析完成事件失败: %w", err)
	}
	return &models.OutboxMessage{
		AggregateID:      record.SubmissionUUID,
		EventType:        storage.EventTypeResumeParsed,
		Payload:          string(payload),
		TargetExchange:   h.cfg.RabbitMQ.ResumeEventsExchange,
		TargetRoutingKey: h.cfg.RabbitMQ.ParsedRoutingKey,
	}, nil
}
