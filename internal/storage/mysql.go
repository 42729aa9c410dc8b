package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"resume-insight-go/internal/config"
	"resume-insight-go/internal/storage/models"
)

// 为MySQL操作定义专用tracer
var mysqlTracer = otel.Tracer("resume-insight-go/storage/mysql")

// ErrRecordNotFound 查询未命中时返回，包装gorm同名错误便于上层判断
var ErrRecordNotFound = gorm.ErrRecordNotFound

// GormTracingPlugin 在GORM回调中注入OpenTelemetry span
type GormTracingPlugin struct{}

// Name 插件名称
func (p *GormTracingPlugin) Name() string {
	return "GormTracingPlugin"
}

// Initialize 注册创建、查询、更新、删除、行查询的前后回调
func (p *GormTracingPlugin) Initialize(db *gorm.DB) error {
	if err := db.Callback().Create().Before("gorm:create").Register("otel:before_create", p.before("create")); err != nil {
		return err
	}
	if err := db.Callback().Create().After("gorm:create").Register("otel:after_create", p.after); err != nil {
		return err
	}
	if err := db.Callback().Query().Before("gorm:query").Register("otel:before_query", p.before("query")); err != nil {
		return err
	}
	if err := db.Callback().Query().After("gorm:query").Register("otel:after_query", p.after); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").Register("otel:before_update", p.before("update")); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("otel:after_update", p.after); err != nil {
		return err
	}
	if err := db.Callback().Delete().Before("gorm:delete").Register("otel:before_delete", p.before("delete")); err != nil {
		return err
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("otel:after_delete", p.after); err != nil {
		return err
	}
	if err := db.Callback().Row().Before("gorm:row").Register("otel:before_row", p.before("row")); err != nil {
		return err
	}
	if err := db.Callback().Row().After("gorm:row").Register("otel:after_row", p.after); err != nil {
		return err
	}
	if err := db.Callback().Raw().Before("gorm:raw").Register("otel:before_raw", p.before("raw")); err != nil {
		return err
	}
	return db.Callback().Raw().After("gorm:raw").Register("otel:after_raw", p.after)
}

func (p *GormTracingPlugin) before(operation string) func(*gorm.DB) {
	return func(tx *gorm.DB) {
		ctx, _ := mysqlTracer.Start(tx.Statement.Context, "gorm."+operation,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String("db.system", "mysql"),
				attribute.String("db.operation", operation),
			),
		)
		tx.Statement.Context = ctx
	}
}

func (p *GormTracingPlugin) after(tx *gorm.DB) {
	span := trace.SpanFromContext(tx.Statement.Context)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(
		attribute.String("db.table", tx.Statement.Table),
		attribute.Int64("db.rows_affected", tx.RowsAffected),
	)
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		span.RecordError(tx.Error)
		span.SetStatus(codes.Error, tx.Error.Error())
	}
	span.End()
}

// MySQL 封装GORM连接与简历记录的持久化操作
type MySQL struct {
	db  *gorm.DB
	cfg *config.MySQLConfig
}

// NewMySQL 建立MySQL连接，配置连接池并自动迁移表结构
func NewMySQL(cfg *config.MySQLConfig) (*MySQL, error) {
	if cfg == nil {
		return nil, fmt.Errorf("MySQL配置不能为空")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
		cfg.ConnectTimeoutSeconds, cfg.ReadTimeoutSeconds, cfg.WriteTimeoutSeconds)

	var logLevel gormlogger.LogLevel
	switch cfg.LogLevel {
	case 1:
		logLevel = gormlogger.Silent
	case 2:
		logLevel = gormlogger.Error
	case 3:
		logLevel = gormlogger.Warn
	case 4:
		logLevel = gormlogger.Info
	default:
		logLevel = gormlogger.Warn
	}

	gormLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("连接MySQL失败: %w", err)
	}

	if err := db.Use(&GormTracingPlugin{}); err != nil {
		return nil, fmt.Errorf("注册GORM追踪插件失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层sql.DB失败: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTimeMinutes) * time.Minute)

	m := &MySQL{db: db, cfg: cfg}
	if err := m.autoMigrateSchema(); err != nil {
		return nil, err
	}
	return m, nil
}

// autoMigrateSchema 自动迁移表结构，迁移期间关闭SQL日志
func (m *MySQL) autoMigrateSchema() error {
	session := m.db.Session(&gorm.Session{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	if err := session.AutoMigrate(
		&models.ResumeRecord{},
		&models.OutboxMessage{},
	); err != nil {
		return fmt.Errorf("自动迁移表结构失败: %w", err)
	}
	return nil
}

// DB 返回底层GORM实例
func (m *MySQL) DB() *gorm.DB {
	return m.db
}

// Close 关闭数据库连接
func (m *MySQL) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CreateResumeRecord 创建简历记录
// 以submission_uuid为冲突键，重复投递时静默跳过，保证消费幂等
func (m *MySQL) CreateResumeRecord(ctx context.Context, record *models.ResumeRecord) error {
	return m.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "submission_uuid"}},
			DoNothing: true,
		}).
		Create(record).Error
}

// GetResumeRecord 按SubmissionUUID获取简历记录
func (m *MySQL) GetResumeRecord(ctx context.Context, submissionUUID string) (*models.ResumeRecord, error) {
	var record models.ResumeRecord
	err := m.db.WithContext(ctx).
		Where("submission_uuid = ?", submissionUUID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateProcessingStatus 更新简历处理状态
func (m *MySQL) UpdateProcessingStatus(ctx context.Context, submissionUUID, status string) error {
	result := m.db.WithContext(ctx).
		Model(&models.ResumeRecord{}).
		Where("submission_uuid = ?", submissionUUID).
		Update("processing_status", status)
	if result.Error != nil {
		return fmt.Errorf("更新处理状态失败: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("更新处理状态: 未找到记录 %s", submissionUUID)
	}
	return nil
}

// SaveParseOutcome 在同一事务内落库解析结果并写入发件箱消息
// 事务保证解析结果与待发布事件要么同时可见，要么都不可见
func (m *MySQL) SaveParseOutcome(ctx context.Context, record *models.ResumeRecord, event *models.OutboxMessage) error {
	ctx, span := mysqlTracer.Start(ctx, "SaveParseOutcome", trace.WithAttributes(
		attribute.String("resume.submission_uuid", record.SubmissionUUID),
	))
	defer span.End()

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(record).Error; err != nil {
			return fmt.Errorf("保存解析记录失败: %w", err)
		}
		if event != nil {
			if err := tx.Create(event).Error; err != nil {
				return fmt.Errorf("写入发件箱消息失败: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// ListRecordsByStatus 按处理状态分页列出简历记录，供数据修复与巡检使用
func (m *MySQL) ListRecordsByStatus(ctx context.Context, status string, limit, offset int) ([]models.ResumeRecord, error) {
	var records []models.ResumeRecord
	err := m.db.WithContext(ctx).
		Where("processing_status = ?", status).
		Order("created_at asc").
		Limit(limit).
		Offset(offset).
		Find(&records).Error
	return records, err
}
