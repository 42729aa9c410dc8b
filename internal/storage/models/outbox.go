package models

import "time"

// 发件箱消息状态
const (
	// OutboxStatusPending 等待中继投递
	OutboxStatusPending = "PENDING"
	// OutboxStatusSent 已成功投递
	OutboxStatusSent = "SENT"
	// OutboxStatusFailed 重试耗尽，放弃投递
	OutboxStatusFailed = "FAILED"
)

// OutboxMessage 发件箱消息，与解析结果在同一事务内落表，由中继异步投递
type OutboxMessage struct {
	ID               uint64     `gorm:"primaryKey;autoIncrement"`
	AggregateID      string     `gorm:"type:varchar(36);not null;index"` // 关联的简历SubmissionUUID
	EventType        string     `gorm:"type:varchar(255);not null"`
	Payload          string     `gorm:"type:json;not null"`
	TargetExchange   string     `gorm:"type:varchar(255);not null"`
	TargetRoutingKey string     `gorm:"type:varchar(255);not null"`
	Status           string     `gorm:"type:varchar(20);default:'PENDING';not null;index:idx_outbox_status_created_at"`
	RetryCount       int        `gorm:"default:0"`
	CreatedAt        time.Time  `gorm:"type:datetime(6);default:CURRENT_TIMESTAMP(6);index:idx_outbox_status_created_at,sort:asc"`
	ProcessedAt      *time.Time `gorm:"type:datetime(6);null"`
	ErrorMessage     string     `gorm:"type:text"`
}

func (OutboxMessage) TableName() string {
	return "outbox_messages"
}

// MarkSent 标记消息投递成功
func (m *OutboxMessage) MarkSent() {
	now := time.Now()
	m.Status = OutboxStatusSent
	m.ProcessedAt = &now
	m.ErrorMessage = ""
}

// MarkPublishFailure 记录一次投递失败，重试次数达到上限时转为FAILED
func (m *OutboxMessage) MarkPublishFailure(err error, maxRetries int) {
	m.RetryCount++
	m.ErrorMessage = err.Error()
	if m.RetryCount >= maxRetries {
		m.Status = OutboxStatusFailed
	}
}
