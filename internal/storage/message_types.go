package storage

import "time"

// ResumeUploadMessage 上传接口发往解析队列的任务消息
type ResumeUploadMessage struct {
	SubmissionUUID   string    `json:"submission_uuid"`
	OriginalFilePath string    `json:"original_file_path"` // MinIO对象键
	OriginalFilename string    `json:"original_filename"`
	FileExt          string    `json:"file_ext"`
	FileMD5          string    `json:"file_md5"`
	SubmitTime       time.Time `json:"submit_time"`
}

// ResumeParsedEvent 解析完成后经发件箱发布的领域事件
type ResumeParsedEvent struct {
	SubmissionUUID string    `json:"submission_uuid"`
	ResultFilePath string    `json:"result_file_path"` // 解析结果JSON的MinIO对象键
	Status         string    `json:"status"`
	OverallScore   float64   `json:"overall_score"`
	ParsedAt       time.Time `json:"parsed_at"`
}

// EventTypeResumeParsed 发件箱消息的事件类型标识
const EventTypeResumeParsed = "resume.parsed"
