package constants

// 简历处理状态，贯穿上传、解析、评分各环节
const (
	// StatusUploaded 原始文件已入库，等待解析
	StatusUploaded = "UPLOADED"
	// StatusParsing 解析中
	StatusParsing = "PARSING"
	// StatusParsed 解析完成
	StatusParsed = "PARSED"
	// StatusParseFailed 解析失败
	StatusParseFailed = "PARSE_FAILED"
	// StatusDuplicate 文件MD5命中去重集合，跳过处理
	StatusDuplicate = "DUPLICATE"
)

// 文件类型标识
const (
	FileTypePDF  = "pdf"
	FileTypeDocx = "docx"
	FileTypeTxt  = "txt"
)

// MIME类型
const (
	MIMETypePDF  = "application/pdf"
	MIMETypeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMETypeText = "text/plain"
	MIMETypeJSON = "application/json"
)

// 上传接口限制
const (
	// MaxUploadSizeBytes 单个简历文件大小上限
	MaxUploadSizeBytes = 20 << 20 // 20MB
)
