package upload

// MaxFileSize 上传文件大小默认上限，可被 upload.max_size 配置覆盖
const MaxFileSize = 10 << 20 // 10MB

// allowedTypes MIME 白名单及对应扩展名
var allowedTypes = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

// UploadResponse 上传成功响应
type UploadResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type"`
}
