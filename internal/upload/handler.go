package upload

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"terminal-terrace/blog-api/config"
	"terminal-terrace/blog-api/internal/dto"
	"terminal-terrace/blog-api/internal/metrics"
	"terminal-terrace/blog-api/packages/response"
	"terminal-terrace/blog-api/packages/storage"
)

type Handler struct {
	store storage.ObjectStore
}

func NewHandler(store storage.ObjectStore) *Handler {
	return &Handler{store: store}
}

// Upload 上传文件
// @Summary 上传图片，multipart 表单或原始二进制均可
// @Description MIME 白名单: jpeg/png/gif/webp/svg，大小上限 10MB
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file false "multipart 方式的文件字段"
// @Success 200 {object} response.Response{data=upload.UploadResponse}
// @Security BearerAuth
// @Router /api/upload [post]
func (h *Handler) Upload(c *gin.Context) {
	data, mimeType, berr := readFile(c)
	if berr != nil {
		dto.ErrorResponse(c, berr)
		return
	}

	if limit := maxUploadSize(); int64(len(data)) > limit {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.BadRequest),
			response.WithErrorMessage(fmt.Sprintf("文件大小超过 %dMB 限制", limit>>20)),
		))
		return
	}

	ext, ok := allowedTypes[mimeType]
	if !ok {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.BadRequest),
			response.WithErrorMessage("不支持的文件类型: "+mimeType),
		))
		return
	}

	// 时间戳 + 密码学随机后缀，防碰撞也防猜测
	suffix := make([]byte, 8)
	if _, err := rand.Read(suffix); err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.InternalError),
			response.WithErrorMessage("生成文件名失败"),
			response.WithError(err),
		))
		return
	}
	fileName := fmt.Sprintf("%d-%s%s", time.Now().Unix(), hex.EncodeToString(suffix), ext)

	url, err := h.store.Put(c, fileName, data, mimeType)
	if err != nil {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.InternalError),
			response.WithErrorMessage("保存文件失败"),
			response.WithError(err),
		))
		return
	}

	metrics.Uploads.Inc()
	dto.SuccessResponse(c, UploadResponse{
		URL:      url,
		FileName: fileName,
		Size:     int64(len(data)),
		MimeType: mimeType,
	})
}

// maxUploadSize 配置了 upload.max_size 时以配置为准
func maxUploadSize() int64 {
	if config.Conf != nil && config.Conf.Upload.MaxSize > 0 {
		return config.Conf.Upload.MaxSize
	}
	return MaxFileSize
}

// readFile 读出文件内容和 MIME 类型，multipart 和原始二进制两种形态
func readFile(c *gin.Context) ([]byte, string, *response.BusinessError) {
	contentType := c.GetHeader("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return nil, "", response.NewBusinessError(
				response.WithErrorCode(response.BadRequest),
				response.WithErrorMessage("缺少 file 字段"),
			)
		}

		src, err := fileHeader.Open()
		if err != nil {
			return nil, "", response.NewBusinessError(
				response.WithErrorCode(response.InternalError),
				response.WithErrorMessage("读取上传文件失败"),
				response.WithError(err),
			)
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			return nil, "", response.NewBusinessError(
				response.WithErrorCode(response.InternalError),
				response.WithErrorMessage("读取上传文件失败"),
				response.WithError(err),
			)
		}
		return data, normalizeMime(fileHeader.Header.Get("Content-Type")), nil
	}

	// 原始二进制，MIME 取请求头
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, "", response.NewBusinessError(
			response.WithErrorCode(response.BadRequest),
			response.WithErrorMessage("读取请求体失败"),
		)
	}
	if len(data) == 0 {
		return nil, "", response.NewBusinessError(
			response.WithErrorCode(response.BadRequest),
			response.WithErrorMessage("请求体为空"),
		)
	}
	return data, normalizeMime(contentType), nil
}

// normalizeMime 去掉参数部分，如 "image/svg+xml; charset=utf-8"
func normalizeMime(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.TrimSpace(strings.ToLower(contentType))
	}
	return mediaType
}
