package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"terminal-terrace/blog-api/internal/dto"
	"terminal-terrace/blog-api/packages/response"
)

// SecurityHeaders 固定安全响应头，无论处理结果如何都会附加
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
		c.Next()
	}
}

// BodySizeLimit 请求体大小上限，超限返回 413
// 登录等 JSON 接口用小上限，上传接口放宽到二进制负载的量级
func BodySizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			dto.ErrorResponse(c, response.NewBusinessError(
				response.WithErrorCode(response.PayloadTooLarge),
				response.WithErrorMessage("请求体过大"),
			))
			c.Abort()
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
