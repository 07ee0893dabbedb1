package upload

import (
	"github.com/gin-gonic/gin"

	"terminal-terrace/blog-api/packages/storage"
)

// SetupUploadRoutes 设置上传路由，认证和请求体上限在路由层挂载
func SetupUploadRoutes(r *gin.RouterGroup, store storage.ObjectStore) {
	handler := NewHandler(store)
	r.POST("/upload", handler.Upload)
}
