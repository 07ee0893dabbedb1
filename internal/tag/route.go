package tag

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupTagRoutes 设置标签相关路由
func SetupTagRoutes(public, admin *gin.RouterGroup, db *gorm.DB) {
	tagHandler := NewTagHandler(db)

	// 公开路由
	public.GET("/tags", tagHandler.List)    // 标签列表
	public.GET("/tag/:id", tagHandler.Get)  // 标签详情

	// 管理路由 - 需要认证
	admin.POST("/tag", tagHandler.Create)       // 创建标签
	admin.DELETE("/tag/:id", tagHandler.Delete) // 删除标签
}
