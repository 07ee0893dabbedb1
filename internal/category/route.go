package category

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupCategoryRoutes 设置分类相关路由
func SetupCategoryRoutes(public, admin *gin.RouterGroup, db *gorm.DB) {
	categoryHandler := NewCategoryHandler(db)

	// 公开路由
	public.GET("/categories", categoryHandler.List)   // 分类列表
	public.GET("/category/:id", categoryHandler.Get)  // 分类详情

	// 管理路由 - 需要认证
	admin.POST("/category", categoryHandler.Create)       // 创建分类
	admin.PUT("/category/:id", categoryHandler.Update)    // 更新分类
	admin.DELETE("/category/:id", categoryHandler.Delete) // 删除分类
}
