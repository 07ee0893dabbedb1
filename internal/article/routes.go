package article

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupArticleRoutes 设置文章相关路由
// public 为开放路由组，admin 已挂载认证中间件
func SetupArticleRoutes(public, admin *gin.RouterGroup, db *gorm.DB) {
	articleHandler := NewArticleHandler(db)

	// 公开路由
	public.GET("/articles", articleHandler.PublicList)       // 文章列表（仅已发布）
	public.GET("/article/:id", articleHandler.PublicDetail)  // 文章详情（阅读量+1）
	public.POST("/article/:id/like", articleHandler.Like)    // 点赞/取消点赞

	// 管理路由 - 需要认证
	admin.GET("/articles", articleHandler.AdminList)             // 文章列表（全部状态）
	admin.GET("/article/:id", articleHandler.AdminDetail)        // 文章详情
	admin.POST("/article", articleHandler.Create)                // 创建文章
	admin.PUT("/article/:id", articleHandler.Update)             // 更新文章
	admin.DELETE("/article/:id", articleHandler.Delete)          // 删除文章
	admin.POST("/article/:id/pin", articleHandler.TogglePin)     // 置顶开关
}
