package route

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"terminal-terrace/blog-api/config"
	"terminal-terrace/blog-api/internal/article"
	"terminal-terrace/blog-api/internal/auth"
	"terminal-terrace/blog-api/internal/category"
	"terminal-terrace/blog-api/internal/database"
	"terminal-terrace/blog-api/internal/dto"
	"terminal-terrace/blog-api/internal/health"
	"terminal-terrace/blog-api/internal/middleware"
	"terminal-terrace/blog-api/internal/tag"
	"terminal-terrace/blog-api/internal/upload"
	"terminal-terrace/blog-api/packages/response"
	"terminal-terrace/blog-api/packages/storage"
)

// JSON 接口的请求体上限，上传接口的上限在配置的文件上限之外再留 multipart 开销
const (
	jsonBodyLimit   = 1 << 20 // 1MB
	uploadBodySlack = 2 << 20 // multipart 边界和头部的余量
)

// SetupRouter 组装路由
// counterStore 是登录限流的计数存储，单实例内存、多实例 Redis
func SetupRouter(store storage.ObjectStore, counterStore middleware.CounterStore) *gin.Engine {
	if config.Conf.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// 跨域：OPTIONS 预检短路，普通响应统一并入 CORS 头
	corsConf := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       time.Duration(config.Conf.CORS.MaxAge) * time.Second,
	}
	origins := config.Conf.CORS.AllowOrigins
	if len(origins) == 0 {
		corsConf.AllowAllOrigins = true
	} else {
		corsConf.AllowOrigins = origins
	}
	r.Use(cors.New(corsConf))

	// 所有响应都带固定安全头
	r.Use(middleware.SecurityHeaders())

	// 未匹配到的 method+path 统一 404 信封
	r.NoRoute(func(c *gin.Context) {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("接口不存在"),
		))
	})
	r.NoMethod(func(c *gin.Context) {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("接口不存在"),
		))
	})

	db := database.GetDB()

	// 公开路由
	public := r.Group("/api", middleware.BodySizeLimit(jsonBodyLimit))
	{
		authHandler := auth.NewAuthHandler(db)
		rlConf := config.Conf.RateLimit
		public.POST("/login",
			middleware.LoginRateLimit(counterStore, rlConf.LoginMax,
				time.Duration(rlConf.LoginWindow)*time.Second),
			authHandler.Login)

		health.SetupHealthRoutes(public, db, database.RedisDB)
	}

	// 管理路由 - 需要认证
	admin := r.Group("/api/admin", middleware.BodySizeLimit(jsonBodyLimit), middleware.JWTAuth())

	article.SetupArticleRoutes(public, admin, db)
	category.SetupCategoryRoutes(public, admin, db)
	tag.SetupTagRoutes(public, admin, db)

	// 上传路由 - 需要认证，请求体上限放宽
	uploadBodyLimit := config.Conf.Upload.MaxSize + uploadBodySlack
	uploadGroup := r.Group("/api", middleware.BodySizeLimit(uploadBodyLimit), middleware.JWTAuth())
	upload.SetupUploadRoutes(uploadGroup, store)

	// Prometheus 指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 本地存储时直接伺服上传目录
	if config.Conf.Storage.Driver == "local" {
		r.StaticFS("/uploads", http.Dir(config.Conf.Storage.LocalDir))
	}

	return r
}
