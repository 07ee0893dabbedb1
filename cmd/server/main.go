package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"terminal-terrace/blog-api/config"
	"terminal-terrace/blog-api/internal/auth"
	"terminal-terrace/blog-api/internal/database"
	"terminal-terrace/blog-api/internal/middleware"
	"terminal-terrace/blog-api/internal/route"
	"terminal-terrace/blog-api/packages/storage"
)

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()
	zap.ReplaceGlobals(logging)

	// 1. 加载配置
	config.MustLoad("config.yaml")

	// 2. 初始化数据库（含自动迁移，Redis 可选）
	database.InitDatabase()

	// 3. 引导管理员账号
	if err := auth.SeedAdmin(database.GetDB(), logging); err != nil {
		logging.Fatal("管理员账号引导失败", zap.Error(err))
	}

	// 4. 初始化对象存储
	store, err := newObjectStore(logging)
	if err != nil {
		logging.Fatal("对象存储初始化失败", zap.Error(err))
	}

	// 5. 登录限流计数存储：有 Redis 用 Redis，否则进程内存
	var counterStore middleware.CounterStore
	if database.RedisDB != nil {
		counterStore = middleware.NewRedisCounterStore(database.RedisDB.Client)
		logging.Info("登录限流使用 Redis 计数")
	} else {
		memoryStore := middleware.NewMemoryCounterStore()
		counterStore = memoryStore

		// 内存计数桶定期清理
		janitor := cron.New()
		if _, err := janitor.AddFunc("@every 10m", memoryStore.Cleanup); err != nil {
			logging.Fatal("注册清理任务失败", zap.Error(err))
		}
		janitor.Start()
		defer janitor.Stop()
	}

	// 6. 设置路由并启动服务
	r := route.SetupRouter(store, counterStore)

	addr := fmt.Sprintf("%s:%d", config.Conf.Server.Host, config.Conf.Server.Port)
	srv := newHTTPServer(addr, r)
	logging.Info("服务启动", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Fatal("服务退出", zap.Error(err))
	}
}

// newHTTPServer 读写超时取配置值
func newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  config.Conf.Server.ReadTimeout,
		WriteTimeout: config.Conf.Server.WriteTimeout,
	}
}

// newObjectStore 按配置选择存储后端
func newObjectStore(logging *zap.Logger) (storage.ObjectStore, error) {
	storageConf := config.Conf.Storage
	switch storageConf.Driver {
	case "s3":
		logging.Info("上传存储使用 S3", zap.String("bucket", storageConf.S3.Bucket))
		return storage.NewS3Store(context.Background(), &storage.S3Config{
			Endpoint:  storageConf.S3.Endpoint,
			Region:    storageConf.S3.Region,
			Bucket:    storageConf.S3.Bucket,
			AccessKey: storageConf.S3.AccessKey,
			SecretKey: storageConf.S3.SecretKey,
		})
	default:
		logging.Info("上传存储使用本地目录", zap.String("dir", storageConf.LocalDir))
		return storage.NewLocalStore(storageConf.LocalDir)
	}
}
