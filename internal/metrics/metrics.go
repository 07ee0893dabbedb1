// Package metrics 业务指标，经 /metrics 暴露给 Prometheus 抓取
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LoginAttempts 登录尝试计数，result: success, failure, ratelimited
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_login_attempts_total",
			Help: "Total number of login attempts by result.",
		},
		[]string{"result"},
	)

	// ArticlesCreated 创建文章计数
	ArticlesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blog_articles_created_total",
			Help: "Total number of articles created.",
		},
	)

	// Uploads 成功上传计数
	Uploads = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blog_uploads_total",
			Help: "Total number of successful file uploads.",
		},
	)
)
