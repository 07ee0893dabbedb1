package middleware

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"terminal-terrace/blog-api/internal/dto"
	"terminal-terrace/blog-api/internal/metrics"
	"terminal-terrace/blog-api/packages/response"
)

// CounterStore 限流计数存储，单实例用内存实现，多实例部署换 Redis 实现
type CounterStore interface {
	// Incr 对 key 计数 +1，返回窗口内的当前计数和窗口重置时间
	Incr(ctx context.Context, key string, window time.Duration) (int64, time.Time, error)
}

// ===== 内存实现 =====

type memoryBucket struct {
	count   int64
	resetAt time.Time
}

// MemoryCounterStore 进程内计数器，固定窗口
type MemoryCounterStore struct {
	mu      sync.Mutex
	buckets map[string]*memoryBucket
}

func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{buckets: make(map[string]*memoryBucket)}
}

func (s *MemoryCounterStore) Incr(_ context.Context, key string, window time.Duration) (int64, time.Time, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buckets[key]
	if !ok || now.After(b.resetAt) {
		b = &memoryBucket{resetAt: now.Add(window)}
		s.buckets[key] = b
	}
	b.count++
	return b.count, b.resetAt, nil
}

// Cleanup 清理已过期的计数桶，由定时任务周期调用
func (s *MemoryCounterStore) Cleanup() {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, b := range s.buckets {
		if now.After(b.resetAt) {
			delete(s.buckets, key)
		}
	}
}

// ===== Redis 实现 =====

// RedisCounterStore 跨实例共享的计数器，INCR + EXPIRE NX
type RedisCounterStore struct {
	client *redis.Client
}

func NewRedisCounterStore(client *redis.Client) *RedisCounterStore {
	return &RedisCounterStore{client: client}
}

func (s *RedisCounterStore) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Time, error) {
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, time.Time{}, err
	}
	// 每次都 NX 设置过期：只有无 TTL 的键会被写入
	// INCR 和 EXPIRE 之间崩溃留下的永久键也能在下次请求自愈
	if err := s.client.ExpireNX(ctx, key, window).Err(); err != nil {
		return 0, time.Time{}, err
	}
	ttl, err := s.client.TTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		ttl = window
	}
	return count, time.Now().Add(ttl), nil
}

// LoginRateLimit 按客户端IP限制登录尝试，超限返回 429 + Retry-After
func LoginRateLimit(store CounterStore, max int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "login:" + c.ClientIP()

		ctx, cancel := context.WithTimeout(c, 3*time.Second)
		defer cancel()

		count, resetAt, err := store.Incr(ctx, key, window)
		if err != nil {
			// 计数存储不可用时放行，登录本身还有密码校验兜底
			c.Next()
			return
		}

		if count > int64(max) {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			metrics.LoginAttempts.WithLabelValues("ratelimited").Inc()
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			dto.ErrorResponse(c, response.NewBusinessError(
				response.WithErrorCode(response.TooManyRequests),
				response.WithErrorMessage(fmt.Sprintf("登录尝试过于频繁，请 %d 秒后重试", retryAfter)),
			))
			c.Abort()
			return
		}

		c.Next()
	}
}
