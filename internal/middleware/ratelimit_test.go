package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"terminal-terrace/blog-api/packages/response"
)

func TestMemoryCounterStore_Incr(t *testing.T) {
	store := NewMemoryCounterStore()
	ctx := context.Background()

	// 同一 key 连续计数递增
	for i := int64(1); i <= 5; i++ {
		count, resetAt, err := store.Incr(ctx, "login:1.2.3.4", time.Minute)
		assert.NoError(t, err)
		assert.Equal(t, i, count)
		assert.True(t, resetAt.After(time.Now()))
	}

	// 不同 key 互不影响
	count, _, err := store.Incr(ctx, "login:5.6.7.8", time.Minute)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMemoryCounterStore_WindowReset(t *testing.T) {
	store := NewMemoryCounterStore()
	ctx := context.Background()

	count, _, err := store.Incr(ctx, "login:1.2.3.4", 20*time.Millisecond)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, _, err = store.Incr(ctx, "login:1.2.3.4", 20*time.Millisecond)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// 窗口过期后计数从头开始
	time.Sleep(30 * time.Millisecond)
	count, _, err = store.Incr(ctx, "login:1.2.3.4", 20*time.Millisecond)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMemoryCounterStore_Cleanup(t *testing.T) {
	store := NewMemoryCounterStore()
	ctx := context.Background()

	_, _, err := store.Incr(ctx, "login:expired", 10*time.Millisecond)
	assert.NoError(t, err)
	_, _, err = store.Incr(ctx, "login:active", time.Minute)
	assert.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	store.Cleanup()

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.NotContains(t, store.buckets, "login:expired")
	assert.Contains(t, store.buckets, "login:active")
}

func setupRateLimitRouter(store CounterStore, max int, window time.Duration) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", LoginRateLimit(store, max, window), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r
}

func doLogin(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = ip + ":12345"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestLoginRateLimit 窗口内前5次放行，第6次返回429
func TestLoginRateLimit(t *testing.T) {
	r := setupRateLimitRouter(NewMemoryCounterStore(), 5, time.Minute)

	for i := 0; i < 5; i++ {
		w := doLogin(r, "1.2.3.4")
		assert.Equal(t, http.StatusOK, w.Code, "第 %d 次请求应放行", i+1)
	}

	w := doLogin(r, "1.2.3.4")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var body response.Response
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.NotNil(t, body.Error)
	assert.Equal(t, response.TooManyRequests, body.Error.Code)
}

// TestLoginRateLimit_PerIP 限流按IP隔离
func TestLoginRateLimit_PerIP(t *testing.T) {
	r := setupRateLimitRouter(NewMemoryCounterStore(), 5, time.Minute)

	for i := 0; i < 6; i++ {
		doLogin(r, "1.2.3.4")
	}
	assert.Equal(t, http.StatusTooManyRequests, doLogin(r, "1.2.3.4").Code)

	// 另一个IP不受影响
	assert.Equal(t, http.StatusOK, doLogin(r, "5.6.7.8").Code)
}

// TestLoginRateLimit_WindowExpiry 窗口过期后重新放行
func TestLoginRateLimit_WindowExpiry(t *testing.T) {
	r := setupRateLimitRouter(NewMemoryCounterStore(), 2, 30*time.Millisecond)

	assert.Equal(t, http.StatusOK, doLogin(r, "1.2.3.4").Code)
	assert.Equal(t, http.StatusOK, doLogin(r, "1.2.3.4").Code)
	assert.Equal(t, http.StatusTooManyRequests, doLogin(r, "1.2.3.4").Code)

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, http.StatusOK, doLogin(r, "1.2.3.4").Code)
}

// setupTestRedis 从环境变量取测试 Redis 地址，连不上就跳过
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("test redis not available: %v", err)
	}

	t.Cleanup(func() { client.Close() })
	return client
}

func testCounterKey(t *testing.T, client *redis.Client) string {
	t.Helper()
	key := fmt.Sprintf("login:test:%d", time.Now().UnixNano())
	t.Cleanup(func() { client.Del(context.Background(), key) })
	return key
}

// TestRedisCounterStore_Incr 计数递增且窗口以首次计数为准
func TestRedisCounterStore_Incr(t *testing.T) {
	client := setupTestRedis(t)
	store := NewRedisCounterStore(client)
	ctx := context.Background()
	key := testCounterKey(t, client)

	for i := int64(1); i <= 5; i++ {
		count, resetAt, err := store.Incr(ctx, key, time.Minute)
		assert.NoError(t, err)
		assert.Equal(t, i, count)
		assert.True(t, resetAt.After(time.Now()))
	}

	// 后续计数不顺延窗口
	ttl, err := client.TTL(ctx, key).Result()
	assert.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}

// TestRedisCounterStore_WindowExpiry 窗口过期后计数从头开始
func TestRedisCounterStore_WindowExpiry(t *testing.T) {
	client := setupTestRedis(t)
	store := NewRedisCounterStore(client)
	ctx := context.Background()
	key := testCounterKey(t, client)

	count, _, err := store.Incr(ctx, key, 100*time.Millisecond)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	time.Sleep(150 * time.Millisecond)

	count, _, err = store.Incr(ctx, key, 100*time.Millisecond)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

// TestRedisCounterStore_TTLSelfHeal 丢失 TTL 的键在下次计数时重新拿到过期时间
func TestRedisCounterStore_TTLSelfHeal(t *testing.T) {
	client := setupTestRedis(t)
	store := NewRedisCounterStore(client)
	ctx := context.Background()
	key := testCounterKey(t, client)

	_, _, err := store.Incr(ctx, key, time.Minute)
	assert.NoError(t, err)

	// 模拟 INCR 和 EXPIRE 之间进程退出留下的永久键
	assert.NoError(t, client.Persist(ctx, key).Err())

	_, resetAt, err := store.Incr(ctx, key, time.Minute)
	assert.NoError(t, err)
	assert.True(t, resetAt.After(time.Now()))

	ttl, err := client.TTL(ctx, key).Result()
	assert.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

// TestLoginRateLimit_RedisStore Redis 计数下的限流契约与内存实现一致
func TestLoginRateLimit_RedisStore(t *testing.T) {
	client := setupTestRedis(t)
	r := setupRateLimitRouter(NewRedisCounterStore(client), 5, time.Minute)

	ip := fmt.Sprintf("10.9.%d.%d",
		time.Now().UnixNano()%250, (time.Now().UnixNano()/251)%250)
	t.Cleanup(func() { client.Del(context.Background(), "login:"+ip) })

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doLogin(r, ip).Code, "第 %d 次请求应放行", i+1)
	}

	w := doLogin(r, ip)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

type failingCounterStore struct{}

func (failingCounterStore) Incr(context.Context, string, time.Duration) (int64, time.Time, error) {
	return 0, time.Time{}, context.DeadlineExceeded
}

// TestLoginRateLimit_StoreFailure 计数存储故障时放行
func TestLoginRateLimit_StoreFailure(t *testing.T) {
	r := setupRateLimitRouter(failingCounterStore{}, 5, time.Minute)

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, doLogin(r, "1.2.3.4").Code)
	}
}
