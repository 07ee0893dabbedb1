package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"terminal-terrace/blog-api/config"
	"terminal-terrace/blog-api/internal/dto"
	adminmodel "terminal-terrace/blog-api/internal/model/admin"
	"terminal-terrace/blog-api/internal/pkg"
	"terminal-terrace/blog-api/internal/testutils"
	"terminal-terrace/blog-api/packages/response"
)

func setupAuthConfig() {
	config.Conf = &config.AppConfig{
		JWT: config.JWTConfig{
			Secret:     "test-secret-key",
			ExpireTime: 24,
		},
	}
}

// TestAuthServiceLogin 测试管理员登录
func TestAuthServiceLogin(t *testing.T) {
	setupAuthConfig()
	db := testutils.SetupTestDB(t)
	service := NewAuthService(db)

	admin := testutils.CreateTestAdmin(db, testutils.WithPassword("password123"))

	tests := []struct {
		name        string
		req         dto.LoginRequest
		expectError bool
		errorCode   response.ErrorCode
		errorMsg    string
	}{
		{
			name: "登录成功",
			req:  dto.LoginRequest{Username: admin.Username, Password: "password123"},
		},
		{
			name:        "密码错误",
			req:         dto.LoginRequest{Username: admin.Username, Password: "wrongpassword"},
			expectError: true,
			errorCode:   response.Unauthorized,
			errorMsg:    "用户名或密码错误",
		},
		{
			name:        "用户不存在",
			req:         dto.LoginRequest{Username: "nonexistent", Password: "password123"},
			expectError: true,
			errorCode:   response.Unauthorized,
			errorMsg:    "用户名或密码错误",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, bizErr := service.Login(tt.req)

			if tt.expectError {
				assert.NotNil(t, bizErr)
				assert.Equal(t, tt.errorCode, bizErr.Code)
				// 用户不存在和密码错误给出同一条消息
				assert.Equal(t, tt.errorMsg, bizErr.Msg)
			} else {
				assert.Nil(t, bizErr)
				assert.NotEmpty(t, resp.Token)
				assert.Equal(t, admin.Username, resp.Username)
				assert.Greater(t, resp.ExpiresAt, time.Now().Unix())

				// 令牌可以解析回管理员身份
				claims, err := pkg.ParseAccessToken(resp.Token)
				assert.NoError(t, err)
				assert.Equal(t, admin.ID, claims.AdminID)
				assert.Equal(t, admin.Username, claims.Username)
			}
		})
	}
}

// TestSeedAdmin 管理员引导只生效一次
func TestSeedAdmin(t *testing.T) {
	setupAuthConfig()
	config.Conf.Admin = config.AdminConfig{
		Username: "seed_admin",
		Password: "seed-password",
	}
	db := testutils.SetupTestDB(t)
	logging := zap.NewNop()

	err := SeedAdmin(db, logging)
	assert.NoError(t, err)

	var admin adminmodel.Admin
	assert.NoError(t, db.Where("username = ?", "seed_admin").First(&admin).Error)
	assert.True(t, pkg.VerifyPassword(admin.PasswordHash, "seed-password"))

	// 重复引导不重建也不报错
	err = SeedAdmin(db, logging)
	assert.NoError(t, err)

	var count int64
	assert.NoError(t, db.Model(&adminmodel.Admin{}).
		Where("username = ?", "seed_admin").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

// TestSeedAdmin_MissingConfig 缺少引导配置时报错
func TestSeedAdmin_MissingConfig(t *testing.T) {
	setupAuthConfig()
	config.Conf.Admin = config.AdminConfig{}
	db := testutils.SetupTestDB(t)

	err := SeedAdmin(db, zap.NewNop())
	assert.Error(t, err)
}
