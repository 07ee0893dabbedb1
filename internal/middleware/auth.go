package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"terminal-terrace/blog-api/internal/dto"
	"terminal-terrace/blog-api/internal/pkg"
	"terminal-terrace/blog-api/packages/response"
)

var (
	errNoToken        = errors.New("未提供认证令牌")
	errMalformedToken = errors.New("认证格式错误")
)

// parseToken 从 Authorization header 中解析 bearer token
func parseToken(c *gin.Context) (*pkg.Claims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, errNoToken
	}

	// 验证格式: Bearer <token>
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, errMalformedToken
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == "" {
		return nil, errMalformedToken
	}

	claims, err := pkg.ParseAccessToken(tokenString)
	if err != nil {
		if errors.Is(err, pkg.ErrExpiredToken) {
			return nil, errors.New("认证令牌已过期")
		}
		return nil, errors.New("无效的认证令牌")
	}
	return claims, nil
}

// JWTAuth JWT 认证中间件，/api/admin/* 和 /api/upload 统一挂载
// 缺失/格式错误与无效/过期给出可区分的消息，但错误码和状态码一致
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := parseToken(c)
		if err != nil {
			dto.ErrorResponse(c, response.NewBusinessError(
				response.WithErrorCode(response.Unauthorized),
				response.WithErrorMessage(err.Error()),
			))
			c.Abort()
			return
		}

		// 将管理员信息存入上下文
		c.Set("admin_id", claims.AdminID)
		c.Set("username", claims.Username)
		c.Next()
	}
}
