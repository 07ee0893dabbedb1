package auth

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"terminal-terrace/blog-api/internal/dto"
	"terminal-terrace/blog-api/internal/metrics"
	"terminal-terrace/blog-api/packages/response"
)

type AuthHandler struct {
	authService *AuthService
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{authService: NewAuthService(db)}
}

// Login 管理员登录
// @Summary 管理员登录，成功返回24小时有效的访问令牌
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录请求"
// @Success 200 {object} response.Response{data=dto.LoginResponse}
// @Router /api/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	result, berr := h.authService.Login(req)
	if berr != nil {
		if berr.Code == response.Unauthorized {
			metrics.LoginAttempts.WithLabelValues("failure").Inc()
		}
		dto.ErrorResponse(c, berr)
		return
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	dto.SuccessResponse(c, result)
}
