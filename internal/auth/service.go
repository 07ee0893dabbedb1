package auth

import (
	"errors"

	"gorm.io/gorm"

	"terminal-terrace/blog-api/internal/dto"
	adminmodel "terminal-terrace/blog-api/internal/model/admin"
	"terminal-terrace/blog-api/internal/pkg"
	"terminal-terrace/blog-api/packages/response"
)

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// Login 校验用户名密码并签发访问令牌
// 用户不存在和密码错误返回同一条消息，避免账号枚举
func (s *AuthService) Login(req dto.LoginRequest) (*dto.LoginResponse, *response.BusinessError) {
	invalidCredentials := response.NewBusinessError(
		response.WithErrorCode(response.Unauthorized),
		response.WithErrorMessage("用户名或密码错误"),
	)

	var admin adminmodel.Admin
	err := s.db.Where("username = ?", req.Username).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalidCredentials
		}
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.InternalError),
			response.WithErrorMessage("登录失败"),
			response.WithError(err),
		)
	}

	if !pkg.VerifyPassword(admin.PasswordHash, req.Password) {
		return nil, invalidCredentials
	}

	token, expiresAt, err := pkg.GenerateAccessToken(admin.ID, admin.Username)
	if err != nil {
		return nil, response.NewBusinessError(
			response.WithErrorCode(response.InternalError),
			response.WithErrorMessage("签发令牌失败"),
			response.WithError(err),
		)
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		Username:  admin.Username,
	}, nil
}
