package auth

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"terminal-terrace/blog-api/config"
	adminmodel "terminal-terrace/blog-api/internal/model/admin"
	"terminal-terrace/blog-api/internal/pkg"
)

// SeedAdmin 引导管理员账号，已存在则跳过
// 管理员只在这里创建一次，正常运行期间不再变更
func SeedAdmin(db *gorm.DB, logging *zap.Logger) error {
	adminConf := config.Conf.Admin
	if adminConf.Username == "" || adminConf.Password == "" {
		return errors.New("缺少管理员引导配置 admin.username / admin.password")
	}

	var existing adminmodel.Admin
	err := db.Where("username = ?", adminConf.Username).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := pkg.HashPassword(adminConf.Password)
	if err != nil {
		return err
	}

	if err := db.Create(&adminmodel.Admin{
		Username:     adminConf.Username,
		PasswordHash: hash,
	}).Error; err != nil {
		return err
	}

	logging.Info("管理员账号已创建", zap.String("username", adminConf.Username))
	return nil
}
