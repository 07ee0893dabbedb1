package model

import (
	"gorm.io/gorm"

	"terminal-terrace/blog-api/internal/model/admin"
	"terminal-terrace/blog-api/internal/model/article"
	"terminal-terrace/blog-api/internal/model/category"
	"terminal-terrace/blog-api/internal/model/tag"
)

func InitTable(db *gorm.DB) error {
	// 自动迁移数据库表结构，关联表放在父表之后
	return db.AutoMigrate(
		&admin.Admin{},
		&category.Category{},
		&tag.Tag{},
		&article.Article{},
		&article.ArticleTag{},
	)
}
