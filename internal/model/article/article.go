// Package article 文章相关模型
package article

import (
	"time"

	"terminal-terrace/blog-api/internal/model/category"
	"terminal-terrace/blog-api/internal/model/tag"
)

// 文章状态，只有两个合法值
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Article 文章表
type Article struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Title   string `gorm:"type:varchar(255);not null" json:"title"`
	Content string `gorm:"type:text;not null" json:"content"`
	// 封面图相对路径，可为空
	Cover string `gorm:"type:varchar(500)" json:"cover,omitempty"`
	// 分类外键，可为空；分类被文章引用时禁止删除
	CategoryID  *uint  `gorm:"index" json:"category_id,omitempty"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Keywords    string `gorm:"type:varchar(500)" json:"keywords,omitempty"`
	// 状态: draft(草稿), published(已发布)
	Status string `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	// 阅读量统计，公开详情每次命中 +1
	ViewCount uint `gorm:"default:0" json:"view_count"`
	// 点赞数，unlike 时最低减到 0
	LikeCount uint `gorm:"default:0" json:"like_count"`
	// 是否置顶
	IsPinned  bool      `gorm:"default:false" json:"is_pinned"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Category *category.Category `gorm:"foreignKey:CategoryID" json:"-"`
}

// ArticleTag 文章-标签关联表，父表删除时由数据库级联清理
type ArticleTag struct {
	ArticleID uint      `gorm:"primaryKey;index" json:"article_id"`
	TagID     uint      `gorm:"primaryKey;index" json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`

	Article Article `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE" json:"-"`
	Tag     tag.Tag `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"-"`
}
