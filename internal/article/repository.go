package article

import (
	"time"

	"gorm.io/gorm"

	"terminal-terrace/blog-api/internal/model/article"
	tagmodel "terminal-terrace/blog-api/internal/model/tag"
)

// ArticleRepository 文章仓储层
type ArticleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// ===== Article 基础操作 =====

func (r *ArticleRepository) GetByID(id uint) (*article.Article, error) {
	var art article.Article
	err := r.db.First(&art, id).Error
	return &art, err
}

// GetPublishedByID 公开侧查询，草稿与不存在一视同仁
func (r *ArticleRepository) GetPublishedByID(id uint) (*article.Article, error) {
	var art article.Article
	err := r.db.Where("id = ? AND status = ?", id, article.StatusPublished).First(&art).Error
	return &art, err
}

func (r *ArticleRepository) Delete(id uint) (int64, error) {
	// 关联表行由数据库级联删除
	result := r.db.Delete(&article.Article{}, id)
	return result.RowsAffected, result.Error
}

// CreateWithTags 创建文章并写入标签关联，整体一个事务
// 任何一步失败都回滚，不会留下缺标签的文章
func (r *ArticleRepository) CreateWithTags(art *article.Article, tagIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(art).Error; err != nil {
			return err
		}
		return replaceTags(tx, art.ID, tagIDs)
	})
}

// UpdateWithTags 全量更新可变字段并整体替换标签集合，同一事务
func (r *ArticleRepository) UpdateWithTags(art *article.Article, tagIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(art).Error; err != nil {
			return err
		}
		return replaceTags(tx, art.ID, tagIDs)
	})
}

// replaceTags 先清空旧关联再逐条写入新关联
// 标签ID不做预校验，引用不存在的标签由外键约束报错
func replaceTags(tx *gorm.DB, articleID uint, tagIDs []uint) error {
	if err := tx.Where("article_id = ?", articleID).
		Delete(&article.ArticleTag{}).Error; err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}
	rows := make([]article.ArticleTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		rows = append(rows, article.ArticleTag{
			ArticleID: articleID,
			TagID:     tagID,
			CreatedAt: time.Now(),
		})
	}
	return tx.Create(&rows).Error
}

// ===== 列表查询 =====

// ListFilter 列表过滤条件，公开侧固定 Status=published
type ListFilter struct {
	Status     string
	CategoryID uint
	TagID      uint
	Keyword    string
}

// List 分页查询，总数和数据共用同一过滤谓词
func (r *ArticleRepository) List(filter ListFilter, offset, limit int) ([]article.Article, int64, error) {
	var articles []article.Article
	var total int64

	query := r.db.Model(&article.Article{})
	if filter.Status != "" {
		query = query.Where("articles.status = ?", filter.Status)
	}
	if filter.CategoryID > 0 {
		query = query.Where("articles.category_id = ?", filter.CategoryID)
	}
	if filter.Keyword != "" {
		query = query.Where("articles.title LIKE ?", "%"+filter.Keyword+"%")
	}
	if filter.TagID > 0 {
		query = query.Joins("JOIN article_tags ON article_tags.article_id = articles.id").
			Where("article_tags.tag_id = ?", filter.TagID)
	}

	// 获取总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页查询，置顶优先
	err := query.Offset(offset).Limit(limit).
		Order("articles.is_pinned DESC, articles.created_at DESC").
		Find(&articles).Error
	return articles, total, err
}

// ===== 计数器，都是单条原子语句 =====

// IncrementViewCount 公开详情命中时 +1，谓词限定已发布
// 返回是否命中（未命中说明文章不存在或是草稿）
func (r *ArticleRepository) IncrementViewCount(id uint) (bool, error) {
	result := r.db.Model(&article.Article{}).
		Where("id = ? AND status = ?", id, article.StatusPublished).
		Update("view_count", gorm.Expr("view_count + 1"))
	return result.RowsAffected > 0, result.Error
}

// Like 点赞 +1
func (r *ArticleRepository) Like(id uint) (bool, error) {
	result := r.db.Model(&article.Article{}).
		Where("id = ? AND status = ?", id, article.StatusPublished).
		Update("like_count", gorm.Expr("like_count + 1"))
	return result.RowsAffected > 0, result.Error
}

// Unlike 取消点赞，数据库侧保证不减到负数
// 计数已经是 0 时语句不命中，但只要文章存在就不算错误
func (r *ArticleRepository) Unlike(id uint) (bool, error) {
	result := r.db.Model(&article.Article{}).
		Where("id = ? AND status = ? AND like_count > 0", id, article.StatusPublished).
		Update("like_count", gorm.Expr("like_count - 1"))
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}
	var count int64
	err := r.db.Model(&article.Article{}).
		Where("id = ? AND status = ?", id, article.StatusPublished).
		Count(&count).Error
	return count > 0, err
}

// TogglePin 置顶开关取反
func (r *ArticleRepository) TogglePin(id uint) (bool, error) {
	result := r.db.Model(&article.Article{}).
		Where("id = ?", id).
		Update("is_pinned", gorm.Expr("NOT is_pinned"))
	return result.RowsAffected > 0, result.Error
}

// ===== 标签关联查询 =====

// GetTagsByArticle 查询单篇文章的标签
func (r *ArticleRepository) GetTagsByArticle(articleID uint) ([]tagmodel.Tag, error) {
	var tags []tagmodel.Tag
	err := r.db.Model(&tagmodel.Tag{}).
		Joins("JOIN article_tags ON article_tags.tag_id = tags.id").
		Where("article_tags.article_id = ?", articleID).
		Order("tags.id").
		Find(&tags).Error
	return tags, err
}

// GetTagsByArticleIDs 批量查询标签，避免列表页 N+1
func (r *ArticleRepository) GetTagsByArticleIDs(articleIDs []uint) (map[uint][]tagmodel.Tag, error) {
	tagsByArticle := make(map[uint][]tagmodel.Tag, len(articleIDs))
	if len(articleIDs) == 0 {
		return tagsByArticle, nil
	}

	type row struct {
		tagmodel.Tag
		ArticleID uint
	}
	var rows []row
	err := r.db.Model(&tagmodel.Tag{}).
		Select("tags.*, article_tags.article_id").
		Joins("JOIN article_tags ON article_tags.tag_id = tags.id").
		Where("article_tags.article_id IN ?", articleIDs).
		Order("tags.id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, item := range rows {
		tagsByArticle[item.ArticleID] = append(tagsByArticle[item.ArticleID], item.Tag)
	}
	return tagsByArticle, nil
}
