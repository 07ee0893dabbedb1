package category

import (
	"gorm.io/gorm"

	articlemodel "terminal-terrace/blog-api/internal/model/article"
	"terminal-terrace/blog-api/internal/model/category"
)

// CategoryRepository 分类仓储层
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) GetByID(id uint) (*category.Category, error) {
	var cat category.Category
	err := r.db.First(&cat, id).Error
	return &cat, err
}

func (r *CategoryRepository) List() ([]category.Category, error) {
	var categories []category.Category
	err := r.db.Order("id").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) Create(cat *category.Category) error {
	return r.db.Create(cat).Error
}

func (r *CategoryRepository) Update(cat *category.Category) error {
	return r.db.Save(cat).Error
}

func (r *CategoryRepository) Delete(id uint) error {
	return r.db.Delete(&category.Category{}, id).Error
}

// SlugExists slug 唯一性预检，更新时排除自身
// 唯一索引兜底，预检是为了返回可读的 409 而不是裸的约束报错
func (r *CategoryRepository) SlugExists(slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&category.Category{}).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// CountArticles 引用该分类的文章数，删除前必须为 0
func (r *CategoryRepository) CountArticles(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&articlemodel.Article{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

// CountPublishedByCategory 公开列表附带的已发布文章数，一次查出避免 N+1
func (r *CategoryRepository) CountPublishedByCategory() (map[uint]int64, error) {
	type row struct {
		CategoryID uint
		Count      int64
	}
	var rows []row
	err := r.db.Model(&articlemodel.Article{}).
		Select("category_id, COUNT(*) AS count").
		Where("status = ? AND category_id IS NOT NULL", articlemodel.StatusPublished).
		Group("category_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, item := range rows {
		counts[item.CategoryID] = item.Count
	}
	return counts, nil
}
