package tag

import (
	"gorm.io/gorm"

	"terminal-terrace/blog-api/internal/model/tag"
)

// TagRepository 标签仓储层
type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) GetByID(id uint) (*tag.Tag, error) {
	var t tag.Tag
	err := r.db.First(&t, id).Error
	return &t, err
}

func (r *TagRepository) List() ([]tag.Tag, error) {
	var tags []tag.Tag
	err := r.db.Order("id").Find(&tags).Error
	return tags, err
}

func (r *TagRepository) Create(t *tag.Tag) error {
	return r.db.Create(t).Error
}

// Delete 关联表行由数据库级联删除，这里只删标签行
func (r *TagRepository) Delete(id uint) (int64, error) {
	result := r.db.Delete(&tag.Tag{}, id)
	return result.RowsAffected, result.Error
}

// SlugExists slug 唯一性预检，为的是返回可读的 409
func (r *TagRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&tag.Tag{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}
