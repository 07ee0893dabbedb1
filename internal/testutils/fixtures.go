package testutils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	adminmodel "terminal-terrace/blog-api/internal/model/admin"
	articlemodel "terminal-terrace/blog-api/internal/model/article"
	categorymodel "terminal-terrace/blog-api/internal/model/category"
	tagmodel "terminal-terrace/blog-api/internal/model/tag"
	"terminal-terrace/blog-api/internal/pkg"
)

// CreateTestAdmin creates an admin with a known password ("test-password"
// unless overridden via WithPassword).
func CreateTestAdmin(db *gorm.DB, opts ...AdminOption) *adminmodel.Admin {
	cfg := adminFixture{password: "test-password"}
	for _, opt := range opts {
		opt(&cfg)
	}

	hash, err := pkg.HashPassword(cfg.password)
	if err != nil {
		panic(fmt.Sprintf("Failed to hash fixture password: %v", err))
	}

	admin := &adminmodel.Admin{
		Username:     fmt.Sprintf("test_admin_%s", uuid.New().String()),
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if cfg.username != "" {
		admin.Username = cfg.username
	}

	if err := db.Create(admin).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test admin: %v", err))
	}
	return admin
}

type adminFixture struct {
	username string
	password string
}

// AdminOption configures the admin fixture
type AdminOption func(*adminFixture)

func WithUsername(username string) AdminOption {
	return func(a *adminFixture) {
		a.username = username
	}
}

func WithPassword(password string) AdminOption {
	return func(a *adminFixture) {
		a.password = password
	}
}

// CreateTestCategory creates a category with a unique slug
func CreateTestCategory(db *gorm.DB, opts ...CategoryOption) *categorymodel.Category {
	uniqueID := uuid.New().String()
	cat := &categorymodel.Category{
		Name:      fmt.Sprintf("test_category_%s", uniqueID),
		Slug:      fmt.Sprintf("test-category-%s", uniqueID),
		CreatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(cat)
	}

	if err := db.Create(cat).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test category: %v", err))
	}
	return cat
}

// CategoryOption configures the category fixture
type CategoryOption func(*categorymodel.Category)

func WithCategorySlug(slug string) CategoryOption {
	return func(c *categorymodel.Category) {
		c.Slug = slug
	}
}

// CreateTestTag creates a tag with a unique slug
func CreateTestTag(db *gorm.DB, opts ...TagOption) *tagmodel.Tag {
	uniqueID := uuid.New().String()
	t := &tagmodel.Tag{
		Name:      fmt.Sprintf("test_tag_%s", uniqueID),
		Slug:      fmt.Sprintf("test-tag-%s", uniqueID),
		CreatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(t)
	}

	if err := db.Create(t).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test tag: %v", err))
	}
	return t
}

// TagOption configures the tag fixture
type TagOption func(*tagmodel.Tag)

func WithTagSlug(slug string) TagOption {
	return func(t *tagmodel.Tag) {
		t.Slug = slug
	}
}

// CreateTestArticle creates a published article by default
func CreateTestArticle(db *gorm.DB, opts ...ArticleOption) *articlemodel.Article {
	art := &articlemodel.Article{
		Title:     fmt.Sprintf("test_article_%s", uuid.New().String()),
		Content:   "<p>test content</p>",
		Status:    articlemodel.StatusPublished,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(art)
	}

	if err := db.Create(art).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test article: %v", err))
	}
	return art
}

// ArticleOption configures the article fixture
type ArticleOption func(*articlemodel.Article)

func WithStatus(status string) ArticleOption {
	return func(a *articlemodel.Article) {
		a.Status = status
	}
}

func WithCategory(categoryID uint) ArticleOption {
	return func(a *articlemodel.Article) {
		a.CategoryID = &categoryID
	}
}

func WithPinned() ArticleOption {
	return func(a *articlemodel.Article) {
		a.IsPinned = true
	}
}

// LinkArticleTag associates an article with a tag
func LinkArticleTag(db *gorm.DB, articleID, tagID uint) {
	if err := db.Create(&articlemodel.ArticleTag{
		ArticleID: articleID,
		TagID:     tagID,
		CreatedAt: time.Now(),
	}).Error; err != nil {
		panic(fmt.Sprintf("Failed to link article and tag: %v", err))
	}
}
