package category

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"terminal-terrace/blog-api/internal/dto"
	"terminal-terrace/blog-api/internal/model/category"
	"terminal-terrace/blog-api/packages/response"
)

type CategoryService struct {
	categoryRepo *CategoryRepository
}

func NewCategoryService(categoryRepo *CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// List 全部分类，附带已发布文章数
func (s *CategoryService) List() ([]dto.CategoryResponse, *response.BusinessError) {
	categories, err := s.categoryRepo.List()
	if err != nil {
		return nil, internalError("获取分类列表失败", err)
	}
	counts, err := s.categoryRepo.CountPublishedByCategory()
	if err != nil {
		return nil, internalError("获取分类文章数失败", err)
	}

	items := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, toCategoryResponse(&categories[i], counts[categories[i].ID]))
	}
	return items, nil
}

func (s *CategoryService) Get(id uint) (*dto.CategoryResponse, *response.BusinessError) {
	cat, err := s.categoryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("分类不存在")
		}
		return nil, internalError("获取分类失败", err)
	}
	count, err := s.categoryRepo.CountArticles(id)
	if err != nil {
		return nil, internalError("获取分类文章数失败", err)
	}
	resp := toCategoryResponse(cat, count)
	return &resp, nil
}

// Create slug 冲突返回 409
func (s *CategoryService) Create(req dto.CreateCategoryRequest) (*dto.CategoryResponse, *response.BusinessError) {
	if berr := s.checkSlug(req.Slug, 0); berr != nil {
		return nil, berr
	}

	cat := &category.Category{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}
	if err := s.categoryRepo.Create(cat); err != nil {
		return nil, internalError("创建分类失败", err)
	}

	resp := toCategoryResponse(cat, 0)
	return &resp, nil
}

func (s *CategoryService) Update(id uint, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, *response.BusinessError) {
	cat, err := s.categoryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("分类不存在")
		}
		return nil, internalError("获取分类失败", err)
	}

	if berr := s.checkSlug(req.Slug, id); berr != nil {
		return nil, berr
	}

	cat.Name = req.Name
	cat.Slug = req.Slug
	cat.Description = req.Description
	if err := s.categoryRepo.Update(cat); err != nil {
		return nil, internalError("更新分类失败", err)
	}

	count, err := s.categoryRepo.CountArticles(id)
	if err != nil {
		return nil, internalError("获取分类文章数失败", err)
	}
	resp := toCategoryResponse(cat, count)
	return &resp, nil
}

// Delete 有文章引用时拒绝删除，409 消息里带引用数
func (s *CategoryService) Delete(id uint) *response.BusinessError {
	if _, err := s.categoryRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("分类不存在")
		}
		return internalError("获取分类失败", err)
	}

	count, err := s.categoryRepo.CountArticles(id)
	if err != nil {
		return internalError("获取分类文章数失败", err)
	}
	if count > 0 {
		return response.NewBusinessError(
			response.WithErrorCode(response.Conflict),
			response.WithErrorMessage(fmt.Sprintf("该分类下仍有 %d 篇文章，无法删除", count)),
			response.WithErrorDetails(map[string]int64{"article_count": count}),
		)
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		return internalError("删除分类失败", err)
	}
	return nil
}

func (s *CategoryService) checkSlug(slug string, excludeID uint) *response.BusinessError {
	exists, err := s.categoryRepo.SlugExists(slug, excludeID)
	if err != nil {
		return internalError("校验 slug 失败", err)
	}
	if exists {
		return response.NewBusinessError(
			response.WithErrorCode(response.Conflict),
			response.WithErrorMessage(fmt.Sprintf("slug '%s' 已被占用", slug)),
		)
	}
	return nil
}

func toCategoryResponse(cat *category.Category, articleCount int64) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:           cat.ID,
		Name:         cat.Name,
		Slug:         cat.Slug,
		Description:  cat.Description,
		ArticleCount: articleCount,
		CreatedAt:    cat.CreatedAt.Format(time.RFC3339),
	}
}

func notFoundError(msg string) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.NotFound),
		response.WithErrorMessage(msg),
	)
}

func internalError(msg string, err error) *response.BusinessError {
	return response.NewBusinessError(
		response.WithErrorCode(response.InternalError),
		response.WithErrorMessage(msg),
		response.WithError(err),
	)
}
