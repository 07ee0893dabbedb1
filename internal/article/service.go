package article

import (
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"terminal-terrace/blog-api/internal/dto"
	"terminal-terrace/blog-api/internal/model/article"
	categorymodel "terminal-terrace/blog-api/internal/model/category"
	tagmodel "terminal-terrace/blog-api/internal/model/tag"
	"terminal-terrace/blog-api/packages/response"
)

type ArticleService struct {
	articleRepo *ArticleRepository
	db          *gorm.DB
}

func NewArticleService(articleRepo *ArticleRepository, db *gorm.DB) *ArticleService {
	return &ArticleService{
		articleRepo: articleRepo,
		db:          db,
	}
}

// normalizePage 页码和页大小各自钳制: page ≥ 1, 1 ≤ pageSize ≤ 100
func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

// PublicList 公开文章列表，只返回已发布文章
func (s *ArticleService) PublicList(query dto.ArticleListQuery) (*dto.ArticleListResponse, *response.BusinessError) {
	query.Status = article.StatusPublished
	return s.list(query)
}

// AdminList 管理端文章列表，默认全部状态，可按状态过滤
func (s *ArticleService) AdminList(query dto.ArticleListQuery) (*dto.ArticleListResponse, *response.BusinessError) {
	return s.list(query)
}

func (s *ArticleService) list(query dto.ArticleListQuery) (*dto.ArticleListResponse, *response.BusinessError) {
	page, pageSize := normalizePage(query.Page, query.PageSize)

	articles, total, err := s.articleRepo.List(ListFilter{
		Status:     query.Status,
		CategoryID: query.CategoryID,
		TagID:      query.TagID,
		Keyword:    query.Keyword,
	}, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, internalError("获取文章列表失败", err)
	}

	articleIDs := make([]uint, 0, len(articles))
	for _, art := range articles {
		articleIDs = append(articleIDs, art.ID)
	}
	tagsByArticle, err := s.articleRepo.GetTagsByArticleIDs(articleIDs)
	if err != nil {
		return nil, internalError("获取文章标签失败", err)
	}

	items := make([]dto.ArticleResponse, 0, len(articles))
	for i := range articles {
		item := toArticleResponse(&articles[i], tagsByArticle[articles[i].ID], nil, false)
		items = append(items, *item)
	}

	return &dto.ArticleListResponse{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Items:    items,
	}, nil
}

// PublicDetail 公开文章详情: 先做谓词限定的阅读量 +1，未命中即 404
// 命中后重新读取该行，分类和标签两个独立读并发执行
func (s *ArticleService) PublicDetail(id uint) (*dto.ArticleResponse, *response.BusinessError) {
	hit, err := s.articleRepo.IncrementViewCount(id)
	if err != nil {
		return nil, internalError("获取文章失败", err)
	}
	if !hit {
		return nil, notFoundError("文章不存在")
	}

	art, err := s.articleRepo.GetPublishedByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("文章不存在")
		}
		return nil, internalError("获取文章失败", err)
	}

	tags, cat, berr := s.loadRelations(art)
	if berr != nil {
		return nil, berr
	}
	return toArticleResponse(art, tags, cat, true), nil
}

// AdminDetail 管理端详情，不过滤状态也不计阅读量
func (s *ArticleService) AdminDetail(id uint) (*dto.ArticleResponse, *response.BusinessError) {
	art, err := s.articleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("文章不存在")
		}
		return nil, internalError("获取文章失败", err)
	}

	tags, cat, berr := s.loadRelations(art)
	if berr != nil {
		return nil, berr
	}
	return toArticleResponse(art, tags, cat, true), nil
}

// loadRelations 并发读取文章的标签和分类
func (s *ArticleService) loadRelations(art *article.Article) ([]tagmodel.Tag, *categorymodel.Category, *response.BusinessError) {
	var (
		wg      sync.WaitGroup
		tags    []tagmodel.Tag
		cat     *categorymodel.Category
		tagsErr error
		catErr  error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		tags, tagsErr = s.articleRepo.GetTagsByArticle(art.ID)
	}()

	if art.CategoryID != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var c categorymodel.Category
			catErr = s.db.First(&c, *art.CategoryID).Error
			if catErr == nil {
				cat = &c
			}
		}()
	}
	wg.Wait()

	if tagsErr != nil {
		return nil, nil, internalError("获取文章标签失败", tagsErr)
	}
	if catErr != nil && !errors.Is(catErr, gorm.ErrRecordNotFound) {
		return nil, nil, internalError("获取文章分类失败", catErr)
	}
	return tags, cat, nil
}

// Create 创建文章，文章行和标签关联同一事务写入
func (s *ArticleService) Create(req dto.CreateArticleRequest) (*dto.ArticleResponse, *response.BusinessError) {
	if berr := s.checkCategory(req.CategoryID); berr != nil {
		return nil, berr
	}

	art := &article.Article{
		Title:       req.Title,
		Content:     req.Content,
		Cover:       req.Cover,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Keywords:    req.Keywords,
		Status:      req.Status,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.articleRepo.CreateWithTags(art, req.TagIDs); err != nil {
		return nil, internalError("创建文章失败", err)
	}

	return s.AdminDetail(art.ID)
}

// Update 全量替换可变字段并整体替换标签集合
func (s *ArticleService) Update(id uint, req dto.UpdateArticleRequest) (*dto.ArticleResponse, *response.BusinessError) {
	art, err := s.articleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("文章不存在")
		}
		return nil, internalError("获取文章失败", err)
	}

	if berr := s.checkCategory(req.CategoryID); berr != nil {
		return nil, berr
	}

	art.Title = req.Title
	art.Content = req.Content
	art.Cover = req.Cover
	art.CategoryID = req.CategoryID
	art.Description = req.Description
	art.Keywords = req.Keywords
	art.Status = req.Status
	art.UpdatedAt = time.Now()

	if err := s.articleRepo.UpdateWithTags(art, req.TagIDs); err != nil {
		return nil, internalError("更新文章失败", err)
	}

	return s.AdminDetail(art.ID)
}

// Delete 删除文章，关联表行由级联清理
func (s *ArticleService) Delete(id uint) *response.BusinessError {
	affected, err := s.articleRepo.Delete(id)
	if err != nil {
		return internalError("删除文章失败", err)
	}
	if affected == 0 {
		return notFoundError("文章不存在")
	}
	return nil
}

// Like 点赞/取消点赞，计数变更是单条原子语句
// 由请求驱动，服务端不跟踪点赞者，重复请求会重复计数
func (s *ArticleService) Like(id uint, action string) (*dto.ArticleResponse, *response.BusinessError) {
	var (
		hit bool
		err error
	)
	if action == "like" {
		hit, err = s.articleRepo.Like(id)
	} else {
		hit, err = s.articleRepo.Unlike(id)
	}
	if err != nil {
		return nil, internalError("更新点赞数失败", err)
	}
	if !hit {
		return nil, notFoundError("文章不存在")
	}

	art, err := s.articleRepo.GetPublishedByID(id)
	if err != nil {
		return nil, internalError("获取文章失败", err)
	}
	return toArticleResponse(art, nil, nil, false), nil
}

// TogglePin 置顶开关
func (s *ArticleService) TogglePin(id uint) (*dto.ArticleResponse, *response.BusinessError) {
	hit, err := s.articleRepo.TogglePin(id)
	if err != nil {
		return nil, internalError("更新置顶状态失败", err)
	}
	if !hit {
		return nil, notFoundError("文章不存在")
	}
	return s.AdminDetail(id)
}

// checkCategory 分类是弱引用，但提前校验能给出可读的 400 而不是外键报错
func (s *ArticleService) checkCategory(categoryID *uint) *response.BusinessError {
	if categoryID == nil {
		return nil
	}
	var count int64
	if err := s.db.Model(&categorymodel.Category{}).
		Where("id = ?", *categoryID).Count(&count).Error; err != nil {
		return internalError("校验分类失败", err)
	}
	if count == 0 {
		return response.NewBusinessError(
			response.WithErrorCode(response.BadRequest),
			response.WithErrorMessage("分类不存在"),
		)
	}
	return nil
}

// ===== 辅助函数 =====

func toArticleResponse(art *article.Article, tags []tagmodel.Tag, cat *categorymodel.Category, withContent bool) *dto.ArticleResponse {
	resp := &dto.ArticleResponse{
		ID:          art.ID,
		Title:       art.Title,
		Cover:       art.Cover,
		CategoryID:  art.CategoryID,
		Description: art.Description,
		Keywords:    art.Keywords,
		Status:      art.Status,
		ViewCount:   art.ViewCount,
		LikeCount:   art.LikeCount,
		IsPinned:    art.IsPinned,
		Tags:        make([]dto.TagBrief, 0, len(tags)),
		CreatedAt:   art.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   art.UpdatedAt.Format(time.RFC3339),
	}
	if withContent {
		resp.Content = art.Content
	}
	for _, t := range tags {
		resp.Tags = append(resp.Tags, dto.TagBrief{ID: t.ID, Name: t.Name, Slug: t.Slug})
	}
	if cat != nil {
		resp.Category = &dto.CategoryBrief{ID: cat.ID, Name: cat.Name, Slug: cat.Slug}
	}
	return resp
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
