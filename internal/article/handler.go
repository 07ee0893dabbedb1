package article

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"terminal-terrace/blog-api/internal/dto"
	"terminal-terrace/blog-api/internal/metrics"
	"terminal-terrace/blog-api/packages/response"
)

type ArticleHandler struct {
	articleService *ArticleService
}

func NewArticleHandler(db *gorm.DB) *ArticleHandler {
	articleRepo := NewArticleRepository(db)
	return &ArticleHandler{
		articleService: NewArticleService(articleRepo, db),
	}
}

// parseArticleID 路径参数必须是纯数字
// 非数字段视同未匹配的路由，和 NoRoute 返回同一个 404 信封
func parseArticleID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		dto.ErrorResponse(c, response.NewBusinessError(
			response.WithErrorCode(response.NotFound),
			response.WithErrorMessage("接口不存在"),
		))
		return 0, false
	}
	return uint(id), true
}

// bindListQuery 查询参数解析失败按 400 处理
func bindListQuery(c *gin.Context) (dto.ArticleListQuery, bool) {
	var query dto.ArticleListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		dto.ValidationErrorResponse(c, err)
		return query, false
	}
	return query, true
}

// PublicList 公开文章列表
// @Summary 公开文章列表（分页，仅已发布）
// @Tags Article
// @Produce json
// @Param page query int false "页码" default(1)
// @Param pageSize query int false "每页数量" default(10)
// @Param categoryId query int false "分类ID过滤"
// @Param tagId query int false "标签ID过滤"
// @Param keyword query string false "标题关键字"
// @Success 200 {object} response.Response{data=dto.ArticleListResponse}
// @Router /api/articles [get]
func (h *ArticleHandler) PublicList(c *gin.Context) {
	query, ok := bindListQuery(c)
	if !ok {
		return
	}

	result, berr := h.articleService.PublicList(query)
	if berr != nil {
		dto.ErrorResponse(c, berr)
		return
	}
	dto.SuccessResponse(c, result)
}

// PublicDetail 公开文章详情
// @Summary 公开文章详情，每次命中阅读量+1，草稿与不存在一律404
// @Tags Article
// @Produce json
// @Param id path int true "文章ID"
// @Success 200 {object} response.Response{data=dto.ArticleResponse}
// @Router /api/article/{id} [get]
func (h *ArticleHandler) PublicDetail(c *gin.Context) {
	id, ok := parseArticleID(c)
	if !ok {
		return
	}

	result, berr := h.articleService.PublicDetail(id)
	if berr != nil {
		dto.ErrorResponse(c, berr)
		return
	}
	dto.SuccessResponse(c, result)
}

// Like 点赞/取消点赞
// @Summary 点赞或取消点赞（请求驱动，取消时最低减到0）
// @Tags Article
// @Accept json
// @Produce json
// @Param id path int true "文章ID"
// @Param request body dto.LikeArticleRequest true "like 或 unlike"
// @Success 200 {object} response.Response{data=dto.ArticleResponse}
// @Router /api/article/{id}/like [post]
func (h *ArticleHandler) Like(c *gin.Context) {
	id, ok := parseArticleID(c)
	if !ok {
		return
	}

	var req dto.LikeArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	result, berr := h.articleService.Like(id, req.Action)
	if berr != nil {
		dto.ErrorResponse(c, berr)
		return
	}
	dto.SuccessResponse(c, result)
}

// AdminList 管理端文章列表
// @Summary 管理端文章列表（全部状态，可按状态过滤）
// @Tags Article
// @Produce json
// @Param status query string false "状态过滤" Enums(draft, published)
// @Success 200 {object} response.Response{data=dto.ArticleListResponse}
// @Security BearerAuth
// @Router /api/admin/articles [get]
func (h *ArticleHandler) AdminList(c *gin.Context) {
	query, ok := bindListQuery(c)
	if !ok {
		return
	}

	result, berr := h.articleService.AdminList(query)
	if berr != nil {
		dto.ErrorResponse(c, berr)
		return
	}
	dto.SuccessResponse(c, result)
}

// AdminDetail 管理端文章详情
// @Summary 管理端文章详情（不过滤状态、不计阅读量）
// @Tags Article
// @Produce json
// @Param id path int true "文章ID"
// @Success 200 {object} response.Response{data=dto.ArticleResponse}
// @Security BearerAuth
// @Router /api/admin/article/{id} [get]
func (h *ArticleHandler) AdminDetail(c *gin.Context) {
	id, ok := parseArticleID(c)
	if !ok {
		return
	}

	result, berr := h.articleService.AdminDetail(id)
	if berr != nil {
		dto.ErrorResponse(c, berr)
		return
	}
	dto.SuccessResponse(c, result)
}

// Create 创建文章
// @Summary 创建文章（文章和标签关联同一事务）
// @Tags Article
// @Accept json
// @Produce json
// @Param request body dto.CreateArticleRequest true "创建文章请求"
// @Success 201 {object} response.Response{data=dto.ArticleResponse}
// @Security BearerAuth
// @Router /api/admin/article [post]
func (h *ArticleHandler) Create(c *gin.Context) {
	var req dto.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	result, berr := h.articleService.Create(req)
	if berr != nil {
		dto.ErrorResponse(c, berr)
		return
	}

	metrics.ArticlesCreated.Inc()
	dto.CreatedResponse(c, result)
}

// Update 更新文章
// @Summary 更新文章（可变字段全量替换，标签集合整体替换）
// @Tags Article
// @Accept json
// @Produce json
// @Param id path int true "文章ID"
// @Param request body dto.UpdateArticleRequest true "更新文章请求"
// @Success 200 {object} response.Response{data=dto.ArticleResponse}
// @Security BearerAuth
// @Router /api/admin/article/{id} [put]
func (h *ArticleHandler) Update(c *gin.Context) {
	id, ok := parseArticleID(c)
	if !ok {
		return
	}

	var req dto.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	result, berr := h.articleService.Update(id, req)
	if berr != nil {
		dto.ErrorResponse(c, berr)
		return
	}
	dto.SuccessResponse(c, result)
}

// Delete 删除文章
// @Summary 删除文章（标签关联由级联清理）
// @Tags Article
// @Produce json
// @Param id path int true "文章ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /api/admin/article/{id} [delete]
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, ok := parseArticleID(c)
	if !ok {
		return
	}

	if berr := h.articleService.Delete(id); berr != nil {
		dto.ErrorResponse(c, berr)
		return
	}
	dto.SuccessResponse(c, gin.H{"id": id})
}

// TogglePin 置顶开关
// @Summary 置顶/取消置顶
// @Tags Article
// @Produce json
// @Param id path int true "文章ID"
// @Success 200 {object} response.Response{data=dto.ArticleResponse}
// @Security BearerAuth
// @Router /api/admin/article/{id}/pin [post]
func (h *ArticleHandler) TogglePin(c *gin.Context) {
	id, ok := parseArticleID(c)
	if !ok {
		return
	}

	result, berr := h.articleService.TogglePin(id)
	if berr != nil {
		dto.ErrorResponse(c, berr)
		return
	}
	dto.SuccessResponse(c, result)
}
