package category

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"terminal-terrace/blog-api/internal/dto"
	"terminal-terrace/blog-api/packages/response"
)

type CategoryHandler struct {
	categoryService *CategoryService
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{
		categoryService: NewCategoryService(NewCategoryRepository(db)),
	}
}

// parseCategoryID 非数字段视同未匹配的路由
func parseCategoryID(c *gin.Context) (uint, bool) {
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

// List 分类列表
// @Summary 分类列表（附带已发布文章数）
// @Tags Category
// @Produce json
// @Success 200 {object} response.Response{data=[]dto.CategoryResponse}
// @Router /api/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	result, berr := h.categoryService.List()
	if berr != nil {
		dto.ErrorResponse(c, berr)
		return
	}
	dto.SuccessResponse(c, result)
}

// Get 分类详情
// @Summary 分类详情
// @Tags Category
// @Produce json
// @Param id path int true "分类ID"
// @Success 200 {object} response.Response{data=dto.CategoryResponse}
// @Router /api/category/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := parseCategoryID(c)
	if !ok {
		return
	}

	result, berr := h.categoryService.Get(id)
	if berr != nil {
		dto.ErrorResponse(c, berr)
		return
	}
	dto.SuccessResponse(c, result)
}

// Create 创建分类
// @Summary 创建分类（slug 冲突返回409）
// @Tags Category
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "创建分类请求"
// @Success 201 {object} response.Response{data=dto.CategoryResponse}
// @Security BearerAuth
// @Router /api/admin/category [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	result, berr := h.categoryService.Create(req)
	if berr != nil {
		dto.ErrorResponse(c, berr)
		return
	}
	dto.CreatedResponse(c, result)
}

// Update 更新分类
// @Summary 更新分类
// @Tags Category
// @Accept json
// @Produce json
// @Param id path int true "分类ID"
// @Param request body dto.UpdateCategoryRequest true "更新分类请求"
// @Success 200 {object} response.Response{data=dto.CategoryResponse}
// @Security BearerAuth
// @Router /api/admin/category/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseCategoryID(c)
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	result, berr := h.categoryService.Update(id, req)
	if berr != nil {
		dto.ErrorResponse(c, berr)
		return
	}
	dto.SuccessResponse(c, result)
}

// Delete 删除分类
// @Summary 删除分类（仍被文章引用时返回409，消息带引用数）
// @Tags Category
// @Produce json
// @Param id path int true "分类ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /api/admin/category/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseCategoryID(c)
	if !ok {
		return
	}

	if berr := h.categoryService.Delete(id); berr != nil {
		dto.ErrorResponse(c, berr)
		return
	}
	dto.SuccessResponse(c, gin.H{"id": id})
}
