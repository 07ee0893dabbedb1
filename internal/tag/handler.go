package tag

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"terminal-terrace/blog-api/internal/dto"
	"terminal-terrace/blog-api/packages/response"
)

type TagHandler struct {
	tagService *TagService
}

func NewTagHandler(db *gorm.DB) *TagHandler {
	return &TagHandler{
		tagService: NewTagService(NewTagRepository(db)),
	}
}

// parseTagID 非数字段视同未匹配的路由
func parseTagID(c *gin.Context) (uint, bool) {
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

// List 标签列表
// @Summary 标签列表
// @Tags Tag
// @Produce json
// @Success 200 {object} response.Response{data=[]dto.TagResponse}
// @Router /api/tags [get]
func (h *TagHandler) List(c *gin.Context) {
	result, berr := h.tagService.List()
	if berr != nil {
		dto.ErrorResponse(c, berr)
		return
	}
	dto.SuccessResponse(c, result)
}

// Get 标签详情
// @Summary 标签详情
// @Tags Tag
// @Produce json
// @Param id path int true "标签ID"
// @Success 200 {object} response.Response{data=dto.TagResponse}
// @Router /api/tag/{id} [get]
func (h *TagHandler) Get(c *gin.Context) {
	id, ok := parseTagID(c)
	if !ok {
		return
	}

	result, berr := h.tagService.Get(id)
	if berr != nil {
		dto.ErrorResponse(c, berr)
		return
	}
	dto.SuccessResponse(c, result)
}

// Create 创建标签
// @Summary 创建标签（slug 冲突返回409）
// @Tags Tag
// @Accept json
// @Produce json
// @Param request body dto.CreateTagRequest true "创建标签请求"
// @Success 201 {object} response.Response{data=dto.TagResponse}
// @Security BearerAuth
// @Router /api/admin/tag [post]
func (h *TagHandler) Create(c *gin.Context) {
	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.ValidationErrorResponse(c, err)
		return
	}

	result, berr := h.tagService.Create(req)
	if berr != nil {
		dto.ErrorResponse(c, berr)
		return
	}
	dto.CreatedResponse(c, result)
}

// Delete 删除标签
// @Summary 删除标签（文章关联由级联清理）
// @Tags Tag
// @Produce json
// @Param id path int true "标签ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /api/admin/tag/{id} [delete]
func (h *TagHandler) Delete(c *gin.Context) {
	id, ok := parseTagID(c)
	if !ok {
		return
	}

	if berr := h.tagService.Delete(id); berr != nil {
		dto.ErrorResponse(c, berr)
		return
	}
	dto.SuccessResponse(c, gin.H{"id": id})
}
